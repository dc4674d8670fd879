package passmgr

import (
	"encoding/json"
	"strconv"

	"github.com/kegliz/qcore/qc/cerr"
)

// Strategy is the typed decode target for the compilation-strategy
// JSON described in spec §4.3/§6. Grounded on
// original_source/src/ql/pmgr/pass_manager.cc's from_json /
// add_passes_from_json and manager.cc's legacy-global-option
// translation (convert_global_to_pass_options), generalized to this
// compiler's own option surface instead of OpenQL's fixed CLI option
// list.
type Strategy struct {
	Architecture      string                 `json:"architecture"`
	DNU               []string               `json:"dnu"`
	PassOptions       map[string]interface{} `json:"pass-options"`
	CompatibilityMode bool                   `json:"compatibility-mode"`
	Passes            []json.RawMessage      `json:"passes"`
}

type passDescription struct {
	Type          string                 `json:"type"`
	Name          string                 `json:"name"`
	Options       map[string]interface{} `json:"options"`
	GroupOptions  map[string]interface{} `json:"group-options"`
	Group         []json.RawMessage      `json:"group"`
}

// BuildFromJSON decodes raw strategy JSON and returns the constructed
// (but not yet Construct()-ed) root node, ready for further
// programmatic tree edits before compile.
func BuildFromJSON(raw []byte, factory *Factory) (*Node, error) {
	var strat Strategy
	if err := json.Unmarshal(raw, &strat); err != nil {
		return nil, cerr.Context(cerr.ErrJsonShape, "strategy", err.Error())
	}

	dnu := map[string]bool{}
	for _, d := range strat.DNU {
		dnu[d] = true
	}
	configured := factory.Configure(strat.Architecture, dnu)

	root := NewRoot(configured)

	if strat.CompatibilityMode {
		translateCompatibilityOptions(root)
	}
	for name, v := range strat.PassOptions {
		val, err := optionValueToString(v)
		if err != nil {
			return nil, cerr.Context(cerr.ErrJsonShape, "strategy.pass-options."+name, err.Error())
		}
		if val != "" {
			root.SetGroupOption(name, val)
		}
	}

	if err := addPassesFromJSON(root, strat.Passes); err != nil {
		return nil, err
	}
	return root, nil
}

// translateCompatibilityOptions stands in for the legacy global-option
// translation table original_source's convert_global_to_pass_options
// performs. This compiler defines no legacy global option names of
// its own (it has no CLI collaborator baked in, per spec's
// Non-goals), so there is nothing concrete to translate; the hook
// exists so a caller-supplied table of legacy aliases has somewhere
// to plug in without changing BuildFromJSON's signature.
func translateCompatibilityOptions(root *Node) {
	_ = root
}

func optionValueToString(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case bool:
		if val {
			return "yes", nil
		}
		return "no", nil
	case float64:
		return strconv.FormatInt(int64(val), 10), nil
	case string:
		return val, nil
	default:
		return "", cerr.ErrJsonShape
	}
}

func addPassesFromJSON(group *Node, passes []json.RawMessage) error {
	for _, raw := range passes {
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			if _, err := group.AppendSubPass(asString, "", nil); err != nil {
				return err
			}
			continue
		}

		var desc passDescription
		if err := json.Unmarshal(raw, &desc); err != nil {
			return cerr.Context(cerr.ErrJsonShape, "strategy.passes", err.Error())
		}
		if desc.Type == "" && desc.Group == nil {
			return cerr.Context(cerr.ErrJsonShape, "strategy.passes", "either type or group must be specified")
		}

		options := map[string]string{}
		for k, v := range desc.Options {
			val, err := optionValueToString(v)
			if err != nil {
				return cerr.Context(cerr.ErrJsonShape, "strategy.passes.options."+k, err.Error())
			}
			if val != "" {
				options[k] = val
			}
		}

		pass, err := group.AppendSubPass(desc.Type, desc.Name, options)
		if err != nil {
			return err
		}

		for k, v := range desc.GroupOptions {
			val, err := optionValueToString(v)
			if err != nil {
				return cerr.Context(cerr.ErrJsonShape, "strategy.passes.group-options."+k, err.Error())
			}
			if val != "" {
				pass.SetGroupOption(k, val)
			}
		}

		if desc.Group != nil {
			if err := pass.Construct(); err != nil {
				return err
			}
			if !pass.IsGroup() {
				return cerr.Context(cerr.ErrPassNotGroup, pass.path(), desc.Type)
			}
			if err := addPassesFromJSON(pass, desc.Group); err != nil {
				return err
			}
		}
	}
	return nil
}
