// Package passmgr is the compiler's pass tree: a factory that builds
// named pass instances, a hierarchy of group/leaf nodes with option
// resolution and dotted-path (wildcard) addressing, and the driver
// that constructs and then runs the tree over a program. Grounded on
// original_source/src/ql/utils/options.cc's Option/Options hierarchy
// and src/ql/pmgr/{manager,pass_manager}.cc's Manager/PassManager
// classes. Concrete pass implementations (the teacher's own
// optimization/mapping passes) are out of scope here — this package
// only supplies the tree, the registry, and the resolution machinery
// that a caller's passes plug into.
package passmgr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kegliz/qcore/qc/cerr"
)

// Kind is the accepted value shape for an Option.
type Kind int

const (
	StringKind Kind = iota
	BoolKind
	IntKind
	EnumKind
)

// Option is one named, typed, validated configuration knob on a pass.
// Mirrors utils::Option/BooleanOption/EnumerationOption/IntegerOption:
// a single type hierarchy collapsed into one struct with a Kind tag,
// since Go has no virtual-dispatch validate() override to lean on.
type Option struct {
	name        string
	description string
	kind        Kind
	enumValues  []string
	defaultVal  string
	current     string
	configured  bool
}

// NewStringOption declares a free-form string option.
func NewStringOption(name, description, defaultValue string) *Option {
	return &Option{name: name, description: description, kind: StringKind, defaultVal: defaultValue, current: defaultValue}
}

// NewBoolOption declares a yes/no option.
func NewBoolOption(name, description string, defaultValue bool) *Option {
	d := "no"
	if defaultValue {
		d = "yes"
	}
	return &Option{name: name, description: description, kind: BoolKind, defaultVal: d, current: d}
}

// NewEnumOption declares an option restricted to one of values.
func NewEnumOption(name, description, defaultValue string, values []string) *Option {
	return &Option{name: name, description: description, kind: EnumKind, enumValues: values, defaultVal: defaultValue, current: defaultValue}
}

// NewIntOption declares an integer-valued option.
func NewIntOption(name, description string, defaultValue int) *Option {
	d := strconv.Itoa(defaultValue)
	return &Option{name: name, description: description, kind: IntKind, defaultVal: d, current: d}
}

func (o *Option) Name() string        { return o.name }
func (o *Option) Description() string { return o.description }
func (o *Option) Default() string     { return o.defaultVal }
func (o *Option) AsStr() string       { return o.current }
func (o *Option) IsSet() bool         { return o.configured }

func (o *Option) AsBool() bool {
	return o.current != "" && o.current != "no"
}

func (o *Option) AsInt() int {
	n, err := strconv.Atoi(o.current)
	if err != nil {
		return 0
	}
	return n
}

func (o *Option) validate(val string) (string, error) {
	switch o.kind {
	case BoolKind:
		switch strings.ToLower(val) {
		case "true", "yes", "y", "1":
			return "yes", nil
		case "false", "no", "n", "0":
			return "no", nil
		default:
			return "", cerr.Context(cerr.ErrOptionValueInvalid, o.name, "expected yes or no, got "+val)
		}
	case EnumKind:
		lower := strings.ToLower(val)
		for _, v := range o.enumValues {
			if strings.ToLower(v) == lower {
				return v, nil
			}
		}
		return "", cerr.Context(cerr.ErrOptionValueInvalid, o.name, "must be one of "+strings.Join(o.enumValues, ", ")+", got "+val)
	case IntKind:
		if _, err := strconv.Atoi(val); err != nil {
			return "", cerr.Context(cerr.ErrOptionValueInvalid, o.name, "expected an integer, got "+val)
		}
		return val, nil
	default:
		return val, nil
	}
}

// Set validates and assigns val as the current value. An empty val
// resets to the default instead, matching Option::set's behavior.
func (o *Option) Set(val string) error {
	if val == "" {
		o.Reset()
		return nil
	}
	v, err := o.validate(val)
	if err != nil {
		return err
	}
	o.current = v
	o.configured = true
	return nil
}

// Reset restores the default value and clears the configured flag.
func (o *Option) Reset() {
	o.current = o.defaultVal
	o.configured = false
}

func (o *Option) syntax() string {
	switch o.kind {
	case BoolKind:
		return "`yes` or `no`"
	case EnumKind:
		return "one of " + strings.Join(o.enumValues, ", ")
	case IntKind:
		return "an integer"
	default:
		return "any string"
	}
}

// DumpHelp writes one option's documentation entry.
func (o *Option) DumpHelp(w io.Writer, linePrefix string) {
	fmt.Fprintf(w, "%s* `%s`: must be %s, ", linePrefix, o.name, o.syntax())
	if o.configured {
		fmt.Fprintf(w, "currently `%s` (default `%s`)", o.current, o.defaultVal)
	} else {
		fmt.Fprintf(w, "default `%s`", o.defaultVal)
	}
	if o.description != "" {
		fmt.Fprintf(w, ". %s", o.description)
	}
	fmt.Fprintln(w)
}

// OptionSet is a pass's local, ordered collection of options.
type OptionSet struct {
	order   []string
	options map[string]*Option
}

// NewOptionSet returns an empty option set.
func NewOptionSet() *OptionSet {
	return &OptionSet{options: map[string]*Option{}}
}

// Add registers opt, preserving declaration order for DumpHelp.
func (s *OptionSet) Add(opt *Option) *OptionSet {
	if _, exists := s.options[opt.name]; !exists {
		s.order = append(s.order, opt.name)
	}
	s.options[opt.name] = opt
	return s
}

// Get looks up an option by name.
func (s *OptionSet) Get(name string) (*Option, bool) {
	o, ok := s.options[name]
	return o, ok
}

// Has reports whether name is a declared option.
func (s *OptionSet) Has(name string) bool {
	_, ok := s.options[name]
	return ok
}

// Reset restores every option to its default.
func (s *OptionSet) Reset() {
	for _, name := range s.order {
		s.options[name].Reset()
	}
}

// DumpHelp writes every option's documentation, in declaration order.
func (s *OptionSet) DumpHelp(w io.Writer, linePrefix string) {
	if len(s.order) == 0 {
		fmt.Fprintf(w, "%sno options exist\n", linePrefix)
		return
	}
	for _, name := range s.order {
		s.options[name].DumpHelp(w, linePrefix)
	}
}
