package passmgr

import (
	"io"
	"sort"
	"strings"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/platform"
	"github.com/kegliz/qcore/qc/schedule"
)

// GroupFlag is a leaf pass's verdict, made at construct time, on
// whether it expanded itself into a group of sub-passes.
type GroupFlag int

const (
	NotGroup GroupFlag = iota
	IsGroup
)

// Context carries per-compile state shared across every pass
// invocation: which architecture and platform topology are targeted,
// and the per-kernel dependency graphs/schedules passes build up as
// the tree runs (so a later pass, e.g. a mapper, can see the schedule
// an earlier pass produced without recomputing it). Graphs/Schedules
// are left nil by a caller that only needs option-resolution behavior.
type Context struct {
	Architecture string
	Platform     *platform.Topology
	Graphs       map[string]*depgraph.Graph
	Schedules    map[string]*schedule.Schedule
}

// Pass is the contract a concrete compiler pass (built-in or
// external) implements to plug into the tree. Mirrors §6's "Pass
// interface consumed by the pass manager".
type Pass interface {
	TypeName() string
	DeclareOptions() *OptionSet
	DumpDocs(w io.Writer, linePrefix string)
	OnConstruct(factory *Factory, node *Node) (GroupFlag, error)
	OnCompile(program *ir.Program, ctx *Context) error
}

// Constructor builds a fresh Pass instance for a registered type name.
type Constructor func(typeName, instanceName string) (Pass, error)

// Factory is a registry from (desugared) type name to pass
// constructor. Mirrors PassFactory: registration is the caller's job
// (no built-in pass types are registered here, per this compiler's
// scope — only the tree/registry machinery lives in this package).
type Factory struct {
	types        map[string]Constructor
	order        []string
	debugDumpers []DebugDumper
}

// DebugDumper names a pass type + instance-name suffix pair inserted
// before/after passes when debugging is enabled.
type DebugDumper struct {
	TypeName       string
	InstanceSuffix string
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{types: map[string]Constructor{}}
}

// Register adds a pass type under typeName. Re-registering the same
// name overwrites the previous constructor.
func (f *Factory) Register(typeName string, ctor Constructor) {
	if _, exists := f.types[typeName]; !exists {
		f.order = append(f.order, typeName)
	}
	f.types[typeName] = ctor
}

// Configure returns a derived factory with DNU entries filtered and
// architecture-prefixed entries aliased, per spec §4.3.
func (f *Factory) Configure(architecture string, dnu map[string]bool) *Factory {
	out := NewFactory()
	archPrefix := ""
	if architecture != "" {
		archPrefix = "arch." + architecture + "."
	}

	for _, name := range f.order {
		ctor := f.types[name]
		comps := strings.Split(name, ".")

		hasDNU := false
		for _, c := range comps {
			if c == "dnu" {
				hasDNU = true
				break
			}
		}

		if hasDNU {
			if dnu[name] {
				out.Register(stripComponent(name, "dnu"), ctor)
			}
			continue
		}

		out.Register(name, ctor)

		if archPrefix != "" && strings.HasPrefix(name, archPrefix) {
			out.Register(strings.TrimPrefix(name, archPrefix), ctor)
		}
	}

	out.debugDumpers = append([]DebugDumper(nil), f.debugDumpers...)
	return out
}

func stripComponent(name, comp string) string {
	comps := strings.Split(name, ".")
	kept := comps[:0]
	for _, c := range comps {
		if c != comp {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, ".")
}

// Build constructs a new pass instance for typeName.
func (f *Factory) Build(typeName, instanceName string) (Pass, error) {
	ctor, ok := f.types[typeName]
	if !ok {
		return nil, cerr.Context(cerr.ErrUnknownPassType, "factory", typeName)
	}
	return ctor(typeName, instanceName)
}

// TypeNames returns every registered type name, sorted, for
// dump_pass_types-style documentation.
func (f *Factory) TypeNames() []string {
	out := append([]string(nil), f.order...)
	sort.Strings(out)
	return out
}
