package app

import (
	"fmt"
	"io"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/passmgr"
	"github.com/kegliz/qcore/qc/schedule"
)

// NewDriverFactory exposes the driver's pass registry to other
// in-module consumers (the schedtui viewer) so they exercise the exact
// same pass types the HTTP driver does, rather than duplicating the
// depgraph/schedule wiring.
func NewDriverFactory() *passmgr.Factory { return newDriverFactory() }

// newDriverFactory registers the handful of passes the diagnostics
// driver exposes over HTTP/TUI: building the dependency graph for
// every kernel and running one of the three scheduling directions over
// it. Concrete built-in passes (mapping, routing, decomposition) are
// the core's business, not this driver's; these wrap qc/depgraph and
// qc/schedule exactly the way a strategy JSON's "passes" list expects
// any pass to behave.
func newDriverFactory() *passmgr.Factory {
	f := passmgr.NewFactory()
	f.Register("build.depgraph", func(typeName, instanceName string) (passmgr.Pass, error) {
		return &depgraphPass{typeName: typeName}, nil
	})
	f.Register("schedule.asap", func(typeName, instanceName string) (passmgr.Pass, error) {
		return &schedulePass{typeName: typeName, dir: scheduleASAP}, nil
	})
	f.Register("schedule.alap", func(typeName, instanceName string) (passmgr.Pass, error) {
		return &schedulePass{typeName: typeName, dir: scheduleALAP}, nil
	})
	f.Register("schedule.ualap", func(typeName, instanceName string) (passmgr.Pass, error) {
		return &schedulePass{typeName: typeName, dir: scheduleUniformALAP}, nil
	})
	return f
}

type depgraphPass struct {
	typeName    string
	singleQubit *passmgr.Option
	multiQubit  *passmgr.Option
	cycleTime   *passmgr.Option
}

func (p *depgraphPass) TypeName() string { return p.typeName }

func (p *depgraphPass) DeclareOptions() *passmgr.OptionSet {
	p.singleQubit = passmgr.NewBoolOption("commute_single_qubit", "allow single-qubit Z/X rotations to commute", false)
	p.multiQubit = passmgr.NewBoolOption("commute_multi_qubit", "allow cnot/cz/cphase pairs to commute", false)
	p.cycleTime = passmgr.NewIntOption("cycle_time", "nanoseconds per cycle, for duration rounding", 20)
	return passmgr.NewOptionSet().Add(p.singleQubit).Add(p.multiQubit).Add(p.cycleTime)
}

func (p *depgraphPass) DumpDocs(w io.Writer, linePrefix string) {
	fmt.Fprintf(w, "%sbuilds the per-kernel dependency graph from program order and commutation rules\n", linePrefix)
}

func (p *depgraphPass) OnConstruct(factory *passmgr.Factory, node *passmgr.Node) (passmgr.GroupFlag, error) {
	return passmgr.NotGroup, nil
}

func (p *depgraphPass) OnCompile(program *ir.Program, ctx *passmgr.Context) error {
	if ctx.Graphs == nil {
		ctx.Graphs = map[string]*depgraph.Graph{}
	}
	opts := depgraph.CommuteOptions{
		SingleQubit: p.singleQubit.AsBool(),
		MultiQubit:  p.multiQubit.AsBool(),
	}
	cycleTime := uint64(p.cycleTime.AsInt())
	for _, k := range program.Kernels {
		g, err := depgraph.Build(k, opts, cycleTime)
		if err != nil {
			return cerr.Context(err, "build.depgraph", k.Name)
		}
		ctx.Graphs[k.Name] = g
	}
	return nil
}

type scheduleDirection int

const (
	scheduleASAP scheduleDirection = iota
	scheduleALAP
	scheduleUniformALAP
)

type schedulePass struct {
	typeName string
	dir      scheduleDirection
	apply    *passmgr.Option
}

func (p *schedulePass) TypeName() string { return p.typeName }

func (p *schedulePass) DeclareOptions() *passmgr.OptionSet {
	p.apply = passmgr.NewBoolOption("apply", "write assigned cycles back onto the kernel's instructions", true)
	return passmgr.NewOptionSet().Add(p.apply)
}

func (p *schedulePass) DumpDocs(w io.Writer, linePrefix string) {
	fmt.Fprintf(w, "%sruns the %s scheduler over each kernel's dependency graph\n", linePrefix, p.typeName)
}

func (p *schedulePass) OnConstruct(factory *passmgr.Factory, node *passmgr.Node) (passmgr.GroupFlag, error) {
	return passmgr.NotGroup, nil
}

func (p *schedulePass) OnCompile(program *ir.Program, ctx *passmgr.Context) error {
	if ctx.Graphs == nil {
		return cerr.Context(cerr.ErrPathNotFound, p.typeName, "no dependency graph built yet")
	}
	if ctx.Schedules == nil {
		ctx.Schedules = map[string]*schedule.Schedule{}
	}
	for _, k := range program.Kernels {
		g, ok := ctx.Graphs[k.Name]
		if !ok {
			continue
		}
		var sched *schedule.Schedule
		switch p.dir {
		case scheduleASAP:
			sched = schedule.ASAP(g)
		case scheduleALAP:
			sched = schedule.ALAP(g)
		default:
			sched = schedule.UniformALAP(g)
		}
		if p.apply.AsBool() {
			sched.Apply()
			k.Circuit.SortByCycle()
		}
		ctx.Schedules[k.Name] = sched
	}
	return nil
}
