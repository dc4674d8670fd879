package ir

import "sort"

// KernelKind distinguishes straight-line kernels from control-flow
// linkage markers, per spec §3.
type KernelKind int

const (
	StraightLine KernelKind = iota
	LoopHeader
	LoopFooter
	IfMarker
	ElseMarker
)

// Circuit is the ordered sequence of instructions belonging to one
// kernel. The cycles-valid invariant (gates sorted by Cycle
// non-decreasing once scheduled) is enforced by SortByCycle, which the
// caller runs after writing a schedule back with schedule.Apply.
type Circuit struct {
	Gates []*Instruction
}

// NewCircuit returns an empty circuit.
func NewCircuit() *Circuit { return &Circuit{} }

// Add appends an instruction and returns the circuit for chaining.
func (c *Circuit) Add(g *Instruction) *Circuit {
	c.Gates = append(c.Gates, g)
	return c
}

// SortByCycle stably sorts gates by assigned cycle ascending, preserving
// original program order among simultaneous gates (spec §4.2.1: "Stable
// sort is required ... an observable property").
func (c *Circuit) SortByCycle() {
	sort.SliceStable(c.Gates, func(i, j int) bool {
		return c.Gates[i].Cycle.Compare(c.Gates[j].Cycle) < 0
	})
}

// Depth returns the number of distinct cycles used, or 0 if the circuit
// is empty or unscheduled.
func (c *Circuit) Depth() int {
	if len(c.Gates) == 0 {
		return 0
	}
	seen := map[uint64]struct{}{}
	for _, g := range c.Gates {
		if g.Cycle.Known() {
			seen[g.Cycle.Value()] = struct{}{}
		}
	}
	return len(seen)
}

// Kernel is a named circuit plus the metadata a control-flow-aware
// compiler needs around it.
type Kernel struct {
	Name              string
	Circuit           *Circuit
	VirtualQubitCount int
	CregCount         int
	BregCount         int
	Kind              KernelKind
	Predicate         *Condition // only meaningful for If/Else markers
}

// NewKernel returns a fresh straight-line kernel.
func NewKernel(name string, qubits, cregs, bregs int) *Kernel {
	return &Kernel{
		Name:              name,
		Circuit:           NewCircuit(),
		VirtualQubitCount: qubits,
		CregCount:         cregs,
		BregCount:         bregs,
		Kind:              StraightLine,
	}
}

// Program is an ordered list of kernels.
type Program struct {
	Name    string
	Kernels []*Kernel
}

// NewProgram returns an empty named program.
func NewProgram(name string) *Program { return &Program{Name: name} }

// AddKernel appends a kernel and returns the program for chaining.
func (p *Program) AddKernel(k *Kernel) *Program {
	p.Kernels = append(p.Kernels, k)
	return p
}
