// Package schedule turns a dependency graph into cycle assignments:
// ASAP/ALAP/Uniform-ALAP, with an optional resource-constrained list
// scheduler, per spec §4.2. Grounded on the teacher qc/dag package's
// traversal idioms (memoized recursion over a NodeID arena) and, for
// the worker-style logging texture, the qc/simulator parstat/parchan
// runners' zerolog field conventions.
package schedule

import (
	"io"

	"github.com/kegliz/qcore/qc/ir"
)

// ResourceManager is the external collaborator consulted by the
// resource-constrained list scheduler (spec §6). A fresh instance (or
// a Reset one) must be supplied per schedule invocation; the scheduler
// guarantees Reserve is called exactly once per non-exempt gate, in
// order of non-decreasing committed cycle for a forward schedule
// (non-increasing for a backward one; see ScheduleRC).
type ResourceManager interface {
	Reset()
	Available(cycle uint64, gate *ir.Instruction) bool
	Reserve(cycle uint64, gate *ir.Instruction)
}

// StateDumper is an optional capability a ResourceManager may support
// for diagnostics. Consumers probe for it with a type assertion,
// mirroring the teacher's SupportsXxx optional-interface convention.
type StateDumper interface {
	DumpState(w io.Writer)
}

// noResources is the ResourceManager used when the caller schedules
// without any hardware resource model: every non-exempt gate is always
// available.
type noResources struct{}

func (noResources) Reset()                                  {}
func (noResources) Available(uint64, *ir.Instruction) bool   { return true }
func (noResources) Reserve(uint64, *ir.Instruction)          {}

// NoResources returns a ResourceManager that never denies a gate.
func NoResources() ResourceManager { return noResources{} }
