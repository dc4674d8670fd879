package schedule

import (
	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/ir"
)

// Direction is the scheduling direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Schedule is a completed cycle assignment over a dependency graph. It
// is a thin map keyed by NodeID rather than a mutation of the graph
// itself, so the same graph can be scheduled multiple times (e.g. once
// non-resource-constrained for Uniform-ALAP's starting point, then
// resource-constrained for the final pass).
type Schedule struct {
	Graph *depgraph.Graph
	cycle map[depgraph.NodeID]uint64
}

// Cycle returns the assigned cycle for id.
func (s *Schedule) Cycle(id depgraph.NodeID) uint64 { return s.cycle[id] }

// Depth returns SINK's cycle: the circuit's latency in cycles.
func (s *Schedule) Depth() uint64 { return s.cycle[s.Graph.Sink()] }

// Apply writes each gate node's assigned cycle back onto its
// ir.Instruction (the same pointers held by the kernel's circuit), then
// the caller is expected to call Circuit.SortByCycle to restore the
// cycles-valid invariant (spec §4.2.1: "gate sequence is stably sorted
// by cycle ascending").
func (s *Schedule) Apply() {
	for id := 0; id < s.Graph.NumNodes(); id++ {
		n := s.Graph.Node(depgraph.NodeID(id))
		if n.Gate != nil {
			n.Gate.Cycle = ir.NewCycle(s.cycle[depgraph.NodeID(id)])
		}
	}
}

// ASAP computes the non-resource-constrained forward schedule: SOURCE
// at cycle 0, every other node at the longest predecessor path weight
// from SOURCE (spec §4.2.1, §8 invariant 4). Implemented as a memoized
// depth-first traversal so that nodes are computed regardless of their
// arrival order in the arena.
func ASAP(g *depgraph.Graph) *Schedule {
	memo := make(map[depgraph.NodeID]uint64, g.NumNodes())
	var visit func(id depgraph.NodeID) uint64
	visit = func(id depgraph.NodeID) uint64 {
		if v, ok := memo[id]; ok {
			return v
		}
		if id == g.Source() {
			memo[id] = 0
			return 0
		}
		var best uint64
		for _, a := range g.InArcs(id) {
			c := visit(a.From) + a.Weight
			if c > best {
				best = c
			}
		}
		memo[id] = best
		return best
	}
	for id := 0; id < g.NumNodes(); id++ {
		visit(depgraph.NodeID(id))
	}
	return &Schedule{Graph: g, cycle: memo}
}

// ALAP computes the non-resource-constrained backward schedule: each
// node at the latest cycle permitted by its outgoing arcs, then the
// whole assignment shifted so SOURCE sits at 0 (spec §4.2.1, §8
// invariant 5). The backward traversal starts SINK at a sentinel large
// enough that no subtraction along any path can underflow before the
// final shift.
func ALAP(g *depgraph.Graph) *Schedule {
	sentinel := g.TotalWeight() + 1

	memo := make(map[depgraph.NodeID]uint64, g.NumNodes())
	var visit func(id depgraph.NodeID) uint64
	visit = func(id depgraph.NodeID) uint64 {
		if v, ok := memo[id]; ok {
			return v
		}
		if id == g.Sink() {
			memo[id] = sentinel
			return sentinel
		}
		outs := g.OutArcs(id)
		if len(outs) == 0 {
			memo[id] = sentinel
			return sentinel
		}
		best := sentinel
		for _, a := range outs {
			c := visit(a.To) - a.Weight
			if c < best {
				best = c
			}
		}
		memo[id] = best
		return best
	}
	for id := 0; id < g.NumNodes(); id++ {
		visit(depgraph.NodeID(id))
	}

	shift := memo[g.Source()]
	for id, c := range memo {
		memo[id] = c - shift
	}
	return &Schedule{Graph: g, cycle: memo}
}
