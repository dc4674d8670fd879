package schedule

import (
	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/gate"
)

func duration(n *depgraph.Node) uint64 {
	if n.Gate == nil {
		return 0
	}
	return n.Gate.Duration
}

// isExempt reports whether n is a synthetic or side-effect-only gate
// (SOURCE, SINK, dummy, classical, wait) for which the resource
// manager is not consulted, per spec §4.2.3 step 1(b).
func isExempt(n *depgraph.Node) bool {
	if n.IsSource || n.IsSink {
		return true
	}
	if n.Gate == nil || n.Gate.Kind == nil {
		return true
	}
	switch n.Gate.Kind.Class() {
	case gate.Wait, gate.Dummy, gate.Classical:
		return true
	default:
		return false
	}
}

func depsScheduled(g *depgraph.Graph, id depgraph.NodeID, dir Direction, scheduled map[depgraph.NodeID]bool) bool {
	var deps []depgraph.NodeID
	if dir == Forward {
		deps = g.Node(id).Parents()
	} else {
		deps = g.Node(id).Children()
	}
	for _, d := range deps {
		if !scheduled[d] {
			return false
		}
	}
	return true
}

func tentativeCycle(g *depgraph.Graph, id depgraph.NodeID, dir Direction, cycle map[depgraph.NodeID]uint64) uint64 {
	if dir == Forward {
		var best uint64
		for _, a := range g.InArcs(id) {
			if c := cycle[a.From] + a.Weight; c > best {
				best = c
			}
		}
		return best
	}
	best := cycle[g.Sink()]
	for _, a := range g.OutArcs(id) {
		if c := cycle[a.To] - a.Weight; c < best {
			best = c
		}
	}
	return best
}

// ScheduleRC runs the resource-constrained list scheduler of spec
// §4.2.3. rm is reset once up front; Reserve is called exactly once
// per non-exempt committed gate, in order of non-decreasing committed
// cycle when dir is Forward. When dir is Backward, Reserve is called in
// order of non-increasing cycle, with the cycle values as they stand
// before the final shift that moves SOURCE to 0.
func ScheduleRC(g *depgraph.Graph, dir Direction, rm ResourceManager) (*Schedule, error) {
	rm.Reset()
	rem := remaining(g, dir)

	scheduled := make(map[depgraph.NodeID]bool, g.NumNodes())
	cycle := make(map[depgraph.NodeID]uint64, g.NumNodes())
	var avlist []depgraph.NodeID

	insert := func(id depgraph.NodeID) {
		if scheduled[id] {
			return
		}
		for _, x := range avlist {
			if x == id {
				return
			}
		}
		pos := len(avlist)
		for i, x := range avlist {
			if deepCriticalityCompare(g, rem, dir, x, id) < 0 {
				pos = i
				break
			}
		}
		avlist = append(avlist, 0)
		copy(avlist[pos+1:], avlist[pos:])
		avlist[pos] = id
	}

	var start depgraph.NodeID
	var currCycle uint64
	if dir == Forward {
		start = g.Source()
		currCycle = 0
	} else {
		start = g.Sink()
		currCycle = g.TotalWeight() + 1
	}
	cycle[start] = currCycle
	avlist = append(avlist, start)

	bound := g.TotalWeight()*uint64(g.NumNodes()) + uint64(g.NumNodes()) + 1
	stalls := uint64(0)

	for len(avlist) > 0 {
		readyIdx := -1
		zeroIdx := -1
		for i, id := range avlist {
			n := g.Node(id)
			ready := cycle[id] <= currCycle
			if dir == Backward {
				ready = cycle[id] >= currCycle
			}
			if !ready {
				continue
			}
			if !isExempt(n) && !rm.Available(currCycle, n.Gate) {
				continue
			}
			if readyIdx == -1 {
				readyIdx = i
			}
			if duration(n) == 0 {
				zeroIdx = i
				break
			}
		}

		chosen := readyIdx
		if zeroIdx != -1 {
			chosen = zeroIdx
		}
		if chosen == -1 {
			if dir == Forward {
				currCycle++
			} else if currCycle > 0 {
				currCycle--
			} else {
				return nil, cerr.ErrScheduleInfeasible
			}
			stalls++
			if stalls > bound {
				return nil, cerr.ErrScheduleInfeasible
			}
			continue
		}
		stalls = 0

		id := avlist[chosen]
		n := g.Node(id)
		cycle[id] = currCycle
		if !isExempt(n) {
			rm.Reserve(currCycle, n.Gate)
		}
		scheduled[id] = true
		avlist = append(avlist[:chosen], avlist[chosen+1:]...)

		var candidates []depgraph.NodeID
		if dir == Forward {
			candidates = n.Children()
		} else {
			candidates = n.Parents()
		}
		for _, c := range candidates {
			if scheduled[c] {
				continue
			}
			if depsScheduled(g, c, dir, scheduled) {
				cycle[c] = tentativeCycle(g, c, dir, cycle)
				insert(c)
			}
		}
	}

	if dir == Backward {
		shift := cycle[g.Source()]
		for id, c := range cycle {
			cycle[id] = c - shift
		}
	}

	return &Schedule{Graph: g, cycle: cycle}, nil
}
