package schedule

import (
	"sort"

	"github.com/kegliz/qcore/qc/depgraph"
)

// remaining computes, per node, the critical-path work still to
// perform past that node in the direction opposite to dir (spec
// §4.2.2): for Forward scheduling this is the longest path length from
// n to SINK; for Backward scheduling it is the longest path length
// from SOURCE to n (forward ASAP's own cycle value). Either way a
// larger value means more critical, independent of direction.
func remaining(g *depgraph.Graph, dir Direction) map[depgraph.NodeID]uint64 {
	if dir == Backward {
		return ASAP(g).cycle
	}
	memo := make(map[depgraph.NodeID]uint64, g.NumNodes())
	var visit func(id depgraph.NodeID) uint64
	visit = func(id depgraph.NodeID) uint64 {
		if v, ok := memo[id]; ok {
			return v
		}
		if id == g.Sink() {
			memo[id] = 0
			return 0
		}
		var best uint64
		for _, a := range g.OutArcs(id) {
			c := a.Weight + visit(a.To)
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
	return memo
}

// dependentsOf returns n's direct dependents in the scheduling
// direction: children when scheduling forward (n's successors are
// "ahead" of it), parents when scheduling backward.
func dependentsOf(g *depgraph.Graph, id depgraph.NodeID, dir Direction) []depgraph.NodeID {
	var deps []depgraph.NodeID
	if dir == Forward {
		deps = g.Node(id).Children()
	} else {
		deps = g.Node(id).Parents()
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
	return deps
}

func maxRemainingAmong(ids []depgraph.NodeID, rem map[depgraph.NodeID]uint64) uint64 {
	var max uint64
	for _, id := range ids {
		if rem[id] > max {
			max = rem[id]
		}
	}
	return max
}

func restrictToMax(ids []depgraph.NodeID, rem map[depgraph.NodeID]uint64, max uint64) []depgraph.NodeID {
	var out []depgraph.NodeID
	for _, id := range ids {
		if rem[id] == max {
			out = append(out, id)
		}
	}
	return out
}

// deepCriticalityCompare orders a and b by spec §4.2.2's deep
// criticality: compare remaining; if equal, compare the largest
// remaining among direct dependents; if equal, restrict each
// dependent list to those at that maximum and compare sizes; if still
// equal, recurse on the highest-numbered dependent of each restricted
// list. Returns >0 if a is more critical, <0 if b is, 0 on a true tie.
func deepCriticalityCompare(g *depgraph.Graph, rem map[depgraph.NodeID]uint64, dir Direction, a, b depgraph.NodeID) int {
	if rem[a] != rem[b] {
		if rem[a] > rem[b] {
			return 1
		}
		return -1
	}

	da := dependentsOf(g, a, dir)
	db := dependentsOf(g, b, dir)
	maxA := maxRemainingAmong(da, rem)
	maxB := maxRemainingAmong(db, rem)
	if maxA != maxB {
		if maxA > maxB {
			return 1
		}
		return -1
	}

	ra := restrictToMax(da, rem, maxA)
	rb := restrictToMax(db, rem, maxB)
	if len(ra) != len(rb) {
		if len(ra) > len(rb) {
			return 1
		}
		return -1
	}
	if len(ra) == 0 {
		return 0
	}

	return deepCriticalityCompare(g, rem, dir, ra[len(ra)-1], rb[len(rb)-1])
}
