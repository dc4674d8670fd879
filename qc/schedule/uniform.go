package schedule

import "github.com/kegliz/qcore/qc/depgraph"

// UniformALAP computes an ASAP schedule and then rebalances bundle
// widths (spec §4.2.4): underfull bundles, scanned from the circuit's
// end backward, pull in the least-critical eligible gate from an
// earlier bundle until they reach the per-bundle target or no eligible
// candidate remains. The operation only ever moves gates later, so it
// can only shrink peak bundle width, never extend circuit depth (spec
// §8 invariant 6: the final SINK cycle matches the starting ASAP SINK
// cycle exactly, since SOURCE/SINK themselves are never bundle members
// and no candidate is ever moved past `depth`).
func UniformALAP(g *depgraph.Graph) *Schedule {
	asap := ASAP(g)
	cyc := make(map[depgraph.NodeID]uint64, len(asap.cycle))
	for k, v := range asap.cycle {
		cyc[k] = v
	}
	depth := cyc[g.Sink()]
	rem := remaining(g, Forward)

	bundle := make(map[uint64][]depgraph.NodeID)
	for id := 0; id < g.NumNodes(); id++ {
		nid := depgraph.NodeID(id)
		n := g.Node(nid)
		if n.IsSource || n.IsSink {
			continue
		}
		bundle[cyc[nid]] = append(bundle[cyc[nid]], nid)
	}

	canMove := func(id depgraph.NodeID, newCycle uint64) bool {
		n := g.Node(id)
		if newCycle+n.Weight > depth {
			return false
		}
		for _, a := range g.OutArcs(id) {
			if newCycle+a.Weight > cyc[a.To] {
				return false
			}
		}
		return true
	}

	removeFrom := func(cy uint64, id depgraph.NodeID) {
		list := bundle[cy]
		for i, x := range list {
			if x == id {
				bundle[cy] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}

	if depth == 0 {
		return &Schedule{Graph: g, cycle: cyc}
	}

	for cy := depth - 1; ; cy-- {
		var gatesUpTo, nonEmptyUpTo int
		for ec := uint64(0); ec <= cy; ec++ {
			if n := len(bundle[ec]); n > 0 {
				gatesUpTo += n
				nonEmptyUpTo++
			}
		}
		if nonEmptyUpTo > 0 {
			target := gatesUpTo / nonEmptyUpTo
			for len(bundle[cy]) < target {
				var bestEC uint64
				var bestID depgraph.NodeID
				bestRem := ^uint64(0)
				found := false
				for ec := uint64(0); ec < cy; ec++ {
					for _, id := range bundle[ec] {
						if !canMove(id, cy) {
							continue
						}
						if !found || rem[id] < bestRem {
							bestEC, bestID, bestRem, found = ec, id, rem[id], true
						}
					}
				}
				if !found {
					break
				}
				removeFrom(bestEC, bestID)
				bundle[cy] = append(bundle[cy], bestID)
				cyc[bestID] = cy
			}
		}
		if cy == 0 {
			break
		}
	}

	return &Schedule{Graph: g, cycle: cyc}
}
