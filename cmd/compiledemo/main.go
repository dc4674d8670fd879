package main

import (
	"fmt"

	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/schedule"
)

func main() {
	fmt.Println("--- Bell-pair kernel, ASAP vs ALAP vs Uniform-ALAP ---")
	demoBellPair()
}

// demoBellPair builds a small kernel by hand and runs it through the
// three scheduling directions qc/schedule exposes, printing each
// gate's assigned cycle so the differences between ASAP/ALAP/uniform
// are visible without a driver process in front of them.
func demoBellPair() {
	k := ir.NewKernel("bell", 2, 2, 0)
	k.Circuit.Add(ir.NewInstruction(gate.H(), 20, []int{0}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.CNOT(), 40, []int{0, 1}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.Measure(), 300, []int{0}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.Measure(), 300, []int{1}, nil, nil))

	g, err := depgraph.Build(k, depgraph.CommuteOptions{}, 20)
	if err != nil {
		fmt.Printf("build failed: %v\n", err)
		return
	}

	report := func(label string, s *schedule.Schedule) {
		fmt.Printf("%s: depth=%d cycles\n", label, s.Depth())
		for id := 0; id < g.NumNodes(); id++ {
			n := g.Node(depgraph.NodeID(id))
			if n.Gate != nil {
				fmt.Printf("  %s -> cycle %d\n", n.Gate.Name(), s.Cycle(depgraph.NodeID(id)))
			}
		}
	}

	report("ASAP", schedule.ASAP(g))
	report("ALAP", schedule.ALAP(g))
	report("Uniform-ALAP", schedule.UniformALAP(g))
}
