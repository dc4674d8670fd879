// Command schedtui is a read-only terminal viewer for a compiled
// kernel's schedule: it drives qc/depgraph and qc/schedule through the
// same pass types internal/app's HTTP driver registers, then renders
// the result as one column per cycle. It never reimplements scheduling
// itself.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kegliz/qcore/internal/app"
	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/passmgr"
)

type gateSpec struct {
	Type   string `json:"type"`
	Qubits []int  `json:"qubits"`
}

type kernelSpec struct {
	Name   string     `json:"name"`
	Qubits int        `json:"qubits"`
	Gates  []gateSpec `json:"gates"`
}

func main() {
	direction := "asap"
	path := ""
	switch len(os.Args) {
	case 2:
		path = os.Args[1]
	case 3:
		direction = os.Args[1]
		path = os.Args[2]
	default:
		fmt.Fprintln(os.Stderr, "usage: schedtui [asap|alap|ualap] <kernel.json>")
		os.Exit(2)
	}

	k, err := loadKernel(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading kernel: %v\n", err)
		os.Exit(1)
	}

	program := ir.NewProgram("schedtui").AddKernel(k)

	factory := app.NewDriverFactory()
	root := passmgr.NewRoot(factory)
	if _, err := root.AppendSubPass("build.depgraph", "build", nil); err != nil {
		fmt.Fprintf(os.Stderr, "appending build.depgraph: %v\n", err)
		os.Exit(1)
	}
	scheduleType := map[string]string{"asap": "schedule.asap", "alap": "schedule.alap", "ualap": "schedule.ualap"}[direction]
	if scheduleType == "" {
		fmt.Fprintf(os.Stderr, "unknown direction %q\n", direction)
		os.Exit(2)
	}
	if _, err := root.AppendSubPass(scheduleType, "sched", nil); err != nil {
		fmt.Fprintf(os.Stderr, "appending %s: %v\n", scheduleType, err)
		os.Exit(1)
	}

	ctx := &passmgr.Context{}
	if err := root.Compile(program, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "compiling: %v\n", err)
		os.Exit(1)
	}

	m := newModel(k, ctx.Graphs[k.Name], ctx.Schedules[k.Name])
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running TUI: %v\n", err)
		os.Exit(1)
	}
}

func loadKernel(path string) (*ir.Kernel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec kernelSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}

	k := ir.NewKernel(spec.Name, spec.Qubits, 0, 0)
	for _, gs := range spec.Gates {
		kind := gate.Lookup(gs.Type)
		if kind == nil {
			kind = gate.NewCustom(gs.Type, len(gs.Qubits))
		}
		k.Circuit.Add(ir.NewInstruction(kind, 1, gs.Qubits, nil, nil))
	}
	return k, nil
}
