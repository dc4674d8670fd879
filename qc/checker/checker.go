// Package checker validates that a Kernel or Program's instructions
// reference operands in range and without internal duplication, and
// that a scheduled circuit's cycles-valid invariant holds. Grounded on
// the teacher's internal/qprog.Step.Check/AddGate duplicate-operand
// detection and qc/dag's checkGate span/range checks, generalized from
// a single fixed gate vocabulary to the spec's full instruction model.
package checker

import (
	"fmt"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/ir"
)

// CheckKernel validates operand ranges and per-instruction duplicate
// operands for every gate in k's circuit.
func CheckKernel(k *ir.Kernel) error {
	for i, g := range k.Circuit.Gates {
		if err := checkInstruction(k, g); err != nil {
			return cerr.Context(err, "kernel", fmt.Sprintf("%s#%d", k.Name, i))
		}
	}
	return nil
}

// CheckProgram validates every kernel in the program.
func CheckProgram(p *ir.Program) error {
	for _, k := range p.Kernels {
		if err := CheckKernel(k); err != nil {
			return cerr.Context(err, "program", p.Name)
		}
	}
	return nil
}

func checkInstruction(k *ir.Kernel, g *ir.Instruction) error {
	seen := map[int]bool{}
	for _, q := range g.Qubits {
		if q < 0 || q >= k.VirtualQubitCount {
			return fmt.Errorf("qubit operand %d out of range [0,%d)", q, k.VirtualQubitCount)
		}
		if seen[q] {
			return fmt.Errorf("duplicate qubit operand %d", q)
		}
		seen[q] = true
	}
	if g.Kind != nil && g.Kind.QubitSpan() > 0 && len(g.Qubits) != g.Kind.QubitSpan() {
		return fmt.Errorf("gate %s expects %d qubit operands, got %d", g.Name(), g.Kind.QubitSpan(), len(g.Qubits))
	}
	for _, c := range g.Cregs {
		if c < 0 || c >= k.CregCount {
			return fmt.Errorf("classical-register operand %d out of range [0,%d)", c, k.CregCount)
		}
	}
	for _, b := range g.Bregs {
		if b < 0 || b >= k.BregCount {
			return fmt.Errorf("bit-register operand %d out of range [0,%d)", b, k.BregCount)
		}
	}
	if g.Cond.IsSet() {
		for _, b := range g.Cond.Bregs {
			if b < 0 || b >= k.BregCount {
				return fmt.Errorf("conditional predicate bit-register %d out of range [0,%d)", b, k.BregCount)
			}
		}
	}
	return nil
}

// CheckScheduled verifies the cycles-valid invariant: once scheduled,
// gates are sorted by cycle non-decreasing, and every cycle is a known,
// finite non-negative value.
func CheckScheduled(c *ir.Circuit) error {
	var prev ir.Cycle
	havePrev := false
	for i, g := range c.Gates {
		if !g.Cycle.Known() {
			return fmt.Errorf("gate %d (%s) has unknown cycle after scheduling", i, g.Name())
		}
		if havePrev && prev.Compare(g.Cycle) > 0 {
			return fmt.Errorf("gate %d (%s) out of cycle order: %v after %v", i, g.Name(), g.Cycle, prev)
		}
		prev = g.Cycle
		havePrev = true
	}
	return nil
}
