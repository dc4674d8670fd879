package ir

import (
	"fmt"

	"github.com/kegliz/qcore/qc/gate"
)

// Comparator is the predicate comparator used by a conditional gate.
type Comparator int

const (
	CmpNone Comparator = iota
	CmpEQ
	CmpNE
	CmpAnd
	CmpOr
	CmpNot
)

// Condition is a gate's optional conditional predicate: a comparator
// applied to the values of one or more bit registers.
type Condition struct {
	Cmp   Comparator
	Bregs []int
}

// IsSet reports whether the condition is non-trivial.
func (c *Condition) IsSet() bool { return c != nil && c.Cmp != CmpNone }

// Instruction is the atomic unit the depgraph/scheduler operate on: the
// spec's "Gate" record. It carries its Kind (identity/classification),
// its operands, its duration, and the mutable Cycle assigned by the
// scheduler.
type Instruction struct {
	Kind     *gate.Kind
	Duration uint64 // time units
	Qubits   []int  // operand qubit indices
	Cregs    []int  // classical-register operand indices
	Bregs    []int  // bit-register operand indices
	Cond     *Condition

	Cycle Cycle // UnknownCycle until scheduled
}

// NewInstruction constructs an unscheduled instruction.
func NewInstruction(k *gate.Kind, duration uint64, qubits, cregs, bregs []int) *Instruction {
	return &Instruction{
		Kind:     k,
		Duration: duration,
		Qubits:   append([]int(nil), qubits...),
		Cregs:    append([]int(nil), cregs...),
		Bregs:    append([]int(nil), bregs...),
		Cycle:    UnknownCycle,
	}
}

// WithCondition attaches a conditional predicate and returns the same
// instruction, for fluent construction (mirrors the teacher builder's
// chained-call style).
func (g *Instruction) WithCondition(cmp Comparator, bregs ...int) *Instruction {
	g.Cond = &Condition{Cmp: cmp, Bregs: append([]int(nil), bregs...)}
	return g
}

// Name is a convenience accessor for the instruction's Kind name.
func (g *Instruction) Name() string {
	if g.Kind == nil {
		return ""
	}
	return g.Kind.Name()
}

func (g *Instruction) String() string {
	return fmt.Sprintf("%s(q=%v,c=%v,b=%v)@%v", g.Name(), g.Qubits, g.Cregs, g.Bregs, g.Cycle)
}
