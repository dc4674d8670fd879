// Package gate describes the fixed catalog of instruction kinds the
// compiler core understands well enough to reason about dependencies:
// their classification (quantum/classical/wait/dummy), how many qubits
// they span, and which commutation-relevant event they produce on each
// operand (see the depgraph package for the event state machine itself).
package gate

import "strings"

// Class is the coarse classification of an instruction.
type Class int

const (
	Quantum Class = iota
	Classical
	Wait
	Dummy
)

func (c Class) String() string {
	switch c {
	case Quantum:
		return "quantum"
	case Classical:
		return "classical"
	case Wait:
		return "wait"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// RotationAxis classifies a single/two-qubit quantum gate for the
// dependency-graph event mapping (spec §4.1's gate→event table). A gate
// not on a distinguished axis emits Default events on its qubits.
type RotationAxis int

const (
	NoAxis RotationAxis = iota
	XAxis
	ZAxis
)

// Kind is the immutable identity of an instruction type: its canonical
// name, how many qubits it spans, a renderer-facing symbol, and the
// classification/rotation-axis metadata the dependency graph builder
// needs. Kind values are shared singletons, mirroring the teacher
// library's pointer-equality convention for built-in gates.
type Kind struct {
	name       string
	symbol     string
	class      Class
	qubitSpan  int
	axis       RotationAxis
	isDisplay  bool // no explicit operands; touches every register
	isMeasure  bool
}

func (k *Kind) Name() string         { return k.name }
func (k *Kind) DrawSymbol() string   { return k.symbol }
func (k *Kind) Class() Class         { return k.class }
func (k *Kind) QubitSpan() int       { return k.qubitSpan }
func (k *Kind) Axis() RotationAxis   { return k.axis }
func (k *Kind) IsDisplay() bool      { return k.isDisplay }
func (k *Kind) IsMeasure() bool      { return k.isMeasure }

var (
	zAxisNames = map[string]bool{
		"rz": true, "z": true, "pauli_z": true, "rz180": true, "z90": true,
		"rz90": true, "zm90": true, "mrz90": true, "s": true, "sdag": true,
		"t": true, "tdag": true,
	}
	xAxisNames = map[string]bool{
		"rx": true, "x": true, "pauli_x": true, "rx180": true, "x90": true,
		"rx90": true, "xm90": true, "mrx90": true, "x45": true,
	}
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// registry of well-known single/two-qubit kinds, built once.
var registry = map[string]*Kind{}

func register(k *Kind) *Kind {
	registry[k.name] = k
	return k
}

var (
	measureKind = register(&Kind{name: "measure", class: Quantum, qubitSpan: 1, symbol: "M", isMeasure: true})
	displayKind = register(&Kind{name: "display", class: Quantum, qubitSpan: 0, symbol: "disp", isDisplay: true})
	cnotKind    = register(&Kind{name: "cnot", class: Quantum, qubitSpan: 2, symbol: "⊕"})
	czKind      = register(&Kind{name: "cz", class: Quantum, qubitSpan: 2, symbol: "●"})
	cphaseKind  = register(&Kind{name: "cphase", class: Quantum, qubitSpan: 2, symbol: "●"})
	hKind       = register(&Kind{name: "h", class: Quantum, qubitSpan: 1, symbol: "H"})
	waitKind    = register(&Kind{name: "wait", class: Wait, qubitSpan: 0, symbol: "wait"})
	dummyKind   = register(&Kind{name: "dummy", class: Dummy, qubitSpan: 0, symbol: "."})
)

func init() {
	for n := range zAxisNames {
		if _, ok := registry[n]; !ok {
			register(&Kind{name: n, class: Quantum, qubitSpan: 1, symbol: strings.ToUpper(n), axis: ZAxis})
		}
	}
	for n := range xAxisNames {
		if _, ok := registry[n]; !ok {
			register(&Kind{name: n, class: Quantum, qubitSpan: 1, symbol: strings.ToUpper(n), axis: XAxis})
		}
	}
}

// Measure, Display, CNOT, CZ, CPhase, H, Wait, Dummy return the shared
// singleton Kind for each well-known instruction.
func Measure() *Kind { return measureKind }
func Display() *Kind { return displayKind }
func CNOT() *Kind    { return cnotKind }
func CZ() *Kind      { return czKind }
func CPhase() *Kind  { return cphaseKind }
func H() *Kind       { return hKind }
func WaitKind() *Kind { return waitKind }
func DummyKind() *Kind { return dummyKind }

// Lookup returns the registered Kind for name, or nil if none is
// registered; it never creates a Kind (classical-register-only gates and
// purely custom instruction types are the caller's responsibility via
// NewClassical/NewCustom).
func Lookup(name string) *Kind {
	if k, ok := registry[norm(name)]; ok {
		return k
	}
	return nil
}

// NewCustom registers (or returns, if already registered) a generic
// Kind for an arbitrary quantum instruction name with the given qubit
// span. Unknown names fall back to Default-event semantics in the
// dependency graph builder, per spec §4.1's catch-all rule.
func NewCustom(name string, qubitSpan int) *Kind {
	n := norm(name)
	if k, ok := registry[n]; ok {
		return k
	}
	return register(&Kind{name: n, class: Quantum, qubitSpan: qubitSpan, symbol: strings.ToUpper(name)})
}

// NewClassical registers (or returns) a purely classical Kind: it only
// ever writes classical registers (spec §4.1's "purely classical gate"
// rule), never qubits.
func NewClassical(name string) *Kind {
	n := norm(name)
	if k, ok := registry[n]; ok {
		return k
	}
	return register(&Kind{name: n, class: Classical, qubitSpan: 0, symbol: strings.ToUpper(name)})
}
