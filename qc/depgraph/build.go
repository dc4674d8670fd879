package depgraph

import (
	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
)

// CommuteOptions selects which rotation classes are allowed to reorder
// freely, per spec §4.1 rule 2.
type CommuteOptions struct {
	MultiQubit  bool // commute-multi-qubit: cnot/cz/cphase Zrotate-vs-Zrotate (or Xrotate)
	SingleQubit bool // commute-single-qubit: single-qubit Z/X rotation gates
}

// qEvent is the last event observed on a qubit operand.
type qEvent int

const (
	qDefault qEvent = iota
	qXrotate
	qZrotate
)

// cbEvent is the last event observed on a classical/bit operand.
type cbEvent int

const (
	cbWrite cbEvent = iota
	cbRead
)

type qubitState struct {
	event       qEvent
	lastDefault NodeID
	lastX       []NodeID
	lastZ       []NodeID
}

type cbState struct {
	event      cbEvent
	lastWriter NodeID
	lastReaders []NodeID
}

// builder holds the per-operand state machine while walking a kernel's
// gate list. One builder is used for exactly one Build call.
type builder struct {
	g       *Graph
	opts    CommuteOptions
	cycTime uint64

	qubits []qubitState
	cregs  []cbState
	bregs  []cbState
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return a
	}
	return (a + b - 1) / b
}

// Build constructs the dependency graph for one kernel's circuit.
// cycleTime is the platform's cycle duration used to convert gate
// durations into integer cycle weights (spec §4.1 rule 4).
func Build(k *ir.Kernel, opts CommuteOptions, cycleTime uint64) (*Graph, error) {
	g := &Graph{}
	b := &builder{g: g, opts: opts, cycTime: cycleTime}

	source := &Node{IsSource: true}
	g.addNode(source)
	g.source = source.ID

	b.qubits = make([]qubitState, k.VirtualQubitCount)
	b.cregs = make([]cbState, k.CregCount)
	b.bregs = make([]cbState, k.BregCount)
	for q := range b.qubits {
		b.qubits[q] = qubitState{event: qDefault, lastDefault: g.source}
	}
	for c := range b.cregs {
		b.cregs[c] = cbState{event: cbWrite, lastWriter: g.source}
	}
	for bi := range b.bregs {
		b.bregs[bi] = cbState{event: cbWrite, lastWriter: g.source}
	}

	for _, ins := range k.Circuit.Gates {
		id := b.addGateNode(ins)
		b.dispatch(id, ins, k)
	}

	sink := &Node{IsSink: true}
	sinkID := g.addNode(sink)
	g.sink = sinkID
	for q := 0; q < k.VirtualQubitCount; q++ {
		b.qubitEvent(sinkID, q, qDefault, false)
	}
	for c := 0; c < k.CregCount; c++ {
		b.cbEvent(&b.cregs[c], sinkID, OperandCreg, c, cbWrite, false)
	}
	for bi := 0; bi < k.BregCount; bi++ {
		b.cbEvent(&b.bregs[bi], sinkID, OperandBreg, bi, cbWrite, false)
	}

	if !g.acyclic() {
		return nil, cerr.ErrGraphNotAcyclic
	}
	return g, nil
}

func (b *builder) addGateNode(ins *ir.Instruction) NodeID {
	weight := ceilDiv(ins.Duration, b.cycTime)
	n := &Node{Gate: ins, Weight: weight}
	return b.g.addNode(n)
}

// dispatch applies spec §4.1's gate→event mapping for one instruction.
func (b *builder) dispatch(id NodeID, ins *ir.Instruction, k *ir.Kernel) {
	if ins.Cond.IsSet() {
		for _, br := range ins.Cond.Bregs {
			b.cbEvent(&b.bregs[br], id, OperandBreg, br, cbRead, true)
		}
	}

	kind := ins.Kind
	switch {
	case kind == nil:
		b.defaultCatchAll(id, ins)

	case kind.IsMeasure():
		for _, q := range ins.Qubits {
			b.qubitEvent(id, q, qDefault, false)
		}
		for _, c := range ins.Cregs {
			b.cbEvent(&b.cregs[c], id, OperandCreg, c, cbWrite, false)
		}
		for _, br := range ins.Bregs {
			b.cbEvent(&b.bregs[br], id, OperandBreg, br, cbWrite, false)
		}

	case kind.IsDisplay():
		for q := 0; q < k.VirtualQubitCount; q++ {
			b.qubitEvent(id, q, qDefault, false)
		}
		for c := 0; c < k.CregCount; c++ {
			b.cbEvent(&b.cregs[c], id, OperandCreg, c, cbWrite, false)
		}
		for br := 0; br < k.BregCount; br++ {
			b.cbEvent(&b.bregs[br], id, OperandBreg, br, cbWrite, false)
		}

	case kind.Class() == gate.Classical:
		for _, c := range ins.Cregs {
			b.cbEvent(&b.cregs[c], id, OperandCreg, c, cbWrite, false)
		}

	case kind == gate.CNOT():
		b.qubitEvent(id, ins.Qubits[0], qZrotate, b.opts.MultiQubit)
		b.qubitEvent(id, ins.Qubits[1], qXrotate, b.opts.MultiQubit)

	case kind == gate.CZ() || kind == gate.CPhase():
		b.qubitEvent(id, ins.Qubits[0], qZrotate, b.opts.MultiQubit)
		b.qubitEvent(id, ins.Qubits[1], qZrotate, b.opts.MultiQubit)

	case kind.Axis() == gate.ZAxis:
		b.qubitEvent(id, ins.Qubits[0], qZrotate, b.opts.SingleQubit)

	case kind.Axis() == gate.XAxis:
		b.qubitEvent(id, ins.Qubits[0], qXrotate, b.opts.SingleQubit)

	default:
		b.defaultCatchAll(id, ins)
	}
}

func (b *builder) defaultCatchAll(id NodeID, ins *ir.Instruction) {
	for _, q := range ins.Qubits {
		b.qubitEvent(id, q, qDefault, false)
	}
	for _, c := range ins.Cregs {
		b.cbEvent(&b.cregs[c], id, OperandCreg, c, cbWrite, false)
	}
	for _, br := range ins.Bregs {
		b.cbEvent(&b.bregs[br], id, OperandBreg, br, cbWrite, false)
	}
}

// qubitEvent applies the per-operand state machine for one qubit event,
// grounded on scheduler.cc's new_event(): Xrotate/Zrotate always anchor
// back to the last Default (keeping every gate transitively reachable
// from SOURCE even when the axis-specific same-axis arc is suppressed),
// cross-axis arcs (XAZ/ZAX) are always emitted since X and Z never
// commute, and same-axis arcs are suppressed iff commute is true.
func (b *builder) qubitEvent(id NodeID, q int, evt qEvent, commute bool) {
	st := &b.qubits[q]
	switch evt {
	case qDefault:
		switch st.event {
		case qDefault:
			b.g.addArc(st.lastDefault, id, DAD, OperandQubit, q)
		case qXrotate:
			for _, x := range st.lastX {
				b.g.addArc(x, id, DAX, OperandQubit, q)
			}
		case qZrotate:
			for _, z := range st.lastZ {
				b.g.addArc(z, id, DAZ, OperandQubit, q)
			}
		}
		st.lastDefault = id
		st.event = qDefault

	case qZrotate:
		b.g.addArc(st.lastDefault, id, ZAD, OperandQubit, q)
		if st.event != qZrotate {
			st.lastZ = st.lastZ[:0]
		} else if !commute {
			for _, z := range st.lastZ {
				b.g.addArc(z, id, ZAZ, OperandQubit, q)
			}
			st.lastZ = st.lastZ[:0]
		}
		for _, x := range st.lastX {
			b.g.addArc(x, id, ZAX, OperandQubit, q)
		}
		st.lastZ = append(st.lastZ, id)
		st.event = qZrotate

	case qXrotate:
		b.g.addArc(st.lastDefault, id, XAD, OperandQubit, q)
		if st.event != qXrotate {
			st.lastX = st.lastX[:0]
		} else if !commute {
			for _, x := range st.lastX {
				b.g.addArc(x, id, XAX, OperandQubit, q)
			}
			st.lastX = st.lastX[:0]
		}
		for _, z := range st.lastZ {
			b.g.addArc(z, id, XAZ, OperandQubit, q)
		}
		st.lastX = append(st.lastX, id)
		st.event = qXrotate
	}
}

// cbEvent applies the per-operand state machine for one classical- or
// bit-register event. RAR is never emitted (spec §4.1's Open Question
// on Read-after-Read resolves to unconditional suppression, matching
// the original scheduler's Cread/Bread handling).
func (b *builder) cbEvent(st *cbState, id NodeID, operand OperandType, index int, evt cbEvent, commute bool) {
	switch evt {
	case cbWrite:
		switch st.event {
		case cbWrite:
			b.g.addArc(st.lastWriter, id, WAW, operand, index)
		case cbRead:
			for _, r := range st.lastReaders {
				b.g.addArc(r, id, WAR, operand, index)
			}
		}
		st.lastWriter = id
		st.event = cbWrite

	case cbRead:
		b.g.addArc(st.lastWriter, id, RAW, operand, index)
		if st.event != cbRead {
			st.lastReaders = st.lastReaders[:0]
		}
		st.lastReaders = append(st.lastReaders, id)
		st.event = cbRead
	}
}
