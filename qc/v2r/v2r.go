// Package v2r tracks the mapping from a kernel's virtual qubits to a
// platform's real qubits, plus the residency state of every real qubit
// (garbage / known-zero / holds-live-state) that downstream mapping
// passes use to decide whether a swap can be replaced by a cheaper
// move. Grounded directly on
// original_source/include/ql/com/virt2real.h and
// src/ql/com/virt2real.cc's Virt2Real class, generalized from a fixed
// linear AllocQubit scan to the multi-core non-communication-qubit
// preference described in DESIGN.md.
package v2r

import "github.com/kegliz/qcore/qc/cerr"

// Undefined marks a virtual qubit with no real-qubit assignment yet,
// or a real qubit with no virtual qubit mapped to it.
const Undefined = -1

// ResidencyState is the liveness of a real qubit's physical state.
type ResidencyState int

const (
	// NoState: garbage, not worth preserving.
	NoState ResidencyState = iota
	// WasInited: known |0>, cheap enough that a swap touching it may
	// be replaced by a move.
	WasInited
	// HasState: holds a unique live value that must be preserved.
	HasState
)

// Map is a virtual-to-real qubit assignment plus per-real-qubit
// residency state, for one platform's worth of real qubits.
type Map struct {
	v2r []int
	rs  []ResidencyState
}

// New returns a Map sized for n real (and at most n virtual) qubits.
// If oneToOne is set, virtual qubit i starts mapped to real qubit i;
// otherwise every virtual qubit starts Undefined. If assumeZeroInit is
// set, every real qubit starts WasInited instead of NoState.
func New(n int, oneToOne, assumeZeroInit bool) *Map {
	m := &Map{
		v2r: make([]int, n),
		rs:  make([]ResidencyState, n),
	}
	for i := 0; i < n; i++ {
		if oneToOne {
			m.v2r[i] = i
		} else {
			m.v2r[i] = Undefined
		}
		if assumeZeroInit {
			m.rs[i] = WasInited
		} else {
			m.rs[i] = NoState
		}
	}
	return m
}

// Size returns the number of (virtual == real) qubit slots.
func (m *Map) Size() int { return len(m.v2r) }

// Get returns the real qubit v currently maps to, or Undefined.
func (m *Map) Get(v int) int { return m.v2r[v] }

// SetReal force-assigns v to real qubit r, bypassing Alloc's free-qubit
// search. Used by callers restoring a previously captured mapping.
func (m *Map) SetReal(v, r int) { m.v2r[v] = r }

// GetVirt reverse-looks-up the virtual qubit currently mapped to real
// qubit r, or Undefined if none. Linear scan, matching the teacher's
// documented "a second vector next to v2rMap would speed this up" note
// — not worth the bookkeeping at the sizes this compiler handles.
func (m *Map) GetVirt(r int) int {
	for v, rr := range m.v2r {
		if rr == r {
			return v
		}
	}
	return Undefined
}

// Residency returns real qubit r's residency state.
func (m *Map) Residency(r int) ResidencyState { return m.rs[r] }

// SetResidency sets real qubit r's residency state.
func (m *Map) SetResidency(r int, s ResidencyState) { m.rs[r] = s }

// Alloc assigns a free real qubit to the unmapped virtual qubit v.
// When preferred is non-nil, real qubits for which it returns true are
// tried first (lowest index first), falling back to any other free
// qubit (lowest index first) if none of the preferred ones are free —
// this is how multi-core placement steers fresh allocations toward
// non-communication qubits before resorting to comm qubits.
func (m *Map) Alloc(v int, preferred func(r int) bool) (int, error) {
	free := func(r int) bool { return m.GetVirt(r) == Undefined }

	if preferred != nil {
		for r := 0; r < len(m.v2r); r++ {
			if preferred(r) && free(r) {
				m.v2r[v] = r
				return r, nil
			}
		}
	}
	for r := 0; r < len(m.v2r); r++ {
		if free(r) {
			m.v2r[v] = r
			return r, nil
		}
	}
	return Undefined, cerr.ErrOutOfRealQubits
}

// Swap exchanges the live state at real qubits r0 and r1: whichever
// virtual qubits were mapped to them trade places, and their residency
// states trade with them.
func (m *Map) Swap(r0, r1 int) {
	if r0 == r1 {
		return
	}
	v0, v1 := m.GetVirt(r0), m.GetVirt(r1)
	if v0 != Undefined {
		m.v2r[v0] = r1
	}
	if v1 != Undefined {
		m.v2r[v1] = r0
	}
	m.rs[r0], m.rs[r1] = m.rs[r1], m.rs[r0]
}

// Export returns a copy of the virtual-to-real assignment, for
// snapshotting across kernel boundaries or cancellable solver calls.
func (m *Map) Export() []int { return append([]int(nil), m.v2r...) }

// Clone returns a deep copy, used to restore the pre-call mapping when
// an initial-placement solver call is cancelled (spec §5).
func (m *Map) Clone() *Map {
	return &Map{
		v2r: append([]int(nil), m.v2r...),
		rs:  append([]ResidencyState(nil), m.rs...),
	}
}
