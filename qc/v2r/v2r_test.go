package v2r

import (
	"testing"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OnDemandMapping(t *testing.T) {
	m := New(3, false, false)
	for v := 0; v < 3; v++ {
		assert.Equal(t, Undefined, m.Get(v))
	}
	for r := 0; r < 3; r++ {
		assert.Equal(t, NoState, m.Residency(r))
	}
}

func TestNew_OneToOne(t *testing.T) {
	m := New(3, true, true)
	for v := 0; v < 3; v++ {
		assert.Equal(t, v, m.Get(v))
	}
	for r := 0; r < 3; r++ {
		assert.Equal(t, WasInited, m.Residency(r))
	}
}

// TestAlloc_Bijection mirrors spec §8 invariant 9: no two virtual
// qubits ever map to the same real qubit.
func TestAlloc_Bijection(t *testing.T) {
	m := New(4, false, false)
	for v := 0; v < 4; v++ {
		r, err := m.Alloc(v, nil)
		require.NoError(t, err)
		assert.Equal(t, v, r) // first-free scan picks ascending reals
	}

	seen := map[int]bool{}
	for v := 0; v < 4; v++ {
		r := m.Get(v)
		require.NotEqual(t, Undefined, r)
		assert.False(t, seen[r], "real qubit %d double-mapped", r)
		seen[r] = true
	}
}

func TestAlloc_OutOfRealQubits(t *testing.T) {
	m := New(1, false, false)
	_, err := m.Alloc(0, nil)
	require.NoError(t, err)

	// no second virtual qubit slot exists, but force an Alloc call
	// against the exhausted single-qubit map to exercise the failure
	// path: simulate by asking for a second allocation attempt on the
	// same (now occupied) real qubit.
	_, err = m.Alloc(0, nil)
	assert.ErrorIs(t, err, cerr.ErrOutOfRealQubits)
}

func TestAlloc_PrefersNonCommunicationQubits(t *testing.T) {
	m := New(4, false, false)
	nonComm := func(r int) bool { return r != 0 && r != 1 }

	r, err := m.Alloc(0, nonComm)
	require.NoError(t, err)
	assert.Equal(t, 2, r)
}

func TestSwap_ExchangesMappingAndResidency(t *testing.T) {
	m := New(2, true, false)
	m.SetResidency(0, HasState)
	m.SetResidency(1, NoState)

	m.Swap(0, 1)

	assert.Equal(t, 1, m.Get(0))
	assert.Equal(t, 0, m.Get(1))
	assert.Equal(t, NoState, m.Residency(0))
	assert.Equal(t, HasState, m.Residency(1))
}

func TestGetVirt_Undefined(t *testing.T) {
	m := New(2, false, false)
	assert.Equal(t, Undefined, m.GetVirt(0))
}

func TestClone_Independent(t *testing.T) {
	m := New(2, true, false)
	c := m.Clone()
	m.Swap(0, 1)
	assert.Equal(t, 0, c.Get(0))
	assert.Equal(t, 1, m.Get(0))
}
