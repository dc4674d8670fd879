package compilestore

import (
	"testing"

	"github.com/kegliz/qcore/qc/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet_RoundTrips(t *testing.T) {
	s := New()
	program := ir.NewProgram("p")

	id := s.Put(&Result{Program: program})
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, program, got.Program)
}

func TestGet_UnknownIDMisses(t *testing.T) {
	s := New()
	_, ok := s.Get("does-not-exist")
	assert.False(t, ok)
}

func TestPut_AssignsDistinctIDs(t *testing.T) {
	s := New()
	id1 := s.Put(&Result{Program: ir.NewProgram("a")})
	id2 := s.Put(&Result{Program: ir.NewProgram("b")})
	assert.NotEqual(t, id1, id2)
}
