package schedule

import (
	"testing"

	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T, n int) *depgraph.Graph {
	t.Helper()
	k := ir.NewKernel("chain", 1, 0, 0)
	for i := 0; i < n; i++ {
		k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{0}, nil, nil))
	}
	g, err := depgraph.Build(k, depgraph.CommuteOptions{}, 1)
	require.NoError(t, err)
	return g
}

func TestASAP_Chain(t *testing.T) {
	g := chain(t, 3)
	s := ASAP(g)
	assert.Equal(t, uint64(0), s.Cycle(g.Source()))
	assert.Equal(t, uint64(0), s.Cycle(depgraph.NodeID(1)))
	assert.Equal(t, uint64(1), s.Cycle(depgraph.NodeID(2)))
	assert.Equal(t, uint64(2), s.Cycle(depgraph.NodeID(3)))
	assert.Equal(t, uint64(3), s.Depth())
}

func TestALAP_SourceAtZero(t *testing.T) {
	g := chain(t, 4)
	s := ALAP(g)
	assert.Equal(t, uint64(0), s.Cycle(g.Source()))
	for id := 0; id < g.NumNodes(); id++ {
		assert.GreaterOrEqual(t, s.Cycle(depgraph.NodeID(id)), uint64(0))
	}
}

// TestScheduleRC_S7 mirrors spec scenario S7: a resource manager that
// denies every gate until cycle 3 forces a 1-gate, weight-0 circuit to
// schedule that gate at exactly cycle 3.
func TestScheduleRC_S7(t *testing.T) {
	k := ir.NewKernel("s7", 1, 0, 0)
	k.Circuit.Add(ir.NewInstruction(gate.H(), 0, []int{0}, nil, nil))
	g, err := depgraph.Build(k, depgraph.CommuteOptions{}, 1)
	require.NoError(t, err)

	rm := &denyUntil{cutoff: 3}
	s, err := ScheduleRC(g, Forward, rm)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.Cycle(depgraph.NodeID(1)))
}

type denyUntil struct {
	cutoff uint64
	resetN int
}

func (d *denyUntil) Reset()                                  { d.resetN++ }
func (d *denyUntil) Available(cycle uint64, _ *ir.Instruction) bool { return cycle >= d.cutoff }
func (d *denyUntil) Reserve(uint64, *ir.Instruction)          {}

func TestScheduleRC_Infeasible(t *testing.T) {
	k := ir.NewKernel("never", 1, 0, 0)
	k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{0}, nil, nil))
	g, err := depgraph.Build(k, depgraph.CommuteOptions{}, 1)
	require.NoError(t, err)

	rm := &denyAlways{}
	_, err = ScheduleRC(g, Forward, rm)
	assert.Error(t, err)
}

type denyAlways struct{}

func (denyAlways) Reset()                                  {}
func (denyAlways) Available(uint64, *ir.Instruction) bool   { return false }
func (denyAlways) Reserve(uint64, *ir.Instruction)          {}

// TestUniformALAP_PreservesDepth mirrors spec §8 invariant 6: Uniform-
// ALAP's SINK cycle equals the ASAP SINK cycle on the same graph.
func TestUniformALAP_PreservesDepth(t *testing.T) {
	k := ir.NewKernel("fanout", 4, 0, 0)
	k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{0}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{1}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{2}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.CNOT(), 1, []int{0, 3}, nil, nil))
	g, err := depgraph.Build(k, depgraph.CommuteOptions{}, 1)
	require.NoError(t, err)

	asap := ASAP(g)
	uniform := UniformALAP(g)
	assert.Equal(t, asap.Depth(), uniform.Depth())
}

func TestNoResources_AlwaysAvailable(t *testing.T) {
	rm := NoResources()
	rm.Reset()
	assert.True(t, rm.Available(0, nil))
}
