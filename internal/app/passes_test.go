package app

import (
	"testing"

	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/passmgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProgram() *ir.Program {
	k := ir.NewKernel("k", 2, 0, 0)
	k.Circuit.Add(ir.NewInstruction(gate.H(), 1, []int{0}, nil, nil))
	k.Circuit.Add(ir.NewInstruction(gate.CNOT(), 1, []int{0, 1}, nil, nil))
	return ir.NewProgram("p").AddKernel(k)
}

func TestDriverFactory_BuildAndScheduleASAP(t *testing.T) {
	factory := newDriverFactory()
	root := passmgr.NewRoot(factory)

	_, err := root.AppendSubPass("build.depgraph", "build", nil)
	require.NoError(t, err)
	_, err = root.AppendSubPass("schedule.asap", "sched", nil)
	require.NoError(t, err)

	program := sampleProgram()
	ctx := &passmgr.Context{}
	require.NoError(t, root.Compile(program, ctx))

	require.Contains(t, ctx.Graphs, "k")
	require.Contains(t, ctx.Schedules, "k")
	assert.Equal(t, uint64(2), ctx.Schedules["k"].Depth())
}

func TestDriverFactory_ScheduleWithoutGraphFails(t *testing.T) {
	factory := newDriverFactory()
	root := passmgr.NewRoot(factory)
	_, err := root.AppendSubPass("schedule.alap", "sched", nil)
	require.NoError(t, err)

	err = root.Compile(sampleProgram(), &passmgr.Context{})
	assert.Error(t, err)
}

func TestDriverFactory_TypeNames(t *testing.T) {
	names := newDriverFactory().TypeNames()
	assert.Contains(t, names, "build.depgraph")
	assert.Contains(t, names, "schedule.asap")
	assert.Contains(t, names, "schedule.alap")
	assert.Contains(t, names, "schedule.ualap")
}
