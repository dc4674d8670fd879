package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line4() Config {
	// 0 - 1 - 2 - 3, specified connectivity, XY form with coordinates
	// laid out on a straight horizontal line.
	return Config{
		Form: "xy",
		Qubits: []QubitSpec{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 1, Y: 0},
			{ID: 2, X: 2, Y: 0},
			{ID: 3, X: 3, Y: 0},
		},
		Connectivity: "specified",
		Edges: []EdgeSpec{
			{Src: 0, Dst: 1},
			{Src: 1, Dst: 2},
			{Src: 2, Dst: 3},
		},
	}
}

func TestBuild_SpecifiedLine(t *testing.T) {
	topo, err := Build(4, line4())
	require.NoError(t, err)

	assert.True(t, topo.HasCoordinates())
	// Build stores neighbor lists already angle-sorted, so this is the
	// exact clockwise-from-12:00 order, not just the edge-insertion set.
	assert.Equal(t, []int{2, 0}, topo.Neighbors(1))
}

// TestBuild_NeighborsSortedClockwiseFrom12 mirrors spec §3's "sorted
// clockwise from 12:00 when coordinates exist" rule with four neighbors
// placed at the cardinal compass points, where the expected order is
// unambiguous.
func TestBuild_NeighborsSortedClockwiseFrom12(t *testing.T) {
	cfg := Config{
		Form: "xy",
		Qubits: []QubitSpec{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 0, Y: 1},  // north, 12:00
			{ID: 2, X: 1, Y: 0},  // east, 3:00
			{ID: 3, X: 0, Y: -1}, // south, 6:00
			{ID: 4, X: -1, Y: 0}, // west, 9:00
		},
		Connectivity: "specified",
		Edges: []EdgeSpec{
			{Src: 0, Dst: 1},
			{Src: 0, Dst: 2},
			{Src: 0, Dst: 3},
			{Src: 0, Dst: 4},
		},
	}
	topo, err := Build(5, cfg)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, topo.Neighbors(0))
}

// TestDistance_SymmetricAndZero mirrors spec §8 invariant 10.
func TestDistance_SymmetricAndZero(t *testing.T) {
	topo, err := Build(4, line4())
	require.NoError(t, err)

	for a := 0; a < 4; a++ {
		assert.Equal(t, 0, topo.Distance(a, a))
		for b := 0; b < 4; b++ {
			assert.Equal(t, topo.Distance(a, b), topo.Distance(b, a))
		}
	}
	assert.Equal(t, 3, topo.Distance(0, 3))
	assert.Equal(t, 1, topo.Distance(0, 1))
}

func TestBuild_FullyConnectedSingleCore(t *testing.T) {
	cfg := Config{Form: "irregular", Connectivity: "full"}
	topo, err := Build(4, cfg)
	require.NoError(t, err)

	for q := 0; q < 4; q++ {
		assert.Len(t, topo.Neighbors(q), 3)
		assert.Equal(t, 1, topo.Distance(q, (q+1)%4))
	}
}

func TestMultiCore_CommQubitOnlyBridging(t *testing.T) {
	// 2 cores of 2 qubits each: qubits 0,1 in core 0, qubits 2,3 in
	// core 1. comm_qubits_per_core = 1, so only qubit 0 and qubit 2
	// (the lowest-offset qubit per core) can bridge.
	cfg := Config{
		Form:              "irregular",
		NumberOfCores:     2,
		CommQubitsPerCore: 1,
		Connectivity:      "full",
	}
	topo, err := Build(4, cfg)
	require.NoError(t, err)

	assert.True(t, topo.IsCommQubit(0))
	assert.True(t, topo.IsCommQubit(2))
	assert.False(t, topo.IsCommQubit(1))
	assert.False(t, topo.IsCommQubit(3))

	assert.Contains(t, topo.Neighbors(0), 2)
	assert.NotContains(t, topo.Neighbors(1), 3)
	assert.NotContains(t, topo.Neighbors(1), 2)

	assert.True(t, topo.IsInterCoreHop(0, 2))
	assert.False(t, topo.IsInterCoreHop(0, 1))
	assert.Equal(t, 0, topo.CoreIndex(1))
	assert.Equal(t, 1, topo.CoreIndex(2))
}

func TestMinHops_BumpsPureInterCorePath(t *testing.T) {
	cfg := Config{
		Form:              "irregular",
		NumberOfCores:     2,
		CommQubitsPerCore: 1,
		Connectivity:      "full",
	}
	topo, err := Build(4, cfg)
	require.NoError(t, err)

	// 0 -> 2: comm qubits of different cores, joined by a single
	// inter-core hop. Distance 1 equals the core distance 1, so the
	// path is purely inter-core and MinHops reports one more than
	// Distance.
	d := topo.Distance(0, 2)
	assert.Equal(t, 1, d)
	assert.Equal(t, 2, topo.MinHops(0, 2))
}

func TestSortNeighborsByAngle_FindsGap(t *testing.T) {
	cfg := Config{
		Form: "xy",
		Qubits: []QubitSpec{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 1, Y: 0},
			{ID: 2, X: 0, Y: 1},
			{ID: 3, X: -1, Y: 0},
		},
		Connectivity: "specified",
		Edges: []EdgeSpec{
			{Src: 0, Dst: 1},
			{Src: 0, Dst: 2},
			{Src: 0, Dst: 3},
		},
	}
	topo, err := Build(4, cfg)
	require.NoError(t, err)

	sorted := topo.SortNeighborsByAngle(0, topo.Neighbors(0))
	// Missing neighbor is due south of qubit 0, so the largest angular
	// gap sits there; the rotation starts just clockwise of it, at west.
	assert.Equal(t, []int{3, 2, 1}, sorted)
}

func TestBuild_DuplicateEdgeID(t *testing.T) {
	id := 99
	cfg := Config{
		Connectivity: "specified",
		Edges: []EdgeSpec{
			{Src: 0, Dst: 1, ID: &id},
			{Src: 2, Dst: 3, ID: &id},
		},
	}
	_, err := Build(4, cfg)
	require.Error(t, err)
}
