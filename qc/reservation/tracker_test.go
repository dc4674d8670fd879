package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFind_S4 mirrors spec scenario S4.
func TestFind_S4(t *testing.T) {
	tr := New[string]()
	tr.Reserve(CycleRange{0, 3}, "a", false)
	tr.Reserve(CycleRange{5, 8}, "b", false)

	result, _, _, ok := tr.Find(CycleRange{2, 6})
	assert.Equal(t, Multiple, result)
	assert.False(t, ok)
}

// TestReserve_S5 mirrors spec scenario S5: reserving a sub-range
// without replaceAll leaves a single range behind.
func TestReserve_S5(t *testing.T) {
	tr := New[string]()
	tr.Reserve(CycleRange{0, 10}, "a", false)
	tr.Reserve(CycleRange{2, 4}, "b", false)

	assert.Equal(t, []CycleRange{{2, 4}}, tr.Ranges())
}

// TestFindReserveRoundTrip mirrors spec §8 invariant 8.
func TestFindReserveRoundTrip(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{4, 9}, 42, false)

	result, matched, value, ok := tr.Find(CycleRange{4, 9})
	assert.Equal(t, Exact, result)
	assert.True(t, ok)
	assert.Equal(t, CycleRange{4, 9}, matched)
	assert.Equal(t, 42, value)
}

func TestFind_EmptyTracker(t *testing.T) {
	tr := New[int]()
	result, _, _, ok := tr.Find(CycleRange{0, 5})
	assert.Equal(t, None, result)
	assert.False(t, ok)
}

func TestFind_Partial(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{3, 7}, 1, false)

	result, matched, _, ok := tr.Find(CycleRange{5, 10})
	assert.Equal(t, Partial, result)
	assert.True(t, ok)
	assert.Equal(t, CycleRange{3, 7}, matched)
}

func TestFind_Super(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{3, 5}, 1, false)

	result, matched, _, ok := tr.Find(CycleRange{0, 10})
	assert.Equal(t, Super, result)
	assert.True(t, ok)
	assert.Equal(t, CycleRange{3, 5}, matched)
}

func TestFind_Sub(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{0, 10}, 1, false)

	result, matched, _, ok := tr.Find(CycleRange{3, 5})
	assert.Equal(t, Sub, result)
	assert.True(t, ok)
	assert.Equal(t, CycleRange{0, 10}, matched)
}

// TestReserveNonOverlap mirrors spec §8 invariant 7: after any
// sequence of reserve/reset operations, stored ranges stay pairwise
// disjoint.
func TestReserveNonOverlap(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{0, 5}, 1, false)
	tr.Reserve(CycleRange{3, 8}, 2, false)
	tr.Reserve(CycleRange{10, 12}, 3, false)

	ranges := tr.Ranges()
	for i := 1; i < len(ranges); i++ {
		assert.LessOrEqual(t, ranges[i-1].Hi, ranges[i].Lo, "ranges must not overlap")
	}
}

func TestReset(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{0, 5}, 1, false)
	tr.Reset()
	assert.Empty(t, tr.Ranges())
}

func TestReserve_ReplaceAll(t *testing.T) {
	tr := New[int]()
	tr.Reserve(CycleRange{0, 5}, 1, false)
	tr.Reserve(CycleRange{20, 30}, 2, false)
	tr.Reserve(CycleRange{100, 200}, 9, true)

	assert.Equal(t, []CycleRange{{100, 200}}, tr.Ranges())
}
