package dirty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/dirty"
)

// TestTracker_MarkAndTest covers word-resident bits.
func TestTracker_MarkAndTest(t *testing.T) {
	tr := dirty.NewTracker(8)

	assert.False(t, tr.DirtyBits().Any(), "fresh tracker is clean")
	tr.Mark(0)
	tr.Mark(5)
	bits := tr.DirtyBits()
	assert.True(t, bits.Test(0))
	assert.True(t, bits.Test(5))
	assert.False(t, bits.Test(1))
	assert.Equal(t, 2, bits.Count())
}

// TestTracker_SpillBeyondWord covers indices past the 64-bit inline word.
func TestTracker_SpillBeyondWord(t *testing.T) {
	tr := dirty.NewTracker(100)

	tr.Mark(3)
	tr.Mark(64)
	tr.Mark(99)
	bits := tr.DirtyBits()
	assert.True(t, bits.Test(3), "word bit")
	assert.True(t, bits.Test(64), "first spill bit")
	assert.True(t, bits.Test(99), "last spill bit")
	assert.False(t, bits.Test(65))
	assert.Equal(t, 3, bits.Count())
}

// TestTracker_ForEachAscending verifies visit order across the word/spill
// boundary; ascending order is what delta determinism rides on.
func TestTracker_ForEachAscending(t *testing.T) {
	tr := dirty.NewTracker(80)
	for _, i := range []int{70, 2, 63, 64, 0} {
		tr.Mark(i)
	}

	var seen []int
	tr.DirtyBits().ForEach(func(i int) bool {
		seen = append(seen, i)
		return true
	})
	assert.Equal(t, []int{0, 2, 63, 64, 70}, seen, "ascending member-index order")
}

// TestTracker_ForEachEarlyStop verifies fn=false stops the walk.
func TestTracker_ForEachEarlyStop(t *testing.T) {
	tr := dirty.NewTracker(8)
	tr.Mark(1)
	tr.Mark(3)

	count := 0
	tr.DirtyBits().ForEach(func(int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "walk stops after the first visit")
}

// TestTracker_ClearDirty verifies clearing both the word and the spill.
func TestTracker_ClearDirty(t *testing.T) {
	tr := dirty.NewTracker(100)
	tr.Mark(1)
	tr.Mark(90)
	require.True(t, tr.DirtyBits().Any())

	tr.ClearDirty()
	assert.False(t, tr.DirtyBits().Any(), "everything cleared")
	assert.Equal(t, 0, tr.DirtyBits().Count())

	// The tracker stays usable after a clear.
	tr.Mark(90)
	assert.True(t, tr.DirtyBits().Test(90))
}

// TestTracker_OutOfRangeMarksDropped verifies defensive bounds behavior.
func TestTracker_OutOfRangeMarksDropped(t *testing.T) {
	tr := dirty.NewTracker(4)
	tr.Mark(-1)
	tr.Mark(200) // beyond the tracked width: dropped
	assert.False(t, tr.DirtyBits().Test(200))
	assert.False(t, tr.DirtyBits().Any())
}
