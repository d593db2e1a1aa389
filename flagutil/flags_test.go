package flagutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Quaverflow/deepdelta/flagutil"
)

// TestMaskPredicates covers HasAll/HasAny/Without.
func TestMaskPredicates(t *testing.T) {
	const v = uint64(0b1010)

	assert.True(t, flagutil.HasAll(v, 0b1010))
	assert.True(t, flagutil.HasAll(v, 0b0010))
	assert.False(t, flagutil.HasAll(v, 0b0110))
	assert.True(t, flagutil.HasAny(v, 0b0110))
	assert.False(t, flagutil.HasAny(v, 0b0101))
	assert.Equal(t, uint64(0b1000), flagutil.Without(v, 0b0010))
}

// TestConflictsAndSatisfies covers the require/forbid pair.
func TestConflictsAndSatisfies(t *testing.T) {
	assert.True(t, flagutil.Conflicts(0b0110, 0b0100), "overlap is unsatisfiable")
	assert.False(t, flagutil.Conflicts(0b0110, 0b1000))

	assert.True(t, flagutil.Satisfies(0b0110, 0b0110, 0b1000))
	assert.False(t, flagutil.Satisfies(0b0110, 0b0110, 0b0010), "forbidden bit present")
	assert.False(t, flagutil.Satisfies(0b0010, 0b0110, 0), "required bit missing")
}

// TestSplit covers single-bit decomposition in ascending order.
func TestSplit(t *testing.T) {
	assert.Equal(t, []uint64{0b0001, 0b0100, 0b1000}, flagutil.Split(0b1101))
	assert.Empty(t, flagutil.Split(0))
}
