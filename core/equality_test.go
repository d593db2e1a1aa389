package core_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/Quaverflow/deepdelta/core"
)

// TestFloat64Eq_RepresentationSemantics documents the platform-default
// float rules: no tolerance, NaN unequal to itself, signed zeros equal.
func TestFloat64Eq_RepresentationSemantics(t *testing.T) {
	assert.True(t, core.Float64Eq(1.5, 1.5))
	assert.False(t, core.Float64Eq(1.5, 1.5000001), "no tolerance")
	assert.False(t, core.Float64Eq(math.NaN(), math.NaN()), "NaN != NaN")
	assert.True(t, core.Float64Eq(0.0, math.Copysign(0, -1)), "+0 == -0")
}

// TestTimeEq_TicksAndOffset verifies that equality needs the instant AND
// the zone offset to match.
func TestTimeEq_TicksAndOffset(t *testing.T) {
	instant := time.Unix(1_700_000_000, 42)
	utc := instant.UTC()
	plusTwo := instant.In(time.FixedZone("", 2*3600))

	assert.True(t, core.TimeEq(utc, utc.Add(0)), "same instant, same offset")
	assert.False(t, core.TimeEq(utc, plusTwo), "same instant, different offset")
	assert.False(t, core.TimeEq(utc, utc.Add(time.Nanosecond)), "different instant")
}

// TestSafeEq_UncomparableKinds verifies the recover path: slices are not
// comparable and must report ok=false instead of panicking.
func TestSafeEq_UncomparableKinds(t *testing.T) {
	eq, ok := core.SafeEq([]int{1}, []int{1})
	assert.False(t, ok, "slices are not comparable")
	assert.False(t, eq)

	eq, ok = core.SafeEq(3, 3)
	assert.True(t, ok)
	assert.True(t, eq)

	eq, ok = core.SafeEq(3, 4)
	assert.True(t, ok)
	assert.False(t, eq)
}

// TestCaseInsensitive_Fold verifies the culture-aware custom equality.
func TestCaseInsensitive_Fold(t *testing.T) {
	fold := core.CaseInsensitive(language.Und)

	assert.True(t, fold("Reykjavík", "REYKJAVÍK"), "case folds under the culture")
	assert.False(t, fold("east", "west"))
	assert.True(t, fold("", ""), "empty strings fold equal")
}
