package core_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Quaverflow/deepdelta/core"
)

// TestNewContext_Defaults verifies the documented defaults: invariant
// culture, trusting fast path, a live clock.
func TestNewContext_Defaults(t *testing.T) {
	ctx := core.NewContext()

	assert.Equal(t, language.Und, ctx.Culture, "default culture is invariant")
	assert.False(t, ctx.ValidateDirtyOnEmit, "default dirty mode trusts the bits")
	require.NotNil(t, ctx.Clock, "a clock is always present")
}

// TestNewContext_Options verifies each functional option lands.
func TestNewContext_Options(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Unix(1234, 0))

	ctx := core.NewContext(
		core.WithCulture(language.English),
		core.WithClock(mock),
		core.WithValidateDirty(),
	)

	assert.Equal(t, language.English, ctx.Culture)
	assert.True(t, ctx.ValidateDirtyOnEmit)
	assert.Equal(t, time.Unix(1234, 0), ctx.Clock.Now(), "mock clock wired through")
}

// TestWithClock_NilPanics confirms option-constructor validation panics.
func TestWithClock_NilPanics(t *testing.T) {
	assert.Panics(t, func() { core.WithClock(nil) }, "nil clock is a programmer error")
}

// TestContext_EnterPair verifies pair recording, re-encounter detection,
// and Reset for reuse.
func TestContext_EnterPair(t *testing.T) {
	ctx := core.NewContext()
	a, b := &struct{ n int }{1}, &struct{ n int }{2}

	require.True(t, ctx.EnterPair(a, b), "first encounter records")
	assert.False(t, ctx.EnterPair(a, b), "re-encounter reports already visiting")
	assert.True(t, ctx.Visiting(a, b))
	assert.True(t, ctx.EnterPair(b, a), "pairs are ordered, (b,a) is distinct")

	ctx.Reset()
	assert.False(t, ctx.Visiting(a, b), "Reset clears the pair set")
	assert.True(t, ctx.EnterPair(a, b), "reusable after Reset")
}
