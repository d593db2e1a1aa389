// Package core defines the Comparison Context shared by the compare and
// delta engines, together with its functional options.
//
// This file declares Context, ContextOption, and the NewContext constructor.
package core

import (
	"github.com/benbjohnson/clock"
	"golang.org/x/text/language"
)

// pairKey records one (left, right) pair of record identities that is
// currently being compared. Identity is the interface value itself; record
// handles are pointers, so two handles are the same key iff they reference
// the same instance.
type pairKey struct {
	left  any
	right any
}

// Context carries the per-invocation state of a comparison, diff, or delta
// computation.
//
// Fields:
//
//	ValidateDirtyOnEmit - re-compare members flagged by a dirty-word instead
//	                      of trusting the bits (delta engine only).
//	Culture             - locale for culture-aware string helpers; defaults
//	                      to the invariant culture (language.Und).
//	Clock               - injectable clock for validation-style checks built
//	                      on top of this core; never consulted by the engines
//	                      themselves.
//
// A Context is NOT safe for concurrent use; use one per invocation or one
// per goroutine with Reset between invocations.
type Context struct {
	// ValidateDirtyOnEmit selects the validating dirty fast path.
	ValidateDirtyOnEmit bool

	// Culture is the locale used by culture-aware string equality and
	// formatting helpers.
	Culture language.Tag

	// Clock supplies "now" to collaborators layered above the engines.
	Clock clock.Clock

	// visited holds the pairs already being compared; allocated lazily on
	// the first cycle-tracked recursion.
	visited map[pairKey]struct{}
}

// ContextOption configures a Context before first use.
type ContextOption func(*Context)

// WithCulture sets the locale for culture-aware string helpers.
func WithCulture(tag language.Tag) ContextOption {
	return func(c *Context) { c.Culture = tag }
}

// WithClock replaces the wall clock, typically with clock.NewMock() in tests.
// Panics if clk is nil (programmer error, caught at construction).
func WithClock(clk clock.Clock) ContextOption {
	if clk == nil {
		panic("core: WithClock requires a non-nil clock")
	}

	return func(c *Context) { c.Clock = clk }
}

// WithValidateDirty makes dirty-tracked delta emission re-compare each
// flagged member against the baseline before emitting an operation.
func WithValidateDirty() ContextOption {
	return func(c *Context) { c.ValidateDirtyOnEmit = true }
}

// NewContext creates a Context with the given options.
// Defaults: invariant culture, real wall clock, trusting dirty fast path.
// Complexity: O(1); the cycle set is not allocated until needed.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		Culture: language.Und,
		Clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EnterPair records the (left, right) identity pair and reports whether it
// was newly recorded. A false result means the pair is already being
// compared higher up the call stack; the caller treats that re-encounter as
// equal-so-far, which is what makes cyclic graphs terminate.
//
// Complexity: O(1) amortized.
func (c *Context) EnterPair(left, right any) bool {
	if c.visited == nil {
		c.visited = make(map[pairKey]struct{})
	}
	k := pairKey{left: left, right: right}
	if _, seen := c.visited[k]; seen {
		return false
	}
	c.visited[k] = struct{}{}

	return true
}

// Visiting reports whether the pair is currently recorded.
func (c *Context) Visiting(left, right any) bool {
	if c.visited == nil {
		return false
	}
	_, seen := c.visited[pairKey{left: left, right: right}]

	return seen
}

// Reset clears the cycle set so the Context can be reused for the next
// invocation on the same goroutine.
func (c *Context) Reset() {
	for k := range c.visited {
		delete(c.visited, k)
	}
}
