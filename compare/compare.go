// Package compare: the Equal entry point.
package compare

import (
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// Equal reports structural equality of two values of the schema's type.
//
// Short-circuits on identity (same handle ⇒ equal). When exactly one side
// is nil/absent the result is not-equal. A nil ctx gets a fresh default
// Context; pass your own to reuse its cycle set or select a culture.
//
// Complexity: O(size of the smaller graph) in the worst case; O(1) on the
// identity fast path.
func Equal(s *schema.Schema, a, b any, ctx *core.Context) bool {
	if ctx == nil {
		ctx = core.NewContext()
	}

	return structEqual(s, a, b, ctx)
}
