// Package compare implements the comparison engine: structural equality and
// path-qualified diffing over compiled schemas.
//
// 🚀 Entry points:
//
//	compare.Equal(sch, a, b, ctx)  // bool
//	compare.Diff(sch, a, b, ctx)   // []Difference, paths like "Items[3].SKU"
//
// ✨ Per-kind rules (both engines share the same leaf helpers, so Equal,
// Diff, and the delta engine can never disagree):
//
//   - scalars     — representation equality, no tolerance; NaN ≠ NaN
//   - strings     — ordinal, unless the member carries a custom equality
//   - time        — equal iff instant AND zone offset both match
//   - enums/flags — value / bitwise equality
//   - sequences   — index-aligned, or multiset when order-insensitive
//     (elements paired by key members when configured)
//   - sets        — size plus membership under the container's key equality
//   - maps        — same key set, deep-equal values
//   - arrays      — same rank, same dims, elementwise in row-major order
//   - any         — registry dispatch on the runtime tag; tag mismatch is
//     not-equal, unregistered tags fall back to intrinsic equality
//
// Failure semantics: the engine never panics for data-shape reasons; shape
// mismatches are simply "not equal". A user equality callback that panics
// propagates untouched.
//
// Cycle handling: for cycle-tracked types the (left, right) identity pair
// is recorded in the Context before recursing; a re-encounter is
// equal-so-far, which makes self-referential graphs terminate.
package compare
