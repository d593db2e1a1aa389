// Package flagutil holds the flags-enum mask helpers shared by the schema
// (mask conflict checks at compile time) and the validation layer
// (require/forbid mask evaluation at runtime).
package flagutil

import "math/bits"

// HasAll reports whether v carries every bit of mask.
func HasAll(v, mask uint64) bool { return v&mask == mask }

// HasAny reports whether v carries at least one bit of mask.
func HasAny(v, mask uint64) bool { return v&mask != 0 }

// Without returns v with every bit of mask cleared.
func Without(v, mask uint64) uint64 { return v &^ mask }

// Conflicts reports whether a require mask and a forbid mask overlap; such
// a pair can never be satisfied and is rejected at schema compile time.
func Conflicts(require, forbid uint64) bool { return require&forbid != 0 }

// Satisfies reports whether v carries all required bits and none of the
// forbidden ones.
func Satisfies(v, require, forbid uint64) bool {
	return HasAll(v, require) && !HasAny(v, forbid)
}

// Split returns the individual set bits of v in ascending order; formatting
// helpers use it to render a flags value flag by flag.
func Split(v uint64) []uint64 {
	out := make([]uint64, 0, bits.OnesCount64(v))
	for v != 0 {
		low := v & -v
		out = append(out, low)
		v &^= low
	}

	return out
}
