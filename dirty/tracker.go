// Package dirty: the Tracker bitset and the Word facade the delta engine
// consumes.
//
// Storage is a single 64-bit word for the first 64 member indices, spilling
// to a bitfield.Bitlist for wider types. The word-or-spill split mirrors the
// schema's bitfield mapping: member index i always maps to bit i.
package dirty

import (
	"math/bits"

	"github.com/prysmaticlabs/go-bitfield"
)

// WordBits is the capacity of the inline word; indices at or beyond it live
// in the spill bit array.
const WordBits = 64

// Word is the facade a dirty-tracked record exposes to the delta engine:
// a read of the current bits and a clear-after-emit operation.
type Word interface {
	// DirtyBits returns a read-only view of the current dirty bits. The
	// view is valid until the next Mark or ClearDirty on the instance.
	DirtyBits() Bits

	// ClearDirty zeroes every bit. The delta engine calls this once the
	// emitted document has been finalized; an emission aborted mid-way
	// leaves the bits set, so members may be re-emitted (safe).
	ClearDirty()
}

// Bits is a read-only view over a Tracker's storage.
type Bits struct {
	word  uint64
	spill bitfield.Bitlist
}

// Test reports whether member index i is flagged dirty.
func (b Bits) Test(i int) bool {
	if i < 0 {
		return false
	}
	if i < WordBits {
		return b.word&(1<<uint(i)) != 0
	}
	s := uint64(i - WordBits)
	if b.spill == nil || s >= b.spill.Len() {
		return false
	}

	return b.spill.BitAt(s)
}

// Any reports whether at least one bit is set.
func (b Bits) Any() bool {
	if b.word != 0 {
		return true
	}

	return b.spill != nil && b.spill.Count() > 0
}

// Count returns the number of set bits.
func (b Bits) Count() int {
	n := bits.OnesCount64(b.word)
	if b.spill != nil {
		n += int(b.spill.Count())
	}

	return n
}

// ForEach visits the set bits in ascending member-index order, stopping
// early when fn returns false. Ascending order is what keeps delta
// documents deterministic.
func (b Bits) ForEach(fn func(i int) bool) {
	w := b.word
	for w != 0 {
		i := bits.TrailingZeros64(w)
		if !fn(i) {
			return
		}
		w &^= 1 << uint(i)
	}
	if b.spill == nil {
		return
	}
	for s := uint64(0); s < b.spill.Len(); s++ {
		if !b.spill.BitAt(s) {
			continue
		}
		if !fn(int(s) + WordBits) {
			return
		}
	}
}

// Tracker is the embeddable dirty-word. The zero value tracks up to 64
// members; use NewTracker for wider types so the spill array is sized up
// front.
type Tracker struct {
	word  uint64
	spill bitfield.Bitlist
}

// NewTracker returns a Tracker sized for a type with the given member
// count. Complexity: O(members/8) when spilling, O(1) otherwise.
func NewTracker(members int) Tracker {
	t := Tracker{}
	if members > WordBits {
		t.spill = bitfield.NewBitlist(uint64(members - WordBits))
	}

	return t
}

// Mark flags member index i as dirty. Marks beyond the tracked width are
// dropped; the schema rejects such types at compile time, so a dropped mark
// here means the caller bypassed its generated surface.
func (t *Tracker) Mark(i int) {
	if i < 0 {
		return
	}
	if i < WordBits {
		t.word |= 1 << uint(i)
		return
	}
	s := uint64(i - WordBits)
	if t.spill != nil && s < t.spill.Len() {
		t.spill.SetBitAt(s, true)
	}
}

// DirtyBits implements Word.
func (t *Tracker) DirtyBits() Bits {
	return Bits{word: t.word, spill: t.spill}
}

// ClearDirty implements Word. The spill array keeps its allocation.
func (t *Tracker) ClearDirty() {
	t.word = 0
	if t.spill == nil {
		return
	}
	for s := uint64(0); s < t.spill.Len(); s++ {
		if t.spill.BitAt(s) {
			t.spill.SetBitAt(s, false)
		}
	}
}
