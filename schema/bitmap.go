// Package schema: the bitfield mapping for dirty-tracked types.
//
// Member index i always maps to bit i. The inline word is 32 or 64 bits
// wide depending on the member count; indices past 64 spill to a bit array
// on the instance (see the dirty package). The mapping is fixed at compile
// time and is part of the schema's stable contract.
package schema

const (
	// WordBits32 and WordBits64 are the selectable inline word widths.
	WordBits32 = 32
	WordBits64 = 64

	// MaxTrackedMembers bounds the bitfield mapping. Types beyond it fail
	// compilation with ErrMemberOverflow rather than silently dropping
	// marks at runtime.
	MaxTrackedMembers = 4096
)

// bitWidth selects the inline word width for a member count. Untracked
// types get the 64-bit default so the field is always meaningful.
func bitWidth(members int, tracked bool) (int, error) {
	if tracked && members > MaxTrackedMembers {
		return 0, ErrMemberOverflow
	}
	if members <= WordBits32 {
		return WordBits32, nil
	}

	return WordBits64, nil
}

// SpillBits reports how many bits of a type's mapping live past the inline
// word; 0 when everything fits. Generators size the instance spill array
// from this.
func (s *Schema) SpillBits() int {
	if n := len(s.Members) - WordBits64; n > 0 {
		return n
	}

	return 0
}
