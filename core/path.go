// Package core: dot/bracket path construction for diff and validation
// output ("Customer.Address.Street", "People[3].Name").
//
// This file declares PathBuilder. Appends never allocate while the rendered
// path fits the 256-byte stack buffer; longer paths spill to the heap once
// and keep growing there.
package core

import (
	"fmt"
	"strconv"
)

// pathStackBytes is the size of the inline buffer; paths at or under this
// length never touch the heap during construction.
const pathStackBytes = 256

// pathStackDepth is the number of segment marks kept inline before the mark
// stack spills.
const pathStackDepth = 64

// PathBuilder renders member paths segment by segment with push/pop
// semantics. The zero value is NOT ready for use; call NewPathBuilder.
//
// PathBuilder must not be copied after first use (the working slice aliases
// the inline buffer).
type PathBuilder struct {
	arr   [pathStackBytes]byte
	marks [pathStackDepth]int

	buf   []byte
	spill []int // mark overflow beyond pathStackDepth
	depth int
}

// NewPathBuilder returns an empty builder backed by its inline buffer.
// Complexity: O(1).
func NewPathBuilder() *PathBuilder {
	p := &PathBuilder{}
	p.buf = p.arr[:0]

	return p
}

// PushMember appends a member-name segment, dot-separated from the previous
// segment ("Customer" then "Address" renders "Customer.Address").
func (p *PathBuilder) PushMember(name string) {
	p.mark()
	if len(p.buf) > 0 {
		p.buf = append(p.buf, '.')
	}
	p.buf = append(p.buf, name...)
}

// PushIndex appends a bracketed sequence index ("[3]").
func (p *PathBuilder) PushIndex(i int) {
	p.mark()
	p.buf = append(p.buf, '[')
	p.buf = strconv.AppendInt(p.buf, int64(i), 10)
	p.buf = append(p.buf, ']')
}

// PushKey appends a bracketed dictionary key ("[env]"). Scalar key kinds are
// rendered without allocation; anything else falls back to fmt.
func (p *PathBuilder) PushKey(key any) {
	p.mark()
	p.buf = append(p.buf, '[')
	switch k := key.(type) {
	case string:
		p.buf = append(p.buf, k...)
	case int64:
		p.buf = strconv.AppendInt(p.buf, k, 10)
	case uint64:
		p.buf = strconv.AppendUint(p.buf, k, 10)
	case bool:
		p.buf = strconv.AppendBool(p.buf, k)
	default:
		p.buf = append(p.buf, fmt.Sprint(k)...)
	}
	p.buf = append(p.buf, ']')
}

// Pop removes the most recent segment. Popping an empty builder is a no-op.
func (p *PathBuilder) Pop() {
	if p.depth == 0 {
		return
	}
	p.depth--
	if p.depth < pathStackDepth {
		p.buf = p.buf[:p.marks[p.depth]]
		return
	}
	p.buf = p.buf[:p.spill[p.depth-pathStackDepth]]
	p.spill = p.spill[:p.depth-pathStackDepth]
}

// String renders the current path. This is the only allocating call on the
// happy path; builders themselves are reused across segments.
func (p *PathBuilder) String() string { return string(p.buf) }

// Len reports the current rendered length in bytes.
func (p *PathBuilder) Len() int { return len(p.buf) }

// Depth reports how many segments are currently pushed.
func (p *PathBuilder) Depth() int { return p.depth }

// Reset empties the builder for reuse without releasing the inline buffer.
func (p *PathBuilder) Reset() {
	p.buf = p.arr[:0]
	p.spill = p.spill[:0]
	p.depth = 0
}

// mark records the pre-append length so Pop can truncate back to it.
func (p *PathBuilder) mark() {
	if p.depth < pathStackDepth {
		p.marks[p.depth] = len(p.buf)
	} else {
		p.spill = append(p.spill, len(p.buf))
	}
	p.depth++
}
