// Package delta: the windowed diff for ordered, granular sequences.
//
// The window trim mirrors classic alignment kernels: peel the longest
// common prefix, peel the longest common suffix off the remainder, and
// rewrite only the interior. The interior rewrite is a minimum-length edit
// for the aligned window: replaces over the overlap, then removes or adds
// for the length difference.
package delta

import (
	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// seqDelta emits the windowed edit script for an ordered sequence member.
//
// Emission order (part of the determinism contract):
//  1. SeqReplaceAt for differing overlap positions, ascending
//  2. SeqRemoveAt for surplus left positions, DESCENDING so every index in
//     the stream stays valid while applying
//  3. SeqAddAt for surplus right positions, ascending
//
// Complexity: O(P + S + window) element comparisons.
func seqDelta(e *emitter, m *schema.Member, av, bv any, ctx *core.Context) {
	ops := m.Seq
	la, lb := ops.Len(av), ops.Len(bv)

	// 1) Longest common prefix P.
	p := 0
	for p < la && p < lb && compare.EqualElem(m, &m.Elem, ops.At(av, p), ops.At(bv, p), ctx) {
		p++
	}

	// 2) Longest common suffix S over the remainder.
	s := 0
	for s < la-p && s < lb-p && compare.EqualElem(m, &m.Elem, ops.At(av, la-1-s), ops.At(bv, lb-1-s), ctx) {
		s++
	}

	// 3) Interior windows: left[p..la-s), right[p..lb-s).
	ra, rb := la-p-s, lb-p-s

	// 4) Replaces over the common min(ra, rb) positions where they differ.
	n := ra
	if rb < n {
		n = rb
	}
	for i := 0; i < n; i++ {
		re := ops.At(bv, p+i)
		if !compare.EqualElem(m, &m.Elem, ops.At(av, p+i), re, ctx) {
			e.seqReplace(m.Index, p+i, re)
		}
	}

	// 5) Surplus left: removes, descending so indices remain valid.
	for i := p + ra - 1; i >= p+rb; i-- {
		e.seqRemove(m.Index, i)
	}

	// 6) Surplus right: adds, ascending.
	for i := p + ra; i < p+rb; i++ {
		e.seqAdd(m.Index, i, ops.At(bv, i))
	}
}
