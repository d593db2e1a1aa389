// SPDX-License-Identifier: MIT
// Package: deepdelta/delta
//
// compute.go — the baseline delta algorithm and the dirty fast path.
//
// Determinism contract: members emit in stable-index order; within one
// sequence member, replaces come first, then removes in descending index
// order, then adds ascending; dictionary removes precede sets, each in
// sorted key order. Two identical inputs always produce byte-equal
// documents.
package delta

import (
	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/dirty"
	"github.com/Quaverflow/deepdelta/schema"
)

// Compute builds the delta document that transforms before into after.
//
// Emission never raises: shape mismatches replace, they do not panic. A
// user equality callback that panics propagates untouched, and in that case
// no dirty word is cleared (the members may be re-emitted later — safe).
//
// Dirty fast path: when the AFTER side exposes a dirty-word (it is the
// instance mutated since the snapshot; its setters marked the bits), only
// flagged members are visited. With ctx.ValidateDirtyOnEmit the engine
// re-compares each flagged member and matches the baseline document
// exactly; otherwise scalar members are trusted and emitted without
// re-comparison, which is O(#dirty-bits).
//
// Complexity: O(graph size) baseline, O(#dirty-bits × member-cost) tracked.
func Compute(s *schema.Schema, before, after any, ctx *core.Context) *Document {
	if ctx == nil {
		ctx = core.NewContext()
	}
	if before == after {
		return &Document{}
	}
	nilA, nilB := s.IsNil(before), s.IsNil(after)
	if nilA && nilB {
		return &Document{}
	}
	if nilA != nilB {
		// One side absent: the whole value is replaced (possibly with nil).
		var v any
		if !nilB {
			v = after
		}

		return &Document{ops: []Op{{Code: OpReplaceObject, Value: v}}}
	}

	e := &emitter{}
	computeStruct(e, s, before, after, ctx)
	doc := &Document{ops: e.ops}
	e.finalize()

	return doc
}

// computeStruct emits the member operations for one nesting scope.
func computeStruct(e *emitter, s *schema.Schema, a, b any, ctx *core.Context) {
	if a == b {
		return
	}
	if s.CycleTracking && !ctx.EnterPair(a, b) {
		return
	}
	if s.DirtyTracking {
		if w, ok := b.(dirty.Word); ok {
			computeDirty(e, s, a, b, w, ctx)
			return
		}
	}
	for i := range s.Members {
		emitMember(e, &s.Members[i], a, b, ctx, false)
	}
}

// computeDirty walks only the flagged members, ascending, and schedules the
// word for clearing once the document is finalized.
func computeDirty(e *emitter, s *schema.Schema, a, b any, w dirty.Word, ctx *core.Context) {
	trusted := !ctx.ValidateDirtyOnEmit
	w.DirtyBits().ForEach(func(i int) bool {
		if m := s.Member(i); m != nil {
			emitMember(e, m, a, b, ctx, trusted)
		}
		return true
	})
	e.cleanup = append(e.cleanup, w)
}

// emitMember emits the operations for one member. trusted skips the
// equality pre-check for leaf emissions (dirty fast mode); recursive shapes
// still compute granular operations, confining the cost to flagged members.
func emitMember(e *emitter, m *schema.Member, a, b any, ctx *core.Context, trusted bool) {
	if m.Compare == schema.CompareSkip {
		return
	}
	av, bv := m.Get(a), m.Get(b)

	switch m.Compare {
	case schema.CompareReference:
		if trusted || !compare.Same(m, av, bv) {
			e.set(m.Index, bv)
		}
		return
	case schema.CompareShallow:
		if trusted || !compare.ShallowEqual(m, av, bv) {
			e.set(m.Index, bv)
		}
		return
	}

	switch m.Kind {
	case schema.KindStruct:
		emitNested(e, m, av, bv, ctx)
	case schema.KindSeq:
		emitSeq(e, m, av, bv, ctx)
	case schema.KindSet:
		// Sets only ever replace wholesale.
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
	case schema.KindMap:
		emitMap(e, m, av, bv, ctx)
	case schema.KindArray:
		emitArray(e, m, av, bv, ctx)
	case schema.KindAny:
		// A polymorphic member replaces wholesale; a nested diff across
		// runtime types would not be applicable.
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
	default:
		if trusted || !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
	}
}

// emitNested recurses into a deep record member, dropping empty scopes.
func emitNested(e *emitter, m *schema.Member, av, bv any, ctx *core.Context) {
	ss := m.StructSchema()
	if ss == nil {
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
		return
	}
	nilA, nilB := ss.IsNil(av), ss.IsNil(bv)
	if nilA || nilB {
		if nilA != nilB {
			e.set(m.Index, bv)
		}
		return
	}
	mark := e.begin(m.Index)
	computeStruct(e, ss, av, bv, ctx)
	e.end(mark)
}

// emitSeq handles sequence members: wholesale replacement for shallow and
// order-insensitive sequences, the windowed diff otherwise.
func emitSeq(e *emitter, m *schema.Member, av, bv any, ctx *core.Context) {
	ops := m.Seq
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if nilA != nilB {
			e.set(m.Index, bv)
		}
		return
	}
	if m.DeltaShallow || m.OrderInsensitive {
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
		return
	}
	seqDelta(e, m, av, bv, ctx)
}

// emitMap handles dictionary members: granular removes-then-sets in sorted
// key order, or wholesale replacement when the member is delta-shallow.
func emitMap(e *emitter, m *schema.Member, av, bv any, ctx *core.Context) {
	ops := m.Map
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if nilA != nilB {
			e.set(m.Index, bv)
		}
		return
	}
	if m.DeltaShallow {
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
		return
	}
	// Removes first: keys in a, absent from b.
	for _, k := range ops.SortedKeys(av) {
		if _, ok := ops.Get(bv, k); !ok {
			e.mapRemove(m.Index, k)
		}
	}
	// Then sets: keys in b that are new or carry a differing value.
	for _, k := range ops.SortedKeys(bv) {
		rv, _ := ops.Get(bv, k)
		lv, ok := ops.Get(av, k)
		if !ok || !compare.EqualElem(m, &m.Value, lv, rv, ctx) {
			e.mapSet(m.Index, k, rv)
		}
	}
}

// emitArray handles fixed-shape arrays: wholesale replacement when shallow
// or when the shapes disagree, flat-index rewrites otherwise (fixed shapes
// cannot add or remove).
func emitArray(e *emitter, m *schema.Member, av, bv any, ctx *core.Context) {
	ops := m.Arr
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if nilA != nilB {
			e.set(m.Index, bv)
		}
		return
	}
	if m.DeltaShallow {
		if !compare.EqualMemberValues(m, av, bv, ctx) {
			e.set(m.Index, bv)
		}
		return
	}
	da, db := ops.Dims(av), ops.Dims(bv)
	if len(da) != len(db) {
		e.set(m.Index, bv)
		return
	}
	for i := range da {
		if da[i] != db[i] {
			e.set(m.Index, bv)
			return
		}
	}
	n := ops.Len(av)
	for i := 0; i < n; i++ {
		le, re := ops.At(av, i), ops.At(bv, i)
		if !compare.EqualElem(m, &m.Elem, le, re, ctx) {
			e.seqReplace(m.Index, i, re)
		}
	}
}
