// Package compare: the per-kind leaf helpers. Everything in this file is
// deliberately shared between Equal, Diff, and the delta engine — one
// equality verdict per kind, defined exactly once.
package compare

import (
	"time"

	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// scalarEqual decides leaf equality for a scalar-like kind. Custom string
// equality is applied here and nowhere else. A nil on either side matches
// only a nil on the other: null is never equal to the zero value.
func scalarEqual(k schema.Kind, eq schema.EqualityFunc, av, bv any) bool {
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	switch k {
	case schema.KindBool:
		x, okX := av.(bool)
		y, okY := bv.(bool)

		return okX && okY && x == y
	case schema.KindInt, schema.KindEnum:
		x, okX := av.(int64)
		y, okY := bv.(int64)

		return okX && okY && x == y
	case schema.KindUint, schema.KindFlags:
		x, okX := av.(uint64)
		y, okY := bv.(uint64)

		return okX && okY && x == y
	case schema.KindFloat:
		x, okX := av.(float64)
		y, okY := bv.(float64)

		return okX && okY && core.Float64Eq(x, y)
	case schema.KindString:
		x, okX := av.(string)
		y, okY := bv.(string)
		if !okX || !okY {
			return false
		}
		if eq != nil {
			return eq(x, y)
		}

		return core.StringEq(x, y)
	case schema.KindTime:
		x, okX := av.(time.Time)
		y, okY := bv.(time.Time)

		return okX && okY && core.TimeEq(x, y)
	case schema.KindDuration:
		x, okX := av.(time.Duration)
		y, okY := bv.(time.Duration)

		return okX && okY && x == y
	default: // KindOpaque and anything unforeseen: intrinsic equality.
		same, ok := core.SafeEq(av, bv)

		return ok && same
	}
}

// Same decides reference-mode identity for a member's values: the binding's
// SameRef when the generator supplied one, interface identity otherwise.
func Same(m *schema.Member, av, bv any) bool {
	if m.SameRef != nil {
		return m.SameRef(av, bv)
	}
	same, ok := core.SafeEq(av, bv)

	return ok && same
}

// ShallowEqual decides shallow-mode equality: scalars by value,
// reference-shaped members (records, containers, variants) by identity.
func ShallowEqual(m *schema.Member, av, bv any) bool {
	if m.Kind.ScalarLike() {
		return scalarEqual(m.Kind, m.Equality, av, bv)
	}

	return Same(m, av, bv)
}

// EqualMemberValues decides deep equality of a member's two values.
func EqualMemberValues(m *schema.Member, av, bv any, ctx *core.Context) bool {
	switch m.Kind {
	case schema.KindStruct:
		return structEqual(m.StructSchema(), av, bv, ctx)
	case schema.KindSeq:
		return seqEqual(m, av, bv, ctx)
	case schema.KindSet:
		return setEqual(m, av, bv)
	case schema.KindMap:
		return mapEqual(m, av, bv, ctx)
	case schema.KindArray:
		return arrEqual(m, av, bv, ctx)
	case schema.KindAny:
		return taggedEqual(m, av, bv, ctx)
	default:
		return scalarEqual(m.Kind, m.Equality, av, bv)
	}
}

// EqualMember decides one member of two records under its compare mode.
func EqualMember(m *schema.Member, a, b any, ctx *core.Context) bool {
	switch m.Compare {
	case schema.CompareSkip:
		return true
	case schema.CompareReference:
		return Same(m, m.Get(a), m.Get(b))
	case schema.CompareShallow:
		return ShallowEqual(m, m.Get(a), m.Get(b))
	default:
		return EqualMemberValues(m, m.Get(a), m.Get(b), ctx)
	}
}

// EqualElem decides deep equality of two container elements of the member.
func EqualElem(m *schema.Member, el *schema.Elem, av, bv any, ctx *core.Context) bool {
	switch el.Kind {
	case schema.KindStruct:
		return structEqual(el.Schema(), av, bv, ctx)
	case schema.KindAny:
		return taggedEqual(m, av, bv, ctx)
	default:
		return scalarEqual(el.Kind, m.Equality, av, bv)
	}
}

// structEqual recurses into a nested record, with identity short-circuit,
// null handling, and cycle tracking.
func structEqual(s *schema.Schema, a, b any, ctx *core.Context) bool {
	if s == nil {
		// No linked schema: the best remaining verdict is intrinsic.
		same, ok := core.SafeEq(a, b)

		return ok && same
	}
	if a == b {
		return true
	}
	nilA, nilB := s.IsNil(a), s.IsNil(b)
	if nilA || nilB {
		return nilA && nilB
	}
	if s.CycleTracking && !ctx.EnterPair(a, b) {
		return true // re-encounter: equal so far
	}
	for i := range s.Members {
		if !EqualMember(&s.Members[i], a, b, ctx) {
			return false
		}
	}

	return true
}

// seqEqual compares sequence members: index-aligned when ordered, multiset
// when order-insensitive. Nil is not equal to empty.
func seqEqual(m *schema.Member, av, bv any, ctx *core.Context) bool {
	ops := m.Seq
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		return nilA && nilB
	}
	n := ops.Len(av)
	if ops.Len(bv) != n {
		return false
	}
	if m.OrderInsensitive {
		return multisetEqual(m, av, bv, n, ctx)
	}
	for i := 0; i < n; i++ {
		if !EqualElem(m, &m.Elem, ops.At(av, i), ops.At(bv, i), ctx) {
			return false
		}
	}

	return true
}

// multisetEqual pairs elements greedily in left iteration order: the first
// unconsumed right candidate with an equal key (or full element equality
// when no key members are configured) wins and is consumed. With key
// members, the paired elements must additionally be deep-equal.
func multisetEqual(m *schema.Member, av, bv any, n int, ctx *core.Context) bool {
	ops := m.Seq
	keyed := len(m.KeyIdx()) > 0
	matched := make([]bool, n)
	for i := 0; i < n; i++ {
		le := ops.At(av, i)
		found := false
		for j := 0; j < n; j++ {
			if matched[j] {
				continue
			}
			re := ops.At(bv, j)
			if keyed {
				if !keysMatch(m, le, re, ctx) {
					continue
				}
				matched[j] = true
				if !EqualElem(m, &m.Elem, le, re, ctx) {
					return false
				}
				found = true
				break
			}
			if EqualElem(m, &m.Elem, le, re, ctx) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// keysMatch compares two record elements on the member's key tuple. Absent
// elements pair only with absent elements.
func keysMatch(m *schema.Member, le, re any, ctx *core.Context) bool {
	elemSch := m.Elem.Schema()
	if elemSch == nil {
		return false
	}
	nilL, nilR := elemSch.IsNil(le), elemSch.IsNil(re)
	if nilL || nilR {
		return nilL && nilR
	}
	for _, idx := range m.KeyIdx() {
		km := elemSch.Member(idx)
		if km == nil {
			return false
		}
		if !EqualMemberValues(km, km.Get(le), km.Get(re), ctx) {
			return false
		}
	}

	return true
}

// setEqual compares set members: size equality plus every left element
// present on the right under the container's key equality.
func setEqual(m *schema.Member, av, bv any) bool {
	ops := m.Map
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		return nilA && nilB
	}
	if ops.Len(av) != ops.Len(bv) {
		return false
	}
	equal := true
	ops.Range(av, func(k, _ any) bool {
		if _, ok := ops.Get(bv, k); !ok {
			equal = false
			return false
		}
		return true
	})

	return equal
}

// mapEqual compares dictionary members: same key set under the dictionary's
// key equality, values deep-equal under the element rules.
func mapEqual(m *schema.Member, av, bv any, ctx *core.Context) bool {
	ops := m.Map
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		return nilA && nilB
	}
	if ops.Len(av) != ops.Len(bv) {
		return false
	}
	equal := true
	ops.Range(av, func(k, v any) bool {
		rv, ok := ops.Get(bv, k)
		if !ok || !EqualElem(m, &m.Value, v, rv, ctx) {
			equal = false
			return false
		}
		return true
	})

	return equal
}

// arrEqual compares fixed-shape arrays: same rank, same length in every
// dimension, elementwise equal in row-major order.
func arrEqual(m *schema.Member, av, bv any, ctx *core.Context) bool {
	ops := m.Arr
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		return nilA && nilB
	}
	da, db := ops.Dims(av), ops.Dims(bv)
	if len(da) != len(db) {
		return false
	}
	for i := range da {
		if da[i] != db[i] {
			return false
		}
	}
	n := ops.Len(av)
	for i := 0; i < n; i++ {
		if !EqualElem(m, &m.Elem, ops.At(av, i), ops.At(bv, i), ctx) {
			return false
		}
	}

	return true
}

// taggedEqual dispatches a polymorphic member on its runtime tag. Differing
// tags are not equal; a registered tag recurses through that type's schema;
// an unregistered tag falls back to intrinsic equality, and a value with
// neither is simply not equal (the dispatch failure surfaces as a diff
// entry, never a panic).
func taggedEqual(m *schema.Member, av, bv any, ctx *core.Context) bool {
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	ta, okA := av.(schema.Tagged)
	tb, okB := bv.(schema.Tagged)
	if !okA || !okB {
		same, ok := core.SafeEq(av, bv)

		return ok && same
	}
	if ta.Tag != tb.Tag {
		return false
	}
	if owner := m.Owner(); owner != nil {
		if sch, ok := owner.Resolve(ta.Tag); ok {
			return structEqual(sch, ta.Value, tb.Value, ctx)
		}
	}
	same, ok := core.SafeEq(ta.Value, tb.Value)

	return ok && same
}
