// Package compare: the Diff engine. Diff walks the same per-kind rules as
// Equal but keeps a path builder alongside, reporting every divergence as a
// path-qualified Difference instead of short-circuiting.
package compare

import (
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// DiffKind classifies a single difference.
type DiffKind uint8

const (
	// DiffModified means both sides carry a value and they differ.
	DiffModified DiffKind = iota

	// DiffAdded means the right side carries an element the left lacks.
	DiffAdded

	// DiffRemoved means the left side carries an element the right lacks.
	DiffRemoved
)

// diffKindNames is indexed by DiffKind.
var diffKindNames = [...]string{"modified", "added", "removed"}

// String renders the difference class.
func (k DiffKind) String() string {
	if int(k) < len(diffKindNames) {
		return diffKindNames[k]
	}

	return "unknown"
}

// Difference is one path-qualified divergence between two values.
// The top-level whole-value difference (one side nil) carries an empty Path.
type Difference struct {
	// Path locates the divergence: "Customer.Address.Street", "People[3]".
	Path string

	// Kind classifies the divergence.
	Kind DiffKind

	// Left and Right are the diverging values (member, element, or entry).
	Left  any
	Right any
}

// Diff enumerates the differences between two values of the schema's type.
// A nil result means the values are deep-equal; Equal and Diff share every
// leaf helper, so len(Diff(...)) == 0 exactly when Equal(...) is true.
func Diff(s *schema.Schema, a, b any, ctx *core.Context) []Difference {
	if ctx == nil {
		ctx = core.NewContext()
	}
	d := &differ{pb: core.NewPathBuilder(), ctx: ctx}
	d.structDiff(s, a, b)

	return d.out
}

// differ carries the walk state: the path under construction and the
// accumulated output.
type differ struct {
	pb  *core.PathBuilder
	ctx *core.Context
	out []Difference
}

// report appends one difference at the current path.
func (d *differ) report(kind DiffKind, left, right any) {
	d.out = append(d.out, Difference{Path: d.pb.String(), Kind: kind, Left: left, Right: right})
}

// structDiff mirrors structEqual, reporting instead of short-circuiting.
func (d *differ) structDiff(s *schema.Schema, a, b any) {
	if s == nil {
		if same, ok := core.SafeEq(a, b); !ok || !same {
			d.report(DiffModified, a, b)
		}
		return
	}
	if a == b {
		return
	}
	nilA, nilB := s.IsNil(a), s.IsNil(b)
	if nilA || nilB {
		if !nilA || !nilB {
			d.report(DiffModified, a, b)
		}
		return
	}
	if s.CycleTracking && !d.ctx.EnterPair(a, b) {
		return
	}
	for i := range s.Members {
		d.memberDiff(&s.Members[i], a, b)
	}
}

// memberDiff applies the member's compare mode at its path segment.
func (d *differ) memberDiff(m *schema.Member, a, b any) {
	if m.Compare == schema.CompareSkip {
		return
	}
	av, bv := m.Get(a), m.Get(b)
	d.pb.PushMember(m.Name)
	switch m.Compare {
	case schema.CompareReference:
		if !Same(m, av, bv) {
			d.report(DiffModified, av, bv)
		}
	case schema.CompareShallow:
		if !ShallowEqual(m, av, bv) {
			d.report(DiffModified, av, bv)
		}
	default:
		d.valueDiff(m, av, bv)
	}
	d.pb.Pop()
}

// valueDiff recurses a deep member by kind.
func (d *differ) valueDiff(m *schema.Member, av, bv any) {
	switch m.Kind {
	case schema.KindStruct:
		d.structDiff(m.StructSchema(), av, bv)
	case schema.KindSeq:
		d.seqDiff(m, av, bv)
	case schema.KindSet:
		d.setDiff(m, av, bv)
	case schema.KindMap:
		d.mapDiff(m, av, bv)
	case schema.KindArray:
		d.arrDiff(m, av, bv)
	case schema.KindAny:
		d.taggedDiff(m, av, bv)
	default:
		if !scalarEqual(m.Kind, m.Equality, av, bv) {
			d.report(DiffModified, av, bv)
		}
	}
}

// elemDiff recurses one container element.
func (d *differ) elemDiff(m *schema.Member, el *schema.Elem, av, bv any) {
	switch el.Kind {
	case schema.KindStruct:
		d.structDiff(el.Schema(), av, bv)
	case schema.KindAny:
		d.taggedDiff(m, av, bv)
	default:
		if !scalarEqual(el.Kind, m.Equality, av, bv) {
			d.report(DiffModified, av, bv)
		}
	}
}

// seqDiff walks a sequence member: index-aligned when ordered, paired
// multiset when order-insensitive.
func (d *differ) seqDiff(m *schema.Member, av, bv any) {
	ops := m.Seq
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if !nilA || !nilB {
			d.report(DiffModified, av, bv)
		}
		return
	}
	if m.OrderInsensitive {
		d.multisetDiff(m, av, bv)
		return
	}
	la, lb := ops.Len(av), ops.Len(bv)
	n := la
	if lb < n {
		n = lb
	}
	for i := 0; i < n; i++ {
		d.pb.PushIndex(i)
		d.elemDiff(m, &m.Elem, ops.At(av, i), ops.At(bv, i))
		d.pb.Pop()
	}
	for i := n; i < la; i++ {
		d.pb.PushIndex(i)
		d.report(DiffRemoved, ops.At(av, i), nil)
		d.pb.Pop()
	}
	for i := n; i < lb; i++ {
		d.pb.PushIndex(i)
		d.report(DiffAdded, nil, ops.At(bv, i))
		d.pb.Pop()
	}
}

// multisetDiff pairs elements the same way multisetEqual does (left order,
// first unconsumed key/equality match wins), then reports leftovers.
func (d *differ) multisetDiff(m *schema.Member, av, bv any) {
	ops := m.Seq
	la, lb := ops.Len(av), ops.Len(bv)
	keyed := len(m.KeyIdx()) > 0
	matched := make([]bool, lb)
	for i := 0; i < la; i++ {
		le := ops.At(av, i)
		found := false
		for j := 0; j < lb; j++ {
			if matched[j] {
				continue
			}
			re := ops.At(bv, j)
			if keyed {
				if !keysMatch(m, le, re, d.ctx) {
					continue
				}
				matched[j] = true
				found = true
				d.pb.PushIndex(i)
				d.elemDiff(m, &m.Elem, le, re)
				d.pb.Pop()
				break
			}
			if EqualElem(m, &m.Elem, le, re, d.ctx) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			d.pb.PushIndex(i)
			d.report(DiffRemoved, le, nil)
			d.pb.Pop()
		}
	}
	for j := 0; j < lb; j++ {
		if matched[j] {
			continue
		}
		d.pb.PushIndex(j)
		d.report(DiffAdded, nil, ops.At(bv, j))
		d.pb.Pop()
	}
}

// setDiff reports membership changes of a set member, keys in sorted order.
func (d *differ) setDiff(m *schema.Member, av, bv any) {
	ops := m.Map
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if !nilA || !nilB {
			d.report(DiffModified, av, bv)
		}
		return
	}
	for _, k := range ops.SortedKeys(av) {
		if _, ok := ops.Get(bv, k); !ok {
			d.pb.PushKey(k)
			d.report(DiffRemoved, k, nil)
			d.pb.Pop()
		}
	}
	for _, k := range ops.SortedKeys(bv) {
		if _, ok := ops.Get(av, k); !ok {
			d.pb.PushKey(k)
			d.report(DiffAdded, nil, k)
			d.pb.Pop()
		}
	}
}

// mapDiff reports key-set and value changes of a dictionary member, keys in
// sorted order.
func (d *differ) mapDiff(m *schema.Member, av, bv any) {
	ops := m.Map
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if !nilA || !nilB {
			d.report(DiffModified, av, bv)
		}
		return
	}
	for _, k := range ops.SortedKeys(av) {
		lv, _ := ops.Get(av, k)
		rv, ok := ops.Get(bv, k)
		if !ok {
			d.pb.PushKey(k)
			d.report(DiffRemoved, lv, nil)
			d.pb.Pop()
			continue
		}
		d.pb.PushKey(k)
		d.elemDiff(m, &m.Value, lv, rv)
		d.pb.Pop()
	}
	for _, k := range ops.SortedKeys(bv) {
		if _, ok := ops.Get(av, k); !ok {
			rv, _ := ops.Get(bv, k)
			d.pb.PushKey(k)
			d.report(DiffAdded, nil, rv)
			d.pb.Pop()
		}
	}
}

// arrDiff walks a fixed-shape array member; a shape mismatch is one
// difference at the member path, otherwise elements report at their
// multi-dimensional coordinates ("Grid[1][2]").
func (d *differ) arrDiff(m *schema.Member, av, bv any) {
	ops := m.Arr
	nilA, nilB := ops.IsNil(av), ops.IsNil(bv)
	if nilA || nilB {
		if !nilA || !nilB {
			d.report(DiffModified, av, bv)
		}
		return
	}
	da, db := ops.Dims(av), ops.Dims(bv)
	if len(da) != len(db) {
		d.report(DiffModified, av, bv)
		return
	}
	for i := range da {
		if da[i] != db[i] {
			d.report(DiffModified, av, bv)
			return
		}
	}
	n := ops.Len(av)
	coords := make([]int, len(da))
	for i := 0; i < n; i++ {
		le, re := ops.At(av, i), ops.At(bv, i)
		if EqualElem(m, &m.Elem, le, re, d.ctx) {
			continue
		}
		flatCoords(i, da, coords)
		for _, c := range coords {
			d.pb.PushIndex(c)
		}
		d.elemDiff(m, &m.Elem, le, re)
		for range coords {
			d.pb.Pop()
		}
	}
}

// flatCoords converts a row-major flat index into per-dimension coordinates.
func flatCoords(flat int, dims []int, out []int) {
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] > 0 {
			out[i] = flat % dims[i]
			flat /= dims[i]
		} else {
			out[i] = 0
		}
	}
}

// taggedDiff reports a polymorphic member: tag changes and dispatch
// failures are single entries; same registered tag recurses.
func (d *differ) taggedDiff(m *schema.Member, av, bv any) {
	if av == nil || bv == nil {
		if av != nil || bv != nil {
			d.report(DiffModified, av, bv)
		}
		return
	}
	ta, okA := av.(schema.Tagged)
	tb, okB := bv.(schema.Tagged)
	if !okA || !okB {
		if same, ok := core.SafeEq(av, bv); !ok || !same {
			d.report(DiffModified, av, bv)
		}
		return
	}
	if ta.Tag != tb.Tag {
		d.report(DiffModified, av, bv)
		return
	}
	if owner := m.Owner(); owner != nil {
		if sch, ok := owner.Resolve(ta.Tag); ok {
			d.structDiff(sch, ta.Value, tb.Value)
			return
		}
	}
	if same, ok := core.SafeEq(ta.Value, tb.Value); !ok || !same {
		d.report(DiffModified, av, bv)
	}
}
