// Package delta: the Apply engine.
package delta

import (
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// frame is one level of the nested-scope stack during Apply.
type frame struct {
	s   *schema.Schema
	rec any
}

// Apply replays the document against target, in document order, and returns
// the updated value (the handle is rebound when the document replaces the
// whole object, so callers use the return value).
//
// A correctly constructed document applied to the original "before" yields
// a value deep-equal to the original "after". Against a target that has
// diverged, Apply stops at the offending operation with a *ApplyError; the
// operations already applied stay applied.
//
// Nested scopes against a nil member first materialize a fresh instance
// from the member type's constructor, then apply the scope's operations to
// it — equivalent to assigning the default-constructed value beforehand.
func Apply(s *schema.Schema, target any, doc *Document) (any, error) {
	if doc.IsEmpty() {
		return target, nil
	}
	pb := core.NewPathBuilder()
	cur := frame{s: s, rec: target}
	var stack []frame
	result := target

	for i := 0; i < doc.Len(); i++ {
		op := doc.Op(i)
		switch op.Code {
		case OpReplaceObject:
			if len(stack) != 0 {
				return result, &ApplyError{Op: op, Path: pb.String(), Reason: "replace-object inside nested scope"}
			}
			result = op.Value
			cur.rec = op.Value

		case OpSetMember:
			m, err := member(cur, op, pb)
			if err != nil {
				return result, err
			}
			m.Set(cur.rec, op.Value)

		case OpBeginNested:
			m, err := member(cur, op, pb)
			if err != nil {
				return result, err
			}
			child, cs, err := openScope(cur, m, op, pb)
			if err != nil {
				return result, err
			}
			pb.PushMember(m.Name)
			stack = append(stack, cur)
			cur = frame{s: cs, rec: child}

		case OpEndNested:
			if len(stack) == 0 {
				return result, &ApplyError{Op: op, Path: pb.String(), Reason: "unbalanced end-nested"}
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pb.Pop()

		case OpSeqReplaceAt:
			if err := seqReplaceAt(cur, op, pb); err != nil {
				return result, err
			}

		case OpSeqRemoveAt, OpSeqAddAt:
			if err := seqResize(cur, op, pb); err != nil {
				return result, err
			}

		case OpMapSet, OpMapRemove:
			if err := mapEdit(cur, op, pb); err != nil {
				return result, err
			}

		default:
			return result, &ApplyError{Op: op, Path: pb.String(), Reason: "unknown opcode"}
		}
	}

	if len(stack) != 0 {
		return result, &ApplyError{Op: Op{Code: OpEndNested}, Path: pb.String(), Reason: "unterminated nested scope"}
	}

	return result, nil
}

// member resolves an op's member index against the current scope.
func member(cur frame, op Op, pb *core.PathBuilder) (*schema.Member, error) {
	if cur.rec == nil || cur.s.IsNil(cur.rec) {
		return nil, &ApplyError{Op: op, Path: pb.String(), Reason: "target is nil"}
	}
	m := cur.s.Member(op.Member)
	if m == nil {
		return nil, &ApplyError{Op: op, Path: pb.String(), Reason: "member index out of range"}
	}

	return m, nil
}

// memberFail builds an ApplyError at the member's path.
func memberFail(op Op, pb *core.PathBuilder, name, reason string) error {
	pb.PushMember(name)
	err := &ApplyError{Op: op, Path: pb.String(), Reason: reason}
	pb.Pop()

	return err
}

// openScope resolves the record a nested scope descends into, materializing
// a fresh nested instance when the target member is nil.
func openScope(cur frame, m *schema.Member, op Op, pb *core.PathBuilder) (child any, cs *schema.Schema, err error) {
	switch m.Kind {
	case schema.KindStruct:
		cs = m.StructSchema()
		if cs == nil {
			return nil, nil, memberFail(op, pb, m.Name, "nested member schema not linked")
		}
		child = m.Get(cur.rec)
		if cs.IsNil(child) {
			child = cs.New()
			m.Set(cur.rec, child)
		}

		return child, cs, nil
	case schema.KindAny:
		t, ok := m.Get(cur.rec).(schema.Tagged)
		if !ok {
			return nil, nil, memberFail(op, pb, m.Name, "nested scope on absent polymorphic member")
		}
		cs, ok = cur.s.Resolve(t.Tag)
		if !ok {
			return nil, nil, memberFail(op, pb, m.Name, "polymorphic tag not registered")
		}
		if cs.IsNil(t.Value) {
			return nil, nil, memberFail(op, pb, m.Name, "nested scope on nil polymorphic payload")
		}

		return t.Value, cs, nil
	default:
		return nil, nil, memberFail(op, pb, m.Name, "nested scope on non-record member")
	}
}

// seqReplaceAt overwrites one element of a sequence or deep-array member.
func seqReplaceAt(cur frame, op Op, pb *core.PathBuilder) error {
	m, err := member(cur, op, pb)
	if err != nil {
		return err
	}
	if m.Kind == schema.KindArray && m.Arr != nil {
		c := m.Get(cur.rec)
		if m.Arr.IsNil(c) {
			return memberFail(op, pb, m.Name, "array is nil")
		}
		if op.Index < 0 || op.Index >= m.Arr.Len(c) {
			return memberFail(op, pb, m.Name, "array index out of range")
		}
		m.Arr.SetAt(c, op.Index, op.Value)

		return nil
	}
	if m.Seq == nil {
		return memberFail(op, pb, m.Name, "sequence op on non-sequence member")
	}
	c := m.Get(cur.rec)
	if m.Seq.IsNil(c) {
		return memberFail(op, pb, m.Name, "sequence is nil")
	}
	if op.Index < 0 || op.Index >= m.Seq.Len(c) {
		return memberFail(op, pb, m.Name, "sequence index out of range")
	}
	m.Seq.SetAt(c, op.Index, op.Value)

	return nil
}

// seqResize inserts into or removes from a sequence member, rebinding the
// container through the member setter because the handle may change.
func seqResize(cur frame, op Op, pb *core.PathBuilder) error {
	m, err := member(cur, op, pb)
	if err != nil {
		return err
	}
	if m.Seq == nil {
		return memberFail(op, pb, m.Name, "sequence op on non-sequence member")
	}
	c := m.Get(cur.rec)
	if m.Seq.IsNil(c) {
		return memberFail(op, pb, m.Name, "sequence is nil")
	}
	n := m.Seq.Len(c)
	if op.Code == OpSeqRemoveAt {
		if op.Index < 0 || op.Index >= n {
			return memberFail(op, pb, m.Name, "sequence index out of range")
		}
		c = m.Seq.Remove(c, op.Index)
	} else {
		if op.Index < 0 || op.Index > n {
			return memberFail(op, pb, m.Name, "sequence index out of range")
		}
		c = m.Seq.Insert(c, op.Index, op.Value)
	}
	m.Set(cur.rec, c)

	return nil
}

// mapEdit stores or deletes one entry of a granular dictionary member.
func mapEdit(cur frame, op Op, pb *core.PathBuilder) error {
	m, err := member(cur, op, pb)
	if err != nil {
		return err
	}
	if m.Map == nil {
		return memberFail(op, pb, m.Name, "map op on non-map member")
	}
	c := m.Get(cur.rec)
	if m.Map.IsNil(c) {
		return memberFail(op, pb, m.Name, "map is nil")
	}
	if op.Code == OpMapRemove {
		if _, ok := m.Map.Get(c, op.Key); !ok {
			return memberFail(op, pb, m.Name, "key not present")
		}
		m.Map.Del(c, op.Key)

		return nil
	}
	m.Map.Set(c, op.Key, op.Value)

	return nil
}
