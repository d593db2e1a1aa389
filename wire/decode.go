// SPDX-License-Identifier: MIT
// Package: deepdelta/wire
//
// decode.go — bytes → Document.
//
// The reader is sticky: the first failure poisons it and every later read
// returns zero values, so the op loop stays branch-light and the error is
// checked once per operation.
package wire

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/Quaverflow/deepdelta/delta"
	"github.com/Quaverflow/deepdelta/schema"
)

// Decode parses a document encoded against the same schema. Struct
// snapshots decode into fresh instances and containers into fresh
// containers, so applying a decoded document can never alias the encoder's
// values.
func Decode(s *schema.Schema, data []byte) (*delta.Document, error) {
	r := &reader{data: data}
	count := r.uvarint()
	if count > uint64(len(data)) {
		// Each op costs at least one byte; reject absurd counts before
		// allocating.
		return nil, ErrCorrupt
	}
	ops := make([]delta.Op, 0, count)
	n := int(count)
	if err := r.ops(s, &ops, &n, false); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	if n != 0 || r.pos != len(r.data) {
		return nil, ErrCorrupt
	}

	return delta.FromOps(ops), nil
}

// reader is a sticky-error cursor over the encoded bytes.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.data) {
		r.fail(ErrTruncated)
		return 0
	}
	b := r.data[r.pos]
	r.pos++

	return b
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	u, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		r.fail(ErrTruncated)
		return 0
	}
	r.pos += n

	return u
}

func (r *reader) u64le() uint64 {
	if r.err != nil {
		return 0
	}
	if r.pos+8 > len(r.data) {
		r.fail(ErrTruncated)
		return 0
	}
	u := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8

	return u
}

func (r *reader) i64le() int64 { return int64(r.u64le()) }

func (r *reader) u32le() uint32 {
	if r.err != nil {
		return 0
	}
	if r.pos+4 > len(r.data) {
		r.fail(ErrTruncated)
		return 0
	}
	u := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4

	return u
}

func (r *reader) i32le() int32 { return int32(r.u32le()) }

func (r *reader) str() string {
	n := r.uvarint()
	if r.err != nil {
		return ""
	}
	if n > uint64(len(r.data)-r.pos) {
		r.fail(ErrTruncated)
		return ""
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)

	return s
}

// ops decodes operations, decrementing *n per op, until the scope (or the
// document) ends.
func (r *reader) ops(s *schema.Schema, out *[]delta.Op, n *int, nested bool) error {
	for *n > 0 {
		if r.err != nil {
			return r.err
		}
		*n--
		code := delta.OpCode(r.u8())
		member := int(r.uvarint())
		switch code {
		case delta.OpEndNested:
			*out = append(*out, delta.Op{Code: code})
			if !nested {
				return ErrCorrupt
			}

			return nil

		case delta.OpBeginNested:
			r.uvarint() // body byte count; parsers read through, skippers jump
			m := s.Member(member)
			if m == nil || m.Kind != schema.KindStruct || m.StructSchema() == nil {
				return ErrCorrupt
			}
			*out = append(*out, delta.Op{Code: code, Member: member})
			if err := r.ops(m.StructSchema(), out, n, true); err != nil {
				return err
			}

		case delta.OpReplaceObject:
			v := r.objectValue(s)
			*out = append(*out, delta.Op{Code: code, Value: v})

		case delta.OpSetMember:
			m := s.Member(member)
			if m == nil {
				return ErrCorrupt
			}
			v := r.memberValue(m)
			*out = append(*out, delta.Op{Code: code, Member: member, Value: v})

		case delta.OpSeqReplaceAt, delta.OpSeqAddAt:
			m := s.Member(member)
			if m == nil {
				return ErrCorrupt
			}
			idx := int(r.uvarint())
			v := r.elemValue(m, &m.Elem)
			*out = append(*out, delta.Op{Code: code, Member: member, Index: idx, Value: v})

		case delta.OpSeqRemoveAt:
			idx := int(r.uvarint())
			*out = append(*out, delta.Op{Code: code, Member: member, Index: idx})

		case delta.OpMapSet:
			m := s.Member(member)
			if m == nil {
				return ErrCorrupt
			}
			k := r.elemValue(m, &m.Key)
			v := r.elemValue(m, &m.Value)
			*out = append(*out, delta.Op{Code: code, Member: member, Key: k, Value: v})

		case delta.OpMapRemove:
			m := s.Member(member)
			if m == nil {
				return ErrCorrupt
			}
			k := r.elemValue(m, &m.Key)
			*out = append(*out, delta.Op{Code: code, Member: member, Key: k})

		default:
			return ErrCorrupt
		}
	}
	if nested {
		return ErrCorrupt // scope never closed
	}

	return nil
}

// memberValue decodes a whole member value.
func (r *reader) memberValue(m *schema.Member) any {
	switch m.Kind {
	case schema.KindStruct:
		return r.objectValue(m.StructSchema())
	case schema.KindAny:
		return r.taggedValue(m)
	case schema.KindSeq:
		return r.seqValue(m)
	case schema.KindSet:
		return r.setValue(m)
	case schema.KindMap:
		return r.mapValue(m)
	case schema.KindArray:
		return r.arrValue(m)
	default:
		return r.scalarValue(m.Kind)
	}
}

// elemValue decodes a container element, map key, or map value.
func (r *reader) elemValue(m *schema.Member, el *schema.Elem) any {
	switch el.Kind {
	case schema.KindStruct:
		return r.objectValue(el.Schema())
	case schema.KindAny:
		return r.taggedValue(m)
	default:
		return r.scalarValue(el.Kind)
	}
}

// scalarValue decodes a tagged leaf. The wire tag, not the declared kind,
// selects the representation, so a null travels for any kind.
func (r *reader) scalarValue(_ schema.Kind) any {
	switch tag := r.u8(); tag {
	case valNull:
		return nil
	case valFalse:
		return false
	case valTrue:
		return true
	case valInt:
		return r.i64le()
	case valUint:
		return r.u64le()
	case valFloat:
		return math.Float64frombits(r.u64le())
	case valString:
		return r.str()
	case valTime:
		sec := r.i64le()
		nsec := r.u32le()
		off := r.i32le()

		return time.Unix(sec, int64(nsec)).In(time.FixedZone("", int(off)))
	case valDuration:
		return time.Duration(r.i64le())
	default:
		r.fail(ErrCorrupt)
		return nil
	}
}

// objectValue decodes a record snapshot into a fresh instance.
func (r *reader) objectValue(expect *schema.Schema) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valObject {
		r.fail(ErrCorrupt)
		return nil
	}
	name := r.str()
	if expect == nil {
		r.fail(ErrUnknownType)
		return nil
	}
	sch := expect
	if name != expect.Name {
		resolved, ok := expect.Resolve(name)
		if !ok {
			r.fail(ErrUnknownType)
			return nil
		}
		sch = resolved
	}
	inst := sch.New()
	count := r.uvarint()
	for i := uint64(0); i < count && r.err == nil; i++ {
		m := sch.Member(int(r.uvarint()))
		if m == nil {
			r.fail(ErrCorrupt)
			return nil
		}
		v := r.memberValue(m)
		if r.err != nil {
			return nil
		}
		m.Set(inst, v)
	}

	return inst
}

// taggedValue decodes a polymorphic payload.
func (r *reader) taggedValue(m *schema.Member) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valObject {
		r.fail(ErrCorrupt)
		return nil
	}
	// Re-read the object by rewinding the tag byte: the snapshot layout is
	// shared with objectValue, only the wrapper differs.
	r.pos--
	owner := m.Owner()
	if owner == nil {
		r.fail(ErrUnknownType)
		return nil
	}
	name := r.peekObjectTag()
	if r.err != nil {
		return nil
	}
	sch, ok := owner.Resolve(name)
	if !ok {
		r.fail(ErrUnknownType)
		return nil
	}
	v := r.objectValue(sch)
	if r.err != nil {
		return nil
	}

	return schema.Tagged{Tag: name, Value: v}
}

// peekObjectTag reads the type tag of the upcoming object snapshot without
// consuming it.
func (r *reader) peekObjectTag() string {
	save := r.pos
	if r.u8() != valObject {
		r.fail(ErrCorrupt)
		return ""
	}
	name := r.str()
	r.pos = save

	return name
}

// seqValue decodes a sequence into a fresh container.
func (r *reader) seqValue(m *schema.Member) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valSeq {
		r.fail(ErrCorrupt)
		return nil
	}
	n := r.uvarint()
	c := m.Seq.New(int(n))
	for i := 0; i < int(n) && r.err == nil; i++ {
		c = m.Seq.Insert(c, i, r.elemValue(m, &m.Elem))
	}

	return c
}

// setValue decodes a set into a fresh container.
func (r *reader) setValue(m *schema.Member) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valSeq {
		r.fail(ErrCorrupt)
		return nil
	}
	n := r.uvarint()
	c := m.Map.New()
	for i := uint64(0); i < n && r.err == nil; i++ {
		m.Map.Set(c, r.elemValue(m, &m.Elem), nil)
	}

	return c
}

// mapValue decodes a dictionary into a fresh container.
func (r *reader) mapValue(m *schema.Member) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valMap {
		r.fail(ErrCorrupt)
		return nil
	}
	n := r.uvarint()
	c := m.Map.New()
	for i := uint64(0); i < n && r.err == nil; i++ {
		k := r.elemValue(m, &m.Key)
		v := r.elemValue(m, &m.Value)
		m.Map.Set(c, k, v)
	}

	return c
}

// arrValue decodes a fixed-shape array; the element count must match the
// member's declared shape.
func (r *reader) arrValue(m *schema.Member) any {
	tag := r.u8()
	if tag == valNull || r.err != nil {
		return nil
	}
	if tag != valSeq {
		r.fail(ErrCorrupt)
		return nil
	}
	n := int(r.uvarint())
	c := m.Arr.New()
	if n != m.Arr.Len(c) {
		r.fail(ErrCorrupt)
		return nil
	}
	for i := 0; i < n && r.err == nil; i++ {
		m.Arr.SetAt(c, i, r.elemValue(m, &m.Elem))
	}

	return c
}
