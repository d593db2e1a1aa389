// SPDX-License-Identifier: MIT
// Package: deepdelta/wire
//
// encode.go — Document → bytes.
//
// Shape information comes from the schema, never from the values: the
// member index of every operation selects the payload encoding, which is
// what keeps the format reflection-free and bit-exact across runtimes.
package wire

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/Quaverflow/deepdelta/delta"
	"github.com/Quaverflow/deepdelta/schema"
)

// Value tag bytes.
const (
	valNull uint8 = iota
	valFalse
	valTrue
	valInt
	valUint
	valFloat
	valString
	valTime
	valDuration
	valObject
	valSeq
	valMap
)

// Encode serializes the document against its schema.
func Encode(s *schema.Schema, doc *delta.Document) ([]byte, error) {
	w := &encoder{visiting: make(map[any]struct{})}
	w.uvarint(uint64(doc.Len()))
	next, err := w.ops(s, doc, 0, false)
	if err != nil {
		return nil, err
	}
	if next != doc.Len() {
		return nil, ErrCorrupt
	}

	return w.buf, nil
}

// encoder accumulates output; visiting guards object snapshots against
// cycles.
type encoder struct {
	buf      []byte
	visiting map[any]struct{}
}

func (w *encoder) u8(b uint8)        { w.buf = append(w.buf, b) }
func (w *encoder) uvarint(u uint64)  { w.buf = binary.AppendUvarint(w.buf, u) }
func (w *encoder) u64le(u uint64)    { w.buf = binary.LittleEndian.AppendUint64(w.buf, u) }
func (w *encoder) i64le(v int64)     { w.u64le(uint64(v)) }
func (w *encoder) u32le(u uint32)    { w.buf = binary.LittleEndian.AppendUint32(w.buf, u) }
func (w *encoder) i32le(v int32)     { w.u32le(uint32(v)) }
func (w *encoder) str(s string) {
	w.uvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// ops encodes operations from position i until the stream (or, when nested,
// the enclosing scope) ends; returns the next unconsumed position.
func (w *encoder) ops(s *schema.Schema, doc *delta.Document, i int, nested bool) (int, error) {
	for i < doc.Len() {
		op := doc.Op(i)
		if op.Code == delta.OpEndNested {
			if !nested {
				return i, ErrCorrupt
			}
			w.u8(uint8(op.Code))
			w.uvarint(0)

			return i + 1, nil
		}
		var err error
		if i, err = w.op(s, doc, i, op); err != nil {
			return i, err
		}
	}
	if nested {
		return i, ErrCorrupt // scope never closed
	}

	return i, nil
}

// op encodes a single operation (recursing for nested scopes) and returns
// the next position.
func (w *encoder) op(s *schema.Schema, doc *delta.Document, i int, op delta.Op) (int, error) {
	switch op.Code {
	case delta.OpReplaceObject:
		w.u8(uint8(op.Code))
		w.uvarint(0)

		return i + 1, w.objectValue(s, op.Value)

	case delta.OpSetMember:
		m := s.Member(op.Member)
		if m == nil {
			return i, ErrCorrupt
		}
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))

		return i + 1, w.memberValue(m, op.Value)

	case delta.OpBeginNested:
		m := s.Member(op.Member)
		if m == nil || m.Kind != schema.KindStruct || m.StructSchema() == nil {
			return i, ErrCorrupt
		}
		// Body goes through a sub-encoder so the byte count can prefix it.
		sub := &encoder{visiting: w.visiting}
		next, err := sub.ops(m.StructSchema(), doc, i+1, true)
		if err != nil {
			return next, err
		}
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))
		w.uvarint(uint64(len(sub.buf)))
		w.buf = append(w.buf, sub.buf...)

		return next, nil

	case delta.OpSeqReplaceAt, delta.OpSeqAddAt:
		m := s.Member(op.Member)
		if m == nil {
			return i, ErrCorrupt
		}
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))
		w.uvarint(uint64(op.Index))

		return i + 1, w.elemValue(m, &m.Elem, op.Value)

	case delta.OpSeqRemoveAt:
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))
		w.uvarint(uint64(op.Index))

		return i + 1, nil

	case delta.OpMapSet:
		m := s.Member(op.Member)
		if m == nil {
			return i, ErrCorrupt
		}
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))
		if err := w.elemValue(m, &m.Key, op.Key); err != nil {
			return i, err
		}

		return i + 1, w.elemValue(m, &m.Value, op.Value)

	case delta.OpMapRemove:
		m := s.Member(op.Member)
		if m == nil {
			return i, ErrCorrupt
		}
		w.u8(uint8(op.Code))
		w.uvarint(uint64(op.Member))

		return i + 1, w.elemValue(m, &m.Key, op.Key)

	default:
		return i, ErrCorrupt
	}
}

// memberValue encodes a whole member value, shape taken from the member.
func (w *encoder) memberValue(m *schema.Member, v any) error {
	switch m.Kind {
	case schema.KindStruct:
		return w.objectValue(m.StructSchema(), v)
	case schema.KindAny:
		return w.taggedValue(m, v)
	case schema.KindSeq:
		return w.seqValue(m, v)
	case schema.KindSet:
		return w.setValue(m, v)
	case schema.KindMap:
		return w.mapValue(m, v)
	case schema.KindArray:
		return w.arrValue(m, v)
	default:
		return w.scalarValue(m.Kind, v)
	}
}

// elemValue encodes a container element, map key, or map value.
func (w *encoder) elemValue(m *schema.Member, el *schema.Elem, v any) error {
	switch el.Kind {
	case schema.KindStruct:
		return w.objectValue(el.Schema(), v)
	case schema.KindAny:
		return w.taggedValue(m, v)
	default:
		return w.scalarValue(el.Kind, v)
	}
}

// scalarValue encodes a leaf value with its tag.
func (w *encoder) scalarValue(k schema.Kind, v any) error {
	if v == nil {
		w.u8(valNull)
		return nil
	}
	switch k {
	case schema.KindBool:
		b, ok := v.(bool)
		if !ok {
			return ErrUnsupportedValue
		}
		if b {
			w.u8(valTrue)
		} else {
			w.u8(valFalse)
		}
	case schema.KindInt, schema.KindEnum:
		x, ok := v.(int64)
		if !ok {
			return ErrUnsupportedValue
		}
		w.u8(valInt)
		w.i64le(x)
	case schema.KindUint, schema.KindFlags:
		x, ok := v.(uint64)
		if !ok {
			return ErrUnsupportedValue
		}
		w.u8(valUint)
		w.u64le(x)
	case schema.KindFloat:
		x, ok := v.(float64)
		if !ok {
			return ErrUnsupportedValue
		}
		w.u8(valFloat)
		w.u64le(math.Float64bits(x))
	case schema.KindString:
		x, ok := v.(string)
		if !ok {
			return ErrUnsupportedValue
		}
		w.u8(valString)
		w.str(x)
	case schema.KindTime:
		t, ok := v.(time.Time)
		if !ok {
			return ErrUnsupportedValue
		}
		_, off := t.Zone()
		w.u8(valTime)
		w.i64le(t.Unix())
		w.u32le(uint32(t.Nanosecond()))
		w.i32le(int32(off))
	case schema.KindDuration:
		d, ok := v.(time.Duration)
		if !ok {
			return ErrUnsupportedValue
		}
		w.u8(valDuration)
		w.i64le(int64(d))
	default:
		return ErrUnsupportedValue
	}

	return nil
}

// objectValue encodes a record snapshot: type tag, then every non-skip
// member's value keyed by stable index. Snapshots are trees; a cycle fails.
func (w *encoder) objectValue(s *schema.Schema, v any) error {
	if s == nil {
		return ErrUnknownType
	}
	if v == nil || s.IsNil(v) {
		w.u8(valNull)
		return nil
	}
	if _, cyclic := w.visiting[v]; cyclic {
		return ErrCyclicValue
	}
	w.visiting[v] = struct{}{}
	defer delete(w.visiting, v)

	w.u8(valObject)
	w.str(s.Name)
	count := 0
	for i := range s.Members {
		if s.Members[i].Compare != schema.CompareSkip {
			count++
		}
	}
	w.uvarint(uint64(count))
	for i := range s.Members {
		m := &s.Members[i]
		if m.Compare == schema.CompareSkip {
			continue
		}
		w.uvarint(uint64(m.Index))
		if err := w.memberValue(m, m.Get(v)); err != nil {
			return err
		}
	}

	return nil
}

// taggedValue encodes a polymorphic payload as an object snapshot under its
// runtime tag.
func (w *encoder) taggedValue(m *schema.Member, v any) error {
	if v == nil {
		w.u8(valNull)
		return nil
	}
	t, ok := v.(schema.Tagged)
	if !ok {
		return ErrUnsupportedValue
	}
	owner := m.Owner()
	if owner == nil {
		return ErrUnknownType
	}
	sch, ok := owner.Resolve(t.Tag)
	if !ok {
		return ErrUnknownType
	}

	return w.objectValue(sch, t.Value)
}

// seqValue encodes a sequence container elementwise.
func (w *encoder) seqValue(m *schema.Member, v any) error {
	if v == nil || m.Seq.IsNil(v) {
		w.u8(valNull)
		return nil
	}
	n := m.Seq.Len(v)
	w.u8(valSeq)
	w.uvarint(uint64(n))
	for i := 0; i < n; i++ {
		if err := w.elemValue(m, &m.Elem, m.Seq.At(v, i)); err != nil {
			return err
		}
	}

	return nil
}

// setValue encodes a set as its sorted elements.
func (w *encoder) setValue(m *schema.Member, v any) error {
	if v == nil || m.Map.IsNil(v) {
		w.u8(valNull)
		return nil
	}
	keys := m.Map.SortedKeys(v)
	w.u8(valSeq)
	w.uvarint(uint64(len(keys)))
	for _, k := range keys {
		if err := w.elemValue(m, &m.Elem, k); err != nil {
			return err
		}
	}

	return nil
}

// mapValue encodes a dictionary as sorted key/value pairs.
func (w *encoder) mapValue(m *schema.Member, v any) error {
	if v == nil || m.Map.IsNil(v) {
		w.u8(valNull)
		return nil
	}
	keys := m.Map.SortedKeys(v)
	w.u8(valMap)
	w.uvarint(uint64(len(keys)))
	for _, k := range keys {
		if err := w.elemValue(m, &m.Key, k); err != nil {
			return err
		}
		mv, _ := m.Map.Get(v, k)
		if err := w.elemValue(m, &m.Value, mv); err != nil {
			return err
		}
	}

	return nil
}

// arrValue encodes a fixed-shape array as its row-major elements; the
// decoder rebuilds the shape from the member's constructor.
func (w *encoder) arrValue(m *schema.Member, v any) error {
	if v == nil || m.Arr.IsNil(v) {
		w.u8(valNull)
		return nil
	}
	n := m.Arr.Len(v)
	w.u8(valSeq)
	w.uvarint(uint64(n))
	for i := 0; i < n; i++ {
		if err := w.elemValue(m, &m.Elem, m.Arr.At(v, i)); err != nil {
			return err
		}
	}

	return nil
}
