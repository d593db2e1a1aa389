// Package delta: the Delta Document and its operation stream.
package delta

import "github.com/Quaverflow/deepdelta/dirty"

// OpCode tags one operation in a delta document.
type OpCode uint8

const (
	// OpInvalid is the zero OpCode; documents never carry it.
	OpInvalid OpCode = iota

	// OpReplaceObject replaces the whole value (used when one side is nil
	// or the sides are incompatible).
	OpReplaceObject

	// OpSetMember assigns the addressed member's value wholesale.
	OpSetMember

	// OpBeginNested opens a scope against the record at the member; the
	// operations that follow address that record until OpEndNested.
	OpBeginNested

	// OpEndNested closes the innermost nested scope.
	OpEndNested

	// OpSeqReplaceAt overwrites one element of an ordered sequence (or the
	// row-major flat index of a deep array).
	OpSeqReplaceAt

	// OpSeqRemoveAt deletes one element of an ordered sequence.
	OpSeqRemoveAt

	// OpSeqAddAt inserts one element into an ordered sequence.
	OpSeqAddAt

	// OpMapSet stores one entry of a granular dictionary member.
	OpMapSet

	// OpMapRemove deletes one entry of a granular dictionary member.
	OpMapRemove
)

// opNames is indexed by OpCode.
var opNames = [...]string{
	"invalid", "replace-object", "set-member", "begin-nested", "end-nested",
	"seq-replace-at", "seq-remove-at", "seq-add-at", "map-set", "map-remove",
}

// String renders the opcode for errors and logs.
func (c OpCode) String() string {
	if int(c) < len(opNames) {
		return opNames[c]
	}

	return "unknown"
}

// Op is one typed operation. Member is the stable index relative to the
// enclosing nesting scope; Index and Key address sequence positions and
// dictionary keys; Value carries the payload where the opcode takes one.
type Op struct {
	Code   OpCode
	Member int
	Index  int
	Key    any
	Value  any
}

// Document is an ordered, append-only sequence of operations. Documents are
// built by Compute (or decoded off the wire) and are immutable once handed
// to Apply; nothing in this package mutates a finished document.
type Document struct {
	ops []Op
}

// FromOps wraps an operation slice in a Document; the codec and tests use
// it. The slice is taken over, not copied.
func FromOps(ops []Op) *Document { return &Document{ops: ops} }

// IsEmpty reports whether the document carries no operations. Applying an
// empty document is a no-op.
func (d *Document) IsEmpty() bool { return d == nil || len(d.ops) == 0 }

// Len reports the operation count, Begin/End framing included.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	return len(d.ops)
}

// Op returns the operation at position i. Callers must not mutate the
// returned value's Value/Key payloads.
func (d *Document) Op(i int) Op { return d.ops[i] }

// Ops returns a copy of the operation stream, safe to hold and inspect.
func (d *Document) Ops() []Op {
	if d == nil {
		return nil
	}

	return append([]Op(nil), d.ops...)
}

// emitter accumulates operations during Compute. Nested scopes are opened
// with begin and dropped by end when nothing was emitted inside, so empty
// scopes never reach a document. Dirty words read along the way are
// collected and cleared only once the whole document is finalized.
type emitter struct {
	ops     []Op
	cleanup []dirty.Word
}

func (e *emitter) set(member int, v any) {
	e.ops = append(e.ops, Op{Code: OpSetMember, Member: member, Value: v})
}

func (e *emitter) seqReplace(member, idx int, v any) {
	e.ops = append(e.ops, Op{Code: OpSeqReplaceAt, Member: member, Index: idx, Value: v})
}

func (e *emitter) seqRemove(member, idx int) {
	e.ops = append(e.ops, Op{Code: OpSeqRemoveAt, Member: member, Index: idx})
}

func (e *emitter) seqAdd(member, idx int, v any) {
	e.ops = append(e.ops, Op{Code: OpSeqAddAt, Member: member, Index: idx, Value: v})
}

func (e *emitter) mapSet(member int, k, v any) {
	e.ops = append(e.ops, Op{Code: OpMapSet, Member: member, Key: k, Value: v})
}

func (e *emitter) mapRemove(member int, k any) {
	e.ops = append(e.ops, Op{Code: OpMapRemove, Member: member, Key: k})
}

// begin opens a nested scope and returns its mark for end.
func (e *emitter) begin(member int) int {
	e.ops = append(e.ops, Op{Code: OpBeginNested, Member: member})

	return len(e.ops) - 1
}

// end closes the scope opened at mark, dropping it when empty.
func (e *emitter) end(mark int) {
	if len(e.ops) == mark+1 {
		e.ops = e.ops[:mark]
		return
	}
	e.ops = append(e.ops, Op{Code: OpEndNested})
}

// finalize clears every dirty word consumed during emission. Called exactly
// once, after the document exists; an emission aborted by a panicking user
// callback never reaches it, so those bits stay set and may re-emit.
func (e *emitter) finalize() {
	for _, w := range e.cleanup {
		w.ClearDirty()
	}
}
