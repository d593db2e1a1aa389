// Package dirty implements the per-instance dirty-word a generated record
// type embeds to drive O(#dirty) delta computation.
//
// 🚀 How it works:
//
//	Each generated setter marks the bit of its member's stable index:
//
//	  func (o *Order) SetNotes(v string) { o.Notes = v; o.Mark(1) }
//
//	The delta engine reads the word through the Word facade, emits only the
//	flagged members, and clears the word once the document is finalized.
//
// Semantics: a set bit means the member MAY differ from the last snapshot;
// an unset bit means it is unchanged. The engine may trust the bits (fast
// mode) or verify each flagged member against the baseline (validate mode).
//
// A Tracker is owned exclusively by its instance: it is zeroed when the
// instance is constructed and after a successful emit, it is never shared
// across instances, and it tolerates at most one writer at a time.
package dirty
