// Package delta computes and applies compact edit documents: given a
// "before" and an "after" value of one registered type, Compute emits the
// typed operations that turn the former into the latter, and Apply replays
// them against a target.
//
// 🚀 The shape of a document:
//
//	SetMember(1, "b")                  // scalar rewrite
//	BeginNested(2)                     //   descend into member 2
//	  SetMember(0, int64(9))           //   ...nested edits...
//	EndNested                          //   empty scopes are dropped
//	SeqRemoveAt(3, 1)                  // ordered-sequence edits
//	MapSet(4, "role", "x")             // granular dictionary edits
//
// ✨ Guarantees:
//
//   - Deterministic — member-index order, replaces → removes (descending) →
//     adds (ascending), map keys sorted; identical inputs produce
//     byte-identical documents.
//   - Consistent — every equality verdict comes from the compare package,
//     so Compute can never disagree with Equal.
//   - Round-trip — Apply(clone(a), Compute(a, b)) is deep-equal to b.
//   - O(#dirty) — values exposing a dirty-word get the fast path; validate
//     mode re-checks each flagged member and then matches the baseline
//     algorithm bit for bit.
//
// Apply is total on documents this engine produced. Against a target that
// has diverged it reports a structured *ApplyError (failing op, member
// path, reason) and performs no rollback.
package delta
