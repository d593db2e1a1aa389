// Package wire is the bit-exact binary codec for delta documents, built for
// interop with the other language runtimes of the generator.
//
// 📦 Layout:
//
//	document := op_count:uvarint | op...
//	op       := opcode:u8 | member_index:uvarint | payload
//
//	BeginNested carries a uvarint byte count of its encoded body (EndNested
//	included) right after the member index, so skippers can jump a scope
//	without parsing it. Primitive payloads are little-endian fixed-width;
//	strings are len:uvarint | utf8 bytes. Documents are self-delimited.
//
// Values are tagged: null, booleans, int64/uint64/float64, string, time
// (unix seconds + nanos + zone offset), duration, object snapshots
// (type tag + member values), sequences, and maps. Object snapshots let a
// whole-member replacement travel the wire and decode into a fresh
// instance; containers decode into fresh containers, never aliasing the
// encoder's.
//
// Determinism: Encode(s, Compute(s, a, b, ctx)) is a pure function of the
// document, and Decode inverts it exactly — the round-trip is byte-equal.
//
// Values with no wire representation (opaque kinds, unregistered
// polymorphic tags, cyclic snapshots) fail Encode with a sentinel error;
// nothing is silently skipped.
package wire
