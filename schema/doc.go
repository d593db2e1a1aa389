// Package schema turns the metadata emitted by the host attribute scanner
// into compiled, immutable member tables the comparison and delta engines
// execute against.
//
// 🚀 The pipeline:
//
//	TypeDescriptor + Binding ──Register──▶ *Schema ──WarmUp──▶ linked tables
//
//	  • TypeDescriptor / MemberDescriptor — the abstract metadata contract:
//	    declared kinds, compare policy, projections, key members, masks.
//	  • Binding — the generated accessors: Get/Set per member, container
//	    vtables (SeqOps/MapOps/ArrOps), the type constructor, nil checks.
//	  • Schema / Member — the compiled result: dense stable indices, resolved
//	    custom equality, bitfield mapping, linked nested-type references.
//
// ✨ Guarantees:
//
//   - Member indices are dense, 0-based, stable across runs of the same
//     schema, and double as the wire key inside delta operations.
//   - Every schema problem surfaces at Register/WarmUp as a SchemaError
//     sentinel — never at comparison time.
//   - After WarmUp the registry and every table are read-only and safe for
//     unrestricted concurrent reads.
//
// Registration order does not matter: nested-type references are resolved
// by name when the registry links, so mutually recursive types register in
// any order.
package schema
