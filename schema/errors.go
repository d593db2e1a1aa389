// SPDX-License-Identifier: MIT
// Package: deepdelta/schema
//
// errors.go — sentinel errors for schema compilation and the registry.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Sentinels are NEVER wrapped with formatted strings at definition site.
//   • Compile/Register/WarmUp attach context using errors.Wrapf.
//   • Every sentinel here is a build-time failure: a schema that registers
//     and warms up cleanly can never raise one of these at runtime.
package schema

import "github.com/pkg/errors"

// Sentinel errors for descriptor validation, binding checks, and linking.
var (
	// ErrEmptyTypeName indicates a descriptor with no type tag.
	ErrEmptyTypeName = errors.New("schema: type name is empty")

	// ErrDuplicateMember indicates two members share a name within a type.
	ErrDuplicateMember = errors.New("schema: duplicate member name")

	// ErrBadKind indicates a member declared with KindInvalid or an element
	// slot left unspecified for a container kind.
	ErrBadKind = errors.New("schema: invalid member kind")

	// ErrProjectionConflict indicates a descriptor carries both an include
	// list and an ignore list; the projection forms are mutually exclusive.
	ErrProjectionConflict = errors.New("schema: include and ignore projections are mutually exclusive")

	// ErrProjectionUnknown indicates a projection names a member the
	// descriptor does not declare.
	ErrProjectionUnknown = errors.New("schema: projection references unknown member")

	// ErrMissingConstructor indicates a binding without a New constructor.
	ErrMissingConstructor = errors.New("schema: binding has no constructor")

	// ErrMissingBinding indicates a comparable member with no accessor
	// binding.
	ErrMissingBinding = errors.New("schema: member has no binding")

	// ErrMissingContainerOps indicates a container member whose binding
	// lacks the matching Seq/Map/Arr vtable.
	ErrMissingContainerOps = errors.New("schema: container member has no container ops")

	// ErrNondeterministicMap indicates a granular-delta map member whose
	// MapOps has no SortKeys; deterministic documents need a stable key
	// order.
	ErrNondeterministicMap = errors.New("schema: granular map member needs SortKeys")

	// ErrOrderOnNonSequence indicates order sensitivity configured on a
	// member that is not a sequence or array.
	ErrOrderOnNonSequence = errors.New("schema: order mode on non-sequence member")

	// ErrKeyMembersNonRecord indicates key members configured for elements
	// that are not nested records.
	ErrKeyMembersNonRecord = errors.New("schema: key members require record elements")

	// ErrKeyMembersUnresolved indicates a key member name that the element
	// type does not declare (detected at link time).
	ErrKeyMembersUnresolved = errors.New("schema: key member not found on element type")

	// ErrEqualityNonString indicates a custom equality ref on a member that
	// is not string-like.
	ErrEqualityNonString = errors.New("schema: custom equality requires a string member")

	// ErrEqualityUnresolved indicates a custom equality ref with no
	// function registered under that name.
	ErrEqualityUnresolved = errors.New("schema: custom equality ref not registered")

	// ErrMaskConflict indicates a flags member whose required and forbidden
	// masks overlap.
	ErrMaskConflict = errors.New("schema: require and forbid masks overlap")

	// ErrMemberOverflow indicates more members than the bitfield mapping
	// supports for a dirty-tracked type.
	ErrMemberOverflow = errors.New("schema: member index overflows bitfield width")

	// ErrStructRefUnresolved indicates a nested-record reference to a type
	// tag the registry does not know (detected at link time).
	ErrStructRefUnresolved = errors.New("schema: nested type reference not registered")

	// ErrDuplicateType indicates two registrations under one type tag.
	ErrDuplicateType = errors.New("schema: type already registered")

	// ErrRegistryFrozen indicates a registration attempted after the
	// registry linked; the registry is initialize-once, read-many.
	ErrRegistryFrozen = errors.New("schema: registry is frozen after warm-up")

	// ErrUnknownType indicates a lookup or warm-up for an unregistered tag.
	ErrUnknownType = errors.New("schema: unknown type tag")
)
