// Package schema: the abstract metadata contract consumed from the host
// attribute scanner. Descriptors are plain data; how they were produced
// (attributes, annotations, a config file) is outside this module.
package schema

import "github.com/Quaverflow/deepdelta/flagutil"

// MemberDescriptor describes one comparable member of a record type.
type MemberDescriptor struct {
	// Name is the declared member name; unique within the type.
	Name string

	// Kind is the declared shape of the member.
	Kind Kind

	// ElemKind is the element shape for seq/set/array members.
	ElemKind Kind

	// KeyKind is the key shape for map members; must be a scalar-like kind.
	KeyKind Kind

	// ValueKind is the value shape for map members.
	ValueKind Kind

	// StructRef names the nested record type for KindStruct members.
	StructRef string

	// ElemRef names the element record type when ElemKind is KindStruct.
	ElemRef string

	// ValueRef names the value record type when ValueKind is KindStruct.
	ValueRef string

	// Compare is the per-member comparison mode; defaults to CompareDeep.
	Compare CompareKind

	// Order is the tri-state order sensitivity for seq/array members.
	Order OrderMode

	// KeyMembers lists the element-type fields that form multiset identity
	// for order-insensitive record sequences.
	KeyMembers []string

	// EqualityRef names a registered custom equality for string members
	// (for example a case-insensitive fold).
	EqualityRef string

	// DeltaShallow limits the member's delta operations to whole-container
	// replacement; in-place element edits are forbidden on apply.
	DeltaShallow bool

	// RequireMask and ForbidMask are flag masks the validation layer checks
	// for KindFlags members; they must not overlap.
	RequireMask uint64
	ForbidMask  uint64

	// FromBase marks members inherited from a base type; filtered out
	// unless the type opts into IncludeBase.
	FromBase bool

	// Unexported marks internal members; filtered out unless the type opts
	// into IncludeInternals.
	Unexported bool
}

// TypeDescriptor describes one record type and its per-type policy.
type TypeDescriptor struct {
	// Name is the type tag: the registry key and the polymorphic wire tag.
	Name string

	// Members lists the declared members in declaration order. Stable
	// indices are assigned to the survivors of filtering, in this order.
	Members []MemberDescriptor

	// IncludeBase keeps members marked FromBase.
	IncludeBase bool

	// IncludeInternals keeps members marked Unexported.
	IncludeInternals bool

	// OrderInsensitiveDefault makes sequences multiset-compared unless a
	// member overrides its OrderMode.
	OrderInsensitiveDefault bool

	// CycleTracking records (left, right) identity pairs while comparing
	// values of this type so self-referential graphs terminate.
	CycleTracking bool

	// DirtyTracking declares that instances embed a dirty-word and the
	// schema must carry a bitfield mapping.
	DirtyTracking bool

	// Include is an explicit projection: only these members survive.
	// Mutually exclusive with Ignore.
	Include []string

	// Ignore is a negative projection: these members are dropped.
	// Mutually exclusive with Include.
	Ignore []string
}

// Validate performs the structural checks that need no binding: a non-empty
// name, no duplicate members, valid kinds, and projection exclusivity.
// Compile runs it first; exposed so scanners can pre-flight descriptors.
func (td *TypeDescriptor) Validate() error {
	if td.Name == "" {
		return ErrEmptyTypeName
	}
	if len(td.Include) > 0 && len(td.Ignore) > 0 {
		return wrapType(ErrProjectionConflict, td.Name)
	}
	seen := make(map[string]struct{}, len(td.Members))
	for i := range td.Members {
		md := &td.Members[i]
		if _, dup := seen[md.Name]; dup {
			return wrapMember(ErrDuplicateMember, td.Name, md.Name)
		}
		seen[md.Name] = struct{}{}
		if err := md.validate(td.Name); err != nil {
			return err
		}
	}
	for _, name := range td.Include {
		if _, ok := seen[name]; !ok {
			return wrapMember(ErrProjectionUnknown, td.Name, name)
		}
	}
	for _, name := range td.Ignore {
		if _, ok := seen[name]; !ok {
			return wrapMember(ErrProjectionUnknown, td.Name, name)
		}
	}

	return nil
}

// validate checks the declared kinds and policy of a single member.
func (md *MemberDescriptor) validate(typeName string) error {
	if md.Kind == KindInvalid {
		return wrapMember(ErrBadKind, typeName, md.Name)
	}
	switch md.Kind {
	case KindSeq, KindSet, KindArray:
		// Nested containers are expressed through a record wrapper, so an
		// element shape is always a leaf, a record, or a tagged variant.
		if md.ElemKind == KindInvalid || md.ElemKind.Container() {
			return wrapMember(ErrBadKind, typeName, md.Name)
		}
	case KindMap:
		if md.KeyKind == KindInvalid || md.ValueKind == KindInvalid || md.ValueKind.Container() {
			return wrapMember(ErrBadKind, typeName, md.Name)
		}
		if !md.KeyKind.ScalarLike() {
			return wrapMember(ErrBadKind, typeName, md.Name)
		}
	}
	if md.Order != OrderDefault && md.Kind != KindSeq && md.Kind != KindArray {
		return wrapMember(ErrOrderOnNonSequence, typeName, md.Name)
	}
	if len(md.KeyMembers) > 0 && md.ElemKind != KindStruct {
		return wrapMember(ErrKeyMembersNonRecord, typeName, md.Name)
	}
	if md.EqualityRef != "" && md.Kind != KindString && md.ElemKind != KindString && md.ValueKind != KindString {
		return wrapMember(ErrEqualityNonString, typeName, md.Name)
	}
	if md.Kind == KindFlags && flagutil.Conflicts(md.RequireMask, md.ForbidMask) {
		return wrapMember(ErrMaskConflict, typeName, md.Name)
	}

	return nil
}
