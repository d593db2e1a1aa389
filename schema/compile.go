// SPDX-License-Identifier: MIT
// Package: deepdelta/schema
//
// compile.go — descriptor + binding → compiled Schema.
//
// Compilation runs in two phases:
//  1. compile (here): filter members, assign dense stable indices, attach
//     accessors, pick the bitfield width. Pure per-type work.
//  2. link (registry.go): resolve nested-type refs, key-member indices, and
//     custom equality refs across the whole registry.
package schema

import "github.com/pkg/errors"

// wrapType attaches the type tag to a sentinel.
func wrapType(sentinel error, typeName string) error {
	return errors.Wrapf(sentinel, "type %q", typeName)
}

// wrapMember attaches the type and member names to a sentinel.
func wrapMember(sentinel error, typeName, memberName string) error {
	return errors.Wrapf(sentinel, "type %q member %q", typeName, memberName)
}

// compile validates the descriptor, applies the member filters, and builds
// the compiled Schema. Linking is left to the registry.
//
// Filter order matters and is part of the index-stability contract:
//  1. drop FromBase members unless IncludeBase
//  2. drop Unexported members unless IncludeInternals
//  3. apply the include OR ignore projection
//  4. assign indices 0..n-1 to the survivors in declaration order
func compile(td TypeDescriptor, b Binding, reg *Registry) (*Schema, error) {
	// 1) Structural validation first; everything below assumes it passed.
	if err := td.Validate(); err != nil {
		return nil, err
	}
	if b.New == nil {
		return nil, wrapType(ErrMissingConstructor, td.Name)
	}
	if b.IsNil == nil {
		return nil, wrapType(ErrMissingBinding, td.Name)
	}

	// 2) Build the projection set (nil means "keep everything").
	var keep, drop map[string]struct{}
	if len(td.Include) > 0 {
		keep = make(map[string]struct{}, len(td.Include))
		for _, name := range td.Include {
			keep[name] = struct{}{}
		}
	}
	if len(td.Ignore) > 0 {
		drop = make(map[string]struct{}, len(td.Ignore))
		for _, name := range td.Ignore {
			drop[name] = struct{}{}
		}
	}

	s := &Schema{
		Name:          td.Name,
		CycleTracking: td.CycleTracking,
		DirtyTracking: td.DirtyTracking,
		New:           b.New,
		IsNil:         b.IsNil,
		reg:           reg,
	}

	// 3) Filter and compile members in declaration order.
	for i := range td.Members {
		md := &td.Members[i]
		if md.FromBase && !td.IncludeBase {
			continue
		}
		if md.Unexported && !td.IncludeInternals {
			continue
		}
		if keep != nil {
			if _, ok := keep[md.Name]; !ok {
				continue
			}
		}
		if drop != nil {
			if _, ok := drop[md.Name]; ok {
				continue
			}
		}

		m, err := compileMember(td, md, b)
		if err != nil {
			return nil, err
		}
		m.Index = len(s.Members)
		s.Members = append(s.Members, m)
	}
	for i := range s.Members {
		s.Members[i].owner = s
	}

	// 4) Pick the bitfield width for dirty-tracked types.
	width, err := bitWidth(len(s.Members), td.DirtyTracking)
	if err != nil {
		return nil, wrapType(err, td.Name)
	}
	s.BitWidth = width

	return s, nil
}

// compileMember attaches accessors and folds the per-type defaults into one
// member. Index assignment happens at the call site.
func compileMember(td TypeDescriptor, md *MemberDescriptor, b Binding) (Member, error) {
	mb, ok := b.Members[md.Name]
	if !ok || mb.Get == nil || mb.Set == nil {
		return Member{}, wrapMember(ErrMissingBinding, td.Name, md.Name)
	}

	m := Member{
		Name:         md.Name,
		Kind:         md.Kind,
		Compare:      md.Compare,
		DeltaShallow: md.DeltaShallow,
		KeyMembers:   append([]string(nil), md.KeyMembers...),
		EqualityName: md.EqualityRef,
		RequireMask:  md.RequireMask,
		ForbidMask:   md.ForbidMask,
		Elem:         Elem{Kind: md.ElemKind, Ref: md.ElemRef},
		Key:          Elem{Kind: md.KeyKind},
		Value:        Elem{Kind: md.ValueKind, Ref: md.ValueRef},
		StructRef:    md.StructRef,
		Get:          mb.Get,
		Set:          mb.Set,
		SameRef:      mb.SameRef,
		Seq:          mb.Seq,
		Map:          mb.Map,
		Arr:          mb.Arr,
	}

	// Fold the tri-state order mode over the type default.
	switch md.Order {
	case OrderSensitive:
		m.OrderInsensitive = false
	case OrderInsensitive:
		m.OrderInsensitive = true
	default:
		m.OrderInsensitive = td.OrderInsensitiveDefault && (md.Kind == KindSeq || md.Kind == KindArray)
	}

	// Container members need their vtable; maps that emit granular deltas
	// additionally need a deterministic key order.
	switch md.Kind {
	case KindSeq:
		if m.Seq == nil {
			return Member{}, wrapMember(ErrMissingContainerOps, td.Name, md.Name)
		}
	case KindSet:
		if m.Map == nil {
			return Member{}, wrapMember(ErrMissingContainerOps, td.Name, md.Name)
		}
		if m.Map.SortKeys == nil {
			return Member{}, wrapMember(ErrNondeterministicMap, td.Name, md.Name)
		}
	case KindMap:
		if m.Map == nil {
			return Member{}, wrapMember(ErrMissingContainerOps, td.Name, md.Name)
		}
		if !md.DeltaShallow && m.Map.SortKeys == nil {
			return Member{}, wrapMember(ErrNondeterministicMap, td.Name, md.Name)
		}
	case KindArray:
		if m.Arr == nil {
			return Member{}, wrapMember(ErrMissingContainerOps, td.Name, md.Name)
		}
	case KindStruct:
		if md.StructRef == "" {
			return Member{}, wrapMember(ErrBadKind, td.Name, md.Name)
		}
	}

	return m, nil
}
