// SPDX-License-Identifier: MIT
// Package: deepdelta/schema
//
// registry.go — the per-type registry behind polymorphic dispatch.
//
// Lifecycle (initialize-once, read-many):
//
//	Register*/RegisterEquality ──▶ WarmUp (links everything, one-time) ──▶ reads only
//
// After the first successful WarmUp the registry freezes: registration
// returns ErrRegistryFrozen, and every table is safe for unrestricted
// concurrent reads. Engines never take a lock.
package schema

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry maps type tags to compiled schemas and equality-ref names to
// user predicates.
type Registry struct {
	mu         sync.Mutex
	types      map[string]*Schema
	equalities map[string]EqualityFunc

	linkOnce sync.Once
	linkErr  error
	linked   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[string]*Schema),
		equalities: make(map[string]EqualityFunc),
	}
}

// std is the process-wide default registry generated code registers into.
var std = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return std }

// Register compiles and stores a schema for the descriptor under its type
// tag. Call before WarmUp; a frozen registry rejects registration.
func (r *Registry) Register(td TypeDescriptor, b Binding) (*Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linked {
		return nil, wrapType(ErrRegistryFrozen, td.Name)
	}
	if _, dup := r.types[td.Name]; dup {
		return nil, wrapType(ErrDuplicateType, td.Name)
	}
	s, err := compile(td, b, r)
	if err != nil {
		return nil, err
	}
	r.types[td.Name] = s
	log.WithField("type", td.Name).WithField("members", len(s.Members)).Debug("Registered schema")

	return s, nil
}

// MustRegister is Register that panics on error; for generated init code,
// where a bad schema is a build break, not a runtime condition.
func (r *Registry) MustRegister(td TypeDescriptor, b Binding) *Schema {
	s, err := r.Register(td, b)
	if err != nil {
		panic(err)
	}

	return s
}

// RegisterEquality stores a custom string equality under a name that
// member descriptors reference via EqualityRef.
func (r *Registry) RegisterEquality(name string, fn EqualityFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.linked {
		return wrapType(ErrRegistryFrozen, name)
	}
	if name == "" || fn == nil {
		return errors.Wrap(ErrEqualityUnresolved, "empty name or nil func")
	}
	r.equalities[name] = fn

	return nil
}

// Lookup returns the schema registered under tag. It does not link; callers
// on engine paths run after WarmUp by contract.
func (r *Registry) Lookup(tag string) (*Schema, bool) {
	s, ok := r.types[tag]

	return s, ok
}

// MustLookup is Lookup that panics on a missing tag; registration-time
// convenience for generated code.
func (r *Registry) MustLookup(tag string) *Schema {
	s, ok := r.Lookup(tag)
	if !ok {
		panic(wrapType(ErrUnknownType, tag))
	}

	return s
}

// WarmUp forces eager table construction: it links every registered schema
// (nested-type refs, key-member indices, custom equality refs) under a
// one-time guard, then verifies the requested tag exists. Benchmark and
// server setup call it once per type before taking traffic.
func (r *Registry) WarmUp(tag string) error {
	r.linkOnce.Do(r.link)
	if r.linkErr != nil {
		return r.linkErr
	}
	if _, ok := r.types[tag]; !ok {
		return wrapType(ErrUnknownType, tag)
	}

	return nil
}

// link resolves every cross-type reference. Runs exactly once per registry;
// the first error freezes the registry in a failed state, surfaced by every
// subsequent WarmUp.
func (r *Registry) link() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linked = true

	for _, s := range r.types {
		for i := range s.Members {
			if err := r.linkMember(s, &s.Members[i]); err != nil {
				r.linkErr = err
				return
			}
		}
	}
	log.WithField("types", len(r.types)).Debug("Schema registry warmed up")
}

// linkMember resolves one member's nested schema, element schemas, key
// member indices, and custom equality.
func (r *Registry) linkMember(s *Schema, m *Member) error {
	if m.StructRef != "" {
		ref, ok := r.types[m.StructRef]
		if !ok {
			return wrapMember(ErrStructRefUnresolved, s.Name, m.Name)
		}
		m.structSch = ref
	}
	if err := r.linkElem(s, m, &m.Elem); err != nil {
		return err
	}
	if err := r.linkElem(s, m, &m.Value); err != nil {
		return err
	}

	// Key members resolve against the element type's compiled members.
	if len(m.KeyMembers) > 0 {
		elemSch := m.Elem.sch
		if elemSch == nil {
			return wrapMember(ErrKeyMembersNonRecord, s.Name, m.Name)
		}
		m.keyIdx = make([]int, 0, len(m.KeyMembers))
		for _, keyName := range m.KeyMembers {
			km, ok := elemSch.MemberByName(keyName)
			if !ok {
				return wrapMember(ErrKeyMembersUnresolved, s.Name, m.Name+"."+keyName)
			}
			m.keyIdx = append(m.keyIdx, km.Index)
		}
	}

	if m.EqualityName != "" {
		fn, ok := r.equalities[m.EqualityName]
		if !ok {
			return wrapMember(ErrEqualityUnresolved, s.Name, m.Name)
		}
		m.Equality = fn
	}

	return nil
}

// linkElem resolves a single element shape's record reference.
func (r *Registry) linkElem(s *Schema, m *Member, e *Elem) error {
	if e.Ref == "" {
		return nil
	}
	ref, ok := r.types[e.Ref]
	if !ok {
		return wrapMember(ErrStructRefUnresolved, s.Name, m.Name)
	}
	e.sch = ref

	return nil
}
