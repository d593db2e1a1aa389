// Package schema: the generated accessor surface. A Binding is what the
// code generator emits next to a record type; it is the only way any engine
// touches user data, which is what keeps the whole runtime reflection-free.
//
// Value normalization contract (generated accessors uphold it):
//
//	KindBool → bool           KindString → string
//	KindInt / KindEnum → int64
//	KindUint / KindFlags → uint64
//	KindFloat → float64
//	KindTime → time.Time      KindDuration → time.Duration
//	KindStruct → the record handle (pointer), nil interface when absent
//	KindAny → Tagged, nil interface when absent
//	containers → the container handle the vtable understands
package schema

// EqualityFunc is a user-supplied string equality predicate, registered
// under a name and referenced from member descriptors. A panicking func is
// propagated verbatim; the engines never swallow user callbacks.
type EqualityFunc func(a, b string) bool

// Tagged is the variant shape of a polymorphic ("any") member: a type tag
// resolved through the registry plus the payload handle. No dispatch ever
// goes through embedding or inheritance.
type Tagged struct {
	// Tag is the registered type tag of the runtime value.
	Tag string

	// Value is the record handle (or opaque value for unregistered tags).
	Value any
}

// SeqOps is the container vtable for sequence members. All funcs are
// mandatory for KindSeq members. Insert and Remove return the updated
// container so slice-backed sequences can rebind.
type SeqOps struct {
	// Len reports the element count; 0 for a nil container.
	Len func(c any) int

	// At returns the element at index i.
	At func(c any, i int) any

	// SetAt overwrites the element at index i in place.
	SetAt func(c any, i int, v any)

	// Insert places v at index i, shifting the tail; returns the container.
	Insert func(c any, i int, v any) any

	// Remove deletes the element at index i; returns the container.
	Remove func(c any, i int) any

	// New builds an empty container with capacity for n elements.
	New func(n int) any

	// IsNil reports whether the handle is the absent container.
	IsNil func(c any) bool
}

// MapOps is the container vtable for map and set members. Set members use
// the key side only; their values are ignored. SortKeys is mandatory for
// map members that emit granular deltas — without a stable key order the
// documents could not be deterministic.
type MapOps struct {
	// Len reports the entry count; 0 for a nil container.
	Len func(c any) int

	// Range visits every entry until fn returns false.
	Range func(c any, fn func(k, v any) bool)

	// Get returns the value for k and whether the key is present.
	Get func(c any, k any) (any, bool)

	// Set stores v under k.
	Set func(c any, k, v any)

	// Del removes k.
	Del func(c any, k any)

	// New builds an empty container.
	New func() any

	// IsNil reports whether the handle is the absent container.
	IsNil func(c any) bool

	// SortKeys orders a collected key slice deterministically.
	SortKeys func(keys []any)
}

// SortedKeys collects the container's keys and, when SortKeys is present,
// returns them in deterministic order. Every engine that iterates a map or
// set goes through this so documents and diffs stay reproducible.
func (ops *MapOps) SortedKeys(c any) []any {
	keys := make([]any, 0, ops.Len(c))
	ops.Range(c, func(k, _ any) bool {
		keys = append(keys, k)
		return true
	})
	if ops.SortKeys != nil {
		ops.SortKeys(keys)
	}

	return keys
}

// ArrOps is the container vtable for fixed-shape (possibly
// multi-dimensional) array members. Elements address in row-major flattened
// order.
type ArrOps struct {
	// Dims reports the length of every dimension.
	Dims func(c any) []int

	// Len reports the total element count (product of Dims).
	Len func(c any) int

	// At returns the element at row-major flat index i.
	At func(c any, i int) any

	// SetAt overwrites the element at flat index i.
	SetAt func(c any, i int, v any)

	// New builds a zeroed array of the member's fixed shape.
	New func() any

	// IsNil reports whether the handle is the absent array.
	IsNil func(c any) bool
}

// MemberBinding carries the generated accessors for one member, keyed by
// member name so projections cannot skew the alignment.
type MemberBinding struct {
	// Get reads the member value off a record handle.
	Get func(rec any) any

	// Set writes the member value onto a record handle.
	Set func(rec, v any)

	// SameRef reports identity for reference-mode comparison. Optional;
	// when nil, interface identity is used, which is exact for pointer and
	// scalar members and is what the generator emits slice/map identity
	// checks for.
	SameRef func(a, b any) bool

	// Seq, Map, Arr are the container vtables matching the declared kind.
	Seq *SeqOps
	Map *MapOps
	Arr *ArrOps
}

// Binding is the generated surface for one record type.
type Binding struct {
	// New constructs a fresh instance (the type's default constructor);
	// the apply engine uses it to materialize nil nested targets.
	New func() any

	// IsNil reports whether a handle refers to no instance. Mandatory:
	// a typed-nil pointer boxed in an interface is not the nil interface,
	// and only generated code can tell.
	IsNil func(rec any) bool

	// Members maps member name → accessors.
	Members map[string]MemberBinding
}
