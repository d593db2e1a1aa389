// Package schema: declared member kinds and per-member compare policy.
package schema

// Kind is the declared shape of a member as seen by the attribute scanner.
type Kind uint8

const (
	// KindInvalid is the zero Kind; descriptors must never carry it.
	KindInvalid Kind = iota

	// KindBool is a boolean scalar.
	KindBool

	// KindInt is a signed integer scalar, normalized to int64 by the
	// generated accessors.
	KindInt

	// KindUint is an unsigned integer scalar, normalized to uint64.
	KindUint

	// KindFloat is a floating-point scalar, normalized to float64 and
	// compared on representation, never with a tolerance.
	KindFloat

	// KindString is a string; ordinal comparison unless a custom equality
	// ref is set on the member.
	KindString

	// KindTime is a timestamp; equal iff instant AND zone offset match.
	KindTime

	// KindDuration is an elapsed or time-of-day value compared by value.
	KindDuration

	// KindEnum is an enumeration compared by underlying value (int64).
	KindEnum

	// KindFlags is a flags enumeration compared bitwise (uint64).
	KindFlags

	// KindOpaque is a value type outside the schema, compared with its
	// intrinsic equality.
	KindOpaque

	// KindStruct is a nested record with its own registered schema.
	KindStruct

	// KindSeq is a sequence (slice), ordered unless marked insensitive.
	KindSeq

	// KindSet is a set; size plus membership comparison, whole-container
	// replacement on delta.
	KindSet

	// KindMap is a dictionary; key-set plus deep value comparison.
	KindMap

	// KindArray is a (possibly multi-dimensional) fixed-shape array,
	// compared rank, dims, then elementwise in row-major order.
	KindArray

	// KindAny is a polymorphic member modeled as a Tagged variant and
	// dispatched through the registry at runtime.
	KindAny
)

// kindNames is indexed by Kind.
var kindNames = [...]string{
	"invalid", "bool", "int", "uint", "float", "string", "time", "duration",
	"enum", "flags", "opaque", "struct", "seq", "set", "map", "array", "any",
}

// String renders the kind name for errors and logs.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// ScalarLike reports whether the kind is a leaf value the delta engine can
// snapshot with a single SetMember without recursing.
func (k Kind) ScalarLike() bool {
	switch k {
	case KindBool, KindInt, KindUint, KindFloat, KindString,
		KindTime, KindDuration, KindEnum, KindFlags, KindOpaque:
		return true
	default:
		return false
	}
}

// Container reports whether the kind is a collection shape.
func (k Kind) Container() bool {
	switch k {
	case KindSeq, KindSet, KindMap, KindArray:
		return true
	default:
		return false
	}
}

// CompareKind is the per-member comparison mode.
type CompareKind uint8

const (
	// CompareDeep recurses structurally; the default.
	CompareDeep CompareKind = iota

	// CompareShallow compares scalars by value and reference-shaped members
	// (records, containers) by identity, without descending.
	CompareShallow

	// CompareReference compares by identity only.
	CompareReference

	// CompareSkip excludes the member from every engine.
	CompareSkip
)

// compareNames is indexed by CompareKind.
var compareNames = [...]string{"deep", "shallow", "reference", "skip"}

// String renders the compare mode for errors and logs.
func (c CompareKind) String() string {
	if int(c) < len(compareNames) {
		return compareNames[c]
	}

	return "unknown"
}

// OrderMode is the tri-state order sensitivity of a sequence member:
// inherit the type default, or force sensitive/insensitive.
type OrderMode uint8

const (
	// OrderDefault inherits the type's order-insensitive default.
	OrderDefault OrderMode = iota

	// OrderSensitive forces elementwise, index-aligned comparison.
	OrderSensitive

	// OrderInsensitive forces multiset comparison.
	OrderInsensitive
)
