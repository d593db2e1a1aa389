// Package wire: sentinel errors for encode and decode.
package wire

import "github.com/pkg/errors"

// Sentinel errors. Branch with errors.Is.
var (
	// ErrUnsupportedValue indicates a value with no wire representation
	// (an opaque kind, or a non-Tagged polymorphic payload).
	ErrUnsupportedValue = errors.New("wire: value has no wire representation")

	// ErrUnknownType indicates an object snapshot whose type tag is not
	// registered on the schema's registry.
	ErrUnknownType = errors.New("wire: unknown type tag")

	// ErrCyclicValue indicates an object snapshot that reaches itself;
	// snapshots are trees, cycles cannot travel the wire.
	ErrCyclicValue = errors.New("wire: cyclic value in object snapshot")

	// ErrTruncated indicates the buffer ended inside an operation.
	ErrTruncated = errors.New("wire: truncated document")

	// ErrCorrupt indicates a malformed document: a bad opcode or value
	// tag, a member index out of range, or unbalanced nested framing.
	ErrCorrupt = errors.New("wire: corrupt document")
)
