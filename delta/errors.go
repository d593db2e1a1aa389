// SPDX-License-Identifier: MIT
// Package: deepdelta/delta
//
// errors.go — the apply-time error surface.
//
// Error policy (explicit and strict):
//   • Comparison and delta EMISSION never raise for data-shape reasons.
//   • Apply raises only the structured *ApplyError, which wraps the ErrApply
//     sentinel; branch with errors.Is(err, delta.ErrApply).
//   • A document Apply fails on is left partially applied; there is no
//     rollback, and the error names the exact failing operation.
package delta

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrApply is the sentinel every *ApplyError wraps.
var ErrApply = errors.New("delta: apply failed")

// ApplyError reports the operation Apply could not honor against a target
// that diverged from the document's source: an index out of range, a
// missing key, or a member whose declared kind does not match the opcode.
type ApplyError struct {
	// Op is the failing operation.
	Op Op

	// Path is the member path of the failing operation.
	Path string

	// Reason is a short human-readable cause.
	Reason string
}

// Error renders the failing op with its path and cause.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("delta: apply failed at %q: %s (%s, member %d)",
		e.Path, e.Reason, e.Op.Code, e.Op.Member)
}

// Unwrap ties ApplyError to the ErrApply sentinel for errors.Is.
func (e *ApplyError) Unwrap() error { return ErrApply }
