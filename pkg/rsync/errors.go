package rsync

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the class of failure that occurred during a sign, diff, or
// patch operation. Callers should use IsKind rather than comparing error
// strings.
type Kind int

const (
	// KindNotFound indicates that an input path was missing or unreadable.
	KindNotFound Kind = iota + 1
	// KindEmptyInput indicates that a signature or delta file was 0 bytes.
	KindEmptyInput
	// KindMalformedBuffer indicates that a length prefix was inconsistent
	// with, or exceeded, the remaining buffer while decoding a signature or
	// delta.
	KindMalformedBuffer
	// KindIntegrityMismatch indicates that a delta's content hash did not
	// match the recomputed (or supplied) base hash during patch.
	KindIntegrityMismatch
	// KindIO indicates an underlying read/write failure.
	KindIO
	// KindInvalidArgument indicates a caller-visible precondition violation.
	KindInvalidArgument
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindEmptyInput:
		return "empty input"
	case KindMalformedBuffer:
		return "malformed buffer"
	case KindIntegrityMismatch:
		return "integrity mismatch"
	case KindIO:
		return "i/o error"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this package's operations. It
// carries a Kind so that callers can classify failures without parsing
// messages.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Op names the operation or component that produced the failure (e.g.
	// "OpenBlockSource", "DecodeSignature", "Patch").
	Op string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap allows Error to participate in errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr constructs a classified Error, attaching a stack trace to err (via
// github.com/pkg/errors) so the underlying cause remains inspectable.
func wrapErr(op string, kind Kind, err error) error {
	if err == nil {
		return &Error{Op: op, Kind: kind}
	}
	return &Error{Op: op, Kind: kind, Err: errors.WithStack(err)}
}

// IsKind reports whether err is, or wraps, a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
