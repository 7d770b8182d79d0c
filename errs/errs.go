// Package errs defines the single error taxonomy shared by every cellkit
// package: one sum type with a Kind, never a panic, never a log line.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates every way a cellkit operation can fail. It mirrors the
// table in the core specification's error-handling section exactly: kinds,
// not Go types, so callers branch on Kind() rather than on concrete types.
type Kind int

const (
	// DataUnderflow is raised by a parser when fewer bits remain than requested.
	DataUnderflow Kind = iota
	// DataOverflow is raised by a builder when a write would exceed 1023 bits.
	DataOverflow
	// RefsUnderflow is raised by a parser when no more child references remain.
	RefsUnderflow
	// RefsOverflow is raised by a builder when a fifth child reference is attempted.
	RefsOverflow
	// CellNotEmpty is raised by EnsureEmpty when bits or refs remain unconsumed.
	CellNotEmpty
	// WrongPrefix is raised when a TL-B discriminator does not match. Recoverable
	// by sum-type dispatch: the caller tries the next variant.
	WrongPrefix
	// OutOfOptions is raised when a sum-type reader exhausts every variant. Recoverable
	// upstream the same way WrongPrefix is.
	OutOfOptions
	// UnknownExoticTag is raised when an exotic cell's first payload byte isn't 0x01..0x04.
	UnknownExoticTag
	// DepthExceeded is raised when a cell's computed depth exceeds the protocol cap.
	DepthExceeded
	// BocWrongMagic is raised by the BoC reader when the envelope magic is unrecognized.
	BocWrongMagic
	// BocBackReference is raised when a child index is <= its parent's index.
	BocBackReference
	// BocSingleRootExpected is raised when an API contract expecting one root sees many.
	BocSingleRootExpected
	// ChecksumMismatch is raised when a BoC's trailing CRC-32C does not verify.
	ChecksumMismatch
	// NumericOverflow is raised when a value does not fit the declared bit width.
	NumericOverflow
	// AddressParse is raised by address-parsing helpers on malformed text.
	AddressParse
	// TruncatedPayload is raised when the BoC envelope runs out of bytes mid-record.
	TruncatedPayload
	// Wrapped marks a transparently-wrapped I/O/hex/base64/parseint error.
	Wrapped
)

var kindNames = map[Kind]string{
	DataUnderflow:          "DataUnderflow",
	DataOverflow:           "DataOverflow",
	RefsUnderflow:          "RefsUnderflow",
	RefsOverflow:           "RefsOverflow",
	CellNotEmpty:           "CellNotEmpty",
	WrongPrefix:            "WrongPrefix",
	OutOfOptions:           "OutOfOptions",
	UnknownExoticTag:       "UnknownExoticTag",
	DepthExceeded:          "DepthExceeded",
	BocWrongMagic:          "BocWrongMagic",
	BocBackReference:       "BocBackReference",
	BocSingleRootExpected:  "BocSingleRootExpected",
	ChecksumMismatch:       "ChecksumMismatch",
	NumericOverflow:        "NumericOverflow",
	AddressParse:           "AddressParse",
	TruncatedPayload:       "TruncatedPayload",
	Wrapped:                "Wrapped",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the concrete error value every cellkit operation returns.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Kind() Kind   { return e.kind }
func (e *Error) Unwrap() error { return e.cause }

// New builds a bare Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a stack-capturing cause to a new Error of the given kind,
// the way the teacher's request helpers wrap transport errors with context.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: errors.WithStack(cause)}
}

// Is reports whether err is a cellkit Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}

// WrongPrefixDetail is returned (wrapped as an *Error of Kind WrongPrefix)
// when a TL-B prefix check fails, carrying both sides for diagnostics.
type WrongPrefixDetail struct {
	Expected string
	Actual   string
}

func (d WrongPrefixDetail) String() string {
	return fmt.Sprintf("expected %s, got %s", d.Expected, d.Actual)
}

// NewWrongPrefix builds the recoverable WrongPrefix error used by TL-B sum-type dispatch.
func NewWrongPrefix(expected, actual string) error {
	return New(WrongPrefix, "%s", WrongPrefixDetail{Expected: expected, Actual: actual})
}
