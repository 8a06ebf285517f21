package decode

import (
	"fmt"

	"github.com/RembrandtK/ason/internal/source"
)

// Error is the decoder's positioned error type, identical in shape to
// parser.Error: most decode failures ("expect \"bool\"", "invalid member
// of variant Option") point at the token that violated the expected
// shape, but a stream that ends early has no token to point at.
type Error struct {
	Msg      string
	Span     source.Range
	HasRange bool
}

func (e *Error) Error() string {
	if e.HasRange {
		return fmt.Sprintf("%s: %s", e.Span, e.Msg)
	}
	return "unexpected end of document: " + e.Msg
}

func (e *Error) Range() (source.Range, bool) { return e.Span, e.HasRange }
func (e *Error) Message() string             { return e.Msg }

func errAt(r source.Range, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: r, HasRange: true}
}

func errEOF(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), HasRange: false}
}

// unsupportedError is context-free: it deliberately does NOT implement
// source.Located, since "bare Unit", unit-struct, newtype-struct,
// tuple-struct and self-describing decode are rejected before any token
// is consumed, independent of where in the document they were requested.
// reporter.FromErr falls through to its plain-Message case for any error
// that isn't a source.Located, which is exactly the ason.Error shape
// spec.md §6 calls for here (Message(string), "used for unsupported
// binding kinds").
type unsupportedError struct {
	msg string
}

func (e *unsupportedError) Error() string { return e.msg }

// ErrUnsupported reports that the requested binding kind has no ASON
// representation.
func ErrUnsupported(kind string) error {
	return &unsupportedError{msg: fmt.Sprintf("ason: decode does not support %s", kind)}
}
