// Package reporter converts the error types produced by each pipeline
// stage (lexer, normalize, parser, decode) into the three-way tagged
// ason.Error variant, without the stage packages needing to import the
// root package themselves. Grounded on the teacher's
// reporter/errors.go errorWithSourcePos (an error wrapping a position,
// with Unwrap), generalized here into a closed three-case variant
// instead of the teacher's open-ended category types, since ASON's
// error taxonomy is flat.
package reporter

import (
	"fmt"

	"github.com/RembrandtK/ason/internal/source"
)

// Kind tags which of the three shapes an Error holds.
type Kind int

const (
	// KindMessage is a context-free error with no source position, used for
	// unsupported binding kinds (decode.ErrUnsupported and friends).
	KindMessage Kind = iota
	// KindMessageWithLocation pins a source.Range.
	KindMessageWithLocation
	// KindUnexpectedEndOfDocument reports that the input ended before a
	// value, key, separator or closing bracket the grammar required.
	KindUnexpectedEndOfDocument
)

// Error is ASON's public error type: a closed three-way tagged variant.
// Every error returned from Parse, ParseString, Unmarshal and Marshal is
// an *Error.
type Error struct {
	Kind  Kind
	Msg   string
	Span  source.Range
	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMessageWithLocation:
		return fmt.Sprintf("%s: %s", e.Span, e.Msg)
	case KindUnexpectedEndOfDocument:
		return "unexpected end of document: " + e.Msg
	default:
		return e.Msg
	}
}

// Unwrap exposes the original stage error, following the teacher's
// ErrorWithPos.Unwrap contract.
func (e *Error) Unwrap() error { return e.cause }

// Message returns the error's text without its location, if any.
func (e *Error) Message() string { return e.Msg }

// Range reports the source span, when Kind == KindMessageWithLocation.
func (e *Error) Range() (source.Range, bool) {
	return e.Span, e.Kind == KindMessageWithLocation
}

// FromErr converts any error into an *Error. An error that implements
// source.Located is unwrapped into KindMessageWithLocation or
// KindUnexpectedEndOfDocument according to its Range() bool; any other
// error (including decode's context-free "unsupported kind" errors,
// which deliberately do not implement source.Located) becomes a
// KindMessage carrying its own Error() text. A nil error returns nil.
func FromErr(err error) error {
	if err == nil {
		return nil
	}
	if located, ok := err.(source.Located); ok {
		span, hasRange := located.Range()
		if hasRange {
			return &Error{Kind: KindMessageWithLocation, Msg: located.Message(), Span: span, cause: err}
		}
		return &Error{Kind: KindUnexpectedEndOfDocument, Msg: located.Message(), cause: err}
	}
	return &Error{Kind: KindMessage, Msg: err.Error(), cause: err}
}

// Message builds a context-free KindMessage error directly from a format
// string. The decoder's unsupported-kind errors and bind's errors do not
// go through it: they are plain errors that FromErr turns into KindMessage.
func Message(format string, args ...any) error {
	return &Error{Kind: KindMessage, Msg: fmt.Sprintf(format, args...)}
}
