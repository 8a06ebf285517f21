package lexer

import (
	"fmt"

	"github.com/RembrandtK/ason/internal/source"
)

// Error is the lexer's error type: every lexical failure carries the Range
// of the offending span (spec.md §4.2, "Each error carries a Range covering
// the offending span"), following the teacher's ErrorWithPos/errorWithSourcePos
// shape (reporter/errors.go) renamed into the ASON domain.
type Error struct {
	Msg  string
	Span source.Range
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// Range implements source.Located. Every lexical error pins down a span.
func (e *Error) Range() (source.Range, bool) { return e.Span, true }

// Message implements source.Located.
func (e *Error) Message() string { return e.Msg }

func errAt(r source.Range, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: r}
}
