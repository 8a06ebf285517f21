package normalize

import (
	"fmt"

	"github.com/RembrandtK/ason/internal/source"
)

// Error is the normalizer's error type: every rule violation carries the
// Range of the offending span, following the same shape as lexer.Error.
type Error struct {
	Msg  string
	Span source.Range
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// Range implements source.Located. Every normalizer error pins down a span.
func (e *Error) Range() (source.Range, bool) { return e.Span, true }

// Message implements source.Located.
func (e *Error) Message() string { return e.Msg }

func errAt(r source.Range, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: r}
}
