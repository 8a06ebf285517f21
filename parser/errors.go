// Package parser implements the ASON recursive-descent parser: it consumes
// a normalized token.WithRange stream and produces a value.Node tree.
package parser

import (
	"fmt"

	"github.com/RembrandtK/ason/internal/source"
)

// Error is the parser's error type. Unlike lexer.Error and normalize.Error,
// which always pin a span, a parser failure may instead be an end-of-stream
// condition with no token to point at — HasRange distinguishes the two,
// following the teacher's category-tagged parseError/extendedSyntaxError
// wrapper shape (parser/errors.go), generalized here into one type since
// ASON's parser error taxonomy is flat rather than proto's multi-category
// one.
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

// Range implements source.Located.
func (e *Error) Range() (source.Range, bool) { return e.Span, e.HasRange }

// Message implements source.Located.
func (e *Error) Message() string { return e.Msg }

func errAt(r source.Range, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Span: r, HasRange: true}
}

func errEOF(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), HasRange: false}
}
