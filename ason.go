// Package ason implements the ASON textual data-interchange format: a
// JSON superset with tagged unions, typed numbers, byte and date literals,
// comments, and flexible separators. This file wires the pipeline
// (lexer → normalize → parser/decode → bind → printer) behind the public
// Parse/ParseString/Print/Unmarshal/Marshal surface spec.md §6 names,
// following the teacher's compiler.go pattern of a thin root package that
// composes the internal stages rather than reimplementing them.
package ason

import (
	"io"

	"github.com/RembrandtK/ason/bind"
	"github.com/RembrandtK/ason/decode"
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/lexer"
	"github.com/RembrandtK/ason/normalize"
	"github.com/RembrandtK/ason/parser"
	"github.com/RembrandtK/ason/printer"
	"github.com/RembrandtK/ason/reporter"
	"github.com/RembrandtK/ason/token"
	"github.com/RembrandtK/ason/value"
)

// tokens wires the lexer → comment-stripper → normalizer → trimmer
// pipeline spec.md §4 describes, applying opts' lexer-facing settings.
func tokens(data []byte, cfg Options) peek.Source[token.WithRange] {
	lx := lexer.New(data, cfg.lexerOptions()...)
	return normalize.Trim(normalize.Normalize(normalize.StripComments(lx)))
}

// Parse reads r fully and parses it into a value.Node tree.
func Parse(r io.Reader, opts ...Option) (*value.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, reporter.FromErr(err)
	}
	return ParseBytes(data, opts...)
}

// ParseString parses s into a value.Node tree.
func ParseString(s string, opts ...Option) (*value.Node, error) {
	return ParseBytes([]byte(s), opts...)
}

// ParseBytes parses data into a value.Node tree.
func ParseBytes(data []byte, opts ...Option) (*value.Node, error) {
	cfg := newOptions(opts)
	n, err := parser.Parse(tokens(data, cfg), cfg.parserOptions()...)
	if err != nil {
		return nil, reporter.FromErr(err)
	}
	return &n, nil
}

// Print renders n back into ASON text (spec.md §8's round-trip property).
func Print(n *value.Node) string {
	return printer.Print(*n)
}

// Unmarshal decodes data into v, which must be a non-nil pointer, via the
// Visitor-driven decoder and the reflection-based binding layer in
// package bind (spec.md §1's "external collaborator").
func Unmarshal(data []byte, v any, opts ...Option) error {
	cfg := newOptions(opts)
	d := decode.New(tokens(data, cfg), cfg.decoderOptions()...)
	if err := bind.DecodeValue(d, v); err != nil {
		return reporter.FromErr(err)
	}
	if err := d.Finish(); err != nil {
		return reporter.FromErr(err)
	}
	return nil
}

// Marshal encodes v into ASON text, the dual of Unmarshal via bind +
// printer.
func Marshal(v any, opts ...Option) ([]byte, error) {
	n, err := bind.EncodeValue(v)
	if err != nil {
		return nil, reporter.FromErr(err)
	}
	return []byte(printer.Print(n)), nil
}
