package ason

import (
	"github.com/RembrandtK/ason/decode"
	"github.com/RembrandtK/ason/lexer"
	"github.com/RembrandtK/ason/parser"
)

// Options configures Parse, ParseString, ParseBytes and Unmarshal. Marshal
// accepts Options too, but none of them affects encoding. Grounded on
// the teacher's multi-parameter newLexer constructor, generalized into the
// functional-options idiom (SPEC_FULL.md §4.8).
type Options struct {
	maxDepth   int
	strictUTF8 bool
}

// Option mutates an in-progress Options value.
type Option func(*Options)

func newOptions(opts []Option) Options {
	cfg := Options{strictUTF8: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxDepth bounds recursion depth for nested List/Map/Tuple/Object/
// Variant productions, both during parsing (Parse, ParseString, ParseBytes)
// and during streaming decode (Unmarshal). 0 (the default) means unlimited.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.maxDepth = n }
}

// WithStrictUTF8 controls whether invalid UTF-8 in the input aborts lexing
// (the default, true) or is replaced with U+FFFD and lexed leniently.
func WithStrictUTF8(strict bool) Option {
	return func(o *Options) { o.strictUTF8 = strict }
}

func (o Options) lexerOptions() []lexer.Option {
	return []lexer.Option{lexer.WithStrictUTF8(o.strictUTF8)}
}

func (o Options) parserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(o.maxDepth)}
}

func (o Options) decoderOptions() []decode.Option {
	return []decode.Option{decode.WithMaxDepth(o.maxDepth)}
}
