package parser

// Option configures Parse. Grounded on the teacher's multi-parameter
// newLexer(in, filename, handler, version) constructor, generalized here
// into the functional-options idiom ason.Options wraps (SPEC_FULL.md §4.8).
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth bounds the parser's recursion depth for nested
// List/Map/Tuple/Object/Variant productions. 0 (the default) means
// unlimited. Neither spec.md nor original_source's parser.rs impose a
// limit; an idiomatic Go port adds one to avoid a stack-overflow panic on
// adversarially deep input (see DESIGN.md).
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}
