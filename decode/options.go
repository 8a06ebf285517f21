package decode

// Option configures New. Mirrors parser.Option (SPEC_FULL.md §4.8's
// functional-options idiom), since the decoder shares the parser's
// recursion-depth exposure: both walk nested List/Map/Tuple/Object/Variant
// productions with no Node tree to bound the work by size up front.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth bounds the decoder's recursion depth for nested
// Seq/Tuple/Map/Struct/Enum productions. 0 (the default) means unlimited.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}
