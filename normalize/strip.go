package normalize

import (
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/token"
)

// CommentStripper drops every Comment token the lexer produced.
type CommentStripper struct {
	upstream peek.Source[token.WithRange]
}

// StripComments wraps a token stream, filtering out Comment tokens.
func StripComments(upstream peek.Source[token.WithRange]) *CommentStripper {
	return &CommentStripper{upstream: upstream}
}

// Next implements peek.Source[token.WithRange].
func (c *CommentStripper) Next() (token.WithRange, bool, error) {
	for {
		tok, ok, err := c.upstream.Next()
		if err != nil || !ok {
			return token.WithRange{}, ok, err
		}
		if tok.Token.Kind == token.Comment {
			continue
		}
		return tok, true, nil
	}
}
