package normalize

import (
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/token"
)

// Trimmer drops a leading NewLine token (checked once, at the first call to
// Next) and the single trailing NewLine token immediately preceding
// end-of-stream, per spec rule 4.3.3.
type Trimmer struct {
	buf     *peek.Buffer[token.WithRange]
	started bool
}

// Trim wraps upstream (expected to already be comment-stripped and
// normalized).
func Trim(upstream peek.Source[token.WithRange]) *Trimmer {
	return &Trimmer{buf: peek.New[token.WithRange](upstream, 1)}
}

// Next implements peek.Source[token.WithRange].
func (t *Trimmer) Next() (token.WithRange, bool, error) {
	if !t.started {
		t.started = true
		first, ok, err := t.buf.Peek(0)
		if err != nil {
			return token.WithRange{}, false, err
		}
		if ok && first.Token.Kind == token.NewLine {
			t.buf.Next()
		}
	}

	tok, ok, err := t.buf.Next()
	if err != nil || !ok {
		return token.WithRange{}, ok, err
	}

	if tok.Token.Kind == token.NewLine {
		_, ok2, err2 := t.buf.Peek(0)
		if err2 != nil {
			return token.WithRange{}, false, err2
		}
		if !ok2 {
			// Trailing NewLine immediately before end-of-stream: drop it and
			// surface the end-of-stream signal instead.
			return t.Next()
		}
	}

	return tok, true, nil
}
