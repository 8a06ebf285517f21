// Package normalize implements the three filter stages that sit between the
// lexer and the parser: comment stripping, the main normalization rules
// (blank collapsing, newline-comma fusion, sign application, bare overflow
// checking), and final trimming. Each stage is a pull-based
// peek.Source[token.WithRange], composed in construction order, following
// the pipeline's stage-is-a-struct-with-Next() composition idiom.
package normalize

import (
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/internal/source"
	"github.com/RembrandtK/ason/token"
)

// Normalizer applies the main normalization rules of a 1-token-lookahead
// stream: blank collapsing, newline-comma fusion, sign application to a
// following number, and bare signed-overflow checking. Rule precedence
// within a single Next() call is newline handling, then comma fusion, then
// sign handling, then bare overflow — matching the rule order the grammar
// depends on.
type Normalizer struct {
	buf *peek.Buffer[token.WithRange]
}

// Normalize wraps upstream (expected to already have comments stripped).
func Normalize(upstream peek.Source[token.WithRange]) *Normalizer {
	return &Normalizer{buf: peek.New[token.WithRange](upstream, 1)}
}

// Next implements peek.Source[token.WithRange].
func (n *Normalizer) Next() (token.WithRange, bool, error) {
	tok, ok, err := n.buf.Next()
	if err != nil || !ok {
		return token.WithRange{}, ok, err
	}

	switch tok.Token.Kind {
	case token.NewLine:
		return n.collapseBlank(tok)
	case token.Comma:
		return n.fuseTrailingNewlines(tok.Range)
	case token.Plus, token.Minus:
		return n.applySign(tok)
	default:
		if tok.Token.Kind == token.Number {
			if err := checkBareOverflow(tok); err != nil {
				return token.WithRange{}, false, err
			}
		}
		return tok, true, nil
	}
}

// collapseBlank consumes a maximal run of NewLine tokens starting at first,
// then checks whether a Comma follows (newline-comma fusion), in which case
// the whole run and the comma collapse to a single Comma, further absorbing
// any NewLine run that follows the comma too.
func (n *Normalizer) collapseBlank(first token.WithRange) (token.WithRange, bool, error) {
	run := first.Range
	for {
		nxt, ok, err := n.buf.Peek(0)
		if err != nil {
			return token.WithRange{}, false, err
		}
		if !ok || nxt.Token.Kind != token.NewLine {
			break
		}
		n.buf.Next()
		run = source.Join(run, nxt.Range)
	}

	nxt, ok, err := n.buf.Peek(0)
	if err != nil {
		return token.WithRange{}, false, err
	}
	if ok && nxt.Token.Kind == token.Comma {
		n.buf.Next()
		return n.fuseTrailingNewlines(source.Join(run, nxt.Range))
	}

	return token.WithRange{Token: token.Token{Kind: token.NewLine}, Range: run}, true, nil
}

// fuseTrailingNewlines absorbs any NewLine run immediately following a
// Comma (already consumed, its joined range so far in soFar) into the
// emitted Comma's range.
func (n *Normalizer) fuseTrailingNewlines(soFar source.Range) (token.WithRange, bool, error) {
	for {
		nxt, ok, err := n.buf.Peek(0)
		if err != nil {
			return token.WithRange{}, false, err
		}
		if !ok || nxt.Token.Kind != token.NewLine {
			break
		}
		n.buf.Next()
		soFar = source.Join(soFar, nxt.Range)
	}
	return token.WithRange{Token: token.Token{Kind: token.Comma}, Range: soFar}, true, nil
}

// applySign consumes the Number token immediately following a Plus or Minus
// and emits a single Number token with the sign folded in and ranges
// joined, per spec rule 4.3.2.3.
func (n *Normalizer) applySign(sign token.WithRange) (token.WithRange, bool, error) {
	isPlus := sign.Token.Kind == token.Plus
	signWord := "plus"
	if !isPlus {
		signWord = "minus"
	}

	nxt, ok, err := n.buf.Peek(0)
	if err != nil {
		return token.WithRange{}, false, err
	}
	if !ok {
		return token.WithRange{}, false, errAt(sign.Range, "missing number after %s sign", signWord)
	}
	if nxt.Token.Kind != token.Number {
		return token.WithRange{}, false, errAt(sign.Range, "%s sign can only be applied to numbers", signWord)
	}
	n.buf.Next()
	num := nxt.Token.Num
	joined := source.Join(sign.Range, nxt.Range)

	if num.Width.Float() {
		if num.IsNaN() {
			// Spec: minus-on-NaN reports the same message as plus-on-NaN.
			return token.WithRange{}, false, errAt(joined, "plus sign cannot be applied to NaN")
		}
		if isPlus {
			return token.WithRange{Token: token.Token{Kind: token.Number, Num: num}, Range: joined}, true, nil
		}
		return token.WithRange{Token: token.Token{Kind: token.Number, Num: num.Negate()}, Range: joined}, true, nil
	}

	if num.Width.Unsigned() {
		if isPlus {
			return token.WithRange{Token: token.Token{Kind: token.Number, Num: num}, Range: joined}, true, nil
		}
		return token.WithRange{}, false, errAt(joined, "minus sign cannot be applied to unsigned numbers")
	}

	// Signed integer bucket.
	if isPlus {
		if num.Uint() > num.Width.Max() {
			return token.WithRange{}, false, errAt(joined, "the %s number is overflowed", num.Width)
		}
		return token.WithRange{Token: token.Token{Kind: token.Number, Num: num}, Range: joined}, true, nil
	}

	minMagnitude := num.Width.Max() + 1 // 2^(bits-1), the magnitude of Ix::MIN
	if num.Uint() > minMagnitude {
		return token.WithRange{}, false, errAt(joined, "cannot convert to negative %s", num.Width)
	}
	negated := token.NewUint(num.Width, negateTwosComplement(num.Width, num.Uint()))
	return token.WithRange{Token: token.Token{Kind: token.Number, Num: negated}, Range: joined}, true, nil
}

// checkBareOverflow enforces spec rule 4.3.2.4: a standalone signed-integer
// Number whose stored unsigned magnitude exceeds its bucket's signed
// maximum is illegal once it leaves the normalizer (it never received a
// unary "-" to bring it back into range).
func checkBareOverflow(tok token.WithRange) error {
	num := tok.Token.Num
	if num.Width.Signed() && num.Uint() > num.Width.Max() {
		return errAt(tok.Range, "the %s number is overflowed", num.Width)
	}
	return nil
}

// negateTwosComplement computes the unsigned twin of -magnitude within
// width's own bit size: the same reinterpret-cast trick the parser/decoder
// use when emitting a signed value from a stored magnitude, applied here in
// reverse. Go defines unary "-" on unsigned operands as two's-complement
// wraparound, so this is exact for every bit width up to 64.
func negateTwosComplement(width token.Width, magnitude uint64) uint64 {
	bits := width.BitSize()
	if bits >= 64 {
		return -magnitude
	}
	mask := uint64(1)<<uint(bits) - 1
	return (-magnitude) & mask
}
