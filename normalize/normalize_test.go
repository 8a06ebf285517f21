package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/lexer"
	"github.com/RembrandtK/ason/token"
)

func pipeline(src string) peek.Source[token.WithRange] {
	return Trim(Normalize(StripComments(lexer.New([]byte(src)))))
}

func collect(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()
	p := pipeline(src)
	var out []token.Token
	for {
		tok, ok, err := p.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok.Token)
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func TestNormalizeStripsComments(t *testing.T) {
	toks, err := collect(t, "1, // hi\n2")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number, token.Comma, token.Number}, kinds(toks))
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	toks, err := collect(t, "1\n\n\n2")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number, token.NewLine, token.Number}, kinds(toks))
}

func TestNormalizeFusesNewlineComma(t *testing.T) {
	toks, err := collect(t, "1\n,\n2")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number, token.Comma, token.Number}, kinds(toks))
}

func TestNormalizeTrimsLeadingAndTrailingNewline(t *testing.T) {
	toks, err := collect(t, "\n1\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number}, kinds(toks))
}

func TestNormalizePlusOnNumber(t *testing.T) {
	toks, err := collect(t, "+127_i8")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.I8, toks[0].Num.Width)
	assert.Equal(t, uint64(127), toks[0].Num.Uint())
}

func TestNormalizePlusOverflow(t *testing.T) {
	_, err := collect(t, "+128_i8")
	require.Error(t, err)
}

func TestNormalizeMinusOnSignedInteger(t *testing.T) {
	toks, err := collect(t, "-128_i8")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.I8, toks[0].Num.Width)
	assert.Equal(t, uint64(128), toks[0].Num.Uint())
}

func TestNormalizeMinusOverflow(t *testing.T) {
	_, err := collect(t, "-129_i8")
	require.Error(t, err)
}

func TestNormalizeMinusOnUnsignedIsError(t *testing.T) {
	_, err := collect(t, "-1_u8")
	require.Error(t, err)
}

func TestNormalizeMinusOnFloatNegates(t *testing.T) {
	toks, err := collect(t, "-3.5")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, -3.5, toks[0].Num.Float64())
}

func TestNormalizeSignOnNaNIsError(t *testing.T) {
	_, err := collect(t, "-NaN")
	require.Error(t, err)
	_, err = collect(t, "+NaN")
	require.Error(t, err)
}

func TestNormalizeBareSignedOverflow(t *testing.T) {
	_, err := collect(t, "200_i8")
	require.Error(t, err)
}

func TestNormalizeMissingNumberAfterSign(t *testing.T) {
	_, err := collect(t, "+")
	require.Error(t, err)
}

func TestNormalizeSignNotFollowedByNumber(t *testing.T) {
	_, err := collect(t, `+"x"`)
	require.Error(t, err)
}
