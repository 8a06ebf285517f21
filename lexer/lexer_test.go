package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RembrandtK/ason/token"
)

func lexAll(t *testing.T, src string) []token.WithRange {
	t.Helper()
	l := New([]byte(src))
	var out []token.WithRange
	for {
		tok, ok, err := l.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func lexOne(t *testing.T, src string) token.Token {
	t.Helper()
	toks := lexAll(t, src)
	require.Len(t, toks, 1)
	return toks[0].Token
}

func lexErr(t *testing.T, src string) error {
	t.Helper()
	l := New([]byte(src))
	for {
		_, ok, err := l.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := lexAll(t, "{}[]():,+-")
	kinds := make([]token.Kind, len(toks))
	for i, tr := range toks {
		kinds[i] = tr.Token.Kind
	}
	assert.Equal(t, []token.Kind{
		token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket,
		token.LeftParen, token.RightParen,
		token.Colon, token.Comma, token.Plus, token.Minus,
	}, kinds)
}

func TestLexerNewlineAndCRLF(t *testing.T) {
	toks := lexAll(t, "\n\r\n")
	require.Len(t, toks, 2)
	assert.Equal(t, token.NewLine, toks[0].Token.Kind)
	assert.Equal(t, 1, toks[0].Range.Length)
	assert.Equal(t, token.NewLine, toks[1].Token.Kind)
	assert.Equal(t, 2, toks[1].Range.Length)
}

func TestLexerKeywords(t *testing.T) {
	assert.Equal(t, token.Token{Kind: token.Boolean, Bool: true}, lexOne(t, "true"))
	assert.Equal(t, token.Token{Kind: token.Boolean, Bool: false}, lexOne(t, "false"))
	assert.True(t, lexOne(t, "NaN").Num.IsNaN())
	assert.Equal(t, token.F64, lexOne(t, "Inf").Num.Width)
	assert.True(t, lexOne(t, "Inf").Num.Float64() > 0)
	assert.Equal(t, token.F32, lexOne(t, "NaN_f32").Num.Width)
}

func TestLexerIdentifierAndVariant(t *testing.T) {
	tok := lexOne(t, "foo_bar")
	assert.Equal(t, token.Identifier, tok.Kind)
	assert.Equal(t, "foo_bar", tok.Ident)

	tok = lexOne(t, "Color::Red")
	assert.Equal(t, token.Variant, tok.Kind)
	assert.Equal(t, "Color", tok.VariantType)
	assert.Equal(t, "Red", tok.VariantMember)
}

func TestLexerVariantRequiresNoWhitespace(t *testing.T) {
	toks := lexAll(t, "Color :: Red")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Identifier, toks[0].Token.Kind)
	assert.Equal(t, token.Colon, toks[1].Token.Kind)
}

func TestLexerIntegerDefaults(t *testing.T) {
	num := lexOne(t, "42").Num
	assert.Equal(t, token.I32, num.Width)
	assert.Equal(t, uint64(42), num.Uint())
}

func TestLexerIntegerSuffix(t *testing.T) {
	num := lexOne(t, "255_u8").Num
	assert.Equal(t, token.U8, num.Width)
	assert.Equal(t, uint64(255), num.Uint())

	num = lexOne(t, "200_i8").Num
	assert.Equal(t, token.I8, num.Width)
	assert.Equal(t, uint64(200), num.Uint())
}

func TestLexerHexAndBinary(t *testing.T) {
	num := lexOne(t, "0xFF").Num
	assert.Equal(t, token.I32, num.Width)
	assert.Equal(t, uint64(0xFF), num.Uint())

	num = lexOne(t, "0b1010_u8").Num
	assert.Equal(t, token.U8, num.Width)
	assert.Equal(t, uint64(10), num.Uint())
}

func TestLexerFloatDefault(t *testing.T) {
	num := lexOne(t, "3.5").Num
	assert.Equal(t, token.F64, num.Width)
	assert.InDelta(t, 3.5, num.Float64(), 0)

	num = lexOne(t, "1e10").Num
	assert.Equal(t, token.F64, num.Width)
}

func TestLexerFloatSuffix(t *testing.T) {
	num := lexOne(t, "3_f32").Num
	assert.Equal(t, token.F32, num.Width)
	assert.InDelta(t, 3.0, float64(num.Float32()), 0)
}

func TestLexerThousandsSeparatorIsNotASuffix(t *testing.T) {
	num := lexOne(t, "1_000").Num
	assert.Equal(t, token.I32, num.Width)
	assert.Equal(t, uint64(1000), num.Uint())
}

func TestLexerHexFloat(t *testing.T) {
	num := lexOne(t, "0x1.8p3").Num
	assert.Equal(t, token.F64, num.Width)
	assert.InDelta(t, 12.0, num.Float64(), 0)
}

// A radix literal carrying a float suffix but no "."/"p" in its digits must
// convert the parsed magnitude, not reinterpret its bits as IEEE-754.
func TestLexerHexAndBinaryFloatSuffix(t *testing.T) {
	num := lexOne(t, "0x10_f32").Num
	assert.Equal(t, token.F32, num.Width)
	assert.InDelta(t, 16.0, float64(num.Float32()), 0)

	num = lexOne(t, "0x10_f64").Num
	assert.Equal(t, token.F64, num.Width)
	assert.InDelta(t, 16.0, num.Float64(), 0)

	num = lexOne(t, "0b101_f32").Num
	assert.Equal(t, token.F32, num.Width)
	assert.InDelta(t, 5.0, float64(num.Float32()), 0)

	num = lexOne(t, "0b101_f64").Num
	assert.Equal(t, token.F64, num.Width)
	assert.InDelta(t, 5.0, num.Float64(), 0)
}

func TestLexerCharLiteral(t *testing.T) {
	tok := lexOne(t, `'a'`)
	assert.Equal(t, token.Char, tok.Kind)
	assert.Equal(t, 'a', tok.Rune)

	tok = lexOne(t, `'\n'`)
	assert.Equal(t, '\n', tok.Rune)

	tok = lexOne(t, `'\u{1F600}'`)
	assert.Equal(t, rune(0x1F600), tok.Rune)
}

func TestLexerStringLiteral(t *testing.T) {
	tok := lexOne(t, `"hello\tworld"`)
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, "hello\tworld", tok.Str)
}

func TestLexerStringUnterminatedAtNewline(t *testing.T) {
	err := lexErr(t, "\"abc\n\"")
	require.Error(t, err)
}

func TestLexerRawString(t *testing.T) {
	tok := lexOne(t, `r"no \escapes here"`)
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, `no \escapes here`, tok.Str)
}

func TestLexerTripleQuotedString(t *testing.T) {
	src := "\"\"\"\n    hello\n    world\n    \"\"\""
	tok := lexOne(t, src)
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, "hello\nworld", tok.Str)
}

func TestLexerHexByteData(t *testing.T) {
	tok := lexOne(t, `h"DEAD BEEF"`)
	assert.Equal(t, token.HexByteData, tok.Kind)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, tok.Bytes)
}

func TestLexerHexByteDataOddDigits(t *testing.T) {
	err := lexErr(t, `h"ABC"`)
	require.Error(t, err)
}

func TestLexerDateLiteral(t *testing.T) {
	tok := lexOne(t, `d"2023-01-15T10:30:00Z"`)
	assert.Equal(t, token.Date, tok.Kind)
	assert.Equal(t, 2023, tok.DateVal.Year())
}

func TestLexerLineComment(t *testing.T) {
	tok := lexOne(t, "// a comment")
	assert.Equal(t, token.Comment, tok.Kind)
	assert.Equal(t, token.LineComment, tok.CommentKind)
	assert.Equal(t, " a comment", tok.CommentText)
}

func TestLexerBlockComment(t *testing.T) {
	tok := lexOne(t, "/* block */")
	assert.Equal(t, token.Comment, tok.Kind)
	assert.Equal(t, token.BlockComment, tok.CommentKind)
}

func TestLexerUnknownCharacter(t *testing.T) {
	err := lexErr(t, "@")
	require.Error(t, err)
}
