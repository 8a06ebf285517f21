// Package lexer implements the ASON lexer: a pull-based stage that turns
// positioned runes into token.WithRange values (spec.md §4.2). Its shape
// follows the teacher's protoLex/runeReader (kralicky-protocompile's
// parser/lexer.go): a buffered reader with mark/unread pushback, one
// read* method per literal kind, and a dedicated error type carrying a
// source Range.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RembrandtK/ason/internal/art"
	"github.com/RembrandtK/ason/internal/source"
	"github.com/RembrandtK/ason/token"
)

var (
	errUnterminated     = fmt.Errorf("unterminated literal")
	errInvalidEscape    = fmt.Errorf("invalid escape sequence")
	errInvalidCodepoint = fmt.Errorf("invalid Unicode scalar value")
)

// special identifies the fixed keyword vocabulary recognized verbatim by
// the lexer (spec.md §4.2 "Keywords").
type special int

const (
	specialTrue special = iota
	specialFalse
	specialNaN
	specialInf
	specialNaNF32
	specialInfF32
	specialNaNF64
	specialInfF64
)

var keywordTable = art.NewTable(map[string]special{
	"true":     specialTrue,
	"false":    specialFalse,
	"NaN":      specialNaN,
	"Inf":      specialInf,
	"NaN_f32":  specialNaNF32,
	"Inf_f32":  specialInfF32,
	"NaN_f64":  specialNaNF64,
	"Inf_f64":  specialInfF64,
})

var suffixTable = art.NewTable(map[string]token.Width{
	"i8":  token.I8,
	"u8":  token.U8,
	"i16": token.I16,
	"u16": token.U16,
	"i32": token.I32,
	"u32": token.U32,
	"i64": token.I64,
	"u64": token.U64,
	"f32": token.F32,
	"f64": token.F64,
})

// Lexer is a pull-based tokenizer: repeated calls to Next produce one
// token.WithRange at a time until the source is exhausted.
type Lexer struct {
	tr *source.Tracker
}

// Option configures New. Grounded on the teacher's
// newLexer(in, filename, handler, version int32) constructor parameter
// list, generalized into the functional-options idiom ason.Options wraps
// (SPEC_FULL.md §4.8).
type Option func(*config)

type config struct {
	strictUTF8 bool
}

// WithStrictUTF8 controls whether invalid UTF-8 byte sequences abort
// lexing with a DecodeError (the default, true) or decode to U+FFFD and
// continue (false), mirroring the teacher's runeReader.utf8Strict field.
func WithStrictUTF8(strict bool) Option {
	return func(c *config) { c.strictUTF8 = strict }
}

// New wraps source text for lexing. ASON's grammar surface explicitly does
// not recognize a byte-order-mark preamble (spec.md §6); unlike the teacher,
// which silently strips a leading UTF-8 BOM, ASON's lexer follows
// original_source's behavior of treating it as ordinary (invalid) input,
// which surfaces as an "unknown character" error at offset 0. See
// DESIGN.md for this resolution.
func New(data []byte, opts ...Option) *Lexer {
	cfg := config{strictUTF8: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.strictUTF8 {
		return &Lexer{tr: source.NewTracker(data)}
	}
	return &Lexer{tr: source.NewTrackerLenient(data)}
}

// Next implements peek.Source[token.WithRange].
func (l *Lexer) Next() (token.WithRange, bool, error) {
	for {
		r, pos, err := l.tr.Next()
		if err != nil {
			if isEOF(err) {
				return token.WithRange{}, false, nil
			}
			return token.WithRange{}, false, err
		}
		switch r {
		case ' ', '\t':
			continue
		case '\r':
			l.tr.Mark()
			r2, _, err2 := l.tr.Next()
			if err2 == nil && r2 == '\n' {
				return tokAt(token.Token{Kind: token.NewLine}, pos, 2), true, nil
			}
			if err2 == nil {
				l.tr.Unread(utf8.RuneLen(r2))
			}
			continue
		case '\n':
			return tokAt(token.Token{Kind: token.NewLine}, pos, 1), true, nil
		}
		return l.lexFrom(r, pos)
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

func tokAt(t token.Token, pos source.Position, length int) token.WithRange {
	return token.WithRange{Token: t, Range: source.Range{Position: pos, Length: length}}
}

// peek1 looks at the next rune without consuming it. ok is false at EOF.
func (l *Lexer) peek1() (r rune, ok bool) {
	l.tr.Mark()
	r, _, err := l.tr.Next()
	if err != nil {
		return 0, false
	}
	l.tr.Unread(utf8.RuneLen(r))
	return r, true
}

// peek2 looks two runes ahead without consuming anything.
func (l *Lexer) peek2() (r1, r2 rune, ok1, ok2 bool) {
	l.tr.Mark()
	a, _, errA := l.tr.Next()
	if errA != nil {
		return 0, 0, false, false
	}
	b, _, errB := l.tr.Next()
	consumed := utf8.RuneLen(a)
	if errB == nil {
		consumed += utf8.RuneLen(b)
	}
	l.tr.Unread(consumed)
	if errB != nil {
		return a, 0, true, false
	}
	return a, b, true, true
}

func (l *Lexer) lexFrom(r rune, start source.Position) (token.WithRange, bool, error) {
	switch {
	case r == '/':
		return l.lexComment(start)
	case r == '{':
		return single(token.LeftBrace, start), true, nil
	case r == '}':
		return single(token.RightBrace, start), true, nil
	case r == '[':
		return single(token.LeftBracket, start), true, nil
	case r == ']':
		return single(token.RightBracket, start), true, nil
	case r == '(':
		return single(token.LeftParen, start), true, nil
	case r == ')':
		return single(token.RightParen, start), true, nil
	case r == ':':
		return single(token.Colon, start), true, nil
	case r == ',':
		return single(token.Comma, start), true, nil
	case r == '+':
		return single(token.Plus, start), true, nil
	case r == '-':
		return single(token.Minus, start), true, nil
	case r == '\'':
		return l.lexChar(start)
	case r == '"':
		return l.lexString(start)
	case r >= '0' && r <= '9':
		return l.lexNumber(r, start)
	case r == 'r':
		if next, ok := l.peek1(); ok && next == '"' {
			l.tr.Next() // consume the quote
			return l.lexRawString(start)
		}
		return l.lexIdentifierOrVariant(r, start)
	case r == 'h':
		if next, ok := l.peek1(); ok && next == '"' {
			l.tr.Next()
			return l.lexHexByteData(start)
		}
		return l.lexIdentifierOrVariant(r, start)
	case r == 'd':
		if next, ok := l.peek1(); ok && next == '"' {
			l.tr.Next()
			return l.lexDate(start)
		}
		return l.lexIdentifierOrVariant(r, start)
	case isIdentStart(r):
		return l.lexIdentifierOrVariant(r, start)
	default:
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: utf8.RuneLen(r)}, "unknown character %q", r)
	}
}

func single(k token.Kind, start source.Position) token.WithRange {
	return tokAt(token.Token{Kind: k}, start, 1)
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// --- comments ---

func (l *Lexer) lexComment(start source.Position) (token.WithRange, bool, error) {
	next, ok := l.peek1()
	if !ok || (next != '/' && next != '*') {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: 1}, "unknown character %q", '/')
	}
	l.tr.Next() // consume '/' or '*'
	if next == '/' {
		var text strings.Builder
		length := 2
		for {
			l.tr.Mark()
			r, _, err := l.tr.Next()
			if err != nil || r == '\n' {
				if err == nil {
					l.tr.Unread(utf8.RuneLen(r))
				}
				break
			}
			text.WriteRune(r)
			length += utf8.RuneLen(r)
		}
		return tokAt(token.Token{Kind: token.Comment, CommentKind: token.LineComment, CommentText: text.String()}, start, length), true, nil
	}

	// block comment: "/* ... */"; this implementation does not support
	// nesting (the first "*/" closes), per spec.md §9's note that nesting
	// is not required and original_source matches this behavior.
	var text strings.Builder
	length := 2
	for {
		r, _, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated block comment")
		}
		length += utf8.RuneLen(r)
		if r == '*' {
			if next, ok := l.peek1(); ok && next == '/' {
				l.tr.Next()
				length++
				return tokAt(token.Token{Kind: token.Comment, CommentKind: token.BlockComment, CommentText: text.String()}, start, length), true, nil
			}
		}
		text.WriteRune(r)
	}
}

// --- char literal ---

func (l *Lexer) lexChar(start source.Position) (token.WithRange, bool, error) {
	length := 1
	r, size, err := l.readEscapedRune('\'')
	length += size
	if err != nil {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "%s", err.Error())
	}
	closer, closerOK := false, false
	if c, ok := l.peek1(); ok && c == '\'' {
		l.tr.Next()
		closer, closerOK = true, true
		length++
	}
	_ = closerOK
	if !closer {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated char literal")
	}
	return tokAt(token.Token{Kind: token.Char, Rune: r}, start, length), true, nil
}

// readEscapedRune reads one (possibly escaped) rune, terminated by quote.
// Returns the rune, the number of source bytes consumed, and an error.
func (l *Lexer) readEscapedRune(quote rune) (rune, int, error) {
	r, _, err := l.tr.Next()
	if err != nil {
		return 0, 0, errUnterminated
	}
	if r != '\\' {
		return r, utf8.RuneLen(r), nil
	}
	esc, _, err := l.tr.Next()
	if err != nil {
		return 0, 1, errUnterminated
	}
	switch esc {
	case '\\':
		return '\\', 2, nil
	case '\'':
		return '\'', 2, nil
	case '"':
		return '"', 2, nil
	case 't':
		return '\t', 2, nil
	case 'r':
		return '\r', 2, nil
	case 'n':
		return '\n', 2, nil
	case '0':
		return 0, 2, nil
	case 'u':
		if next, ok := l.peek1(); !ok || next != '{' {
			return 0, 2, errInvalidEscape
		}
		l.tr.Next() // consume '{'
		var hex strings.Builder
		consumed := 3
		for {
			c, _, err := l.tr.Next()
			if err != nil {
				return 0, consumed, errUnterminated
			}
			consumed++
			if c == '}' {
				break
			}
			hex.WriteRune(c)
			if hex.Len() > 6 {
				return 0, consumed, errInvalidEscape
			}
		}
		if hex.Len() == 0 {
			return 0, consumed, errInvalidEscape
		}
		v, err := strconv.ParseUint(hex.String(), 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, consumed, errInvalidCodepoint
		}
		return rune(v), consumed, nil
	default:
		return 0, 2, errInvalidEscape
	}
}

// --- string literals ---

func (l *Lexer) lexString(start source.Position) (token.WithRange, bool, error) {
	// triple-quoted: the next two runes are also '"'.
	if a, b, ok1, ok2 := l.peek2(); ok1 && ok2 && a == '"' && b == '"' {
		l.tr.Next()
		l.tr.Next()
		return l.lexTripleString(start)
	}

	var buf strings.Builder
	length := 1
	for {
		r, size, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated string literal")
		}
		length += utf8.RuneLen(r)
		if r == '"' {
			break
		}
		if r == '\n' {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "encountered end of line before end of string literal")
		}
		if r == '\\' {
			l.tr.Unread(size)
			rr, n, err := l.readEscapedRune('"')
			if err != nil {
				return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length + n - 1}, "%s", err.Error())
			}
			length += n - 1
			buf.WriteRune(rr)
			continue
		}
		buf.WriteRune(r)
	}
	return tokAt(token.Token{Kind: token.String, Str: buf.String()}, start, length), true, nil
}

func (l *Lexer) lexRawString(start source.Position) (token.WithRange, bool, error) {
	var buf strings.Builder
	length := 2 // r"
	for {
		r, _, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated raw string literal")
		}
		length += utf8.RuneLen(r)
		if r == '"' {
			break
		}
		buf.WriteRune(r)
	}
	return tokAt(token.Token{Kind: token.String, Str: buf.String()}, start, length), true, nil
}

// lexTripleString handles """ ... """, stripping the common leading
// indentation of the closing delimiter's line and trimming a single
// leading/trailing blank line, per spec.md §4.2. When the closing delimiter
// does not sit on a line of its own, the smallest indentation among the
// non-blank lines is stripped instead.
func (l *Lexer) lexTripleString(start source.Position) (token.WithRange, bool, error) {
	var raw strings.Builder
	length := 3
	for {
		r, size, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated triple-quoted string literal")
		}
		length += size
		if r == '"' {
			if b, c, okB, okC := l.peek2(); okB && okC && b == '"' && c == '"' {
				l.tr.Next()
				l.tr.Next()
				length += 2
				break
			}
			raw.WriteRune(r)
			continue
		}
		raw.WriteRune(r)
	}

	text := stripCommonIndent(raw.String())
	return tokAt(token.Token{Kind: token.String, Str: text}, start, length), true, nil
}

func stripCommonIndent(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	indent := -1
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		indent = len(lines[n-1])
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		return ""
	}
	if indent < 0 {
		for _, ln := range lines {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			n := len(ln) - len(strings.TrimLeft(ln, " \t"))
			if indent == -1 || n < indent {
				indent = n
			}
		}
	}
	if indent < 0 {
		indent = 0
	}
	for i, ln := range lines {
		if len(ln) >= indent && strings.TrimLeft(ln[:indent], " \t") == "" {
			lines[i] = ln[indent:]
		} else {
			lines[i] = strings.TrimLeft(ln, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// --- hex byte data ---

func (l *Lexer) lexHexByteData(start source.Position) (token.WithRange, bool, error) {
	var hexDigits strings.Builder
	length := 2 // h"
	for {
		r, _, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated byte data literal")
		}
		length += utf8.RuneLen(r)
		if r == '"' {
			break
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if !isHexDigit(r) {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "invalid hex digit %q in byte data literal", r)
		}
		hexDigits.WriteRune(r)
	}
	if hexDigits.Len()%2 != 0 {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "byte data literal has an odd number of hex digits")
	}
	data, err := decodeHex(hexDigits.String())
	if err != nil {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "invalid byte data literal")
	}
	return tokAt(token.Token{Kind: token.HexByteData, Bytes: data}, start, length), true, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func decodeHex(s string) ([]byte, error) {
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// --- date literal ---

func (l *Lexer) lexDate(start source.Position) (token.WithRange, bool, error) {
	var buf strings.Builder
	length := 2 // d"
	for {
		r, _, err := l.tr.Next()
		if err != nil {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "unterminated date literal")
		}
		length += utf8.RuneLen(r)
		if r == '"' {
			break
		}
		if r == '\n' {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "encountered end of line before end of date literal")
		}
		buf.WriteRune(r)
	}
	t, err := time.Parse(time.RFC3339, buf.String())
	if err != nil {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "invalid date-time literal %q", buf.String())
	}
	return tokAt(token.Token{Kind: token.Date, DateVal: t}, start, length), true, nil
}

// --- identifiers, keywords, variant paths ---

func (l *Lexer) lexIdentifierOrVariant(first rune, start source.Position) (token.WithRange, bool, error) {
	var buf strings.Builder
	buf.WriteRune(first)
	length := utf8.RuneLen(first)
	for {
		r, ok := l.peek1()
		if !ok || !isIdentCont(r) {
			break
		}
		l.tr.Next()
		buf.WriteRune(r)
		length += utf8.RuneLen(r)
	}
	name := buf.String()

	if kw, ok := keywordTable.Lookup(name); ok {
		return tokAt(keywordToken(kw), start, length), true, nil
	}

	if a, b, ok1, ok2 := l.peek2(); ok1 && ok2 && a == ':' && b == ':' {
		l.tr.Next()
		l.tr.Next()
		length += 2
		memberStart, ok := l.peek1()
		if !ok || !isIdentStart(memberStart) {
			return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "expected identifier after \"::\"")
		}
		l.tr.Next()
		var member strings.Builder
		member.WriteRune(memberStart)
		length += utf8.RuneLen(memberStart)
		for {
			r, ok := l.peek1()
			if !ok || !isIdentCont(r) {
				break
			}
			l.tr.Next()
			member.WriteRune(r)
			length += utf8.RuneLen(r)
		}
		return tokAt(token.Token{Kind: token.Variant, VariantType: name, VariantMember: member.String()}, start, length), true, nil
	}

	return tokAt(token.Token{Kind: token.Identifier, Ident: name}, start, length), true, nil
}

// --- number literals ---

// lexNumber consumes a number lexeme: an optional radix prefix (0x/0b), the
// digit body (with underscore separators, a decimal point, and a decimal or
// hexadecimal exponent marker), and an optional trailing "_<width>" suffix,
// then classifies and parses it into one of the ten typed buckets of
// spec.md §3. The lexer assigns the default bucket (I32 for a bare integer,
// F64 for anything with a fractional part or exponent) and accepts any
// magnitude that fits the bucket's own bit width; the narrower signed-bucket
// overflow check ("128_i8" is legal only with a unary "-" applied in front) is the
// normalizer's job, not the lexer's (spec.md §4.3).
func (l *Lexer) lexNumber(first rune, start source.Position) (token.WithRange, bool, error) {
	var buf strings.Builder
	buf.WriteRune(first)
	length := utf8.RuneLen(first)
	allowSign := false
	for {
		r, ok := l.peek1()
		if !ok {
			break
		}
		if r == '+' || r == '-' {
			if !allowSign {
				break
			}
			allowSign = false
			l.tr.Next()
			buf.WriteRune(r)
			length += utf8.RuneLen(r)
			continue
		}
		isExponentMarker := r == 'e' || r == 'E' || r == 'p' || r == 'P'
		if r == '.' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			allowSign = isExponentMarker
			l.tr.Next()
			buf.WriteRune(r)
			length += utf8.RuneLen(r)
			continue
		}
		break
	}

	lexeme := buf.String()
	num, err := parseNumberLexeme(lexeme)
	if err != nil {
		return token.WithRange{}, false, errAt(source.Range{Position: start, Length: length}, "%s", err.Error())
	}
	return tokAt(token.Token{Kind: token.Number, Num: num}, start, length), true, nil
}

// splitSuffix separates a trailing "_<width>" type suffix from the numeric
// body, recognizing only the fixed vocabulary in suffixTable so that a
// literal like "1_000" (a thousands separator, no suffix) is left intact.
func splitSuffix(lexeme string) (width token.Width, hasSuffix bool, body string) {
	idx := strings.LastIndexByte(lexeme, '_')
	if idx < 0 {
		return 0, false, lexeme
	}
	candidate := lexeme[idx+1:]
	if w, ok := suffixTable.Lookup(candidate); ok {
		return w, true, lexeme[:idx]
	}
	return 0, false, lexeme
}

func parseNumberLexeme(lexeme string) (token.Number, error) {
	width, hasSuffix, body := splitSuffix(lexeme)
	clean := strings.ReplaceAll(body, "_", "")
	if clean == "" {
		return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
	}
	lower := strings.ToLower(clean)

	switch {
	case strings.HasPrefix(lower, "0x"):
		digits := clean[2:]
		if strings.ContainsAny(digits, ".pP") {
			return parseFloatLexeme(lexeme, clean, width, hasSuffix)
		}
		if hasSuffix && width.Float() {
			return parseRadixFloatLexeme(lexeme, digits, 16, width)
		}
		if !hasSuffix {
			width = token.I32
		}
		v, err := strconv.ParseUint(digits, 16, width.BitSize())
		if err != nil {
			return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
		}
		return token.NewUint(width, v), nil

	case strings.HasPrefix(lower, "0b"):
		digits := clean[2:]
		if hasSuffix && width.Float() {
			return parseRadixFloatLexeme(lexeme, digits, 2, width)
		}
		if !hasSuffix {
			width = token.I32
		}
		v, err := strconv.ParseUint(digits, 2, width.BitSize())
		if err != nil {
			return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
		}
		return token.NewUint(width, v), nil

	default:
		if strings.ContainsAny(clean, ".eE") || (hasSuffix && width.Float()) {
			return parseFloatLexeme(lexeme, clean, width, hasSuffix)
		}
		if !hasSuffix {
			width = token.I32
		}
		v, err := strconv.ParseUint(clean, 10, width.BitSize())
		if err != nil {
			return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
		}
		return token.NewUint(width, v), nil
	}
}

func parseFloatLexeme(lexeme, clean string, width token.Width, hasSuffix bool) (token.Number, error) {
	if hasSuffix && !width.Float() {
		return token.Number{}, fmt.Errorf("type suffix %q is not valid for a floating-point literal", width)
	}
	bitSize := 64
	if hasSuffix && width == token.F32 {
		bitSize = 32
	}
	f, err := strconv.ParseFloat(clean, bitSize)
	if err != nil {
		return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
	}
	if bitSize == 32 {
		return token.NewFloat32(float32(f)), nil
	}
	return token.NewFloat64(f), nil
}

// parseRadixFloatLexeme handles a hex or binary integer literal carrying a
// float suffix with no "." or exponent in its digits (e.g. "0x10_f32",
// "0b101_f64"): the digits parse as an integer magnitude, which must be
// converted through float32(v)/float64(v), never reinterpreted as an
// IEEE-754 bit pattern the way the integer path stores it.
func parseRadixFloatLexeme(lexeme, digits string, radix int, width token.Width) (token.Number, error) {
	v, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return token.Number{}, fmt.Errorf("malformed number literal %q", lexeme)
	}
	if width == token.F32 {
		return token.NewFloat32(float32(v)), nil
	}
	return token.NewFloat64(float64(v)), nil
}

func keywordToken(kw special) token.Token {
	switch kw {
	case specialTrue:
		return token.Token{Kind: token.Boolean, Bool: true}
	case specialFalse:
		return token.Token{Kind: token.Boolean, Bool: false}
	case specialNaN:
		return token.Token{Kind: token.Number, Num: token.NewFloat64(math.NaN())}
	case specialInf:
		return token.Token{Kind: token.Number, Num: token.NewFloat64(math.Inf(1))}
	case specialNaNF32:
		return token.Token{Kind: token.Number, Num: token.NewFloat32(float32(math.NaN()))}
	case specialInfF32:
		return token.Token{Kind: token.Number, Num: token.NewFloat32(float32(math.Inf(1)))}
	case specialNaNF64:
		return token.Token{Kind: token.Number, Num: token.NewFloat64(math.NaN())}
	case specialInfF64:
		return token.Token{Kind: token.Number, Num: token.NewFloat64(math.Inf(1))}
	default:
		panic("lexer: unknown special keyword")
	}
}
