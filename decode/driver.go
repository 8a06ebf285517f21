// Package decode streams a normalized token.WithRange sequence directly
// into a schema-aware Visitor, without ever materializing a value.Node
// tree (spec.md §4.5: "It never builds the full Node tree"). Grounded on
// original_source's serde/de.rs Deserializer, translated from Rust's
// push-based associated-type dispatch into Go's pull-based Driver with
// per-shape Decode* methods, each driven by the binding layer (package
// bind) since Go has no compile-time knowledge of the target type.
package decode

import (
	"github.com/RembrandtK/ason/internal/art"
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/token"
	"github.com/RembrandtK/ason/value"
)

// Driver is the decoder's token cursor: a 3-token lookahead buffer over
// the lexer→normalize pipeline, the same capacity the parser uses. The
// Driver itself only peeks one token ahead: which of List or Map is
// expected comes from the Decode* method the binding layer calls, not from
// lookahead.
type Driver struct {
	buf      *peek.Buffer[token.WithRange]
	maxDepth int
	depth    int
}

// New wraps upstream (expected to already be lexed and normalized) in a
// Driver.
func New(upstream peek.Source[token.WithRange], opts ...Option) *Driver {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Driver{buf: peek.New[token.WithRange](upstream, 3), maxDepth: cfg.maxDepth}
}

// enterContainer charges one level of nesting depth against maxDepth
// (0 = unlimited), returning a func to release it. Called once per opened
// Seq/Tuple/Map/Struct bracket and per EnumAccess.Tuple/Struct payload,
// mirroring parser.enterContainer (SPEC_FULL.md §4.8). The parentheses of
// Option::Some(...) and of an EnumAccess.Value payload are not charged,
// whereas the parser charges every variant payload bracket.
func (d *Driver) enterContainer(openTok token.WithRange) (func(), error) {
	if d.maxDepth > 0 && d.depth >= d.maxDepth {
		return nil, errAt(openTok.Range, "exceeds maximum nesting depth")
	}
	d.depth++
	return func() { d.depth-- }, nil
}

// Finish checks that decoding consumed the entire document, per spec.md
// §4.5's "Trailing token" obligation.
func (d *Driver) Finish() error {
	tok, ok, err := d.peekTok(0)
	if err != nil {
		return err
	}
	if ok {
		return errAt(tok.Range, "document has more than one node")
	}
	return nil
}

func (d *Driver) peekTok(offset int) (token.WithRange, bool, error) { return d.buf.Peek(offset) }
func (d *Driver) nextTok() (token.WithRange, bool, error)           { return d.buf.Next() }

func (d *Driver) consumeOptionalNewline() error {
	tok, ok, err := d.peekTok(0)
	if err != nil {
		return err
	}
	if ok && tok.Token.Kind == token.NewLine {
		d.nextTok()
	}
	return nil
}

func (d *Driver) expectKind(k token.Kind, name string) (token.WithRange, error) {
	tok, ok, err := d.peekTok(0)
	if err != nil {
		return token.WithRange{}, err
	}
	if !ok {
		return token.WithRange{}, errEOF("expect %q", name)
	}
	if tok.Token.Kind != k {
		return token.WithRange{}, errAt(tok.Range, "expect %q", name)
	}
	d.nextTok()
	return tok, nil
}

// DecodeBool consumes one Boolean token.
func (d *Driver) DecodeBool(v Visitor) error {
	tok, err := d.expectKind(token.Boolean, "bool")
	if err != nil {
		return err
	}
	return v.VisitBool(tok.Token.Bool)
}

// decodeNumber consumes one Number token and reinterprets it into the
// node-stage signed/unsigned representation before dispatch, reusing the
// parser's narrowing logic.
func (d *Driver) decodeNumber(name string) (value.NumberValue, error) {
	tok, err := d.expectKind(token.Number, name)
	if err != nil {
		return value.NumberValue{}, err
	}
	return value.NumberFromToken(tok.Token.Num), nil
}

func (d *Driver) DecodeI8(v Visitor) error {
	n, err := d.decodeNumber("i8")
	if err != nil {
		return err
	}
	return v.VisitI8(int8(n.Int))
}

func (d *Driver) DecodeU8(v Visitor) error {
	n, err := d.decodeNumber("u8")
	if err != nil {
		return err
	}
	return v.VisitU8(uint8(n.Uint))
}

func (d *Driver) DecodeI16(v Visitor) error {
	n, err := d.decodeNumber("i16")
	if err != nil {
		return err
	}
	return v.VisitI16(int16(n.Int))
}

func (d *Driver) DecodeU16(v Visitor) error {
	n, err := d.decodeNumber("u16")
	if err != nil {
		return err
	}
	return v.VisitU16(uint16(n.Uint))
}

func (d *Driver) DecodeI32(v Visitor) error {
	n, err := d.decodeNumber("i32")
	if err != nil {
		return err
	}
	return v.VisitI32(int32(n.Int))
}

func (d *Driver) DecodeU32(v Visitor) error {
	n, err := d.decodeNumber("u32")
	if err != nil {
		return err
	}
	return v.VisitU32(uint32(n.Uint))
}

func (d *Driver) DecodeI64(v Visitor) error {
	n, err := d.decodeNumber("i64")
	if err != nil {
		return err
	}
	return v.VisitI64(n.Int)
}

func (d *Driver) DecodeU64(v Visitor) error {
	n, err := d.decodeNumber("u64")
	if err != nil {
		return err
	}
	return v.VisitU64(n.Uint)
}

func (d *Driver) DecodeF32(v Visitor) error {
	n, err := d.decodeNumber("f32")
	if err != nil {
		return err
	}
	return v.VisitF32(float32(n.Float))
}

func (d *Driver) DecodeF64(v Visitor) error {
	n, err := d.decodeNumber("f64")
	if err != nil {
		return err
	}
	return v.VisitF64(n.Float)
}

func (d *Driver) DecodeChar(v Visitor) error {
	tok, err := d.expectKind(token.Char, "char")
	if err != nil {
		return err
	}
	return v.VisitChar(tok.Token.Rune)
}

func (d *Driver) DecodeString(v Visitor) error {
	tok, err := d.expectKind(token.String, "string")
	if err != nil {
		return err
	}
	return v.VisitString(tok.Token.Str)
}

func (d *Driver) DecodeBytes(v Visitor) error {
	tok, err := d.expectKind(token.HexByteData, "byte data")
	if err != nil {
		return err
	}
	return v.VisitBytes(tok.Token.Bytes)
}

func (d *Driver) DecodeDateTime(v Visitor) error {
	tok, err := d.expectKind(token.Date, "date")
	if err != nil {
		return err
	}
	return v.VisitDateTime(tok.Token.DateVal)
}

// DecodeOption expects a Variant with type name Option (spec.md §4.5):
// None ⇒ visit-none; Some(x) ⇒ visit-some with the inner value left for
// the visitor to decode via d.
func (d *Driver) DecodeOption(v Visitor) error {
	tok, err := d.expectKind(token.Variant, "option")
	if err != nil {
		return err
	}
	if tok.Token.VariantType != "Option" {
		return errAt(tok.Range, "expect \"option\"")
	}
	switch tok.Token.VariantMember {
	case "None":
		return v.VisitOption(false, d)
	case "Some":
		if _, err := d.expectKind(token.LeftParen, "("); err != nil {
			return err
		}
		if err := v.VisitOption(true, d); err != nil {
			return err
		}
		if _, err := d.expectKind(token.RightParen, ")"); err != nil {
			return err
		}
		return nil
	default:
		return errAt(tok.Range, "invalid member of variant Option")
	}
}

// SeqAccess drives List and Tuple-of-N decoding: the binding layer calls
// Next repeatedly and, after each ok=true, decodes one element off Driver()
// with whichever Decode* method fits the element it expects, until Next
// returns ok=false.
type SeqAccess struct {
	d      *Driver
	closer token.Kind
	name   string
	first  bool
}

// Next reports whether another element is available and, if so, expects
// the caller to decode exactly one value off d before calling Next again.
func (a *SeqAccess) Next() (ok bool, err error) {
	if a.first {
		a.first = false
		if err := a.d.consumeOptionalNewline(); err != nil {
			return false, err
		}
	} else {
		sep, sok, err := a.d.peekTok(0)
		if err != nil {
			return false, err
		}
		if !sok || (sep.Token.Kind != token.Comma && sep.Token.Kind != token.NewLine) {
			return false, nil
		}
		a.d.nextTok()
	}
	tok, tokOk, err := a.d.peekTok(0)
	if err != nil {
		return false, err
	}
	if tokOk && tok.Token.Kind == a.closer {
		return false, nil
	}
	if !tokOk {
		return false, errEOF("expect %q", a.name)
	}
	return true, nil
}

// Driver returns the underlying Driver, for a binding layer that needs to
// decode an element whose Go type it only discovers via reflection.
func (a *SeqAccess) Driver() *Driver { return a.d }

// Close consumes the closing bracket.
func (a *SeqAccess) Close() error {
	_, err := a.d.expectKind(a.closer, a.name)
	return err
}

// DecodeSeq implements the List production.
func (d *Driver) DecodeSeq(v Visitor) error {
	openTok, err := d.expectKind(token.LeftBracket, "[")
	if err != nil {
		return err
	}
	leave, err := d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	a := &SeqAccess{d: d, closer: token.RightBracket, name: "close bracket", first: true}
	if err := v.VisitSeq(a); err != nil {
		return err
	}
	return a.Close()
}

// DecodeTupleN implements the Tuple-of-N production.
func (d *Driver) DecodeTupleN(n int, v Visitor) error {
	openTok, err := d.expectKind(token.LeftParen, "(")
	if err != nil {
		return err
	}
	leave, err := d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	a := &SeqAccess{d: d, closer: token.RightParen, name: "close paren", first: true}
	if err := v.VisitTupleN(n, a); err != nil {
		return err
	}
	return a.Close()
}

// MapAccess drives Map decoding: NextKey reports whether another pair
// remains (the caller decodes the key off d), then NextValue consumes the
// separating colon and lets the caller decode the value.
type MapAccess struct {
	d     *Driver
	first bool
}

func (a *MapAccess) NextKey() (ok bool, err error) {
	if a.first {
		a.first = false
		if err := a.d.consumeOptionalNewline(); err != nil {
			return false, err
		}
	} else {
		sep, sok, err := a.d.peekTok(0)
		if err != nil {
			return false, err
		}
		if !sok || (sep.Token.Kind != token.Comma && sep.Token.Kind != token.NewLine) {
			return false, nil
		}
		a.d.nextTok()
	}
	tok, tokOk, err := a.d.peekTok(0)
	if err != nil {
		return false, err
	}
	if tokOk && tok.Token.Kind == token.RightBracket {
		return false, nil
	}
	if !tokOk {
		return false, errEOF("expect close bracket")
	}
	return true, nil
}

// NextValue consumes the ':' (with optional surrounding newlines) that
// follows a decoded key; the caller decodes the value off d immediately
// after.
func (a *MapAccess) NextValue() error {
	if err := a.d.consumeOptionalNewline(); err != nil {
		return err
	}
	if _, err := a.d.expectKind(token.Colon, "expect colon sign"); err != nil {
		return err
	}
	return a.d.consumeOptionalNewline()
}

// Driver returns the underlying Driver.
func (a *MapAccess) Driver() *Driver { return a.d }

func (a *MapAccess) Close() error {
	_, err := a.d.expectKind(token.RightBracket, "close bracket")
	return err
}

// DecodeMap implements the Map production.
func (d *Driver) DecodeMap(v Visitor) error {
	openTok, err := d.expectKind(token.LeftBracket, "[")
	if err != nil {
		return err
	}
	leave, err := d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	a := &MapAccess{d: d, first: true}
	if err := v.VisitMap(a); err != nil {
		return err
	}
	return a.Close()
}

// FieldAccess drives Object/struct decoding: NextKey reports the next
// field's identifier name (left for the visitor to resolve against its
// own field list via VisitIdentifier), then NextValue lets the caller
// decode the field's value.
type FieldAccess struct {
	d     *Driver
	first bool
}

func (a *FieldAccess) NextKey(v Visitor) (name string, ok bool, err error) {
	if a.first {
		a.first = false
		if err := a.d.consumeOptionalNewline(); err != nil {
			return "", false, err
		}
	} else {
		sep, sok, err := a.d.peekTok(0)
		if err != nil {
			return "", false, err
		}
		if !sok || (sep.Token.Kind != token.Comma && sep.Token.Kind != token.NewLine) {
			return "", false, nil
		}
		a.d.nextTok()
	}
	tok, tokOk, err := a.d.peekTok(0)
	if err != nil {
		return "", false, err
	}
	if tokOk && tok.Token.Kind == token.RightBrace {
		return "", false, nil
	}
	if !tokOk {
		return "", false, errEOF("expect a key name for object")
	}
	if tok.Token.Kind != token.Identifier {
		return "", false, errAt(tok.Range, "expect a key name for object")
	}
	a.d.nextTok()
	if v != nil {
		if err := v.VisitIdentifier(tok.Token.Ident); err != nil {
			return "", false, err
		}
	}
	return tok.Token.Ident, true, nil
}

func (a *FieldAccess) NextValue() error {
	if err := a.d.consumeOptionalNewline(); err != nil {
		return err
	}
	if _, err := a.d.expectKind(token.Colon, "expect colon sign"); err != nil {
		return err
	}
	return a.d.consumeOptionalNewline()
}

// Driver returns the underlying Driver.
func (a *FieldAccess) Driver() *Driver { return a.d }

func (a *FieldAccess) Close() error {
	_, err := a.d.expectKind(token.RightBrace, "close brace")
	return err
}

// DecodeStruct implements the Object production.
func (d *Driver) DecodeStruct(fields []string, v Visitor) error {
	openTok, err := d.expectKind(token.LeftBrace, "{")
	if err != nil {
		return err
	}
	leave, err := d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	a := &FieldAccess{d: d, first: true}
	if err := v.VisitStruct(fields, a); err != nil {
		return err
	}
	return a.Close()
}

// EnumAccess drives Variant decoding (spec.md §4.5's "Enum/Variant"
// bullet). Member returns the raw member name; Dispatch resolves it
// through an art.Table[int] supplied by the caller (domain-stack wiring
// note in SPEC_FULL.md §4.5). Package bind's EnumDecoder receives Member()
// directly and builds no table.
type EnumAccess struct {
	d   *Driver
	tok token.WithRange
}

// Member returns the raw member name lexed from the Type::Member token.
func (a *EnumAccess) Member() string { return a.tok.Token.VariantMember }

// Driver returns the underlying Driver, for a Value callback that needs
// to decode the payload's element.
func (a *EnumAccess) Driver() *Driver { return a.d }

// Dispatch looks up Member() in table, for O(k) member-name resolution.
func (a *EnumAccess) Dispatch(table *art.Table[int]) (int, bool) {
	return table.Lookup(a.tok.Token.VariantMember)
}

// None consumes a unit-payload variant: no "(" or "{" may follow.
func (a *EnumAccess) None() error {
	tok, ok, err := a.d.peekTok(0)
	if err != nil {
		return err
	}
	if ok && (tok.Token.Kind == token.LeftParen || tok.Token.Kind == token.LeftBrace) {
		return errAt(tok.Range, "expected a unit variant")
	}
	return nil
}

// Value decodes a single-value parenthesized payload.
func (a *EnumAccess) Value(decode func() error) error {
	if _, err := a.d.expectKind(token.LeftParen, "("); err != nil {
		return err
	}
	if err := decode(); err != nil {
		return err
	}
	_, err := a.d.expectKind(token.RightParen, ")")
	return err
}

// Tuple decodes a parenthesized tuple payload via a SeqAccess.
func (a *EnumAccess) Tuple(v Visitor, n int) error {
	openTok, err := a.d.expectKind(token.LeftParen, "(")
	if err != nil {
		return err
	}
	leave, err := a.d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	seq := &SeqAccess{d: a.d, closer: token.RightParen, name: "close paren", first: true}
	if err := v.VisitTupleN(n, seq); err != nil {
		return err
	}
	return seq.Close()
}

// Struct decodes a brace-delimited payload via a FieldAccess.
func (a *EnumAccess) Struct(fields []string, v Visitor) error {
	openTok, err := a.d.expectKind(token.LeftBrace, "{")
	if err != nil {
		return err
	}
	leave, err := a.d.enterContainer(openTok)
	if err != nil {
		return err
	}
	defer leave()
	fa := &FieldAccess{d: a.d, first: true}
	if err := v.VisitStruct(fields, fa); err != nil {
		return err
	}
	return fa.Close()
}

// DecodeEnum implements the Enum/Variant production: it expects a Variant
// token whose type name matches typeName, then hands dispatch to the
// visitor.
func (d *Driver) DecodeEnum(typeName string, v Visitor) error {
	tok, err := d.expectKind(token.Variant, "variant")
	if err != nil {
		return err
	}
	if tok.Token.VariantType != typeName {
		return errAt(tok.Range, "expect variant of type %q", typeName)
	}
	return v.VisitEnum(typeName, &EnumAccess{d: d, tok: tok})
}
