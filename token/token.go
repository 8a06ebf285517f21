// Package token defines the lexical atoms produced by the ASON lexer and
// carried, transformed, and consumed through every later pipeline stage.
package token

import (
	"fmt"
	"math"
	"time"

	"github.com/RembrandtK/ason/internal/source"
)

// Kind tags the variant a Token holds.
type Kind int

const (
	Number Kind = iota
	Boolean
	Char
	String
	Date
	HexByteData
	Identifier
	Variant
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	Colon
	Comma
	Plus
	Minus
	NewLine
	Comment
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case String:
		return "string"
	case Date:
		return "date"
	case HexByteData:
		return "byte data"
	case Identifier:
		return "identifier"
	case Variant:
		return "variant"
	case LeftBrace:
		return "left brace"
	case RightBrace:
		return "right brace"
	case LeftBracket:
		return "left bracket"
	case RightBracket:
		return "right bracket"
	case LeftParen:
		return "left paren"
	case RightParen:
		return "right paren"
	case Colon:
		return "colon"
	case Comma:
		return "comma"
	case Plus:
		return "plus"
	case Minus:
		return "minus"
	case NewLine:
		return "newline"
	case Comment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Width identifies one of the ten typed number buckets of spec.md §3.
type Width int

const (
	I8 Width = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
)

func (w Width) String() string {
	names := [...]string{"i8", "u8", "i16", "u16", "i32", "u32", "i64", "u64", "f32", "f64"}
	if int(w) < len(names) {
		return names[w]
	}
	return "unknown width"
}

// Signed reports whether w is one of the signed integer buckets.
func (w Width) Signed() bool {
	switch w {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// Unsigned reports whether w is one of the unsigned integer buckets.
func (w Width) Unsigned() bool {
	switch w {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// Float reports whether w is a floating-point bucket.
func (w Width) Float() bool {
	return w == F32 || w == F64
}

// BitSize returns the bit width backing w's unsigned twin. A signed/unsigned
// pair of the same size shares one bit width (I8 and U8 both parse against
// an 8-bit magnitude); float buckets report their IEEE-754 width.
func (w Width) BitSize() int {
	switch w {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	default:
		return 64
	}
}

// Max returns the maximum value representable by a signed integer bucket, as
// an unsigned magnitude (so I8's max is 127, stored as uint64(127)).
func (w Width) Max() uint64 {
	switch w {
	case I8:
		return 1<<7 - 1
	case U8:
		return 1<<8 - 1
	case I16:
		return 1<<15 - 1
	case U16:
		return 1<<16 - 1
	case I32:
		return 1<<31 - 1
	case U32:
		return 1<<32 - 1
	case I64:
		return 1<<63 - 1
	case U64:
		return math.MaxUint64
	default:
		return 0
	}
}

// Number is a typed numeric literal. At the token stage (this package)
// integer buckets store the *unsigned twin*: the bit pattern as an unsigned
// magnitude, so that a bare "127" and a later-applied "-" can both be
// represented without a separate signed bucket (spec.md §9). Float buckets
// store the IEEE-754 bit pattern in the same Bits field.
type Number struct {
	Width Width
	Bits  uint64
}

// NewUint builds a Number for an integer bucket from its unsigned magnitude.
func NewUint(w Width, v uint64) Number {
	return Number{Width: w, Bits: v}
}

// NewFloat32 builds a Number for the F32 bucket.
func NewFloat32(v float32) Number {
	return Number{Width: F32, Bits: uint64(math.Float32bits(v))}
}

// NewFloat64 builds a Number for the F64 bucket.
func NewFloat64(v float64) Number {
	return Number{Width: F64, Bits: math.Float64bits(v)}
}

// Uint returns the stored unsigned magnitude; valid only for integer buckets.
func (n Number) Uint() uint64 { return n.Bits }

// Float32 reinterprets the stored bits as a float32; valid only when
// Width == F32.
func (n Number) Float32() float32 { return math.Float32frombits(uint32(n.Bits)) }

// Float64 reinterprets the stored bits as a float64; valid only when
// Width == F64.
func (n Number) Float64() float64 { return math.Float64frombits(n.Bits) }

// Negate returns -n for a float bucket. It panics for integer buckets,
// where negation requires range validation and belongs in the normalizer.
func (n Number) Negate() Number {
	switch n.Width {
	case F32:
		return NewFloat32(-n.Float32())
	case F64:
		return NewFloat64(-n.Float64())
	default:
		panic("token: Negate called on integer bucket")
	}
}

func (n Number) IsNaN() bool {
	switch n.Width {
	case F32:
		v := n.Float32()
		return v != v
	case F64:
		v := n.Float64()
		return v != v
	default:
		return false
	}
}

// CommentKind distinguishes the two comment token shapes the lexer accepts.
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
)

// Token is a tagged-union lexical atom. Only the fields relevant to Kind are
// populated; this mirrors the teacher's habit of a single struct per
// terminal kind, collapsed here into one type since Go lacks sum types.
type Token struct {
	Kind Kind

	Num           Number
	Bool          bool
	Rune          rune
	Str           string
	DateVal       time.Time
	Bytes         []byte
	Ident         string
	VariantType   string
	VariantMember string
	CommentKind   CommentKind
	CommentText   string
}

// WithRange pairs a Token with the source Range it was lexed from.
type WithRange struct {
	Token Token
	Range source.Range
}
