// Package value defines Node, the tagged-union value tree the parser
// produces and the printer consumes. Integer buckets here store the
// *signed twin*: the parser reinterprets the unsigned magnitude carried on
// a normalized token.Number into the width-appropriate signed or unsigned
// Go value at construction time, since Go lacks a reinterpret cast and the
// narrowing must be explicit.
package value

import (
	"time"

	"github.com/RembrandtK/ason/internal/source"
	"github.com/RembrandtK/ason/token"
)

// Kind tags the variant a Node holds.
type Kind int

const (
	Number Kind = iota
	Boolean
	Char
	String
	DateTime
	HexByteData
	List
	Map
	Tuple
	Object
	Variant
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
	case DateTime:
		return "date"
	case HexByteData:
		return "byte data"
	case List:
		return "list"
	case Map:
		return "map"
	case Tuple:
		return "tuple"
	case Object:
		return "object"
	case Variant:
		return "variant"
	default:
		return "unknown node"
	}
}

// NumberValue holds a typed number at the node stage: the same ten-bucket
// vocabulary as token.Number, but with integer buckets reinterpreted into
// their signed or unsigned Go representation instead of a bare magnitude.
type NumberValue struct {
	Width token.Width
	Int   int64   // valid when Width.Signed()
	Uint  uint64  // valid when Width.Unsigned()
	Float float64 // valid when Width.Float() (F32 values widened to float64)
}

// NumberFromToken reinterprets a normalized token.Number's unsigned twin
// into the node-stage signed/unsigned representation. The caller is
// responsible for range validation (the normalizer already guarantees a
// signed bucket's magnitude fits its own width by the time this runs).
func NumberFromToken(tn token.Number) NumberValue {
	switch {
	case tn.Width.Float():
		if tn.Width == token.F32 {
			return NumberValue{Width: tn.Width, Float: float64(tn.Float32())}
		}
		return NumberValue{Width: tn.Width, Float: tn.Float64()}
	case tn.Width.Signed():
		return NumberValue{Width: tn.Width, Int: reinterpretSigned(tn.Width, tn.Uint())}
	default:
		return NumberValue{Width: tn.Width, Uint: tn.Uint()}
	}
}

// reinterpretSigned narrows magnitude to width's own bit size and reads it
// back as a signed value, the Go equivalent of a bit-pattern reinterpret
// cast (spec §9's "Signed-integer storage" note).
func reinterpretSigned(width token.Width, magnitude uint64) int64 {
	switch width {
	case token.I8:
		return int64(int8(uint8(magnitude)))
	case token.I16:
		return int64(int16(uint16(magnitude)))
	case token.I32:
		return int64(int32(uint32(magnitude)))
	default:
		return int64(magnitude)
	}
}

// Pair is one (key, value) entry of a Map node. Keys may be any Node; the
// parser accepts duplicates (binding may reject them).
type Pair struct {
	Key   Node
	Value Node
}

// Field is one (identifier, value) entry of an Object node or a
// struct-shaped Variant payload.
type Field struct {
	Key   string
	Value Node
}

// VariantForm tags the payload shape of a Variant node.
type VariantForm int

const (
	VariantNone VariantForm = iota
	VariantValue
	VariantTuple
	VariantObject
)

// VariantPayload is the payload carried by a Variant node.
type VariantPayload struct {
	Form   VariantForm
	Value  *Node
	Tuple  []Node
	Object []Field
}

// NewVariantTuplePayload builds the payload for a parenthesized variant
// argument list, applying the 1-item-collapses-to-Value rule. The parser
// is its only caller; the decoder builds no Node tree and never reaches
// it. Panics on an empty list: callers must reject an
// empty "()" payload ("value of tuple-style variant cannot be empty")
// before reaching here.
func NewVariantTuplePayload(items []Node) VariantPayload {
	if len(items) == 0 {
		panic("value: variant tuple payload must not be empty")
	}
	if len(items) == 1 {
		v := items[0]
		return VariantPayload{Form: VariantValue, Value: &v}
	}
	return VariantPayload{Form: VariantTuple, Tuple: items}
}

// Node is a tagged-union value-tree element. Only the fields relevant to
// Kind are populated.
type Node struct {
	Kind  Kind
	Range source.Range

	Num     NumberValue
	Bool    bool
	Rune    rune
	Str     string
	DateVal time.Time
	Bytes   []byte

	ListItems []Node
	MapPairs  []Pair
	// TupleItems is never empty for a Kind == Tuple node (spec invariant:
	// "A Tuple Node is never empty").
	TupleItems  []Node
	ObjectItems []Field

	VariantType    string
	VariantMember  string
	VariantPayload VariantPayload
}
