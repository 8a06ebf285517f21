package bind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RembrandtK/ason/decode"
	"github.com/RembrandtK/ason/lexer"
	"github.com/RembrandtK/ason/normalize"
	"github.com/RembrandtK/ason/printer"
	"github.com/RembrandtK/ason/value"
)

func newDriver(src string) *decode.Driver {
	return decode.New(normalize.Trim(normalize.Normalize(normalize.StripComments(lexer.New([]byte(src))))))
}

type Point struct {
	X int32
	Y int32
}

// Color stands in for an ASON Variant: Go has no tagged-union type of its
// own, so Enum support is opt-in via these two small interfaces.
type Color struct{ Value string }

func (Color) EnumTypeName() string { return "Color" }

func (c *Color) DecodeMember(member string, payload *decode.EnumAccess) error {
	if err := payload.None(); err != nil {
		return err
	}
	c.Value = member
	return nil
}

func (c Color) EncodeVariant() (string, value.VariantPayload) {
	return c.Value, value.VariantPayload{}
}

func TestDecodeValueStruct(t *testing.T) {
	d := newDriver("{x: 1, y: 2}")
	var p Point
	require.NoError(t, DecodeValue(d, &p))
	require.NoError(t, d.Finish())
	require.Equal(t, Point{X: 1, Y: 2}, p)
}

func TestDecodeValueSliceAndMap(t *testing.T) {
	d := newDriver("[1, 2, 3]")
	var xs []int32
	require.NoError(t, DecodeValue(d, &xs))
	require.Equal(t, []int32{1, 2, 3}, xs)

	d2 := newDriver(`["a": 1, "b": 2]`)
	var m map[string]int32
	require.NoError(t, DecodeValue(d2, &m))
	require.Equal(t, map[string]int32{"a": 1, "b": 2}, m)
}

func TestDecodeValueOption(t *testing.T) {
	d := newDriver("Option::Some(7)")
	var p *int32
	require.NoError(t, DecodeValue(d, &p))
	require.NotNil(t, p)
	require.EqualValues(t, 7, *p)

	d2 := newDriver("Option::None")
	var q *int32
	require.NoError(t, DecodeValue(d2, &q))
	require.Nil(t, q)
}

func TestDecodeValueEnum(t *testing.T) {
	d := newDriver("Color::Red")
	var c Color
	require.NoError(t, DecodeValue(d, &c))
	require.Equal(t, "Red", c.Value)
}

func TestDecodeValueNestedStruct(t *testing.T) {
	d := newDriver(`{origin: {x: 0, y: 0}, points: [{x: 1, y: 2}]}`)
	var s struct {
		Origin Point
		Points []Point
	}
	require.NoError(t, DecodeValue(d, &s))
	require.Equal(t, Point{X: 0, Y: 0}, s.Origin)
	require.Equal(t, []Point{{X: 1, Y: 2}}, s.Points)
}

func TestEncodeValueRoundTrip(t *testing.T) {
	n, err := EncodeValue(Point{X: 1, Y: 2})
	require.NoError(t, err)
	require.Equal(t, value.Object, n.Kind)
	text := printer.Print(n)

	d := newDriver(text)
	var p Point
	require.NoError(t, DecodeValue(d, &p))
	require.Equal(t, Point{X: 1, Y: 2}, p)
}

func TestEncodeValueEnum(t *testing.T) {
	n, err := EncodeValue(Color{Value: "Blue"})
	require.NoError(t, err)
	require.Equal(t, value.Variant, n.Kind)
	require.Equal(t, "Color", n.VariantType)
	require.Equal(t, "Blue", n.VariantMember)
}

func TestEncodeValueOption(t *testing.T) {
	var p *int32
	n, err := EncodeValue(p)
	require.NoError(t, err)
	require.Equal(t, value.Variant, n.Kind)
	require.Equal(t, "None", n.VariantMember)

	x := int32(5)
	n2, err := EncodeValue(&x)
	require.NoError(t, err)
	require.Equal(t, "Some", n2.VariantMember)
}
