package decode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RembrandtK/ason/internal/art"
	"github.com/RembrandtK/ason/lexer"
	"github.com/RembrandtK/ason/normalize"
)

func newDriver(src string) *Driver {
	return New(normalize.Trim(normalize.Normalize(normalize.StripComments(lexer.New([]byte(src))))))
}

// recorder is a no-op Visitor that records which Visit* method fired and
// with what value, enough to assert the driver's dispatch without a real
// binding layer.
type recorder struct {
	bools   []bool
	i32s    []int32
	strs    []string
	seqLen        int
	mapKeys       []string
	fields        []string
	members       []string
	optionSeen    bool
	optionPresent bool
}

func (r *recorder) VisitBool(v bool) error   { r.bools = append(r.bools, v); return nil }
func (r *recorder) VisitI8(int8) error       { return nil }
func (r *recorder) VisitU8(uint8) error      { return nil }
func (r *recorder) VisitI16(int16) error     { return nil }
func (r *recorder) VisitU16(uint16) error    { return nil }
func (r *recorder) VisitI32(v int32) error   { r.i32s = append(r.i32s, v); return nil }
func (r *recorder) VisitU32(uint32) error    { return nil }
func (r *recorder) VisitI64(int64) error     { return nil }
func (r *recorder) VisitU64(uint64) error    { return nil }
func (r *recorder) VisitF32(float32) error   { return nil }
func (r *recorder) VisitF64(float64) error   { return nil }
func (r *recorder) VisitChar(rune) error     { return nil }
func (r *recorder) VisitString(v string) error {
	r.strs = append(r.strs, v)
	return nil
}
func (r *recorder) VisitBytes([]byte) error           { return nil }
func (r *recorder) VisitDateTime(time.Time) error     { return nil }
func (r *recorder) VisitOption(present bool, d *Driver) error {
	r.optionSeen = true
	r.optionPresent = present
	if present {
		return d.DecodeI32(r)
	}
	return nil
}
func (r *recorder) VisitIdentifier(name string) error { r.fields = append(r.fields, name); return nil }

func (r *recorder) VisitSeq(a *SeqAccess) error {
	for {
		ok, err := a.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := r.decodeElement(a.d); err != nil {
			return err
		}
		r.seqLen++
	}
}

func (r *recorder) VisitTupleN(n int, a *SeqAccess) error {
	for i := 0; i < n; i++ {
		ok, err := a.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := r.decodeElement(a.d); err != nil {
			return err
		}
	}
	return nil
}

func (r *recorder) decodeElement(d *Driver) error {
	return d.DecodeI32(r)
}

func (r *recorder) VisitMap(a *MapAccess) error {
	for {
		ok, err := a.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := a.d.DecodeString(r); err != nil {
			return err
		}
		r.mapKeys = append(r.mapKeys, r.strs[len(r.strs)-1])
		if err := a.NextValue(); err != nil {
			return err
		}
		if err := a.d.DecodeI32(r); err != nil {
			return err
		}
	}
}

func (r *recorder) VisitStruct(fields []string, a *FieldAccess) error {
	for {
		_, ok, err := a.NextKey(r)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := a.NextValue(); err != nil {
			return err
		}
		if err := a.d.DecodeI32(r); err != nil {
			return err
		}
	}
}

func (r *recorder) VisitEnum(typeName string, a *EnumAccess) error {
	r.members = append(r.members, a.Member())
	table := art.NewTable(map[string]int{"Red": 0, "Green": 1, "Blue": 2})
	idx, ok := a.Dispatch(table)
	if !ok {
		return a.None()
	}
	_ = idx
	return a.None()
}

func TestDecodeBool(t *testing.T) {
	d := newDriver("true")
	r := &recorder{}
	require.NoError(t, d.DecodeBool(r))
	require.NoError(t, d.Finish())
	assert.Equal(t, []bool{true}, r.bools)
}

func TestDecodeI32(t *testing.T) {
	d := newDriver("42")
	r := &recorder{}
	require.NoError(t, d.DecodeI32(r))
	assert.Equal(t, []int32{42}, r.i32s)
}

func TestDecodeWrongKindIsPositionedError(t *testing.T) {
	d := newDriver("true")
	r := &recorder{}
	err := d.DecodeI32(r)
	require.Error(t, err)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.True(t, de.HasRange)
	assert.Contains(t, err.Error(), `expect "i32"`)
}

func TestDecodeSeq(t *testing.T) {
	d := newDriver("[1, 2, 3]")
	r := &recorder{}
	require.NoError(t, d.DecodeSeq(r))
	require.NoError(t, d.Finish())
	assert.Equal(t, 3, r.seqLen)
	assert.Equal(t, []int32{1, 2, 3}, r.i32s)
}

func TestDecodeTupleN(t *testing.T) {
	d := newDriver("(1, 2)")
	r := &recorder{}
	require.NoError(t, d.DecodeTupleN(2, r))
	assert.Equal(t, []int32{1, 2}, r.i32s)
}

func TestDecodeMap(t *testing.T) {
	d := newDriver(`["a": 1, "b": 2]`)
	r := &recorder{}
	require.NoError(t, d.DecodeMap(r))
	assert.Equal(t, []string{"a", "b"}, r.mapKeys)
	assert.Equal(t, []int32{1, 2}, r.i32s)
}

func TestDecodeStruct(t *testing.T) {
	d := newDriver("{x: 1, y: 2}")
	r := &recorder{}
	require.NoError(t, d.DecodeStruct([]string{"x", "y"}, r))
	assert.Equal(t, []string{"x", "y"}, r.fields)
	assert.Equal(t, []int32{1, 2}, r.i32s)
}

func TestDecodeOptionNone(t *testing.T) {
	d := newDriver("Option::None")
	r := &recorder{}
	require.NoError(t, d.DecodeOption(r))
}

func TestDecodeOptionSome(t *testing.T) {
	d := newDriver("Option::Some(1)")
	r := &recorder{}
	require.NoError(t, d.DecodeOption(r))
	assert.True(t, r.optionSeen)
	assert.True(t, r.optionPresent)
	assert.Equal(t, []int32{1}, r.i32s)
}

func TestDecodeEnumUnit(t *testing.T) {
	d := newDriver("Color::Red")
	r := &recorder{}
	require.NoError(t, d.DecodeEnum("Color", r))
	assert.Equal(t, []string{"Red"}, r.members)
}

func TestDecodeMoreThanOneNodeIsError(t *testing.T) {
	d := newDriver("1 2")
	r := &recorder{}
	require.NoError(t, d.DecodeI32(r))
	err := d.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document has more than one node")
}
