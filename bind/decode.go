// Package bind is the reflection-based binding layer between Go values and
// the decode.Driver/Visitor pair: it picks which Decode* method to call from
// a target's reflect.Kind, and builds a value.Node for Marshal the same way
// in reverse (spec.md §6: "Unmarshal/Marshal are schema-directed via
// reflection, layered on top of the Visitor-driven decoder rather than
// replacing it"). Grounded on original_source's serde derive output, which
// plays the same role the Rust side generates at compile time; Go lacks
// generated impls, so this package does the dispatch at runtime instead.
package bind

import (
	"fmt"
	"reflect"
	"time"

	"github.com/RembrandtK/ason/decode"
)

// Enum is implemented by a Go type that stands in for an ASON Variant. Go
// has no tagged-union type of its own, so a caller who wants Unmarshal/
// Marshal to reach a variant writes this by hand on a wrapper type.
type Enum interface {
	// EnumTypeName is the name expected before "::" in the variant token.
	EnumTypeName() string
}

// EnumDecoder additionally knows how to populate itself once the decoder
// has resolved which member is present.
type EnumDecoder interface {
	Enum
	// DecodeMember is called with the raw member name and an EnumAccess
	// the receiver uses to consume whatever payload that member carries
	// (None, Value, Tuple, or Struct - see decode.EnumAccess).
	DecodeMember(member string, payload *decode.EnumAccess) error
}

// DecodeValue decodes one ASON value off d into target, which must be a
// non-nil pointer. This is the binding layer's entry point: the expected
// shape comes entirely from target's Go type, standing in for the
// compile-time Visitor a generated deserializer would otherwise supply.
func DecodeValue(d *decode.Driver, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("ason: Unmarshal target must be a non-nil pointer, got %T", target)
	}
	return decodeReflect(d, rv.Elem())
}

func decodeReflect(d *decode.Driver, rv reflect.Value) error {
	if rv.Kind() == reflect.Pointer {
		return d.DecodeOption(&visitor{rv: rv})
	}
	if enumDec, ok := addressableEnumDecoder(rv); ok {
		return d.DecodeEnum(enumDec.EnumTypeName(), &visitor{enum: enumDec})
	}
	v := &visitor{rv: rv}
	switch rv.Kind() {
	case reflect.Bool:
		return d.DecodeBool(v)
	case reflect.Int8:
		return d.DecodeI8(v)
	case reflect.Int16:
		return d.DecodeI16(v)
	case reflect.Int32:
		return d.DecodeI32(v)
	case reflect.Int, reflect.Int64:
		return d.DecodeI64(v)
	case reflect.Uint8:
		return d.DecodeU8(v)
	case reflect.Uint16:
		return d.DecodeU16(v)
	case reflect.Uint32:
		return d.DecodeU32(v)
	case reflect.Uint, reflect.Uint64:
		return d.DecodeU64(v)
	case reflect.Float32:
		return d.DecodeF32(v)
	case reflect.Float64:
		return d.DecodeF64(v)
	case reflect.String:
		return d.DecodeString(v)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return d.DecodeBytes(v)
		}
		return d.DecodeSeq(v)
	case reflect.Array:
		return d.DecodeTupleN(rv.Len(), v)
	case reflect.Map:
		return d.DecodeMap(v)
	case reflect.Struct:
		if rv.Type() == timeType {
			return d.DecodeDateTime(v)
		}
		if rv.Type().NumField() == 0 {
			return decode.ErrUnsupported("unit struct")
		}
		return d.DecodeStruct(structFieldNames(rv.Type()), v)
	default:
		return decode.ErrUnsupported(rv.Kind().String())
	}
}

// addressableEnumDecoder reports whether rv (or its address, if rv is
// addressable) implements EnumDecoder.
func addressableEnumDecoder(rv reflect.Value) (EnumDecoder, bool) {
	if dec, ok := rv.Interface().(EnumDecoder); ok {
		return dec, true
	}
	if rv.CanAddr() {
		if dec, ok := rv.Addr().Interface().(EnumDecoder); ok {
			return dec, true
		}
	}
	return nil, false
}

// visitor implements decode.Visitor once, dispatching into reflect.Value
// (the scalar/container case) or an EnumDecoder (the variant case); which
// Visit* method actually fires is determined entirely by which Decode*
// method decodeReflect called, so only one branch of this type is ever live
// for a given instance.
type visitor struct {
	rv   reflect.Value
	enum EnumDecoder
}

func (v *visitor) VisitBool(b bool) error  { v.rv.SetBool(b); return nil }
func (v *visitor) VisitI8(x int8) error    { v.rv.SetInt(int64(x)); return nil }
func (v *visitor) VisitU8(x uint8) error   { v.rv.SetUint(uint64(x)); return nil }
func (v *visitor) VisitI16(x int16) error  { v.rv.SetInt(int64(x)); return nil }
func (v *visitor) VisitU16(x uint16) error { v.rv.SetUint(uint64(x)); return nil }
func (v *visitor) VisitI32(x int32) error  { v.rv.SetInt(int64(x)); return nil }
func (v *visitor) VisitU32(x uint32) error { v.rv.SetUint(uint64(x)); return nil }
func (v *visitor) VisitI64(x int64) error  { v.rv.SetInt(x); return nil }
func (v *visitor) VisitU64(x uint64) error { v.rv.SetUint(x); return nil }
func (v *visitor) VisitF32(x float32) error {
	v.rv.SetFloat(float64(x))
	return nil
}
func (v *visitor) VisitF64(x float64) error { v.rv.SetFloat(x); return nil }

// VisitChar has no Go target type distinct from int32: rune is an alias,
// not a named type, so reflection cannot tell "char" and "i32" targets
// apart. Unmarshal never dispatches here as a result (see DESIGN.md).
func (v *visitor) VisitChar(rune) error {
	return fmt.Errorf("ason: cannot bind a char into %s", v.rv.Type())
}

func (v *visitor) VisitString(s string) error { v.rv.SetString(s); return nil }
func (v *visitor) VisitBytes(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	v.rv.SetBytes(cp)
	return nil
}
func (v *visitor) VisitDateTime(t time.Time) error { v.rv.Set(reflect.ValueOf(t)); return nil }

// VisitOption handles the pointer-as-Option convention: Option::None
// decodes to a nil pointer, and Some allocates the pointee before recursing.
func (v *visitor) VisitOption(present bool, d *decode.Driver) error {
	if !present {
		v.rv.Set(reflect.Zero(v.rv.Type()))
		return nil
	}
	elem := reflect.New(v.rv.Type().Elem())
	if err := decodeReflect(d, elem.Elem()); err != nil {
		return err
	}
	v.rv.Set(elem)
	return nil
}

func (v *visitor) VisitIdentifier(string) error { return nil }

func (v *visitor) VisitSeq(a *decode.SeqAccess) error {
	sliceType := v.rv.Type()
	elemType := sliceType.Elem()
	slice := reflect.MakeSlice(sliceType, 0, 0)
	for {
		ok, err := a.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		elem := reflect.New(elemType).Elem()
		if err := decodeReflect(a.Driver(), elem); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem)
	}
	v.rv.Set(slice)
	return nil
}

func (v *visitor) VisitTupleN(n int, a *decode.SeqAccess) error {
	for i := 0; i < n; i++ {
		ok, err := a.Next()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("ason: tuple has fewer than %d elements", n)
		}
		if err := decodeReflect(a.Driver(), v.rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (v *visitor) VisitMap(a *decode.MapAccess) error {
	mapType := v.rv.Type()
	keyType, valType := mapType.Key(), mapType.Elem()
	m := reflect.MakeMap(mapType)
	for {
		ok, err := a.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		key := reflect.New(keyType).Elem()
		if err := decodeReflect(a.Driver(), key); err != nil {
			return err
		}
		if err := a.NextValue(); err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := decodeReflect(a.Driver(), val); err != nil {
			return err
		}
		m.SetMapIndex(key, val)
	}
	v.rv.Set(m)
	return nil
}

func (v *visitor) VisitStruct(fields []string, a *decode.FieldAccess) error {
	structType := v.rv.Type()
	for {
		name, ok, err := a.NextKey(nil)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := a.NextValue(); err != nil {
			return err
		}
		idx, known := findField(structType, name)
		if !known {
			return fmt.Errorf("ason: unknown field %q for %s", name, structType)
		}
		if err := decodeReflect(a.Driver(), v.rv.Field(idx)); err != nil {
			return err
		}
	}
	return nil
}

func (v *visitor) VisitEnum(typeName string, a *decode.EnumAccess) error {
	if v.enum == nil {
		return fmt.Errorf("ason: %s does not implement bind.EnumDecoder", typeName)
	}
	return v.enum.DecodeMember(a.Member(), a)
}
