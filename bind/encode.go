package bind

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/RembrandtK/ason/decode"
	"github.com/RembrandtK/ason/token"
	"github.com/RembrandtK/ason/value"
)

// EnumEncoder is the Marshal-direction counterpart of EnumDecoder: a Go
// type that knows how to present itself as a Type::Member variant.
type EnumEncoder interface {
	Enum
	// EncodeVariant returns the active member name and its payload.
	EncodeVariant() (member string, payload value.VariantPayload)
}

// EncodeValue builds the value.Node tree for v, for the printer to render.
// Unlike decoding, encoding never needs a Driver: the whole tree is walked
// up front from v's own reflect.Value, since Marshal has no streaming
// obligation to honor.
func EncodeValue(v any) (value.Node, error) {
	return encodeReflect(reflect.ValueOf(v))
}

func encodeReflect(rv reflect.Value) (value.Node, error) {
	if !rv.IsValid() {
		return value.Node{}, fmt.Errorf("ason: cannot encode an invalid value")
	}
	if enc, ok := rv.Interface().(EnumEncoder); ok {
		member, payload := enc.EncodeVariant()
		return value.Node{
			Kind:           value.Variant,
			VariantType:    enc.EnumTypeName(),
			VariantMember:  member,
			VariantPayload: payload,
		}, nil
	}
	switch rv.Kind() {
	case reflect.Pointer:
		return encodeOption(rv)
	case reflect.Bool:
		return value.Node{Kind: value.Boolean, Bool: rv.Bool()}, nil
	case reflect.Int8:
		return numberNode(token.I8, rv.Int()), nil
	case reflect.Int16:
		return numberNode(token.I16, rv.Int()), nil
	case reflect.Int32:
		return numberNode(token.I32, rv.Int()), nil
	case reflect.Int, reflect.Int64:
		return numberNode(token.I64, rv.Int()), nil
	case reflect.Uint8:
		return numberNodeU(token.U8, rv.Uint()), nil
	case reflect.Uint16:
		return numberNodeU(token.U16, rv.Uint()), nil
	case reflect.Uint32:
		return numberNodeU(token.U32, rv.Uint()), nil
	case reflect.Uint, reflect.Uint64:
		return numberNodeU(token.U64, rv.Uint()), nil
	case reflect.Float32:
		return numberNodeF(token.F32, rv.Float()), nil
	case reflect.Float64:
		return numberNodeF(token.F64, rv.Float()), nil
	case reflect.String:
		return value.Node{Kind: value.String, Str: rv.String()}, nil
	case reflect.Slice:
		return encodeSlice(rv)
	case reflect.Array:
		return encodeArray(rv)
	case reflect.Map:
		return encodeMap(rv)
	case reflect.Struct:
		return encodeStruct(rv)
	default:
		return value.Node{}, decode.ErrUnsupported(rv.Kind().String())
	}
}

// encodeOption maps a nil pointer to Option::None and a non-nil pointer to
// Option::Some(inner), the reverse of visitor.VisitOption's convention.
func encodeOption(rv reflect.Value) (value.Node, error) {
	if rv.IsNil() {
		return value.Node{Kind: value.Variant, VariantType: "Option", VariantMember: "None"}, nil
	}
	inner, err := encodeReflect(rv.Elem())
	if err != nil {
		return value.Node{}, err
	}
	return value.Node{
		Kind:          value.Variant,
		VariantType:   "Option",
		VariantMember: "Some",
		VariantPayload: value.VariantPayload{
			Form:  value.VariantValue,
			Value: &inner,
		},
	}, nil
}

func encodeSlice(rv reflect.Value) (value.Node, error) {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return value.Node{Kind: value.HexByteData, Bytes: b}, nil
	}
	items := make([]value.Node, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item, err := encodeReflect(rv.Index(i))
		if err != nil {
			return value.Node{}, err
		}
		items[i] = item
	}
	return value.Node{Kind: value.List, ListItems: items}, nil
}

// encodeArray maps a fixed-size Go array to a Tuple, the same shape
// DecodeTupleN expects back on the way in.
func encodeArray(rv reflect.Value) (value.Node, error) {
	n := rv.Len()
	if n == 0 {
		return value.Node{}, fmt.Errorf("ason: cannot encode a zero-length array as a tuple")
	}
	items := make([]value.Node, n)
	for i := 0; i < n; i++ {
		item, err := encodeReflect(rv.Index(i))
		if err != nil {
			return value.Node{}, err
		}
		items[i] = item
	}
	return value.Node{Kind: value.Tuple, TupleItems: items}, nil
}

// encodeMap sorts pairs by the key's formatted text so two encodings of
// the same map agree byte-for-byte; Go's map iteration order is randomized
// and a printed document should not be.
func encodeMap(rv reflect.Value) (value.Node, error) {
	type entry struct {
		sortKey string
		pair    value.Pair
	}
	var entries []entry
	iter := rv.MapRange()
	for iter.Next() {
		keyNode, err := encodeReflect(iter.Key())
		if err != nil {
			return value.Node{}, err
		}
		valNode, err := encodeReflect(iter.Value())
		if err != nil {
			return value.Node{}, err
		}
		entries = append(entries, entry{
			sortKey: fmt.Sprint(iter.Key().Interface()),
			pair:    value.Pair{Key: keyNode, Value: valNode},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].sortKey < entries[j].sortKey })
	pairs := make([]value.Pair, len(entries))
	for i, e := range entries {
		pairs[i] = e.pair
	}
	return value.Node{Kind: value.Map, MapPairs: pairs}, nil
}

func encodeStruct(rv reflect.Value) (value.Node, error) {
	if rv.Type() == timeType {
		return value.Node{Kind: value.DateTime, DateVal: rv.Interface().(time.Time)}, nil
	}
	t := rv.Type()
	var fields []value.Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		val, err := encodeReflect(rv.Field(i))
		if err != nil {
			return value.Node{}, err
		}
		fields = append(fields, value.Field{Key: fieldName(f), Value: val})
	}
	return value.Node{Kind: value.Object, ObjectItems: fields}, nil
}

func numberNode(w token.Width, i int64) value.Node {
	return value.Node{Kind: value.Number, Num: value.NumberValue{Width: w, Int: i}}
}

func numberNodeU(w token.Width, u uint64) value.Node {
	return value.Node{Kind: value.Number, Num: value.NumberValue{Width: w, Uint: u}}
}

func numberNodeF(w token.Width, f float64) value.Node {
	return value.Node{Kind: value.Number, Num: value.NumberValue{Width: w, Float: f}}
}
