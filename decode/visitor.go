package decode

import "time"

// Visitor is the schema-shaped callback interface the binding layer
// supplies to a Driver method: each Decode* method consumes exactly the
// tokens that shape requires and reports the result through the matching
// Visit* call, mirroring original_source's serde::de::Visitor /
// Deserializer split (the Driver plays Deserializer, Visitor plays
// Visitor) translated into Go's callback-interface idiom instead of
// Rust's associated-type trait.
type Visitor interface {
	VisitBool(v bool) error

	VisitI8(v int8) error
	VisitU8(v uint8) error
	VisitI16(v int16) error
	VisitU16(v uint16) error
	VisitI32(v int32) error
	VisitU32(v uint32) error
	VisitI64(v int64) error
	VisitU64(v uint64) error
	VisitF32(v float32) error
	VisitF64(v float64) error

	VisitChar(v rune) error
	VisitString(v string) error
	VisitBytes(v []byte) error
	VisitDateTime(v time.Time) error

	// VisitOption is called once present is known; when present, d decodes
	// the wrapped value (the caller recurses into whichever Decode* method
	// fits the option's inner type).
	VisitOption(present bool, d *Driver) error

	VisitSeq(a *SeqAccess) error
	VisitTupleN(n int, a *SeqAccess) error
	VisitMap(a *MapAccess) error
	VisitStruct(fields []string, a *FieldAccess) error
	VisitEnum(typeName string, a *EnumAccess) error

	// VisitIdentifier reports a struct field key the driver needs the
	// binding layer to resolve against its own schema; FieldAccess.NextKey
	// calls it when given a non-nil Visitor. Enum member names are not
	// reported here: they are read with EnumAccess.Member.
	VisitIdentifier(name string) error
}
