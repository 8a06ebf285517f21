package bind

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// fieldName returns the ASON object key a struct field binds to: the
// field's "ason" tag if present, else its name lowercased (spec.md's
// Object keys are plain identifiers; Go exported field names are
// capitalized by convention, so the default lowercases to match the
// common case without requiring every struct to carry tags).
func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("ason"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// structFieldNames lists the bind names of t's exported fields, in
// declaration order, for decode.Driver.DecodeStruct's fields argument.
func structFieldNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		names = append(names, fieldName(f))
	}
	return names
}

// findField returns the struct field index bound to name, if any.
func findField(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && fieldName(f) == name {
			return i, true
		}
	}
	return 0, false
}
