// Package printer renders a value.Node back into ASON text, choosing the
// same bracket forms and separator the parser accepts so that
// Parse(Print(n)) reproduces n (spec.md §8's round-trip property; see
// SPEC_FULL.md §4.6). It does not reproduce the original source's
// formatting, number radix, or comments — those are explicitly out of
// scope (spec.md §1 Non-goals) and are not recoverable from a value.Node
// in the first place. New relative to the teacher: protocompile's emitter
// lives in a sibling package this pack did not retrieve, so this walks
// the grammar directly rather than adapting teacher code.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RembrandtK/ason/token"
	"github.com/RembrandtK/ason/value"
)

// Print renders n as ASON text.
func Print(n value.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n value.Node) {
	switch n.Kind {
	case value.Number:
		writeNumber(b, n.Num)
	case value.Boolean:
		if n.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.Char:
		b.WriteByte('\'')
		writeEscapedRune(b, n.Rune, '\'')
		b.WriteByte('\'')
	case value.String:
		b.WriteByte('"')
		for _, r := range n.Str {
			writeEscapedRune(b, r, '"')
		}
		b.WriteByte('"')
	case value.DateTime:
		b.WriteString(`d"`)
		b.WriteString(n.DateVal.Format("2006-01-02T15:04:05Z07:00"))
		b.WriteByte('"')
	case value.HexByteData:
		b.WriteString(`h"`)
		for i, c := range n.Bytes {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%02x", c)
		}
		b.WriteByte('"')
	case value.List:
		b.WriteByte('[')
		for i, item := range n.ListItems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, item)
		}
		b.WriteByte(']')
	case value.Map:
		b.WriteByte('[')
		for i, p := range n.MapPairs {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, p.Key)
			b.WriteString(": ")
			writeNode(b, p.Value)
		}
		b.WriteByte(']')
	case value.Tuple:
		b.WriteByte('(')
		for i, item := range n.TupleItems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, item)
		}
		b.WriteByte(')')
	case value.Object:
		writeObjectBody(b, n.ObjectItems)
	case value.Variant:
		b.WriteString(n.VariantType)
		b.WriteString("::")
		b.WriteString(n.VariantMember)
		writeVariantPayload(b, n.VariantPayload)
	}
}

func writeObjectBody(b *strings.Builder, fields []value.Field) {
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		writeNode(b, f.Value)
	}
	b.WriteByte('}')
}

func writeVariantPayload(b *strings.Builder, p value.VariantPayload) {
	switch p.Form {
	case value.VariantNone:
		return
	case value.VariantValue:
		b.WriteByte('(')
		writeNode(b, *p.Value)
		b.WriteByte(')')
	case value.VariantTuple:
		b.WriteByte('(')
		for i, item := range p.Tuple {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, item)
		}
		b.WriteByte(')')
	case value.VariantObject:
		writeObjectBody(b, p.Object)
	}
}

// writeNumber always emits an explicit width suffix, so the printed form
// round-trips regardless of the default-bucket inference rule (plain
// I32/F64 shape) the lexer applies to unsuffixed literals.
func writeNumber(b *strings.Builder, n value.NumberValue) {
	switch {
	case n.Width.Float():
		writeFloat(b, n)
	case n.Width.Signed():
		b.WriteString(strconv.FormatInt(n.Int, 10))
	default:
		b.WriteString(strconv.FormatUint(n.Uint, 10))
	}
	b.WriteByte('_')
	b.WriteString(n.Width.String())
}

// writeFloat writes the float's magnitude text; the caller (writeNumber)
// appends the "_<width>" suffix afterward in all cases, which for the
// NaN/Inf keywords still lands on a keyword the lexer recognizes (e.g.
// "NaN" + "_f64" reads back as the NaN_f64 keyword).
func writeFloat(b *strings.Builder, n value.NumberValue) {
	bitSize := 64
	if n.Width == token.F32 {
		bitSize = 32
	}
	switch {
	case n.Float != n.Float: // NaN
		b.WriteString("NaN")
	case n.Float > 0 && n.Float*2 == n.Float: // +Inf (doubling an infinity is itself)
		b.WriteString("Inf")
	case n.Float < 0 && n.Float*2 == n.Float: // -Inf
		b.WriteString("-Inf")
	default:
		b.WriteString(strconv.FormatFloat(n.Float, 'g', -1, bitSize))
	}
}

func writeEscapedRune(b *strings.Builder, r rune, quote rune) {
	switch r {
	case quote:
		b.WriteByte('\\')
		b.WriteRune(r)
	case '\\':
		b.WriteString(`\\`)
	case '\t':
		b.WriteString(`\t`)
	case '\r':
		b.WriteString(`\r`)
	case '\n':
		b.WriteString(`\n`)
	case 0:
		b.WriteString(`\0`)
	default:
		b.WriteRune(r)
	}
}
