package ason

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringRoundTrip(t *testing.T) {
	n, err := ParseString(`{name: "ada", tags: ["math", "computing"]}`)
	require.NoError(t, err)
	printed := Print(n)
	n2, err := ParseString(printed)
	require.NoError(t, err)
	assert.Equal(t, n.Kind, n2.Kind)
}

func TestParseReader(t *testing.T) {
	n, err := Parse(strings.NewReader("[1, 2, 3]"))
	require.NoError(t, err)
	assert.Len(t, n.ListItems, 3)
}

func TestParseErrorIsAsonError(t *testing.T) {
	_, err := ParseString("[1, 2")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
}

func TestParseMaxDepth(t *testing.T) {
	_, err := ParseString("[[[1]]]", WithMaxDepth(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting depth")
}

func TestUnmarshalMaxDepth(t *testing.T) {
	var v [][][]int
	err := Unmarshal([]byte("[[[1]]]"), &v, WithMaxDepth(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting depth")
}

type person struct {
	Name string
	Age  int32
}

func TestUnmarshalStruct(t *testing.T) {
	var p person
	require.NoError(t, Unmarshal([]byte(`{name: "ada", age: 36}`), &p))
	assert.Equal(t, person{Name: "ada", Age: 36}, p)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	p := person{Name: "grace", Age: 85}
	data, err := Marshal(p)
	require.NoError(t, err)

	var got person
	require.NoError(t, Unmarshal(data, &got))
	assert.Equal(t, p, got)
}
