// Package art provides small byte-keyed lookup tables backed by
// github.com/plar/go-adaptive-radix-tree, grounded on
// kralicky-protocompile/linker/linker.go's use of the same library as an
// ordered symbol table for descriptor names. Here it plays the analogous
// role for ASON's small fixed vocabularies: reserved words in the lexer and
// enum member-name dispatch in the decoder.
package art

import (
	art "github.com/plar/go-adaptive-radix-tree"
)

// Table is a read-mostly string-to-value lookup table.
type Table[V any] struct {
	tree art.Tree
}

// NewTable builds a Table pre-populated from the given entries.
func NewTable[V any](entries map[string]V) *Table[V] {
	t := &Table[V]{tree: art.New()}
	for k, v := range entries {
		t.tree.Insert(art.Key(k), v)
	}
	return t
}

// Lookup returns the value stored for key and whether it was present.
func (t *Table[V]) Lookup(key string) (V, bool) {
	v, found := t.tree.Search(art.Key(key))
	if !found {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Insert adds or replaces the value stored for key.
func (t *Table[V]) Insert(key string, value V) {
	t.tree.Insert(art.Key(key), value)
}
