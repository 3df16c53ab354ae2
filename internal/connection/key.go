package connection

import (
	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// Key identifies a paginated target: the named type an edge node points to
// and whether that node is non-null. A nullable and a non-null reference to
// the same type are distinct targets.
type Key struct {
	Base    string
	NonNull bool
}

// NodeType renders the type of the edge node field.
func (k Key) NodeType() string {
	if k.NonNull {
		return k.Base + "!"
	}
	return k.Base
}

func (k Key) String() string { return k.NodeType() }

// keyOf derives the key from a field's declared type. The innermost named
// type decides both the base name and the nullability, so [Item!]! and Item!
// share a key.
func keyOf(t *language.Type) (Key, bool) {
	if t == nil {
		return Key{}, false
	}
	inner := t
	for inner.Elem != nil {
		inner = inner.Elem
	}
	if inner.NamedType == "" {
		return Key{}, false
	}
	return Key{Base: inner.NamedType, NonNull: inner.NonNull}, true
}
