package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTypeOrder(t *testing.T) {
	s, err := Load(
		NewSource("a.graphql", "type Query { b: B }\ntype B { id: ID }"),
		NewSource("b.graphql", "type A { id: ID }\nextend type Query { a: A }\nextend type C { x: Int }\ntype C { id: ID }"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Query", "B", "A", "C"}, s.TypeNames())
	require.NotNil(t, s.Lookup("A"))
	require.Nil(t, s.Lookup("Missing"))
	require.NotNil(t, s.Lookup("String"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(NewSource("a.graphql", "type Query {"))
	require.Error(t, err)

	_, err = Load(NewSource("a.graphql", "type Query { a: Int @undeclared }"))
	require.ErrorContains(t, err, "undeclared")
}

func TestFormatDefinition(t *testing.T) {
	doc, err := ParseSchema("a.graphql", "interface Node { id: ID! name(upper: Boolean): String }")
	require.NoError(t, err)

	printed := FormatDefinition(doc.Definitions.ForName("Node"))
	require.Contains(t, printed, "interface Node {")
	require.Contains(t, printed, "id: ID!")
	require.Contains(t, printed, "name(upper: Boolean): String")
}

func TestFormatSchemaKeepsDirectives(t *testing.T) {
	s, err := Load(NewSource("a.graphql",
		"directive @tag(name: String) on FIELD_DEFINITION | OBJECT\ntype Query @tag(name: \"q\") { a: Int @tag(name: \"a\") }"))
	require.NoError(t, err)

	out := FormatSchema(s)
	require.Contains(t, out, "directive @tag")
	require.Equal(t, 3, strings.Count(out, "@tag"))
}

func TestDeclarations(t *testing.T) {
	doc, err := ParseSources(NewSource("a.graphql", `
		directive @connection(edgeInterface: String) on FIELD_DEFINITION
		enum Scope { A }
		type Query { a(x: Int @cacheControl): Int @connection }
		extend type Query { b: Int @remote }
	`))
	require.NoError(t, err)

	require.True(t, DeclaresDirective(doc, "connection"))
	require.False(t, DeclaresDirective(doc, "cacheControl"))
	require.True(t, DeclaresType(doc, "Scope"))
	require.False(t, DeclaresType(doc, "PageInfo"))
	require.True(t, UsesDirective(doc, "connection"))
	require.True(t, UsesDirective(doc, "cacheControl"))
	require.True(t, UsesDirective(doc, "remote"))
	require.False(t, UsesDirective(doc, "deprecated"))
}

func TestNamedType(t *testing.T) {
	typ := NamedType("Int")
	require.Equal(t, "Int", typ.String())
	require.False(t, typ.NonNull)
	require.Nil(t, typ.Elem)
}
