package connection

import (
	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// paginationArguments returns fresh definitions of the Relay arguments, in the
// order they are appended.
func paginationArguments() language.ArgumentDefinitionList {
	return language.ArgumentDefinitionList{
		{Name: "after", Type: language.NamedType("String")},
		{Name: "first", Type: language.NamedType("Int")},
		{Name: "before", Type: language.NamedType("String")},
		{Name: "last", Type: language.NamedType("Int")},
	}
}

// Rewrite retypes every field of s still carrying the marker directive to its
// connection type, appends the pagination arguments and drops the marker.
// Fields whose connection type cannot be found are left untouched. It returns
// the number of rewritten fields.
func Rewrite(s *language.Schema, table *Table, directiveName string) int {
	var n int
	for _, name := range s.TypeNames() {
		def := s.Types[name]
		if def.Kind != language.Object && def.Kind != language.Interface {
			continue
		}
		for _, field := range def.Fields {
			if rewriteField(s, table, directiveName, field) {
				n++
			}
		}
	}
	return n
}

func rewriteField(s *language.Schema, table *Table, directiveName string, field *language.FieldDefinition) bool {
	if field.Directives.ForName(directiveName) == nil {
		return false
	}
	key, ok := keyOf(field.Type)
	if !ok {
		return false
	}
	if _, ok := table.Get(key); !ok {
		return false
	}
	conn := s.Lookup(table.ConnectionName(key))
	if conn == nil {
		return false
	}

	field.Type = language.NamedType(conn.Name)
	for _, arg := range paginationArguments() {
		if field.Arguments.ForName(arg.Name) == nil {
			field.Arguments = append(field.Arguments, arg)
		}
	}
	field.Directives = withoutDirective(field.Directives, directiveName)
	return true
}

func withoutDirective(list language.DirectiveList, name string) language.DirectiveList {
	out := make(language.DirectiveList, 0, len(list))
	for _, d := range list {
		if d.Name != name {
			out = append(out, d)
		}
	}
	return out
}
