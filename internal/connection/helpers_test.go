package connection

import (
	"testing"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
	"github.com/stretchr/testify/require"
)

const cacheControlSDL = cacheControlDeclaration + "\n" + cacheControlScopeDeclaration

// loadSchema builds sdl together with the declarations of d and @cacheControl.
func loadSchema(t *testing.T, d *Directive, sdl string) *language.Schema {
	t.Helper()
	s, err := language.Load(
		language.NewSource("schema.graphql", sdl),
		language.NewSource("directives.graphql", d.TypeDefs()+"\n"+cacheControlSDL),
	)
	require.NoError(t, err)
	return s
}

// scan builds sdl, scans it and returns the schema and the table.
func scan(t *testing.T, sdl string, opts ...Option) (*language.Schema, *Table) {
	t.Helper()
	d := New(opts...)
	s := loadSchema(t, d, sdl)
	require.NoError(t, d.Scan(s))
	return s, d.Table()
}

func requireViolation(t *testing.T, err error, kind ViolationKind) ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Has(kind), "want %s violation, got: %v", kind, err)
	return verr
}

// transformed runs TransformSDL and loads the printed result back.
func transformed(t *testing.T, sdl string, opts ...Option) (string, *language.Schema) {
	t.Helper()
	out, err := TransformSDL(t.Context(), sdl, opts...)
	require.NoError(t, err)
	s, err := language.Load(language.NewSource("out.graphql", out))
	require.NoError(t, err, "output does not load:\n%s", out)
	return out, s
}

// markedFields lists "Type.field" for every field still carrying directive.
func markedFields(s *language.Schema, directive string) []string {
	var out []string
	for _, name := range s.TypeNames() {
		for _, f := range s.Types[name].Fields {
			if f.Directives.ForName(directive) != nil {
				out = append(out, name+"."+f.Name)
			}
		}
	}
	return out
}

func fieldSignatures(def *language.Definition) map[string]string {
	out := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		out[f.Name] = f.Type.String()
	}
	return out
}

func argumentNames(f *language.FieldDefinition) []string {
	var names []string
	for _, a := range f.Arguments {
		names = append(names, a.Name)
	}
	return names
}

// maxAgeOf returns the raw maxAge argument of @cacheControl in list, or "".
func maxAgeOf(list language.DirectiveList) string {
	dir := list.ForName(cacheControlDirective)
	if dir == nil {
		return ""
	}
	if arg := dir.Arguments.ForName(maxAgeArgument); arg != nil {
		return arg.Value.Raw
	}
	if arg := dir.Arguments.ForName(inheritMaxAgeArgument); arg != nil {
		return "inherit"
	}
	return ""
}
