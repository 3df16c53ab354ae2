package language

import (
	"bytes"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// Schema is a validated schema along with the merged document it was built from.
type Schema struct {
	*ast.Schema
	Document *SchemaDocument

	order []string
}

// TypeNames returns the names of user declared types in declaration order.
func (s *Schema) TypeNames() []string { return s.order }

// Lookup returns the named type or nil.
func (s *Schema) Lookup(name string) *Definition { return s.Types[name] }

func NewSource(name, input string) *Source {
	return &Source{Name: name, Input: input}
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseSources parses every source and merges them into a single document.
func ParseSources(sources ...*Source) (*SchemaDocument, error) {
	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Load parses, merges and validates the sources into a Schema.
func Load(sources ...*Source) (*Schema, error) {
	doc, err := ParseSources(sources...)
	if err != nil {
		return nil, err
	}
	sch, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var order []string
	for _, list := range []DefinitionList{doc.Definitions, doc.Extensions} {
		for _, def := range list {
			if seen[def.Name] || sch.Types[def.Name] == nil {
				continue
			}
			seen[def.Name] = true
			order = append(order, def.Name)
		}
	}
	return &Schema{Schema: sch, Document: doc, order: order}, nil
}

// FormatSchema prints the schema including directive uses on fields and types.
func FormatSchema(s *Schema) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchema(s.Schema)
	return buf.String()
}

// FormatDefinition prints a single type definition.
func FormatDefinition(def *Definition) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(&ast.SchemaDocument{
		Definitions: ast.DefinitionList{def},
	})
	return buf.String()
}

// DeclaresDirective reports whether doc declares the named directive.
func DeclaresDirective(doc *SchemaDocument, name string) bool {
	return doc.Directives.ForName(name) != nil
}

// DeclaresType reports whether doc defines the named type.
func DeclaresType(doc *SchemaDocument, name string) bool {
	return doc.Definitions.ForName(name) != nil
}

// UsesDirective reports whether any type, field or argument in doc carries
// the named directive.
func UsesDirective(doc *SchemaDocument, name string) bool {
	for _, list := range []DefinitionList{doc.Definitions, doc.Extensions} {
		for _, def := range list {
			if def.Directives.ForName(name) != nil {
				return true
			}
			for _, f := range def.Fields {
				if f.Directives.ForName(name) != nil {
					return true
				}
				for _, arg := range f.Arguments {
					if arg.Directives.ForName(name) != nil {
						return true
					}
				}
			}
		}
	}
	return false
}
