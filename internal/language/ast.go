package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	Source                 = ast.Source
	SchemaDocument         = ast.SchemaDocument
	Definition             = ast.Definition
	DefinitionList         = ast.DefinitionList
	DirectiveDefinition    = ast.DirectiveDefinition
	FieldDefinition        = ast.FieldDefinition
	FieldList              = ast.FieldList
	ArgumentDefinition     = ast.ArgumentDefinition
	ArgumentDefinitionList = ast.ArgumentDefinitionList
	Directive              = ast.Directive
	DirectiveList          = ast.DirectiveList
	ArgumentList           = ast.ArgumentList
	Argument               = ast.Argument
	Value                  = ast.Value
	Type                   = ast.Type
	Position               = ast.Position
)

type DefinitionKind = ast.DefinitionKind

type ValueKind = ast.ValueKind

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject

	Variable     ValueKind = ast.Variable
	IntValue     ValueKind = ast.IntValue
	FloatValue   ValueKind = ast.FloatValue
	StringValue  ValueKind = ast.StringValue
	BlockValue   ValueKind = ast.BlockValue
	BooleanValue ValueKind = ast.BooleanValue
	NullValue    ValueKind = ast.NullValue
	EnumValue    ValueKind = ast.EnumValue
	ListValue    ValueKind = ast.ListValue
	ObjectValue  ValueKind = ast.ObjectValue
)

// NamedType returns a nullable reference to the named type.
func NamedType(name string) *Type { return ast.NamedType(name, nil) }
