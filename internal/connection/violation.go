package connection

import (
	"fmt"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// ViolationKind classifies schema authoring mistakes found during a run.
type ViolationKind string

const (
	ViolationNameCollision     ViolationKind = "name_collision"
	ViolationInterfaceMismatch ViolationKind = "interface_mismatch"
	ViolationMissingInterface  ViolationKind = "missing_interface"
	ViolationInvalidArgument   ViolationKind = "invalid_argument"
)

type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
	File    string        `json:"file,omitempty"`
	Line    int           `json:"line,omitempty"`
	Column  int           `json:"column,omitempty"`
}

func (v *Violation) Error() string {
	if v.File == "" {
		return v.Message
	}
	return fmt.Sprintf("%s %s:%d:%d", v.Message, v.File, v.Line, v.Column)
}

// ValidationError reports every violation found in a run.
type ValidationError []*Violation

func (e ValidationError) Error() string {
	msg := "violations found:\n"
	for _, v := range e {
		msg += "- " + v.Error() + "\n"
	}
	return msg
}

// Has reports whether any violation is of the given kind.
func (e ValidationError) Has(kind ViolationKind) bool {
	for _, v := range e {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func violationWithPosition(kind ViolationKind, message string, pos *language.Position) *Violation {
	v := &Violation{Kind: kind, Message: message}
	if pos == nil {
		return v
	}
	if pos.Src != nil {
		v.File = pos.Src.Name
	}
	v.Line = pos.Line
	v.Column = pos.Column
	return v
}

// NOTE: Keep messages stable, callers match on them.

func violationNameCollision(name string, target Key, pos *language.Position) *Violation {
	return violationWithPosition(ViolationNameCollision,
		fmt.Sprintf("Type %q already exists; cannot synthesize it for paginated type %q", name, target.Base),
		pos,
	)
}

func violationInterfaceAsymmetric(target Key, declared []string, pos *language.Position) *Violation {
	return violationWithPosition(ViolationInterfaceMismatch,
		fmt.Sprintf("Type %q is paginated with edgeInterface %v in one place and without edgeInterface in another", target.Base, declared),
		pos,
	)
}

func violationInterfaceMismatch(target Key, got, want []string, pos *language.Position) *Violation {
	return violationWithPosition(ViolationInterfaceMismatch,
		fmt.Sprintf("Type %q is paginated with edgeInterface %v, but %v was declared before", target.Base, got, want),
		pos,
	)
}

func violationMissingInterface(target Key, iface string, pos *language.Position) *Violation {
	return violationWithPosition(ViolationMissingInterface,
		fmt.Sprintf("Interface %q used as edgeInterface for type %q not found", iface, target.Base),
		pos,
	)
}

func violationNotInterface(target Key, name string, kind language.DefinitionKind, pos *language.Position) *Violation {
	return violationWithPosition(ViolationMissingInterface,
		fmt.Sprintf("edgeInterface %q for type %q is a %s, not an interface", name, target.Base, kind),
		pos,
	)
}

func violationExpectedString(directive, arg string, pos *language.Position) *Violation {
	return violationWithPosition(ViolationInvalidArgument,
		fmt.Sprintf("Argument '%s' of @%s expects a string value", arg, directive),
		pos,
	)
}

func violationExpectedInt(directive, arg string, pos *language.Position) *Violation {
	return violationWithPosition(ViolationInvalidArgument,
		fmt.Sprintf("Argument '%s' of @%s expects an integer value", arg, directive),
		pos,
	)
}
