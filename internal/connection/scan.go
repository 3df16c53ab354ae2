package connection

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

type scanner struct {
	directive  *Directive
	schema     *language.Schema
	violations []*Violation
}

// Scan visits every field of every object and interface type in declaration
// order and records each field carrying the marker directive in the table.
// Fields are never modified.
func (d *Directive) Scan(s *language.Schema) error {
	sc := &scanner{directive: d, schema: s}
	for _, name := range s.TypeNames() {
		def := s.Types[name]
		if def.Kind != language.Object && def.Kind != language.Interface {
			continue
		}
		for _, field := range def.Fields {
			sc.scanField(field)
		}
	}
	if len(sc.violations) > 0 {
		return ValidationError(sc.violations)
	}
	return nil
}

func (sc *scanner) addViolation(v ...*Violation) {
	sc.violations = append(sc.violations, v...)
}

func (sc *scanner) scanField(field *language.FieldDefinition) {
	if len(field.Directives) == 0 {
		return
	}
	key, ok := keyOf(field.Type)
	if !ok {
		return
	}
	dir := field.Directives.ForName(sc.directive.name)
	if dir == nil {
		return
	}

	ifaces := sc.edgeInterfaces(dir)
	sc.checkInterfacesExist(key, ifaces, dir.Position)
	sc.merge(key, sc.cacheHint(field), ifaces, dir.Position)
}

// edgeInterfaces reads the edgeInterface argument. Names may be separated by
// commas or whitespace; an empty value counts as absent.
func (sc *scanner) edgeInterfaces(dir *language.Directive) []string {
	arg := dir.Arguments.ForName(edgeInterfaceArgument)
	if arg == nil || arg.Value == nil {
		return nil
	}
	switch arg.Value.Kind {
	case language.NullValue:
		return nil
	case language.StringValue, language.BlockValue:
	default:
		sc.addViolation(violationExpectedString(dir.Name, edgeInterfaceArgument, arg.Position))
		return nil
	}
	names := strings.FieldsFunc(arg.Value.Raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return sortedNames(names)
}

func (sc *scanner) checkInterfacesExist(key Key, ifaces []string, pos *language.Position) {
	for _, name := range ifaces {
		def := sc.schema.Lookup(name)
		switch {
		case def == nil:
			sc.addViolation(violationMissingInterface(key, name, pos))
		case def.Kind != language.Interface:
			sc.addViolation(violationNotInterface(key, name, def.Kind, pos))
		}
	}
}

// cacheHint computes the hint a single field contributes under the configured
// cache policy.
func (sc *scanner) cacheHint(field *language.FieldDefinition) CacheHint {
	cc := sc.directive.cache
	switch {
	case !cc.Enabled:
		return NoHint()
	case cc.InheritMaxAge:
		return InheritMaxAgeHint()
	}

	dir := field.Directives.ForName(cacheControlDirective)
	if dir == nil {
		return NoHint()
	}
	if arg := dir.Arguments.ForName(inheritMaxAgeArgument); arg != nil && arg.Value != nil &&
		arg.Value.Kind == language.BooleanValue && arg.Value.Raw == "true" {
		return InheritMaxAgeHint()
	}
	arg := dir.Arguments.ForName(maxAgeArgument)
	if arg == nil || arg.Value == nil || arg.Value.Kind == language.NullValue {
		return NoHint()
	}
	if arg.Value.Kind != language.IntValue {
		sc.addViolation(violationExpectedInt(cacheControlDirective, maxAgeArgument, arg.Position))
		return NoHint()
	}
	n, err := strconv.Atoi(arg.Value.Raw)
	if err != nil {
		sc.addViolation(violationExpectedInt(cacheControlDirective, maxAgeArgument, arg.Position))
		return NoHint()
	}
	return MaxAgeHint(n)
}

func (sc *scanner) merge(key Key, hint CacheHint, ifaces []string, pos *language.Position) {
	table := sc.directive.table
	cfg, ok := table.Get(key)
	if !ok {
		table.put(&TypeConfig{Key: key, Hint: hint, EdgeInterfaces: ifaces, Position: pos})
		return
	}
	if v := checkEdgeInterfaces(key, cfg.EdgeInterfaces, ifaces, pos); v != nil {
		sc.addViolation(v)
	}
	cfg.Hint = cfg.Hint.Merge(hint)
}

// checkEdgeInterfaces requires every occurrence of a target to agree on its
// edge interfaces: either all occurrences name none, or all name the same set.
func checkEdgeInterfaces(key Key, recorded, incoming []string, pos *language.Position) *Violation {
	switch {
	case len(recorded) == 0 && len(incoming) == 0:
		return nil
	case len(recorded) == 0:
		return violationInterfaceAsymmetric(key, incoming, pos)
	case len(incoming) == 0:
		return violationInterfaceAsymmetric(key, recorded, pos)
	case !slices.Equal(recorded, incoming):
		return violationInterfaceMismatch(key, incoming, recorded, pos)
	}
	return nil
}
