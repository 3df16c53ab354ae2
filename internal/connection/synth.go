package connection

import (
	"strings"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

const indent = "  "

// Synthesize emits the SDL of PageInfo (unless s already defines it) followed,
// per target in table order, by its edge types, the edge union when there are
// several edges, and its connection type. Names that already exist in s are
// reported as violations.
func Synthesize(table *Table, s *language.Schema) ([]string, error) {
	var (
		defs       []string
		violations []*Violation
		emitted    = make(map[string]Key)
	)

	if s.Lookup(pageInfoTypeName) == nil {
		defs = append(defs, pageInfoDefinition(table.Hint()))
	}

	for _, key := range table.Keys() {
		cfg, _ := table.Get(key)

		names := table.synthesizedNames(key)
		var collided bool
		for _, name := range names {
			if existing := s.Lookup(name); existing != nil {
				violations = append(violations, violationNameCollision(name, key, existing.Position))
				collided = true
			} else if _, ok := emitted[name]; ok {
				violations = append(violations, violationNameCollision(name, key, cfg.Position))
				collided = true
			}
		}
		if collided {
			continue
		}
		for _, name := range names {
			emitted[name] = key
		}

		defs = append(defs, targetDefinitions(table, s, cfg)...)
	}

	if len(violations) > 0 {
		return nil, ValidationError(violations)
	}
	return defs, nil
}

func targetDefinitions(table *Table, s *language.Schema, cfg *TypeConfig) []string {
	var defs []string
	clause := cfg.Hint.Directive()

	edgeNames := table.EdgeNames(cfg.Key)
	if len(cfg.EdgeInterfaces) == 0 {
		defs = append(defs, edgeDefinition(cfg.Key, &EdgeInterface{Name: edgeNames[0]}, clause))
	} else {
		for i, iface := range cfg.EdgeInterfaces {
			desc, ok := describeEdgeInterface(s, edgeNames[i], iface)
			if !ok {
				// unreachable once Scan has validated the interfaces
				continue
			}
			defs = append(defs, edgeDefinition(cfg.Key, desc, clause))
		}
	}

	if union := table.UnionName(cfg.Key); union != "" {
		defs = append(defs, "union "+union+" = "+strings.Join(edgeNames, " | "))
	}

	defs = append(defs, connectionDefinition(table.ConnectionName(cfg.Key), table.EdgesType(cfg.Key), clause))
	return defs
}

func edgeDefinition(key Key, desc *EdgeInterface, clause string) string {
	fields := []string{
		"cursor: String!",
		withClause("node: "+key.NodeType(), clause),
	}
	if desc.Fields != "" {
		fields = append(fields, desc.Fields)
	}
	return typeDefinition(desc.Name, desc.Header, clause, fields)
}

func connectionDefinition(name, edgesType, clause string) string {
	return typeDefinition(name, "", clause, []string{
		withClause("totalCount: Int!", clause),
		withClause("edges: ["+edgesType+"]", clause),
		withClause("pageInfo: "+pageInfoTypeName+"!", clause),
	})
}

func pageInfoDefinition(hint CacheHint) string {
	return typeDefinition(pageInfoTypeName, "", hint.Directive(), []string{
		"hasNextPage: Boolean!",
		"hasPreviousPage: Boolean!",
		"startCursor: String",
		"endCursor: String",
	})
}

func typeDefinition(name, header, clause string, fields []string) string {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(name)
	if header != "" {
		b.WriteString(" ")
		b.WriteString(header)
	}
	if clause != "" {
		b.WriteString(" ")
		b.WriteString(clause)
	}
	b.WriteString(" {\n")
	for _, f := range fields {
		b.WriteString(indent)
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func withClause(field, clause string) string {
	if clause == "" {
		return field
	}
	return field + " " + clause
}
