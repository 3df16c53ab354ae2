package connection

import (
	"strings"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// EdgeInterface describes an edge type that implements an interface.
type EdgeInterface struct {
	// Name is the edge type name, e.g. ItemNodeEdge.
	Name string
	// Interface is the interface the edge implements.
	Interface string
	// Header is the implements clause, e.g. "implements Node".
	Header string
	// Fields holds the interface's field signatures, one per line, indented
	// for the edge body.
	Fields string
}

// reservedEdgeFields are declared by every edge and never copied from an
// interface.
var reservedEdgeFields = map[string]bool{"cursor": true, "node": true}

// describeEdgeInterface prints the interface, strips its braces and re-indents
// the field lines for the edge body.
func describeEdgeInterface(s *language.Schema, name, iface string) (*EdgeInterface, bool) {
	def := s.Lookup(iface)
	if def == nil || def.Kind != language.Interface {
		return nil, false
	}

	implements := []string{iface}
	for _, parent := range def.Interfaces {
		if parent != iface {
			implements = append(implements, parent)
		}
	}

	desc := &EdgeInterface{
		Name:      name,
		Interface: iface,
		Header:    "implements " + strings.Join(implements, " & "),
	}

	body := &language.Definition{Kind: def.Kind, Name: def.Name}
	for _, f := range def.Fields {
		if !reservedEdgeFields[f.Name] {
			body.Fields = append(body.Fields, f)
		}
	}
	if len(body.Fields) == 0 {
		return desc, true
	}

	printed := language.FormatDefinition(body)
	open := strings.Index(printed, "{")
	end := strings.LastIndex(printed, "}")
	if open < 0 || end <= open {
		return desc, true
	}
	var lines []string
	for _, line := range strings.Split(printed[open+1:end], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	desc.Fields = strings.Join(lines, "\n"+indent)
	return desc, true
}
