package connection

import (
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

const (
	pageInfoTypeName  = "PageInfo"
	edgeSuffix        = "Edge"
	connectionSuffix  = "Connection"
	nonNullNameSuffix = "NonNull"
)

// TargetName is the prefix of every type synthesized for k. The non-null
// target takes a suffix only when the nullable one is paginated too.
func (t *Table) TargetName(k Key) string {
	if k.NonNull {
		if _, ok := t.configs[Key{Base: k.Base}]; ok {
			return k.Base + nonNullNameSuffix
		}
	}
	return k.Base
}

func (t *Table) interfaces(k Key) []string {
	if cfg, ok := t.configs[k]; ok {
		return cfg.EdgeInterfaces
	}
	return nil
}

// EdgeNames returns one edge type name per edge interface of k, or the plain
// edge name when k has none.
func (t *Table) EdgeNames(k Key) []string {
	target := t.TargetName(k)
	ifaces := t.interfaces(k)
	if len(ifaces) == 0 {
		return []string{target + edgeSuffix}
	}
	names := make([]string, len(ifaces))
	for i, iface := range ifaces {
		names[i] = interfaceEdgeBase(target, iface) + edgeSuffix
	}
	return names
}

// UnionName returns the name of the union over k's edges, or "" when k has
// fewer than two edge interfaces.
func (t *Table) UnionName(k Key) string {
	if len(t.interfaces(k)) < 2 {
		return ""
	}
	return t.TargetName(k) + edgeSuffix
}

// EdgesType is the element type of the connection's edges list.
func (t *Table) EdgesType(k Key) string {
	if u := t.UnionName(k); u != "" {
		return u
	}
	return t.EdgeNames(k)[0]
}

func (t *Table) ConnectionName(k Key) string {
	target := t.TargetName(k)
	if ifaces := t.interfaces(k); len(ifaces) == 1 {
		return interfaceEdgeBase(target, ifaces[0]) + connectionSuffix
	}
	return target + connectionSuffix
}

// synthesizedNames lists every type name Synthesize emits for k.
func (t *Table) synthesizedNames(k Key) []string {
	names := t.EdgeNames(k)
	if u := t.UnionName(k); u != "" {
		names = append(names, u)
	}
	return append(names, t.ConnectionName(k))
}

func interfaceEdgeBase(target, iface string) string {
	return target + cases.Title(xlanguage.Und, cases.NoLower).String(iface)
}
