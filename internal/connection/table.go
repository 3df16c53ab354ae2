package connection

import (
	"sort"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// TypeConfig is the merged configuration of every field paginating one target.
type TypeConfig struct {
	Key  Key
	Hint CacheHint
	// EdgeInterfaces is the sorted set of interfaces the target's edges
	// implement. Empty means a single plain edge.
	EdgeInterfaces []string
	// Position is where the target was first paginated.
	Position *language.Position
}

// Table holds one TypeConfig per target in first-seen order. A Table lives for
// a single transform run.
type Table struct {
	keys    []Key
	configs map[Key]*TypeConfig
}

func NewTable() *Table {
	return &Table{configs: make(map[Key]*TypeConfig)}
}

func (t *Table) Len() int { return len(t.keys) }

// Keys returns the targets in the order they were first seen.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.keys...)
}

func (t *Table) Get(k Key) (*TypeConfig, bool) {
	cfg, ok := t.configs[k]
	return cfg, ok
}

func (t *Table) put(cfg *TypeConfig) {
	if _, ok := t.configs[cfg.Key]; !ok {
		t.keys = append(t.keys, cfg.Key)
	}
	t.configs[cfg.Key] = cfg
}

// Hint returns the merge of every target's cache hint.
func (t *Table) Hint() CacheHint {
	var h CacheHint
	for _, k := range t.keys {
		h = h.Merge(t.configs[k].Hint)
	}
	return h
}

// sortedNames de-duplicates and sorts interface names.
func sortedNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
