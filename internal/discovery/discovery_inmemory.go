package discovery

import (
	"context"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

type InMemorySource struct {
	Name    string
	Content string
}

// InMemoryDiscovery serves sources held in memory, mostly for tests.
type InMemoryDiscovery struct {
	sources []InMemorySource
}

func NewInMemoryDiscovery(sources ...InMemorySource) *InMemoryDiscovery {
	return &InMemoryDiscovery{sources: sources}
}

// Sources implements Discovery.
func (d *InMemoryDiscovery) Sources(ctx context.Context) ([]*language.Source, error) {
	if len(d.sources) == 0 {
		return nil, ErrNoSources
	}
	out := make([]*language.Source, len(d.sources))
	for i, s := range d.sources {
		out[i] = language.NewSource(s.Name, s.Content)
	}
	return out, nil
}
