package discovery

import (
	"context"
	"errors"

	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
)

// ErrNoSources indicates that discovery found no schema files.
var ErrNoSources = errors.New("discovery: no schema sources found")

// Discovery supplies the schema sources of a transform run.
type Discovery interface {
	Sources(ctx context.Context) ([]*language.Source, error)
}
