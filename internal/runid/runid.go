package runid

import (
	"context"
	"math/rand/v2"
	"strconv"
)

// key is the context key for the run ID.
type key struct{}

// NewContext returns a copy of parent carrying a new random run ID, and the ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := strconv.FormatUint(rand.Uint64(), 16)
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
