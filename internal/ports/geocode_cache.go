package ports

import (
	"context"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// Port: a boundary for caching successful geocode resolutions.
// Keys are normalized address strings. Entries never expire within a
// process lifetime; concurrent insertion of the same key is first-writer
// wins and later identical writes are no-ops.
type GeocodeCache interface {
	// Get returns the cached coordinates and whether the key was present.
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	// Put stores coordinates for an address.
	Put(ctx context.Context, address string, coords domain.Coordinates) error
}
