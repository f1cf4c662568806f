package ports

import (
	"context"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// RouteLeg is one segment of a provider-computed route.
type RouteLeg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// ProviderRoute is the raw optimization result from a routing provider.
// WaypointOrder is a permutation of the waypoint indices passed in; Legs
// has len(waypoints)+1 entries covering origin -> ... -> destination.
type ProviderRoute struct {
	WaypointOrder []int
	Legs          []RouteLeg
}

// Contract for retrieving an optimized visiting order between locations.
type RoutingProvider interface {
	// Route asks the provider for a route from origin to destination
	// visiting every waypoint, reordering them when optimizeOrder is set.
	Route(ctx context.Context, origin, destination domain.Coordinates, waypoints []domain.Coordinates, optimizeOrder bool) (*ProviderRoute, error)
}
