package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/platform/metrics"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
)

// fallbackAvgSpeedMPH is the assumed travel speed used to estimate
// durations when the routing provider is unavailable and only
// straight-line distances are known.
const fallbackAvgSpeedMPH = 25.0

// Optimizer produces a visiting order and aggregate distance/duration
// for a set of resolved stops, starting and ending at the central
// location.
//
// The primary path delegates to the external routing provider with
// waypoint reordering enabled. When that call fails, times out, or
// returns an unusable route, the optimizer degrades to a local greedy
// nearest-neighbor heuristic over haversine distances and marks the
// resulting route as estimated.
type Optimizer struct {
	provider ports.RoutingProvider

	// twoOptIterations enables a local improvement pass over the
	// fallback order when positive. Off by default so the fallback stays
	// a plain nearest-neighbor walk.
	twoOptIterations int
}

func NewOptimizer(provider ports.RoutingProvider) *Optimizer {
	return &Optimizer{provider: provider}
}

// WithTwoOpt returns the optimizer with a bounded 2-opt improvement pass
// applied after the fallback heuristic.
func (o *Optimizer) WithTwoOpt(iterations int) *Optimizer {
	o.twoOptIterations = iterations
	return o
}

// Optimize computes a Route visiting every stop once, starting and
// ending at central. Callers must have resolved central beforehand.
func (o *Optimizer) Optimize(ctx context.Context, central domain.ResolvedStop, stops []domain.ResolvedStop) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "route.Optimize")(&err)

	if !central.Coords.Valid() {
		return nil, errors.New("optimize route: central location has invalid coordinates")
	}

	if len(stops) == 0 {
		return &domain.Route{Central: central, Stops: []domain.RouteStop{}}, nil
	}

	if o.provider != nil {
		r, perr := o.fromProvider(ctx, central, stops)
		if perr == nil {
			return r, nil
		}
		log.Warn().Err(perr).Msg("routing provider failed, using nearest-neighbor fallback")
	}

	metrics.RouteFallbacks.Inc()
	return o.fallback(central, stops), nil
}

// fromProvider builds a Route from the provider's optimized waypoint
// order and per-leg metrics.
func (o *Optimizer) fromProvider(ctx context.Context, central domain.ResolvedStop, stops []domain.ResolvedStop) (*domain.Route, error) {
	waypoints := make([]domain.Coordinates, len(stops))
	for i, s := range stops {
		waypoints[i] = s.Coords
	}

	pr, err := o.provider.Route(ctx, central.Coords, central.Coords, waypoints, true)
	if err != nil {
		return nil, fmt.Errorf("provider route: %w", err)
	}

	if len(pr.WaypointOrder) != len(stops) {
		return nil, fmt.Errorf("provider route: waypoint order has %d entries, want %d", len(pr.WaypointOrder), len(stops))
	}
	if len(pr.Legs) != len(stops)+1 {
		return nil, fmt.Errorf("provider route: %d legs, want %d", len(pr.Legs), len(stops)+1)
	}

	seen := make([]bool, len(stops))
	for _, idx := range pr.WaypointOrder {
		if idx < 0 || idx >= len(stops) || seen[idx] {
			return nil, fmt.Errorf("provider route: waypoint order is not a permutation")
		}
		seen[idx] = true
	}

	var meters, seconds float64
	for _, leg := range pr.Legs {
		if leg.DistanceMeters < 0 || leg.DurationSeconds < 0 {
			return nil, fmt.Errorf("provider route: negative leg metrics")
		}
		meters += leg.DistanceMeters
		seconds += leg.DurationSeconds
	}

	ordered := make([]domain.RouteStop, 0, len(stops))
	for pos, idx := range pr.WaypointOrder {
		ordered = append(ordered, domain.RouteStop{
			ResolvedStop: stops[idx],
			Position:     pos,
		})
	}

	return &domain.Route{
		Central:              central,
		Stops:                ordered,
		TotalDistanceMiles:   meters / domain.MetersPerMile,
		TotalDurationMinutes: seconds / 60.0,
	}, nil
}

// fallback computes the route locally over straight-line distances.
func (o *Optimizer) fallback(central domain.ResolvedStop, stops []domain.ResolvedStop) *domain.Route {
	points := make([]domain.Coordinates, len(stops))
	for i, s := range stops {
		points[i] = s.Coords
	}

	order := nearestNeighborOrder(central.Coords, points)
	if o.twoOptIterations > 0 {
		order = improveOrder2Opt(central.Coords, points, order, o.twoOptIterations)
	}

	miles := cycleMiles(central.Coords, points, order)

	ordered := make([]domain.RouteStop, 0, len(stops))
	for pos, idx := range order {
		ordered = append(ordered, domain.RouteStop{
			ResolvedStop: stops[idx],
			Position:     pos,
		})
	}

	return &domain.Route{
		Central:              central,
		Stops:                ordered,
		TotalDistanceMiles:   miles,
		TotalDurationMinutes: miles / fallbackAvgSpeedMPH * 60.0,
		Estimated:            true,
	}
}
