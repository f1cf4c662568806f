package gmaps

import (
	"context"
	"sync/atomic"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
)

// MockGeocoder is a canned-response GeocodingProvider for deterministic
// tests. Addresses absent from Coords resolve to zero matches. Call
// counting is atomic because the resolver issues batch lookups from
// multiple goroutines.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Err    error
	Calls  atomic.Int64
}

func (m *MockGeocoder) Geocode(_ context.Context, address string) ([]domain.Coordinates, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Coords[address]
	if !ok {
		return nil, nil
	}
	return []domain.Coordinates{c}, nil
}

// MockRouter is a canned-response RoutingProvider for deterministic tests.
type MockRouter struct {
	Result *ports.ProviderRoute
	Err    error
	Calls  atomic.Int64
}

func (m *MockRouter) Route(
	_ context.Context,
	_, _ domain.Coordinates,
	_ []domain.Coordinates,
	_ bool,
) (*ports.ProviderRoute, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
