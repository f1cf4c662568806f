package cache

import (
	"context"
	"sync"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// MemoryGeocodeCache is an in-process geocode cache. Entries never
// expire for the lifetime of the process; a fresh deployment starts
// empty. Safe for concurrent use: the first writer of a key wins and
// later writes of the same key are no-ops.
type MemoryGeocodeCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Coordinates
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{entries: make(map[string]domain.Coordinates)}
}

func (m *MemoryGeocodeCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.entries[address]
	return c, ok, nil
}

func (m *MemoryGeocodeCache) Put(_ context.Context, address string, coords domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[address]; ok {
		return nil
	}
	m.entries[address] = coords
	return nil
}
