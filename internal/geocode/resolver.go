package geocode

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/platform/metrics"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
)

// Resolver turns address strings into coordinates via a geocoding
// provider, with a read-mostly cache shared across requests.
//
// Transient provider failures are retried inside the provider adapter
// with bounded backoff; by the time an error reaches the resolver it is
// terminal for this attempt and only needs classifying.
type Resolver struct {
	provider ports.GeocodingProvider
	cache    ports.GeocodeCache
}

func NewResolver(provider ports.GeocodingProvider, cache ports.GeocodeCache) *Resolver {
	return &Resolver{provider: provider, cache: cache}
}

// Failure records one address that could not be resolved.
type Failure struct {
	Address string
	Kind    ports.FailureKind
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns the stop for a single address, or a *ports.ResolutionError
// classifying why it could not be resolved.
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.ResolvedStop, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.ResolvedStop{}, &ports.ResolutionError{Address: address, Kind: ports.FailureMalformed}
	}

	if r.cache != nil {
		coords, ok, err := r.cache.Get(ctx, norm)
		switch {
		case err != nil:
			// The cache is an optimization, not a dependency.
			log.Warn().Str("address", norm).Err(err).Msg("geocode cache read failed")
			metrics.GeocodeCacheHits.WithLabelValues("error").Inc()
		case ok:
			metrics.GeocodeCacheHits.WithLabelValues("hit").Inc()
			return domain.ResolvedStop{Address: norm, Coords: coords}, nil
		default:
			metrics.GeocodeCacheHits.WithLabelValues("miss").Inc()
		}
	}

	candidates, err := r.provider.Geocode(ctx, norm)
	if err != nil {
		return domain.ResolvedStop{}, &ports.ResolutionError{Address: norm, Kind: ports.FailureProviderUnreachable, Err: err}
	}
	if len(candidates) == 0 {
		return domain.ResolvedStop{}, &ports.ResolutionError{Address: norm, Kind: ports.FailureNoResult}
	}

	coords := candidates[0]
	if !coords.Valid() {
		return domain.ResolvedStop{}, &ports.ResolutionError{Address: norm, Kind: ports.FailureNoResult}
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, norm, coords); err != nil {
			log.Warn().Str("address", norm).Err(err).Msg("geocode cache write failed")
		}
	}

	return domain.ResolvedStop{Address: norm, Coords: coords}, nil
}

// ResolveAll resolves a batch of addresses. Partial failure is expected
// and normal: failed addresses are collected per kind and returned next
// to the successes, in input order on both sides.
func (r *Resolver) ResolveAll(ctx context.Context, addresses []string) (_ []domain.ResolvedStop, _ []Failure, err error) {
	defer obs.Time(ctx, "geocode.ResolveAll")(&err)

	type slot struct {
		stop domain.ResolvedStop
		fail *Failure
	}
	slots := make([]slot, len(addresses))

	sem := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for i, addr := range addresses {
		wg.Add(1)
		go func(i int, addr string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			stop, rerr := r.Resolve(ctx, addr)
			if rerr != nil {
				kind := ports.FailureProviderUnreachable
				var re *ports.ResolutionError
				if errors.As(rerr, &re) {
					kind = re.Kind
				}
				slots[i] = slot{fail: &Failure{Address: addr, Kind: kind}}
				return
			}
			slots[i] = slot{stop: stop}
		}(i, addr)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	resolved := make([]domain.ResolvedStop, 0, len(addresses))
	failed := make([]Failure, 0)
	for _, s := range slots {
		if s.fail != nil {
			failed = append(failed, *s.fail)
			continue
		}
		resolved = append(resolved, s.stop)
	}

	return resolved, failed, nil
}
