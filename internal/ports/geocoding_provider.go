package ports

import (
	"context"
	"fmt"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// FailureKind classifies why an address could not be resolved.
type FailureKind string

const (
	// FailureMalformed marks empty or whitespace-only input, rejected
	// before any network call.
	FailureMalformed FailureKind = "malformed"
	// FailureNoResult means the provider was reached but returned zero
	// matches. Not retryable; the address is likely wrong.
	FailureNoResult FailureKind = "no_result"
	// FailureProviderUnreachable covers network errors and 5xx responses.
	// Retryable with bounded backoff.
	FailureProviderUnreachable FailureKind = "provider_unreachable"
)

// ResolutionError reports a single address that failed to resolve.
type ResolutionError struct {
	Address string
	Kind    FailureKind
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %s: %v", e.Address, e.Kind, e.Err)
	}
	return fmt.Sprintf("resolve %q: %s", e.Address, e.Kind)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Contract for turning an address string into candidate coordinates.
type GeocodingProvider interface {
	// Return candidate coordinates for an address, best match first.
	// An empty slice with a nil error means the provider found nothing.
	Geocode(ctx context.Context, address string) ([]domain.Coordinates, error)
}
