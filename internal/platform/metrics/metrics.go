package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// GeocodeCacheHits counts geocode cache lookups by outcome.
	GeocodeCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_cache_lookups_total", Help: "Geocode cache lookups by outcome."},
		[]string{"outcome"},
	)
	// ProviderRetries counts retried external provider calls.
	ProviderRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "provider_retries_total", Help: "Retried external provider calls by operation."},
		[]string{"op"},
	)
	// RouteFallbacks counts routes served by the local heuristic instead
	// of the routing provider.
	RouteFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_fallbacks_total", Help: "Routes computed by the local nearest-neighbor fallback."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(GeocodeCacheHits)
		Registry.MustRegister(ProviderRetries)
		Registry.MustRegister(RouteFallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
