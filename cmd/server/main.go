package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Graceus777/Route-Optimizer/internal/adapters/cache"
	"github.com/Graceus777/Route-Optimizer/internal/adapters/gmaps"
	"github.com/Graceus777/Route-Optimizer/internal/api"
	"github.com/Graceus777/Route-Optimizer/internal/config"
	"github.com/Graceus777/Route-Optimizer/internal/extract"
	"github.com/Graceus777/Route-Optimizer/internal/geocode"
	"github.com/Graceus777/Route-Optimizer/internal/platform/db"
	"github.com/Graceus777/Route-Optimizer/internal/platform/metrics"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
	"github.com/Graceus777/Route-Optimizer/internal/route"
	"github.com/Graceus777/Route-Optimizer/internal/workflow"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, the configured geocode cache)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	if lvl, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	metrics.RegisterDefault()

	geocodeCache, cleanup, err := buildCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build geocode cache")
	}
	defer cleanup()

	client, err := gmaps.NewClient(cfg.GoogleMapsAPIKey, gmaps.Options{
		BaseURL:      cfg.GoogleMapsBaseURL,
		Timeout:      cfg.ProviderTimeout,
		RetryMax:     cfg.RetryMax,
		RetryBackoff: cfg.RetryBackoff,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build maps client")
	}

	extractor, err := extract.NewExtractor(cfg.Localities)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build address extractor")
	}

	costModel, err := cfg.Vehicle.CostModel()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid vehicle cost model")
	}

	resolver := geocode.NewResolver(client, geocodeCache)
	optimizer := route.NewOptimizer(client).WithTwoOpt(cfg.TwoOptIterations)
	wf := workflow.New(extractor, resolver, optimizer, costModel, cfg.CentralAddress)

	router := api.NewRouter(wf, extractor)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Info().Str("addr", cfg.ServerAddress).Msg("server listening")
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// buildCache selects the geocode cache backend from configuration.
func buildCache(cfg config.Config) (ports.GeocodeCache, func(), error) {
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisGeocodeCache(client), func() { _ = client.Close() }, nil
	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL, db.PoolLimits{})
		if err != nil {
			return nil, nil, err
		}
		return cache.NewPostgresGeocodeCache(conn), func() { _ = conn.Close() }, nil
	default:
		return cache.NewMemoryGeocodeCache(), func() {}, nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
