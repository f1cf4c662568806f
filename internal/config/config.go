package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// Config holds all process-wide configuration. It is loaded once at
// startup and injected into components; nothing reads ambient globals.
type Config struct {
	ServerAddress string `mapstructure:"server_address"`

	// CentralAddress is the fixed start and end point of every route.
	CentralAddress string `mapstructure:"central_address"`
	// Localities is the set of recognized city names for address extraction.
	Localities []string `mapstructure:"localities"`

	GoogleMapsAPIKey  string `mapstructure:"google_maps_api_key"`
	GoogleMapsBaseURL string `mapstructure:"google_maps_base_url"`

	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	RetryMax        int           `mapstructure:"retry_max"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`

	TipTimeout time.Duration `mapstructure:"tip_timeout"`

	// TwoOptIterations enables a bounded 2-opt improvement pass over the
	// fallback route order when positive.
	TwoOptIterations int `mapstructure:"two_opt_iterations"`

	// CacheBackend selects the geocode cache: memory, redis, or postgres.
	CacheBackend string `mapstructure:"cache_backend"`
	RedisAddr    string `mapstructure:"redis_addr"`
	DatabaseURL  string `mapstructure:"database_url"`

	Vehicle VehicleConfig `mapstructure:"vehicle"`
}

// VehicleConfig mirrors domain.VehicleCostModel in configuration form.
type VehicleConfig struct {
	FuelEfficiencyMPG       float64 `mapstructure:"fuel_efficiency_mpg"`
	FuelPricePerGallon      float64 `mapstructure:"fuel_price_per_gallon"`
	WearAndTearPerMile      float64 `mapstructure:"wear_and_tear_per_mile"`
	TimeCostPerHour         float64 `mapstructure:"time_cost_per_hour"`
	CompensationPerDelivery float64 `mapstructure:"compensation_per_delivery"`
	CompensationMode        string  `mapstructure:"compensation_mode"`
}

// CostModel converts the configured vehicle parameters to the domain type.
func (v VehicleConfig) CostModel() (domain.VehicleCostModel, error) {
	mode := domain.CompensationMode(v.CompensationMode)
	switch mode {
	case domain.CompensationPerStop, domain.CompensationPerBatch:
	default:
		return domain.VehicleCostModel{}, fmt.Errorf("config: unknown compensation_mode %q", v.CompensationMode)
	}

	return domain.VehicleCostModel{
		FuelEfficiencyMPG:       v.FuelEfficiencyMPG,
		FuelPricePerGallon:      v.FuelPricePerGallon,
		WearAndTearPerMile:      v.WearAndTearPerMile,
		TimeCostPerHour:         v.TimeCostPerHour,
		CompensationPerDelivery: v.CompensationPerDelivery,
		CompensationMode:        mode,
	}, nil
}

// LoadConfig reads configuration from config.yaml in path, with
// environment variables overriding file values.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server_address", ":8080")
	// Keys without file values are still overridable from the
	// environment only when viper knows about them.
	v.SetDefault("central_address", "")
	v.SetDefault("google_maps_api_key", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("database_url", "")
	v.SetDefault("localities", []string{"Madison", "Verona", "Fitchburg"})
	v.SetDefault("google_maps_base_url", "https://maps.googleapis.com")
	v.SetDefault("provider_timeout", 10*time.Second)
	v.SetDefault("retry_max", 4)
	v.SetDefault("retry_backoff", 200*time.Millisecond)
	v.SetDefault("tip_timeout", 60*time.Second)
	v.SetDefault("two_opt_iterations", 0)
	v.SetDefault("cache_backend", "memory")
	v.SetDefault("vehicle.fuel_efficiency_mpg", 32.0)
	v.SetDefault("vehicle.fuel_price_per_gallon", 2.85)
	v.SetDefault("vehicle.wear_and_tear_per_mile", 0.05)
	v.SetDefault("vehicle.time_cost_per_hour", 4.0)
	v.SetDefault("vehicle.compensation_per_delivery", 2.0)
	v.SetDefault("vehicle.compensation_mode", string(domain.CompensationPerStop))

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover local runs.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants a running service depends on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.CentralAddress) == "" {
		return fmt.Errorf("config: central_address is required")
	}
	if strings.TrimSpace(c.GoogleMapsAPIKey) == "" {
		return fmt.Errorf("config: google_maps_api_key is required")
	}
	if len(c.Localities) == 0 {
		return fmt.Errorf("config: at least one recognized locality is required")
	}
	switch c.CacheBackend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config: unknown cache_backend %q", c.CacheBackend)
	}
	if c.RetryMax < 1 {
		return fmt.Errorf("config: retry_max must be at least 1")
	}
	return nil
}
