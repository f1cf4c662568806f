package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
)

// PostgresGeocodeCache is a SQL-backed geocode cache that survives
// process restarts. Address keys are expected to be consistent (e.g.,
// normalized) by the caller.
type PostgresGeocodeCache struct {
	DB *sql.DB
}

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

// InitSchema creates the geocode cache table when it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("geocode cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address    TEXT PRIMARY KEY,
		lat        DOUBLE PRECISION NOT NULL,
		lng        DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init geocode cache schema: %w", err)
	}

	return nil
}

// Get fetches cached coordinates for one address.
func (s *PostgresGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lat, lng
	FROM geocode_cache
	WHERE address = $1;
	`

	var c domain.Coordinates
	row := s.DB.QueryRowContext(ctx, q, address)
	if err := row.Scan(&c.Lat, &c.Lng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Put stores one address -> coordinate mapping. An existing row for the
// same address is left untouched (first writer wins).
func (s *PostgresGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lng)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO NOTHING;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, coords.Lat, coords.Lng); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
