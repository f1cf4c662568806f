package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolLimits tunes the database/sql connection pool. Zero values fall
// back to defaults sized for the geocode cache workload (short
// single-row statements, modest concurrency).
type PoolLimits struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (l PoolLimits) withDefaults() PoolLimits {
	if l.MaxOpenConns <= 0 {
		l.MaxOpenConns = 10
	}
	if l.MaxIdleConns <= 0 {
		l.MaxIdleConns = 10
	}
	if l.ConnMaxLifetime <= 0 {
		l.ConnMaxLifetime = 30 * time.Minute
	}
	return l
}

// Open connects to Postgres via the pgx database/sql driver, applies
// the pool limits, and verifies the connection.
func Open(databaseURL string, limits PoolLimits) (*sql.DB, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	limits = limits.withDefaults()
	conn.SetMaxOpenConns(limits.MaxOpenConns)
	conn.SetMaxIdleConns(limits.MaxIdleConns)
	conn.SetConnMaxLifetime(limits.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	return conn, nil
}
