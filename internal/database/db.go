package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool settings.  Connections are recycled every five minutes so that the
// managed Postgres host never hands us a connection it already dropped.
const (
	MinConns        = 1
	MaxConns        = 10
	MaxConnLifetime = 300 * time.Second
	MaxConnIdleTime = 60 * time.Second
	ConnectTimeout  = 10 * time.Second
)

// RemediationMessage is shown to visitors when the pool cannot be created.
const RemediationMessage = "Network is blocking connection to the database server. " +
	"Please try again on a different network/internet connection, or reach out to admin at ujcho@jacksongov.org."

// ErrUnavailable wraps every failure to establish the pool.
var ErrUnavailable = errors.New("database unavailable")

// Config builds the pool configuration for databaseURL with the fixed
// pool settings applied.
func Config(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url: %v", ErrUnavailable, err)
	}
	cfg.MinConns = MinConns
	cfg.MaxConns = MaxConns
	cfg.MaxConnLifetime = MaxConnLifetime
	cfg.MaxConnIdleTime = MaxConnIdleTime
	cfg.ConnConfig.ConnectTimeout = ConnectTimeout
	return cfg, nil
}

// Open connects to Postgres and verifies the connection.  On failure it
// returns a nil pool; callers keep running and treat the nil pool as
// "no data available".
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := Config(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return pool, nil
}
