// Package database opens the PostgreSQL pool backing the order store. The
// pool is only dialled when ORDER_BACKEND selects postgres; the file backend
// never touches it.
package database

import (
	"context"
	"fmt"

	"digital-city/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool connects the order store pool and verifies the database is
// reachable before the server starts accepting checkouts.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("connecting order store database")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create order store pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping order store database: %w", err)
	}

	logger.Info().Msg("order store database connected")

	return pool, nil
}
