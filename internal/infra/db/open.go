// Package db holds what the mysql and postgres repositories share when
// opening a connection pool.
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Pool sizes the connection pool and bounds the initial connect.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectTimeout bounds the retried startup ping.
	ConnectTimeout time.Duration
}

const retryInterval = 500 * time.Millisecond

// Open builds a pool on connector and pings it until it answers or
// ConnectTimeout passes, so the API can start alongside its database.
func Open(ctx context.Context, connector driver.Connector, pool Pool, logger *zap.Logger) (*sql.DB, error) {
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	timeout := pool.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		err := db.PingContext(ctx)
		if err == nil {
			logger.Info("database connected",
				zap.Int("attempts", attempt),
				zap.Int("max_open_conns", pool.MaxOpenConns),
			)
			return db, nil
		}
		logger.Warn("database not reachable yet", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		case <-time.After(retryInterval):
		}
	}
}
