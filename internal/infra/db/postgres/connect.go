package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/infra/db"
)

// Connect opens a PostgreSQL pool from a lib/pq connection string.
func Connect(ctx context.Context, dsn string, pool db.Pool, logger *zap.Logger) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connector: %w", err)
	}
	return db.Open(ctx, connector, pool, logger.With(zap.String("driver", "postgres")))
}
