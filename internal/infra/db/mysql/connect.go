package mysql

import (
	"context"
	"database/sql"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/infra/db"
)

// Connect opens a MySQL pool. The DSN must carry parseTime=true; the
// repositories scan DATETIME columns into time.Time.
func Connect(ctx context.Context, dsn string, pool db.Pool, logger *zap.Logger) (*sql.DB, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if !cfg.ParseTime {
		return nil, fmt.Errorf("mysql dsn for %s must set parseTime=true", cfg.DBName)
	}
	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	return db.Open(ctx, connector, pool, logger.With(
		zap.String("driver", "mysql"),
		zap.String("addr", cfg.Addr),
		zap.String("database", cfg.DBName),
	))
}
