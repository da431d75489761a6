package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bryanwahyu/venture-studio/internal/application"
	appaccounts "github.com/bryanwahyu/venture-studio/internal/application/accounts"
	appanalysis "github.com/bryanwahyu/venture-studio/internal/application/analysis"
	appbilling "github.com/bryanwahyu/venture-studio/internal/application/billing"
	appprojects "github.com/bryanwahyu/venture-studio/internal/application/projects"
	"github.com/bryanwahyu/venture-studio/internal/config"
	"github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/domain/billing"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
	"github.com/bryanwahyu/venture-studio/internal/domain/users"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/factory"
	"github.com/bryanwahyu/venture-studio/internal/infra/auth"
	"github.com/bryanwahyu/venture-studio/internal/infra/db"
	"github.com/bryanwahyu/venture-studio/internal/infra/db/migrations"
	mysqlp "github.com/bryanwahyu/venture-studio/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/venture-studio/internal/infra/db/postgres"
	"github.com/bryanwahyu/venture-studio/internal/infra/httpserver"
	"github.com/bryanwahyu/venture-studio/internal/infra/payments"
	minioStore "github.com/bryanwahyu/venture-studio/internal/infra/storage"
	"github.com/bryanwahyu/venture-studio/internal/middleware"
)

type repositories struct {
	users    users.Repository
	projects projects.Repository
	data     projects.DataRepository
	subs     billing.SubscriptionRepository
	payments billing.PaymentRepository
	runs     analysis.RunRepository
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := newLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// connect database
	conn, dsn, repos, err := openDatabase(ctx, cfg, logger.Named("db"))
	if err != nil {
		logger.Fatal("database connect error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer conn.Close()

	if cfg.Database.Migrate {
		if err := migrations.Run(cfg.Database.Driver, dsn, logger.Named("migrations")); err != nil {
			logger.Fatal("migration error", zap.Error(err))
		}
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: conn},
	}

	// init minio (optional)
	var store appanalysis.DocumentStore
	if cfg.Minio.Endpoint != "" {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		store = s
		checkers["storage"] = middleware.CheckFunc(s.Ping)
	} else {
		logger.Info("MINIO_ENDPOINT not set, images and pitch documents will not be stored")
	}

	// init ai provider
	provider, err := factory.New(ctx, cfg.AI, logger.Named("ai"))
	if err != nil {
		logger.Fatal("ai provider init error", zap.Error(err))
	}
	aiMode := "fallback"
	if provider != nil {
		aiMode = "provider"
		logger.Info("ai provider ready", zap.String("provider", cfg.AI.Provider), zap.String("model", provider.Model()))
	}

	metrics := middleware.NewMetrics()
	clock := application.SystemClock{}
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Billing.KeySecret == "" {
		logger.Warn("PAYMENT_KEY_SECRET not set, payment verification will always fail")
	}

	// init services
	engine := &appanalysis.Engine{
		Provider:      provider,
		Clock:         clock,
		FallbackDelay: cfg.AI.FallbackDelay,
		Logger:        logger,
		Observer:      metrics,
	}
	analysisSvc := appanalysis.NewService(engine, repos.runs, repos.projects, repos.data, store)
	accountsSvc := appaccounts.NewService(repos.users, auth.Hasher{}, tokens, clock, logger)
	projectsSvc := appprojects.NewService(repos.projects, repos.data, clock, logger)
	billingSvc := appbilling.NewService(repos.subs, repos.payments, payments.NewGateway(cfg.Billing.KeySecret), clock, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	stopSweep := make(chan struct{})
	go limiter.Run(5*time.Minute, stopSweep)
	defer close(stopSweep)

	// init router
	handler := httpserver.NewRouter(httpserver.Deps{
		Analysis: analysisSvc,
		Accounts: accountsSvc,
		Projects: projectsSvc,
		Billing:  billingSvc,
		Tokens:   tokens,
		Users:    repos.users,
		Metrics:  metrics,
		Limiter:  limiter,
		Checkers: checkers,
		Logger:   logger,
		Options: httpserver.Options{
			CookieName:                  cfg.Auth.CookieName,
			SecureCookies:               cfg.SecureCookies(),
			AllowedOrigins:              cfg.Server.AllowedOrigins,
			RequireSubscriptionForPitch: cfg.Billing.RequireSubscriptionForPitch,
			TrustProxy:                  cfg.Server.TrustProxy,
			AIMode:                      aiMode,
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// fallback delay plus a slow provider call
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("ai_mode", aiMode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sql.DB, string, repositories, error) {
	pool := db.Pool{
		MaxOpenConns:    cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:    cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.Pool.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.Pool.ConnectTimeout,
	}
	switch cfg.Database.Driver {
	case "mysql":
		dsn := cfg.MySQLDSN()
		conn, err := mysqlp.Connect(ctx, dsn, pool, logger)
		if err != nil {
			return nil, "", repositories{}, err
		}
		return conn, dsn, repositories{
			users:    mysqlp.NewUserRepository(conn),
			projects: mysqlp.NewProjectRepository(conn),
			data:     mysqlp.NewProjectDataRepository(conn),
			subs:     mysqlp.NewSubscriptionRepository(conn),
			payments: mysqlp.NewPaymentRepository(conn),
			runs:     mysqlp.NewRunRepository(conn),
		}, nil
	case "postgres":
		dsn := cfg.PostgresDSN()
		conn, err := pgp.Connect(ctx, dsn, pool, logger)
		if err != nil {
			return nil, "", repositories{}, err
		}
		return conn, dsn, repositories{
			users:    pgp.NewUserRepository(conn),
			projects: pgp.NewProjectRepository(conn),
			data:     pgp.NewProjectDataRepository(conn),
			subs:     pgp.NewSubscriptionRepository(conn),
			payments: pgp.NewPaymentRepository(conn),
			runs:     pgp.NewRunRepository(conn),
		}, nil
	}
	return nil, "", repositories{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

// newLogger builds a production (json) or development (console) zap logger.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	if format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
