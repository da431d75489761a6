package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is read from config.yaml and then overridden by environment
// variables. Secrets are env-only (yaml:"-").
type Config struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"local"`

	Server struct {
		Port           int      `yaml:"port" env:"PORT" env-default:"8080"`
		BaseURL        string   `yaml:"baseURL" env:"BASE_URL" env-default:"http://localhost:8080"`
		AllowedOrigins []string `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
		TrustProxy     bool     `yaml:"trustProxy" env:"TRUST_PROXY" env-default:"false"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	} `yaml:"logging"`

	Database struct {
		Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
		Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
		Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User     string `yaml:"user" env:"DB_USER" env-default:"venture"`
		Password string `yaml:"-" env:"DB_PASSWORD"`
		Name     string `yaml:"name" env:"DB_NAME" env-default:"venture_studio"`
		SSLMode  string `yaml:"sslMode" env:"DB_SSLMODE" env-default:"disable"`
		Migrate  bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"true"`

		Pool struct {
			MaxOpenConns    int           `yaml:"maxOpenConns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
			MaxIdleConns    int           `yaml:"maxIdleConns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
			ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
			ConnectTimeout  time.Duration `yaml:"connectTimeout" env:"DB_CONNECT_TIMEOUT" env-default:"15s"`
		} `yaml:"pool"`
	} `yaml:"database"`

	AI AIConfig `yaml:"ai"`

	Auth struct {
		JWTSecret  string        `yaml:"-" env:"JWT_SECRET"`
		TokenTTL   time.Duration `yaml:"tokenTTL" env:"AUTH_TOKEN_TTL" env-default:"24h"`
		CookieName string        `yaml:"cookieName" env:"AUTH_COOKIE_NAME" env-default:"token"`
	} `yaml:"auth"`

	Billing struct {
		KeySecret                   string `yaml:"-" env:"PAYMENT_KEY_SECRET"`
		RequireSubscriptionForPitch bool   `yaml:"requireSubscriptionForPitch" env:"BILLING_REQUIRE_SUBSCRIPTION_FOR_PITCH" env-default:"false"`
	} `yaml:"billing"`

	RateLimit struct {
		Capacity   int     `yaml:"capacity" env:"RATE_LIMIT_CAPACITY" env-default:"30"`
		RefillRate float64 `yaml:"refillRate" env:"RATE_LIMIT_REFILL" env-default:"1"`
	} `yaml:"rateLimit"`

	Minio struct {
		Endpoint   string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
		AccessKey  string `yaml:"accessKey" env:"MINIO_ACCESS_KEY"`
		SecretKey  string `yaml:"-" env:"MINIO_SECRET_KEY"`
		BucketName string `yaml:"bucketName" env:"MINIO_BUCKET" env-default:"venture-studio"`
		Region     string `yaml:"region" env:"MINIO_REGION" env-default:"us-east-1"`
		UseSSL     bool   `yaml:"useSSL" env:"MINIO_USE_SSL" env-default:"false"`
	} `yaml:"minio"`
}

// AIConfig selects the generative provider. An empty APIKey is not an
// error: every analysis is then served from fallback templates.
type AIConfig struct {
	Provider      string        `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	APIKey        string        `yaml:"-" env:"AI_API_KEY"`
	Model         string        `yaml:"model" env:"AI_MODEL"`
	BaseURL       string        `yaml:"baseURL" env:"AI_BASE_URL"`
	MaxTokens     int           `yaml:"maxTokens" env:"AI_MAX_TOKENS" env-default:"2048"`
	FallbackDelay time.Duration `yaml:"fallbackDelay" env:"AI_FALLBACK_DELAY" env-default:"2s"`

	Breaker struct {
		Enabled          bool          `yaml:"enabled" env:"AI_BREAKER_ENABLED" env-default:"true"`
		MinRequests      uint32        `yaml:"minRequests" env:"AI_BREAKER_MIN_REQUESTS" env-default:"5"`
		FailureThreshold float64       `yaml:"failureThreshold" env:"AI_BREAKER_FAILURE_THRESHOLD" env-default:"0.6"`
		OpenTimeout      time.Duration `yaml:"openTimeout" env:"AI_BREAKER_OPEN_TIMEOUT" env-default:"60s"`
	} `yaml:"breaker"`
}

// Enabled reports whether a real provider should be constructed.
func (c AIConfig) Enabled() bool { return c.APIKey != "" }

// Load reads the YAML file at path (a missing file is fine) and applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.AI.Provider {
	case "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unsupported ai provider %q", c.AI.Provider)
	}
	if _, err := url.Parse(c.Server.BaseURL); err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN. multiStatements is needed by the
// migration runner.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SecureCookies is true unless the public base URL is plain http.
func (c *Config) SecureCookies() bool {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" {
		return true
	}
	return u.Scheme != "http"
}
