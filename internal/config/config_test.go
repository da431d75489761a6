package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  baseURL: https://studio.example.com
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: app
  name: studio
ai:
  provider: anthropic
  model: claude-sonnet-4-5
`)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "override.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.AI.Model)
	assert.Equal(t, 2*time.Second, cfg.AI.FallbackDelay)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.SecureCookies())
	assert.Contains(t, cfg.MySQLDSN(), "app:pw@tcp(override.internal:3306)/studio")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.False(t, cfg.AI.Enabled(), "no AI_API_KEY means fallback mode")
	assert.False(t, cfg.SecureCookies())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, 25, cfg.Database.Pool.MaxOpenConns)
	assert.Equal(t, 15*time.Second, cfg.Database.Pool.ConnectTimeout)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_RejectsUnknownDriverAndProvider(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWTSecret = "x"
	cfg.Database.Driver = "sqlite"
	cfg.AI.Provider = "openai"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	cfg.AI.Provider = "llama"
	assert.Error(t, cfg.Validate())

	cfg.AI.Provider = "gemini"
	assert.NoError(t, cfg.Validate())
}
