package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "db.sqlite3", cfg.Database.SqlitePath)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 5, cfg.RateLimiter.SubmitPerMinute)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug: false
http:
  port: 9000
  read_timeout: 3s
pagination:
  page_size: 25
auth:
  secret_key: from-file
  token_ttl: 30m
rateLimiter:
  maxBurst: 7
`), 0o600))

	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com, https://admin.example.com")
	t.Setenv("DATABASE_URL", "postgres://localhost/powersite")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, uint16(9000), cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 50, cfg.Pagination.PageSize)
	assert.Equal(t, "from-file", cfg.Auth.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 7, cfg.RateLimiter.MaxBurst)
	assert.Equal(t, 20, cfg.RateLimiter.MaxRatePerSecond)
	assert.Equal(t, []string{"https://example.com", "https://admin.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "postgres://localhost/powersite", cfg.Database.URL)
}

func TestLegacySecretAndStaffFromEnv(t *testing.T) {
	t.Setenv("DJANGO_SECRET_KEY", "legacy-secret")
	t.Setenv("STAFF_USERNAME", "editor")
	t.Setenv("STAFF_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "legacy-secret", cfg.Auth.SecretKey)
	require.Len(t, cfg.Auth.Staff, 1)
	assert.Equal(t, "editor", cfg.Auth.Staff[0].Username)
}

func TestInsecureSecretRejectedOutsideDebug(t *testing.T) {
	t.Setenv("DEBUG", "False")

	_, err := Load("")
	assert.ErrorContains(t, err, "secret_key must be changed")

	t.Setenv("SECRET_KEY", "a-real-secret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestDetermineConfigPath(t *testing.T) {
	assert.Equal(t, "explicit.yaml", DetermineConfigPath("explicit.yaml"))

	t.Setenv("POWERSITE_CONFIG", "/tmp/from-env.yaml")
	assert.Equal(t, "/tmp/from-env.yaml", DetermineConfigPath(""))
}
