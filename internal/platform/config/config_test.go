package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// The package directory has no configs/ folder, so only defaults() applies.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quote-digest", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxRequestSize), cfg.Server.MaxRequestSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Submission.ValidateEmail)
	assert.Equal(t, DefaultSubmissionMaxQuotes, cfg.Submission.MaxQuotes)
	assert.Equal(t, []string{".txt", ".json", ".md", ".markdown"}, cfg.Submission.UploadExtensions)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)

	require.NoError(t, cfg.Validate(), "defaults must be valid on their own")
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 10*time.Minute, cfg.CORS.MaxAge)
	assert.Equal(t, 30*time.Minute, cfg.Store.SQL.ConnMaxLifetime)
	assert.Equal(t, 100*time.Millisecond, cfg.Store.PostgREST.Retry.InitialInterval)
	assert.Equal(t, 30*time.Second, cfg.Store.PostgREST.CircuitBreaker.Timeout)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_EnvVarNestedKeys(t *testing.T) {
	t.Setenv("APP_STORE__DRIVER", "postgrest")
	t.Setenv("APP_STORE__POSTGREST__API_KEY", "secret")
	t.Setenv("APP_STORE__POSTGREST__URL", "https://db.example.com")
	t.Setenv("APP_RATELIMIT__MAX_REQUESTS", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgREST, cfg.Store.Driver)
	assert.Equal(t, "secret", cfg.Store.PostgREST.APIKey)
	assert.Equal(t, "https://db.example.com", cfg.Store.PostgREST.URL)
	assert.Equal(t, 3, cfg.RateLimit.MaxRequests)
}

func TestLoad_EnvVarList(t *testing.T) {
	t.Setenv("APP_CORS__ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoad_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "base.yaml"), []byte(`
app:
  environment: dev
store:
  driver: sqlite
  sql:
    dsn: file:base.db
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "prod.yaml"), []byte(`
app:
  environment: prod
store:
  sql:
    dsn: file:prod.db
`), 0o600))

	t.Chdir(dir)

	cfg, err := Load("prod")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Environment)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:prod.db", cfg.Store.SQL.DSN)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quote-digest", cfg.App.Name)
}

func TestEnvKeyValue(t *testing.T) {
	tests := []struct {
		key, value string
		wantKey    string
		wantValue  any
	}{
		{"APP_SERVER_PORT", "8080", "server.port", "8080"},
		{"APP_STORE__SQL__MAX_OPEN_CONNS", "4", "store.sql.max_open_conns", "4"},
		{"APP_CORS__ALLOW_METHODS", "POST,PUT", "cors.allow_methods", []string{"POST", "PUT"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			k, v := envKeyValue(tt.key, tt.value)
			assert.Equal(t, tt.wantKey, k)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "quote-digest", d["app.name"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, StoreDriverMemory, d["store.driver"])
	assert.Equal(t, DefaultRateLimitMaxRequests, d["ratelimit.max_requests"])
	assert.Equal(t, DefaultClientRetryMaxAttempts, d["store.postgrest.retry.max_attempts"])
}
