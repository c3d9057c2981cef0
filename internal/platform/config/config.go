// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (2MB).
	// A JSON-encoded upload is larger than the file it carries.
	DefaultMaxRequestSize = 2 << 20

	// DefaultRateLimitMaxRequests is the number of submissions allowed per window.
	DefaultRateLimitMaxRequests = 10

	// DefaultRateLimitMaxKeys bounds the number of tracked emails.
	DefaultRateLimitMaxKeys = 10000

	// DefaultSubmissionMaxQuotes caps quotes per submission.
	DefaultSubmissionMaxQuotes = 500

	// DefaultSubmissionMaxFileBytes caps the decoded size of an uploaded file (1MB).
	DefaultSubmissionMaxFileBytes = 1 << 20

	// DefaultSQLMaxOpenConns is the default pool size for SQL stores.
	DefaultSQLMaxOpenConns = 10

	// DefaultSQLMaxIdleConns is the default idle pool size for SQL stores.
	DefaultSQLMaxIdleConns = 5

	// DefaultClientRetryMaxAttempts is the default number of attempts for idempotent requests.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Store drivers.
const (
	StoreDriverMemory    = "memory"
	StoreDriverSQLite    = "sqlite"
	StoreDriverMySQL     = "mysql"
	StoreDriverPostgREST = "postgrest"
)

// EnvironmentProd is the environment in which error details are withheld.
const EnvironmentProd = "prod"

// Config is the root configuration structure.
type Config struct {
	App        AppConfig        `koanf:"app"        validate:"required"`
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Log        LogConfig        `koanf:"log"        validate:"required"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	CORS       CORSConfig       `koanf:"cors"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	Submission SubmissionConfig `koanf:"submission" validate:"required"`
	Store      StoreConfig      `koanf:"store"      validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// IsProduction reports whether error details must be hidden from callers.
func (a AppConfig) IsProduction() bool {
	return a.Environment == EnvironmentProd
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// CORSConfig contains the headers sent on every API response.
type CORSConfig struct {
	AllowOrigins []string      `koanf:"allow_origins" validate:"required,min=1"`
	AllowMethods []string      `koanf:"allow_methods" validate:"required,min=1"`
	AllowHeaders []string      `koanf:"allow_headers"`
	MaxAge       time.Duration `koanf:"max_age"       validate:"min=0"`
}

// RateLimitConfig contains the per-email submission limiter settings.
type RateLimitConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxRequests int           `koanf:"max_requests" validate:"required_if=Enabled true,omitempty,min=1"`
	Window      time.Duration `koanf:"window"       validate:"required_if=Enabled true,omitempty,min=1s"`
	MaxKeys     int           `koanf:"max_keys"     validate:"required_if=Enabled true,omitempty,min=1"`
}

// SubmissionConfig contains the submission pipeline limits.
type SubmissionConfig struct {
	ValidateEmail      bool     `koanf:"validate_email"`
	MaxQuotes          int      `koanf:"max_quotes"           validate:"required,min=1"`
	MaxFileBytes       int64    `koanf:"max_file_bytes"       validate:"required,min=1"`
	UploadExtensions   []string `koanf:"upload_extensions"    validate:"required,min=1,dive,startswith=."`
	UploadContentTypes []string `koanf:"upload_content_types" validate:"required,min=1,dive,contains=/"`
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Driver    string          `koanf:"driver"    validate:"required,oneof=memory sqlite mysql postgrest"`
	SQL       SQLConfig       `koanf:"sql"`
	PostgREST PostgRESTConfig `koanf:"postgrest"`
}

// SQLConfig configures the gorm-backed store used by the sqlite and mysql drivers.
type SQLConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"min=0"`
	SlowThreshold   time.Duration `koanf:"slow_threshold"    validate:"min=0"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// PostgRESTConfig configures the hosted store reached over PostgREST.
type PostgRESTConfig struct {
	URL            string               `koanf:"url"             validate:"omitempty,url"`
	APIKey         string               `koanf:"api_key"`
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-digest",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-digest",
		"telemetry.sampling_rate": 1.0,

		"cors.allow_origins": []string{"*"},
		"cors.allow_methods": []string{"POST", "PUT", "OPTIONS"},
		"cors.allow_headers": []string{"Content-Type", "X-Request-ID", "X-Correlation-ID"},
		"cors.max_age":       "10m",

		"ratelimit.enabled":      true,
		"ratelimit.max_requests": DefaultRateLimitMaxRequests,
		"ratelimit.window":       "60s",
		"ratelimit.max_keys":     DefaultRateLimitMaxKeys,

		"submission.validate_email":       true,
		"submission.max_quotes":           DefaultSubmissionMaxQuotes,
		"submission.max_file_bytes":       DefaultSubmissionMaxFileBytes,
		"submission.upload_extensions":    []string{".txt", ".json", ".md", ".markdown"},
		"submission.upload_content_types": []string{"text/plain", "application/json", "text/markdown"},

		"store.driver":                StoreDriverMemory,
		"store.sql.dsn":               "",
		"store.sql.max_open_conns":    DefaultSQLMaxOpenConns,
		"store.sql.max_idle_conns":    DefaultSQLMaxIdleConns,
		"store.sql.conn_max_lifetime": "30m",
		"store.sql.slow_threshold":    "200ms",
		"store.sql.auto_migrate":      true,

		"store.postgrest.url":     "",
		"store.postgrest.api_key": "",
		"store.postgrest.timeout": "10s",

		"store.postgrest.retry.max_attempts":     DefaultClientRetryMaxAttempts,
		"store.postgrest.retry.initial_interval": "100ms",
		"store.postgrest.retry.max_interval":     "2s",
		"store.postgrest.retry.multiplier":       DefaultClientRetryMultiplier,
		"store.postgrest.retry.jitter_factor":    DefaultClientRetryJitterFactor,

		"store.postgrest.circuit_breaker.max_failures":    DefaultClientCircuitMaxFailures,
		"store.postgrest.circuit_breaker.timeout":         "30s",
		"store.postgrest.circuit_breaker.half_open_limit": DefaultClientCircuitHalfOpenLimit,

		"store.postgrest.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"store.postgrest.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"store.postgrest.transport.idle_conn_timeout":       "90s",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.ProviderWithValue("APP_", ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKeyValue maps APP_ variables onto config keys.
//
// A double underscore separates sections and keeps single underscores in
// key names: APP_STORE__POSTGREST__API_KEY sets store.postgrest.api_key.
// Without a double underscore every underscore is a separator, so
// APP_SERVER_PORT sets server.port. Comma-separated values become lists.
func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, "APP_"))

	if strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", ".")
	} else {
		key = strings.ReplaceAll(key, "_", ".")
	}

	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		return key, parts
	}

	return key, value
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
