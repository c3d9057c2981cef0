// Package main is the entry point for the quote submission service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http"
	"github.com/jsamuelsen/quote-digest/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-digest/internal/adapters/ratelimit"
	"github.com/jsamuelsen/quote-digest/internal/adapters/store/memory"
	"github.com/jsamuelsen/quote-digest/internal/adapters/store/postgrest"
	"github.com/jsamuelsen/quote-digest/internal/adapters/store/sqlstore"
	"github.com/jsamuelsen/quote-digest/internal/app"
	"github.com/jsamuelsen/quote-digest/internal/extract"
	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
	"github.com/jsamuelsen/quote-digest/internal/platform/metrics"
	"github.com/jsamuelsen/quote-digest/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry(ports.DefaultCheckTimeout)
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	submissions := app.NewSubmissionService(app.SubmissionServiceConfig{
		Users:   store,
		Uploads: store,
		Quotes:  store,
		Limiter: newLimiter(cfg.RateLimit),
		Policy: extract.UploadPolicy{
			Extensions:   cfg.Submission.UploadExtensions,
			ContentTypes: cfg.Submission.UploadContentTypes,
		},
		ValidateEmail: cfg.Submission.ValidateEmail,
		MaxQuotes:     cfg.Submission.MaxQuotes,
		MaxFileBytes:  int(cfg.Submission.MaxFileBytes),
		Metrics:       m,
		Logger:        logger,
	})

	preferences := app.NewPreferencesService(app.PreferencesServiceConfig{
		Users:         store,
		Preferences:   store,
		ValidateEmail: cfg.Submission.ValidateEmail,
		Metrics:       m,
		Logger:        logger,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:             logger,
		App:                cfg.App,
		CORS:               cfg.CORS,
		Timeout:            cfg.Server.RequestTimeout,
		HealthHandler:      handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer),
		SubmissionHandler:  handlers.NewSubmissionHandler(submissions),
		PreferencesHandler: handlers.NewPreferencesHandler(preferences),
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// openStore builds the record store selected by store.driver.
func openStore(cfg *config.Config, logger *slog.Logger) (ports.RecordStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.New(), nil

	case config.StoreDriverSQLite, config.StoreDriverMySQL:
		s, err := sqlstore.Open(sqlstore.Config{
			Driver:          cfg.Store.Driver,
			DSN:             cfg.Store.SQL.DSN,
			MaxOpenConns:    cfg.Store.SQL.MaxOpenConns,
			MaxIdleConns:    cfg.Store.SQL.MaxIdleConns,
			ConnMaxLifetime: cfg.Store.SQL.ConnMaxLifetime,
			AutoMigrate:     cfg.Store.SQL.AutoMigrate,
			SlowThreshold:   cfg.Store.SQL.SlowThreshold,
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
		}

		return s, nil

	case config.StoreDriverPostgREST:
		s, err := postgrest.New(postgrest.Config{
			BaseURL:   cfg.Store.PostgREST.URL,
			APIKey:    cfg.Store.PostgREST.APIKey,
			Timeout:   cfg.Store.PostgREST.Timeout,
			Retry:     cfg.Store.PostgREST.Retry,
			Circuit:   cfg.Store.PostgREST.CircuitBreaker,
			Transport: cfg.Store.PostgREST.Transport,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating postgrest store: %w", err)
		}

		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// newLimiter returns nil when rate limiting is disabled, which the
// submission service treats as "no limit".
func newLimiter(cfg config.RateLimitConfig) ports.RateLimiter {
	if !cfg.Enabled {
		return nil
	}

	return ratelimit.NewMemoryLimiter(ratelimit.Config{
		Limit:   cfg.MaxRequests,
		Window:  cfg.Window,
		MaxKeys: cfg.MaxKeys,
	})
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
