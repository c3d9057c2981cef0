package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-digest/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/telemetry"
)

// LegacyUploadPath is the serverless function path older clients post to.
const LegacyUploadPath = "/.netlify/functions/upload-file"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger *slog.Logger

	// App names the service for tracing and decides whether error detail
	// is exposed (everything but prod).
	App config.AppConfig

	CORS config.CORSConfig

	// Timeout is the per-request deadline on API routes. Zero disables it.
	Timeout time.Duration

	HealthHandler      *handlers.HealthHandler
	SubmissionHandler  *handlers.SubmissionHandler
	PreferencesHandler *handlers.PreferencesHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. CORS - headers on every response, OPTIONS answered here
//  2. Recovery - panics become the 500 envelope
//  3. Request ID, Correlation ID
//  4. OpenTelemetry - server span, trace ID on logger and response
//  5. Logging - request log (skips /-/)
//  6. ErrorHandler - renders errors handlers attached with c.Error
//
// Route groups:
//   - /-/ (internal): health, build info, metrics
//   - /api/v1/ (public API): submissions and preferences, with a deadline
//   - /.netlify/functions/upload-file: alias of POST /api/v1/submissions
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expose := !cfg.App.IsProduction()

	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.CORS(cfg.CORS),
		middleware.Recovery(logger, expose),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.App.Name)...)
	engine.Use(
		middleware.Logging(logger),
		ErrorHandler(expose),
	)

	engine.NoRoute(NoRoute)
	engine.NoMethod(NoMethod)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := middleware.Timeout(cfg.Timeout)

	apiV1 := engine.Group("/api/v1", timeout)

	if cfg.SubmissionHandler != nil {
		cfg.SubmissionHandler.RegisterSubmissionRoutes(apiV1)
		engine.POST(LegacyUploadPath, timeout, cfg.SubmissionHandler.Submit)
	}

	if cfg.PreferencesHandler != nil {
		cfg.PreferencesHandler.RegisterPreferencesRoutes(apiV1)
	}
}
