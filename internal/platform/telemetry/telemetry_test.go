package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		App: config.AppConfig{Name: "quote-digest", Version: "1.2.3", Environment: "prod"},
		Telemetry: config.TelemetryConfig{
			Enabled:      true,
			Endpoint:     "otel-collector:4317",
			SamplingRate: 0.25,
		},
	}

	got := ConfigFrom(cfg)

	assert.Equal(t, "quote-digest", got.ServiceName)
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "prod", got.Environment)
	assert.InDelta(t, 0.25, got.SamplingRate, 0)
	assert.False(t, got.Insecure)

	cfg.App.Environment = "local"
	cfg.Telemetry.ServiceName = "quotes-edge"

	got = ConfigFrom(cfg)
	assert.Equal(t, "quotes-edge", got.ServiceName)
	assert.True(t, got.Insecure)
}

// Not parallel: swaps the global tracer provider.
func TestMiddleware_PropagatesTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	})
	router.Use(Middleware("quote-digest")...)
	router.POST("/api/v1/submissions", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil))

	require.Equal(t, http.StatusCreated, w.Code)

	traceID := w.Header().Get(HeaderTraceID)
	require.Len(t, traceID, 32)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, traceID, line["trace_id"])
}
