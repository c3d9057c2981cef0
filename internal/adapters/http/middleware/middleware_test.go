package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generates when absent", incoming: "", keep: false},
		{name: "keeps incoming", incoming: "req-123", keep: true},
		{name: "regenerates oversized", incoming: strings.Repeat("x", maxIDLength+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ginID, ctxID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				ginID = GetRequestID(c)
				ctxID = RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}

			router.ServeHTTP(w, req)

			header := w.Header().Get(HeaderRequestID)
			require.NotEmpty(t, header)
			assert.Equal(t, header, ginID)
			assert.Equal(t, header, ctxID)

			if tt.keep {
				assert.Equal(t, tt.incoming, header)
			} else {
				assert.NotEqual(t, tt.incoming, header)
				assert.Len(t, header, 36)
			}
		})
	}
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	var ginID, ctxID string

	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		ginID = GetCorrelationID(c)
		ctxID = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderCorrelationID, "corr-456")

	router.ServeHTTP(w, req)

	assert.Equal(t, "corr-456", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "corr-456", ginID)
	assert.Equal(t, "corr-456", ctxID)
}

func TestIDs_EnrichRequestLogger(t *testing.T) {
	t.Parallel()

	logger, buf := bufferLogger()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	})
	router.Use(RequestID(), CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderCorrelationID, "corr-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "corr-1", line["correlation_id"])
}

func TestGetIDs_Unset(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
}

func corsConfig(origins ...string) config.CORSConfig {
	return config.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	reached := false

	router := gin.New()
	router.Use(CORS(corsConfig("*")))
	router.POST("/api/v1/submissions", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusCreated)
	})
	router.OPTIONS("/api/v1/submissions", func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/submissions", nil)
	req.Header.Set("Origin", "https://quotes.example")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.False(t, reached)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_PreflightOnUnknownPath(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(CORS(corsConfig("*")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/nowhere", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_SimpleRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "https://a.example", wantOrigin: "*"},
		{name: "listed origin echoed", origins: []string{"https://a.example"}, origin: "https://a.example", wantOrigin: "https://a.example"},
		{name: "unlisted origin", origins: []string{"https://a.example"}, origin: "https://b.example", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(CORS(corsConfig(tt.origins...)))
			router.POST("/test", func(c *gin.Context) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "nope"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
			assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
		})
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantLog   bool
	}{
		{name: "success at info", path: "/api/v1/submissions", status: http.StatusCreated, wantLevel: "INFO", wantLog: true},
		{name: "client error at warn", path: "/api/v1/submissions", status: http.StatusBadRequest, wantLevel: "WARN", wantLog: true},
		{name: "server error at error", path: "/api/v1/submissions", status: http.StatusInternalServerError, wantLevel: "ERROR", wantLog: true},
		{name: "health skipped", path: "/-/ready", status: http.StatusOK, wantLog: false},
		{name: "explicit skip", path: "/favicon.ico", status: http.StatusOK, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := bufferLogger()

			router := gin.New()
			router.Use(Logging(logger, "/favicon.ico"))
			router.Any("/*path", func(c *gin.Context) {
				c.Status(tt.status)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, nil))

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "request completed", line["msg"])
			assert.Equal(t, tt.path, line["path"])
			assert.InDelta(t, float64(tt.status), line["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		exposeDetail bool
		wantError    string
	}{
		{name: "detail exposed", exposeDetail: true, wantError: "boom"},
		{name: "detail hidden", exposeDetail: false, wantError: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := bufferLogger()

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Header("Access-Control-Allow-Origin", "*")
				c.Next()
			})
			router.Use(Recovery(logger, tt.exposeDetail))
			router.POST("/panic", func(*gin.Context) {
				panic("boom")
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "An unexpected error occurred", body["message"])

			if tt.wantError == "" {
				assert.NotContains(t, body, "error")
			} else {
				assert.Equal(t, tt.wantError, body["error"])
			}

			assert.Contains(t, buf.String(), "panic recovered")
		})
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()

		var deadline time.Time
		var ok bool

		router := gin.New()
		router.Use(Timeout(time.Second))
		router.GET("/test", func(c *gin.Context) {
			deadline, ok = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	})

	t.Run("zero disables", func(t *testing.T) {
		t.Parallel()

		var ok bool

		router := gin.New()
		router.Use(Timeout(0))
		router.GET("/test", func(c *gin.Context) {
			_, ok = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.False(t, ok)
	})

	t.Run("handler observes expiry", func(t *testing.T) {
		t.Parallel()

		var err error

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/test", func(c *gin.Context) {
			<-c.Request.Context().Done()
			err = c.Request.Context().Err()
			c.Status(http.StatusGatewayTimeout)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}
