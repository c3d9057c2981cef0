package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-digest/internal/adapters/clients"

	defaultTimeout = 30 * time.Second

	defaultTransportMaxIdleConns        = 100
	defaultTransportMaxIdleConnsPerHost = 10
	defaultTransportIdleConnTimeout     = 90 * time.Second
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is prefixed to every request path.
	BaseURL string

	// ServiceName identifies the remote service in logs, spans and metrics.
	ServiceName string

	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Headers are set on every request.
	Headers map[string]string

	// AuthFunc, if set, is applied before every attempt.
	AuthFunc func(*http.Request)

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is an instrumented HTTP client with retries, a circuit breaker,
// OpenTelemetry spans and metrics, and request/correlation ID propagation.
//
// Only idempotent methods are retried. A POST is sent exactly once because
// replaying an insert may store the same rows twice.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(tc config.TransportConfig) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        tc.MaxIdleConns,
		MaxIdleConnsPerHost: tc.MaxIdleConnsPerHost,
		IdleConnTimeout:     tc.IdleConnTimeout,
	}

	if t.MaxIdleConns <= 0 {
		t.MaxIdleConns = defaultTransportMaxIdleConns
	}

	if t.MaxIdleConnsPerHost <= 0 {
		t.MaxIdleConnsPerHost = defaultTransportMaxIdleConnsPerHost
	}

	if t.IdleConnTimeout <= 0 {
		t.IdleConnTimeout = defaultTransportIdleConnTimeout
	}

	return t
}

// Do sends req with retries and circuit breaking.
//
// A 5xx answer on the last attempt is returned as a response, not an error,
// so callers can read the server's error body. Transport failures that
// outlast every attempt are returned wrapped in ErrMaxRetriesExceeded.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, attempts, err := c.send(ctx, req, logger)

	return c.finish(ctx, req, resp, attempts, err, span, logger, start)
}

// send runs the attempt loop.
func (c *Client) send(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, int, error) {
	maxAttempts := c.maxAttempts(req)

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.prepareRetry(ctx, req, attempt, logger); err != nil {
				return nil, attempt - 1, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))

		switch {
		case err != nil:
			lastErr = err
			if !isRetryableError(err) {
				return nil, attempt, err
			}

			logger.Debug("request failed with retryable error",
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
		case resp.StatusCode >= http.StatusInternalServerError && attempt < maxAttempts:
			logger.Debug("request failed with server error",
				slog.Int("attempt", attempt),
				slog.Int("status", resp.StatusCode),
			)
			drain(resp)
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		default:
			return resp, attempt, nil
		}
	}

	return nil, maxAttempts, fmt.Errorf("%w after %d attempt(s): %w", ErrMaxRetriesExceeded, maxAttempts, lastErr)
}

// maxAttempts allows retries for idempotent methods with a rewindable body.
func (c *Client) maxAttempts(req *http.Request) int {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
	default:
		return 1
	}

	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return 1
	}

	return c.cfg.Retry.MaxAttempts
}

// prepareRetry waits out the backoff and rewinds the body.
func (c *Client) prepareRetry(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger) error {
	backoff := c.calculateBackoff(attempt - 1)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt),
		slog.Duration("backoff", backoff),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body: %w", err)
		}

		req.Body = body
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}

	return nil
}

// finish updates the breaker, span, metrics and log for the final outcome.
func (c *Client) finish(
	ctx context.Context,
	req *http.Request,
	resp *http.Response,
	attempts int,
	err error,
	span trace.Span,
	logger *slog.Logger,
	start time.Time,
) (*http.Response, error) {
	duration := time.Since(start)
	span.SetAttributes(attribute.Int("http.attempts", attempts))

	if err != nil {
		c.cb.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Int("attempts", attempts),
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.cb.RecordFailure()
	} else {
		c.cb.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Int("attempts", attempts),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// NewRequest builds a request against the base URL. A non-nil body is
// buffered so idempotent requests can be retried.
func (c *Client) NewRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// Post performs a single-attempt HTTP POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// Circuit returns a snapshot of the circuit breaker.
func (c *Client) Circuit() Snapshot {
	return c.cb.Snapshot()
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// ServiceName returns the configured service name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns initial*multiplier^retry capped at MaxInterval,
// with symmetric jitter of JitterFactor.
func (c *Client) calculateBackoff(retry int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(retry))

	if maxInterval := float64(c.cfg.Retry.MaxInterval); maxInterval > 0 && backoff > maxInterval {
		backoff = maxInterval
	}

	if f := c.cfg.Retry.JitterFactor; f > 0 {
		backoff += backoff * f * (rand.Float64()*2 - 1) //nolint:gosec // jitter needs no crypto randomness
	}

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// drain discards and closes a response that will not be returned.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// isRetryableError reports network timeouts and connection failures.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
