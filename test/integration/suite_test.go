//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/jsamuelsen/quote-digest/internal/adapters/http"
	"github.com/jsamuelsen/quote-digest/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-digest/internal/adapters/ratelimit"
	"github.com/jsamuelsen/quote-digest/internal/adapters/store/memory"
	"github.com/jsamuelsen/quote-digest/internal/app"
	"github.com/jsamuelsen/quote-digest/internal/platform/config"
	"github.com/jsamuelsen/quote-digest/internal/platform/metrics"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// service is an in-process instance on a memory store. Scenarios get a fresh
// one each so rate limits and stored rows never leak between them.
type service struct {
	server *httptest.Server
	store  *memory.Store
}

func startService() (*service, error) {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	submissions := app.NewSubmissionService(app.SubmissionServiceConfig{
		Users:         store,
		Uploads:       store,
		Quotes:        store,
		Limiter:       ratelimit.NewMemoryLimiter(ratelimit.Config{}),
		ValidateEmail: true,
		Metrics:       m,
		Logger:        logger,
	})

	prefs := app.NewPreferencesService(app.PreferencesServiceConfig{
		Users:         store,
		Preferences:   store,
		ValidateEmail: true,
		Metrics:       m,
		Logger:        logger,
	})

	registry := ports.NewHealthRegistry(time.Second)
	if err := registry.Register(store); err != nil {
		return nil, err
	}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger: logger,
		App:    config.AppConfig{Name: "quote-digest", Version: "integration", Environment: "test"},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       10 * time.Minute,
		},
		Timeout:            5 * time.Second,
		HealthHandler:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "none", "now"), reg),
		SubmissionHandler:  handlers.NewSubmissionHandler(submissions),
		PreferencesHandler: handlers.NewPreferencesHandler(prefs),
	})

	return &service{server: httptest.NewServer(engine), store: store}, nil
}

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	svc          *service
	response     *http.Response
	responseBody []byte
}

func newTestContext() *testContext {
	return &testContext{client: &http.Client{Timeout: 10 * time.Second}}
}

func (tc *testContext) reset() {
	if tc.svc != nil {
		tc.svc.server.Close()
		tc.svc = nil
	}

	tc.response = nil
	tc.responseBody = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I send (GET|POST|PUT|OPTIONS) "([^"]*)"$`, tc.iSend)
	ctx.Step(`^I send (POST|PUT) "([^"]*)" with body:$`, tc.iSendWithBody)
	ctx.Step(`^I submit quotes for "([^"]*)" (\d+) times$`, tc.iSubmitQuotesTimes)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, tc.theResponseHeaderShouldBe)
	ctx.Step(`^the store should hold (\d+) users? and (\d+) quotes?$`, tc.theStoreShouldHold)
}

// theServiceIsRunning starts an in-process service, or checks BASE_URL when
// the suite is pointed at a deployed one.
func (tc *testContext) theServiceIsRunning() error {
	if base := os.Getenv("BASE_URL"); base != "" {
		tc.baseURL = strings.TrimRight(base, "/")
	} else {
		svc, err := startService()
		if err != nil {
			return fmt.Errorf("starting service: %w", err)
		}

		tc.svc = svc
		tc.baseURL = svc.server.URL
	}

	if err := tc.iSend(http.MethodGet, "/-/live"); err != nil {
		return err
	}

	return tc.theResponseStatusShouldBe(http.StatusOK)
}

func (tc *testContext) iSend(method, path string) error {
	return tc.do(method, path, nil)
}

func (tc *testContext) iSendWithBody(method, path string, body *godog.DocString) error {
	return tc.do(method, path, []byte(body.Content))
}

func (tc *testContext) iSubmitQuotesTimes(email string, n int) error {
	body := fmt.Sprintf(`{"email":%q,"quotes":[{"text":"Q","source":"S"}]}`, email)

	for i := range n {
		if err := tc.do(http.MethodPost, "/api/v1/submissions", []byte(body)); err != nil {
			return err
		}

		if tc.response.StatusCode != http.StatusOK {
			return fmt.Errorf("submission %d: status %d: %s", i+1, tc.response.StatusCode, tc.responseBody)
		}
	}

	return nil
}

func (tc *testContext) do(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://quotes.example")

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp

	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, tc.response.StatusCode, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	var body map[string]any
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}

	got, ok := body[field]
	if !ok {
		return fmt.Errorf("response has no field %q.\nBody: %s", field, tc.responseBody)
	}

	if fmt.Sprint(got) != expected {
		return fmt.Errorf("field %q: expected %q, got %v", field, expected, got)
	}

	return nil
}

func (tc *testContext) theResponseHeaderShouldBe(name, expected string) error {
	if got := tc.response.Header.Get(name); got != expected {
		return fmt.Errorf("header %s: expected %q, got %q", name, expected, got)
	}

	return nil
}

func (tc *testContext) theStoreShouldHold(users, quotes int) error {
	if tc.svc == nil {
		return godog.ErrSkip
	}

	snap := tc.svc.store.Snapshot()
	if len(snap.Users) != users || len(snap.Quotes) != quotes {
		return fmt.Errorf("expected %d users and %d quotes, store has %d and %d",
			users, quotes, len(snap.Users), len(snap.Quotes))
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
