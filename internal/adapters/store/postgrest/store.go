package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jsamuelsen/quote-digest/internal/adapters/clients"
	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/platform/config"
)

const (
	serviceName = "postgrest"

	restPrefix = "/rest/v1/"

	preferRepresentation = "return=representation"
	preferMergeMinimal   = "resolution=merge-duplicates,return=minimal"
)

// Config configures the PostgREST store.
type Config struct {
	// BaseURL is the project URL, without the /rest/v1 suffix.
	BaseURL string
	// APIKey is the service key sent with every request.
	APIKey string
	// Schema selects a non-default schema via Accept-Profile/Content-Profile.
	Schema    string
	Timeout   time.Duration
	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig
	Logger    *slog.Logger
}

// Store implements ports.RecordStore over PostgREST.
type Store struct {
	client *clients.Client
	logger *slog.Logger
}

// KeyAuth returns an AuthFunc that sends key as both apikey and bearer token.
func KeyAuth(key string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("apikey", key)
		r.Header.Set("Authorization", "Bearer "+key)
	}
}

// New creates a store with its own instrumented client.
func New(cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("postgrest base url is required")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("postgrest api key is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	headers := map[string]string{"Accept": "application/json"}
	if cfg.Schema != "" {
		headers["Accept-Profile"] = cfg.Schema
		headers["Content-Profile"] = cfg.Schema
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.BaseURL,
		ServiceName: serviceName,
		Timeout:     cfg.Timeout,
		Retry:       cfg.Retry,
		Circuit:     cfg.Circuit,
		Transport:   cfg.Transport,
		Headers:     headers,
		AuthFunc:    KeyAuth(cfg.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating postgrest client: %w", err)
	}

	return &Store{
		client: client,
		logger: logger.With(slog.String("component", "postgrest")),
	}, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "store." + serviceName }

// Check implements ports.HealthChecker. An open circuit reports unhealthy
// without a round trip.
func (s *Store) Check(ctx context.Context) error {
	if snap := s.client.Circuit(); snap.State == clients.StateOpen {
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit open until %s", snap.RetryAt.Format(time.RFC3339)))
	}

	q := url.Values{"select": {"id"}, "limit": {"1"}}

	body, err := s.get(ctx, "users", q, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}

// Close implements ports.RecordStore.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// FindUserByEmail implements ports.UserStore.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := url.Values{
		"select": {"id,email,created_at"},
		"email":  {"eq." + email},
		"limit":  {"1"},
	}

	body, err := s.get(ctx, "users", q, "find user")
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	rows, err := decodeRows[userRow](body)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}

	if len(rows) == 0 {
		return nil, domain.NewNotFoundError("user", "")
	}

	return rows[0].toDomain()
}

// CreateUser implements ports.UserStore.
func (s *Store) CreateUser(ctx context.Context, email string) (*domain.User, error) {
	users, err := insert(ctx, s, "users", "user", []newUser{{Email: email}}, (*userRow).toDomain)
	if err != nil {
		return nil, err
	}

	return &users[0], nil
}

// CreateUpload implements ports.UploadStore.
func (s *Store) CreateUpload(ctx context.Context, userID, filename string) (*domain.Upload, error) {
	uploads, err := insert(ctx, s, "uploads", "upload",
		[]newUpload{{UserID: userID, Filename: filename}}, (*uploadRow).toDomain)
	if err != nil {
		return nil, err
	}

	return &uploads[0], nil
}

// InsertQuotes implements ports.QuoteStore with one bulk POST, which
// PostgREST runs in a single transaction.
func (s *Store) InsertQuotes(ctx context.Context, quotes []domain.StoredQuote) ([]domain.StoredQuote, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	rows := make([]quoteRow, len(quotes))
	for i, q := range quotes {
		rows[i] = newQuoteRow(q)
	}

	return insert(ctx, s, "quotes", "quote", rows, (*quoteRow).toDomain)
}

// SavePreferences implements ports.PreferencesStore as an upsert on user_id.
func (s *Store) SavePreferences(ctx context.Context, p *domain.Preferences) error {
	payload, err := json.Marshal([]preferencesRow{{
		UserID:       p.UserID,
		DeliveryTime: p.DeliveryTime,
		Timezone:     p.Timezone,
		Frequency:    string(p.Frequency),
		CustomDays:   p.CustomDays,
	}})
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	body, err := s.post(ctx, "user_preferences?on_conflict=user_id", payload, preferMergeMinimal, "save preferences", "preferences")
	if err != nil {
		return err
	}

	return body.Close()
}

// insert posts rows to table and translates the returned representation.
func insert[In any, R any, D any](
	ctx context.Context,
	s *Store,
	table, entity string,
	rows []In,
	translate func(*R) (*D, error),
) ([]D, error) {
	operation := "insert " + table

	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", table, err)
	}

	body, err := s.post(ctx, table, payload, preferRepresentation, operation, entity)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	written, err := decodeRows[R](body)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}

	if len(written) != len(rows) {
		return nil, domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s: sent %d rows, got %d back", operation, len(rows), len(written)))
	}

	out, err := translateRows(written, translate)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}

	return out, nil
}

// get issues a filtered read. The caller closes the returned body.
func (s *Store) get(ctx context.Context, table string, q url.Values, operation string) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, restPrefix+table+"?"+q.Encode())

	return s.result(ctx, resp, err, operation, table)
}

// post issues a single-attempt write. The caller closes the returned body.
func (s *Store) post(ctx context.Context, path string, payload []byte, prefer, operation, entity string) (io.ReadCloser, error) {
	req, err := s.client.NewRequest(ctx, http.MethodPost, restPrefix+path, payload)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Prefer", prefer)

	resp, err := s.client.Do(ctx, req)

	return s.result(ctx, resp, err, operation, entity)
}

func (s *Store) result(ctx context.Context, resp *http.Response, err error, operation, entity string) (io.ReadCloser, error) {
	if err == nil && resp.StatusCode < http.StatusBadRequest {
		return resp.Body, nil
	}

	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	mapped := mapError(resp, err, operation, entity)

	if !domain.IsConflict(mapped) {
		s.logger.WarnContext(ctx, "postgrest request failed",
			slog.String("operation", operation),
			slog.Any("error", mapped),
		)
	}

	return nil, mapped
}
