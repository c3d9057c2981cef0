// Package memory is a process-local record store. It is the default for
// local runs and the reference behaviour for the other stores in tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Store keeps users, uploads, quotes and preferences in maps guarded by a
// single mutex. Email lookups are case-insensitive and unique.
type Store struct {
	mu          sync.RWMutex
	users       map[string]domain.User // by lowercased email
	uploads     []domain.Upload
	quotes      []domain.StoredQuote
	preferences map[string]domain.Preferences // by user id
	now         func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:       make(map[string]domain.User),
		preferences: make(map[string]domain.Preferences),
		now:         time.Now,
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "store.memory" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error { return ctx.Err() }

// Close implements ports.RecordStore.
func (s *Store) Close() error { return nil }

// FindUserByEmail implements ports.UserStore.
func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.NewNotFoundError("user", "")
	}

	return &u, nil
}

// CreateUser implements ports.UserStore.
func (s *Store) CreateUser(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.users[key]; ok {
		return nil, domain.NewConflictError("user", "email already registered")
	}

	u := domain.User{ID: uuid.NewString(), Email: email, CreatedAt: s.now()}
	s.users[key] = u

	return &u, nil
}

// CreateUpload implements ports.UploadStore.
func (s *Store) CreateUpload(_ context.Context, userID, filename string) (*domain.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up := domain.Upload{ID: uuid.NewString(), UserID: userID, Filename: filename, CreatedAt: s.now()}
	s.uploads = append(s.uploads, up)

	return &up, nil
}

// InsertQuotes implements ports.QuoteStore.
func (s *Store) InsertQuotes(_ context.Context, quotes []domain.StoredQuote) ([]domain.StoredQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]domain.StoredQuote, len(quotes))
	for i, q := range quotes {
		q.ID = uuid.NewString()
		q.CreatedAt = now
		out[i] = q
	}

	s.quotes = append(s.quotes, out...)

	return slices.Clone(out), nil
}

// SavePreferences implements ports.PreferencesStore.
func (s *Store) SavePreferences(_ context.Context, p *domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *p
	saved.CustomDays = slices.Clone(p.CustomDays)
	if existing, ok := s.preferences[p.UserID]; ok {
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = s.now()
	}

	s.preferences[p.UserID] = saved

	return nil
}

// Snapshot is a copy of the store contents, for tests and the CLI.
type Snapshot struct {
	Users       []domain.User
	Uploads     []domain.Upload
	Quotes      []domain.StoredQuote
	Preferences []domain.Preferences
}

// Snapshot returns a copy of everything stored, users ordered by creation.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Uploads: slices.Clone(s.uploads),
		Quotes:  slices.Clone(s.quotes),
	}

	for _, u := range s.users {
		snap.Users = append(snap.Users, u)
	}
	slices.SortFunc(snap.Users, func(a, b domain.User) int { return a.CreatedAt.Compare(b.CreatedAt) })

	for _, p := range s.preferences {
		snap.Preferences = append(snap.Preferences, p)
	}

	return snap
}
