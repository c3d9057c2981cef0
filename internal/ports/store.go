// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never driver rows or wire DTOs
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// UserStore resolves users by email.
type UserStore interface {
	// FindUserByEmail returns the user with the given email.
	// Returns domain.ErrNotFound if no such user exists.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser inserts a user with a generated id.
	// Returns domain.ErrConflict if the store already holds that email.
	CreateUser(ctx context.Context, email string) (*domain.User, error)
}

// UploadStore records the provenance of file-based submissions.
type UploadStore interface {
	// CreateUpload inserts an upload row with a generated id.
	CreateUpload(ctx context.Context, userID, filename string) (*domain.Upload, error)
}

// QuoteStore persists quotes.
type QuoteStore interface {
	// InsertQuotes stores the batch and returns the rows as written, with ids
	// and timestamps filled in. The batch is written in a single call; the
	// store decides whether that call is atomic.
	InsertQuotes(ctx context.Context, quotes []domain.StoredQuote) ([]domain.StoredQuote, error)
}

// PreferencesStore persists digest delivery preferences.
type PreferencesStore interface {
	// SavePreferences inserts or replaces the preferences for p.UserID.
	SavePreferences(ctx context.Context, p *domain.Preferences) error
}

// RecordStore is the full record store collaborator. Implementations also
// report their own health so the readiness probe can include them.
type RecordStore interface {
	UserStore
	UploadStore
	QuoteStore
	PreferencesStore
	HealthChecker

	// Close releases connections held by the store.
	Close() error
}
