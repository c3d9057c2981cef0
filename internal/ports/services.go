package ports

import (
	"context"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// SubmissionService stores a submission end to end: validation, rate
// limiting, extraction, user resolution and the quote insert.
//
// HTTP handlers depend on this interface rather than on the app package so
// they can be tested with a mock.
type SubmissionService interface {
	// Submit runs the pipeline. Errors are domain errors:
	//   - domain.ErrValidation, domain.ErrInvalidEmail, domain.ErrFormat for bad input
	//   - domain.ErrRateLimited when the email is over budget
	//   - domain.ErrStorage when the record store fails
	Submit(ctx context.Context, sub *domain.Submission) (*domain.SubmissionResult, error)
}

// PreferencesService stores digest delivery preferences for an email address.
type PreferencesService interface {
	// SavePreferences resolves the user for email and stores prefs against it.
	// Returns the preferences as stored.
	SavePreferences(ctx context.Context, email string, prefs domain.Preferences) (*domain.Preferences, error)
}
