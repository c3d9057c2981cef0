package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
	"github.com/jsamuelsen/quote-digest/internal/platform/metrics"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

const opSavePreferences = "save preferences"

// PreferencesServiceConfig contains the dependencies of the preferences service.
type PreferencesServiceConfig struct {
	Users       ports.UserStore
	Preferences ports.PreferencesStore

	// ValidateEmail enables the local@domain.tld syntax check.
	ValidateEmail bool

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// PreferencesService implements ports.PreferencesService.
type PreferencesService struct {
	users         ports.UserStore
	prefs         ports.PreferencesStore
	validateEmail bool
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewPreferencesService creates a preferences service.
// It panics if either store is nil.
func NewPreferencesService(cfg PreferencesServiceConfig) *PreferencesService {
	if cfg.Users == nil || cfg.Preferences == nil {
		panic("app: preferences service requires user and preferences stores")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PreferencesService{
		users:         cfg.Users,
		prefs:         cfg.Preferences,
		validateEmail: cfg.ValidateEmail,
		metrics:       cfg.Metrics,
		logger:        logger.With(slog.String("component", "preferences")),
	}
}

// SavePreferences implements ports.PreferencesService. The preferences are
// validated before the user is resolved, so bad input never creates a user.
func (s *PreferencesService) SavePreferences(ctx context.Context, email string, prefs domain.Preferences) (*domain.Preferences, error) {
	saved, err := s.save(ctx, email, prefs)
	s.metrics.ObservePreferenceSave(outcome(err))

	return saved, err
}

func (s *PreferencesService) save(ctx context.Context, email string, prefs domain.Preferences) (*domain.Preferences, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "Email is required")
	}

	if s.validateEmail && !domain.ValidEmail(email) {
		return nil, domain.NewInvalidEmailError(email)
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	logger = logger.With(slog.String("email", logging.MaskEmail(email)))

	user, err := resolveUser(ctx, s.users, logger, email)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve user", slog.Any("error", err))
		return nil, err
	}

	prefs.UserID = user.ID

	if err := s.prefs.SavePreferences(ctx, &prefs); err != nil {
		logger.ErrorContext(ctx, "failed to save preferences",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError(opSavePreferences, err)
	}

	logger.InfoContext(ctx, "preferences saved",
		slog.String("user_id", user.ID),
		slog.String("frequency", string(prefs.Frequency)),
	)

	return &prefs, nil
}
