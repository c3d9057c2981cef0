package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/extract"
	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
	"github.com/jsamuelsen/quote-digest/internal/platform/metrics"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

// Caller-facing operation names for storage failures.
const (
	opCreateUpload = "create upload record"
	opStoreQuotes  = "store quotes"
)

// stage names a point in the submission state machine. Stages are logged at
// debug level as the pipeline passes them; none is ever retried.
type stage string

const (
	stageValidated      stage = "validated"
	stageRateChecked    stage = "rate-checked"
	stageExtracted      stage = "extracted"
	stageUserResolved   stage = "user-resolved"
	stageUploadRecorded stage = "upload-recorded"
	stageQuotesStored   stage = "quotes-stored"
)

// SubmissionServiceConfig contains the dependencies of the submission service.
type SubmissionServiceConfig struct {
	Users   ports.UserStore
	Uploads ports.UploadStore
	Quotes  ports.QuoteStore

	// Limiter is consulted once per submission, keyed by email.
	// Nil disables rate limiting.
	Limiter ports.RateLimiter

	// Policy gates uploaded files. The zero value accepts the default types.
	Policy extract.UploadPolicy

	// ValidateEmail enables the local@domain.tld syntax check.
	ValidateEmail bool

	// MaxQuotes caps quotes per submission. Zero means no cap.
	MaxQuotes int

	// MaxFileBytes caps the decoded upload size. Zero means no cap.
	MaxFileBytes int

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// SubmissionService implements ports.SubmissionService.
//
// A submission walks received → validated → (rate-checked) → (extracted) →
// user-resolved → (upload-recorded) → quotes-stored. Each step is a hard
// gate. Store writes are not transactional: if the quote insert fails, the
// user and upload rows created earlier stay in place and the caller gets a
// StorageError.
type SubmissionService struct {
	users         ports.UserStore
	uploads       ports.UploadStore
	quotes        ports.QuoteStore
	limiter       ports.RateLimiter
	policy        extract.UploadPolicy
	validateEmail bool
	maxQuotes     int
	maxFileBytes  int
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewSubmissionService creates a submission service.
// It panics if any of the stores is nil.
func NewSubmissionService(cfg SubmissionServiceConfig) *SubmissionService {
	if cfg.Users == nil || cfg.Uploads == nil || cfg.Quotes == nil {
		panic("app: submission service requires user, upload and quote stores")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	policy := cfg.Policy
	if len(policy.Extensions) == 0 && len(policy.ContentTypes) == 0 {
		policy = extract.DefaultUploadPolicy()
	}

	return &SubmissionService{
		users:         cfg.Users,
		uploads:       cfg.Uploads,
		quotes:        cfg.Quotes,
		limiter:       cfg.Limiter,
		policy:        policy,
		validateEmail: cfg.ValidateEmail,
		maxQuotes:     cfg.MaxQuotes,
		maxFileBytes:  cfg.MaxFileBytes,
		metrics:       cfg.Metrics,
		logger:        logger.With(slog.String("component", "submission")),
	}
}

// Submit implements ports.SubmissionService.
func (s *SubmissionService) Submit(ctx context.Context, sub *domain.Submission) (*domain.SubmissionResult, error) {
	start := time.Now()

	variant := metrics.VariantQuotes
	if sub.IsFile() {
		variant = metrics.VariantFile
	}

	result, err := s.submit(ctx, sub)

	s.metrics.ObserveSubmission(variant, outcome(err), time.Since(start))

	if err != nil {
		return nil, err
	}

	s.metrics.AddQuotesStored(variant, result.QuotesCount)

	return result, nil
}

func (s *SubmissionService) submit(ctx context.Context, sub *domain.Submission) (*domain.SubmissionResult, error) {
	logger := logging.FromContextOr(ctx, s.logger)
	email := domain.NormalizeEmail(sub.Email)

	if err := s.validate(sub, email); err != nil {
		logger.InfoContext(ctx, "submission rejected", slog.Any("error", err))
		return nil, err
	}

	logger = logger.With(slog.String("email", logging.MaskEmail(email)))
	trace(ctx, logger, stageValidated)

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email); err != nil {
			logger.WarnContext(ctx, "submission rate limited", slog.Any("error", err))
			return nil, err
		}

		trace(ctx, logger, stageRateChecked)
	}

	quotes := sub.Quotes

	var warnings []string

	if sub.IsFile() {
		res, err := s.extract(ctx, logger, sub.File)
		if err != nil {
			return nil, err
		}

		quotes, warnings = res.Quotes, res.Warnings
		trace(ctx, logger, stageExtracted, slog.String("format", string(res.Format)), slog.Int("quotes", len(quotes)))
	}

	user, err := resolveUser(ctx, s.users, logger, email)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve user", slog.Any("error", err))
		return nil, err
	}

	trace(ctx, logger, stageUserResolved, slog.String("user_id", user.ID))

	var uploadID string

	if sub.IsFile() {
		upload, err := s.uploads.CreateUpload(ctx, user.ID, sub.File.Name)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create upload record",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)

			return nil, domain.NewStorageError(opCreateUpload, err)
		}

		uploadID = upload.ID
		trace(ctx, logger, stageUploadRecorded, slog.String("upload_id", uploadID))
	}

	records := make([]domain.StoredQuote, len(quotes))
	for i, q := range quotes {
		records[i] = domain.NewStoredQuote(q, user.ID, uploadID)
	}

	if _, err := s.quotes.InsertQuotes(ctx, records); err != nil {
		logger.ErrorContext(ctx, "failed to store quotes",
			slog.String("user_id", user.ID),
			slog.String("upload_id", uploadID),
			slog.Int("quotes", len(records)),
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError(opStoreQuotes, err)
	}

	trace(ctx, logger, stageQuotesStored)

	logger.InfoContext(ctx, "submission stored",
		slog.String("user_id", user.ID),
		slog.Int("quotes", len(records)),
		slog.Int("warnings", len(warnings)),
	)

	return &domain.SubmissionResult{
		UserID:      user.ID,
		UploadID:    uploadID,
		QuotesCount: len(records),
		Warnings:    warnings,
	}, nil
}

// validate runs the presence, quote shape, email syntax and size checks, in
// that order.
func (s *SubmissionService) validate(sub *domain.Submission, email string) error {
	missing := make(map[string]string)

	if email == "" {
		missing["email"] = "Email is required"
	}

	switch {
	case sub.Quotes != nil:
		if len(sub.Quotes) == 0 {
			missing["quotes"] = "At least one quote is required"
		}
	case sub.File != nil:
		if len(sub.File.Content) == 0 {
			missing["fileContent"] = "File content is required"
		}

		if strings.TrimSpace(sub.File.Name) == "" {
			missing["fileName"] = "File name is required"
		}
	default:
		missing["quotes"] = "Quotes are required"
	}

	if len(missing) > 0 {
		return domain.NewValidationErrorWithFields("Missing required fields", missing)
	}

	invalid := make(map[string]string)

	for i, q := range sub.Quotes {
		if problems := q.EntryProblems(); len(problems) > 0 {
			invalid[fmt.Sprintf("quotes[%d]", i)] = strings.Join(problems, "; ")
		}
	}

	if len(invalid) > 0 {
		return domain.NewValidationErrorWithFields("Invalid quote format", invalid)
	}

	if s.validateEmail && !domain.ValidEmail(email) {
		return domain.NewInvalidEmailError(email)
	}

	return s.checkCount(len(sub.Quotes))
}

// extract gates and parses an uploaded file. Parse failures come back as
// domain.FormatError; an empty result is a ValidationError.
func (s *SubmissionService) extract(ctx context.Context, logger *slog.Logger, file *domain.UploadedFile) (extract.Result, error) {
	if s.maxFileBytes > 0 && len(file.Content) > s.maxFileBytes {
		return extract.Result{}, domain.NewValidationError("fileContent",
			fmt.Sprintf("File is larger than %d bytes", s.maxFileBytes))
	}

	if err := s.policy.Check(file.Name, file.Content); err != nil {
		return extract.Result{}, err
	}

	res, err := extract.Extract(file.Content, file.Name, file.ContentType)
	if err != nil {
		logger.InfoContext(ctx, "uploaded file could not be parsed",
			slog.String("file_name", file.Name),
			slog.String("format", string(res.Format)),
			slog.Any("error", err),
		)

		return extract.Result{}, err
	}

	s.metrics.ObserveExtraction(string(res.Format))

	if len(res.Quotes) == 0 {
		return extract.Result{}, domain.NewValidationError("fileContent", "No quotes found in file")
	}

	if err := s.checkCount(len(res.Quotes)); err != nil {
		return extract.Result{}, err
	}

	return res, nil
}

func (s *SubmissionService) checkCount(n int) error {
	if s.maxQuotes > 0 && n > s.maxQuotes {
		return domain.NewValidationError("quotes",
			fmt.Sprintf("At most %d quotes can be submitted at once", s.maxQuotes))
	}

	return nil
}

func trace(ctx context.Context, logger *slog.Logger, st stage, attrs ...any) {
	logger.DebugContext(ctx, "submission stage reached", append([]any{slog.String("stage", string(st))}, attrs...)...)
}

// outcome classifies err for the submissions counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case domain.IsValidation(err), domain.IsFormat(err):
		return metrics.OutcomeValidation
	case domain.IsInvalidEmail(err):
		return metrics.OutcomeInvalidEmail
	case domain.IsRateLimited(err):
		return metrics.OutcomeRateLimited
	case domain.IsStorage(err):
		return metrics.OutcomeStorage
	default:
		return metrics.OutcomeError
	}
}
