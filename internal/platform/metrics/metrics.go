// Package metrics exposes the submission pipeline's Prometheus collectors.
//
// The collectors are registered on the registerer passed to New. Production
// code uses prometheus.DefaultRegisterer so /-/metrics serves them next to
// the Go runtime collectors; tests pass a fresh registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quote_digest"

// Submission variants.
const (
	VariantQuotes = "quotes"
	VariantFile   = "file"
)

// Submission outcomes, one per error class plus success.
const (
	OutcomeSuccess      = "success"
	OutcomeValidation   = "validation"
	OutcomeInvalidEmail = "invalid_email"
	OutcomeRateLimited  = "rate_limited"
	OutcomeStorage      = "storage"
	OutcomeError        = "error"
)

// Metrics holds the submission collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	submissions     *prometheus.CounterVec
	quotesStored    *prometheus.CounterVec
	extractions     *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	preferenceSaves *prometheus.CounterVec
}

// New creates and registers the collectors on reg.
// It panics if they are already registered there.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions handled, by variant and outcome.",
		}, []string{"variant", "outcome"}),
		quotesStored: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_stored_total",
			Help:      "Quotes written to the record store, by variant.",
		}, []string{"variant"}),
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Uploaded files parsed, by detected format.",
		}, []string{"format"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time spent handling a submission, by variant.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		preferenceSaves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_saves_total",
			Help:      "Preference updates handled, by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveSubmission records one finished submission.
func (m *Metrics) ObserveSubmission(variant, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.submissions.WithLabelValues(variant, outcome).Inc()
	m.duration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// AddQuotesStored counts quotes written for variant.
func (m *Metrics) AddQuotesStored(variant string, n int) {
	if m == nil {
		return
	}

	m.quotesStored.WithLabelValues(variant).Add(float64(n))
}

// ObserveExtraction counts a parsed upload by format.
func (m *Metrics) ObserveExtraction(format string) {
	if m == nil {
		return
	}

	m.extractions.WithLabelValues(format).Inc()
}

// ObservePreferenceSave records one preference update.
func (m *Metrics) ObservePreferenceSave(outcome string) {
	if m == nil {
		return
	}

	m.preferenceSaves.WithLabelValues(outcome).Inc()
}
