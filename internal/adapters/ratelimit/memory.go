// Package ratelimit provides the in-process submission rate limiter.
//
// Counters live in memory only. They reset on restart and are not shared
// between instances, so the limit is best-effort.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-digest/internal/domain"
)

// Defaults match the submission budget of 10 per rolling minute.
const (
	DefaultLimit   = 10
	DefaultWindow  = time.Minute
	DefaultMaxKeys = 10000
)

// Config configures a MemoryLimiter. Zero values fall back to the defaults.
type Config struct {
	Limit   int
	Window  time.Duration
	MaxKeys int

	// Now is the clock. Tests inject a fake one.
	Now func() time.Time
}

// MemoryLimiter is a sliding-window limiter keyed by an arbitrary string.
// It remembers the timestamp of each admitted attempt within the window.
// When MaxKeys keys are tracked, expired keys are dropped first and then
// the key with the stalest latest attempt.
type MemoryLimiter struct {
	limit   int
	window  time.Duration
	maxKeys int
	now     func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewMemoryLimiter creates a limiter from cfg.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = DefaultMaxKeys
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &MemoryLimiter{
		limit:   cfg.Limit,
		window:  cfg.Window,
		maxKeys: cfg.MaxKeys,
		now:     cfg.Now,
		hits:    make(map[string][]time.Time),
	}
}

// Allow implements ports.RateLimiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) error {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	hits, tracked := l.hits[key]
	hits = prune(hits, cutoff)

	if len(hits) >= l.limit {
		l.hits[key] = hits
		retryAfter := hits[0].Add(l.window).Sub(now)

		return domain.NewRateLimitedError(l.limit, l.window, retryAfter)
	}

	if !tracked && len(l.hits) >= l.maxKeys {
		l.evict(cutoff)
	}

	l.hits[key] = append(hits, now)

	return nil
}

// Len reports how many keys are tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.hits)
}

// evict frees at least one slot. Caller holds mu.
func (l *MemoryLimiter) evict(cutoff time.Time) {
	for k, hits := range l.hits {
		if len(prune(hits, cutoff)) == 0 {
			delete(l.hits, k)
		}
	}

	if len(l.hits) < l.maxKeys {
		return
	}

	var (
		stalest string
		oldest  time.Time
		found   bool
	)

	for k, hits := range l.hits {
		if len(hits) == 0 {
			continue
		}

		last := hits[len(hits)-1]
		if !found || last.Before(oldest) {
			stalest, oldest, found = k, last, true
		}
	}

	if found {
		delete(l.hits, stalest)
	}
}

// prune drops timestamps at or before cutoff. hits is ascending.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}

	return hits[i:]
}
