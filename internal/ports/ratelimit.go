package ports

import "context"

// RateLimiter admits or rejects work per key, typically an email address.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within budget.
	// Returns a *domain.RateLimitedError (matching domain.ErrRateLimited) when
	// the key has used up its budget. A rejected attempt is not counted.
	Allow(ctx context.Context, key string) error
}
