package resilience

import "context"

// Call runs fn under both a circuit breaker and retry policy: the
// breaker gates whether an attempt is made at all, and each allowed
// attempt is retried per cfg on transport-level failure, per spec.md
// §4.4 ("retry wrapped by a circuit breaker, in that order — retries
// never bypass an open breaker").
func Call(ctx context.Context, breaker *Breaker, cfg RetryConfig, fn func(ctx context.Context) error) error {
	return breaker.Call(func() error {
		return WithRetry(ctx, cfg, fn)
	})
}
