// Package resilience wraps outbound RPC calls with exponential-backoff
// retry and a circuit breaker, per spec.md §4.4's resilient-RPC
// requirement. It is grounded on github.com/cenkalti/backoff/v4 — a
// dependency already present (transitively, via the RPC stack) in the
// example pack's go.mod — promoted here to a direct, deliberately used
// dependency rather than a hand-rolled sleep loop.
package resilience

import (
	"context"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig bounds a WithRetry call, per spec.md §4.4's default
// policy (3 attempts, 1s base delay, 10s cap, exponential with jitter).
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig matches spec.md §4.5's stated defaults: up to 3
// attempts, base=1s, cap=10s, uniform jitter in [0, 0.5].
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

func newBackOff(cfg RetryConfig) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = cfg.BaseDelay
	eb.MaxInterval = cfg.MaxDelay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	return backoff.WithMaxRetries(upwardJitter{eb}, uint64(cfg.MaxAttempts-1))
}

// upwardJitter scales each capped wait by a uniform factor in [1, 1.5].
type upwardJitter struct{ backoff.BackOff }

func (j upwardJitter) NextBackOff() time.Duration {
	d := j.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	return time.Duration(float64(d) * (1 + rand.Float64()*0.5))
}

// Retryable is implemented by errors that should trigger another
// retry attempt. Errors that do not implement it (e.g. validation
// failures) are returned to the caller immediately, per spec.md §4.4
// ("only transport-level failures are retried, not application
// errors").
type Retryable interface {
	Retryable() bool
}

// IsRetryable reports whether err should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	r, ok := err.(Retryable)
	return ok && r.Retryable()
}

// WithRetry runs fn under exponential backoff with jitter, retrying
// only errors that satisfy Retryable. ctx cancellation aborts the
// retry loop immediately.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	attempt := func() error {
		err := fn(ctx)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(attempt, backoff.WithContext(newBackOff(cfg), ctx))
}
