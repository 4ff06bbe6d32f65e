package resilience

import (
	"fmt"
	"sync"
	"time"
)

// State is a circuit breaker's current mode.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned by Breaker.Allow when the breaker is
// currently open and not yet due for a half-open probe, or when it is
// half-open and its single probe is still in flight.
type ErrBreakerOpen struct {
	Dependency string
}

func (e *ErrBreakerOpen) Error() string {
	return fmt.Sprintf("resilience: circuit breaker open for %s", e.Dependency)
}

// BreakerConfig tunes a Breaker, per spec.md §4.4's defaults: five
// consecutive failures trip the breaker, which resets to half-open
// after 30 seconds.
type BreakerConfig struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}

// DefaultBreakerConfig matches spec.md §4.4's stated defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
	}
}

// Breaker is a mutex-guarded closed/open/half-open circuit breaker for
// a single downstream dependency (e.g. "idp-rpc", "catalog-rpc").
type Breaker struct {
	name   string
	cfg    BreakerConfig
	mu     sync.Mutex
	state  State
	fails  int
	openAt time.Time
}

// NewBreaker builds a Breaker for a named dependency, starting closed.
func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	return &Breaker{name: name, cfg: cfg, state: StateClosed}
}

// Allow reports whether a call may proceed, transitioning an expired
// open breaker into a single half-open probe.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if time.Since(b.openAt) < b.cfg.ResetTimeout {
			return &ErrBreakerOpen{Dependency: b.name}
		}
		// First caller past the reset timeout becomes the sole
		// half-open probe; the state flip happens here, under the
		// lock, so every other concurrent caller lands in the
		// StateHalfOpen case below until this probe resolves.
		b.state = StateHalfOpen
		return nil
	case StateHalfOpen:
		return &ErrBreakerOpen{Dependency: b.name}
	default:
		return nil
	}
}

// RecordSuccess closes the breaker and clears its failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fails = 0
	b.state = StateClosed
}

// RecordFailure increments the failure count, tripping the breaker
// open once FailureThreshold is reached. A failed half-open probe
// reopens the breaker immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.trip()
		return
	}

	b.fails++
	if b.fails >= b.cfg.FailureThreshold {
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openAt = time.Now()
	b.fails = 0
}

// State reports the breaker's current state, for health endpoints and
// tests.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Call runs fn if the breaker allows it, recording success/failure on
// the outcome.
func (b *Breaker) Call(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}
