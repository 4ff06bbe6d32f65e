package rpctransport

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// retryableError wraps a transport-level failure so pkg/resilience.WithRetry
// recognizes it via the Retryable interface.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string   { return e.err.Error() }
func (e *retryableError) Unwrap() error   { return e.err }
func (e *retryableError) Retryable() bool { return true }

// ClassifyError wraps err as retryable when it is a transport failure,
// context deadline exceeded, or a server-side Unavailable/ResourceExhausted
// gRPC status, per spec.md §4.5 — everything else (logical errors like
// "user not found") passes through unwrapped and is treated as permanent
// by pkg/resilience.WithRetry.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &retryableError{err: err}
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded:
			return &retryableError{err: err}
		}
	}
	return err
}
