// Package errorsx defines the error taxonomy shared across the IdP,
// Catalog, and Orchestrator services, and wires it into go-zero's HTTP
// error encoder so every handler that calls httpx.ErrorCtx produces a
// stable {code, message} body instead of go-zero's default plain-text
// response.
package errorsx

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Kind is a machine-readable, non-transport-specific error discriminator.
type Kind string

const (
	KindInputInvalid         Kind = "input_invalid"
	KindAuthMissing          Kind = "auth_missing"
	KindAuthInvalid          Kind = "auth_invalid"
	KindAuthExpired          Kind = "auth_expired"
	KindTwoFactorRequired    Kind = "two_factor_required"
	KindTwoFactorInvalid     Kind = "two_factor_invalid"
	KindNotFound             Kind = "not_found"
	KindConflictState        Kind = "conflict_state"
	KindInsufficientStock    Kind = "insufficient_inventory"
	KindDependencyUnavailable Kind = "dependency_unavailable"
	KindInternal             Kind = "internal"
)

var statusByKind = map[Kind]int{
	KindInputInvalid:          http.StatusBadRequest,
	KindAuthMissing:           http.StatusUnauthorized,
	KindAuthInvalid:           http.StatusUnauthorized,
	KindAuthExpired:           http.StatusUnauthorized,
	KindTwoFactorRequired:     http.StatusUnauthorized,
	KindTwoFactorInvalid:      http.StatusUnauthorized,
	KindNotFound:              http.StatusNotFound,
	KindConflictState:         http.StatusConflict,
	KindInsufficientStock:     http.StatusBadRequest,
	KindDependencyUnavailable: http.StatusServiceUnavailable,
	KindInternal:              http.StatusInternalServerError,
}

// Error is the concrete error type every logic layer returns. Handlers
// pass it straight to httpx.ErrorCtx, which consults the encoder
// registered by Register below.
type Error struct {
	Kind    Kind
	Message string
	// Detail carries discriminator-specific context, e.g. the product id
	// on InsufficientInventory or NotFound.
	Detail map[string]any
	// status overrides the kind's default transport status when nonzero.
	// Needed where the same logical kind transports differently across
	// call sites — e.g. spec.md §4.3 requires an unknown product id
	// during order creation to transport as 400, not NotFound's usual 404,
	// while still carrying the NotFound discriminator in the body.
	status int
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetail attaches discriminator context and returns the same error for
// chaining at the call site.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Detail == nil {
		e.Detail = make(map[string]any)
	}
	e.Detail[key] = value
	return e
}

// WithStatus overrides the transport status this error reports,
// keeping the Kind discriminator in the body unchanged. Returns the
// same error for chaining at the call site.
func (e *Error) WithStatus(status int) *Error {
	e.status = status
	return e
}

// Is supports errors.Is against a bare Kind sentinel comparison pattern:
// errors.Is(err, errorsx.New(errorsx.KindNotFound, "")) compares only Kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// StatusCode returns the HTTP transport status for the error: the
// per-call override set by WithStatus if present, otherwise the
// kind's default.
func (e *Error) StatusCode() int {
	if e.status != 0 {
		return e.status
	}
	if code, ok := statusByKind[e.Kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// body is the stable wire shape returned to clients.
type body struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Register installs the shared HTTP error encoder. Call once per process,
// from main, before the rest server starts accepting requests — mirrors
// the teacher's one-time setup calls in each service's main function.
func Register() {
	httpx.SetErrorHandlerCtx(func(_ context.Context, err error) (int, any) {
		var e *Error
		if errors.As(err, &e) {
			return e.StatusCode(), body{Code: string(e.Kind), Message: e.Message, Detail: e.Detail}
		}
		return http.StatusBadRequest, body{Code: string(KindInputInvalid), Message: err.Error()}
	})
}

// Internal wraps an unexpected error as a KindInternal Error, the way the
// spec requires ("surfaces as a generic failure with a correlation id in
// logs" — the correlation id itself is the request-scoped logx trace id
// already emitted by the caller's logger, not duplicated here).
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error"}
}
