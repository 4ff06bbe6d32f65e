package errorsx

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodeByKind(t *testing.T) {
	cases := map[Kind]int{
		KindInputInvalid:          http.StatusBadRequest,
		KindAuthInvalid:           http.StatusUnauthorized,
		KindNotFound:              http.StatusNotFound,
		KindInsufficientStock:     http.StatusBadRequest,
		KindDependencyUnavailable: http.StatusServiceUnavailable,
	}
	for kind, want := range cases {
		e := New(kind, "boom")
		if got := e.StatusCode(); got != want {
			t.Errorf("StatusCode(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestWithDetail(t *testing.T) {
	e := New(KindNotFound, "missing product").WithDetail("product_id", int64(999))
	if e.Detail["product_id"] != int64(999) {
		t.Fatalf("detail not attached: %+v", e.Detail)
	}
}

func TestWithStatusOverridesKindDefault(t *testing.T) {
	e := New(KindNotFound, "product not found").WithStatus(http.StatusBadRequest)
	if got := e.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("StatusCode() = %d, want %d", got, http.StatusBadRequest)
	}
	if e.Kind != KindNotFound {
		t.Fatalf("expected WithStatus to leave Kind unchanged, got %s", e.Kind)
	}
}

func TestIsComparesKindOnly(t *testing.T) {
	a := New(KindNotFound, "product 1 missing")
	b := New(KindNotFound, "user 2 missing")
	if !errors.Is(a, b) {
		t.Fatal("expected Is to match on Kind regardless of message")
	}

	c := New(KindConflictState, "status transition invalid")
	if errors.Is(a, c) {
		t.Fatal("expected Is to differ across kinds")
	}
}
