package totp

import (
	"testing"
	"time"
)

const testSecret = "JBSWY3DPEHPK3PXP"

func TestGenerateIsDeterministic(t *testing.T) {
	at := time.Unix(59, 0).UTC()
	a, err := Generate(testSecret, at)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testSecret, at)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("expected deterministic code, got %s vs %s", a, b)
	}
	if len(a) != 6 {
		t.Fatalf("expected 6 digit code, got %q", a)
	}
}

func TestVerifyAcceptsWithinWindow(t *testing.T) {
	base := time.Unix(1_700_000_000, 0).UTC()
	code, err := Generate(testSecret, base)
	if err != nil {
		t.Fatal(err)
	}

	// One step later (30s) should still verify within the ±1 window.
	later := base.Add(stepDuration)
	if _, ok, err := Verify(testSecret, code, later); err != nil || !ok {
		t.Fatalf("expected code to verify within window, ok=%v err=%v", ok, err)
	}

	// Two steps later (60s) is outside the window.
	tooLate := base.Add(2 * stepDuration)
	if _, ok, _ := Verify(testSecret, code, tooLate); ok {
		t.Fatal("expected code to be rejected outside the window")
	}
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	base := time.Unix(1_700_000_000, 0).UTC()
	if _, ok, _ := Verify(testSecret, "000000", base); ok {
		t.Fatal("expected wrong code to be rejected")
	}
}
