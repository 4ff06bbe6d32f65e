// Package totp implements RFC 6238 time-based one-time passwords: 30
// second steps, 6 digit codes, SHA-1 HMAC, with a ±1 step window to
// tolerate clock drift, the way spec.md §4.1 requires. No third-party OTP
// library appears anywhere in the retrieval pack, so this is built
// directly on crypto/hmac and crypto/sha1.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const (
	stepDuration = 30 * time.Second
	codeDigits   = 6
	// WindowSteps is how many steps before/after the current one are
	// still accepted, tolerating small clock skew.
	WindowSteps = 1
)

// GenerateSecret returns a fresh, Base32-encoded (no padding) shared
// secret suitable for display as a provisioning URI.
func GenerateSecret(randomBytes []byte) string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
}

// Counter returns the time step counter for t, per RFC 6238 §4.
func Counter(t time.Time) uint64 {
	return uint64(t.Unix()) / uint64(stepDuration.Seconds())
}

// code computes the HOTP value (RFC 4226) for the given secret and
// counter.
func code(secret string, counter uint64) (string, error) {
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(secret))
	if err != nil {
		return "", fmt.Errorf("totp: invalid secret encoding: %w", err)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < codeDigits; i++ {
		mod *= 10
	}
	value := truncated % mod

	return fmt.Sprintf("%0*d", codeDigits, value), nil
}

// Generate returns the current 6-digit code for secret at time t.
func Generate(secret string, t time.Time) (string, error) {
	return code(secret, Counter(t))
}

// Verify checks candidate against the secret across a ±WindowSteps
// window around t, returning the matched counter so the caller can
// reject replays at or below a previously used counter. ok is false if
// no step in the window matches.
func Verify(secret, candidate string, t time.Time) (matchedCounter uint64, ok bool, err error) {
	current := Counter(t)
	for delta := -WindowSteps; delta <= WindowSteps; delta++ {
		counter := uint64(int64(current) + int64(delta))
		want, genErr := code(secret, counter)
		if genErr != nil {
			return 0, false, genErr
		}
		if hmac.Equal([]byte(want), []byte(candidate)) {
			return counter, true, nil
		}
	}
	return 0, false, nil
}

// ProvisioningURI builds an otpauth:// URI suitable for QR-code display
// in authenticator apps.
func ProvisioningURI(issuer, accountName, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=%d&period=30",
		issuer, accountName, secret, issuer, codeDigits)
}
