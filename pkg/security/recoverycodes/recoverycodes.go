// Package recoverycodes generates and verifies single-use 2FA recovery
// codes, grounded on the teacher's auth.authManager password hashing
// (bcrypt) and random-token generation (crypto/rand + base32/base64)
// idioms, per spec.md §4.5.
package recoverycodes

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BatchSize is the number of recovery codes issued per generation, per
// spec.md §4.5.
const BatchSize = 10

// codeBytes is the amount of entropy per code before encoding; 5 bytes
// of base32 (no padding) renders as an 8-character code.
const codeBytes = 5

// groupSize formats codes as XXXX-XXXX for readability during manual
// entry.
const groupSize = 4

// Generate produces BatchSize unique, high-entropy recovery codes in
// their plaintext (user-facing) form. Callers must hash each one with
// Hash before persisting it and must show the plaintext to the user
// exactly once.
func Generate() ([]string, error) {
	codes := make([]string, 0, BatchSize)
	seen := make(map[string]struct{}, BatchSize)

	for len(codes) < BatchSize {
		buf := make([]byte, codeBytes)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("recoverycodes: generate: %w", err)
		}
		raw := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		codes = append(codes, format(raw))
	}
	return codes, nil
}

func format(raw string) string {
	if len(raw) <= groupSize {
		return raw
	}
	return raw[:groupSize] + "-" + raw[groupSize:]
}

// normalize strips the formatting separator and case so a code is
// comparable regardless of how a user retyped it.
func normalize(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), "-", ""))
}

// Hash produces a one-way bcrypt hash of a recovery code for storage,
// never the plaintext.
func Hash(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(normalize(code)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("recoverycodes: hash: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether candidate matches hash, in constant time with
// respect to the comparison itself (bcrypt's comparison is already
// constant-time over the digest; normalize avoids leaking format
// differences through control flow).
func Matches(hash, candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalize(candidate)))
	return err == nil
}

// ConstantTimeEqual is used for comparisons that must not go through
// bcrypt (e.g. comparing two already-normalized plaintexts in tests).
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
