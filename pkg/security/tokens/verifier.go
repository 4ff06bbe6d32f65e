package tokens

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnknownKeyID is returned by KeyLookup implementations when a token's
// kid does not (yet) match any known verifying key, so the caller can
// trigger a refresh before final rejection, per spec.md §4.4.
var ErrUnknownKeyID = errors.New("tokens: unknown key id")

// KeyLookup resolves a key-id to a verifying public key.
type KeyLookup func(kid string) (*rsa.PublicKey, error)

// Verify parses and validates tokenString: RS256 signature under the
// key named by its kid header, algorithm pinned to RS256 (the "none"
// algorithm and any HMAC family are rejected unconditionally), and a
// not-expired exp claim. It does not check kind or consult a database —
// callers that need kind==access or a database-backed token-version
// check layer that on top (spec.md §4.4: "no database lookup — the
// token is trusted because it is signed").
func Verify(tokenString string, lookup KeyLookup) (*Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("tokens: token header has no kid")
		}
		return lookup(kid)
	}, jwt.WithValidMethods([]string{Algorithm}))

	if err != nil {
		return nil, fmt.Errorf("tokens: verify: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("tokens: token not valid")
	}
	return &claims, nil
}

// RequireKind checks the verified claims carry the expected kind
// (access vs refresh), per spec.md §4.1's refresh/verification contract.
func RequireKind(claims *Claims, want Kind) error {
	if claims.Kind != want {
		return fmt.Errorf("tokens: expected kind %q, got %q", want, claims.Kind)
	}
	return nil
}
