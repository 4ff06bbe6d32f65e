// Package tokens implements RS256 JWT issuance and local, no-round-trip
// verification for the shopfabric services, grounded on the teacher's
// services/gateway/services/auth/domain/auth/auth.go authManager shape
// (a config struct plus narrow, testable methods) but generalized from
// HMAC to RSA and extended with a key-id, token kind, and token-version
// claim per spec.md §3/§6.
package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Algorithm is pinned to RS256; nothing in this package ever signs or
// accepts another algorithm family.
const Algorithm = "RS256"

// Signer issues access and refresh tokens signed under a single active
// key pair.
type Signer struct {
	keyPair            *KeyPair
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	issuer             string
}

// NewSigner builds a Signer around the IdP's current key pair.
func NewSigner(kp *KeyPair, accessExpiry, refreshExpiry time.Duration, issuer string) *Signer {
	return &Signer{
		keyPair:            kp,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
		issuer:             issuer,
	}
}

// KeyID returns the key-id tokens are currently signed under.
func (s *Signer) KeyID() string { return s.keyPair.KeyID }

// Issued is a signed token plus the metadata callers need to return it
// to clients.
type Issued struct {
	Token     string
	ExpiresAt time.Time
	JTI       string
}

func (s *Signer) sign(claims *Claims) (*Issued, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.keyPair.KeyID

	signed, err := token.SignedString(s.keyPair.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("tokens: sign: %w", err)
	}
	return &Issued{Token: signed, ExpiresAt: claims.ExpiresAt.Time, JTI: claims.ID}, nil
}

// IssueAccessToken signs a short-lived access token for the given
// account, per spec.md §3 (15 minute default lifetime).
func (s *Signer) IssueAccessToken(accountID, username string, tokenVersion int64, isAdmin bool) (*Issued, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := &Claims{
		RegisteredClaims: newClaims(accountID, jti, now, now.Add(s.accessTokenExpiry)),
		Username:         username,
		Kind:             KindAccess,
		Version:          tokenVersion,
		IsAdmin:          isAdmin,
	}
	claims.Issuer = s.issuer
	return s.sign(claims)
}

// IssueRefreshToken signs a longer-lived refresh token, per spec.md §3
// (24 hour default lifetime).
func (s *Signer) IssueRefreshToken(accountID, username string, tokenVersion int64) (*Issued, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := &Claims{
		RegisteredClaims: newClaims(accountID, jti, now, now.Add(s.refreshTokenExpiry)),
		Username:         username,
		Kind:             KindRefresh,
		Version:          tokenVersion,
	}
	claims.Issuer = s.issuer
	return s.sign(claims)
}
