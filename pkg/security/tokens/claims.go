package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes access tokens from refresh tokens within the same
// signing scheme, per spec.md §3 (IssuedToken.kind).
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the payload signed into every token this system issues.
// Field names match spec.md §6's wire contract exactly:
// {sub, username, iat, exp, kind, ver, jti}, plus is_admin for the
// resolved Open Question on admin authorization.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Kind     Kind   `json:"kind"`
	Version  int64  `json:"ver"`
	IsAdmin  bool   `json:"is_admin"`
}

// newClaims builds the RegisteredClaims portion shared by access and
// refresh tokens.
func newClaims(subject, jti string, issuedAt, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
}
