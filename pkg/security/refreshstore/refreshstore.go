// Package refreshstore tracks refresh-token rotation and revocation
// state in Redis, per spec.md §4.4's resolved Open Question ("refresh
// tokens rotate; the previous token is invalidated on use"). It is
// grounded on gourdiantoken's TokenRepository interface and its
// RedisTokenRepository implementation: those types already express
// exactly this concern (mark-revoked, mark-rotated, atomic
// rotate-once) against a *redis.Client, the same client this system
// already depends on for caching, so they are reused here as ordinary
// library dependencies rather than re-implemented by hand.
package refreshstore

import (
	"context"
	"fmt"
	"time"

	"github.com/gourdian25/gourdiantoken"
	"github.com/redis/go-redis/v9"
)

// Store rotates and revokes refresh tokens for an account.
type Store struct {
	repo gourdiantoken.TokenRepository
}

// New builds a Store backed by Redis.
func New(client *redis.Client) (*Store, error) {
	repo, err := gourdiantoken.NewRedisTokenRepository(client)
	if err != nil {
		return nil, fmt.Errorf("refreshstore: %w", err)
	}
	return &Store{repo: repo}, nil
}

// Revoke marks token permanently unusable for the remainder of its
// natural lifetime, per spec.md §4.1; the IdP's refresh path rejects a
// token once IsRevoked reports it. No IdP endpoint calls Revoke.
func (s *Store) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.repo.MarkTokenRevoke(ctx, gourdiantoken.RefreshToken, token, ttl); err != nil {
		return fmt.Errorf("refreshstore: revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether token was previously revoked.
func (s *Store) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.repo.IsTokenRevoked(ctx, gourdiantoken.RefreshToken, token)
	if err != nil {
		return false, fmt.Errorf("refreshstore: is revoked: %w", err)
	}
	return revoked, nil
}

// ConsumeForRotation atomically marks a refresh token as spent for
// rotation. It returns ok=false when the token was already rotated —
// the caller must treat this as a replay and refuse to issue a new
// token pair, per spec.md §4.4.
func (s *Store) ConsumeForRotation(ctx context.Context, token string, ttl time.Duration) (ok bool, err error) {
	rotated, err := s.repo.MarkTokenRotatedAtomic(ctx, token, ttl)
	if err != nil {
		return false, fmt.Errorf("refreshstore: consume for rotation: %w", err)
	}
	return rotated, nil
}

// WasRotated reports whether token has already been consumed by a
// prior rotation, independent of ConsumeForRotation's atomic check —
// useful for read-only replay diagnostics.
func (s *Store) WasRotated(ctx context.Context, token string) (bool, error) {
	rotated, err := s.repo.IsTokenRotated(ctx, token)
	if err != nil {
		return false, fmt.Errorf("refreshstore: was rotated: %w", err)
	}
	return rotated, nil
}
