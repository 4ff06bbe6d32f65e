package refreshstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newTestStore connects to a real Redis instance when REDIS_ADDR is
// set; it is skipped otherwise since this package's correctness is
// inseparable from Redis's SETNX atomicity.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis-backed refreshstore test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	store, err := New(client)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestConsumeForRotationIsOneShot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := "refresh-token-under-test"

	first, err := store.ConsumeForRotation(ctx, token, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if !first {
		t.Fatal("expected first rotation attempt to succeed")
	}

	second, err := store.ConsumeForRotation(ctx, token, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if second {
		t.Fatal("expected second rotation attempt on the same token to be rejected as a replay")
	}
}

func TestRevokeMarksTokenRevoked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := "revoke-token-under-test"

	revoked, err := store.IsRevoked(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if revoked {
		t.Fatal("expected a fresh token to not be revoked")
	}

	if err := store.Revoke(ctx, token, time.Minute); err != nil {
		t.Fatal(err)
	}

	revoked, err = store.IsRevoked(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked after Revoke")
	}
}
