package tokenverify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopfabric/backend/pkg/security/tokens"
)

func TestAcquireReadsKeyFile(t *testing.T) {
	kp, err := tokens.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pemBytes, err := tokens.EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "jwt_public.pem")
	if err := os.WriteFile(path, pemBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(Config{KeyFilePath: path, StartupTimeout: time.Second})
	if err := cache.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	pub, err := cache.Lookup(kp.KeyID)
	if err != nil {
		t.Fatal(err)
	}
	if pub.N.Cmp(kp.PublicKey.N) != 0 {
		t.Fatal("expected cached key to match the key file")
	}
}

func TestAcquireFallsBackToHTTP(t *testing.T) {
	kp, err := tokens.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pemBytes, err := tokens.EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(publicKeyResponse{
			PublicKey: string(pemBytes),
			Algorithm: tokens.Algorithm,
			KeyID:     kp.KeyID,
		})
	}))
	defer server.Close()

	cache := NewCache(Config{FallbackURL: server.URL, StartupTimeout: 2 * time.Second})
	if err := cache.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	pub, err := cache.Lookup(kp.KeyID)
	if err != nil {
		t.Fatal(err)
	}
	if pub.N.Cmp(kp.PublicKey.N) != 0 {
		t.Fatal("expected cached key to match the HTTP-served key")
	}
}

func TestAcquireTimesOutWhenUnreachable(t *testing.T) {
	cache := NewCache(Config{FallbackURL: "http://127.0.0.1:1", StartupTimeout: 50 * time.Millisecond})
	if err := cache.Acquire(context.Background()); err == nil {
		t.Fatal("expected Acquire to fail when no key source is reachable")
	}
}

func TestLookupRefreshesOnUnknownKid(t *testing.T) {
	kp, err := tokens.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pemBytes, err := tokens.EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(publicKeyResponse{
			PublicKey: string(pemBytes),
			Algorithm: tokens.Algorithm,
			KeyID:     kp.KeyID,
		})
	}))
	defer server.Close()

	cache := NewCache(Config{FallbackURL: server.URL, StartupTimeout: 2 * time.Second})

	pub, err := cache.Lookup(kp.KeyID)
	if err != nil {
		t.Fatal(err)
	}
	if pub.N.Cmp(kp.PublicKey.N) != 0 {
		t.Fatal("expected lookup to resolve via an on-demand refresh")
	}
	if calls == 0 {
		t.Fatal("expected an HTTP fetch to occur during lookup of an unknown kid")
	}
}

func TestVerifyEndToEnd(t *testing.T) {
	kp, err := tokens.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	signer := tokens.NewSigner(kp, 15*time.Minute, 24*time.Hour, "shopfabric-idp")
	issued, err := signer.IssueAccessToken("1", "zoe", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	pemBytes, err := tokens.EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "jwt_public.pem")
	if err := os.WriteFile(path, pemBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(Config{KeyFilePath: path, StartupTimeout: time.Second})
	if err := cache.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	claims, err := cache.Verify(issued.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "zoe" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
