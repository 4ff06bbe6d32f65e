// Package tokenverify gives Catalog and the Order Orchestrator a
// shared way to verify access tokens locally, without a database
// round trip, per spec.md §4.4's key-acquisition and caching
// requirements. It is grounded on the teacher's authManager.ParseToken
// (a struct holding verification state, a narrow lookup method, logx
// for failure logging) generalized from a single HMAC secret to a
// refreshable, key-id-keyed cache of RSA public keys.
package tokenverify

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/security/tokens"
)

// Config controls key acquisition and refresh behavior, per spec.md
// §4.4's defaults.
type Config struct {
	// KeyFilePath is the filesystem path the IdP publishes its public
	// key under, read first if present.
	KeyFilePath string
	// FallbackURL is the IdP's public-key HTTP endpoint, polled with
	// bounded backoff if KeyFilePath is absent or unreadable.
	FallbackURL string
	// StartupTimeout bounds how long Acquire will poll before giving
	// up and failing the service to start, default 30s.
	StartupTimeout time.Duration
	// RefreshInterval controls how often the cache revalidates its
	// already-known keys, default 24h.
	RefreshInterval time.Duration
}

// withDefaults applies spec.md §4.4's stated defaults for any zero
// fields.
func (c Config) withDefaults() Config {
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = 30 * time.Second
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 24 * time.Hour
	}
	return c
}

type publicKeyResponse struct {
	PublicKey string `json:"public_key"`
	Algorithm string `json:"algorithm"`
	KeyID     string `json:"key_id"`
}

// Cache holds verifying keys keyed by key-id, refreshed on a timer and
// on demand when an unknown kid is seen. Readers never block on a
// refresh in progress; the last-known-good key set is served while a
// refresh runs, per spec.md §5.
type Cache struct {
	cfg Config

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey

	refreshMu sync.Mutex
}

// NewCache builds an empty Cache; call Acquire before serving traffic.
func NewCache(cfg Config) *Cache {
	return &Cache{cfg: cfg.withDefaults(), keys: make(map[string]*rsa.PublicKey)}
}

// Acquire blocks until at least one verifying key is obtained — first
// by reading KeyFilePath, then by polling FallbackURL with bounded
// backoff — or until StartupTimeout elapses, in which case the caller
// must fail its own startup per spec.md §4.4.
func (c *Cache) Acquire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.StartupTimeout)
	defer cancel()

	if c.cfg.KeyFilePath != "" {
		if kp, err := c.readKeyFile(); err == nil {
			c.store(kp.KeyID, kp.PublicKey)
			return nil
		}
	}

	delay := 200 * time.Millisecond
	for {
		if kid, pub, err := c.fetchFromHTTP(ctx); err == nil {
			c.store(kid, pub)
			return nil
		} else {
			logx.WithContext(ctx).Errorf("tokenverify: public key fetch attempt failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("tokenverify: timed out acquiring a verifying key: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > 5*time.Second {
			delay = 5 * time.Second
		}
	}
}

func (c *Cache) readKeyFile() (*tokens.KeyPair, error) {
	data, err := os.ReadFile(c.cfg.KeyFilePath)
	if err != nil {
		return nil, fmt.Errorf("tokenverify: read key file: %w", err)
	}
	pub, err := tokens.DecodePublicKeyPEM(data)
	if err != nil {
		return nil, err
	}
	kid, err := tokens.KeyIDFor(pub)
	if err != nil {
		return nil, err
	}
	return &tokens.KeyPair{KeyID: kid, PublicKey: pub}, nil
}

func (c *Cache) fetchFromHTTP(ctx context.Context) (string, *rsa.PublicKey, error) {
	if c.cfg.FallbackURL == "" {
		return "", nil, fmt.Errorf("tokenverify: no fallback URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.FallbackURL, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("tokenverify: public key endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	var parsed publicKeyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("tokenverify: decode public key response: %w", err)
	}

	pub, err := tokens.DecodePublicKeyPEM([]byte(parsed.PublicKey))
	if err != nil {
		return "", nil, err
	}
	return parsed.KeyID, pub, nil
}

func (c *Cache) store(kid string, pub *rsa.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[kid] = pub
}

// Lookup resolves a kid, implementing tokens.KeyLookup. If the kid is
// unknown it triggers an immediate, synchronous refresh before final
// rejection, per spec.md §4.4.
func (c *Cache) Lookup(kid string) (*rsa.PublicKey, error) {
	c.mu.RLock()
	pub, ok := c.keys[kid]
	c.mu.RUnlock()
	if ok {
		return pub, nil
	}

	if err := c.refreshOnce(context.Background()); err != nil {
		return nil, fmt.Errorf("tokenverify: refresh after unknown kid %q: %w", kid, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	pub, ok = c.keys[kid]
	if !ok {
		return nil, tokens.ErrUnknownKeyID
	}
	return pub, nil
}

func (c *Cache) refreshOnce(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.cfg.KeyFilePath != "" {
		if kp, err := c.readKeyFile(); err == nil {
			c.store(kp.KeyID, kp.PublicKey)
			return nil
		}
	}
	kid, pub, err := c.fetchFromHTTP(ctx)
	if err != nil {
		return err
	}
	c.store(kid, pub)
	return nil
}

// StartRefreshLoop periodically revalidates the cache at
// RefreshInterval until ctx is cancelled. Run it in its own goroutine
// from the owning service's main.
func (c *Cache) StartRefreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.refreshOnce(ctx); err != nil {
				logx.WithContext(ctx).Errorf("tokenverify: periodic refresh failed: %v", err)
			}
		}
	}
}

// Verify verifies an access or refresh token against the cache.
func (c *Cache) Verify(tokenString string) (*tokens.Claims, error) {
	return tokens.Verify(tokenString, c.Lookup)
}
