// Package encryption implements field-level AES-256-GCM encryption for
// values that must never be readable directly in the database, per
// spec.md §4.2. It is grounded on the sealed-secret AES-GCM boundary
// found in the example pack (nonce‖ciphertext‖tag framing, one key
// read from configuration, never logged), adapted from a file-backed
// store to an in-process encode/decode pair used at the repository
// persistence boundary.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Cipher encrypts and decrypts field values under a single key. It
// never logs plaintext or key material.
type Cipher struct {
	key []byte
	gcm cipher.AEAD
}

// New builds a Cipher from a raw 32-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption: key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: create gcm: %w", err)
	}
	return &Cipher{key: key, gcm: gcm}, nil
}

// NewFromBase64 decodes a base64-encoded key, as read from
// configuration, and builds a Cipher from it.
func NewFromBase64(encoded string) (*Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("encryption: decode key: %w", err)
	}
	return New(key)
}

// GenerateKey produces a fresh random 32-byte key, base64-encoded for
// storage in configuration or a secret manager. It is a setup-time
// helper, not used on the request path.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("encryption: generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts plaintext and returns a self-framed nonce‖ciphertext‖tag
// blob, base64-encoded so it fits cleanly into a text database column.
func (c *Cipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("encryption: generate nonce: %w", err)
	}
	sealed := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. It fails closed: any truncation, tampering, or
// wrong-key attempt returns an error rather than partial plaintext.
func (c *Cipher) Open(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("encryption: decode: %w", err)
	}
	if len(sealed) < c.gcm.NonceSize() {
		return "", fmt.Errorf("encryption: ciphertext too short")
	}
	nonce, ciphertext := sealed[:c.gcm.NonceSize()], sealed[c.gcm.NonceSize():]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("encryption: open: %w", err)
	}
	return string(plaintext), nil
}

// BlindIndex derives a deterministic HMAC-SHA256 digest of plaintext
// under the same key, for equality lookups against a column that also
// carries Seal's randomized, non-searchable ciphertext (e.g. "find this
// owner's orders" without ever storing the owner in the clear).
func (c *Cipher) BlindIndex(plaintext string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}
