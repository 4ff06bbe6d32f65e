package tokens

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// KeyBits is the RSA modulus size generated on first boot, per spec.md §4.6.
const KeyBits = 4096

// PublicKeyFileName is the file the IdP publishes on its persistent
// volume for dependents that can read it directly rather than polling
// the HTTP endpoint, per spec.md §6 ($KEY_DIR/jwt_public.pem).
const PublicKeyFileName = "jwt_public.pem"

const privateKeyFileName = "jwt_private.pem"

// KeyPair bundles a signing key with the opaque key-id it is published
// under.
type KeyPair struct {
	KeyID      string
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

// KeyIDFor derives a stable, opaque key-id from a public key's SPKI
// encoding — the first 16 bytes of its SHA-256 fingerprint,
// base64url-encoded. Deterministic so
// reloading the same key pair across restarts yields the same kid.
func KeyIDFor(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("tokens: marshal public key: %w", err)
	}
	sum := sha256.Sum256(der)
	return base64.RawURLEncoding.EncodeToString(sum[:16]), nil
}

// GenerateKeyPair creates a fresh 4096-bit RSA key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		return nil, fmt.Errorf("tokens: generate key: %w", err)
	}
	kid, err := KeyIDFor(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{KeyID: kid, PrivateKey: priv, PublicKey: &priv.PublicKey}, nil
}

// LoadOrGenerateKeyPair loads an existing key pair from dir, generating
// and persisting a new one on first boot, per spec.md §4.6. The private
// key file is written with mode 0600.
func LoadOrGenerateKeyPair(dir string) (*KeyPair, error) {
	privPath := filepath.Join(dir, privateKeyFileName)

	if data, err := os.ReadFile(privPath); err == nil {
		return loadKeyPair(data)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("tokens: read private key: %w", err)
	}

	kp, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := persistKeyPair(dir, kp); err != nil {
		return nil, err
	}
	return kp, nil
}

func loadKeyPair(pemBytes []byte) (*KeyPair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("tokens: no PEM block in private key file")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("tokens: parse private key: %w", err)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("tokens: private key is not RSA")
	}
	kid, err := KeyIDFor(&priv.PublicKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{KeyID: kid, PrivateKey: priv, PublicKey: &priv.PublicKey}, nil
}

func persistKeyPair(dir string, kp *KeyPair) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("tokens: create key dir: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(kp.PrivateKey)
	if err != nil {
		return fmt.Errorf("tokens: marshal private key: %w", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	if err := os.WriteFile(filepath.Join(dir, privateKeyFileName), privPEM, 0o600); err != nil {
		return fmt.Errorf("tokens: write private key: %w", err)
	}

	pubPEM, err := EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, PublicKeyFileName), pubPEM, 0o644); err != nil {
		return fmt.Errorf("tokens: write public key: %w", err)
	}
	return nil
}

// EncodePublicKeyPEM renders pub as a PKCS#8/SubjectPublicKeyInfo PEM
// block, per spec.md §3's PublicKey artifact definition.
func EncodePublicKeyPEM(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("tokens: marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// DecodePublicKeyPEM parses a PEM-encoded SubjectPublicKeyInfo block back
// into an RSA public key.
func DecodePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("tokens: no PEM block in public key data")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("tokens: parse public key: %w", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("tokens: public key is not RSA")
	}
	return pub, nil
}
