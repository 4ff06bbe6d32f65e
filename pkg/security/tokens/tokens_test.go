package tokens

import (
	"crypto/rsa"
	"testing"
	"time"
)

func newTestSigner(t *testing.T) (*Signer, *KeyPair) {
	t.Helper()
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	return NewSigner(kp, 15*time.Minute, 24*time.Hour, "shopfabric-idp"), kp
}

func lookupFor(kp *KeyPair) KeyLookup {
	return func(kid string) (*rsa.PublicKey, error) {
		if kid != kp.KeyID {
			return nil, ErrUnknownKeyID
		}
		return kp.PublicKey, nil
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	signer, kp := newTestSigner(t)

	issued, err := signer.IssueAccessToken("42", "alice", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(issued.Token, lookupFor(kp))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "42" || claims.Username != "alice" || claims.Kind != KindAccess || claims.Version != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTamperedSignatureFailsVerification(t *testing.T) {
	signer, kp := newTestSigner(t)
	issued, err := signer.IssueAccessToken("1", "bob", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	tampered := issued.Token[:len(issued.Token)-1] + flipLastChar(issued.Token)
	if _, err := Verify(tampered, lookupFor(kp)); err == nil {
		t.Fatal("expected tampered token to fail verification")
	}
}

func flipLastChar(s string) string {
	if len(s) == 0 {
		return s
	}
	last := s[len(s)-1]
	if last == 'A' {
		return "Q"
	}
	return "A"
}

func TestUnknownKeyIDRejected(t *testing.T) {
	signer, _ := newTestSigner(t)
	other, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	issued, err := signer.IssueAccessToken("1", "carol", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Verify(issued.Token, lookupFor(other)); err == nil {
		t.Fatal("expected verification under the wrong key to fail")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	signer := NewSigner(kp, -1*time.Minute, 24*time.Hour, "shopfabric-idp")

	issued, err := signer.IssueAccessToken("1", "dave", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Verify(issued.Token, lookupFor(kp)); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestRequireKindDistinguishesAccessAndRefresh(t *testing.T) {
	signer, kp := newTestSigner(t)
	refresh, err := signer.IssueRefreshToken("1", "erin", 1)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Verify(refresh.Token, lookupFor(kp))
	if err != nil {
		t.Fatal(err)
	}
	if err := RequireKind(claims, KindAccess); err == nil {
		t.Fatal("expected refresh token to fail an access-kind check")
	}
	if err := RequireKind(claims, KindRefresh); err != nil {
		t.Fatal("expected refresh token to pass a refresh-kind check")
	}
}

func TestPublicKeyPEMRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pemBytes, err := EncodePublicKeyPEM(kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodePublicKeyPEM(pemBytes)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.N.Cmp(kp.PublicKey.N) != 0 {
		t.Fatal("decoded public key modulus does not match original")
	}
}
