package crypto_test

import (
	"crypto/rsa"
	"errors"
	"testing"

	"sigquery/internal/crypto"
)

func TestNewIdentity_SelfSignedCertificate(t *testing.T) {
	id, err := crypto.NewIdentity("responder", crypto.RSAProvider{Bits: 2048})
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	cert := id.Public()
	if cert.Subject.CommonName != "responder" {
		t.Fatalf("common name = %q, want responder", cert.Subject.CommonName)
	}
	// The certificate is an end-entity leaf, not a CA, so check the raw
	// signature over its own TBS bytes.
	if err := cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature); err != nil {
		t.Fatalf("certificate not self-signed: %v", err)
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok || !pub.Equal(&id.Private.PublicKey) {
		t.Fatal("certificate does not carry the identity public key")
	}
	if len(id.Fingerprint()) != 20 {
		t.Fatalf("fingerprint length = %d, want 20", len(id.Fingerprint()))
	}
}

func TestIdentityFromKey_ReissueKeepsFingerprint(t *testing.T) {
	id, err := crypto.NewIdentity("requester", crypto.RSAProvider{})
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	again, err := crypto.IdentityFromKey("requester", id.Private)
	if err != nil {
		t.Fatalf("IdentityFromKey: %v", err)
	}
	if again.Public().Equal(id.Public()) {
		t.Fatal("expected a freshly issued certificate")
	}
	if again.Fingerprint() != id.Fingerprint() {
		t.Fatalf("fingerprint changed: %s vs %s", again.Fingerprint(), id.Fingerprint())
	}
}

func TestNewIdentity_ProviderFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	_, err := crypto.NewIdentity("x", crypto.ProviderFunc(func() (*rsa.PrivateKey, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("want provider error, got %v", err)
	}
}

func TestRSAProvider_RejectsWeakModulus(t *testing.T) {
	if _, err := (crypto.RSAProvider{Bits: 1024}).GenerateKeyPair(); err == nil {
		t.Fatal("expected error for 1024-bit modulus")
	}
}

func TestCertificatePEM_RoundTrip(t *testing.T) {
	id, err := crypto.NewIdentity("requester", crypto.RSAProvider{})
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	got, err := crypto.DecodeCertificatePEM(crypto.EncodeCertificatePEM(id.Public()))
	if err != nil {
		t.Fatalf("DecodeCertificatePEM: %v", err)
	}
	if !got.Equal(id.Public()) {
		t.Fatal("certificate changed across PEM round trip")
	}

	der, err := crypto.MarshalPrivateKey(id.Private)
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}
	priv, err := crypto.ParsePrivateKey(der)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if !priv.Equal(id.Private) {
		t.Fatal("private key changed across PKCS#8 round trip")
	}
}
