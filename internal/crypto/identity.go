package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// certificateLifetime bounds the self-signed certificate. Identities live
// for one protocol run, so a day is plenty.
const certificateLifetime = 24 * time.Hour

// Identity carries a party's RSA signing key and the certificate it presents
// to its peer.
type Identity struct {
	Name        string
	Private     *rsa.PrivateKey
	Certificate *x509.Certificate
}

// NewIdentity draws a key from provider and wraps its public half in a
// self-signed certificate for name.
func NewIdentity(name string, provider KeyPairProvider) (*Identity, error) {
	if provider == nil {
		return nil, errors.New("no key pair provider")
	}
	priv, err := provider.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return IdentityFromKey(name, priv)
}

// IdentityFromKey builds an identity around an existing private key.
func IdentityFromKey(name string, priv *rsa.PrivateKey) (*Identity, error) {
	if priv == nil {
		return nil, errors.New("nil private key")
	}
	if priv.N.BitLen() < MinRSABits {
		return nil, fmt.Errorf("rsa modulus %d below minimum %d", priv.N.BitLen(), MinRSABits)
	}
	cert, err := selfSign(name, priv)
	if err != nil {
		return nil, err
	}
	return &Identity{Name: name, Private: priv, Certificate: cert}, nil
}

// Public returns the certificate holding the identity's public key.
func (id *Identity) Public() *x509.Certificate { return id.Certificate }

// GetKeyPair exposes the key and DER certificate to the XML signer.
func (id *Identity) GetKeyPair() (*rsa.PrivateKey, []byte, error) {
	if id == nil || id.Private == nil || id.Certificate == nil {
		return nil, nil, errors.New("identity has no key material")
	}
	return id.Private, id.Certificate.Raw, nil
}

// Fingerprint returns the short fingerprint of the identity's public key.
func (id *Identity) Fingerprint() string { return CertificateFingerprint(id.Certificate) }

func selfSign(name string, priv *rsa.PrivateKey) (*x509.Certificate, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: name, Organization: []string{"sigquery"}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(certificateLifetime),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}
