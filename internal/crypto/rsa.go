package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
)

// MinRSABits is the smallest modulus accepted for party keys.
const MinRSABits = 2048

// KeyPairProvider produces the RSA key pair a party signs with.
type KeyPairProvider interface {
	GenerateKeyPair() (*rsa.PrivateKey, error)
}

// RSAProvider generates fresh keys from Rand (crypto/rand when nil).
type RSAProvider struct {
	Bits int
	Rand io.Reader
}

// GenerateKeyPair returns a new RSA key of p.Bits (MinRSABits when zero).
func (p RSAProvider) GenerateKeyPair() (*rsa.PrivateKey, error) {
	bits := p.Bits
	if bits == 0 {
		bits = MinRSABits
	}
	if bits < MinRSABits {
		return nil, fmt.Errorf("rsa modulus %d below minimum %d", bits, MinRSABits)
	}
	r := p.Rand
	if r == nil {
		r = rand.Reader
	}
	return rsa.GenerateKey(r, bits)
}

// ProviderFunc adapts a function to KeyPairProvider.
type ProviderFunc func() (*rsa.PrivateKey, error)

// GenerateKeyPair calls f.
func (f ProviderFunc) GenerateKeyPair() (*rsa.PrivateKey, error) { return f() }

var (
	_ KeyPairProvider = RSAProvider{}
	_ KeyPairProvider = ProviderFunc(nil)
)
