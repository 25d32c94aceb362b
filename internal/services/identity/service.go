package identity

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"unicode"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	errNoStore = errors.New("no identity store configured")
)

// Service builds party identities from a key pair provider and, when a store
// is configured, persists their keys.
type Service struct {
	provider crypto.KeyPairProvider
	store    domain.IdentityStore
}

// New returns an identity service. store may be nil when keys are never persisted.
func New(provider crypto.KeyPairProvider, store domain.IdentityStore) *Service {
	return &Service{provider: provider, store: store}
}

// Create draws a fresh identity for name. Failures wrap domain.ErrKeyGeneration.
func (s *Service) Create(name string) (*crypto.Identity, error) {
	id, err := crypto.NewIdentity(name, s.provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrKeyGeneration, name, err)
	}
	return id, nil
}

// Generate creates a new identity for name, seals its key with passphrase
// (replacing any previous key) and returns it with its fingerprint.
func (s *Service) Generate(name, passphrase string) (*crypto.Identity, string, error) {
	if s.store == nil {
		return nil, "", errNoStore
	}
	if !isSecurePassphrase(passphrase) {
		return nil, "", ErrWeakPassphrase
	}
	id, err := s.Create(name)
	if err != nil {
		return nil, "", err
	}
	if err := saveKey(s.store, name, passphrase, id.Private); err != nil {
		return nil, "", err
	}
	return id, id.Fingerprint(), nil
}

// Load opens the sealed key of name and rebuilds its identity.
func (s *Service) Load(name, passphrase string) (*crypto.Identity, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	priv, ok, err := loadKey(s.store, name, passphrase)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no key stored for %q; run keygen first", name)
	}
	id, err := crypto.IdentityFromKey(name, priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrKeyGeneration, name, err)
	}
	return id, nil
}

// StoredProvider yields the sealed key of one party, generating and sealing
// it through Fallback on first use.
type StoredProvider struct {
	Store      domain.IdentityStore
	Name       string
	Passphrase string
	Fallback   crypto.KeyPairProvider
}

// GenerateKeyPair implements crypto.KeyPairProvider.
func (p StoredProvider) GenerateKeyPair() (*rsa.PrivateKey, error) {
	if p.Store == nil {
		return nil, errNoStore
	}
	priv, ok, err := loadKey(p.Store, p.Name, p.Passphrase)
	if err != nil || ok {
		return priv, err
	}
	if !isSecurePassphrase(p.Passphrase) {
		return nil, ErrWeakPassphrase
	}
	if p.Fallback == nil {
		return nil, errors.New("no fallback key pair provider")
	}
	priv, err = p.Fallback.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := saveKey(p.Store, p.Name, p.Passphrase, priv); err != nil {
		return nil, err
	}
	return priv, nil
}

func loadKey(store domain.IdentityStore, name, passphrase string) (*rsa.PrivateKey, bool, error) {
	der, ok, err := store.LoadKey(name, passphrase)
	if err != nil || !ok {
		return nil, false, err
	}
	defer memzero.Zero(der)
	priv, err := crypto.ParsePrivateKey(der)
	if err != nil {
		return nil, false, err
	}
	return priv, true, nil
}

func saveKey(store domain.IdentityStore, name, passphrase string, priv *rsa.PrivateKey) error {
	der, err := crypto.MarshalPrivateKey(priv)
	if err != nil {
		return err
	}
	defer memzero.Zero(der)
	return store.SaveKey(name, passphrase, der)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that StoredProvider implements crypto.KeyPairProvider.
var _ crypto.KeyPairProvider = StoredProvider{}
