package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"sigquery/internal/domain"
)

const keysDir = "keys"

var validKeyName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IdentityFileStore persists sealed party keys under <dir>/keys.
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex

	// scrypt cost; overridable so tests stay fast.
	n, r, p int
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	n, r, p := scryptParamsDefault()
	return &IdentityFileStore{dir: dir, n: n, r: r, p: p}
}

// WithScryptParams overrides the key-derivation cost for newly sealed keys.
func (s *IdentityFileStore) WithScryptParams(n, r, p int) *IdentityFileStore {
	s.n, s.r, s.p = n, r, p
	return s
}

// SaveKey seals der with passphrase and writes it for party name.
func (s *IdentityFileStore) SaveKey(name, passphrase string, der []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, err := seal(name, passphrase, der, s.n, s.r, s.p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return writeFile(path, ct, 0o600)
}

// LoadKey reads and opens the sealed key of party name. ok is false when no
// key has been saved yet.
func (s *IdentityFileStore) LoadKey(name, passphrase string) ([]byte, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(path)
	if err != nil || b == nil {
		return nil, false, err
	}
	der, err := open(name, passphrase, b)
	if err != nil {
		return nil, false, err
	}
	return der, true, nil
}

func (s *IdentityFileStore) path(name string) (string, error) {
	if !validKeyName.MatchString(name) {
		return "", fmt.Errorf("invalid key name %q", name)
	}
	return filepath.Join(s.dir, keysDir, name+".key.enc"), nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
