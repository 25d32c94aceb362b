package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sigquery/internal/domain"
)

// Exchange tree layout below the home directory.
const (
	signedDir  = "signed"
	resultsDir = "results"
)

// ExchangeFileStore keeps the documents of every run under one directory:
//
//	<dir>/<name>                  unsigned request
//	<dir>/signed/<name>           signed request
//	<dir>/results/<name>          unsigned result
//	<dir>/results/signed/<name>   signed result
type ExchangeFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewExchangeFileStore returns a store rooted at dir, creating the tree.
func NewExchangeFileStore(dir string) (*ExchangeFileStore, error) {
	for _, d := range []string{
		dir,
		filepath.Join(dir, signedDir),
		filepath.Join(dir, resultsDir),
		filepath.Join(dir, resultsDir, signedDir),
	} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return nil, fmt.Errorf("create exchange dir: %w", err)
		}
	}
	return &ExchangeFileStore{dir: dir}, nil
}

// Dir returns the root of the exchange tree.
func (s *ExchangeFileStore) Dir() string { return s.dir }

// LoadRequest reads the unsigned request document.
func (s *ExchangeFileStore) LoadRequest(name domain.DocumentName) ([]byte, error) {
	return s.load(name)
}

// SaveRequest writes the unsigned request document.
func (s *ExchangeFileStore) SaveRequest(name domain.DocumentName, raw []byte) error {
	return s.save(raw, name)
}

// SaveSignedRequest writes the signed request document.
func (s *ExchangeFileStore) SaveSignedRequest(name domain.DocumentName, raw []byte) error {
	return s.save(raw, name, signedDir)
}

// LoadSignedRequest reads the signed request document.
func (s *ExchangeFileStore) LoadSignedRequest(name domain.DocumentName) ([]byte, error) {
	return s.load(name, signedDir)
}

// SaveResult writes the unsigned result document.
func (s *ExchangeFileStore) SaveResult(name domain.DocumentName, raw []byte) error {
	return s.save(raw, name, resultsDir)
}

// LoadResult reads the unsigned result document.
func (s *ExchangeFileStore) LoadResult(name domain.DocumentName) ([]byte, error) {
	return s.load(name, resultsDir)
}

// SaveSignedResult writes the signed result document.
func (s *ExchangeFileStore) SaveSignedResult(name domain.DocumentName, raw []byte) error {
	return s.save(raw, name, resultsDir, signedDir)
}

// LoadSignedResult reads the signed result document.
func (s *ExchangeFileStore) LoadSignedResult(name domain.DocumentName) ([]byte, error) {
	return s.load(name, resultsDir, signedDir)
}

// Path returns where the artifact name lives below the given sub-directories.
func (s *ExchangeFileStore) Path(name domain.DocumentName, sub ...string) (string, error) {
	n := name.String()
	if n == "" || n != filepath.Base(n) || strings.HasPrefix(n, ".") {
		return "", fmt.Errorf("invalid document name %q", n)
	}
	parts := append([]string{s.dir}, sub...)
	return filepath.Join(append(parts, n)...), nil
}

func (s *ExchangeFileStore) save(raw []byte, name domain.DocumentName, sub ...string) error {
	path, err := s.Path(name, sub...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(path, raw, 0o600)
}

func (s *ExchangeFileStore) load(name domain.DocumentName, sub ...string) ([]byte, error) {
	path, err := s.Path(name, sub...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return readRequired(path)
}

// Compile-time assertion that ExchangeFileStore implements domain.ExchangeStore.
var _ domain.ExchangeStore = (*ExchangeFileStore)(nil)
