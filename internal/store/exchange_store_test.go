package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sigquery/internal/domain"
	"sigquery/internal/store"
)

func TestExchange_CreatesTree(t *testing.T) {
	home := filepath.Join(t.TempDir(), "requests")
	if _, err := store.NewExchangeFileStore(home); err != nil {
		t.Fatalf("NewExchangeFileStore: %v", err)
	}
	for _, d := range []string{"", "signed", "results", filepath.Join("results", "signed")} {
		fi, err := os.Stat(filepath.Join(home, d))
		if err != nil || !fi.IsDir() {
			t.Fatalf("missing dir %q: %v", d, err)
		}
	}
}

func TestExchange_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var xs domain.ExchangeStore
	fs, err := store.NewExchangeFileStore(home)
	if err != nil {
		t.Fatalf("NewExchangeFileStore: %v", err)
	}
	xs = fs
	name := domain.DocumentName("users.xml")

	steps := []struct {
		save func(domain.DocumentName, []byte) error
		load func(domain.DocumentName) ([]byte, error)
		path string
	}{
		{xs.SaveRequest, xs.LoadRequest, "users.xml"},
		{xs.SaveSignedRequest, xs.LoadSignedRequest, filepath.Join("signed", "users.xml")},
		{xs.SaveResult, xs.LoadResult, filepath.Join("results", "users.xml")},
		{xs.SaveSignedResult, xs.LoadSignedResult, filepath.Join("results", "signed", "users.xml")},
	}
	for i, st := range steps {
		want := []byte{byte('a' + i)}
		if err := st.save(name, want); err != nil {
			t.Fatalf("step %d save: %v", i, err)
		}
		got, err := st.load(name)
		if err != nil {
			t.Fatalf("step %d load: %v", i, err)
		}
		if string(got) != string(want) {
			t.Fatalf("step %d: got %q, want %q", i, got, want)
		}
		if _, err := os.Stat(filepath.Join(home, st.path)); err != nil {
			t.Fatalf("step %d: expected file at %s: %v", i, st.path, err)
		}
	}
}

func TestExchange_MissingArtifact(t *testing.T) {
	xs, err := store.NewExchangeFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewExchangeFileStore: %v", err)
	}
	if _, err := xs.LoadSignedResult("nope.xml"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestExchange_RejectsPathNames(t *testing.T) {
	xs, err := store.NewExchangeFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewExchangeFileStore: %v", err)
	}
	for _, name := range []domain.DocumentName{"", "../escape.xml", "a/b.xml", ".hidden"} {
		if err := xs.SaveRequest(name, []byte("x")); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
}
