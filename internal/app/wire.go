package app

import (
	"context"
	"log/slog"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/logger"
	identitysvc "sigquery/internal/services/identity"
	"sigquery/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Exchange   *store.ExchangeFileStore
	Keys       *store.IdentityFileStore
	Identities *identitysvc.Service
	Logger     *slog.Logger

	cfg Config
	db  store.Database
}

// NewWire constructs the dependency graph from cfg. The database is opened
// lazily by DB so key-only commands never touch it.
func NewWire(cfg Config) (*Wire, error) {
	// File-based stores
	exchangeStore, err := store.NewExchangeFileStore(cfg.Home)
	if err != nil {
		return nil, err
	}
	keyStore := store.NewIdentityFileStore(cfg.KeysDir)

	return &Wire{
		Exchange:   exchangeStore,
		Keys:       keyStore,
		Identities: identitysvc.New(crypto.RSAProvider{Bits: cfg.KeyBits}, keyStore),
		Logger:     logger.Get(),
		cfg:        cfg,
	}, nil
}

// DB opens the configured database on first use.
func (w *Wire) DB(ctx context.Context) (store.Database, error) {
	if w.db != nil {
		return w.db, nil
	}
	db, err := store.Open(ctx, w.cfg.Database.Driver, w.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	w.db = db
	return db, nil
}

// KeyProvider returns the key source of role: fresh keys per run, or the
// role's sealed key when a passphrase is configured.
func (w *Wire) KeyProvider(role domain.Role) crypto.KeyPairProvider {
	fresh := crypto.RSAProvider{Bits: w.cfg.KeyBits}
	if w.cfg.Passphrase == "" {
		return fresh
	}
	return identitysvc.StoredProvider{
		Store:      w.Keys,
		Name:       role.String(),
		Passphrase: w.cfg.Passphrase,
		Fallback:   fresh,
	}
}

// Close releases the database if it was opened.
func (w *Wire) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}
