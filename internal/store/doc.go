// Package store provides persistence for sigquery.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Exchange documents on disk (ExchangeFileStore), one directory tree per home
//   - Sealed party keys (IdentityFileStore), scrypt + ChaCha20-Poly1305
//   - Relational stores executing translated queries (SQLStore on SQLite,
//     PostgresStore on pgx), plus script seeding
//
// File writes are atomic (temp file + rename). All methods are
// concurrency-safe via internal locking.
package store
