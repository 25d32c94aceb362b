package store

import (
	"context"
	"fmt"

	"sigquery/internal/domain"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database is a relational store the CLI can query, seed and close.
type Database interface {
	domain.Store
	Seed(ctx context.Context, script string) (int, error)
	Close() error
}

// Open connects to the database named by driver and dsn. For SQLite the dsn
// is a file path.
func Open(ctx context.Context, driver, dsn string) (Database, error) {
	switch driver {
	case DriverSQLite, "":
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverPostgres, "pgx":
		db, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", domain.ErrStore, driver)
	}
}

// Compile-time assertions that both stores implement Database.
var (
	_ Database = (*SQLStore)(nil)
	_ Database = (*PostgresStore)(nil)
)
