package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"sigquery/internal/domain"
)

// SQLStore executes translated queries over database/sql. OpenSQLite backs
// it with the pure-Go SQLite driver.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database at path.
func OpenSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// NewSQLStore wraps an already opened database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Execute runs q and collects every row in retrieval order.
func (s *SQLStore) Execute(ctx context.Context, q domain.Query) (domain.Rowset, error) {
	rows, err := s.db.QueryContext(ctx, q.String())
	if err != nil {
		return domain.Rowset{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return domain.Rowset{}, fmt.Errorf("%w: column metadata: %w", domain.ErrStore, err)
	}
	rs := domain.Rowset{Columns: make([]domain.Column, len(types))}
	for i, ct := range types {
		rs.Columns[i] = domain.Column{Name: ct.Name(), Type: ct.DatabaseTypeName()}
	}

	for rows.Next() {
		vals := make([]any, len(types))
		dest := make([]any, len(types))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return domain.Rowset{}, fmt.Errorf("%w: scan row %d: %w", domain.ErrStore, len(rs.Rows)+1, err)
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return domain.Rowset{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return rs, nil
}

// Seed runs script statement by statement.
func (s *SQLStore) Seed(ctx context.Context, script string) (int, error) {
	return seed(ctx, script, func(ctx context.Context, stmt string) error {
		_, err := s.db.ExecContext(ctx, stmt)
		return err
	})
}

// Close releases the database handle.
func (s *SQLStore) Close() error { return s.db.Close() }

// Compile-time assertion that SQLStore implements domain.Store.
var _ domain.Store = (*SQLStore)(nil)
