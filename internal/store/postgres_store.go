package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sigquery/internal/domain"
)

// PostgresStore executes translated queries on a PostgreSQL pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Execute runs q and collects every row in retrieval order.
func (s *PostgresStore) Execute(ctx context.Context, q domain.Query) (domain.Rowset, error) {
	rows, err := s.pool.Query(ctx, q.String())
	if err != nil {
		return domain.Rowset{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	rs := domain.Rowset{Columns: make([]domain.Column, len(fds))}
	for i, fd := range fds {
		rs.Columns[i] = domain.Column{Name: fd.Name, Type: typeName(rows, fd.DataTypeOID)}
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
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
func (s *PostgresStore) Seed(ctx context.Context, script string) (int, error) {
	return seed(ctx, script, func(ctx context.Context, stmt string) error {
		_, err := s.pool.Exec(ctx, stmt)
		return err
	})
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func typeName(rows pgx.Rows, oid uint32) string {
	if conn := rows.Conn(); conn != nil {
		if t, ok := conn.TypeMap().TypeForOID(oid); ok {
			return t.Name
		}
	}
	return strconv.FormatUint(uint64(oid), 10)
}

// Compile-time assertion that PostgresStore implements domain.Store.
var _ domain.Store = (*PostgresStore)(nil)
