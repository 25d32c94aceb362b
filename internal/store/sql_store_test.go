package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sigquery/internal/domain"
	"sigquery/internal/store"
)

func openDemo(t *testing.T) *store.SQLStore {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "demo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	n, err := db.Seed(context.Background(), store.DemoScript)
	require.NoError(t, err)
	require.Equal(t, len(store.SplitScript(store.DemoScript)), n)
	return db
}

func TestSQLStore_Execute(t *testing.T) {
	db := openDemo(t)

	rs, err := db.Execute(context.Background(), "SELECT name, email FROM users WHERE id=1")
	require.NoError(t, err)
	require.Len(t, rs.Columns, 2)
	require.Equal(t, "name", rs.Columns[0].Name)
	require.Equal(t, "email", rs.Columns[1].Name)
	require.Len(t, rs.Rows, 1)
	require.Equal(t, "Alice", rs.Rows[0][0])
}

func TestSQLStore_RetrievalOrderAndNull(t *testing.T) {
	db := openDemo(t)

	rs, err := db.Execute(context.Background(), "SELECT id, email FROM users ORDER BY id")
	require.NoError(t, err)
	require.Len(t, rs.Rows, 3)
	require.EqualValues(t, 1, rs.Rows[0][0])
	require.EqualValues(t, 3, rs.Rows[2][0])
	require.Nil(t, rs.Rows[2][1])
}

func TestSQLStore_BadQuery(t *testing.T) {
	db := openDemo(t)
	_, err := db.Execute(context.Background(), "SELECT nope FROM missing")
	require.True(t, errors.Is(err, domain.ErrStore), "got %v", err)
}

func TestSplitScript(t *testing.T) {
	got := store.SplitScript(`-- comment; ignored
CREATE TABLE t (v TEXT);
INSERT INTO t VALUES ('a;b');

INSERT INTO t VALUES ('c')`)
	require.Equal(t, []string{
		"CREATE TABLE t (v TEXT)",
		"INSERT INTO t VALUES ('a;b')",
		"INSERT INTO t VALUES ('c')",
	}, got)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	db, err := store.Open(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = store.Open(ctx, "oracle", "whatever")
	require.ErrorIs(t, err, domain.ErrStore)
}
