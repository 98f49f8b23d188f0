package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB (for tests) using PostgreSQL
// placeholders.
func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, config.DriverPostgres, NewPostgresErrorClassifier(), logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// newSQLiteDB opens a migrated SQLite database in a temp dir.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	ctx := testContext()

	db, err := NewConnectSQLite(ctx, config.DB{
		DSN:    filepath.Join(t.TempDir(), "vault.db"),
		Driver: config.DriverSQLite,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}
