package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaconcs/beacon/internal/db"
)

// NewTestDB opens a fully migrated in-memory SQLite database scoped to the
// test's lifetime.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { database.Close() })

	return database
}

// NewTestUoW wraps the given database in a transaction runner.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
