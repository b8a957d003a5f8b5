package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_AppliesMigrations(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	tables := []string{
		"clients", "plans", "plan_classification", "plan_sessions",
		"plan_online_tracking", "plan_first_values", "plan_adjustments",
		"conversations", "alerts",
	}
	for _, table := range tables {
		var name string
		row := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, row.Scan(&name), "table %s should exist", table)
	}

	// Re-running the migration set must be a no-op.
	require.NoError(t, Migrate(database))
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(
		`INSERT INTO plans (id, client_id, status, start_date, urgency, created_at, updated_at)
		 VALUES ('p1', 'no-such-client', 'in_progress', '2025-06-02', 'normal', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	uow := NewSQLiteUnitOfWork(database)

	boom := errors.New("boom")
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, account_code, name, created_at, updated_at)
			 VALUES ('c1', 'ACME01', 'Acme', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&n))
	assert.Zero(t, n)
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	uow := NewSQLiteUnitOfWork(database)

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, account_code, name, created_at, updated_at)
			 VALUES ('c1', 'ACME01', 'Acme', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&n))
	assert.Equal(t, 1, n)
}
