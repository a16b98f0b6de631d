package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_InMemory(t *testing.T) {
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	var fk int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	for _, table := range []string{"sim_runs", "sim_events"} {
		var name string
		err := conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	// A second full pass over the migration list must not fail.
	require.NoError(t, Migrate(conn))
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/trace.db"

	conn, err := OpenDB(path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec("INSERT INTO sim_runs (id, trip_id, day_date, seed, weather, energy, total_events, created_at) VALUES ('r1', 't1', '2025-04-12', 42, 'clear', 'normal', 0, '2025-04-12T09:00:00Z')")
	assert.NoError(t, err)
}
