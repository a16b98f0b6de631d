package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sim_runs (
		id               TEXT PRIMARY KEY,
		trip_id          TEXT NOT NULL,
		day_date         TEXT NOT NULL,
		seed             INTEGER NOT NULL,
		weather          TEXT NOT NULL,
		energy           TEXT NOT NULL,
		total_events     INTEGER NOT NULL,
		most_common      TEXT NOT NULL DEFAULT '',
		longest_delay_min INTEGER NOT NULL DEFAULT 0,
		time_saved_min   INTEGER NOT NULL DEFAULT 0,
		net_impact_min   INTEGER NOT NULL DEFAULT 0,
		final_offset_min INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sim_runs_trip ON sim_runs(trip_id, day_date)`,

	`CREATE TABLE IF NOT EXISTS sim_events (
		run_id          TEXT NOT NULL REFERENCES sim_runs(id) ON DELETE CASCADE,
		seq             INTEGER NOT NULL,
		type            TEXT NOT NULL,
		slot_id         TEXT NOT NULL,
		activity_name   TEXT NOT NULL,
		occurred_at_min INTEGER NOT NULL,
		impact_min      INTEGER NOT NULL,
		description     TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}
