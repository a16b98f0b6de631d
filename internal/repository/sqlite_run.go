package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/simulator"
)

// SQLiteRunRepo implements RunRepo on a SQLite database.
type SQLiteRunRepo struct {
	db *sql.DB
}

func NewSQLiteRunRepo(db *sql.DB) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

// Create stores the run and its event timeline in one transaction.
func (r *SQLiteRunRepo) Create(ctx context.Context, run *SimRun, events []simulator.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO sim_runs
		(id, trip_id, day_date, seed, weather, energy, total_events,
		 most_common, longest_delay_min, time_saved_min, net_impact_min,
		 final_offset_min, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TripID, run.DayDate, run.Seed, run.Weather, run.Energy,
		run.TotalEvents, run.MostCommon, run.LongestDelayMin, run.TimeSavedMin,
		run.NetImpactMin, run.FinalOffsetMin, run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sim run: %w", err)
	}

	for seq, ev := range events {
		_, err = tx.ExecContext(ctx, `INSERT INTO sim_events
			(run_id, seq, type, slot_id, activity_name, occurred_at_min, impact_min, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, seq, string(ev.Type), ev.SlotID, ev.ActivityName,
			ev.OccurredAtMin, ev.ImpactMin, ev.Description,
		)
		if err != nil {
			return fmt.Errorf("inserting sim event %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sim run: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*SimRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, trip_id, day_date, seed, weather,
		energy, total_events, most_common, longest_delay_min, time_saved_min,
		net_impact_min, final_offset_min, created_at
		FROM sim_runs WHERE id = ?`, id)
	return scanRun(row)
}

func (r *SQLiteRunRepo) ListByTrip(ctx context.Context, tripID string) ([]*SimRun, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, trip_id, day_date, seed, weather,
		energy, total_events, most_common, longest_delay_min, time_saved_min,
		net_impact_min, final_offset_min, created_at
		FROM sim_runs WHERE trip_id = ? ORDER BY created_at DESC, id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing sim runs: %w", err)
	}
	defer rows.Close()

	var runs []*SimRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRunRepo) ListEvents(ctx context.Context, runID string) ([]simulator.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, slot_id, activity_name,
		occurred_at_min, impact_min, description
		FROM sim_events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing sim events: %w", err)
	}
	defer rows.Close()

	var events []simulator.Event
	for rows.Next() {
		var ev simulator.Event
		var typ string
		if err := rows.Scan(&typ, &ev.SlotID, &ev.ActivityName,
			&ev.OccurredAtMin, &ev.ImpactMin, &ev.Description); err != nil {
			return nil, fmt.Errorf("scanning sim event: %w", err)
		}
		ev.Type = simulator.DiversionType(typ)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sim_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sim run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*SimRun, error) {
	var run SimRun
	var createdAt string
	err := row.Scan(&run.ID, &run.TripID, &run.DayDate, &run.Seed, &run.Weather,
		&run.Energy, &run.TotalEvents, &run.MostCommon, &run.LongestDelayMin,
		&run.TimeSavedMin, &run.NetImpactMin, &run.FinalOffsetMin, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sim run: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	run.CreatedAt = t
	return &run, nil
}
