// Package repository persists simulation traces so a run can be replayed or
// compared later. Live sessions are never persisted here.
package repository

import (
	"context"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/simulator"
)

// SimRun is one recorded simulation: its configuration plus the summary
// numbers. The per-event timeline is stored alongside it.
type SimRun struct {
	ID              string
	TripID          string
	DayDate         string
	Seed            int64
	Weather         string
	Energy          string
	TotalEvents     int
	MostCommon      string
	LongestDelayMin int
	TimeSavedMin    int
	NetImpactMin    int
	FinalOffsetMin  int
	CreatedAt       time.Time
}

type RunRepo interface {
	Create(ctx context.Context, run *SimRun, events []simulator.Event) error
	GetByID(ctx context.Context, id string) (*SimRun, error)
	ListByTrip(ctx context.Context, tripID string) ([]*SimRun, error)
	ListEvents(ctx context.Context, runID string) ([]simulator.Event, error)
	Delete(ctx context.Context, id string) error
}

// NewSimRun builds the run record for a finished simulation.
func NewSimRun(id, tripID, dayDate string, res *simulator.Result, createdAt time.Time) *SimRun {
	return &SimRun{
		ID:              id,
		TripID:          tripID,
		DayDate:         dayDate,
		Seed:            res.Seed,
		Weather:         string(res.Weather),
		Energy:          string(res.Energy),
		TotalEvents:     res.Summary.TotalEvents,
		MostCommon:      string(res.Summary.MostCommon),
		LongestDelayMin: res.Summary.LongestDelayMin,
		TimeSavedMin:    res.Summary.TimeSavedMin,
		NetImpactMin:    res.Summary.NetImpactMin,
		FinalOffsetMin:  res.Summary.FinalOffsetMin,
		CreatedAt:       createdAt,
	}
}
