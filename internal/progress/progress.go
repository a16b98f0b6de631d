// Package progress derives aggregate day progress and a local delay estimate
// from the slot schedule and the execution map. Both functions are pure.
package progress

import (
	"math"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// DayProgress is the pull-based aggregate consumed by the UI layer.
type DayProgress struct {
	TotalActivities      int
	CompletedActivities  int
	SkippedActivities    int
	InProgressSlotID     string
	CompletedDurationMin int
	RemainingDurationMin int
	PercentComplete      int
}

// Calculate classifies every slot's execution. Completed slots accumulate
// actual duration when known, else scheduled; skipped slots count as done for
// progress purposes but contribute zero duration; everything else adds its
// scheduled duration to the remaining total.
func Calculate(day *domain.Day, execs map[string]domain.ActivityExecution) DayProgress {
	p := DayProgress{TotalActivities: len(day.Slots)}

	for i := range day.Slots {
		slot := &day.Slots[i]
		exec, ok := execs[slot.ID]
		if !ok {
			p.RemainingDurationMin += slot.TimeRange.DurationMin()
			continue
		}

		switch exec.State {
		case domain.StateCompleted:
			p.CompletedActivities++
			if d, known := exec.ActualDurationMin(); known {
				p.CompletedDurationMin += d
			} else {
				p.CompletedDurationMin += slot.TimeRange.DurationMin()
			}
		case domain.StateSkipped:
			p.CompletedActivities++
			p.SkippedActivities++
		default:
			if exec.State.IsActive() {
				p.InProgressSlotID = slot.ID
			}
			p.RemainingDurationMin += slot.TimeRange.DurationMin()
		}
	}

	if p.TotalActivities > 0 {
		p.PercentComplete = int(math.Round(float64(p.CompletedActivities) / float64(p.TotalActivities) * 100))
	}
	return p
}
