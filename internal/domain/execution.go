package domain

import "time"

// ActivityExecution is the runtime record tracking one slot's real-world
// progress. Exactly one exists per slot of the active day; it is only ever
// replaced through the lifecycle transition function, never mutated in place.
type ActivityExecution struct {
	SlotID         string
	State          ActivityState
	ScheduledStart int // minutes since midnight, derived from the slot
	ScheduledEnd   int
	ActualStart    *time.Time
	ActualEnd      *time.Time
	ExtendedBy     int // cumulative minutes
	SkipReason     string
	DeferredTo     string // target day (YYYY-MM-DD), set on defer
	Rating         int    // 0 = unrated
	Notes          string
}

// NewExecution creates the initial execution record for a slot.
func NewExecution(s *Slot) ActivityExecution {
	return ActivityExecution{
		SlotID:         s.ID,
		State:          StateUpcoming,
		ScheduledStart: s.TimeRange.Start,
		ScheduledEnd:   s.TimeRange.End,
	}
}

// ActualDurationMin returns the observed duration in whole minutes, or ok=false
// when either endpoint is unset.
func (e *ActivityExecution) ActualDurationMin() (int, bool) {
	if e.ActualStart == nil || e.ActualEnd == nil {
		return 0, false
	}
	return int(e.ActualEnd.Sub(*e.ActualStart).Minutes()), true
}
