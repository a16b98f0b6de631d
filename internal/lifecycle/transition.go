package lifecycle

import (
	"time"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// PendingThresholdMin is how many minutes before scheduled start an upcoming
// activity auto-advances to pending.
const PendingThresholdMin = 15

// Transition applies trg to exec and returns the replacement record.
// ok=false means the trigger is not valid from the current state; that is a
// no-op signal, not an error, and the returned record equals the input.
func Transition(exec domain.ActivityExecution, trg Trigger, now time.Time) (domain.ActivityExecution, bool) {
	if exec.State.IsTerminal() {
		return exec, false
	}

	switch t := trg.(type) {
	case CheckIn:
		switch exec.State {
		case domain.StateUpcoming, domain.StatePending, domain.StateEnRoute:
			return enterActive(exec, now), true
		}

	case LocationDetected:
		switch exec.State {
		case domain.StateUpcoming, domain.StatePending, domain.StateEnRoute:
			return enterActive(exec, now), true
		}

	case Depart:
		switch exec.State {
		case domain.StateUpcoming, domain.StatePending:
			exec.State = domain.StateEnRoute
			return exec, true
		}

	case AutoAdvance:
		switch exec.State {
		case domain.StateUpcoming:
			exec.State = domain.StatePending
			return exec, true
		case domain.StatePending, domain.StateEnRoute:
			return enterActive(exec, now), true
		}

	case Extend:
		if t.Minutes <= 0 {
			return exec, false
		}
		switch exec.State {
		case domain.StateInProgress, domain.StateExtended:
			exec.State = domain.StateExtended
			exec.ExtendedBy += t.Minutes
			return exec, true
		}

	case CheckOut:
		switch exec.State {
		case domain.StateInProgress, domain.StateExtended:
			exec.State = domain.StateCompleted
			end := now
			exec.ActualEnd = &end
			exec.Rating = t.Rating
			if t.Notes != "" {
				exec.Notes = t.Notes
			}
			return exec, true
		}

	case Skip:
		exec.State = domain.StateSkipped
		exec.SkipReason = t.Reason
		if exec.ActualStart != nil {
			end := now
			exec.ActualEnd = &end
		}
		return exec, true

	case Defer:
		switch exec.State {
		case domain.StateUpcoming, domain.StatePending:
			exec.State = domain.StateSkipped
			exec.SkipReason = "deferred"
			exec.DeferredTo = t.TargetDay
			return exec, true
		}

	case ExternalClosure:
		exec.State = domain.StateSkipped
		exec.SkipReason = t.Reason
		if exec.ActualStart != nil {
			end := now
			exec.ActualEnd = &end
		}
		return exec, true
	}

	return exec, false
}

// enterActive moves the execution to in_progress, stamping ActualStart on
// first entry only. Once set, ActualStart is never overwritten.
func enterActive(exec domain.ActivityExecution, now time.Time) domain.ActivityExecution {
	exec.State = domain.StateInProgress
	if exec.ActualStart == nil {
		start := now
		exec.ActualStart = &start
	}
	return exec
}

// ShouldAutoTransition reports whether the tick handler should fire an
// AutoAdvance for this execution at the given minute of day. The policy is to
// not block on user action for wall-clock-driven days: pending and en_route
// activities move to in_progress once the scheduled start passes without an
// explicit check-in.
func ShouldAutoTransition(exec domain.ActivityExecution, nowMin int) bool {
	switch exec.State {
	case domain.StateUpcoming:
		return nowMin >= exec.ScheduledStart-PendingThresholdMin
	case domain.StatePending, domain.StateEnRoute:
		return nowMin >= exec.ScheduledStart
	}
	return false
}
