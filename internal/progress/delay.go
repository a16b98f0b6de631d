package progress

import "github.com/wayfarerhq/wayfarer/internal/domain"

// DelayMinutes estimates how far behind plan the traveler is right now,
// in signed minutes (positive = behind). Only the slot that should be
// happening now is inspected: the estimate is deliberately local, not
// cumulative across earlier slippage. The immediate slot is what matters
// for the UI banner.
func DelayMinutes(day *domain.Day, execs map[string]domain.ActivityExecution, nowMin int) int {
	slot := currentOrNextSlot(day, nowMin)
	if slot == nil {
		return 0
	}
	exec, ok := execs[slot.ID]
	if !ok {
		return 0
	}

	switch {
	case exec.State == domain.StateUpcoming && nowMin > exec.ScheduledStart:
		return nowMin - exec.ScheduledStart
	case exec.State.IsActive() && nowMin > exec.ScheduledEnd:
		return nowMin - exec.ScheduledEnd
	case exec.ActualStart != nil:
		if started := domain.MinutesOfDay(*exec.ActualStart); started > exec.ScheduledStart {
			return started - exec.ScheduledStart
		}
	}
	return 0
}

// Status bands the local delay estimate for the given instant.
func Status(day *domain.Day, execs map[string]domain.ActivityExecution, nowMin int) domain.DelayStatus {
	return domain.DelayStatusFor(DelayMinutes(day, execs, nowMin))
}

// currentOrNextSlot finds the first slot whose time range contains nowMin,
// else the first slot strictly in the future.
func currentOrNextSlot(day *domain.Day, nowMin int) *domain.Slot {
	for i := range day.Slots {
		if day.Slots[i].TimeRange.Contains(nowMin) {
			return &day.Slots[i]
		}
	}
	for i := range day.Slots {
		if day.Slots[i].TimeRange.Start > nowMin {
			return &day.Slots[i]
		}
	}
	return nil
}
