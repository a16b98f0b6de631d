package constraint

import (
	"fmt"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// checkTemporal flags activities whose own duration exceeds the slot window.
func checkTemporal(day *domain.Day) []Violation {
	var out []Violation
	for i := range day.Slots {
		slot := &day.Slots[i]
		opt := slot.Selected()
		if opt == nil || opt.DurationMin == 0 {
			continue
		}
		window := slot.TimeRange.DurationMin()
		if opt.DurationMin > window {
			out = append(out, Violation{
				Layer:    LayerTemporal,
				Severity: SeverityWarning,
				SlotID:   slot.ID,
				Message: fmt.Sprintf("%s needs %d min but its slot is only %d min",
					opt.Name, opt.DurationMin, window),
			})
		}
	}
	return out
}

// checkTravel verifies each commute leg fits the gap before its slot.
func checkTravel(day *domain.Day) []Violation {
	var out []Violation
	for i := 1; i < len(day.Slots); i++ {
		slot := &day.Slots[i]
		if slot.CommuteFromPrevious == nil {
			continue
		}
		gap := slot.TimeRange.Start - day.Slots[i-1].TimeRange.End
		if slot.CommuteFromPrevious.DurationMin > gap {
			out = append(out, Violation{
				Layer:    LayerTravel,
				Severity: SeverityError,
				SlotID:   slot.ID,
				Message: fmt.Sprintf("commute to %s needs %d min but only %d min are available",
					slot.ActivityName(), slot.CommuteFromPrevious.DurationMin, gap),
			})
		}
	}
	return out
}

// checkClustering warns when the day leaves a geographic cluster and later
// returns to it. Fragmentation is a signal, not a hard failure.
func checkClustering(day *domain.Day, cfg Config) []Violation {
	if !cfg.RespectClusters {
		return nil
	}

	var out []Violation
	visited := make(map[string]bool)
	var current string
	for i := range day.Slots {
		c := day.Slots[i].ClusterID
		if c == "" || c == current {
			continue
		}
		if visited[c] {
			out = append(out, Violation{
				Layer:    LayerClustering,
				Severity: SeverityWarning,
				SlotID:   day.Slots[i].ID,
				Message:  fmt.Sprintf("returns to cluster %q after leaving it; consider grouping those stops", c),
			})
		}
		visited[current] = true
		current = c
	}
	return out
}

// checkDependencies enforces declared must-before/must-after ordering within
// the day. Targets on other days are out of scope here.
func checkDependencies(day *domain.Day) []Violation {
	var out []Violation
	for i := range day.Slots {
		slot := &day.Slots[i]
		for _, dep := range slot.Dependencies {
			targetIdx := day.SlotIndex(dep.TargetSlotID)
			if targetIdx < 0 {
				continue
			}
			ok := true
			switch dep.Type {
			case domain.MustBefore:
				ok = i < targetIdx
			case domain.MustAfter:
				ok = i > targetIdx
			}
			if !ok {
				out = append(out, Violation{
					Layer:    LayerDependencies,
					Severity: SeverityError,
					SlotID:   slot.ID,
					Message: fmt.Sprintf("%s is declared %s %s but is scheduled on the wrong side of it",
						slot.ActivityName(), dep.Type, day.Slots[targetIdx].ActivityName()),
				})
			}
		}
	}
	return out
}

// checkPacing warns on overstuffed days: too much scheduled activity time,
// or too much cumulative walking.
func checkPacing(day *domain.Day, cfg Config) []Violation {
	var out []Violation

	totalMin := 0
	walkingKm := 0.0
	for i := range day.Slots {
		totalMin += day.Slots[i].TimeRange.DurationMin()
		if c := day.Slots[i].CommuteFromPrevious; c != nil && c.Method == domain.CommuteWalk {
			walkingKm += c.DistanceKm
		}
	}

	if cfg.MaxDailyActivityMin > 0 && totalMin > cfg.MaxDailyActivityMin {
		out = append(out, Violation{
			Layer:    LayerPacing,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%d min of scheduled activity exceeds the %d min daily ceiling",
				totalMin, cfg.MaxDailyActivityMin),
		})
	}
	if cfg.MaxDailyWalkingKm > 0 && walkingKm > cfg.MaxDailyWalkingKm {
		out = append(out, Violation{
			Layer:    LayerPacing,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%.1f km of walking exceeds the %.1f km daily budget",
				walkingKm, cfg.MaxDailyWalkingKm),
		})
	}
	return out
}

// checkFragility surfaces weather-sensitive slots (informational) and
// required bookings (warning, with the booking link when known).
func checkFragility(day *domain.Day, cfg Config) []Violation {
	var out []Violation
	for i := range day.Slots {
		slot := &day.Slots[i]

		if cfg.WeatherAware && slot.Fragility.WeatherSensitivity == domain.SensitivityHigh {
			out = append(out, Violation{
				Layer:    LayerFragility,
				Severity: SeverityInfo,
				SlotID:   slot.ID,
				Message:  fmt.Sprintf("%s is highly weather sensitive; have an indoor fallback", slot.ActivityName()),
			})
		}
		if slot.Fragility.BookingRequired {
			msg := fmt.Sprintf("%s requires a booking", slot.ActivityName())
			if url := bookingURL(slot); url != "" {
				msg += ": " + url
			}
			out = append(out, Violation{
				Layer:    LayerFragility,
				Severity: SeverityWarning,
				SlotID:   slot.ID,
				Message:  msg,
			})
		}
	}
	return out
}

func bookingURL(slot *domain.Slot) string {
	if slot.Fragility.BookingURL != "" {
		return slot.Fragility.BookingURL
	}
	if opt := slot.Selected(); opt != nil {
		return opt.BookingURL
	}
	return ""
}

// checkCrossDay warns when the buffer between the last activity and an
// intercity departure is too thin.
func checkCrossDay(day *domain.Day, cfg Config) []Violation {
	if day.CityTransition == nil || len(day.Slots) == 0 {
		return nil
	}

	lastEnd := day.Slots[len(day.Slots)-1].TimeRange.End
	buffer := day.CityTransition.DepartureMin - lastEnd
	if buffer < cfg.MinTransitionBufferMin {
		return []Violation{{
			Layer:    LayerCrossDay,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("only %d min between the last activity and the %s departure to %s (want %d)",
				buffer, domain.FormatClock(day.CityTransition.DepartureMin),
				day.CityTransition.ToCity, cfg.MinTransitionBufferMin),
		}}
	}
	return nil
}
