package constraint

import (
	"fmt"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// ValidateDay runs all seven layers over one day and unions their findings.
func ValidateDay(day *domain.Day, cfg Config) []Violation {
	var out []Violation
	out = append(out, checkTemporal(day)...)
	out = append(out, checkTravel(day)...)
	out = append(out, checkClustering(day, cfg)...)
	out = append(out, checkDependencies(day)...)
	out = append(out, checkPacing(day, cfg)...)
	out = append(out, checkFragility(day, cfg)...)
	out = append(out, checkCrossDay(day, cfg)...)
	return out
}

// ValidateItinerary validates every day and returns the aggregate verdict.
func ValidateItinerary(itin *domain.Itinerary, cfg Config) FeasibilityAnalysis {
	var all []Violation
	for i := range itin.Days {
		all = append(all, ValidateDay(&itin.Days[i], cfg)...)
	}
	return Analyze(all, cfg)
}

// MoveCheck is the structured answer to "may this slot move to that day".
type MoveCheck struct {
	Allowed  bool
	Reason   string
	Analysis *FeasibilityAnalysis // set only when the full validation ran
}

// CanMoveSlot gates a drag-and-drop reschedule. Locked slots and timed
// tickets are rejected immediately without running the layer set; anything
// else is judged by validating the hypothetically moved itinerary.
func CanMoveSlot(itin *domain.Itinerary, slotID, fromDate, toDate string, cfg Config) MoveCheck {
	fromDay := itin.DayByDate(fromDate)
	if fromDay == nil {
		return MoveCheck{Reason: fmt.Sprintf("day %s not found", fromDate)}
	}
	slot := fromDay.SlotByID(slotID)
	if slot == nil {
		return MoveCheck{Reason: fmt.Sprintf("slot %s not found on %s", slotID, fromDate)}
	}

	if slot.IsLocked {
		return MoveCheck{Reason: fmt.Sprintf("%s is locked in place", slot.ActivityName())}
	}
	if slot.Fragility.TicketType == domain.TicketTimed {
		return MoveCheck{Reason: fmt.Sprintf("%s has a timed ticket and cannot move", slot.ActivityName())}
	}

	toDay := itin.DayByDate(toDate)
	if toDate != "" && toDay == nil {
		return MoveCheck{Reason: fmt.Sprintf("day %s not found", toDate)}
	}

	moved := moveSlot(itin, slotID, fromDate, toDate)
	fa := ValidateItinerary(moved, cfg)
	reason := ""
	if !fa.Feasible {
		reason = "the move breaks itinerary constraints"
	}
	return MoveCheck{Allowed: fa.Feasible, Reason: reason, Analysis: &fa}
}

// moveSlot builds a deep-enough copy of the itinerary with the slot
// relocated (appended to the target day, kept sorted by start time). An
// empty toDate reorders within the source day only, which amounts to a
// revalidation.
func moveSlot(itin *domain.Itinerary, slotID, fromDate, toDate string) *domain.Itinerary {
	out := &domain.Itinerary{TripID: itin.TripID, Title: itin.Title, Days: make([]domain.Day, len(itin.Days))}
	copy(out.Days, itin.Days)

	var moved domain.Slot
	for d := range out.Days {
		if out.Days[d].Date != fromDate {
			continue
		}
		src := out.Days[d].Slots
		kept := make([]domain.Slot, 0, len(src))
		for _, s := range src {
			if s.ID == slotID {
				moved = s
				continue
			}
			kept = append(kept, s)
		}
		out.Days[d].Slots = kept
	}

	target := fromDate
	if toDate != "" {
		target = toDate
	}
	for d := range out.Days {
		if out.Days[d].Date != target {
			continue
		}
		slots := make([]domain.Slot, len(out.Days[d].Slots), len(out.Days[d].Slots)+1)
		copy(slots, out.Days[d].Slots)
		// Insert by start time to keep the day ordered.
		pos := len(slots)
		for i := range slots {
			if moved.TimeRange.Start < slots[i].TimeRange.Start {
				pos = i
				break
			}
		}
		slots = append(slots[:pos], append([]domain.Slot{moved}, slots[pos:]...)...)
		out.Days[d].Slots = slots
	}
	return out
}
