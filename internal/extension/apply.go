package extension

import "github.com/wayfarerhq/wayfarer/internal/domain"

// Apply materializes an already-computed extension result as a new slot list
// with shifted time ranges. The input day is never mutated, and the transform
// is a pure function of (day, result): re-running it yields the same output.
//
// Skipped slots keep their original range (vacated, not moved) and their
// duration soaks up overflow so later slots fall back onto schedule.
func Apply(day *domain.Day, res Result) []domain.Slot {
	out := make([]domain.Slot, len(day.Slots))
	copy(out, day.Slots)

	idx := day.SlotIndex(res.SlotID)
	if idx < 0 || res.AppliedMin <= 0 {
		return out
	}

	shortenedBy := make(map[string]int, len(res.Shortened))
	for _, s := range res.Shortened {
		shortenedBy[s.SlotID] = s.Minutes
	}
	skipped := make(map[string]bool, len(res.SkippedSlots))
	for _, s := range res.SkippedSlots {
		skipped[s.SlotID] = true
	}

	out[idx].TimeRange.End += res.AppliedMin

	carry := res.AppliedMin
	for i := idx + 1; i < len(out); i++ {
		gap := day.Slots[i].TimeRange.Start - day.Slots[i-1].TimeRange.End
		if gap > 0 {
			carry -= gap
		}
		if carry <= 0 {
			break
		}

		if skipped[out[i].ID] {
			carry -= day.Slots[i].TimeRange.DurationMin()
			continue
		}

		out[i].TimeRange.Start += carry
		out[i].TimeRange.End += carry
		if m := shortenedBy[out[i].ID]; m > 0 {
			out[i].TimeRange.End -= m
			carry -= m
		}
	}

	return out
}
