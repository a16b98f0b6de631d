// Package extension answers "what happens if I stay N minutes longer":
// how much of the request idle buffer absorbs, what must be shortened or
// skipped to cover the rest, and which bookings come under threat.
//
// Infeasibility is data, not an error: a request that cannot be fully granted
// returns Success=false with an Alternatives payload, and the caller decides
// whether to accept the partial result.
package extension

import (
	"fmt"
	"sort"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

const (
	// MinActivityDurationMin is the floor below which no activity is
	// shortened.
	MinActivityDurationMin = 15
	// MinBookingBufferMin is the unresolved delay at which a booked slot is
	// reported at risk.
	MinBookingBufferMin = 15
)

// Shortened records one slot sacrificed partially during the shortening pass.
type Shortened struct {
	SlotID  string
	Name    string
	Minutes int
}

// Skipped records one slot sacrificed entirely during the skipping pass.
type Skipped struct {
	SlotID   string
	Name     string
	Minutes  int // full scheduled duration reclaimed
	Priority int
}

// Alternatives describes the best achievable outcome when the full request
// cannot be granted.
type Alternatives struct {
	MaxExtensionMin int
	Sacrificed      []string // activity names that the maximum costs
}

// Result is the structured, partially-appliable outcome of Analyze.
type Result struct {
	SlotID          string
	RequestedMin    int
	AppliedMin      int
	Success         bool // AppliedMin == RequestedMin
	BufferAbsorbed  int
	ShortenSavedMin int
	SkipSavedMin    int
	DelaysNext      bool
	Shortened       []Shortened
	SkippedSlots    []Skipped
	BookingsAtRisk  []string // activity names
	Message         string
	Alternatives    *Alternatives
}

// Analyze computes the impact of extending the given slot by requestedMin.
// The day is read-only; Apply materializes the change.
func Analyze(day *domain.Day, slotID string, requestedMin int) Result {
	res := Result{SlotID: slotID, RequestedMin: requestedMin}

	idx := day.SlotIndex(slotID)
	if idx < 0 {
		res.Message = fmt.Sprintf("slot %s not found in day %s", slotID, day.Date)
		return res
	}
	if requestedMin <= 0 {
		res.Message = "extension must be a positive number of minutes"
		return res
	}

	// Pass 1: idle buffer between consecutive slots, scanning forward until
	// the request is covered or slots run out.
	totalBuffer := 0
	for i := idx; i < len(day.Slots)-1 && totalBuffer < requestedMin; i++ {
		gap := day.Slots[i+1].TimeRange.Start - day.Slots[i].TimeRange.End
		if gap > 0 {
			totalBuffer += gap
		}
	}
	res.BufferAbsorbed = minInt(requestedMin, totalBuffer)
	need := requestedMin - res.BufferAbsorbed

	// Pass 2: shorten later non-locked, non-booked slots down to the floor.
	eligible := eligibleSlots(day, idx)
	if need > 0 {
		for _, s := range eligible {
			if need == 0 {
				break
			}
			slack := s.TimeRange.DurationMin() - MinActivityDurationMin
			if slack <= 0 {
				continue
			}
			take := minInt(slack, need)
			res.Shortened = append(res.Shortened, Shortened{
				SlotID:  s.ID,
				Name:    s.ActivityName(),
				Minutes: take,
			})
			res.ShortenSavedMin += take
			need -= take
		}
	}

	// Pass 3: skip whole slots in ascending skip-priority order. Slots
	// already shortened are off the table; their savings are banked.
	if need > 0 {
		shortened := make(map[string]bool, len(res.Shortened))
		for _, s := range res.Shortened {
			shortened[s.SlotID] = true
		}

		candidates := make([]*domain.Slot, 0, len(eligible))
		for _, s := range eligible {
			if !shortened[s.ID] {
				candidates = append(candidates, s)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return SkipPriority(candidates[i]) < SkipPriority(candidates[j])
		})

		for _, s := range candidates {
			if need == 0 {
				break
			}
			dur := s.TimeRange.DurationMin()
			res.SkippedSlots = append(res.SkippedSlots, Skipped{
				SlotID:   s.ID,
				Name:     s.ActivityName(),
				Minutes:  dur,
				Priority: SkipPriority(s),
			})
			// Savings are counted only up to the outstanding need, even
			// though the whole slot is vacated.
			take := minInt(dur, need)
			res.SkipSavedMin += take
			need -= take
		}
	}

	res.AppliedMin = res.BufferAbsorbed + res.ShortenSavedMin + res.SkipSavedMin
	res.Success = res.AppliedMin == requestedMin

	// The next activity's start shifts whenever the grant exceeds the gap
	// immediately after the extended slot.
	if idx < len(day.Slots)-1 {
		immediate := day.Slots[idx+1].TimeRange.Start - day.Slots[idx].TimeRange.End
		if immediate < 0 {
			immediate = 0
		}
		res.DelaysNext = res.AppliedMin > immediate
	}

	res.BookingsAtRisk = bookingsAtRisk(day, idx, requestedMin)

	if res.Success {
		if res.ShortenSavedMin == 0 && res.SkipSavedMin == 0 {
			res.Message = fmt.Sprintf("%d min absorbed by free time", res.AppliedMin)
		} else {
			res.Message = fmt.Sprintf("%d min granted: %d from free time, %d from shortening, %d from skipping",
				res.AppliedMin, res.BufferAbsorbed, res.ShortenSavedMin, res.SkipSavedMin)
		}
	} else {
		res.Message = fmt.Sprintf("only %d of %d min available", res.AppliedMin, requestedMin)
		alt := &Alternatives{MaxExtensionMin: res.AppliedMin}
		for _, s := range res.Shortened {
			alt.Sacrificed = append(alt.Sacrificed, s.Name)
		}
		for _, s := range res.SkippedSlots {
			alt.Sacrificed = append(alt.Sacrificed, s.Name)
		}
		res.Alternatives = alt
	}

	return res
}

// eligibleSlots returns the slots after idx that may be shortened or skipped:
// not locked and not tied to a booking.
func eligibleSlots(day *domain.Day, idx int) []*domain.Slot {
	var out []*domain.Slot
	for i := idx + 1; i < len(day.Slots); i++ {
		s := &day.Slots[i]
		if s.IsLocked || s.Booked() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// bookingsAtRisk walks forward from the extension point carrying the
// unresolved delay, letting each idle gap soak part of it; any booked slot
// still facing MinBookingBufferMin or more of delay is reported.
func bookingsAtRisk(day *domain.Day, idx, requestedMin int) []string {
	var atRisk []string
	delay := requestedMin
	for i := idx + 1; i < len(day.Slots) && delay > 0; i++ {
		gap := day.Slots[i].TimeRange.Start - day.Slots[i-1].TimeRange.End
		if gap > 0 {
			delay -= gap
		}
		if delay < MinBookingBufferMin {
			break
		}
		if day.Slots[i].Booked() {
			atRisk = append(atRisk, day.Slots[i].ActivityName())
		}
	}
	return atRisk
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
