package extension

import "github.com/wayfarerhq/wayfarer/internal/domain"

// eveningStartMin marks slots that start at or after 17:00; evening plans
// are slightly protected from skipping.
var eveningStartMin = domain.MustClock("17:00")

// SkipPriority scores a slot for the skipping pass. Lower scores are
// sacrificed first.
//
//	base                       50
//	meal slot                 +30
//	option rank protection    +max(0, 50 - rank*10)
//	starts at/after 17:00     -10
//	behavior optional         -20
//	behavior anchor           +40
func SkipPriority(slot *domain.Slot) int {
	score := 50

	if domain.MealSlotTypes[slot.Type] {
		score += 30
	}
	if opt := slot.Selected(); opt != nil {
		bonus := 50 - opt.Rank*10
		if bonus > 0 {
			score += bonus
		}
	}
	if slot.TimeRange.Start >= eveningStartMin {
		score -= 10
	}
	switch slot.Behavior {
	case domain.BehaviorOptional:
		score -= 20
	case domain.BehaviorAnchor:
		score += 40
	}

	return score
}
