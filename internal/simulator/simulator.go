// Package simulator perturbs a day's execution with seeded random
// diversions (late starts, lingering, closures, commute luck) to produce
// realistic traces for stress-testing the lifecycle, delay estimator, and
// constraint machinery. It is a test harness, not production execution.
package simulator

import (
	"fmt"
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// MinActivityFloorMin is the minimum surviving activity duration after
// negative diversions.
const MinActivityFloorMin = 15

// Config selects the conditions a run is simulated under.
type Config struct {
	Seed    int64
	Weather domain.WeatherCondition
	Energy  domain.EnergyLevel
}

// Event is one diversion that occurred during a run.
type Event struct {
	Type          DiversionType
	SlotID        string
	ActivityName  string
	OccurredAtMin int // simulated minute of day
	ImpactMin     int // signed; negative = time saved
	Description   string
}

// SlotTrace records how one slot actually played out.
type SlotTrace struct {
	SlotID         string
	ActivityName   string
	ScheduledStart int
	ScheduledEnd   int
	ActualStart    int
	ActualEnd      int
	Skipped        bool
}

// Summary aggregates a run.
type Summary struct {
	TotalEvents     int
	CountsByType    map[DiversionType]int
	MostCommon      DiversionType
	LongestDelayMin int
	TimeSavedMin    int // sum of negative impacts, reported positive
	NetImpactMin    int
	FinalOffsetMin  int // how far behind (+) or ahead (-) the day ended
}

// Result is a full simulated execution trace.
type Result struct {
	Seed    int64
	Weather domain.WeatherCondition
	Energy  domain.EnergyLevel
	Events  []Event
	Slots   []SlotTrace
	Summary Summary
}

// Simulator drives one reproducible run per seed.
type Simulator struct {
	cfg Config
	rng *prng
}

// New creates a simulator for the given conditions.
func New(cfg Config) *Simulator {
	if cfg.Weather == "" {
		cfg.Weather = domain.WeatherClear
	}
	if cfg.Energy == "" {
		cfg.Energy = domain.EnergyNormal
	}
	return &Simulator{cfg: cfg, rng: newPRNG(cfg.Seed)}
}

// Reset rewinds the PRNG so the next run replays identically.
func (s *Simulator) Reset() {
	s.rng = newPRNG(s.cfg.Seed)
}

// Run walks the day's slots in order, rolling commute diversions before each
// activity and activity diversions during it, and returns the event timeline
// plus summary statistics.
func (s *Simulator) Run(day *domain.Day) Result {
	res := Result{Seed: s.cfg.Seed, Weather: s.cfg.Weather, Energy: s.cfg.Energy}
	if len(day.Slots) == 0 {
		res.Summary.CountsByType = map[DiversionType]int{}
		return res
	}

	clock := day.Slots[0].TimeRange.Start
	prevEnd := 0

	for i := range day.Slots {
		slot := &day.Slots[i]

		// The traveler never starts an activity before its window opens,
		// and never before leaving the previous one.
		floor := slot.TimeRange.Start
		if prevEnd > floor {
			floor = prevEnd
		}
		if clock < floor {
			clock = floor
		}

		// Commute diversions land before the activity begins.
		for j := range catalog {
			sp := &catalog[j]
			if sp.Phase != phaseCommute || !sp.applies(slot) {
				continue
			}
			if ev, ok := s.roll(sp, slot, clock); ok {
				res.Events = append(res.Events, ev)
				clock += ev.ImpactMin
				if clock < floor {
					clock = floor
				}
			}
		}

		trace := SlotTrace{
			SlotID:         slot.ID,
			ActivityName:   slot.ActivityName(),
			ScheduledStart: slot.TimeRange.Start,
			ScheduledEnd:   slot.TimeRange.End,
			ActualStart:    clock,
		}

		duration := slot.TimeRange.DurationMin()
		skipped := false

		// Activity diversions stretch or shrink the stay.
		for j := range catalog {
			sp := &catalog[j]
			if sp.Phase != phaseActivity || !sp.applies(slot) {
				continue
			}
			ev, ok := s.roll(sp, slot, clock+duration/2)
			if !ok {
				continue
			}
			res.Events = append(res.Events, ev)
			if ev.Type == SkipActivity || ev.Type == ActivityClosed {
				skipped = true
				duration = 0
				break
			}
			duration += ev.ImpactMin
		}

		if !skipped && duration < MinActivityFloorMin {
			duration = MinActivityFloorMin
		}

		clock += duration
		trace.ActualEnd = clock
		trace.Skipped = skipped
		res.Slots = append(res.Slots, trace)
		prevEnd = clock
	}

	res.Summary = summarize(&res, day)
	return res
}

// roll decides whether one diversion fires at the given simulated minute,
// drawing occurrence first and impact second so the stream stays stable.
func (s *Simulator) roll(sp *diversion, slot *domain.Slot, atMin int) (Event, bool) {
	p := sp.BaseProb *
		sp.timeOfDayMult(slot.TimeRange.Start) *
		sp.weatherMult(s.cfg.Weather) *
		sp.energyMult(s.cfg.Energy)

	if s.rng.Float64() >= p {
		return Event{}, false
	}

	impact := s.rng.IntBetween(sp.MinImpact, sp.MaxImpact)
	return Event{
		Type:          sp.Type,
		SlotID:        slot.ID,
		ActivityName:  slot.ActivityName(),
		OccurredAtMin: atMin,
		ImpactMin:     impact,
		Description:   fmt.Sprintf("%s: %s", slot.ActivityName(), sp.Description),
	}, true
}

// applies checks the diversion's category restriction against the activity's tags
// and name.
func (s *diversion) applies(slot *domain.Slot) bool {
	if len(s.ApplicableTo) == 0 {
		return true
	}
	opt := slot.Selected()
	if opt == nil {
		return false
	}
	name := strings.ToLower(opt.Name)
	for _, want := range s.ApplicableTo {
		if strings.Contains(name, want) {
			return true
		}
		for _, tag := range opt.Tags {
			if strings.EqualFold(tag, want) {
				return true
			}
		}
	}
	// Meal slot types satisfy meal-oriented restrictions even without tags.
	for _, want := range s.ApplicableTo {
		if string(slot.Type) == want {
			return true
		}
	}
	return false
}

func summarize(res *Result, day *domain.Day) Summary {
	sum := Summary{CountsByType: map[DiversionType]int{}}
	sum.TotalEvents = len(res.Events)

	for _, ev := range res.Events {
		sum.CountsByType[ev.Type]++
		sum.NetImpactMin += ev.ImpactMin
		if ev.ImpactMin > sum.LongestDelayMin {
			sum.LongestDelayMin = ev.ImpactMin
		}
		if ev.ImpactMin < 0 {
			sum.TimeSavedMin += -ev.ImpactMin
		}
	}

	best := 0
	for _, sp := range catalog {
		if c := sum.CountsByType[sp.Type]; c > best {
			best = c
			sum.MostCommon = sp.Type
		}
	}

	if n := len(res.Slots); n > 0 && len(day.Slots) > 0 {
		sum.FinalOffsetMin = res.Slots[n-1].ActualEnd - day.Slots[len(day.Slots)-1].TimeRange.End
	}
	return sum
}
