package simulator

import "github.com/wayfarerhq/wayfarer/internal/domain"

// DiversionType enumerates the real-world deviations the simulator injects.
type DiversionType string

const (
	LateStart        DiversionType = "late_start"
	SlowCommute      DiversionType = "slow_commute"
	FastCommute      DiversionType = "fast_commute"
	GotLost          DiversionType = "got_lost"
	WeatherDelay     DiversionType = "weather_delay"
	ExtendedStay     DiversionType = "extended_stay"
	EarlyDeparture   DiversionType = "early_departure"
	SkipActivity     DiversionType = "skip_activity"
	UnplannedStop    DiversionType = "unplanned_stop"
	ActivityClosed   DiversionType = "activity_closed"
	DiscoveredGem    DiversionType = "discovered_gem"
	MealExtension    DiversionType = "meal_extension"
	BathroomBreak    DiversionType = "bathroom_break"
	PhoneCall        DiversionType = "phone_call"
	SouvenirShopping DiversionType = "souvenir_shopping"
	EnergyLowStop    DiversionType = "energy_low"
	PerfectTiming    DiversionType = "perfect_timing"
)

// phase says whether a diversion perturbs the commute leg before an activity
// or the activity itself.
type phase int

const (
	phaseCommute phase = iota
	phaseActivity
)

// diversion describes one diversion kind: its base odds, the signed impact range
// in minutes, and the multipliers modulating the odds by time of day,
// weather, and traveler energy.
type diversion struct {
	Type     DiversionType
	Phase    phase
	BaseProb float64
	// Signed minute impact range; negative impact is time saved.
	MinImpact int
	MaxImpact int
	// Time-of-day bias.
	Morning   float64
	Afternoon float64
	Evening   float64
	// Condition-specific odds multipliers; missing key = 1.0.
	Weather map[domain.WeatherCondition]float64
	// ApplicableTo restricts the diversion to activities whose tags or name
	// contain one of these words. Empty = applies to all.
	ApplicableTo []string
	Description  string
}

// Saves reports whether this diversion's typical outcome gives time back.
func (s *diversion) Saves() bool {
	return s.MaxImpact <= 0
}

// catalog is the full set of diversion kinds, in deterministic draw order.
var catalog = []diversion{
	{
		Type: LateStart, Phase: phaseCommute, BaseProb: 0.25,
		MinImpact: 10, MaxImpact: 45,
		Morning: 1.6, Afternoon: 0.4, Evening: 0.2,
		Description: "slow morning, left later than planned",
	},
	{
		Type: SlowCommute, Phase: phaseCommute, BaseProb: 0.20,
		MinImpact: 5, MaxImpact: 25,
		Morning: 1.2, Afternoon: 1.0, Evening: 1.1,
		Weather:     map[domain.WeatherCondition]float64{domain.WeatherRain: 1.6, domain.WeatherCold: 1.2},
		Description: "transit delays on the way over",
	},
	{
		Type: FastCommute, Phase: phaseCommute, BaseProb: 0.15,
		MinImpact: -15, MaxImpact: -5,
		Morning: 0.9, Afternoon: 1.0, Evening: 1.2,
		Description: "caught every connection, arrived early",
	},
	{
		Type: GotLost, Phase: phaseCommute, BaseProb: 0.12,
		MinImpact: 5, MaxImpact: 30,
		Morning: 1.0, Afternoon: 1.0, Evening: 1.3,
		Description: "wrong turn in unfamiliar streets",
	},
	{
		Type: WeatherDelay, Phase: phaseCommute, BaseProb: 0.10,
		MinImpact: 10, MaxImpact: 40,
		Morning: 1.0, Afternoon: 1.1, Evening: 1.0,
		Weather: map[domain.WeatherCondition]float64{
			domain.WeatherRain: 3.0, domain.WeatherHeat: 1.8,
			domain.WeatherCold: 1.5, domain.WeatherClear: 0.1,
		},
		Description: "waited out the weather",
	},
	{
		Type: ExtendedStay, Phase: phaseActivity, BaseProb: 0.30,
		MinImpact: 15, MaxImpact: 60,
		Morning: 1.0, Afternoon: 1.2, Evening: 1.0,
		Description: "enjoying it too much to leave on time",
	},
	{
		Type: EarlyDeparture, Phase: phaseActivity, BaseProb: 0.15,
		MinImpact: -30, MaxImpact: -10,
		Morning: 0.9, Afternoon: 1.0, Evening: 1.2,
		Description: "seen enough, moved on early",
	},
	{
		Type: SkipActivity, Phase: phaseActivity, BaseProb: 0.05,
		MinImpact: -90, MaxImpact: -30,
		Morning: 0.8, Afternoon: 1.0, Evening: 1.3,
		Description: "decided to skip this one entirely",
	},
	{
		Type: UnplannedStop, Phase: phaseActivity, BaseProb: 0.18,
		MinImpact: 10, MaxImpact: 35,
		Morning: 1.0, Afternoon: 1.2, Evening: 1.1,
		Description: "something caught the eye along the way",
	},
	{
		Type: ActivityClosed, Phase: phaseActivity, BaseProb: 0.04,
		MinImpact: -60, MaxImpact: -20,
		Morning: 1.2, Afternoon: 1.0, Evening: 1.4,
		Description: "venue unexpectedly closed",
	},
	{
		Type: DiscoveredGem, Phase: phaseActivity, BaseProb: 0.10,
		MinImpact: 20, MaxImpact: 50,
		Morning: 1.0, Afternoon: 1.1, Evening: 1.2,
		Description: "stumbled onto something special nearby",
	},
	{
		Type: MealExtension, Phase: phaseActivity, BaseProb: 0.25,
		MinImpact: 15, MaxImpact: 45,
		Morning: 0.7, Afternoon: 1.0, Evening: 1.4,
		ApplicableTo: []string{"lunch", "dinner", "breakfast", "restaurant", "cafe", "izakaya"},
		Description:  "lingered over the meal",
	},
	{
		Type: BathroomBreak, Phase: phaseActivity, BaseProb: 0.20,
		MinImpact: 5, MaxImpact: 15,
		Morning: 1.0, Afternoon: 1.0, Evening: 1.0,
		Description: "quick necessary detour",
	},
	{
		Type: PhoneCall, Phase: phaseActivity, BaseProb: 0.12,
		MinImpact: 5, MaxImpact: 20,
		Morning: 1.1, Afternoon: 1.2, Evening: 0.8,
		Description: "call from home could not wait",
	},
	{
		Type: SouvenirShopping, Phase: phaseActivity, BaseProb: 0.15,
		MinImpact: 10, MaxImpact: 40,
		Morning: 0.6, Afternoon: 1.3, Evening: 1.1,
		ApplicableTo: []string{"market", "shopping", "souvenir", "shop", "bazaar"},
		Description:  "souvenir hunt ran long",
	},
	{
		Type: EnergyLowStop, Phase: phaseActivity, BaseProb: 0.10,
		MinImpact: 15, MaxImpact: 40,
		Morning: 0.5, Afternoon: 1.2, Evening: 1.6,
		Description: "needed a proper rest",
	},
	{
		Type: PerfectTiming, Phase: phaseActivity, BaseProb: 0.08,
		MinImpact: -20, MaxImpact: -5,
		Morning: 1.0, Afternoon: 1.0, Evening: 1.0,
		Description: "no lines, no waits, everything flowed",
	},
}

// timeOfDayMult picks the diversion's bias for the slot's start time.
func (s *diversion) timeOfDayMult(startMin int) float64 {
	switch {
	case startMin < domain.MustClock("12:00"):
		return s.Morning
	case startMin < domain.MustClock("17:00"):
		return s.Afternoon
	default:
		return s.Evening
	}
}

// weatherMult looks up the condition multiplier, defaulting to 1.
func (s *diversion) weatherMult(w domain.WeatherCondition) float64 {
	if s.Weather == nil {
		return 1
	}
	if m, ok := s.Weather[w]; ok {
		return m
	}
	return 1
}

// energyMult biases the odds by traveler energy: low energy makes
// time-losing diversions more likely and time-saving ones less, high energy
// the reverse.
func (s *diversion) energyMult(e domain.EnergyLevel) float64 {
	switch e {
	case domain.EnergyLow:
		if s.Saves() {
			return 0.6
		}
		return 1.5
	case domain.EnergyHigh:
		if s.Saves() {
			return 1.3
		}
		return 0.7
	}
	return 1
}
