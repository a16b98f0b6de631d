package domain

type SlotType string

const (
	SlotBreakfast SlotType = "breakfast"
	SlotMorning   SlotType = "morning"
	SlotLunch     SlotType = "lunch"
	SlotAfternoon SlotType = "afternoon"
	SlotDinner    SlotType = "dinner"
	SlotEvening   SlotType = "evening"
)

// MealSlotTypes is the set of slot types treated as meals by the
// extension calculator's skip-priority scoring.
var MealSlotTypes = map[SlotType]bool{
	SlotBreakfast: true, SlotLunch: true, SlotDinner: true,
}

type SlotBehavior string

const (
	BehaviorAnchor   SlotBehavior = "anchor"
	BehaviorFlex     SlotBehavior = "flex"
	BehaviorMeal     SlotBehavior = "meal"
	BehaviorOptional SlotBehavior = "optional"
)

// ValidSlotBehaviors is the canonical set of accepted behavior strings.
var ValidSlotBehaviors = map[string]bool{
	"anchor": true, "flex": true, "meal": true, "optional": true,
}

type ActivityState string

const (
	StateUpcoming   ActivityState = "upcoming"
	StatePending    ActivityState = "pending"
	StateEnRoute    ActivityState = "en_route"
	StateInProgress ActivityState = "in_progress"
	StateExtended   ActivityState = "extended"
	StateCompleted  ActivityState = "completed"
	StateSkipped    ActivityState = "skipped"
)

// IsTerminal reports whether no further transitions are possible.
func (s ActivityState) IsTerminal() bool {
	return s == StateCompleted || s == StateSkipped
}

// IsActive reports whether the traveler is currently at the activity.
func (s ActivityState) IsActive() bool {
	return s == StateInProgress || s == StateExtended
}

type DependencyType string

const (
	MustBefore DependencyType = "must-before"
	MustAfter  DependencyType = "must-after"
)

type TicketType string

const (
	TicketNone    TicketType = "none"
	TicketGeneral TicketType = "general"
	TicketTimed   TicketType = "timed"
)

type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

type CommuteMethod string

const (
	CommuteWalk    CommuteMethod = "walk"
	CommuteTransit CommuteMethod = "transit"
	CommuteTaxi    CommuteMethod = "taxi"
)

type DelayStatus string

const (
	DelayOnTrack        DelayStatus = "on_track"
	DelayMinor          DelayStatus = "minor_delay"
	DelayNeedsAttention DelayStatus = "needs_attention"
	DelayCritical       DelayStatus = "critical"
)

// DelayStatusFor bands a signed delay estimate (positive = behind plan).
func DelayStatusFor(delayMin int) DelayStatus {
	switch {
	case delayMin <= 5:
		return DelayOnTrack
	case delayMin <= 15:
		return DelayMinor
	case delayMin <= 30:
		return DelayNeedsAttention
	default:
		return DelayCritical
	}
}

type SessionMode string

const (
	ModeActive  SessionMode = "active"
	ModePaused  SessionMode = "paused"
	ModeStopped SessionMode = "stopped"
)

type WeatherCondition string

const (
	WeatherClear  WeatherCondition = "clear"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRain   WeatherCondition = "rain"
	WeatherHeat   WeatherCondition = "heat"
	WeatherCold   WeatherCondition = "cold"
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyNormal EnergyLevel = "normal"
	EnergyHigh   EnergyLevel = "high"
)
