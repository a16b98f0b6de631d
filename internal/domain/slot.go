package domain

// ActivityOption is one ranked alternative for filling a slot.
type ActivityOption struct {
	ID          string
	Name        string
	Rank        int // 1 = best
	DurationMin int
	Location    *Point
	Tags        []string
	BookingURL  string
}

// TimeRange is a same-day wall-clock window in minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

// DurationMin returns the length of the window in minutes.
func (r TimeRange) DurationMin() int {
	return r.End - r.Start
}

// Contains reports whether the given minute-of-day falls inside the window.
func (r TimeRange) Contains(min int) bool {
	return min >= r.Start && min < r.End
}

// Fragility captures a slot's sensitivity to weather, crowds and bookings.
type Fragility struct {
	WeatherSensitivity Sensitivity
	CrowdSensitivity   Sensitivity
	BookingRequired    bool
	TicketType         TicketType
	BookingURL         string
}

// Dependency declares an ordering requirement against another slot.
type Dependency struct {
	Type         DependencyType
	TargetSlotID string
}

// Commute describes the leg from the previous slot's venue.
type Commute struct {
	DurationMin int
	DistanceKm  float64
	Method      CommuteMethod
}

// Slot is a planning-time time box. Immutable once generated; runtime
// progress lives in ActivityExecution.
type Slot struct {
	ID                  string
	Type                SlotType
	TimeRange           TimeRange
	Options             []ActivityOption
	SelectedOptionID    string
	Behavior            SlotBehavior
	RigidityScore       float64 // [0,1]; overrides the behavior-derived default
	Fragility           Fragility
	Dependencies        []Dependency
	ClusterID           string
	IsLocked            bool
	CommuteFromPrevious *Commute
}

// Selected returns the chosen activity option, defaulting to rank 1.
func (s *Slot) Selected() *ActivityOption {
	if len(s.Options) == 0 {
		return nil
	}
	if s.SelectedOptionID != "" {
		for i := range s.Options {
			if s.Options[i].ID == s.SelectedOptionID {
				return &s.Options[i]
			}
		}
	}
	best := &s.Options[0]
	for i := range s.Options {
		if s.Options[i].Rank < best.Rank {
			best = &s.Options[i]
		}
	}
	return best
}

// ActivityName returns the selected option's name, or the slot ID when the
// slot carries no options.
func (s *Slot) ActivityName() string {
	if opt := s.Selected(); opt != nil {
		return opt.Name
	}
	return s.ID
}

// Rigidity returns the explicit score when set, else the behavior default.
func (s *Slot) Rigidity() float64 {
	if s.RigidityScore > 0 {
		return s.RigidityScore
	}
	switch s.Behavior {
	case BehaviorAnchor:
		return 0.9
	case BehaviorMeal:
		return 0.6
	case BehaviorFlex:
		return 0.4
	case BehaviorOptional:
		return 0.2
	}
	return 0.5
}

// Booked reports whether the slot is tied to a reservation that shortening or
// skipping would forfeit.
func (s *Slot) Booked() bool {
	if s.Fragility.BookingRequired || s.Fragility.TicketType == TicketTimed {
		return true
	}
	if opt := s.Selected(); opt != nil {
		for _, tag := range opt.Tags {
			if tag == "reservation" || tag == "booking" {
				return true
			}
		}
	}
	return false
}

// CityTransition is an intercity leg attached to a day.
type CityTransition struct {
	FromCity     string
	ToCity       string
	DepartureMin int // minutes since midnight
	Mode         string
}

// Day is one day's ordered plan. Slots are ordered by TimeRange.Start.
type Day struct {
	Date           string // YYYY-MM-DD
	City           string
	Slots          []Slot
	CityTransition *CityTransition
}

// SlotByID returns the slot with the given ID, or nil.
func (d *Day) SlotByID(id string) *Slot {
	for i := range d.Slots {
		if d.Slots[i].ID == id {
			return &d.Slots[i]
		}
	}
	return nil
}

// SlotIndex returns the position of the slot with the given ID, or -1.
func (d *Day) SlotIndex(id string) int {
	for i := range d.Slots {
		if d.Slots[i].ID == id {
			return i
		}
	}
	return -1
}

// Itinerary is a full multi-day trip plan.
type Itinerary struct {
	TripID string
	Title  string
	Days   []Day
}

// DayByDate returns the day with the given date, or nil.
func (it *Itinerary) DayByDate(date string) *Day {
	for i := range it.Days {
		if it.Days[i].Date == date {
			return &it.Days[i]
		}
	}
	return nil
}
