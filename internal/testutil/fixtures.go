// Package testutil provides domain fixtures for tests. Builders use
// functional options so a test states only what it cares about.
package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

var slotCounter atomic.Int64

// Slot options
type SlotOption func(*domain.Slot)

func WithSlotID(id string) SlotOption {
	return func(s *domain.Slot) { s.ID = id }
}

func WithSlotType(t domain.SlotType) SlotOption {
	return func(s *domain.Slot) { s.Type = t }
}

func WithBehavior(b domain.SlotBehavior) SlotOption {
	return func(s *domain.Slot) { s.Behavior = b }
}

func WithRigidity(r float64) SlotOption {
	return func(s *domain.Slot) { s.RigidityScore = r }
}

func Locked() SlotOption {
	return func(s *domain.Slot) { s.IsLocked = true }
}

func WithCluster(id string) SlotOption {
	return func(s *domain.Slot) { s.ClusterID = id }
}

func BookingRequired(url string) SlotOption {
	return func(s *domain.Slot) {
		s.Fragility.BookingRequired = true
		s.Fragility.BookingURL = url
	}
}

func WithTicket(t domain.TicketType) SlotOption {
	return func(s *domain.Slot) { s.Fragility.TicketType = t }
}

func WithWeatherSensitivity(v domain.Sensitivity) SlotOption {
	return func(s *domain.Slot) { s.Fragility.WeatherSensitivity = v }
}

func WithCommute(durationMin int, distanceKm float64, method domain.CommuteMethod) SlotOption {
	return func(s *domain.Slot) {
		s.CommuteFromPrevious = &domain.Commute{
			DurationMin: durationMin,
			DistanceKm:  distanceKm,
			Method:      method,
		}
	}
}

func WithDependency(t domain.DependencyType, target string) SlotOption {
	return func(s *domain.Slot) {
		s.Dependencies = append(s.Dependencies, domain.Dependency{Type: t, TargetSlotID: target})
	}
}

func WithLocation(lat, lng float64) SlotOption {
	return func(s *domain.Slot) {
		for i := range s.Options {
			loc := domain.Point{Lat: lat, Lng: lng}
			s.Options[i].Location = &loc
		}
	}
}

func WithTags(tags ...string) SlotOption {
	return func(s *domain.Slot) {
		for i := range s.Options {
			s.Options[i].Tags = tags
		}
	}
}

func WithOption(opt domain.ActivityOption) SlotOption {
	return func(s *domain.Slot) { s.Options = append(s.Options, opt) }
}

func WithSelected(optionID string) SlotOption {
	return func(s *domain.Slot) { s.SelectedOptionID = optionID }
}

func WithActivityDuration(min int) SlotOption {
	return func(s *domain.Slot) {
		for i := range s.Options {
			s.Options[i].DurationMin = min
		}
	}
}

// NewTestSlot builds a flex morning slot holding one activity option named
// after the slot. Start and end are HH:MM strings.
func NewTestSlot(name, start, end string, opts ...SlotOption) domain.Slot {
	n := slotCounter.Add(1)
	s := domain.Slot{
		ID:   fmt.Sprintf("slot-%d", n),
		Type: domain.SlotMorning,
		TimeRange: domain.TimeRange{
			Start: domain.MustClock(start),
			End:   domain.MustClock(end),
		},
		Behavior: domain.BehaviorFlex,
		Options: []domain.ActivityOption{
			{ID: fmt.Sprintf("opt-%d", n), Name: name, Rank: 1},
		},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Day options
type DayOption func(*domain.Day)

func WithCity(city string) DayOption {
	return func(d *domain.Day) { d.City = city }
}

func WithTransition(toCity, departure, mode string) DayOption {
	return func(d *domain.Day) {
		d.CityTransition = &domain.CityTransition{
			FromCity:     d.City,
			ToCity:       toCity,
			DepartureMin: domain.MustClock(departure),
			Mode:         mode,
		}
	}
}

// NewTestDay builds a day from pre-built slots.
func NewTestDay(date string, slots []domain.Slot, opts ...DayOption) domain.Day {
	d := domain.Day{Date: date, City: "Kyoto", Slots: slots}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewTestItinerary wraps days into a trip.
func NewTestItinerary(tripID string, days ...domain.Day) *domain.Itinerary {
	return &domain.Itinerary{TripID: tripID, Title: tripID, Days: days}
}

// NewTestExecution builds the initial runtime record for a slot.
func NewTestExecution(s *domain.Slot) domain.ActivityExecution {
	return domain.NewExecution(s)
}
