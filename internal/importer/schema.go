// Package importer loads itinerary YAML files and converts them into domain
// objects. Loading, validation and conversion are separate passes so a file's
// full error list is reported before anything is built.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItinerarySchema is the top-level YAML structure for an itinerary file.
type ItinerarySchema struct {
	TripID   string          `yaml:"trip_id"`
	Title    string          `yaml:"title"`
	Defaults *DefaultsImport `yaml:"defaults,omitempty"`
	Days     []DayImport     `yaml:"days"`
}

// DefaultsImport defines file-wide defaults that cascade to slots.
type DefaultsImport struct {
	Behavior      string   `yaml:"behavior,omitempty"`
	CommuteMethod string   `yaml:"commute_method,omitempty"`
	Rigidity      *float64 `yaml:"rigidity,omitempty"`
}

// DayImport defines one day in the itinerary file.
type DayImport struct {
	Date       string                `yaml:"date"`
	City       string                `yaml:"city"`
	Slots      []SlotImport          `yaml:"slots"`
	Transition *CityTransitionImport `yaml:"city_transition,omitempty"`
}

// CityTransitionImport defines an intercity departure at the end of a day.
type CityTransitionImport struct {
	ToCity    string `yaml:"to_city"`
	Departure string `yaml:"departure"` // HH:MM
	Mode      string `yaml:"mode,omitempty"`
}

// SlotImport defines one time box in a day.
type SlotImport struct {
	ID             string             `yaml:"id"`
	Type           string             `yaml:"type"`
	Start          string             `yaml:"start"` // HH:MM
	End            string             `yaml:"end"`   // HH:MM
	Behavior       string             `yaml:"behavior,omitempty"`
	Rigidity       *float64           `yaml:"rigidity,omitempty"`
	Cluster        string             `yaml:"cluster,omitempty"`
	Locked         bool               `yaml:"locked,omitempty"`
	SelectedOption string             `yaml:"selected_option,omitempty"`
	Options        []OptionImport     `yaml:"options"`
	Fragility      *FragilityImport   `yaml:"fragility,omitempty"`
	Commute        *CommuteImport     `yaml:"commute_from_previous,omitempty"`
	Dependencies   []DependencyImport `yaml:"dependencies,omitempty"`
}

// OptionImport defines one ranked activity alternative for a slot.
type OptionImport struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Rank        *int     `yaml:"rank,omitempty"` // defaults to list position
	DurationMin int      `yaml:"duration_min,omitempty"`
	Lat         *float64 `yaml:"lat,omitempty"`
	Lng         *float64 `yaml:"lng,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	BookingURL  string   `yaml:"booking_url,omitempty"`
}

// FragilityImport defines a slot's sensitivity metadata.
type FragilityImport struct {
	WeatherSensitivity string `yaml:"weather_sensitivity,omitempty"`
	CrowdSensitivity   string `yaml:"crowd_sensitivity,omitempty"`
	BookingRequired    bool   `yaml:"booking_required,omitempty"`
	TicketType         string `yaml:"ticket_type,omitempty"`
	BookingURL         string `yaml:"booking_url,omitempty"`
}

// CommuteImport defines the leg from the previous slot's venue.
type CommuteImport struct {
	DurationMin int     `yaml:"duration_min"`
	DistanceKm  float64 `yaml:"distance_km,omitempty"`
	Method      string  `yaml:"method,omitempty"`
}

// DependencyImport declares an ordering requirement against another slot.
type DependencyImport struct {
	Type   string `yaml:"type"` // must-before | must-after
	Target string `yaml:"target"`
}

// LoadSchema reads and parses an itinerary YAML file.
func LoadSchema(path string) (*ItinerarySchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema parses itinerary YAML from memory.
func ParseSchema(data []byte) (*ItinerarySchema, error) {
	var schema ItinerarySchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing itinerary file: %w", err)
	}
	return &schema, nil
}
