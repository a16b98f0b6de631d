package importer

import (
	"fmt"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// Convert transforms a validated schema into a domain itinerary. Call
// ValidateSchema first; Convert assumes the schema is valid.
func Convert(schema *ItinerarySchema) (*domain.Itinerary, error) {
	itin := &domain.Itinerary{
		TripID: schema.TripID,
		Title:  schema.Title,
		Days:   make([]domain.Day, 0, len(schema.Days)),
	}

	for i := range schema.Days {
		day, err := convertDay(&schema.Days[i], schema.Defaults)
		if err != nil {
			return nil, err
		}
		itin.Days = append(itin.Days, *day)
	}
	return itin, nil
}

// Load reads, validates and converts an itinerary file in one call. On
// validation failure the full error list is joined into the message.
func Load(path string) (*domain.Itinerary, error) {
	schema, err := LoadSchema(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid itinerary: %d problem(s), first: %v", len(errs), errs[0])
	}
	return Convert(schema)
}

func convertDay(d *DayImport, defaults *DefaultsImport) (*domain.Day, error) {
	day := &domain.Day{
		Date:  d.Date,
		City:  d.City,
		Slots: make([]domain.Slot, 0, len(d.Slots)),
	}

	for s := range d.Slots {
		slot, err := convertSlot(&d.Slots[s], defaults)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", d.Date, err)
		}
		day.Slots = append(day.Slots, *slot)
	}

	if t := d.Transition; t != nil {
		dep, err := domain.ParseClock(t.Departure)
		if err != nil {
			return nil, fmt.Errorf("day %s transition: %w", d.Date, err)
		}
		day.CityTransition = &domain.CityTransition{
			FromCity:     d.City,
			ToCity:       t.ToCity,
			DepartureMin: dep,
			Mode:         t.Mode,
		}
	}
	return day, nil
}

func convertSlot(s *SlotImport, defaults *DefaultsImport) (*domain.Slot, error) {
	start, err := domain.ParseClock(s.Start)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", s.ID, err)
	}
	end, err := domain.ParseClock(s.End)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", s.ID, err)
	}

	// Cascade: slot field > file defaults > hardcoded.
	behavior := domain.CoalesceStr(s.Behavior, defaultBehavior(defaults), string(domain.BehaviorFlex))
	rigidity := domain.Float64FromPtrWithDefault(0, s.Rigidity, defaultRigidity(defaults))

	slot := &domain.Slot{
		ID:               s.ID,
		Type:             domain.SlotType(s.Type),
		TimeRange:        domain.TimeRange{Start: start, End: end},
		SelectedOptionID: s.SelectedOption,
		Behavior:         domain.SlotBehavior(behavior),
		RigidityScore:    rigidity,
		ClusterID:        s.Cluster,
		IsLocked:         s.Locked,
	}

	slot.Options = make([]domain.ActivityOption, 0, len(s.Options))
	for o := range s.Options {
		slot.Options = append(slot.Options, convertOption(&s.Options[o], o))
	}

	if f := s.Fragility; f != nil {
		slot.Fragility = domain.Fragility{
			WeatherSensitivity: domain.Sensitivity(f.WeatherSensitivity),
			CrowdSensitivity:   domain.Sensitivity(f.CrowdSensitivity),
			BookingRequired:    f.BookingRequired,
			TicketType:         domain.TicketType(f.TicketType),
			BookingURL:         f.BookingURL,
		}
	}

	if c := s.Commute; c != nil {
		method := domain.CoalesceStr(c.Method, defaultCommuteMethod(defaults), string(domain.CommuteWalk))
		slot.CommuteFromPrevious = &domain.Commute{
			DurationMin: c.DurationMin,
			DistanceKm:  c.DistanceKm,
			Method:      domain.CommuteMethod(method),
		}
	}

	for _, dep := range s.Dependencies {
		slot.Dependencies = append(slot.Dependencies, domain.Dependency{
			Type:         domain.DependencyType(dep.Type),
			TargetSlotID: dep.Target,
		})
	}

	return slot, nil
}

func convertOption(o *OptionImport, position int) domain.ActivityOption {
	opt := domain.ActivityOption{
		ID:          o.ID,
		Name:        o.Name,
		Rank:        domain.IntFromPtrWithDefault(position+1, o.Rank),
		DurationMin: o.DurationMin,
		Tags:        o.Tags,
		BookingURL:  o.BookingURL,
	}
	if o.Lat != nil && o.Lng != nil {
		opt.Location = &domain.Point{Lat: *o.Lat, Lng: *o.Lng}
	}
	return opt
}

func defaultBehavior(d *DefaultsImport) string {
	if d != nil {
		return d.Behavior
	}
	return ""
}

func defaultCommuteMethod(d *DefaultsImport) string {
	if d != nil {
		return d.CommuteMethod
	}
	return ""
}

func defaultRigidity(d *DefaultsImport) *float64 {
	if d != nil {
		return d.Rigidity
	}
	return nil
}
