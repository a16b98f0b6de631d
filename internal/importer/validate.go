package importer

import (
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

var (
	validSlotTypes = map[string]bool{
		"breakfast": true, "morning": true, "lunch": true,
		"afternoon": true, "dinner": true, "evening": true,
	}
	validSensitivities   = map[string]bool{"low": true, "medium": true, "high": true}
	validTicketTypes     = map[string]bool{"none": true, "general": true, "timed": true}
	validCommuteMethods  = map[string]bool{"walk": true, "transit": true, "taxi": true}
	validDependencyTypes = map[string]bool{"must-before": true, "must-after": true}
)

// ValidateSchema checks an itinerary schema before conversion and returns
// every problem found, not just the first.
func ValidateSchema(schema *ItinerarySchema) []error {
	var errs []error

	if schema.TripID == "" {
		errs = append(errs, fmt.Errorf("trip_id is required"))
	}
	if len(schema.Days) == 0 {
		errs = append(errs, fmt.Errorf("days must not be empty"))
	}
	errs = append(errs, validateDefaults(schema.Defaults)...)

	seenDates := make(map[string]bool)
	for i := range schema.Days {
		errs = append(errs, validateDay(&schema.Days[i], i, seenDates)...)
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.Behavior != "" && !domain.ValidSlotBehaviors[d.Behavior] {
		errs = append(errs, fmt.Errorf("defaults.behavior: invalid value %q", d.Behavior))
	}
	if d.CommuteMethod != "" && !validCommuteMethods[d.CommuteMethod] {
		errs = append(errs, fmt.Errorf("defaults.commute_method: invalid value %q", d.CommuteMethod))
	}
	if d.Rigidity != nil && (*d.Rigidity < 0 || *d.Rigidity > 1) {
		errs = append(errs, fmt.Errorf("defaults.rigidity must be in [0,1], got %v", *d.Rigidity))
	}
	return errs
}

func validateDay(day *DayImport, idx int, seenDates map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("days[%d]", idx)

	if day.Date == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", prefix))
	} else if _, err := time.Parse("2006-01-02", day.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date %q (expected YYYY-MM-DD)", prefix, day.Date))
	} else if seenDates[day.Date] {
		errs = append(errs, fmt.Errorf("%s.date: duplicate date %q", prefix, day.Date))
	} else {
		seenDates[day.Date] = true
	}
	if day.City == "" {
		errs = append(errs, fmt.Errorf("%s.city is required", prefix))
	}

	slotIDs := make(map[string]bool, len(day.Slots))
	for s := range day.Slots {
		if id := day.Slots[s].ID; id != "" {
			if slotIDs[id] {
				errs = append(errs, fmt.Errorf("%s.slots[%d].id: duplicate id %q", prefix, s, id))
			}
			slotIDs[id] = true
		}
	}

	prevStart := -1
	for s := range day.Slots {
		slot := &day.Slots[s]
		slotPrefix := fmt.Sprintf("%s.slots[%d]", prefix, s)
		errs = append(errs, validateSlot(slot, slotPrefix, slotIDs)...)

		if start, err := domain.ParseClock(slot.Start); err == nil {
			if start < prevStart {
				errs = append(errs, fmt.Errorf("%s: slots must be ordered by start time", slotPrefix))
			}
			prevStart = start
		}
	}

	if day.Transition != nil {
		if day.Transition.ToCity == "" {
			errs = append(errs, fmt.Errorf("%s.city_transition.to_city is required", prefix))
		}
		if _, err := domain.ParseClock(day.Transition.Departure); err != nil {
			errs = append(errs, fmt.Errorf("%s.city_transition.departure: %v", prefix, err))
		}
	}

	return errs
}

func validateSlot(slot *SlotImport, prefix string, slotIDs map[string]bool) []error {
	var errs []error

	if slot.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	}
	if slot.Type == "" {
		errs = append(errs, fmt.Errorf("%s.type is required", prefix))
	} else if !validSlotTypes[slot.Type] {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, slot.Type))
	}
	if slot.Behavior != "" && !domain.ValidSlotBehaviors[slot.Behavior] {
		errs = append(errs, fmt.Errorf("%s.behavior: invalid value %q", prefix, slot.Behavior))
	}
	if slot.Rigidity != nil && (*slot.Rigidity < 0 || *slot.Rigidity > 1) {
		errs = append(errs, fmt.Errorf("%s.rigidity must be in [0,1], got %v", prefix, *slot.Rigidity))
	}

	start, startErr := domain.ParseClock(slot.Start)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start: %v", prefix, startErr))
	}
	end, endErr := domain.ParseClock(slot.End)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end: %v", prefix, endErr))
	}
	if startErr == nil && endErr == nil && end <= start {
		errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, slot.End, slot.Start))
	}

	if len(slot.Options) == 0 {
		errs = append(errs, fmt.Errorf("%s.options must not be empty", prefix))
	}
	optionIDs := make(map[string]bool, len(slot.Options))
	for o := range slot.Options {
		opt := &slot.Options[o]
		optPrefix := fmt.Sprintf("%s.options[%d]", prefix, o)
		if opt.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", optPrefix))
		} else if optionIDs[opt.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", optPrefix, opt.ID))
		} else {
			optionIDs[opt.ID] = true
		}
		if opt.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", optPrefix))
		}
		if opt.Rank != nil && *opt.Rank < 1 {
			errs = append(errs, fmt.Errorf("%s.rank must be >= 1", optPrefix))
		}
		if (opt.Lat == nil) != (opt.Lng == nil) {
			errs = append(errs, fmt.Errorf("%s: lat and lng must be given together", optPrefix))
		}
	}
	if slot.SelectedOption != "" && !optionIDs[slot.SelectedOption] {
		errs = append(errs, fmt.Errorf("%s.selected_option: option %q not found", prefix, slot.SelectedOption))
	}

	if f := slot.Fragility; f != nil {
		if f.WeatherSensitivity != "" && !validSensitivities[f.WeatherSensitivity] {
			errs = append(errs, fmt.Errorf("%s.fragility.weather_sensitivity: invalid value %q", prefix, f.WeatherSensitivity))
		}
		if f.CrowdSensitivity != "" && !validSensitivities[f.CrowdSensitivity] {
			errs = append(errs, fmt.Errorf("%s.fragility.crowd_sensitivity: invalid value %q", prefix, f.CrowdSensitivity))
		}
		if f.TicketType != "" && !validTicketTypes[f.TicketType] {
			errs = append(errs, fmt.Errorf("%s.fragility.ticket_type: invalid value %q", prefix, f.TicketType))
		}
	}

	if c := slot.Commute; c != nil {
		if c.DurationMin <= 0 {
			errs = append(errs, fmt.Errorf("%s.commute_from_previous.duration_min must be positive", prefix))
		}
		if c.Method != "" && !validCommuteMethods[c.Method] {
			errs = append(errs, fmt.Errorf("%s.commute_from_previous.method: invalid value %q", prefix, c.Method))
		}
	}

	for d, dep := range slot.Dependencies {
		depPrefix := fmt.Sprintf("%s.dependencies[%d]", prefix, d)
		if !validDependencyTypes[dep.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", depPrefix, dep.Type))
		}
		if dep.Target == "" {
			errs = append(errs, fmt.Errorf("%s.target is required", depPrefix))
		} else if !slotIDs[dep.Target] {
			errs = append(errs, fmt.Errorf("%s.target: slot %q not found in the same day", depPrefix, dep.Target))
		} else if dep.Target == slot.ID {
			errs = append(errs, fmt.Errorf("%s: a slot cannot depend on itself", depPrefix))
		}
	}

	return errs
}
