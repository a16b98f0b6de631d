// Package geofence classifies location samples against circular venue
// regions and tracks per-region dwell time.
package geofence

import (
	"github.com/google/uuid"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

type FenceType string

const (
	FenceActivity       FenceType = "activity"
	FenceHotel          FenceType = "hotel"
	FenceTransitStation FenceType = "transit_station"
	FenceCustom         FenceType = "custom"
)

// DefaultRadiusM is the region radius used when the builder is not given an
// explicit one.
const DefaultRadiusM = 100.0

// Geofence is a circular region around a venue. Lifetime is the active day.
type Geofence struct {
	ID             string
	Type           FenceType
	Center         domain.Point
	RadiusM        float64
	ActivitySlotID string // back-reference; empty for non-activity fences
}

// New creates a fence with a generated ID.
func New(t FenceType, center domain.Point, radiusM float64) Geofence {
	if radiusM <= 0 {
		radiusM = DefaultRadiusM
	}
	return Geofence{ID: uuid.New().String(), Type: t, Center: center, RadiusM: radiusM}
}

// ForDay builds one activity fence per slot with a resolvable location.
func ForDay(day *domain.Day, radiusM float64) []Geofence {
	var fences []Geofence
	for i := range day.Slots {
		opt := day.Slots[i].Selected()
		if opt == nil || opt.Location == nil {
			continue
		}
		f := New(FenceActivity, *opt.Location, radiusM)
		f.ActivitySlotID = day.Slots[i].ID
		fences = append(fences, f)
	}
	return fences
}

// Contains reports whether p falls inside the fence.
func (g *Geofence) Contains(p domain.Point) bool {
	return domain.Haversine(p, g.Center) <= g.RadiusM
}

// Events is the membership delta between two consecutive location samples.
// Overlapping regions are not deduplicated: one update can enter or exit
// several fences at once.
type Events struct {
	Entered []Geofence
	Exited  []Geofence
}

// DetectEvents computes the set difference of fences containing curr versus
// fences containing prev. A nil prev means this is the first sample, so every
// containing fence is an entry.
func DetectEvents(prev *domain.Point, curr domain.Point, fences []Geofence) Events {
	var ev Events
	for _, f := range fences {
		in := f.Contains(curr)
		was := prev != nil && f.Contains(*prev)
		switch {
		case in && !was:
			ev.Entered = append(ev.Entered, f)
		case !in && was:
			ev.Exited = append(ev.Exited, f)
		}
	}
	return ev
}
