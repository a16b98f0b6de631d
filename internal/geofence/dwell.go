package geofence

import (
	"time"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// DefaultDwellThreshold is how long the traveler must remain inside a fence
// before a dwell event fires.
const DefaultDwellThreshold = 10 * time.Minute

// dwellRecord exists only while the tracked location stays inside the fence.
type dwellRecord struct {
	enteredAt  time.Time
	lastSeenAt time.Time
}

// DwellTracker detects sustained presence inside geofences. The dwell event
// is edge-triggered: it fires exactly once, on the update where elapsed time
// first crosses the threshold, no matter how many ticks follow. The
// notification layer depends on that exactly-once contract.
type DwellTracker struct {
	threshold time.Duration
	records   map[string]*dwellRecord // keyed by fence ID
}

// NewDwellTracker creates a tracker; threshold <= 0 selects the default.
func NewDwellTracker(threshold time.Duration) *DwellTracker {
	if threshold <= 0 {
		threshold = DefaultDwellThreshold
	}
	return &DwellTracker{
		threshold: threshold,
		records:   make(map[string]*dwellRecord),
	}
}

// Dwell is a threshold-crossing event for one fence.
type Dwell struct {
	Fence     Geofence
	EnteredAt time.Time
	Elapsed   time.Duration
}

// Update feeds one location sample at the given instant and returns the dwell
// events that fired on this update. Records for fences no longer containing
// the location are dropped.
func (t *DwellTracker) Update(p domain.Point, now time.Time, fences []Geofence) []Dwell {
	var fired []Dwell
	inside := make(map[string]bool, len(fences))

	for _, f := range fences {
		if !f.Contains(p) {
			continue
		}
		inside[f.ID] = true

		rec, ok := t.records[f.ID]
		if !ok {
			t.records[f.ID] = &dwellRecord{enteredAt: now, lastSeenAt: now}
			continue
		}

		// Edge-trigger guard: fire only when the previous sample was still
		// below the threshold and this one is at or past it.
		prevElapsed := rec.lastSeenAt.Sub(rec.enteredAt)
		elapsed := now.Sub(rec.enteredAt)
		if prevElapsed < t.threshold && elapsed >= t.threshold {
			fired = append(fired, Dwell{Fence: f, EnteredAt: rec.enteredAt, Elapsed: elapsed})
		}
		rec.lastSeenAt = now
	}

	for id := range t.records {
		if !inside[id] {
			delete(t.records, id)
		}
	}

	return fired
}

// Tracking reports whether the tracker currently holds a record for the fence.
func (t *DwellTracker) Tracking(fenceID string) bool {
	_, ok := t.records[fenceID]
	return ok
}

// Reset drops all dwell records. Restart semantics are explicit: a new day or
// a resumed session starts with a clean tracker.
func (t *DwellTracker) Reset() {
	t.records = make(map[string]*dwellRecord)
}
