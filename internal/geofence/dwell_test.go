package geofence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDwellTracker_ExactlyOnce(t *testing.T) {
	tracker := NewDwellTracker(10 * time.Minute)
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	fences := []Geofence{fenceA}

	// Hold the location inside fence A for 2x threshold across many ticks.
	var fired []Dwell
	for i := 0; i <= 20; i++ {
		now := start.Add(time.Duration(i) * time.Minute)
		fired = append(fired, tracker.Update(insideA, now, fences)...)
	}

	require.Len(t, fired, 1, "dwell must fire exactly once, not once per tick")
	assert.Equal(t, "fence-a", fired[0].Fence.ID)
	assert.Equal(t, start, fired[0].EnteredAt)
	assert.Equal(t, 10*time.Minute, fired[0].Elapsed)
}

func TestDwellTracker_ExitResetsDwell(t *testing.T) {
	tracker := NewDwellTracker(10 * time.Minute)
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	fences := []Geofence{fenceA}

	tracker.Update(insideA, start, fences)
	tracker.Update(insideA, start.Add(5*time.Minute), fences)

	// Leaving drops the record.
	tracker.Update(outside, start.Add(6*time.Minute), fences)
	assert.False(t, tracker.Tracking("fence-a"))

	// Re-entering restarts the clock: 9 more minutes is not enough.
	tracker.Update(insideA, start.Add(7*time.Minute), fences)
	fired := tracker.Update(insideA, start.Add(16*time.Minute), fences)
	assert.Empty(t, fired)

	fired = tracker.Update(insideA, start.Add(17*time.Minute), fences)
	require.Len(t, fired, 1)
}

func TestDwellTracker_IndependentPerFence(t *testing.T) {
	tracker := NewDwellTracker(10 * time.Minute)
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	wide := Geofence{ID: "wide", Center: fenceA.Center, RadiusM: 500}
	fences := []Geofence{fenceA, wide}

	// Inside both from the start; both should dwell on the same update.
	tracker.Update(insideA, start, fences)
	fired := tracker.Update(insideA, start.Add(10*time.Minute), fences)
	require.Len(t, fired, 2)
}

func TestDwellTracker_SingleSamplePastThresholdDoesNotFire(t *testing.T) {
	// The first sample creates the record; dwell requires sustained presence
	// across at least two samples.
	tracker := NewDwellTracker(10 * time.Minute)
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

	fired := tracker.Update(insideA, start, []Geofence{fenceA})
	assert.Empty(t, fired)
}

func TestDwellTracker_Reset(t *testing.T) {
	tracker := NewDwellTracker(10 * time.Minute)
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

	tracker.Update(insideA, start, []Geofence{fenceA})
	require.True(t, tracker.Tracking("fence-a"))

	tracker.Reset()
	assert.False(t, tracker.Tracking("fence-a"))

	// After reset the clock restarts from the next sample.
	tracker.Update(insideA, start.Add(9*time.Minute), []Geofence{fenceA})
	fired := tracker.Update(insideA, start.Add(12*time.Minute), []Geofence{fenceA})
	assert.Empty(t, fired)

	fired = tracker.Update(insideA, start.Add(19*time.Minute), []Geofence{fenceA})
	require.Len(t, fired, 1)

	assert.Equal(t, fenceA.Center, fired[0].Fence.Center)
}

func TestNewDwellTracker_DefaultThreshold(t *testing.T) {
	tracker := NewDwellTracker(0)
	assert.Equal(t, DefaultDwellThreshold, tracker.threshold)
}
