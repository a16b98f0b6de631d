package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/geofence"
)

var (
	templeLoc = domain.Point{Lat: 35.0116, Lng: 135.7681}
	lunchLoc  = domain.Point{Lat: 35.0030, Lng: 135.7780}
)

func testItinerary() *domain.Itinerary {
	day := domain.Day{Date: "2025-04-12", City: "Kyoto", Slots: []domain.Slot{
		{
			ID:   "temple",
			Type: domain.SlotMorning,
			TimeRange: domain.TimeRange{
				Start: domain.MustClock("09:00"),
				End:   domain.MustClock("10:30"),
			},
			Behavior: domain.BehaviorFlex,
			Options:  []domain.ActivityOption{{ID: "temple-1", Name: "Kinkakuji", Rank: 1, Location: &templeLoc}},
		},
		{
			ID:   "lunch",
			Type: domain.SlotLunch,
			TimeRange: domain.TimeRange{
				Start: domain.MustClock("11:00"),
				End:   domain.MustClock("12:30"),
			},
			Behavior: domain.BehaviorMeal,
			Options:  []domain.ActivityOption{{ID: "lunch-1", Name: "Nishiki Ramen", Rank: 1, Location: &lunchLoc}},
		},
		{
			ID:   "museum",
			Type: domain.SlotAfternoon,
			TimeRange: domain.TimeRange{
				Start: domain.MustClock("13:00"),
				End:   domain.MustClock("15:00"),
			},
			Behavior: domain.BehaviorFlex,
			Options:  []domain.ActivityOption{{ID: "museum-1", Name: "Railway Museum", Rank: 1}},
		},
	}}
	return &domain.Itinerary{TripID: "trip-kyoto", Title: "Kyoto weekend", Days: []domain.Day{day}}
}

func at(hhmm string) time.Time {
	m := domain.MustClock(hhmm)
	return time.Date(2025, 4, 12, m/60, m%60, 0, 0, time.UTC)
}

func startedSession(t *testing.T) (*Session, *[]Event) {
	t.Helper()
	s := NewSession(testItinerary())
	var events []Event
	s.Bus().Subscribe(func(ev Event) { events = append(events, ev) })
	require.NoError(t, s.Start("2025-04-12", at("08:00")))
	return s, &events
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestSession_StartCreatesRuntimeState(t *testing.T) {
	s, events := startedSession(t)

	assert.Equal(t, domain.ModeActive, s.Mode())
	assert.Len(t, s.Executions(), 3)
	for _, exec := range s.Executions() {
		assert.Equal(t, domain.StateUpcoming, exec.State)
	}

	require.Len(t, *events, 1)
	assert.Equal(t, EventTripStarted, (*events)[0].Type)
	assert.Equal(t, "trip-kyoto", (*events)[0].TripID)
	assert.Equal(t, "2025-04-12", (*events)[0].Payload["date"])
}

func TestSession_StartUnknownDay(t *testing.T) {
	s := NewSession(testItinerary())

	err := s.Start("2025-12-25", at("08:00"))
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeDayNotFound, ee.Code)
}

func TestSession_OpsBeforeStart(t *testing.T) {
	s := NewSession(testItinerary())

	err := s.CheckIn("temple", at("09:00"))
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeNotStarted, ee.Code)
}

func TestSession_CheckInCheckOutFlow(t *testing.T) {
	s, events := startedSession(t)

	require.NoError(t, s.CheckIn("temple", at("09:05")))
	exec, ok := s.Execution("temple")
	require.True(t, ok)
	assert.Equal(t, domain.StateInProgress, exec.State)
	require.NotNil(t, exec.ActualStart)
	assert.Equal(t, at("09:05"), *exec.ActualStart)

	require.NoError(t, s.CheckOut("temple", 5, "worth the queue", at("10:20")))
	exec, _ = s.Execution("temple")
	assert.Equal(t, domain.StateCompleted, exec.State)
	assert.Equal(t, 5, exec.Rating)
	assert.Equal(t, "worth the queue", exec.Notes)

	assert.Equal(t,
		[]EventType{EventTripStarted, EventStateChanged, EventStateChanged},
		eventTypes(*events))
}

func TestSession_InvalidTriggerIsSilentNoOp(t *testing.T) {
	s, events := startedSession(t)
	before := len(*events)

	// Checking out an activity that never started is ignored, not an error.
	require.NoError(t, s.CheckOut("temple", 4, "", at("09:00")))

	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StateUpcoming, exec.State)
	assert.Len(t, *events, before, "a rejected trigger emits nothing")
}

func TestSession_UnknownSlot(t *testing.T) {
	s, _ := startedSession(t)

	err := s.CheckIn("ghost", at("09:00"))
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeSlotNotFound, ee.Code)
}

func TestSession_SkipEmitsReason(t *testing.T) {
	s, events := startedSession(t)

	require.NoError(t, s.Skip("museum", "sudden downpour", at("12:40")))

	exec, _ := s.Execution("museum")
	assert.Equal(t, domain.StateSkipped, exec.State)
	assert.Equal(t, "sudden downpour", exec.SkipReason)

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventSkipped, last.Type)
	assert.Equal(t, "sudden downpour", last.Payload["reason"])
}

func TestSession_DeferRecordsTargetDay(t *testing.T) {
	s, events := startedSession(t)

	require.NoError(t, s.Defer("museum", "2025-04-13", at("08:30")))

	exec, _ := s.Execution("museum")
	assert.Equal(t, domain.StateSkipped, exec.State)
	assert.Equal(t, "2025-04-13", exec.DeferredTo)

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventDeferred, last.Type)
	assert.Equal(t, "2025-04-13", last.Payload["target_day"])
}

func TestSession_PauseResumeStop(t *testing.T) {
	s, events := startedSession(t)

	s.Pause(at("10:00"))
	assert.Equal(t, domain.ModePaused, s.Mode())
	s.Pause(at("10:01")) // already paused, no-op
	s.Resume(at("10:05"))
	assert.Equal(t, domain.ModeActive, s.Mode())
	s.Stop(at("10:10"))
	assert.Equal(t, domain.ModeStopped, s.Mode())
	s.Stop(at("10:11")) // already stopped, no-op

	assert.Equal(t,
		[]EventType{EventTripStarted, EventTripPaused, EventTripResumed, EventTripStopped},
		eventTypes(*events))

	// A stopped session rejects activity operations outright.
	err := s.CheckIn("temple", at("10:15"))
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeStopped, ee.Code)
}

func TestSession_ExtendReshapesDay(t *testing.T) {
	s, events := startedSession(t)
	require.NoError(t, s.CheckIn("temple", at("09:00")))

	// The two 30 min gaps downstream cover the request from buffer alone.
	res, err := s.Extend("temple", 45, at("10:15"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 45, res.AppliedMin)
	assert.Equal(t, 45, res.BufferAbsorbed)
	assert.True(t, res.DelaysNext, "the grant exceeds the immediate gap")

	day := s.Day()
	temple := day.SlotByID("temple")
	assert.Equal(t, domain.MustClock("11:15"), temple.TimeRange.End)
	assert.Equal(t, domain.MustClock("11:15"), day.SlotByID("lunch").TimeRange.Start,
		"lunch shifts by the 15 min the first gap could not absorb")
	assert.Equal(t, domain.MustClock("13:00"), day.SlotByID("museum").TimeRange.Start,
		"the second gap absorbs the carry before the museum")

	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StateExtended, exec.State)
	assert.Equal(t, 45, exec.ExtendedBy)
	assert.Equal(t, domain.MustClock("11:15"), exec.ScheduledEnd,
		"the execution tracks the reshaped window")

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventExtended, last.Type)
	assert.Equal(t, 45, last.Payload["applied_min"])
}

func TestSession_ExtendZeroGrantLeavesDayAlone(t *testing.T) {
	s, _ := startedSession(t)

	res, err := s.Extend("museum", 600, at("13:30"))
	require.NoError(t, err)
	assert.False(t, res.Success)

	// Museum is the last slot; nothing downstream to reclaim from.
	day := s.Day()
	assert.Equal(t, domain.MustClock("15:00"), day.SlotByID("museum").TimeRange.End)
}

func TestSession_ExtendUnknownSlot(t *testing.T) {
	s, _ := startedSession(t)

	_, err := s.Extend("ghost", 30, at("09:00"))
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeSlotNotFound, ee.Code)
}

func TestSession_TickAutoAdvances(t *testing.T) {
	s, _ := startedSession(t)

	// 08:50 is inside the pending window for the 09:00 slot.
	s.Tick(at("08:50"))
	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StatePending, exec.State)

	s.Tick(at("09:00"))
	exec, _ = s.Execution("temple")
	assert.Equal(t, domain.StateInProgress, exec.State)
	require.NotNil(t, exec.ActualStart)

	// Terminal states are left alone on later ticks.
	require.NoError(t, s.Skip("lunch", "not hungry", at("09:01")))
	s.Tick(at("11:30"))
	exec, _ = s.Execution("lunch")
	assert.Equal(t, domain.StateSkipped, exec.State)
}

func TestSession_TickEmitsDelayOnlyOnBandChange(t *testing.T) {
	s, events := startedSession(t)

	// A 20 minute late check-in puts the banner at needs_attention.
	require.NoError(t, s.CheckIn("temple", at("09:20")))
	delayEvents := func() []Event {
		var out []Event
		for _, ev := range *events {
			if ev.Type == EventDelayDetected {
				out = append(out, ev)
			}
		}
		return out
	}

	s.Tick(at("09:25"))
	require.Len(t, delayEvents(), 1)
	assert.Equal(t, 20, delayEvents()[0].Payload["delay_min"])
	assert.Equal(t, string(domain.DelayNeedsAttention), delayEvents()[0].Payload["status"])

	// Same band on the next tick: no repeat.
	s.Tick(at("09:40"))
	assert.Len(t, delayEvents(), 1)

	// Once attention shifts to the on-time lunch slot the band recovers.
	require.NoError(t, s.CheckOut("temple", 4, "", at("10:25")))
	s.Tick(at("10:45"))
	require.Len(t, delayEvents(), 2)
	assert.Equal(t, string(domain.DelayOnTrack), delayEvents()[1].Payload["status"])
}

func TestSession_TickIgnoredWhenPaused(t *testing.T) {
	s, _ := startedSession(t)
	s.Pause(at("08:45"))

	s.Tick(at("09:10"))
	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StateUpcoming, exec.State)
}

func TestSession_UpdateLocationDrivesFencesAndCheckIn(t *testing.T) {
	s, events := startedSession(t)

	// Far from everything: no fence events.
	s.UpdateLocation(domain.Point{Lat: 34.90, Lng: 135.60}, at("08:40"))
	assert.Equal(t, []EventType{EventTripStarted}, eventTypes(*events))

	// Arriving at the temple enters its fence and checks the activity in.
	s.UpdateLocation(templeLoc, at("08:58"))
	assert.Equal(t,
		[]EventType{EventTripStarted, EventFenceEntered, EventStateChanged},
		eventTypes(*events))
	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StateInProgress, exec.State)

	// Staying put past the dwell threshold fires exactly one dwell event.
	s.UpdateLocation(templeLoc, at("09:05"))
	s.UpdateLocation(templeLoc, at("09:09"))
	s.UpdateLocation(templeLoc, at("09:15"))
	s.UpdateLocation(templeLoc, at("09:20"))
	var dwells int
	for _, ev := range *events {
		if ev.Type == EventFenceDwell {
			dwells++
		}
	}
	assert.Equal(t, 1, dwells)

	// Walking away exits the fence.
	s.UpdateLocation(domain.Point{Lat: 34.90, Lng: 135.60}, at("10:35"))
	last := (*events)[len(*events)-1]
	assert.Equal(t, EventFenceExited, last.Type)
	assert.Equal(t, "temple", last.SlotID)
}

func TestSession_UpdateLocationIgnoredWhenPaused(t *testing.T) {
	s, events := startedSession(t)
	s.Pause(at("08:45"))
	before := len(*events)

	s.UpdateLocation(templeLoc, at("08:58"))
	assert.Len(t, *events, before)
}

func TestSession_Snapshot(t *testing.T) {
	s, _ := startedSession(t)

	snap := s.Snapshot(at("08:30"))
	assert.Equal(t, "trip-kyoto", snap.TripID)
	assert.Equal(t, domain.ModeActive, snap.Mode)
	assert.Nil(t, snap.Current)
	require.NotNil(t, snap.Next)
	assert.Equal(t, "temple", snap.Next.SlotID)
	assert.Equal(t, 3, snap.Progress.TotalActivities)

	require.NoError(t, s.CheckIn("temple", at("09:00")))
	snap = s.Snapshot(at("09:30"))
	require.NotNil(t, snap.Current)
	assert.Equal(t, "Kinkakuji", snap.Current.Name)
	require.NotNil(t, snap.Next)
	assert.Equal(t, "lunch", snap.Next.SlotID)

	require.NoError(t, s.CheckOut("temple", 5, "", at("10:30")))
	snap = s.Snapshot(at("10:40"))
	assert.Nil(t, snap.Current)
	assert.Equal(t, 1, snap.Progress.CompletedActivities)
	assert.Equal(t, domain.DelayOnTrack, snap.DelayStatus)
}

func TestSession_SnapshotBeforeStart(t *testing.T) {
	s := NewSession(testItinerary())

	snap := s.Snapshot(at("08:00"))
	assert.Equal(t, domain.ModeStopped, snap.Mode)
	assert.Nil(t, snap.Current)
	assert.Nil(t, snap.Next)
}

func TestSession_RestartResetsRuntimeState(t *testing.T) {
	s, _ := startedSession(t)
	require.NoError(t, s.CheckIn("temple", at("09:00")))
	s.UpdateLocation(templeLoc, at("09:01"))

	require.NoError(t, s.Start("2025-04-12", at("07:00")))

	exec, _ := s.Execution("temple")
	assert.Equal(t, domain.StateUpcoming, exec.State)
	assert.Nil(t, exec.ActualStart)
	assert.Equal(t, domain.ModeActive, s.Mode())
}

func TestSession_FencesOnlyForLocatedSlots(t *testing.T) {
	s, _ := startedSession(t)

	// The museum option has no coordinates, so only two fences exist.
	assert.Len(t, s.fences, 2)
	for _, f := range s.fences {
		assert.Equal(t, geofence.FenceActivity, f.Type)
		assert.NotEmpty(t, f.ActivitySlotID)
	}
}
