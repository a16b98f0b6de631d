package engine

import (
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/extension"
	"github.com/wayfarerhq/wayfarer/internal/geofence"
	"github.com/wayfarerhq/wayfarer/internal/lifecycle"
	"github.com/wayfarerhq/wayfarer/internal/progress"
)

// EngineError is a hard failure: a reference that does not resolve or an
// operation against a session in the wrong mode. Expected conditions
// (invalid triggers, insufficient buffer) are never surfaced this way.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

const (
	ErrCodeDayNotFound  = "day_not_found"
	ErrCodeSlotNotFound = "slot_not_found"
	ErrCodeNotStarted   = "not_started"
	ErrCodeStopped      = "session_stopped"
)

func dayNotFound(date string) *EngineError {
	return &EngineError{Code: ErrCodeDayNotFound, Message: fmt.Sprintf("day %s not found", date)}
}

func slotNotFound(slotID string) *EngineError {
	return &EngineError{Code: ErrCodeSlotNotFound, Message: fmt.Sprintf("slot %s not found on the active day", slotID)}
}

// Session drives one trip's execution. It owns the activity map, the fence
// set and the dwell tracker for the active day; every state change flows
// through the pure lifecycle transition and is announced on the bus.
//
// The session is deliberately not internally locked. Embed it behind one
// goroutine (or any external serialization) when the host is concurrent.
// Every operation takes the caller's notion of now; the session never reads
// the system clock to make a decision.
type Session struct {
	tripID string
	itin   *domain.Itinerary
	bus    *Bus

	mode       domain.SessionMode
	day        domain.Day // working copy; extensions reshape its slots
	activities map[string]domain.ActivityExecution
	fences     []geofence.Geofence
	dwell      *geofence.DwellTracker
	lastLoc    *domain.Point
	lastDelay  domain.DelayStatus
}

// NewSession prepares a session for the itinerary. Nothing runs until Start.
func NewSession(itin *domain.Itinerary) *Session {
	return &Session{
		tripID: itin.TripID,
		itin:   itin,
		bus:    NewBus(),
		mode:   domain.ModeStopped,
	}
}

// Bus exposes the session's event stream for subscription.
func (s *Session) Bus() *Bus {
	return s.bus
}

func (s *Session) Mode() domain.SessionMode {
	return s.mode
}

// Day returns the active day's working copy, nil before Start.
func (s *Session) Day() *domain.Day {
	if s.activities == nil {
		return nil
	}
	return &s.day
}

// Execution looks up the runtime record for a slot on the active day.
func (s *Session) Execution(slotID string) (domain.ActivityExecution, bool) {
	e, ok := s.activities[slotID]
	return e, ok
}

// Executions returns a copy of the activity map for read-only consumers.
func (s *Session) Executions() map[string]domain.ActivityExecution {
	out := make(map[string]domain.ActivityExecution, len(s.activities))
	for k, v := range s.activities {
		out[k] = v
	}
	return out
}

// Start activates the given day: one execution per slot, one fence per slot
// with a location, a fresh dwell tracker. Starting again resets the session
// onto the new day.
func (s *Session) Start(date string, now time.Time) error {
	day := s.itin.DayByDate(date)
	if day == nil {
		return dayNotFound(date)
	}

	s.day = *day
	s.day.Slots = make([]domain.Slot, len(day.Slots))
	copy(s.day.Slots, day.Slots)

	s.activities = make(map[string]domain.ActivityExecution, len(day.Slots))
	for i := range s.day.Slots {
		s.activities[s.day.Slots[i].ID] = domain.NewExecution(&s.day.Slots[i])
	}
	s.fences = geofence.ForDay(&s.day, geofence.DefaultRadiusM)
	s.dwell = geofence.NewDwellTracker(geofence.DefaultDwellThreshold)
	s.lastLoc = nil
	s.lastDelay = domain.DelayOnTrack
	s.mode = domain.ModeActive

	s.bus.Publish(newEvent(EventTripStarted, s.tripID, "", now, map[string]any{"date": date}))
	return nil
}

// Pause suspends ticking. A no-op unless the session is active.
func (s *Session) Pause(now time.Time) {
	if s.mode != domain.ModeActive {
		return
	}
	s.mode = domain.ModePaused
	s.bus.Publish(newEvent(EventTripPaused, s.tripID, "", now, nil))
}

// Resume is a no-op unless the session is paused.
func (s *Session) Resume(now time.Time) {
	if s.mode != domain.ModePaused {
		return
	}
	s.mode = domain.ModeActive
	s.bus.Publish(newEvent(EventTripResumed, s.tripID, "", now, nil))
}

// Stop ends the session. Runtime state is kept for inspection; only a new
// Start clears it.
func (s *Session) Stop(now time.Time) {
	if s.mode == domain.ModeStopped {
		return
	}
	s.mode = domain.ModeStopped
	s.bus.Publish(newEvent(EventTripStopped, s.tripID, "", now, nil))
}

// transition runs one trigger through the lifecycle and records the result.
// A rejected trigger is informational, not an error.
func (s *Session) transition(slotID string, trg lifecycle.Trigger, now time.Time) (domain.ActivityExecution, bool, error) {
	if s.activities == nil {
		return domain.ActivityExecution{}, false, &EngineError{Code: ErrCodeNotStarted, Message: "session has not been started"}
	}
	if s.mode == domain.ModeStopped {
		return domain.ActivityExecution{}, false, &EngineError{Code: ErrCodeStopped, Message: "session is stopped"}
	}
	exec, ok := s.activities[slotID]
	if !ok {
		return domain.ActivityExecution{}, false, slotNotFound(slotID)
	}

	next, accepted := lifecycle.Transition(exec, trg, now)
	if !accepted {
		return exec, false, nil
	}
	s.activities[slotID] = next
	if next.State != exec.State {
		s.bus.Publish(newEvent(EventStateChanged, s.tripID, slotID, now, map[string]any{
			"old_state": string(exec.State),
			"new_state": string(next.State),
		}))
	}
	return next, true, nil
}

// CheckIn marks arrival at the slot's activity.
func (s *Session) CheckIn(slotID string, now time.Time) error {
	_, _, err := s.transition(slotID, lifecycle.CheckIn{}, now)
	return err
}

// CheckOut completes the slot's activity with an optional rating and notes.
func (s *Session) CheckOut(slotID string, rating int, notes string, now time.Time) error {
	_, _, err := s.transition(slotID, lifecycle.CheckOut{Rating: rating, Notes: notes}, now)
	return err
}

// Skip abandons the slot's activity.
func (s *Session) Skip(slotID, reason string, now time.Time) error {
	exec, accepted, err := s.transition(slotID, lifecycle.Skip{Reason: reason}, now)
	if err != nil {
		return err
	}
	if accepted {
		s.bus.Publish(newEvent(EventSkipped, s.tripID, slotID, now, map[string]any{
			"reason": exec.SkipReason,
		}))
	}
	return nil
}

// Defer pushes a not-yet-started activity to another day.
func (s *Session) Defer(slotID, targetDay string, now time.Time) error {
	exec, accepted, err := s.transition(slotID, lifecycle.Defer{TargetDay: targetDay}, now)
	if err != nil {
		return err
	}
	if accepted {
		s.bus.Publish(newEvent(EventDeferred, s.tripID, slotID, now, map[string]any{
			"target_day": exec.DeferredTo,
		}))
	}
	return nil
}

// Extend asks the impact calculator how many of the requested minutes can be
// granted, applies what it grants to the day, and reports the full analysis.
// A partial or zero grant is a structured result, never an error.
func (s *Session) Extend(slotID string, minutes int, now time.Time) (extension.Result, error) {
	if s.activities == nil {
		return extension.Result{}, &EngineError{Code: ErrCodeNotStarted, Message: "session has not been started"}
	}
	if s.mode == domain.ModeStopped {
		return extension.Result{}, &EngineError{Code: ErrCodeStopped, Message: "session is stopped"}
	}
	if s.day.SlotByID(slotID) == nil {
		return extension.Result{}, slotNotFound(slotID)
	}

	res := extension.Analyze(&s.day, slotID, minutes)
	if res.AppliedMin <= 0 {
		return res, nil
	}

	s.day.Slots = extension.Apply(&s.day, res)

	// Executions follow the reshaped plan so the delay estimate stays aligned.
	for i := range s.day.Slots {
		slot := &s.day.Slots[i]
		if exec, ok := s.activities[slot.ID]; ok {
			exec.ScheduledStart = slot.TimeRange.Start
			exec.ScheduledEnd = slot.TimeRange.End
			s.activities[slot.ID] = exec
		}
	}

	if _, _, err := s.transition(slotID, lifecycle.Extend{Minutes: res.AppliedMin}, now); err != nil {
		return res, err
	}
	for _, sk := range res.SkippedSlots {
		if err := s.Skip(sk.SlotID, fmt.Sprintf("skipped to extend %s", slotID), now); err != nil {
			return res, err
		}
	}

	s.bus.Publish(newEvent(EventExtended, s.tripID, slotID, now, map[string]any{
		"requested_min": res.RequestedMin,
		"applied_min":   res.AppliedMin,
		"success":       res.Success,
	}))
	return res, nil
}

// UpdateLocation feeds one location sample: fence enter/exit detection, dwell
// tracking, and auto check-in when an activity fence is entered. Ignored
// unless the session is active.
func (s *Session) UpdateLocation(p domain.Point, now time.Time) {
	if s.mode != domain.ModeActive {
		return
	}

	evs := geofence.DetectEvents(s.lastLoc, p, s.fences)
	for _, f := range evs.Entered {
		s.bus.Publish(newEvent(EventFenceEntered, s.tripID, f.ActivitySlotID, now, map[string]any{
			"fence_id":   f.ID,
			"fence_type": string(f.Type),
		}))
		if f.ActivitySlotID != "" {
			s.transition(f.ActivitySlotID, lifecycle.LocationDetected{}, now)
		}
	}
	for _, f := range evs.Exited {
		s.bus.Publish(newEvent(EventFenceExited, s.tripID, f.ActivitySlotID, now, map[string]any{
			"fence_id":   f.ID,
			"fence_type": string(f.Type),
		}))
	}

	for _, d := range s.dwell.Update(p, now, s.fences) {
		s.bus.Publish(newEvent(EventFenceDwell, s.tripID, d.Fence.ActivitySlotID, now, map[string]any{
			"fence_id":    d.Fence.ID,
			"elapsed_sec": int(d.Elapsed.Seconds()),
		}))
	}

	loc := p
	s.lastLoc = &loc
}

// Tick advances time-based behavior: auto-transitions for every non-terminal
// activity, then a delay recompute. A missed transition self-heals on the
// next tick. Delay events fire only when the status band changes.
func (s *Session) Tick(now time.Time) {
	if s.mode != domain.ModeActive {
		return
	}
	nowMin := domain.MinutesOfDay(now)

	for i := range s.day.Slots {
		id := s.day.Slots[i].ID
		exec := s.activities[id]
		if exec.State.IsTerminal() {
			continue
		}
		if lifecycle.ShouldAutoTransition(exec, nowMin) {
			s.transition(id, lifecycle.AutoAdvance{}, now)
		}
	}

	delay := progress.DelayMinutes(&s.day, s.activities, nowMin)
	status := domain.DelayStatusFor(delay)
	if status != s.lastDelay {
		s.lastDelay = status
		s.bus.Publish(newEvent(EventDelayDetected, s.tripID, "", now, map[string]any{
			"delay_min": delay,
			"status":    string(status),
		}))
	}
}

// ActivityView is the snapshot's per-slot projection.
type ActivityView struct {
	SlotID   string
	Name     string
	State    domain.ActivityState
	StartMin int
	EndMin   int
}

// Snapshot is the pull-based view the UI renders from.
type Snapshot struct {
	TripID      string
	Date        string
	Mode        domain.SessionMode
	Current     *ActivityView // in progress or extended, nil between activities
	Next        *ActivityView // first not-yet-started activity
	Progress    progress.DayProgress
	DelayMin    int
	DelayStatus domain.DelayStatus
}

// Views returns one view per slot of the active day, in schedule order.
func (s *Session) Views() []ActivityView {
	views := make([]ActivityView, 0, len(s.day.Slots))
	for i := range s.day.Slots {
		slot := &s.day.Slots[i]
		exec := s.activities[slot.ID]
		views = append(views, ActivityView{
			SlotID:   slot.ID,
			Name:     slot.ActivityName(),
			State:    exec.State,
			StartMin: slot.TimeRange.Start,
			EndMin:   slot.TimeRange.End,
		})
	}
	return views
}

// Snapshot reports the session's current state at the given instant.
func (s *Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{TripID: s.tripID, Mode: s.mode}
	if s.activities == nil {
		return snap
	}
	snap.Date = s.day.Date

	var current, next *ActivityView
	for i := range s.day.Slots {
		slot := &s.day.Slots[i]
		exec := s.activities[slot.ID]
		view := &ActivityView{
			SlotID:   slot.ID,
			Name:     slot.ActivityName(),
			State:    exec.State,
			StartMin: slot.TimeRange.Start,
			EndMin:   slot.TimeRange.End,
		}
		switch {
		case exec.State.IsActive() && current == nil:
			current = view
		case !exec.State.IsTerminal() && !exec.State.IsActive() && next == nil:
			next = view
		}
	}
	snap.Current = current
	snap.Next = next

	nowMin := domain.MinutesOfDay(now)
	snap.Progress = progress.Calculate(&s.day, s.activities)
	snap.DelayMin = progress.DelayMinutes(&s.day, s.activities, nowMin)
	snap.DelayStatus = domain.DelayStatusFor(snap.DelayMin)
	return snap
}
