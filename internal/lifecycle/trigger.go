// Package lifecycle owns the per-slot activity state machine.
//
// Transitions are pure: given the current execution record and a trigger,
// Transition returns a replacement record. It never mutates its input and
// performs no I/O; persisting the result and emitting events is the
// orchestrator's job.
package lifecycle

// Trigger is a sealed sum type: one variant per external cause of a state
// change, each carrying only its own payload fields.
type Trigger interface {
	isTrigger()
}

// CheckIn is an explicit user arrival at the activity.
type CheckIn struct{}

// Depart signals the traveler has left for the activity (user action or
// exit from the previous venue's geofence).
type Depart struct{}

// CheckOut finishes the activity with an optional rating and notes.
type CheckOut struct {
	Rating int
	Notes  string
}

// Skip abandons the activity with a reason.
type Skip struct {
	Reason string
}

// Extend lengthens an in-progress activity by the given minutes.
type Extend struct {
	Minutes int
}

// Defer pushes the activity to another day.
type Defer struct {
	TargetDay string // YYYY-MM-DD
}

// LocationDetected is a geofence entry at the activity's venue.
type LocationDetected struct{}

// ExternalClosure cancels the activity for an out-of-band reason, such as
// the venue closing.
type ExternalClosure struct {
	Reason string
}

// AutoAdvance is the time-based transition evaluated on every tick; see
// ShouldAutoTransition.
type AutoAdvance struct{}

func (CheckIn) isTrigger()          {}
func (Depart) isTrigger()           {}
func (CheckOut) isTrigger()         {}
func (Skip) isTrigger()             {}
func (Extend) isTrigger()           {}
func (Defer) isTrigger()            {}
func (LocationDetected) isTrigger() {}
func (ExternalClosure) isTrigger()  {}
func (AutoAdvance) isTrigger()      {}
