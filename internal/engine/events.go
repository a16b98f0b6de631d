// Package engine composes the lifecycle, geofence, progress, extension and
// constraint packages into one per-trip execution session. The session is the
// only owner of runtime state; everything it calls is pure, and every change
// is announced on the event bus.
package engine

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTripStarted   EventType = "trip_started"
	EventTripPaused    EventType = "trip_paused"
	EventTripResumed   EventType = "trip_resumed"
	EventTripStopped   EventType = "trip_stopped"
	EventStateChanged  EventType = "activity_state_changed"
	EventSkipped       EventType = "activity_skipped"
	EventExtended      EventType = "activity_extended"
	EventDeferred      EventType = "activity_deferred"
	EventFenceEntered  EventType = "geofence_entered"
	EventFenceExited   EventType = "geofence_exited"
	EventFenceDwell    EventType = "geofence_dwell"
	EventDelayDetected EventType = "delay_detected"
)

// Event is one entry on a session's outbound stream. Payload keys are
// event-type specific (old_state, new_state, delay_min, and so on).
type Event struct {
	ID      string
	Type    EventType
	TripID  string
	SlotID  string // empty for trip-level events
	At      time.Time
	Payload map[string]any
}

func newEvent(typ EventType, tripID, slotID string, at time.Time, payload map[string]any) Event {
	return Event{
		ID:      uuid.New().String(),
		Type:    typ,
		TripID:  tripID,
		SlotID:  slotID,
		At:      at,
		Payload: payload,
	}
}

// Listener receives events synchronously. A listener that panics is recovered
// and never interrupts delivery to the listeners after it.
type Listener func(Event)

// Bus is a fire-and-forget fan-out to listeners in registration order. It is
// not internally locked; like the session that owns it, callers serialize
// access externally.
type Bus struct {
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener. Delivery order follows registration order.
func (b *Bus) Subscribe(fn Listener) {
	b.listeners = append(b.listeners, fn)
}

// SubscribeChan registers a buffered channel listener for pull-style
// consumers. When the buffer is full the event is dropped for that channel;
// the bus never blocks.
func (b *Bus) SubscribeChan(buf int) <-chan Event {
	ch := make(chan Event, buf)
	b.Subscribe(func(ev Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	return ch
}

// Publish delivers the event to every listener, isolating failures.
func (b *Bus) Publish(ev Event) {
	for _, fn := range b.listeners {
		deliver(fn, ev)
	}
}

func deliver(fn Listener, ev Event) {
	defer func() {
		_ = recover()
	}()
	fn(ev)
}
