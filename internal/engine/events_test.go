package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(func(Event) { order = append(order, "first") })
	bus.Subscribe(func(Event) { order = append(order, "second") })
	bus.Subscribe(func(Event) { order = append(order, "third") })

	bus.Publish(newEvent(EventTripStarted, "trip", "", time.Now(), nil))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_PanickingListenerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()
	var delivered []string
	bus.Subscribe(func(Event) { delivered = append(delivered, "before") })
	bus.Subscribe(func(Event) { panic("listener blew up") })
	bus.Subscribe(func(Event) { delivered = append(delivered, "after") })

	assert.NotPanics(t, func() {
		bus.Publish(newEvent(EventTripStarted, "trip", "", time.Now(), nil))
	})
	assert.Equal(t, []string{"before", "after"}, delivered)
}

func TestBus_ChannelSubscriberDropsWhenFull(t *testing.T) {
	bus := NewBus()
	ch := bus.SubscribeChan(2)

	for i := 0; i < 5; i++ {
		bus.Publish(newEvent(EventStateChanged, "trip", "slot", time.Now(), nil))
	}

	// Two buffered, three dropped; the bus itself never blocked.
	assert.Len(t, ch, 2)
}

func TestNewEvent_CarriesIdentity(t *testing.T) {
	at := time.Date(2025, 4, 12, 9, 30, 0, 0, time.UTC)
	ev := newEvent(EventSkipped, "trip-1", "slot-1", at, map[string]any{"reason": "closed"})

	require.NotEmpty(t, ev.ID)
	assert.Equal(t, EventSkipped, ev.Type)
	assert.Equal(t, "trip-1", ev.TripID)
	assert.Equal(t, "slot-1", ev.SlotID)
	assert.Equal(t, at, ev.At)
	assert.Equal(t, "closed", ev.Payload["reason"])

	other := newEvent(EventSkipped, "trip-1", "slot-1", at, nil)
	assert.NotEqual(t, ev.ID, other.ID)
}
