package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/engine"
	"github.com/wayfarerhq/wayfarer/internal/teatest"
	"github.com/wayfarerhq/wayfarer/internal/testutil"
)

func watchFixture(t *testing.T) (*engine.Session, time.Time) {
	t.Helper()
	itin := testutil.NewTestItinerary("trip-kyoto",
		testutil.NewTestDay("2025-04-12", []domain.Slot{
			testutil.NewTestSlot("Kinkaku-ji", "09:00", "10:30", testutil.WithSlotID("temple")),
			testutil.NewTestSlot("Nishiki Ramen", "11:00", "12:30", testutil.WithSlotID("lunch")),
		}),
	)
	start := time.Date(2025, 4, 12, 8, 30, 0, 0, time.UTC)
	sess := engine.NewSession(itin)
	require.NoError(t, sess.Start("2025-04-12", start))
	return sess, start
}

func newWatchDriver(t *testing.T, sess *engine.Session, start time.Time, minPerTick int) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newWatchModel(sess, start, minPerTick))
	d.Resize(80, 24)
	d.DrainInit()
	return d
}

func TestWatchModel_RendersScheduleAndClock(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 5)

	out := stripANSI(d.View())
	assert.Contains(t, out, "08:30 (simulated, 5 min/s)")
	assert.Contains(t, out, "trip-kyoto")
	assert.Contains(t, out, "Kinkaku-ji")
	assert.Contains(t, out, "Nishiki Ramen")
	assert.Contains(t, out, "q quit")
}

func TestWatchModel_TickAdvancesClockAndAutoStarts(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 30)

	d.Send(tickMsg(time.Now())) // 09:00, temple goes pending
	d.Send(tickMsg(time.Now())) // 09:30, temple starts

	out := stripANSI(d.View())
	assert.Contains(t, out, "09:30")
	assert.Contains(t, out, "now")

	exec, ok := sess.Execution("temple")
	require.True(t, ok)
	assert.Equal(t, domain.StateInProgress, exec.State)
}

func TestWatchModel_ChecksOutWhenWindowCloses(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 30)

	d.Send(tickMsg(time.Now())) // 09:00, pending
	d.Send(tickMsg(time.Now())) // 09:30, in progress
	d.Send(tickMsg(time.Now())) // 10:00
	d.Send(tickMsg(time.Now())) // 10:30, temple window closes

	exec, ok := sess.Execution("temple")
	require.True(t, ok)
	assert.Equal(t, domain.StateCompleted, exec.State)
	assert.Contains(t, stripANSI(d.View()), "done")
}

func TestWatchModel_KeysDriveSession(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 5)

	// Check in to the next activity before its window opens.
	d.PressKey('i')
	exec, _ := sess.Execution("temple")
	assert.Equal(t, domain.StateInProgress, exec.State)

	d.PressKey('o')
	exec, _ = sess.Execution("temple")
	assert.Equal(t, domain.StateCompleted, exec.State)

	d.PressKey('s')
	exec, _ = sess.Execution("lunch")
	assert.Equal(t, domain.StateSkipped, exec.State)
}

func TestWatchModel_SpaceTogglesPause(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 60)

	d.PressKey(' ')
	assert.Equal(t, domain.ModePaused, sess.Mode())

	// Ticks keep the clock moving but the paused session ignores them.
	d.Send(tickMsg(time.Now()))
	exec, _ := sess.Execution("temple")
	assert.Equal(t, domain.StateUpcoming, exec.State)
	assert.Contains(t, stripANSI(d.View()), "PAUSED")

	d.PressKey(' ')
	assert.Equal(t, domain.ModeActive, sess.Mode())
}

func TestWatchModel_QuitStopsSession(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 5)

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Equal(t, domain.ModeStopped, sess.Mode())
	assert.Equal(t, "", d.View())
}

func TestWatchModel_EventLogCollectsBusTraffic(t *testing.T) {
	sess, start := watchFixture(t)
	d := newWatchDriver(t, sess, start, 60)

	d.Send(tickMsg(time.Now()))

	out := stripANSI(d.View())
	assert.Contains(t, out, "Events")
	assert.Contains(t, out, "activity_state_changed")
	assert.Contains(t, out, "temple")
}
