package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarerhq/wayfarer/internal/domain"
)

func TestDelayMinutes_UpcomingPastStart(t *testing.T) {
	day := testDay()
	execs := map[string]domain.ActivityExecution{
		"temple": execFor(day.Slots[0], domain.StateUpcoming),
	}

	// 09:20, temple should have started at 09:00 and hasn't.
	d := DelayMinutes(day, execs, domain.MustClock("09:20"))
	assert.Equal(t, 20, d)
}

func TestDelayMinutes_InProgressPastEnd(t *testing.T) {
	day := testDay()
	e := execFor(day.Slots[0], domain.StateExtended)
	execs := map[string]domain.ActivityExecution{"temple": e}

	// 10:45 falls in the gap after temple; the next slot (lunch, 11:00) is
	// selected and its execution is absent, so the local estimate is zero.
	assert.Equal(t, 0, DelayMinutes(day, execs, domain.MustClock("10:45")))

	// While still inside a window that is overrun, the overrun is reported
	// against the slot that contains now.
	lunch := execFor(day.Slots[1], domain.StateInProgress)
	lunch.ScheduledEnd = domain.MustClock("11:10") // shortened sitting
	execs["lunch"] = lunch
	assert.Equal(t, 20, DelayMinutes(day, execs, domain.MustClock("11:30")))
}

func TestDelayMinutes_LateActualStart(t *testing.T) {
	day := testDay()
	started := time.Date(2025, 4, 12, 9, 12, 0, 0, time.UTC)
	e := execFor(day.Slots[0], domain.StateInProgress)
	e.ActualStart = &started
	execs := map[string]domain.ActivityExecution{"temple": e}

	d := DelayMinutes(day, execs, domain.MustClock("09:30"))
	assert.Equal(t, 12, d)
}

func TestDelayMinutes_OnSchedule(t *testing.T) {
	day := testDay()
	started := time.Date(2025, 4, 12, 8, 58, 0, 0, time.UTC)
	e := execFor(day.Slots[0], domain.StateInProgress)
	e.ActualStart = &started
	execs := map[string]domain.ActivityExecution{"temple": e}

	assert.Equal(t, 0, DelayMinutes(day, execs, domain.MustClock("09:30")))
}

func TestDelayMinutes_NoSlotApplies(t *testing.T) {
	day := testDay()
	execs := map[string]domain.ActivityExecution{}

	// After the last slot ends there is nothing to be late for.
	assert.Equal(t, 0, DelayMinutes(day, execs, domain.MustClock("21:00")))
}

func TestStatus_Banding(t *testing.T) {
	day := testDay()
	execs := map[string]domain.ActivityExecution{
		"temple": execFor(day.Slots[0], domain.StateUpcoming),
	}

	assert.Equal(t, domain.DelayOnTrack, Status(day, execs, domain.MustClock("09:03")))
	assert.Equal(t, domain.DelayMinor, Status(day, execs, domain.MustClock("09:10")))
	assert.Equal(t, domain.DelayNeedsAttention, Status(day, execs, domain.MustClock("09:25")))
	assert.Equal(t, domain.DelayCritical, Status(day, execs, domain.MustClock("09:45")))
}
