package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarerhq/wayfarer/internal/constraint"
	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/engine"
	"github.com/wayfarerhq/wayfarer/internal/repository"
	"github.com/wayfarerhq/wayfarer/internal/simulator"
	"github.com/wayfarerhq/wayfarer/internal/testutil"
)

// ansiPattern matches ANSI escape sequences so assertions are
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatAnalysis_GroupsFindingsByDay(t *testing.T) {
	itin := testutil.NewTestItinerary("trip-kyoto",
		testutil.NewTestDay("2025-04-12", []domain.Slot{
			testutil.NewTestSlot("Kinkaku-ji", "09:00", "10:30", testutil.WithSlotID("temple")),
		}),
		testutil.NewTestDay("2025-04-13", []domain.Slot{
			testutil.NewTestSlot("Skytree", "10:00", "12:00"),
		}),
	)
	perDay := map[string][]constraint.Violation{
		"2025-04-12": {
			{Layer: constraint.LayerTravel, Severity: constraint.SeverityError, SlotID: "temple", Message: "commute does not fit"},
		},
	}

	out := stripANSI(FormatAnalysis(itin, perDay, false))
	assert.Contains(t, out, "2025-04-12")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "travel")
	assert.Contains(t, out, "Kinkaku-ji")
	assert.Contains(t, out, "commute does not fit")
	assert.Contains(t, out, "not feasible")
	assert.NotContains(t, out, "2025-04-13 ·")
}

func TestFormatAnalysis_CleanItinerary(t *testing.T) {
	itin := testutil.NewTestItinerary("trip-kyoto",
		testutil.NewTestDay("2025-04-12", []domain.Slot{
			testutil.NewTestSlot("Kinkaku-ji", "09:00", "10:30"),
		}),
	)

	out := stripANSI(FormatAnalysis(itin, map[string][]constraint.Violation{}, true))
	assert.Contains(t, out, "No findings.")
	assert.Contains(t, out, "itinerary is feasible")
}

func TestFormatSimResult_TimelineAndSummary(t *testing.T) {
	res := &simulator.Result{
		Seed:    42,
		Weather: domain.WeatherRain,
		Energy:  domain.EnergyLow,
		Events: []simulator.Event{
			{Type: simulator.WeatherDelay, SlotID: "temple", ActivityName: "Kinkaku-ji", OccurredAtMin: 9*60 + 15, ImpactMin: 25, Description: "sheltered from a downpour"},
			{Type: simulator.FastCommute, SlotID: "lunch", ActivityName: "Nishiki Ramen", OccurredAtMin: 10*60 + 40, ImpactMin: -5, Description: "train arrived early"},
		},
		Summary: simulator.Summary{
			TotalEvents:     2,
			MostCommon:      simulator.WeatherDelay,
			LongestDelayMin: 25,
			TimeSavedMin:    5,
			NetImpactMin:    20,
			FinalOffsetMin:  20,
		},
	}

	out := stripANSI(FormatSimResult(res))
	assert.Contains(t, out, "seed=42 weather=rain energy=low")
	assert.Contains(t, out, "[09:15]")
	assert.Contains(t, out, "+25m")
	assert.Contains(t, out, "weather_delay")
	assert.Contains(t, out, "Kinkaku-ji")
	assert.Contains(t, out, "[10:40]")
	assert.Contains(t, out, "-5m")
	assert.Contains(t, out, "longest delay: 25 min")
	assert.Contains(t, out, "net impact:")
	assert.Contains(t, out, "+20m")
}

func TestFormatSimResult_QuietDay(t *testing.T) {
	res := &simulator.Result{Seed: 7, Weather: domain.WeatherClear, Energy: domain.EnergyHigh}
	out := stripANSI(FormatSimResult(res))
	assert.Contains(t, out, "exactly to plan")
}

func TestFormatRunList(t *testing.T) {
	runs := []*repository.SimRun{
		{
			ID:           "0d9c2a5e-1111-2222-3333-444455556666",
			TripID:       "trip-kyoto",
			DayDate:      "2025-04-12",
			Seed:         42,
			Weather:      "rain",
			Energy:       "low",
			TotalEvents:  3,
			NetImpactMin: 20,
			CreatedAt:    time.Date(2025, 4, 12, 21, 30, 0, 0, time.UTC),
		},
	}

	out := stripANSI(FormatRunList(runs))
	assert.Contains(t, out, "0d9c2a5e")
	assert.NotContains(t, out, "444455556666")
	assert.Contains(t, out, "2025-04-12")
	assert.Contains(t, out, "rain")
	assert.Contains(t, out, "+20m")
	assert.Contains(t, out, "2025-04-12 21:30")
}

func TestFormatRunList_Empty(t *testing.T) {
	out := stripANSI(FormatRunList(nil))
	assert.Contains(t, out, "No recorded runs.")
}

func TestFormatSnapshot_ShowsScheduleProgressAndDelay(t *testing.T) {
	itin := testutil.NewTestItinerary("trip-kyoto",
		testutil.NewTestDay("2025-04-12", []domain.Slot{
			testutil.NewTestSlot("Kinkaku-ji", "09:00", "10:30", testutil.WithSlotID("temple")),
			testutil.NewTestSlot("Nishiki Ramen", "11:00", "12:30", testutil.WithSlotID("lunch")),
		}),
	)
	sess := engine.NewSession(itin)
	at := func(h, m int) time.Time { return time.Date(2025, 4, 12, h, m, 0, 0, time.UTC) }
	assert.NoError(t, sess.Start("2025-04-12", at(8, 0)))
	assert.NoError(t, sess.CheckIn("temple", at(9, 0)))

	out := stripANSI(FormatSnapshot(sess.Snapshot(at(9, 30)), sess.Views()))
	assert.Contains(t, out, "trip-kyoto")
	assert.Contains(t, out, "2025-04-12")
	assert.Contains(t, out, "09:00–10:30")
	assert.Contains(t, out, "Kinkaku-ji")
	assert.Contains(t, out, "now")
	assert.Contains(t, out, "0/2 done")
	assert.Contains(t, out, "ON TRACK")
	assert.Contains(t, out, "next: Nishiki Ramen at 11:00")
}

func TestSeverityLabel_FixedWidth(t *testing.T) {
	assert.Equal(t, "ERROR", stripANSI(SeverityLabel(constraint.SeverityError)))
	assert.Equal(t, "WARN ", stripANSI(SeverityLabel(constraint.SeverityWarning)))
	assert.Equal(t, "INFO ", stripANSI(SeverityLabel(constraint.SeverityInfo)))
}

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, stripANSI(RenderProgress(0, 10)), "0%")
	assert.Contains(t, stripANSI(RenderProgress(0.5, 10)), "50%")
	assert.Contains(t, stripANSI(RenderProgress(1.0, 10)), "100%")
	assert.Contains(t, stripANSI(RenderProgress(1.4, 10)), "100%")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "BBB"},
		[][]string{{"x", "y"}, {"longer", "z"}},
	))
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "longer")
	assert.Contains(t, out, "─")
}
