package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/repository"
	"github.com/wayfarerhq/wayfarer/internal/simulator"
)

// FormatSimResult renders a diversion timeline followed by the run summary.
func FormatSimResult(res *simulator.Result) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Simulated day"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  seed=%d weather=%s energy=%s", res.Seed, res.Weather, res.Energy)))
	b.WriteString("\n\n")

	if len(res.Events) == 0 {
		b.WriteString(StyleGreen.Render("The day went exactly to plan."))
		b.WriteString("\n")
	}
	for _, ev := range res.Events {
		b.WriteString(StyleDim.Render(fmt.Sprintf("[%s] ", domain.FormatClock(ev.OccurredAtMin))))
		b.WriteString(impactStyle(ev.ImpactMin).Render(fmt.Sprintf("%-5s", formatImpact(ev.ImpactMin))))
		b.WriteString(fmt.Sprintf(" %-18s %s", ev.Type, StyleBold.Render(ev.ActivityName)))
		if ev.Description != "" {
			b.WriteString(StyleDim.Render("  " + ev.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatSummary(res.Summary))
	return b.String()
}

func formatSummary(s simulator.Summary) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  events:        %d\n", s.TotalEvents))
	if s.MostCommon != "" {
		b.WriteString(fmt.Sprintf("  most common:   %s\n", s.MostCommon))
	}
	b.WriteString(fmt.Sprintf("  longest delay: %d min\n", s.LongestDelayMin))
	b.WriteString(fmt.Sprintf("  time saved:    %d min\n", s.TimeSavedMin))
	b.WriteString("  net impact:    ")
	b.WriteString(impactStyle(s.NetImpactMin).Render(formatImpact(s.NetImpactMin)))
	b.WriteString("\n  final offset:  ")
	b.WriteString(impactStyle(s.FinalOffsetMin).Render(formatImpact(s.FinalOffsetMin)))
	b.WriteString("\n")
	return b.String()
}

// FormatRunList renders stored simulation runs, newest first.
func FormatRunList(runs []*repository.SimRun) string {
	if len(runs) == 0 {
		return StyleDim.Render("No recorded runs.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.DayDate,
			fmt.Sprintf("%d", r.Seed),
			r.Weather,
			r.Energy,
			fmt.Sprintf("%d", r.TotalEvents),
			formatImpact(r.NetImpactMin),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return RenderTable([]string{"RUN", "DAY", "SEED", "WEATHER", "ENERGY", "EVENTS", "NET", "RECORDED"}, rows)
}

// FormatRunTimeline renders a stored run's events the same way a live
// simulation prints them.
func FormatRunTimeline(run *repository.SimRun, events []simulator.Event) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("Run %s", shortID(run.ID))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s %s  seed=%d weather=%s energy=%s",
		run.TripID, run.DayDate, run.Seed, run.Weather, run.Energy)))
	b.WriteString("\n\n")
	for _, ev := range events {
		b.WriteString(StyleDim.Render(fmt.Sprintf("[%s] ", domain.FormatClock(ev.OccurredAtMin))))
		b.WriteString(impactStyle(ev.ImpactMin).Render(fmt.Sprintf("%-5s", formatImpact(ev.ImpactMin))))
		b.WriteString(fmt.Sprintf(" %-18s %s", ev.Type, StyleBold.Render(ev.ActivityName)))
		if ev.Description != "" {
			b.WriteString(StyleDim.Render("  " + ev.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  net impact:   %s\n", impactStyle(run.NetImpactMin).Render(formatImpact(run.NetImpactMin))))
	b.WriteString(fmt.Sprintf("  final offset: %s\n", impactStyle(run.FinalOffsetMin).Render(formatImpact(run.FinalOffsetMin))))
	return b.String()
}

func formatImpact(min int) string {
	if min > 0 {
		return fmt.Sprintf("+%dm", min)
	}
	return fmt.Sprintf("%dm", min)
}

func impactStyle(min int) lipgloss.Style {
	switch {
	case min > 0:
		return StyleRed
	case min < 0:
		return StyleGreen
	default:
		return StyleDim
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
