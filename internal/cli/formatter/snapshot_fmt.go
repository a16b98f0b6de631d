package formatter

import (
	"fmt"
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/engine"
)

// FormatSnapshot renders the live dashboard body for one session snapshot.
func FormatSnapshot(snap engine.Snapshot, views []engine.ActivityView) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(snap.TripID))
	b.WriteString(StyleDim.Render("  " + snap.Date))
	if snap.Mode == domain.ModePaused {
		b.WriteString("  " + StyleYellow.Render("PAUSED"))
	}
	b.WriteString("\n\n")

	for _, v := range views {
		window := fmt.Sprintf("%s–%s", domain.FormatClock(v.StartMin), domain.FormatClock(v.EndMin))
		line := fmt.Sprintf("  %s  %-10s %s", StyleDim.Render(window), StateLabel(v.State), v.Name)
		if snap.Current != nil && v.SlotID == snap.Current.SlotID {
			line = StyleBold.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	pct := float64(snap.Progress.PercentComplete) / 100
	b.WriteString("  " + RenderProgress(pct, 30))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d done", snap.Progress.CompletedActivities, snap.Progress.TotalActivities)))
	b.WriteString("\n\n  ")
	b.WriteString(DelayIndicator(snap.DelayStatus))
	if snap.DelayMin > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d min behind", snap.DelayMin)))
	}
	b.WriteString("\n")

	if snap.Next != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  next: %s at %s", snap.Next.Name, domain.FormatClock(snap.Next.StartMin))))
		b.WriteString("\n")
	}
	return b.String()
}
