package formatter

import (
	"fmt"
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/constraint"
	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// FormatAnalysis renders a full validation report: the trip header, every
// violation grouped per day, and the verdict line.
func FormatAnalysis(itin *domain.Itinerary, perDay map[string][]constraint.Violation, feasible bool) string {
	var b strings.Builder

	title := itin.Title
	if title == "" {
		title = itin.TripID
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  (%d days)", len(itin.Days))))
	b.WriteString("\n\n")

	total := 0
	for i := range itin.Days {
		day := &itin.Days[i]
		vs := perDay[day.Date]
		if len(vs) == 0 {
			continue
		}
		total += len(vs)

		b.WriteString(StyleBold.Render(fmt.Sprintf("%s · %s", day.Date, day.City)))
		b.WriteString("\n")
		rows := make([][]string, 0, len(vs))
		for _, v := range vs {
			rows = append(rows, []string{
				SeverityLabel(v.Severity),
				string(v.Layer),
				slotLabel(day, v.SlotID),
				v.Message,
			})
		}
		b.WriteString(RenderTable([]string{"", "LAYER", "SLOT", "FINDING"}, rows))
		b.WriteString("\n")
	}

	if total == 0 {
		b.WriteString(StyleGreen.Render("No findings."))
		b.WriteString("\n")
	}

	if feasible {
		b.WriteString(StyleGreen.Render("✓ itinerary is feasible"))
	} else {
		b.WriteString(StyleRed.Render("✗ itinerary is not feasible"))
	}
	b.WriteString("\n")
	return b.String()
}

func slotLabel(day *domain.Day, slotID string) string {
	if slotID == "" {
		return StyleDim.Render("-")
	}
	if s := day.SlotByID(slotID); s != nil {
		return s.ActivityName()
	}
	return slotID
}
