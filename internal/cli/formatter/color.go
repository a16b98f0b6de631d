package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wayfarerhq/wayfarer/internal/constraint"
	"github.com/wayfarerhq/wayfarer/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle maps a constraint severity to its display style.
func SeverityStyle(s constraint.Severity) lipgloss.Style {
	switch s {
	case constraint.SeverityError:
		return StyleRed
	case constraint.SeverityWarning:
		return StyleYellow
	case constraint.SeverityInfo:
		return StyleBlue
	default:
		return StyleDim
	}
}

// SeverityLabel returns a colored fixed-width severity tag.
func SeverityLabel(s constraint.Severity) string {
	switch s {
	case constraint.SeverityError:
		return StyleRed.Render("ERROR")
	case constraint.SeverityWarning:
		return StyleYellow.Render("WARN ")
	case constraint.SeverityInfo:
		return StyleBlue.Render("INFO ")
	default:
		return StyleDim.Render("?    ")
	}
}

// DelayIndicator returns a colored banner segment for a delay band, such as
// "● ON TRACK".
func DelayIndicator(s domain.DelayStatus) string {
	switch s {
	case domain.DelayOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.DelayMinor:
		return StyleYellow.Render("● MINOR DELAY")
	case domain.DelayNeedsAttention:
		return StyleYellow.Render("● NEEDS ATTENTION")
	case domain.DelayCritical:
		return StyleRed.Render("● CRITICAL")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StateLabel renders an activity state for the dashboard.
func StateLabel(s domain.ActivityState) string {
	switch s {
	case domain.StateCompleted:
		return StyleGreen.Render("done")
	case domain.StateSkipped:
		return StyleDim.Render("skipped")
	case domain.StateInProgress, domain.StateExtended:
		return StyleBlue.Render("now")
	case domain.StateEnRoute:
		return StyleYellow.Render("en route")
	case domain.StatePending:
		return StyleYellow.Render("soon")
	default:
		return StyleDim.Render("later")
	}
}
