// Package constraint validates itineraries against seven independent rule
// layers. Layers never short-circuit one another: a full validation always
// runs all seven and unions the results, so a report shows everything wrong
// at once.
package constraint

type Layer string

const (
	LayerTemporal     Layer = "temporal"
	LayerTravel       Layer = "travel"
	LayerClustering   Layer = "clustering"
	LayerDependencies Layer = "dependencies"
	LayerPacing       Layer = "pacing"
	LayerFragility    Layer = "fragility"
	LayerCrossDay     Layer = "cross-day"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is one finding from one layer. Violations are data, never
// errors: error severity blocks an operation, warning and info do not.
type Violation struct {
	Layer    Layer
	Severity Severity
	SlotID   string // empty for day- or itinerary-level findings
	Message  string
}

// FeasibilityAnalysis is the aggregate verdict over a violation list.
type FeasibilityAnalysis struct {
	Feasible       bool
	Violations     []Violation
	AffectedLayers []Layer
}

// Config tunes the engine. Zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// StrictMode makes warnings block feasibility too.
	StrictMode bool
	// RespectClusters enables the cluster-fragmentation check.
	RespectClusters bool
	// WeatherAware enables informational fragility notices.
	WeatherAware bool
	// MaxDailyActivityMin is the pacing ceiling on scheduled activity time.
	MaxDailyActivityMin int
	// MaxDailyWalkingKm caps the day's cumulative walking distance.
	MaxDailyWalkingKm float64
	// MinTransitionBufferMin is the required slack before an intercity
	// departure.
	MinTransitionBufferMin int
}

// DefaultConfig returns the engine defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		RespectClusters:        true,
		WeatherAware:           true,
		MaxDailyActivityMin:    12 * 60,
		MaxDailyWalkingKm:      10,
		MinTransitionBufferMin: 90,
	}
}

// Analyze folds a violation list into a verdict: feasible means no errors,
// and additionally no warnings under strict mode.
func Analyze(violations []Violation, cfg Config) FeasibilityAnalysis {
	fa := FeasibilityAnalysis{Feasible: true, Violations: violations}

	seen := make(map[Layer]bool)
	for _, v := range violations {
		if !seen[v.Layer] {
			seen[v.Layer] = true
			fa.AffectedLayers = append(fa.AffectedLayers, v.Layer)
		}
		switch v.Severity {
		case SeverityError:
			fa.Feasible = false
		case SeverityWarning:
			if cfg.StrictMode {
				fa.Feasible = false
			}
		}
	}
	return fa
}
