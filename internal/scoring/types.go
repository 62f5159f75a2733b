// Package scoring normalizes raw ESG indicator values into 0-100 scores
// against sector benchmarks and aggregates them into category and total
// scores with a letter grade.
package scoring

import "github.com/carbonpilot/carbonpilot/internal/refdata"

// IndicatorType identifies how an indicator's value is produced.
type IndicatorType string

// The closed set of indicator types.
const (
	// TypeNumeric is a directly measured value.
	TypeNumeric IndicatorType = "numeric"
	// TypeCalculated is derived from sibling indicators plus revenue and is
	// never edited directly.
	TypeCalculated IndicatorType = "calculated"
	// TypeBinary is a yes/no indicator (policy exists, owner named).
	TypeBinary IndicatorType = "binary"
)

// Indicator is one measured or computed ESG metric.
type Indicator struct {
	ID   string        `json:"id" yaml:"id"`
	Type IndicatorType `json:"type" yaml:"type"`
	// Value is nil when the indicator was never filled in. A missing value
	// scores 0 by policy, not by error.
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	// Weight is the indicator's weight inside its category; 0 means the
	// default weight of 1.
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// CategoryID is one of the three ESG pillars.
type CategoryID string

// ESG pillars.
const (
	CategoryEnvironment CategoryID = "E"
	CategorySocial      CategoryID = "S"
	CategoryGovernance  CategoryID = "G"
)

// Category groups the indicators of one ESG pillar.
type Category struct {
	ID         CategoryID  `json:"id" yaml:"id"`
	Indicators []Indicator `json:"indicators" yaml:"indicators"`
}

// ScoreReport is the complete scoring outcome. It is recomputed whole on
// every indicator change, never patched.
type ScoreReport struct {
	TotalScore      float64                `json:"total_score"`
	CategoryScores  map[CategoryID]float64 `json:"category_scores"`
	IndicatorScores map[string]float64     `json:"indicator_scores"`
	Grade           string                 `json:"grade"`
	GradeLabel      string                 `json:"grade_label"`
}

// Source supplies benchmarks and sector materiality multipliers. The
// embedded refdata.Dataset implements it.
type Source interface {
	Benchmark(indicatorID string) (refdata.Benchmark, bool)
	SectorMultiplier(indicatorID, sector string) float64
}
