package scoring

import (
	"errors"
	"fmt"
)

// Default category weights (fractions summing to 1.0) in the reference
// configuration.
var defaultCategoryWeights = map[CategoryID]float64{ //nolint:gochecknoglobals // Constant lookup table
	CategoryEnvironment: 0.40,
	CategorySocial:      0.30,
	CategoryGovernance:  0.30,
}

// Custom-weight validation errors. Malformed weights are a caller contract
// violation and fail fast.
var (
	ErrWeightMissing  = errors.New("custom weights must cover every scored category")
	ErrWeightNegative = errors.New("custom weights cannot be negative")
)

// gradeBand is one row of the grade table, ordered descending by threshold.
type gradeBand struct {
	minScore float64
	grade    string
	label    string
}

// gradeBands is the reference grade table. The first band whose minimum is
// at or below the total score wins.
var gradeBands = []gradeBand{ //nolint:gochecknoglobals // Constant lookup table
	{90, "AAA", "Leader"},
	{80, "AA", "Advanced"},
	{70, "A", "Robust"},
	{60, "BBB", "Average"},
	{50, "BB", "Moderate"},
	{40, "B", "Weak"},
	{0, "CCC", "Laggard"},
}

// Grade returns the letter grade and label for a total score.
func Grade(totalScore float64) (string, string) {
	for _, band := range gradeBands {
		if totalScore >= band.minScore {
			return band.grade, band.label
		}
	}
	// Negative scores cannot occur after clamping, but the table still
	// terminates on its lowest band.
	last := gradeBands[len(gradeBands)-1]
	return last.grade, last.label
}

// ScoreESG runs the full scoring pass: recompute calculated indicators,
// score every indicator, aggregate per category, then combine into the total
// score and grade.
//
// customWeights, when non-nil, are percentages (e.g. {"E": 50, "S": 25,
// "G": 25}) and fully replace the default weights; defaults and overrides
// are never mixed. Scoring completes for all indicators before any
// aggregation reads them: a missing indicator scores 0, so partial
// aggregation would corrupt results.
func (s *Scorer) ScoreESG(categories []Category, sector string, revenue float64, customWeights map[CategoryID]float64) (*ScoreReport, error) {
	weights, err := resolveWeights(categories, customWeights)
	if err != nil {
		return nil, err
	}

	RecomputeCalculated(categories, revenue)

	report := &ScoreReport{
		CategoryScores:  make(map[CategoryID]float64, len(categories)),
		IndicatorScores: make(map[string]float64),
	}

	// Full indicator pass first.
	for _, category := range categories {
		for _, indicator := range category.Indicators {
			report.IndicatorScores[indicator.ID] = s.ScoreIndicator(indicator, sector)
		}
	}

	for _, category := range categories {
		score := s.AggregateCategory(category.Indicators, sector)
		report.CategoryScores[category.ID] = score
		report.TotalScore += score * weights[category.ID]
	}

	report.Grade, report.GradeLabel = Grade(report.TotalScore)
	return report, nil
}

// resolveWeights picks default or caller-supplied weights. Custom weights
// are percentages and must cover every scored category.
func resolveWeights(categories []Category, customWeights map[CategoryID]float64) (map[CategoryID]float64, error) {
	if customWeights == nil {
		return defaultCategoryWeights, nil
	}

	weights := make(map[CategoryID]float64, len(customWeights))
	for _, category := range categories {
		pct, ok := customWeights[category.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrWeightMissing, category.ID)
		}
		if pct < 0 {
			return nil, fmt.Errorf("%w: %q is %v", ErrWeightNegative, category.ID, pct)
		}
		weights[category.ID] = pct / 100
	}
	return weights, nil
}
