// Package assist infers GHG scope and category from weak signals (document
// type, unit, supplier name) and flags data-quality anomalies, so imported
// records can be pre-filled and triaged before validation.
package assist

import "github.com/carbonpilot/carbonpilot/internal/emissions"

// Severity grades an anomaly.
type Severity string

// Anomaly severities. High severity forces manual review.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Badge is the final review recommendation attached to a classification.
type Badge string

// Review badges, thresholded on overall confidence.
const (
	BadgeHigh           Badge = "high"
	BadgeMedium         Badge = "medium"
	BadgeLow            Badge = "low"
	BadgeManualRequired Badge = "manual_required"
)

// Anomaly is one rule-based data-quality finding. Anomalies are reported,
// never raised as errors: the caller decides whether to block.
type Anomaly struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ScopeSuggestion is an inferred GHG scope with its justification.
type ScopeSuggestion struct {
	Scope      emissions.Scope `json:"scope"`
	Confidence float64         `json:"confidence"`
	Reason     string          `json:"reason"`
}

// CategorySuggestion is an inferred activity category with its justification.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Result is the full Smart-Assist outcome for one record.
type Result struct {
	Scope    ScopeSuggestion    `json:"scope"`
	Category CategorySuggestion `json:"category"`
	// FactorConfidence is the resolver's confidence for the record's
	// category, folded into the overall confidence.
	FactorConfidence float64   `json:"factor_confidence"`
	Anomalies        []Anomaly `json:"anomalies"`
	// OverallConfidence is the weighted average of the scope, category and
	// factor confidences.
	OverallConfidence float64 `json:"overall_confidence"`
	Recommendation    Badge   `json:"recommendation"`
}

// Config holds the tunable detection limits.
type Config struct {
	// OutlierCeiling flags quantities or amounts above this value as
	// outliers.
	OutlierCeiling float64 `yaml:"outlier_ceiling" json:"outlier_ceiling"`
	// QuantityEpsilon is the tolerance for treating two quantities as equal
	// during duplicate detection.
	QuantityEpsilon float64 `yaml:"quantity_epsilon" json:"quantity_epsilon"`
	// MaxPeriodDays is the activity-period length above which a low-severity
	// anomaly is raised.
	MaxPeriodDays int `yaml:"max_period_days" json:"max_period_days"`
}

// DefaultConfig returns the detection limits used when none are supplied.
func DefaultConfig() Config {
	return Config{
		OutlierCeiling:  1_000_000,
		QuantityEpsilon: 0.01,
		MaxPeriodDays:   365,
	}
}
