// Package refdata holds the static reference dataset the computation core
// reads: emission-factor tables, the Scope-3 sector library, monetary ratios,
// indicator benchmarks, sector materiality multipliers and the remediation
// library. The dataset ships embedded as YAML and is load-once, read-only.
//
// Callers that back reference data with a database implement the same lookup
// methods; the core only depends on the small provider interfaces declared by
// each consuming package.
package refdata

// FactorRecord is one row of the reference emission-factor table.
type FactorRecord struct {
	// Category is the activity category key (e.g. "diesel", "electricity").
	Category string `yaml:"category" json:"category"`
	// Country is an ISO 3166-1 alpha-2 code, or "GLOBAL" for the wildcard row.
	Country string `yaml:"country" json:"country"`
	// Value is the factor in kgCO2e per Unit.
	Value float64 `yaml:"value" json:"value"`
	// Unit is the canonical activity unit the factor applies to.
	Unit string `yaml:"unit" json:"unit"`
	// Source names the published dataset the factor comes from.
	Source string `yaml:"source" json:"source"`
	// SourceRef is an optional citation (dataset row, URL fragment).
	SourceRef string `yaml:"source_ref,omitempty" json:"source_ref,omitempty"`
	// UncertaintyPercent is the published relative uncertainty.
	UncertaintyPercent float64 `yaml:"uncertainty_percent" json:"uncertainty_percent"`
	// Active marks rows currently in force; inactive rows are kept for audit.
	Active bool `yaml:"active" json:"active"`
	// Default marks the preferred row when several match a category+country.
	Default bool `yaml:"default" json:"default"`
}

// DefaultFactor is one row of the last-resort static factor table used when
// neither the reference table nor the sector library covers a category.
type DefaultFactor struct {
	Category           string  `yaml:"category" json:"category"`
	Value              float64 `yaml:"value" json:"value"`
	Unit               string  `yaml:"unit" json:"unit"`
	Source             string  `yaml:"source" json:"source"`
	UncertaintyPercent float64 `yaml:"uncertainty_percent" json:"uncertainty_percent"`
}

// MethodFactor is one factor variant inside a sector-library entry.
type MethodFactor struct {
	Value              float64 `yaml:"value" json:"value"`
	Unit               string  `yaml:"unit" json:"unit"`
	Source             string  `yaml:"source" json:"source"`
	UncertaintyPercent float64 `yaml:"uncertainty_percent" json:"uncertainty_percent"`
}

// SectorCategoryEntry is one entry of the curated Scope-3 category library.
// An entry can carry up to three factor variants; resolution prefers actual
// over technical over monetary.
type SectorCategoryEntry struct {
	ID          string        `yaml:"id" json:"id"`
	Label       string        `yaml:"label" json:"label"`
	GHGCategory string        `yaml:"ghg_category" json:"ghg_category"`
	Actual      *MethodFactor `yaml:"actual,omitempty" json:"actual,omitempty"`
	Technical   *MethodFactor `yaml:"technical,omitempty" json:"technical,omitempty"`
	Monetary    *MethodFactor `yaml:"monetary,omitempty" json:"monetary,omitempty"`
}

// MonetaryRatio maps spend-description keywords to a kgCO2e-per-currency-unit
// ratio. Keyword matching is longest-hit-first.
type MonetaryRatio struct {
	Category           string   `yaml:"category" json:"category"`
	Keywords           []string `yaml:"keywords" json:"keywords"`
	Value              float64  `yaml:"value" json:"value"`
	Source             string   `yaml:"source" json:"source"`
	UncertaintyPercent float64  `yaml:"uncertainty_percent" json:"uncertainty_percent"`
}

// Benchmark is the per-indicator reference range driving the scoring curve.
type Benchmark struct {
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Optimal float64 `yaml:"optimal" json:"optimal"`
	// Inverse marks indicators where a lower raw value is better (water use,
	// accident rate).
	Inverse bool `yaml:"inverse,omitempty" json:"inverse,omitempty"`
}

// ActionTemplate is one suggested remediation action in the library.
type ActionTemplate struct {
	Title              string  `yaml:"title" json:"title"`
	Description        string  `yaml:"description,omitempty" json:"description,omitempty"`
	Priority           string  `yaml:"priority" json:"priority"`
	CostEstimated      float64 `yaml:"cost_estimated" json:"cost_estimated"`
	CO2ReductionTarget float64 `yaml:"co2_reduction_target,omitempty" json:"co2_reduction_target,omitempty"`
	RegionalImpact     bool    `yaml:"regional_impact,omitempty" json:"regional_impact,omitempty"`
}

// RemediationEntry lists the actions suggested when an indicator scores below
// its trigger threshold.
type RemediationEntry struct {
	IndicatorID      string           `yaml:"indicator_id" json:"indicator_id"`
	Category         string           `yaml:"category" json:"category"`
	TriggerThreshold float64          `yaml:"trigger_threshold" json:"trigger_threshold"`
	Actions          []ActionTemplate `yaml:"actions" json:"actions"`
}
