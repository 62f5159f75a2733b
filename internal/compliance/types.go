// Package compliance evaluates ESG metrics and the action backlog against a
// regulatory threshold table, emitting graded alerts and a capped compliance
// score. Checks are independent and additive; alert generation is
// idempotent, so identical inputs always regenerate the identical report.
package compliance

// Level grades an alert or the whole report.
type Level string

// Alert levels. A conformant check emits no alert at all.
const (
	LevelConformant Level = "conformant"
	LevelWarning    Level = "warning"
	LevelCritical   Level = "critical"
)

// Alert is one threshold violation. Alerts carry stable IDs and are rebuilt
// from scratch on every check; they are never merged across runs.
type Alert struct {
	ID          string `json:"id"`
	Level       Level  `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Regulation  string `json:"regulation"`
	// Threshold and CurrentValue document the comparison behind the alert.
	Threshold      float64 `json:"threshold,omitempty"`
	CurrentValue   float64 `json:"current_value,omitempty"`
	RequiredAction string  `json:"required_action,omitempty"`
}

// Metrics are the aggregated figures the engine monitors. Pointer fields are
// optional: a nil metric was not measured and its check is skipped, which is
// a data gap, not a violation.
type Metrics struct {
	// TotalEmissionsTonnes drives the corrective-action rule and the
	// monetized exposure figure.
	TotalEmissionsTonnes float64 `json:"total_emissions_tonnes"`

	EmissionsIntensity *float64 `json:"emissions_intensity,omitempty"` // tCO2e per M EUR
	WaterIntensity     *float64 `json:"water_intensity,omitempty"`     // m3 per M EUR
	RenewableShare     *float64 `json:"renewable_share,omitempty"`     // percent
	TrainingHours      *float64 `json:"training_hours,omitempty"`      // h per employee
	AccidentRate       *float64 `json:"accident_rate,omitempty"`
	WomenManagement    *float64 `json:"women_management,omitempty"`    // percent
	BoardIndependence  *float64 `json:"board_independence,omitempty"`  // percent
}

// Governance records whether the basics of sustainability governance exist.
type Governance struct {
	// RSEOwner is the named person accountable for sustainability; empty
	// means nobody owns the topic.
	RSEOwner string `json:"rse_owner"`
	// PolicyDocumented reports whether a written sustainability policy
	// exists.
	PolicyDocumented bool `json:"policy_documented"`
}

// Violated reports whether the governance baseline is missing. Either gap is
// a violation; a nil Governance (never assessed) counts as fully missing.
func (g *Governance) Violated() bool {
	return g == nil || g.RSEOwner == "" || !g.PolicyDocumented
}

// Report is the complete outcome of one compliance check. It is always
// whole: the engine runs every check or fails entirely.
type Report struct {
	Level Level `json:"level"`
	// Score is the capped compliance score in [0,100].
	Score  float64 `json:"score"`
	Alerts []Alert `json:"alerts"`
	// MonetizedExposureEUR prices total emissions at the configured carbon
	// price.
	MonetizedExposureEUR float64 `json:"monetized_exposure_eur"`
	CriticalCount        int     `json:"critical_count"`
	WarningCount         int     `json:"warning_count"`
}
