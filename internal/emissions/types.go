// Package emissions converts activity records into CO2-equivalent results:
// unit normalization, factor application, uncertainty bounds, scope
// classification and an auditable calculation trace.
package emissions

import (
	"time"

	"github.com/carbonpilot/carbonpilot/internal/factor"
)

// Scope is a GHG Protocol scope.
type Scope string

// The closed set of GHG scopes.
const (
	// ScopeOne covers direct emissions (combustion fuels, refrigerants).
	ScopeOne Scope = "scope1"
	// ScopeTwo covers purchased energy (electricity, heat, steam).
	ScopeTwo Scope = "scope2"
	// ScopeThree covers all other value-chain emissions.
	ScopeThree Scope = "scope3"
)

// Valid reports whether s is one of the three GHG scopes.
func (s Scope) Valid() bool {
	return s == ScopeOne || s == ScopeTwo || s == ScopeThree
}

// ActivityRecord is one measured or inferred activity (litres of diesel
// bought, kWh consumed, an invoice line). Records are created by the
// ingestion collaborator; the core never mutates them.
type ActivityRecord struct {
	ID       string  `json:"id,omitempty"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	// MonetaryAmount is the invoice amount, enabling spend-based estimation
	// when no physical quantity is usable.
	MonetaryAmount float64 `json:"monetary_amount,omitempty"`
	CountryCode    string  `json:"country_code,omitempty"`
	// Subcategory optionally narrows the Scope-3 sector-library match.
	Subcategory string `json:"subcategory,omitempty"`
	// Supplier and DocumentType are weak classification signals.
	Supplier     string `json:"supplier,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	Description  string `json:"description,omitempty"`
	// PeriodStart/PeriodEnd bound the activity period; zero when unknown.
	PeriodStart time.Time `json:"period_start,omitempty"`
	PeriodEnd   time.Time `json:"period_end,omitempty"`
	// GHGScope and GHGCategory, when set, override classification.
	GHGScope    Scope  `json:"ghg_scope,omitempty"`
	GHGCategory string `json:"ghg_category,omitempty"`
}

// CalculationResult is the CO2e outcome for one activity record. It is
// derived data: it lives and dies with its record.
type CalculationResult struct {
	CO2EquivalentKg     float64       `json:"co2_equivalent_kg"`
	CO2EquivalentTonnes float64       `json:"co2_equivalent_tonnes"`
	EmissionFactor      factor.Factor `json:"emission_factor"`
	// Formula is the human-readable calculation trace kept for audits.
	Formula     string `json:"formula"`
	GHGScope    Scope  `json:"ghg_scope"`
	GHGCategory string `json:"ghg_category,omitempty"`
	// UncertaintyKg is CO2EquivalentKg scaled by the factor uncertainty.
	UncertaintyKg float64 `json:"uncertainty_kg"`
	// Confidence carries the resolver confidence through to reporting.
	Confidence float64 `json:"confidence"`
}
