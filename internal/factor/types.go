// Package factor resolves the best-available emission factor for an activity
// category through a tiered fallback chain: reference table, Scope-3 sector
// library, monetary ratios, static defaults, then a generic constant.
// Resolution is total: every request yields a factor, tagged with a
// confidence score so low-quality fallbacks can be flagged for review.
package factor

// Method identifies how an emission factor was derived. Methods are ranked:
// actual outranks technical, which outranks monetary, which outranks default.
type Method string

// The closed set of factor derivation methods.
const (
	MethodActual    Method = "actual"
	MethodTechnical Method = "technical"
	MethodMonetary  Method = "monetary"
	MethodDefault   Method = "default"
)

// methodRank orders methods for tie-breaking inside a resolution tier.
var methodRank = map[Method]int{ //nolint:gochecknoglobals // Constant lookup table
	MethodActual:    4,
	MethodTechnical: 3,
	MethodMonetary:  2,
	MethodDefault:   1,
}

// Rank returns the tie-break rank of the method; higher wins.
func (m Method) Rank() int {
	return methodRank[m]
}

// Valid reports whether m is one of the four known methods.
func (m Method) Valid() bool {
	return methodRank[m] != 0
}

// Factor is a resolved emission factor. Factors are immutable: the resolver
// builds them from reference data and never mutates them afterwards.
type Factor struct {
	// Value is the factor in kgCO2e per Unit (or per currency unit for
	// monetary factors).
	Value float64 `json:"value"`
	// Unit is the activity unit the factor applies to.
	Unit string `json:"unit"`
	// Source names the published dataset behind the factor.
	Source string `json:"source"`
	// SourceRef is an optional citation inside the source dataset.
	SourceRef string `json:"source_ref,omitempty"`
	// UncertaintyPercent is the relative uncertainty of the factor.
	UncertaintyPercent float64 `json:"uncertainty_percent"`
	// Method records how the factor was derived.
	Method Method `json:"method"`
	// Confidence is the resolver's confidence in the match, in [0,1].
	Confidence float64 `json:"confidence"`
	// GHGCategory is the GHG Protocol category label when the factor came
	// from the sector library (e.g. "3.1 Purchased goods and services").
	GHGCategory string `json:"ghg_category,omitempty"`
}

// Request describes what to resolve a factor for.
type Request struct {
	// Category is the activity category key, e.g. "diesel".
	Category string `json:"category"`
	// Country is an optional ISO country code for country-specific rows.
	Country string `json:"country,omitempty"`
	// Subcategory optionally narrows the sector-library match.
	Subcategory string `json:"subcategory,omitempty"`
	// Description is free text (invoice line, account label) used by the
	// monetary keyword tier.
	Description string `json:"description,omitempty"`
	// MonetaryAmount enables the monetary-ratio tier when > 0.
	MonetaryAmount float64 `json:"monetary_amount,omitempty"`
}
