package assist

import (
	"context"
	"strings"

	"github.com/carbonpilot/carbonpilot/internal/emissions"
	"github.com/carbonpilot/carbonpilot/internal/factor"
	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// Overall-confidence weights of the three sub-confidences.
const (
	scopeWeight    = 0.3
	categoryWeight = 0.4
	factorWeight   = 0.3
)

// Badge thresholds on overall confidence.
const (
	badgeHighThreshold   = 0.8
	badgeMediumThreshold = 0.6
	badgeLowThreshold    = 0.4
)

// hintRule maps a document-type hint to a classification.
type hintRule struct {
	scope      emissions.Scope
	category   string
	confidence float64
}

// hintRules covers explicit document-type hints, the strongest signal.
var hintRules = map[string]hintRule{ //nolint:gochecknoglobals // Constant lookup table
	"energy_invoice": {emissions.ScopeTwo, "electricity", 0.95},
	"fuel_invoice":   {emissions.ScopeOne, "diesel", 0.90},
	"travel_expense": {emissions.ScopeThree, "business_travel", 0.85},
	"freight_invoice": {
		emissions.ScopeThree, "upstream_transport", 0.85,
	},
	"waste_manifest": {emissions.ScopeThree, "waste_generated", 0.85},
}

// Supplier keyword lists. A utility supplier implies purchased energy, a
// fuel retailer implies direct combustion.
var (
	//nolint:gochecknoglobals // Constant lookup table
	utilityKeywords = []string{"edf", "engie", "enedis", "vattenfall", "electric", "energy", "energie", "utility", "power"}
	//nolint:gochecknoglobals // Constant lookup table
	fuelKeywords = []string{"totalenergies", "shell", "esso", "bp ", "petrol", "fuel", "station", "carburant"}
)

// Classifier infers scope/category suggestions for activity records.
type Classifier struct {
	resolver *factor.Resolver
	cfg      Config
}

// NewClassifier builds a classifier. The resolver supplies the factor
// sub-confidence; cfg tunes anomaly detection.
func NewClassifier(resolver *factor.Resolver, cfg Config) *Classifier {
	return &Classifier{resolver: resolver, cfg: cfg}
}

// Classify runs scope/category inference and anomaly detection for one
// record. documentType is an optional hint from the ingestion pipeline and
// overrides weaker signals when it matches a known rule.
func (c *Classifier) Classify(ctx context.Context, record emissions.ActivityRecord, documentType string) Result {
	scope, category := c.infer(record, documentType)

	resolved := c.resolver.Resolve(ctx, factor.Request{
		Category:       firstNonEmpty(record.Category, category.Category),
		Country:        record.CountryCode,
		Subcategory:    record.Subcategory,
		Description:    record.Description,
		MonetaryAmount: record.MonetaryAmount,
	})

	anomalies := DetectAnomalies(record, c.cfg)

	overall := scopeWeight*scope.Confidence +
		categoryWeight*category.Confidence +
		factorWeight*resolved.Confidence

	result := Result{
		Scope:             scope,
		Category:          category,
		FactorConfidence:  resolved.Confidence,
		Anomalies:         anomalies,
		OverallConfidence: overall,
		Recommendation:    badge(overall, anomalies),
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "assist").
		Str("scope", string(scope.Scope)).
		Float64("overall_confidence", overall).
		Str("badge", string(result.Recommendation)).
		Msg("record classified")

	return result
}

// infer applies the classification rules in order; the first applicable rule
// wins and fixes the confidence.
func (c *Classifier) infer(record emissions.ActivityRecord, documentType string) (ScopeSuggestion, CategorySuggestion) {
	// Explicit document-type hint.
	if rule, ok := hintRules[strings.ToLower(strings.TrimSpace(documentType))]; ok {
		return ScopeSuggestion{rule.scope, rule.confidence, "document type " + documentType},
			CategorySuggestion{rule.category, rule.confidence, "document type " + documentType}
	}

	// Unit pattern.
	if scope, category, conf, ok := unitRule(record.Unit, record.MonetaryAmount); ok {
		reason := "unit " + record.Unit
		if record.Unit == "" {
			reason = "monetary amount only"
		}
		return ScopeSuggestion{scope, conf, reason}, CategorySuggestion{category, conf, reason}
	}

	// Supplier keyword.
	supplier := strings.ToLower(record.Supplier)
	if supplier != "" {
		if containsAny(supplier, utilityKeywords) {
			reason := "utility supplier " + record.Supplier
			return ScopeSuggestion{emissions.ScopeTwo, 0.90, reason},
				CategorySuggestion{"electricity", 0.90, reason}
		}
		if containsAny(supplier, fuelKeywords) {
			reason := "fuel retailer " + record.Supplier
			return ScopeSuggestion{emissions.ScopeOne, 0.85, reason},
				CategorySuggestion{"diesel", 0.85, reason}
		}
	}

	// Default: value chain.
	return ScopeSuggestion{emissions.ScopeThree, 0.50, "no signal, scope 3 by default"},
		CategorySuggestion{"purchased_goods_services", 0.50, "no signal"}
}

// unitRule classifies by measurement unit.
func unitRule(unit string, monetaryAmount float64) (emissions.Scope, string, float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kwh", "mwh", "gj":
		return emissions.ScopeTwo, "electricity", 0.85, true
	case "litres", "liters", "l", "gallons":
		return emissions.ScopeOne, "diesel", 0.80, true
	case "km", "miles", "t.km":
		return emissions.ScopeThree, "business_travel", 0.80, true
	case "eur", "usd", "gbp":
		return emissions.ScopeThree, "purchased_goods_services", 0.70, true
	case "":
		if monetaryAmount > 0 {
			return emissions.ScopeThree, "purchased_goods_services", 0.70, true
		}
	}
	return "", "", 0, false
}

// badge derives the review recommendation. Any high-severity anomaly forces
// manual review regardless of confidence.
func badge(overall float64, anomalies []Anomaly) Badge {
	for _, a := range anomalies {
		if a.Severity == SeverityHigh {
			return BadgeManualRequired
		}
	}

	switch {
	case overall >= badgeHighThreshold:
		return BadgeHigh
	case overall >= badgeMediumThreshold:
		return BadgeMedium
	case overall >= badgeLowThreshold:
		return BadgeLow
	default:
		return BadgeManualRequired
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
