package emissions

import (
	"context"

	"github.com/carbonpilot/carbonpilot/internal/factor"
	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/units"
)

// KgPerTonne converts kilograms to metric tonnes.
const KgPerTonne = 1000.0

// Calculator turns activity records into CO2e results using a factor
// resolver. It holds no mutable state; calls are independent.
type Calculator struct {
	resolver *factor.Resolver
}

// NewCalculator builds a calculator over the given resolver.
func NewCalculator(resolver *factor.Resolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Calculate resolves a factor for the record and applies it. It is total:
// the resolver's generic fallback guarantees a result for any record, tagged
// with a low confidence when no real factor matched.
func (c *Calculator) Calculate(ctx context.Context, record ActivityRecord) CalculationResult {
	resolved := c.resolver.Resolve(ctx, factor.Request{
		Category:       record.Category,
		Country:        record.CountryCode,
		Subcategory:    record.Subcategory,
		Description:    record.Description,
		MonetaryAmount: record.MonetaryAmount,
	})

	result := Apply(record, resolved)

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "emissions").
		Str("category", record.Category).
		Float64("co2_kg", result.CO2EquivalentKg).
		Str("method", string(resolved.Method)).
		Msg("activity calculated")

	return result
}

// Apply combines a record with an already-resolved factor. Pure function:
// co2_kg is linear in the quantity (or monetary amount), and uncertainty_kg
// is exactly co2_kg scaled by the factor's relative uncertainty.
func Apply(record ActivityRecord, resolved factor.Factor) CalculationResult {
	var (
		co2Kg    float64
		quantity float64
		unit     string
	)

	if resolved.Method == factor.MethodMonetary {
		quantity = record.MonetaryAmount
		unit = resolved.Unit
		co2Kg = record.MonetaryAmount * resolved.Value
	} else {
		normalized := units.Normalize(record.Quantity, record.Unit)
		quantity = normalized.Value
		unit = normalized.Unit
		co2Kg = normalized.Value * resolved.Value
	}

	scope := record.GHGScope
	if !scope.Valid() {
		scope = ClassifyScope(record.Category)
	}

	ghgCategory := record.GHGCategory
	if ghgCategory == "" {
		ghgCategory = resolved.GHGCategory
	}

	return CalculationResult{
		CO2EquivalentKg:     co2Kg,
		CO2EquivalentTonnes: co2Kg / KgPerTonne,
		EmissionFactor:      resolved,
		Formula:             formulaTrace(quantity, unit, resolved.Value, co2Kg, resolved.Source),
		GHGScope:            scope,
		GHGCategory:         ghgCategory,
		UncertaintyKg:       co2Kg * resolved.UncertaintyPercent / 100,
		Confidence:          resolved.Confidence,
	}
}
