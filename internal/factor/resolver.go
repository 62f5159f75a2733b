package factor

import (
	"context"
	"strings"

	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
)

// Resolution confidence scores per tier.
const (
	ConfidenceReference       = 0.95
	ConfidenceSectorActual    = 0.90
	ConfidenceSectorTechnical = 0.85
	ConfidenceSectorMonetary  = 0.70
	ConfidenceMonetary        = 0.70
	ConfidenceDefault         = 0.80
	ConfidenceGeneric         = 0.30
)

// Generic fallback parameters. The fallback guarantees resolution totality;
// its low confidence marks results for manual review.
const (
	GenericFactorValue        = 0.5
	GenericUncertaintyPercent = 50
	MonetaryUncertaintyPct    = 25
)

// Provider supplies reference data to the resolver. The embedded
// refdata.Dataset implements it; deployments may substitute a store-backed
// implementation.
type Provider interface {
	LookupFactor(category, country string) *refdata.FactorRecord
	LookupSectorCategory(id string) *refdata.SectorCategoryEntry
	LookupDefault(category string) (refdata.DefaultFactor, bool)
	MonetaryRatios() []refdata.MonetaryRatio
}

// tierFunc attempts one resolution tier. A nil result means "not found here,
// try the next tier".
type tierFunc func(ctx context.Context, req Request) *Factor

// Resolver resolves emission factors through an ordered chain of tiers.
type Resolver struct {
	provider Provider
	tiers    []tierFunc
}

// NewResolver builds a resolver over the given reference-data provider.
func NewResolver(provider Provider) *Resolver {
	r := &Resolver{provider: provider}
	r.tiers = []tierFunc{
		r.referenceTier,
		r.sectorTier,
		r.monetaryTier,
		r.defaultTier,
	}
	return r
}

// Resolve returns the best-available factor for the request. It never fails:
// when no tier matches, the generic fallback factor is returned with
// confidence 0.3. Given identical inputs and an unchanged dataset the result
// is reproducible.
func (r *Resolver) Resolve(ctx context.Context, req Request) Factor {
	log := logging.FromContext(ctx).With().
		Str("component", "factor").
		Str("category", req.Category).
		Logger()

	for _, tier := range r.tiers {
		if f := tier(ctx, req); f != nil {
			log.Debug().
				Str("method", string(f.Method)).
				Float64("confidence", f.Confidence).
				Str("source", f.Source).
				Msg("factor resolved")
			return *f
		}
	}

	log.Warn().Msg("no factor matched, using generic fallback")
	return Factor{
		Value:              GenericFactorValue,
		Unit:               "unit",
		Source:             "generic fallback",
		UncertaintyPercent: GenericUncertaintyPercent,
		Method:             MethodDefault,
		Confidence:         ConfidenceGeneric,
	}
}

// referenceTier matches the curated reference table (exact category, country
// preferred over GLOBAL).
func (r *Resolver) referenceTier(_ context.Context, req Request) *Factor {
	row := r.provider.LookupFactor(req.Category, req.Country)
	if row == nil {
		return nil
	}
	return &Factor{
		Value:              row.Value,
		Unit:               row.Unit,
		Source:             row.Source,
		SourceRef:          row.SourceRef,
		UncertaintyPercent: row.UncertaintyPercent,
		Method:             MethodActual,
		Confidence:         ConfidenceReference,
	}
}

// sectorTier matches the Scope-3 sector library, preferring the actual
// variant over technical over monetary.
func (r *Resolver) sectorTier(_ context.Context, req Request) *Factor {
	entry := r.provider.LookupSectorCategory(req.Subcategory)
	if entry == nil {
		entry = r.provider.LookupSectorCategory(req.Category)
	}
	if entry == nil {
		return nil
	}

	switch {
	case entry.Actual != nil:
		return sectorFactor(entry, entry.Actual, MethodActual, ConfidenceSectorActual)
	case entry.Technical != nil:
		return sectorFactor(entry, entry.Technical, MethodTechnical, ConfidenceSectorTechnical)
	case entry.Monetary != nil:
		return sectorFactor(entry, entry.Monetary, MethodMonetary, ConfidenceSectorMonetary)
	default:
		return nil
	}
}

func sectorFactor(entry *refdata.SectorCategoryEntry, mf *refdata.MethodFactor, method Method, confidence float64) *Factor {
	return &Factor{
		Value:              mf.Value,
		Unit:               mf.Unit,
		Source:             mf.Source,
		UncertaintyPercent: mf.UncertaintyPercent,
		Method:             method,
		Confidence:         confidence,
		GHGCategory:        entry.GHGCategory,
	}
}

// monetaryTier estimates from spend when a monetary amount is supplied,
// matching description keywords against the ratio table. The longest keyword
// hit wins; on equal length the earlier table entry wins.
func (r *Resolver) monetaryTier(_ context.Context, req Request) *Factor {
	if req.MonetaryAmount <= 0 {
		return nil
	}

	text := strings.ToLower(req.Description)
	if text == "" {
		text = strings.ToLower(req.Category)
	}

	var (
		best    *refdata.MonetaryRatio
		bestLen int
	)
	ratios := r.provider.MonetaryRatios()
	for i := range ratios {
		ratio := &ratios[i]
		for _, kw := range ratio.Keywords {
			if len(kw) > bestLen && strings.Contains(text, strings.ToLower(kw)) {
				best = ratio
				bestLen = len(kw)
			}
		}
	}
	if best == nil {
		return nil
	}

	uncertainty := best.UncertaintyPercent
	if uncertainty == 0 {
		uncertainty = MonetaryUncertaintyPct
	}
	return &Factor{
		Value:              best.Value,
		Unit:               "EUR",
		Source:             best.Source,
		UncertaintyPercent: uncertainty,
		Method:             MethodMonetary,
		Confidence:         ConfidenceMonetary,
	}
}

// defaultTier matches the static table of common categories.
func (r *Resolver) defaultTier(_ context.Context, req Request) *Factor {
	def, ok := r.provider.LookupDefault(req.Category)
	if !ok {
		return nil
	}
	return &Factor{
		Value:              def.Value,
		Unit:               def.Unit,
		Source:             def.Source,
		UncertaintyPercent: def.UncertaintyPercent,
		Method:             MethodDefault,
		Confidence:         ConfidenceDefault,
	}
}
