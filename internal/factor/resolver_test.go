package factor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonpilot/carbonpilot/internal/refdata"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	return NewResolver(ds)
}

func TestResolveReferenceTier(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(context.Background(), Request{Category: "electricity", Country: "FR"})
	assert.Equal(t, MethodActual, got.Method)
	assert.InDelta(t, ConfidenceReference, got.Confidence, 1e-9)
	assert.InDelta(t, 0.0569, got.Value, 1e-9)
	assert.Equal(t, "kWh", got.Unit)
}

func TestResolveSectorTier(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name           string
		req            Request
		wantMethod     Method
		wantConfidence float64
	}{
		{
			name:           "actual variant preferred",
			req:            Request{Category: "purchased_goods_metals"},
			wantMethod:     MethodActual,
			wantConfidence: ConfidenceSectorActual,
		},
		{
			name:           "technical when no actual",
			req:            Request{Category: "purchased_goods_textiles"},
			wantMethod:     MethodTechnical,
			wantConfidence: ConfidenceSectorTechnical,
		},
		{
			name:           "monetary as last variant",
			req:            Request{Category: "professional_services"},
			wantMethod:     MethodMonetary,
			wantConfidence: ConfidenceSectorMonetary,
		},
		{
			name:           "subcategory narrows the match",
			req:            Request{Category: "purchases", Subcategory: "capital_goods_it"},
			wantMethod:     MethodTechnical,
			wantConfidence: ConfidenceSectorTechnical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.req)
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.NotEmpty(t, got.GHGCategory)
		})
	}
}

func TestResolveMonetaryTier(t *testing.T) {
	r := newTestResolver(t)

	t.Run("keyword hit on description", func(t *testing.T) {
		got := r.Resolve(context.Background(), Request{
			Category:       "misc_expense",
			Description:    "Facture transport marchandises",
			MonetaryAmount: 1200,
		})
		assert.Equal(t, MethodMonetary, got.Method)
		assert.InDelta(t, ConfidenceMonetary, got.Confidence, 1e-9)
		assert.InDelta(t, 0.58, got.Value, 1e-9)
	})

	t.Run("not reachable without monetary amount", func(t *testing.T) {
		got := r.Resolve(context.Background(), Request{
			Category:    "misc_expense",
			Description: "Facture transport marchandises",
		})
		// Falls through monetary to generic fallback.
		assert.InDelta(t, ConfidenceGeneric, got.Confidence, 1e-9)
	})

	t.Run("longest keyword wins", func(t *testing.T) {
		// "electricity" (11 chars, energy_spend) beats "travel" (6 chars).
		got := r.Resolve(context.Background(), Request{
			Category:       "misc_expense",
			Description:    "electricity for travel office",
			MonetaryAmount: 100,
		})
		assert.InDelta(t, 0.31, got.Value, 1e-9)
	})
}

func TestResolveDefaultTier(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(context.Background(), Request{Category: "diesel"})
	assert.Equal(t, MethodDefault, got.Method)
	assert.InDelta(t, ConfidenceDefault, got.Confidence, 1e-9)
	assert.InDelta(t, 2.67, got.Value, 1e-9)
	assert.Equal(t, "litres", got.Unit)
}

func TestResolveGenericFallback(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(context.Background(), Request{Category: "unobtainium"})
	assert.InDelta(t, GenericFactorValue, got.Value, 1e-9)
	assert.InDelta(t, ConfidenceGeneric, got.Confidence, 1e-9)
	assert.InDelta(t, GenericUncertaintyPercent, got.UncertaintyPercent, 1e-9)
	assert.Equal(t, MethodDefault, got.Method)
}

// Resolution is total and deterministic.
func TestResolveTotality(t *testing.T) {
	r := newTestResolver(t)

	categories := []string{"diesel", "electricity", "purchased_goods_metals", "", "???", "unobtainium"}
	for _, cat := range categories {
		first := r.Resolve(context.Background(), Request{Category: cat, Country: "FR"})
		assert.Positive(t, first.Confidence, "category %q", cat)
		assert.True(t, first.Method.Valid(), "category %q", cat)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, r.Resolve(context.Background(), Request{Category: cat, Country: "FR"}), "category %q", cat)
		}
	}
}

func TestMethodRank(t *testing.T) {
	assert.Greater(t, MethodActual.Rank(), MethodTechnical.Rank())
	assert.Greater(t, MethodTechnical.Rank(), MethodMonetary.Rank())
	assert.Greater(t, MethodMonetary.Rank(), MethodDefault.Rank())
	assert.False(t, Method("bogus").Valid())
}
