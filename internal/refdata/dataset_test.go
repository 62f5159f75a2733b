package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", ds.Version)
}

func TestLookupFactor(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	t.Run("country match preferred over GLOBAL", func(t *testing.T) {
		row := ds.LookupFactor("electricity", "FR")
		require.NotNil(t, row)
		assert.Equal(t, "FR", row.Country)
		assert.InDelta(t, 0.0569, row.Value, 1e-9)
	})

	t.Run("active row preferred over superseded row", func(t *testing.T) {
		row := ds.LookupFactor("electricity", "FR")
		require.NotNil(t, row)
		assert.True(t, row.Active)
	})

	t.Run("GLOBAL wildcard for unknown country", func(t *testing.T) {
		row := ds.LookupFactor("electricity", "JP")
		require.NotNil(t, row)
		assert.Equal(t, "GLOBAL", row.Country)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		row := ds.LookupFactor("  Electricity ", "fr")
		require.NotNil(t, row)
		assert.Equal(t, "FR", row.Country)
	})

	t.Run("unknown category returns nil", func(t *testing.T) {
		assert.Nil(t, ds.LookupFactor("unobtainium", "FR"))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := ds.LookupFactor("electricity", "FR")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ds.LookupFactor("electricity", "FR"))
		}
	})
}

func TestLookupDefault(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	def, ok := ds.LookupDefault("diesel")
	require.True(t, ok)
	assert.InDelta(t, 2.67, def.Value, 1e-9)
	assert.Equal(t, "litres", def.Unit)

	_, ok = ds.LookupDefault("unobtainium")
	assert.False(t, ok)
}

func TestLookupSectorCategory(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	entry := ds.LookupSectorCategory("purchased_goods_metals")
	require.NotNil(t, entry)
	assert.NotNil(t, entry.Actual)
	assert.NotNil(t, entry.Monetary)
	assert.Equal(t, "3.1 Purchased goods and services", entry.GHGCategory)

	assert.Nil(t, ds.LookupSectorCategory("nope"))
}

func TestBenchmarkAndMultipliers(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	b, ok := ds.Benchmark("E4")
	require.True(t, ok)
	assert.True(t, b.Inverse)
	assert.InDelta(t, 5000, b.Optimal, 1e-9)

	assert.InDelta(t, 1.5, ds.SectorMultiplier("E4", "textile"), 1e-9)
	assert.InDelta(t, 1.0, ds.SectorMultiplier("E4", "services"), 1e-9)
	assert.InDelta(t, 1.0, ds.SectorMultiplier("Z9", "textile"), 1e-9)
}

func TestRemediation(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	entry, ok := ds.Remediation("E4")
	require.True(t, ok)
	assert.InDelta(t, 50, entry.TriggerThreshold, 1e-9)
	require.NotEmpty(t, entry.Actions)

	_, ok = ds.Remediation("X1")
	assert.False(t, ok)
}
