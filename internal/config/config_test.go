package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.InDelta(t, DefaultEmissionsIntensityMax, cfg.Compliance.Thresholds.EmissionsIntensityMax, 1e-9)
	})

	t.Run("partial file keeps defaults for missing fields", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: debug
compliance:
  thresholds:
    emissions_intensity_max: 250
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.InDelta(t, 250, cfg.Compliance.Thresholds.EmissionsIntensityMax, 1e-9)
		// Unset thresholds stay zero here; the engine normalizes on use.
		assert.Zero(t, cfg.Compliance.Thresholds.WaterIntensityMax)
	})

	t.Run("negative threshold is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
compliance:
  thresholds:
    accident_rate_max: -1
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrThresholdNegative)
	})

	t.Run("invalid policy is rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
compliance:
  policy:
    critical_multiplier: 0.5
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrPolicyInvalid)
	})

	t.Run("malformed yaml is rejected", func(t *testing.T) {
		path := writeConfigFile(t, "logging: [not a mapping")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
