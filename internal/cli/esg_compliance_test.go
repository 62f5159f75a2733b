package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonpilot/carbonpilot/internal/compliance"
)

func TestESGComplianceCommand(t *testing.T) {
	compliant := complianceInput{
		Metrics: compliance.Metrics{
			TotalEmissionsTonnes: 100,
			EmissionsIntensity:   ptr(120),
		},
		Governance: &compliance.Governance{RSEOwner: "C. Martin", PolicyDocumented: true},
	}

	t.Run("conformant input reports full score", func(t *testing.T) {
		path := writeInputFile(t, compliant)

		out, err := runCommand(t, "esg", "compliance", "--input", path, "--output", "json")
		require.NoError(t, err)

		var report compliance.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))

		assert.Equal(t, compliance.LevelConformant, report.Level)
		assert.InDelta(t, 100, report.Score, 1e-9)
		assert.InDelta(t, 100*80, report.MonetizedExposureEUR, 1e-9)
	})

	t.Run("fail-on-critical returns the custom exit code", func(t *testing.T) {
		path := writeInputFile(t, complianceInput{
			Metrics:    compliance.Metrics{TotalEmissionsTonnes: 100},
			Governance: &compliance.Governance{},
		})

		_, err := runCommand(t, "esg", "compliance",
			"--input", path, "--fail-on-critical", "--exit-code", "2")
		require.Error(t, err)

		var exitErr *ComplianceExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.ExitCode)
	})

	t.Run("critical without fail-on-critical still succeeds", func(t *testing.T) {
		path := writeInputFile(t, complianceInput{
			Metrics:    compliance.Metrics{TotalEmissionsTonnes: 100},
			Governance: &compliance.Governance{},
		})

		out, err := runCommand(t, "esg", "compliance", "--input", path)
		require.NoError(t, err)
		assert.Contains(t, out, "critical")
	})

	t.Run("invalid exit code is rejected", func(t *testing.T) {
		path := writeInputFile(t, compliant)

		_, err := runCommand(t, "esg", "compliance", "--input", path, "--exit-code", "300")
		assert.Error(t, err)
	})

	t.Run("table output lists alerts", func(t *testing.T) {
		path := writeInputFile(t, complianceInput{
			Metrics: compliance.Metrics{
				TotalEmissionsTonnes: 100,
				EmissionsIntensity:   ptr(600),
			},
			Governance: &compliance.Governance{RSEOwner: "C. Martin", PolicyDocumented: true},
		})

		out, err := runCommand(t, "esg", "compliance", "--input", path)
		require.NoError(t, err)

		assert.Contains(t, out, "Compliance Report")
		assert.Contains(t, out, "[warning]")
		assert.Contains(t, out, "Emissions intensity")
	})
}
