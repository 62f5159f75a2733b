package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonpilot/carbonpilot/internal/actions"
	"github.com/carbonpilot/carbonpilot/internal/config"
)

func ptr(v float64) *float64 { return &v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.CompliancePolicy{})
	require.NoError(t, err)
	return e
}

func goodGovernance() *Governance {
	return &Governance{RSEOwner: "C. Martin", PolicyDocumented: true}
}

// compliantMetrics passes every default threshold.
func compliantMetrics() Metrics {
	return Metrics{
		TotalEmissionsTonnes: 200,
		EmissionsIntensity:   ptr(120),
		WaterIntensity:       ptr(500),
		RenewableShare:       ptr(45),
		TrainingHours:        ptr(25),
		AccidentRate:         ptr(3),
		WomenManagement:      ptr(42),
		BoardIndependence:    ptr(50),
	}
}

func alertByID(t *testing.T, report *Report, id string) Alert {
	t.Helper()
	for _, a := range report.Alerts {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("alert %q not found in %+v", id, report.Alerts)
	return Alert{}
}

func hasAlert(report *Report, id string) bool {
	for _, a := range report.Alerts {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestCheckConformant(t *testing.T) {
	e := newTestEngine(t)

	report, err := e.Check(context.Background(), nil, compliantMetrics(), config.ComplianceThresholds{}, goodGovernance())
	require.NoError(t, err)

	assert.Equal(t, LevelConformant, report.Level)
	assert.Empty(t, report.Alerts)
	assert.InDelta(t, 100, report.Score, 1e-9)
	assert.InDelta(t, 200*80, report.MonetizedExposureEUR, 1e-9)
}

func TestCheckWarningAndCriticalEscalation(t *testing.T) {
	e := newTestEngine(t)

	t.Run("above-threshold metric warns", func(t *testing.T) {
		metrics := compliantMetrics()
		metrics.EmissionsIntensity = ptr(600) // limit 500

		report, err := e.Check(context.Background(), nil, metrics, config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)

		alert := alertByID(t, report, "article_1_emissions_intensity")
		assert.Equal(t, LevelWarning, alert.Level)
		assert.Equal(t, LevelWarning, report.Level)
		// 10 checks, one warning: (10-1)/10 × 100.
		assert.InDelta(t, 90, report.Score, 1e-9)
	})

	t.Run("violation beyond 2x escalates to critical", func(t *testing.T) {
		metrics := compliantMetrics()
		metrics.EmissionsIntensity = ptr(1200) // > 2 × 500

		report, err := e.Check(context.Background(), nil, metrics, config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)

		alert := alertByID(t, report, "article_1_emissions_intensity")
		assert.Equal(t, LevelCritical, alert.Level)
		assert.Equal(t, LevelCritical, report.Level)
		assert.InDelta(t, 80, report.Score, 1e-9)
	})

	t.Run("below-minimum metric escalates under half the threshold", func(t *testing.T) {
		metrics := compliantMetrics()
		metrics.RenewableShare = ptr(5) // < 20/2

		report, err := e.Check(context.Background(), nil, metrics, config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)

		alert := alertByID(t, report, "article_1_renewable_share")
		assert.Equal(t, LevelCritical, alert.Level)
	})
}

func TestCheckSkipsUnmeasuredMetrics(t *testing.T) {
	e := newTestEngine(t)

	report, err := e.Check(context.Background(), nil, Metrics{TotalEmissionsTonnes: 10},
		config.ComplianceThresholds{}, goodGovernance())
	require.NoError(t, err)

	assert.Empty(t, report.Alerts)
	assert.Equal(t, LevelConformant, report.Level)
}

func TestCheckGovernance(t *testing.T) {
	e := newTestEngine(t)

	t.Run("missing governance is always critical and caps the score", func(t *testing.T) {
		report, err := e.Check(context.Background(), nil, compliantMetrics(),
			config.ComplianceThresholds{}, &Governance{})
		require.NoError(t, err)

		alert := alertByID(t, report, "article_2_governance")
		assert.Equal(t, LevelCritical, alert.Level)
		assert.Equal(t, LevelCritical, report.Level)
		assert.LessOrEqual(t, report.Score, 50.0)
	})

	t.Run("nil governance counts as missing", func(t *testing.T) {
		report, err := e.Check(context.Background(), nil, compliantMetrics(),
			config.ComplianceThresholds{}, nil)
		require.NoError(t, err)
		assert.True(t, hasAlert(report, "article_2_governance"))
	})

	t.Run("cap applies even when all other checks pass", func(t *testing.T) {
		// Only the governance alert: 10 - 2 = 8 -> 80, capped to 50.
		report, err := e.Check(context.Background(), nil, compliantMetrics(),
			config.ComplianceThresholds{}, &Governance{RSEOwner: "C. Martin"})
		require.NoError(t, err)
		assert.InDelta(t, 50, report.Score, 1e-9)
		assert.Equal(t, LevelCritical, report.Level)
	})
}

func TestCheckBacklogRates(t *testing.T) {
	e := newTestEngine(t)

	t.Run("empty backlog skips the rate checks", func(t *testing.T) {
		report, err := e.Check(context.Background(), nil, compliantMetrics(),
			config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)
		assert.False(t, hasAlert(report, "article_3_action_completion"))
		assert.False(t, hasAlert(report, "article_3_action_blocked"))
	})

	t.Run("low completion rate warns", func(t *testing.T) {
		backlog := []actions.Record{
			{Status: actions.StatusDone},
			{Status: actions.StatusTodo},
			{Status: actions.StatusTodo},
			{Status: actions.StatusTodo},
			{Status: actions.StatusTodo},
		}
		report, err := e.Check(context.Background(), backlog, compliantMetrics(),
			config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)

		alert := alertByID(t, report, "article_3_action_completion")
		assert.Equal(t, LevelWarning, alert.Level)
	})

	t.Run("high blocked ratio alerts", func(t *testing.T) {
		backlog := []actions.Record{
			{Status: actions.StatusBlocked},
			{Status: actions.StatusBlocked},
			{Status: actions.StatusDone},
		}
		report, err := e.Check(context.Background(), backlog, compliantMetrics(),
			config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)
		assert.True(t, hasAlert(report, "article_3_action_blocked"))
	})
}

func TestCheckCorrectiveActionRule(t *testing.T) {
	e := newTestEngine(t)

	metrics := compliantMetrics()
	metrics.TotalEmissionsTonnes = 1500

	t.Run("large emissions with no CO2 action is critical", func(t *testing.T) {
		report, err := e.Check(context.Background(), nil, metrics,
			config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)

		alert := alertByID(t, report, "article_3_no_corrective_actions")
		assert.Equal(t, LevelCritical, alert.Level)
		assert.Equal(t, LevelCritical, report.Level)
	})

	t.Run("a planned environment CO2 action clears the rule", func(t *testing.T) {
		backlog := []actions.Record{{
			Status:             actions.StatusTodo,
			Category:           "environment",
			CO2ReductionTarget: 100,
		}}
		report, err := e.Check(context.Background(), backlog, metrics,
			config.ComplianceThresholds{}, goodGovernance())
		require.NoError(t, err)
		assert.False(t, hasAlert(report, "article_3_no_corrective_actions"))
	})
}

func TestCheckIdempotent(t *testing.T) {
	e := newTestEngine(t)

	metrics := compliantMetrics()
	metrics.EmissionsIntensity = ptr(1200)
	metrics.RenewableShare = ptr(5)
	backlog := []actions.Record{{Status: actions.StatusBlocked}}

	first, err := e.Check(context.Background(), backlog, metrics, config.ComplianceThresholds{}, &Governance{})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.Check(context.Background(), backlog, metrics, config.ComplianceThresholds{}, &Governance{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCheckInvalidThresholdsFailFast(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Check(context.Background(), nil, compliantMetrics(),
		config.ComplianceThresholds{AccidentRateMax: -1}, goodGovernance())
	assert.ErrorIs(t, err, config.ErrThresholdNegative)
}

func TestNewEngineInvalidPolicy(t *testing.T) {
	_, err := NewEngine(config.CompliancePolicy{CriticalMultiplier: 0.5})
	assert.ErrorIs(t, err, config.ErrPolicyInvalid)
}
