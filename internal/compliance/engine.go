package compliance

import (
	"context"
	"fmt"

	"github.com/carbonpilot/carbonpilot/internal/actions"
	"github.com/carbonpilot/carbonpilot/internal/config"
	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// checkDirection says which side of the threshold violates.
type checkDirection int

const (
	// violateAbove flags values exceeding the threshold (intensities, rates).
	violateAbove checkDirection = iota
	// violateBelow flags values under the threshold (shares, minimums).
	violateBelow
)

// metricCheck describes one monitored dimension. The check table is fixed;
// iteration order is the declaration order, keeping reports reproducible.
type metricCheck struct {
	id             string
	title          string
	regulation     string
	direction      checkDirection
	requiredAction string
}

// Engine runs the compliance checks under a given policy.
type Engine struct {
	policy config.CompliancePolicy
}

// NewEngine builds a compliance engine. A zero-valued policy is filled with
// the documented defaults; malformed fields fail fast.
func NewEngine(policy config.CompliancePolicy) (*Engine, error) {
	normalized, err := policy.Normalize()
	if err != nil {
		return nil, fmt.Errorf("compliance policy: %w", err)
	}
	return &Engine{policy: normalized}, nil
}

// Check evaluates the metrics and action backlog against the thresholds and
// returns one complete report. thresholds may be zero-valued; unset fields
// fall back to defaults. Malformed thresholds are a caller contract
// violation and return an error instead of a partial report.
//
// The check set is additive and order-fixed, so identical inputs always
// produce the identical alert list and score.
func (e *Engine) Check(
	ctx context.Context,
	backlog []actions.Record,
	metrics Metrics,
	thresholds config.ComplianceThresholds,
	governance *Governance,
) (*Report, error) {
	normalized, err := thresholds.Normalize()
	if err != nil {
		return nil, fmt.Errorf("compliance thresholds: %w", err)
	}

	var alerts []Alert
	alerts = append(alerts, e.metricAlerts(metrics, normalized)...)
	alerts = append(alerts, e.backlogAlerts(backlog, normalized)...)

	governanceViolated := governance.Violated()
	if governanceViolated {
		alerts = append(alerts, Alert{
			ID:          "article_2_governance",
			Level:       LevelCritical,
			Title:       "Sustainability governance missing",
			Description: "No named RSE owner and/or no documented sustainability policy.",
			Regulation:  "CSRD GOV-1",
			RequiredAction: "Appoint an accountable sustainability owner and " +
				"formalize the sustainability policy.",
		})
	}

	if alert := e.correctiveActionAlert(metrics, backlog); alert != nil {
		alerts = append(alerts, *alert)
	}

	report := e.buildReport(alerts, metrics, governanceViolated)

	logger := logging.FromContext(ctx)
	logger.Info().
		Str("component", "compliance").
		Int("alerts", len(report.Alerts)).
		Float64("score", report.Score).
		Str("level", string(report.Level)).
		Msg("compliance check complete")

	return report, nil
}

// metricAlerts runs the numeric metric checks. Unmeasured metrics are
// skipped.
func (e *Engine) metricAlerts(metrics Metrics, t config.ComplianceThresholds) []Alert {
	checks := []struct {
		check     metricCheck
		value     *float64
		threshold float64
	}{
		{
			check: metricCheck{
				id: "article_1_emissions_intensity", title: "Emissions intensity above limit",
				regulation: "CSRD E1", direction: violateAbove,
				requiredAction: "Define an emissions reduction trajectory.",
			},
			value: metrics.EmissionsIntensity, threshold: t.EmissionsIntensityMax,
		},
		{
			check: metricCheck{
				id: "article_1_water_intensity", title: "Water intensity above limit",
				regulation: "CSRD E3", direction: violateAbove,
				requiredAction: "Audit water usage on the main consuming sites.",
			},
			value: metrics.WaterIntensity, threshold: t.WaterIntensityMax,
		},
		{
			check: metricCheck{
				id: "article_1_renewable_share", title: "Renewable energy share below minimum",
				regulation: "CSRD E1", direction: violateBelow,
				requiredAction: "Contract renewable electricity supply.",
			},
			value: metrics.RenewableShare, threshold: t.RenewableShareMin,
		},
		{
			check: metricCheck{
				id: "article_4_training", title: "Training hours below minimum",
				regulation: "CSRD S1", direction: violateBelow,
				requiredAction: "Budget an annual per-employee training plan.",
			},
			value: metrics.TrainingHours, threshold: t.TrainingHoursMin,
		},
		{
			check: metricCheck{
				id: "article_4_safety", title: "Accident rate above limit",
				regulation: "CSRD S1", direction: violateAbove,
				requiredAction: "Review the health and safety management system.",
			},
			value: metrics.AccidentRate, threshold: t.AccidentRateMax,
		},
		{
			check: metricCheck{
				id: "article_5_parity", title: "Women in management below minimum",
				regulation: "CSRD S1", direction: violateBelow,
				requiredAction: "Set management gender-parity targets.",
			},
			value: metrics.WomenManagement, threshold: t.WomenManagementMin,
		},
		{
			check: metricCheck{
				id: "article_2_board", title: "Board independence below minimum",
				regulation: "CSRD G1", direction: violateBelow,
				requiredAction: "Appoint independent board members.",
			},
			value: metrics.BoardIndependence, threshold: t.BoardIndependenceMin,
		},
	}

	var alerts []Alert
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if alert := e.evaluate(c.check, *c.value, c.threshold); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

// backlogAlerts checks completion and blockage rates. Both require a
// non-empty backlog; with zero actions there is no rate to judge.
func (e *Engine) backlogAlerts(backlog []actions.Record, t config.ComplianceThresholds) []Alert {
	var alerts []Alert

	if rate, ok := actions.CompletionRate(backlog); ok {
		check := metricCheck{
			id: "article_3_action_completion", title: "Action plan completion below minimum",
			regulation: "internal action plan", direction: violateBelow,
			requiredAction: "Re-prioritize and resource the action backlog.",
		}
		if alert := e.evaluate(check, rate, t.ActionCompletionMin); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	if ratio, ok := actions.BlockedRatio(backlog); ok {
		check := metricCheck{
			id: "article_3_action_blocked", title: "Too many blocked actions",
			regulation: "internal action plan", direction: violateAbove,
			requiredAction: "Unblock or re-scope stalled actions.",
		}
		if alert := e.evaluate(check, ratio, t.BlockedActionRatioMax); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	return alerts
}

// evaluate compares one value against its threshold, escalating to critical
// when the violation exceeds the threshold by the policy multiplier.
func (e *Engine) evaluate(check metricCheck, value, threshold float64) *Alert {
	var violated, critical bool

	switch check.direction {
	case violateAbove:
		violated = value > threshold
		critical = value > threshold*e.policy.CriticalMultiplier
	case violateBelow:
		violated = value < threshold
		critical = value < threshold/e.policy.CriticalMultiplier
	}

	if !violated {
		return nil
	}

	level := LevelWarning
	if critical {
		level = LevelCritical
	}

	comparator := "exceeds"
	if check.direction == violateBelow {
		comparator = "is below"
	}

	return &Alert{
		ID:             check.id,
		Level:          level,
		Title:          check.title,
		Description:    fmt.Sprintf("Current value %g %s the threshold %g.", value, comparator, threshold),
		Regulation:     check.regulation,
		Threshold:      threshold,
		CurrentValue:   value,
		RequiredAction: check.requiredAction,
	}
}

// correctiveActionAlert fires when emissions are large and nothing in the
// backlog targets CO2 reduction in the Environment category.
func (e *Engine) correctiveActionAlert(metrics Metrics, backlog []actions.Record) *Alert {
	if metrics.TotalEmissionsTonnes <= e.policy.EmissionsActionFloorTonnes {
		return nil
	}
	for _, record := range backlog {
		if record.Category == "environment" && record.CO2ReductionTarget > 0 {
			return nil
		}
	}
	return &Alert{
		ID:    "article_3_no_corrective_actions",
		Level: LevelCritical,
		Title: "No corrective actions for significant emissions",
		Description: fmt.Sprintf(
			"Total emissions (%g tCO2e) exceed %g tCO2e with no CO2-reduction action planned.",
			metrics.TotalEmissionsTonnes, e.policy.EmissionsActionFloorTonnes),
		Regulation:     "CSRD E1",
		Threshold:      e.policy.EmissionsActionFloorTonnes,
		CurrentValue:   metrics.TotalEmissionsTonnes,
		RequiredAction: "Plan at least one environment action with a CO2 reduction target.",
	}
}

// buildReport derives the score and overall level from the alert set.
func (e *Engine) buildReport(alerts []Alert, metrics Metrics, governanceViolated bool) *Report {
	report := &Report{
		Alerts:               alerts,
		MonetizedExposureEUR: metrics.TotalEmissionsTonnes * e.policy.CarbonPriceEURPerTonne,
	}
	if report.Alerts == nil {
		report.Alerts = []Alert{}
	}

	for _, alert := range alerts {
		switch alert.Level {
		case LevelCritical:
			report.CriticalCount++
		case LevelWarning:
			report.WarningCount++
		}
	}

	points := e.policy.PossibleChecks -
		report.CriticalCount*e.policy.CriticalPenalty -
		report.WarningCount*e.policy.WarningPenalty
	if points < 0 {
		points = 0
	}
	report.Score = float64(points) / float64(e.policy.PossibleChecks) * 100

	if governanceViolated && report.Score > e.policy.GovernanceScoreCap {
		report.Score = e.policy.GovernanceScoreCap
	}

	// Critical dominates the overall level regardless of the numeric score.
	switch {
	case report.CriticalCount > 0:
		report.Level = LevelCritical
	case report.WarningCount > 0:
		report.Level = LevelWarning
	default:
		report.Level = LevelConformant
	}

	return report
}
