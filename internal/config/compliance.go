// Package config holds the yaml-backed configuration structures: compliance
// thresholds and policy constants. Every limit the engines compare against
// is a named, overridable field here, never an embedded literal.
package config

import (
	"errors"
	"fmt"
)

// Compliance threshold defaults. Units are noted per field.
const (
	DefaultEmissionsIntensityMax   = 500.0   // tCO2e per M EUR revenue
	DefaultWaterIntensityMax       = 10000.0 // m3 per M EUR revenue
	DefaultRenewableShareMin       = 20.0    // percent
	DefaultTrainingHoursMin        = 10.0    // hours per employee per year
	DefaultAccidentRateMax         = 10.0    // accidents per million hours worked
	DefaultWomenManagementMin      = 30.0    // percent
	DefaultBoardIndependenceMin    = 33.0    // percent
	DefaultActionCompletionMin     = 0.3     // fraction of backlog done
	DefaultBlockedActionRatioMax   = 0.3     // fraction of backlog blocked
	DefaultEmissionsActionFloor    = 1000.0  // tCO2e triggering the corrective-action rule
	DefaultCarbonPriceEURPerTonne  = 80.0
	DefaultGovernanceScoreCap      = 50.0
	DefaultCriticalMultiplier      = 2.0
	DefaultPossibleChecks          = 10
	DefaultCriticalPenaltyPoints   = 2
	DefaultWarningPenaltyPoints    = 1
)

// Threshold validation errors.
var (
	ErrThresholdNegative = errors.New("compliance threshold cannot be negative")
	ErrPolicyInvalid     = errors.New("compliance policy field out of range")
)

// ComplianceThresholds enumerates the numeric limits per monitored
// dimension. Zero-valued fields fall back to the documented defaults, so a
// partially-filled YAML document behaves predictably.
type ComplianceThresholds struct {
	EmissionsIntensityMax float64 `yaml:"emissions_intensity_max,omitempty" json:"emissions_intensity_max,omitempty"`
	WaterIntensityMax     float64 `yaml:"water_intensity_max,omitempty" json:"water_intensity_max,omitempty"`
	RenewableShareMin     float64 `yaml:"renewable_share_min,omitempty" json:"renewable_share_min,omitempty"`
	TrainingHoursMin      float64 `yaml:"training_hours_min,omitempty" json:"training_hours_min,omitempty"`
	AccidentRateMax       float64 `yaml:"accident_rate_max,omitempty" json:"accident_rate_max,omitempty"`
	WomenManagementMin    float64 `yaml:"women_management_min,omitempty" json:"women_management_min,omitempty"`
	BoardIndependenceMin  float64 `yaml:"board_independence_min,omitempty" json:"board_independence_min,omitempty"`
	ActionCompletionMin   float64 `yaml:"action_completion_min,omitempty" json:"action_completion_min,omitempty"`
	BlockedActionRatioMax float64 `yaml:"blocked_action_ratio_max,omitempty" json:"blocked_action_ratio_max,omitempty"`
}

// DefaultComplianceThresholds returns the reference threshold table.
func DefaultComplianceThresholds() ComplianceThresholds {
	return ComplianceThresholds{
		EmissionsIntensityMax: DefaultEmissionsIntensityMax,
		WaterIntensityMax:     DefaultWaterIntensityMax,
		RenewableShareMin:     DefaultRenewableShareMin,
		TrainingHoursMin:      DefaultTrainingHoursMin,
		AccidentRateMax:       DefaultAccidentRateMax,
		WomenManagementMin:    DefaultWomenManagementMin,
		BoardIndependenceMin:  DefaultBoardIndependenceMin,
		ActionCompletionMin:   DefaultActionCompletionMin,
		BlockedActionRatioMax: DefaultBlockedActionRatioMax,
	}
}

// Normalize fills zero fields with their defaults and validates the result.
func (t ComplianceThresholds) Normalize() (ComplianceThresholds, error) {
	defaults := DefaultComplianceThresholds()

	fill := func(v, def float64) float64 {
		if v == 0 {
			return def
		}
		return v
	}

	normalized := ComplianceThresholds{
		EmissionsIntensityMax: fill(t.EmissionsIntensityMax, defaults.EmissionsIntensityMax),
		WaterIntensityMax:     fill(t.WaterIntensityMax, defaults.WaterIntensityMax),
		RenewableShareMin:     fill(t.RenewableShareMin, defaults.RenewableShareMin),
		TrainingHoursMin:      fill(t.TrainingHoursMin, defaults.TrainingHoursMin),
		AccidentRateMax:       fill(t.AccidentRateMax, defaults.AccidentRateMax),
		WomenManagementMin:    fill(t.WomenManagementMin, defaults.WomenManagementMin),
		BoardIndependenceMin:  fill(t.BoardIndependenceMin, defaults.BoardIndependenceMin),
		ActionCompletionMin:   fill(t.ActionCompletionMin, defaults.ActionCompletionMin),
		BlockedActionRatioMax: fill(t.BlockedActionRatioMax, defaults.BlockedActionRatioMax),
	}

	for name, v := range map[string]float64{
		"emissions_intensity_max":  normalized.EmissionsIntensityMax,
		"water_intensity_max":      normalized.WaterIntensityMax,
		"renewable_share_min":      normalized.RenewableShareMin,
		"training_hours_min":       normalized.TrainingHoursMin,
		"accident_rate_max":        normalized.AccidentRateMax,
		"women_management_min":     normalized.WomenManagementMin,
		"board_independence_min":   normalized.BoardIndependenceMin,
		"action_completion_min":    normalized.ActionCompletionMin,
		"blocked_action_ratio_max": normalized.BlockedActionRatioMax,
	} {
		if v < 0 {
			return ComplianceThresholds{}, fmt.Errorf("%w: %s is %v", ErrThresholdNegative, name, v)
		}
	}

	return normalized, nil
}

// CompliancePolicy names the constants of the compliance scoring model so
// they are testable and overridable.
type CompliancePolicy struct {
	// PossibleChecks is the fixed check count the score is scaled against.
	PossibleChecks int `yaml:"possible_checks,omitempty" json:"possible_checks,omitempty"`
	// CriticalPenalty and WarningPenalty are the points deducted per alert.
	CriticalPenalty int `yaml:"critical_penalty,omitempty" json:"critical_penalty,omitempty"`
	WarningPenalty  int `yaml:"warning_penalty,omitempty" json:"warning_penalty,omitempty"`
	// CriticalMultiplier escalates a warning to critical when the violation
	// exceeds the threshold by this factor.
	CriticalMultiplier float64 `yaml:"critical_multiplier,omitempty" json:"critical_multiplier,omitempty"`
	// GovernanceScoreCap caps the final score when governance is violated.
	GovernanceScoreCap float64 `yaml:"governance_score_cap,omitempty" json:"governance_score_cap,omitempty"`
	// EmissionsActionFloorTonnes triggers the no-corrective-actions rule.
	EmissionsActionFloorTonnes float64 `yaml:"emissions_action_floor_tonnes,omitempty" json:"emissions_action_floor_tonnes,omitempty"`
	// CarbonPriceEURPerTonne prices total emissions for the monetized
	// exposure figure.
	CarbonPriceEURPerTonne float64 `yaml:"carbon_price_eur_per_tonne,omitempty" json:"carbon_price_eur_per_tonne,omitempty"`
}

// DefaultCompliancePolicy returns the reference scoring policy.
func DefaultCompliancePolicy() CompliancePolicy {
	return CompliancePolicy{
		PossibleChecks:             DefaultPossibleChecks,
		CriticalPenalty:            DefaultCriticalPenaltyPoints,
		WarningPenalty:             DefaultWarningPenaltyPoints,
		CriticalMultiplier:         DefaultCriticalMultiplier,
		GovernanceScoreCap:         DefaultGovernanceScoreCap,
		EmissionsActionFloorTonnes: DefaultEmissionsActionFloor,
		CarbonPriceEURPerTonne:     DefaultCarbonPriceEURPerTonne,
	}
}

// Normalize fills zero fields with defaults and validates ranges.
func (p CompliancePolicy) Normalize() (CompliancePolicy, error) {
	defaults := DefaultCompliancePolicy()

	if p.PossibleChecks == 0 {
		p.PossibleChecks = defaults.PossibleChecks
	}
	if p.CriticalPenalty == 0 {
		p.CriticalPenalty = defaults.CriticalPenalty
	}
	if p.WarningPenalty == 0 {
		p.WarningPenalty = defaults.WarningPenalty
	}
	if p.CriticalMultiplier == 0 {
		p.CriticalMultiplier = defaults.CriticalMultiplier
	}
	if p.GovernanceScoreCap == 0 {
		p.GovernanceScoreCap = defaults.GovernanceScoreCap
	}
	if p.EmissionsActionFloorTonnes == 0 {
		p.EmissionsActionFloorTonnes = defaults.EmissionsActionFloorTonnes
	}
	if p.CarbonPriceEURPerTonne == 0 {
		p.CarbonPriceEURPerTonne = defaults.CarbonPriceEURPerTonne
	}

	if p.PossibleChecks < 1 || p.CriticalPenalty < 0 || p.WarningPenalty < 0 ||
		p.CriticalMultiplier < 1 || p.GovernanceScoreCap < 0 ||
		p.EmissionsActionFloorTonnes < 0 || p.CarbonPriceEURPerTonne < 0 {
		return CompliancePolicy{}, ErrPolicyInvalid
	}

	return p, nil
}
