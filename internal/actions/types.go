// Package actions manages remediation action records: suggestion generation
// from the remediation library for underperforming indicators, and the
// portfolio math the compliance engine reads (completion and blockage rates,
// documented ROI).
package actions

// Status is the workflow state of an action. Transitions happen in the
// surrounding workflow, never inside the core.
type Status string

// Action workflow states.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// Record is one remediation action, human-created or suggested.
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	Priority    string `json:"priority"`
	// LinkedIndicatorID ties the action to the ESG indicator it improves.
	LinkedIndicatorID string  `json:"linked_indicator_id,omitempty"`
	CostEstimated     float64 `json:"cost_estimated"`
	// CO2ReductionTarget is the expected reduction in tCO2e, when known.
	CO2ReductionTarget float64 `json:"co2_reduction_target,omitempty"`
	RegionalImpact     bool    `json:"regional_impact,omitempty"`
	// Category is the ESG pillar the action belongs to
	// (environment/social/governance).
	Category string `json:"category"`
	// IsSuggestion marks records produced by the generator rather than a
	// human.
	IsSuggestion bool `json:"is_suggestion"`
}

// CompletionRate returns done: total for a backlog. The boolean is false
// when the backlog is empty, so rate checks can be skipped rather than
// dividing by zero.
func CompletionRate(records []Record) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	done := 0
	for _, r := range records {
		if r.Status == StatusDone {
			done++
		}
	}
	return float64(done) / float64(len(records)), true
}

// BlockedRatio returns blocked : total for a backlog, false when empty.
func BlockedRatio(records []Record) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	blocked := 0
	for _, r := range records {
		if r.Status == StatusBlocked {
			blocked++
		}
	}
	return float64(blocked) / float64(len(records)), true
}

// ROI computes the documented return-on-investment percentage:
// ((gains − investment) / investment) × 100. The formula restates the
// subtraction on purpose; existing reports depend on it, so it is preserved
// verbatim rather than normalized. Zero investment yields 0.
func ROI(gains, investment float64) float64 {
	if investment == 0 {
		return 0
	}
	return ((gains - investment) / investment) * 100
}
