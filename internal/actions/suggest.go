package actions

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
	"github.com/carbonpilot/carbonpilot/internal/scoring"
)

// Library supplies remediation entries per indicator. The embedded
// refdata.Dataset implements it.
type Library interface {
	Remediation(indicatorID string) (refdata.RemediationEntry, bool)
}

// Generator matches underperforming indicators to the remediation library.
type Generator struct {
	scorer  *scoring.Scorer
	library Library
}

// NewGenerator builds a suggestion generator.
func NewGenerator(scorer *scoring.Scorer, library Library) *Generator {
	return &Generator{scorer: scorer, library: library}
}

// Suggest scores every indicator and instantiates the remediation templates
// of those scoring below their library entry's trigger threshold. Suggested
// records start in "todo" with IsSuggestion set. The generator does not
// deduplicate against the existing backlog; that is a workflow concern.
func (g *Generator) Suggest(ctx context.Context, categories []scoring.Category, sector string) []Record {
	log := logging.FromContext(ctx).With().Str("component", "actions").Logger()

	var suggestions []Record
	for _, category := range categories {
		for _, indicator := range category.Indicators {
			entry, ok := g.library.Remediation(indicator.ID)
			if !ok {
				continue
			}

			score := g.scorer.ScoreIndicator(indicator, sector)
			if score >= entry.TriggerThreshold {
				continue
			}

			log.Debug().
				Str("indicator", indicator.ID).
				Float64("score", score).
				Float64("threshold", entry.TriggerThreshold).
				Int("templates", len(entry.Actions)).
				Msg("indicator below remediation threshold")

			for _, template := range entry.Actions {
				suggestions = append(suggestions, Record{
					ID:                 ulid.Make().String(),
					Title:              template.Title,
					Description:        template.Description,
					Status:             StatusTodo,
					Priority:           template.Priority,
					LinkedIndicatorID:  indicator.ID,
					CostEstimated:      template.CostEstimated,
					CO2ReductionTarget: template.CO2ReductionTarget,
					RegionalImpact:     template.RegionalImpact,
					Category:           entry.Category,
					IsSuggestion:       true,
				})
			}
		}
	}

	return suggestions
}
