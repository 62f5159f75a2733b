package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/actions"
	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
	"github.com/carbonpilot/carbonpilot/internal/scoring"
)

// ActionsSuggestParams holds the parameters for the actions suggest command
// execution. Exported for testing.
type ActionsSuggestParams struct {
	Input  string
	Output string
	Sector string
}

// NewActionsSuggestCmd creates the "suggest" subcommand that proposes
// remediation actions for weak indicators.
func NewActionsSuggestCmd() *cobra.Command {
	var params ActionsSuggestParams

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest remediation actions for weak indicators",
		Long: `Score each indicator and propose remediation actions from the embedded
library wherever the score falls under the indicator's trigger threshold.

Suggestions are proposals, not commitments: they are marked as such and get
fresh identifiers on every run.

Examples:
  # Suggest actions for a scored indicator set
  carbonpilot actions suggest --input indicators.json --sector textile`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeActionsSuggest(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to indicators JSON file (default stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "Output format (table, json, ndjson)")
	cmd.Flags().StringVar(&params.Sector, "sector", "", "Company sector for benchmark adjustments")

	return cmd
}

// executeActionsSuggest runs the suggestion workflow and renders the result.
func executeActionsSuggest(cmd *cobra.Command, params ActionsSuggestParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	data, err := readInput(cmd, params.Input)
	if err != nil {
		return err
	}

	var input scoreInput
	if err := unmarshalInput(data, &input); err != nil {
		return err
	}
	if len(input.Categories) == 0 {
		cmd.Println("No indicator categories in input")
		return nil
	}

	dataset, err := refdata.Load()
	if err != nil {
		return fmt.Errorf("loading reference dataset: %w", err)
	}

	generator := actions.NewGenerator(scoring.NewScorer(dataset), dataset)
	suggestions := generator.Suggest(ctx, input.Categories, params.Sector)

	log.Info().
		Str("operation", "actions_suggest").
		Int("suggestions", len(suggestions)).
		Dur("duration_ms", time.Since(start)).
		Msg("suggestion generation complete")

	return renderSuggestions(cmd.OutOrStdout(), params.Output, suggestions)
}

// renderSuggestions renders the suggested actions in the requested format.
func renderSuggestions(w io.Writer, format string, suggestions []actions.Record) error {
	switch format {
	case outputFormatJSON:
		return renderJSON(w, suggestions)
	case outputFormatNDJSON:
		for _, suggestion := range suggestions {
			if err := renderNDJSONLine(w, suggestion); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderSuggestionsTable(w, suggestions)
	}
}

// renderSuggestionsTable renders suggestions as a table.
func renderSuggestionsTable(w io.Writer, suggestions []actions.Record) error {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No remediation actions suggested")
		return nil
	}

	fmt.Fprintln(w, "Suggested Actions")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	for _, suggestion := range suggestions {
		fmt.Fprintf(w, "  [%s] %s (indicator %s)\n",
			suggestion.Priority, suggestion.Title, suggestion.LinkedIndicatorID)
		if suggestion.Description != "" {
			fmt.Fprintf(w, "      %s\n", suggestion.Description)
		}
		if suggestion.CostEstimated > 0 {
			fmt.Fprintf(w, "      Estimated cost: %.0f EUR\n", suggestion.CostEstimated)
		}
		if suggestion.CO2ReductionTarget > 0 {
			fmt.Fprintf(w, "      CO2 reduction target: %.1f t\n", suggestion.CO2ReductionTarget)
		}
	}

	return nil
}
