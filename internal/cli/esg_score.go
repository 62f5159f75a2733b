package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
	"github.com/carbonpilot/carbonpilot/internal/scoring"
)

// ESGScoreParams holds the parameters for the esg score command execution.
// Exported for testing.
type ESGScoreParams struct {
	Input   string
	Output  string
	Sector  string
	Revenue float64
	Weights []string // CATEGORY=PERCENT format
}

// scoreInput is the esg score input document.
type scoreInput struct {
	Categories []scoring.Category `json:"categories"`
	// Revenue in millions EUR, used by calculated indicators. The --revenue
	// flag overrides it when set.
	Revenue float64 `json:"revenue,omitempty"`
}

// NewESGScoreCmd creates the "score" subcommand that scores ESG indicators
// against sector benchmarks and aggregates them into a graded report.
func NewESGScoreCmd() *cobra.Command {
	var params ESGScoreParams

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score ESG indicators against benchmarks",
		Long: `Score ESG indicators against the embedded benchmark curves, aggregate
them into category scores and a graded 0-100 total.

Custom category weights are percentages and fully replace the default
40/30/30 split; they must cover every scored category.

Examples:
  # Score with default weights
  carbonpilot esg score --input indicators.json --sector textile --revenue 12.5

  # Custom weights (percentages, must cover all categories)
  carbonpilot esg score --input indicators.json --weight E=50 --weight S=30 --weight G=20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeESGScore(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to indicators JSON file (default stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "Output format (table, json)")
	cmd.Flags().StringVar(&params.Sector, "sector", "", "Company sector for benchmark adjustments")
	cmd.Flags().Float64Var(&params.Revenue, "revenue", 0, "Annual revenue in millions EUR (overrides input document)")
	cmd.Flags().StringArrayVar(&params.Weights, "weight", nil, "Category weight CATEGORY=PERCENT (repeatable, replaces defaults)")

	return cmd
}

// ParseCategoryWeights parses --weight CATEGORY=PERCENT flags into a weight
// map. Exported for testing.
func ParseCategoryWeights(weights []string) (map[scoring.CategoryID]float64, error) {
	if len(weights) == 0 {
		return nil, nil
	}

	parsed := make(map[scoring.CategoryID]float64, len(weights))
	for _, w := range weights {
		parts := strings.SplitN(w, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid weight format %q: expected CATEGORY=PERCENT", w)
		}
		category := strings.TrimSpace(parts[0])
		if category == "" {
			return nil, fmt.Errorf("category cannot be empty in %q", w)
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in %q: %w", w, err)
		}
		parsed[scoring.CategoryID(category)] = percent
	}
	return parsed, nil
}

// executeESGScore runs the scoring workflow and renders the report.
func executeESGScore(cmd *cobra.Command, params ESGScoreParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	weights, err := ParseCategoryWeights(params.Weights)
	if err != nil {
		return err
	}

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

	revenue := input.Revenue
	if params.Revenue > 0 {
		revenue = params.Revenue
	}

	dataset, err := refdata.Load()
	if err != nil {
		return fmt.Errorf("loading reference dataset: %w", err)
	}

	scorer := scoring.NewScorer(dataset)
	report, err := scorer.ScoreESG(input.Categories, params.Sector, revenue, weights)
	if err != nil {
		return fmt.Errorf("scoring indicators: %w", err)
	}

	log.Info().
		Str("operation", "esg_score").
		Float64("total_score", report.TotalScore).
		Str("grade", report.Grade).
		Dur("duration_ms", time.Since(start)).
		Msg("scoring complete")

	return renderScoreReport(cmd.OutOrStdout(), params.Output, report)
}

// renderScoreReport renders the score report in the requested format.
func renderScoreReport(w io.Writer, format string, report *scoring.ScoreReport) error {
	if format == outputFormatJSON {
		return renderJSON(w, report)
	}
	return renderScoreTable(w, report)
}

// renderScoreTable renders the score report as a table. Categories and
// indicators are sorted for stable output.
func renderScoreTable(w io.Writer, report *scoring.ScoreReport) error {
	fmt.Fprintln(w, "ESG Score Report")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total: %.1f/100  Grade: %s (%s)\n", report.TotalScore, report.Grade, report.GradeLabel)
	fmt.Fprintln(w)

	categoryIDs := make([]string, 0, len(report.CategoryScores))
	for id := range report.CategoryScores {
		categoryIDs = append(categoryIDs, string(id))
	}
	sort.Strings(categoryIDs)

	fmt.Fprintln(w, "Category Scores:")
	fmt.Fprintln(w, "----------------")
	for _, id := range categoryIDs {
		fmt.Fprintf(w, "  %s: %.1f\n", id, report.CategoryScores[scoring.CategoryID(id)])
	}
	fmt.Fprintln(w)

	indicatorIDs := make([]string, 0, len(report.IndicatorScores))
	for id := range report.IndicatorScores {
		indicatorIDs = append(indicatorIDs, id)
	}
	sort.Strings(indicatorIDs)

	fmt.Fprintln(w, "Indicator Scores:")
	fmt.Fprintln(w, "-----------------")
	for _, id := range indicatorIDs {
		fmt.Fprintf(w, "  %s: %.1f\n", id, report.IndicatorScores[id])
	}

	return nil
}
