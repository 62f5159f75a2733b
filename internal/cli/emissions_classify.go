package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/assist"
	"github.com/carbonpilot/carbonpilot/internal/emissions"
	"github.com/carbonpilot/carbonpilot/internal/factor"
	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
)

// EmissionsClassifyParams holds the parameters for the classify command.
// Exported for testing.
type EmissionsClassifyParams struct {
	Input  string
	Output string
}

// ClassifyResult pairs a record with its classification and any duplicate
// findings against the rest of the batch.
type ClassifyResult struct {
	RecordID   string           `json:"record_id,omitempty"`
	Category   string           `json:"category,omitempty"`
	Result     assist.Result    `json:"result"`
	Duplicates []assist.Anomaly `json:"duplicates,omitempty"`
}

// NewEmissionsClassifyCmd creates the "classify" subcommand that pre-fills
// GHG scope and category suggestions and flags data-quality anomalies.
func NewEmissionsClassifyCmd() *cobra.Command {
	var params EmissionsClassifyParams

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Suggest scope and category for imported records",
		Long: `Infer GHG scope and activity category for each record from weak signals
(document type, unit, supplier name) and flag data-quality anomalies.

Suggestions are never silently applied: each one carries a confidence and a
review badge so low-confidence records can be routed to manual validation.

Examples:
  # Classify a batch of imported records
  carbonpilot emissions classify --input imported.json

  # Machine-readable output for the validation pipeline
  carbonpilot emissions classify --input imported.json --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEmissionsClassify(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to activity records JSON file (default stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "Output format (table, json, ndjson)")

	return cmd
}

// executeEmissionsClassify classifies each record and checks it for
// duplicates against the rest of the batch.
func executeEmissionsClassify(cmd *cobra.Command, params EmissionsClassifyParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	data, err := readInput(cmd, params.Input)
	if err != nil {
		return err
	}

	var records []emissions.ActivityRecord
	if err := unmarshalInput(data, &records); err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No activity records in input")
		return nil
	}

	dataset, err := refdata.Load()
	if err != nil {
		return fmt.Errorf("loading reference dataset: %w", err)
	}

	cfg := assist.DefaultConfig()
	classifier := assist.NewClassifier(factor.NewResolver(dataset), cfg)

	results := make([]ClassifyResult, len(records))
	for i, record := range records {
		// History excludes the record itself so ID-less records do not flag
		// themselves as duplicates.
		history := make([]emissions.ActivityRecord, 0, len(records)-1)
		history = append(history, records[:i]...)
		history = append(history, records[i+1:]...)

		results[i] = ClassifyResult{
			RecordID:   record.ID,
			Category:   record.Category,
			Result:     classifier.Classify(ctx, record, record.DocumentType),
			Duplicates: assist.CheckDuplicate(record, history, cfg),
		}
	}

	log.Info().
		Str("operation", "emissions_classify").
		Int("records", len(records)).
		Dur("duration_ms", time.Since(start)).
		Msg("classification complete")

	return renderClassifyResults(cmd.OutOrStdout(), params.Output, results)
}

// renderClassifyResults renders classification results in the requested
// format.
func renderClassifyResults(w io.Writer, format string, results []ClassifyResult) error {
	switch format {
	case outputFormatJSON:
		return renderJSON(w, results)
	case outputFormatNDJSON:
		for _, result := range results {
			if err := renderNDJSONLine(w, result); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderClassifyTable(w, results)
	}
}

// renderClassifyTable renders classification results as a table.
func renderClassifyTable(w io.Writer, results []ClassifyResult) error {
	fmt.Fprintln(w, "Smart-Assist Classification")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintln(w)

	for _, result := range results {
		name := result.RecordID
		if name == "" {
			name = result.Category
		}
		fmt.Fprintf(w, "  %s: %s / %s (confidence %.2f, review: %s)\n",
			name,
			result.Result.Scope.Scope,
			result.Result.Category.Category,
			result.Result.OverallConfidence,
			result.Result.Recommendation,
		)

		for _, anomaly := range result.Result.Anomalies {
			fmt.Fprintf(w, "    [%s] %s\n", anomaly.Severity, anomaly.Message)
		}
		for _, anomaly := range result.Duplicates {
			fmt.Fprintf(w, "    [%s] %s\n", anomaly.Severity, anomaly.Message)
		}
	}

	return nil
}
