package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/emissions"
	"github.com/carbonpilot/carbonpilot/internal/factor"
	"github.com/carbonpilot/carbonpilot/internal/logging"
	"github.com/carbonpilot/carbonpilot/internal/refdata"
)

// EmissionsCalculateParams holds the parameters for the emissions calculate
// command execution. Exported for testing.
type EmissionsCalculateParams struct {
	Input   string
	Output  string
	Workers int
	Country string
}

// CalculateResponse is the JSON envelope for a batch calculation. Exported
// for testing.
type CalculateResponse struct {
	Results     []RecordResult              `json:"results"`
	TotalKg     float64                     `json:"total_kg"`
	TotalTonnes float64                     `json:"total_tonnes"`
	ByScope     map[emissions.Scope]float64 `json:"by_scope_kg"`
	Equivalency emissions.Equivalency       `json:"equivalency"`
}

// RecordResult pairs an input record ID with its calculation result.
type RecordResult struct {
	RecordID string                      `json:"record_id,omitempty"`
	Category string                      `json:"category"`
	Result   emissions.CalculationResult `json:"result"`
}

// NewEmissionsCalculateCmd creates the "calculate" subcommand that converts
// activity records into CO2e results.
//
// Input is a JSON array of activity records, read from --input or stdin.
// Records are processed concurrently; results keep input order.
func NewEmissionsCalculateCmd() *cobra.Command {
	var params EmissionsCalculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate CO2e emissions for activity records",
		Long: `Convert a batch of activity records into CO2-equivalent results.

Each record is matched against the embedded emission factor dataset through
the five-tier resolution chain (reference, sector library, monetary ratio,
default factor, generic fallback), so every record always gets a result.

Examples:
  # Calculate from a file, table output
  carbonpilot emissions calculate --input activities.json

  # Pipe records in, JSON out, 16 workers
  cat activities.json | carbonpilot emissions calculate --output json --workers 16

  # Apply a fallback country for records without one
  carbonpilot emissions calculate --input activities.json --country FR`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEmissionsCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to activity records JSON file (default stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "Output format (table, json, ndjson)")
	cmd.Flags().IntVar(&params.Workers, "workers", emissions.DefaultWorkers,
		fmt.Sprintf("Concurrent calculation workers (max %d)", emissions.MaxWorkers))
	cmd.Flags().StringVar(&params.Country, "country", "",
		"Fallback ISO country code for records without one")

	return cmd
}

// executeEmissionsCalculate runs the batch calculation workflow: load the
// reference dataset, resolve factors, calculate, and render.
func executeEmissionsCalculate(cmd *cobra.Command, params EmissionsCalculateParams) error {
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

	for i := range records {
		if records[i].CountryCode == "" {
			records[i].CountryCode = params.Country
		}
	}

	dataset, err := refdata.Load()
	if err != nil {
		return fmt.Errorf("loading reference dataset: %w", err)
	}

	calc := emissions.NewCalculator(factor.NewResolver(dataset))

	log.Debug().
		Str("operation", "emissions_calculate").
		Int("records", len(records)).
		Int("workers", params.Workers).
		Msg("starting batch calculation")

	results, err := calc.CalculateBatch(ctx, records, params.Workers)
	if err != nil {
		return fmt.Errorf("calculating emissions: %w", err)
	}

	response := buildCalculateResponse(records, results)

	log.Info().
		Str("operation", "emissions_calculate").
		Int("records", len(records)).
		Float64("total_kg", response.TotalKg).
		Dur("duration_ms", time.Since(start)).
		Msg("batch calculation complete")

	return renderCalculateResponse(cmd.OutOrStdout(), params.Output, response)
}

// buildCalculateResponse aggregates per-record results into totals, a
// per-scope breakdown and an everyday equivalency.
func buildCalculateResponse(records []emissions.ActivityRecord, results []emissions.CalculationResult) *CalculateResponse {
	response := &CalculateResponse{
		Results: make([]RecordResult, len(results)),
		ByScope: make(map[emissions.Scope]float64),
	}

	for i, result := range results {
		response.Results[i] = RecordResult{
			RecordID: records[i].ID,
			Category: records[i].Category,
			Result:   result,
		}
		response.TotalKg += result.CO2EquivalentKg
		response.ByScope[result.GHGScope] += result.CO2EquivalentKg
	}

	response.TotalTonnes = response.TotalKg / emissions.KgPerTonne
	response.Equivalency = emissions.Equivalencies(response.TotalKg)

	return response
}

// renderCalculateResponse renders the batch response in the requested format.
func renderCalculateResponse(w io.Writer, format string, response *CalculateResponse) error {
	switch format {
	case outputFormatJSON:
		return renderJSON(w, response)
	case outputFormatNDJSON:
		return renderCalculateNDJSON(w, response)
	default:
		return renderCalculateTable(w, response)
	}
}

// renderCalculateNDJSON emits one result per line, without the summary.
func renderCalculateNDJSON(w io.Writer, response *CalculateResponse) error {
	for _, result := range response.Results {
		if err := renderNDJSONLine(w, result); err != nil {
			return err
		}
	}
	return nil
}

// renderCalculateTable renders the batch response as a human-readable table.
func renderCalculateTable(w io.Writer, response *CalculateResponse) error {
	fmt.Fprintln(w, "Emission Calculation")
	fmt.Fprintln(w, "====================")
	fmt.Fprintln(w)

	for _, result := range response.Results {
		name := result.RecordID
		if name == "" {
			name = result.Category
		}
		fmt.Fprintf(w, "  %s: %s\n", name, result.Result.Formula)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total:     %.3f kgCO2e (%.3f t)\n", response.TotalKg, response.TotalTonnes)
	for _, scope := range []emissions.Scope{emissions.ScopeOne, emissions.ScopeTwo, emissions.ScopeThree} {
		if kg, ok := response.ByScope[scope]; ok {
			fmt.Fprintf(w, "  %s:   %.3f kgCO2e\n", scope, kg)
		}
	}
	fmt.Fprintln(w)

	if !response.Equivalency.IsEmpty {
		fmt.Fprintln(w, response.Equivalency.DisplayText)
	}

	return nil
}
