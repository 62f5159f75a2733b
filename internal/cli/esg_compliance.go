package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/actions"
	"github.com/carbonpilot/carbonpilot/internal/compliance"
	"github.com/carbonpilot/carbonpilot/internal/config"
	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// ESGComplianceParams holds the parameters for the esg compliance command
// execution. Exported for testing.
type ESGComplianceParams struct {
	Input          string
	Output         string
	FailOnCritical bool
	ExitCode       int
}

// complianceInput is the esg compliance input document.
type complianceInput struct {
	Metrics    compliance.Metrics           `json:"metrics"`
	Governance *compliance.Governance       `json:"governance,omitempty"`
	Backlog    []actions.Record             `json:"backlog,omitempty"`
	Thresholds config.ComplianceThresholds  `json:"thresholds,omitempty"`
	Policy     config.CompliancePolicy      `json:"policy,omitempty"`
}

// NewESGComplianceCmd creates the "compliance" subcommand that evaluates
// company metrics against regulatory thresholds.
func NewESGComplianceCmd() *cobra.Command {
	var params ESGComplianceParams

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Run regulatory compliance checks",
		Long: `Evaluate company metrics, governance and action backlog against
regulatory thresholds and produce a scored compliance report.

The check is deterministic: identical inputs always produce identical
alerts and scores, so reports can be diffed between runs.

Examples:
  # Run the checks and print the report
  carbonpilot esg compliance --input company.json

  # Fail a CI pipeline when critical alerts are raised
  carbonpilot esg compliance --input company.json --fail-on-critical --exit-code 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeESGCompliance(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to compliance input JSON file (default stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "Output format (table, json)")
	cmd.Flags().BoolVar(&params.FailOnCritical, "fail-on-critical", false,
		"Exit with non-zero code when critical alerts are raised")
	cmd.Flags().IntVar(&params.ExitCode, "exit-code", 1,
		"Exit code to use with --fail-on-critical (0-255)")

	return cmd
}

// executeESGCompliance runs the compliance workflow and renders the report.
func executeESGCompliance(cmd *cobra.Command, params ESGComplianceParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if params.ExitCode < 0 || params.ExitCode > 255 {
		return fmt.Errorf("exit-code must be in 0-255, got %d", params.ExitCode)
	}

	data, err := readInput(cmd, params.Input)
	if err != nil {
		return err
	}

	var input complianceInput
	if err := unmarshalInput(data, &input); err != nil {
		return err
	}

	// The config file supplies thresholds and policy when the input document
	// leaves them out.
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if input.Thresholds == (config.ComplianceThresholds{}) {
		input.Thresholds = fileCfg.Compliance.Thresholds
	}
	if input.Policy == (config.CompliancePolicy{}) {
		input.Policy = fileCfg.Compliance.Policy
	}

	engine, err := compliance.NewEngine(input.Policy)
	if err != nil {
		return err
	}

	report, err := engine.Check(ctx, input.Backlog, input.Metrics, input.Thresholds, input.Governance)
	if err != nil {
		return fmt.Errorf("running compliance checks: %w", err)
	}

	log.Info().
		Str("operation", "esg_compliance").
		Str("level", string(report.Level)).
		Float64("score", report.Score).
		Int("critical", report.CriticalCount).
		Int("warning", report.WarningCount).
		Dur("duration_ms", time.Since(start)).
		Msg("compliance check complete")

	if err := renderComplianceReport(cmd.OutOrStdout(), params.Output, report); err != nil {
		return err
	}

	if params.FailOnCritical && report.Level == compliance.LevelCritical {
		return &ComplianceExitError{
			ExitCode: params.ExitCode,
			Reason:   fmt.Sprintf("%d critical alert(s)", report.CriticalCount),
		}
	}

	return nil
}

// renderComplianceReport renders the compliance report in the requested
// format.
func renderComplianceReport(w io.Writer, format string, report *compliance.Report) error {
	if format == outputFormatJSON {
		return renderJSON(w, report)
	}
	return renderComplianceTable(w, report)
}

// renderComplianceTable renders the compliance report as a table.
func renderComplianceTable(w io.Writer, report *compliance.Report) error {
	fmt.Fprintln(w, "Compliance Report")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Level:    %s\n", report.Level)
	fmt.Fprintf(w, "Score:    %.0f/100\n", report.Score)
	fmt.Fprintf(w, "Exposure: %.0f EUR (carbon price on gross emissions)\n", report.MonetizedExposureEUR)
	fmt.Fprintln(w)

	if len(report.Alerts) == 0 {
		fmt.Fprintln(w, "All checks passed")
		return nil
	}

	fmt.Fprintf(w, "Alerts (%d critical, %d warning):\n", report.CriticalCount, report.WarningCount)
	fmt.Fprintln(w, "--------------------------------")
	for _, alert := range report.Alerts {
		fmt.Fprintf(w, "  [%s] %s (%s)\n", alert.Level, alert.Title, alert.Regulation)
		fmt.Fprintf(w, "      %s\n", alert.Description)
		if alert.RequiredAction != "" {
			fmt.Fprintf(w, "      Action: %s\n", alert.RequiredAction)
		}
	}

	return nil
}
