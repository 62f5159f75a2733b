// Package cli wires the carbon accounting and ESG scoring engines into the
// carbonpilot command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the carbonpilot CLI.
// It wires up logging and the emissions, esg and actions command groups.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "carbonpilot",
		Short:   "Carbon accounting and ESG scoring CLI",
		Long:    "CarbonPilot: Calculate GHG emissions and ESG scores from activity data",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-format", "", "log output format (console, json)")
	cmd.PersistentFlags().String("config", "", "path to carbonpilot config file (YAML)")
	cmd.AddCommand(newEmissionsCmd(), newESGCmd(), newActionsCmd())

	return cmd
}

const rootCmdExample = `  # Calculate CO2e emissions for a batch of activity records
  carbonpilot emissions calculate --input activities.json

  # Pre-classify imported records and flag data-quality anomalies
  carbonpilot emissions classify --input activities.json --output json

  # Score ESG indicators against sector benchmarks
  carbonpilot esg score --input indicators.json --sector textile --revenue 12.5

  # Run the regulatory compliance checks, failing the build on criticals
  carbonpilot esg compliance --input company.json --fail-on-critical

  # Generate remediation action suggestions for weak indicators
  carbonpilot actions suggest --input indicators.json --sector textile`

// newEmissionsCmd creates the emissions command group with the calculate and
// classify subcommands.
func newEmissionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "emissions", Short: "Emission calculation commands"}
	cmd.AddCommand(NewEmissionsCalculateCmd(), NewEmissionsClassifyCmd())
	return cmd
}

// newESGCmd creates the esg command group with scoring and compliance
// subcommands.
func newESGCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "esg", Short: "ESG scoring and compliance commands"}
	cmd.AddCommand(NewESGScoreCmd(), NewESGComplianceCmd())
	return cmd
}

// newActionsCmd creates the actions command group.
func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "actions", Short: "Remediation action commands"}
	cmd.AddCommand(NewActionsSuggestCmd())
	return cmd
}
