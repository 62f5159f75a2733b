// Command carbonpilot is the carbon accounting and ESG scoring CLI.
package main

import (
	"errors"
	"os"

	"github.com/carbonpilot/carbonpilot/internal/cli"
	"github.com/carbonpilot/carbonpilot/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to a process exit code.
// Split from main so it can be exercised in tests.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return extractComplianceExitCode(err)
	}
	return 0
}

// extractComplianceExitCode returns the custom exit code carried by a
// ComplianceExitError, 1 for any other error, and 0 for nil.
func extractComplianceExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ComplianceExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return 1
}
