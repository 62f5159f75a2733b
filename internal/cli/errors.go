package cli

import "fmt"

// ComplianceExitError signals that the compliance command should exit with a
// custom code because critical alerts were raised and --fail-on-critical is
// set. main() extracts the code via errors.As.
type ComplianceExitError struct {
	ExitCode int
	Reason   string
}

// Error implements the error interface.
func (e *ComplianceExitError) Error() string {
	return fmt.Sprintf("compliance check failed: %s (exit code %d)", e.Reason, e.ExitCode)
}
