package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Output format names shared by all subcommands.
const (
	outputFormatJSON   = "json"
	outputFormatNDJSON = "ndjson"
	outputFormatTable  = "table"
)

// maxInputBytes caps the input document size (32MB). Larger documents are
// almost certainly a mistake and would stall the parser.
const maxInputBytes = 32 * 1024 * 1024

// ErrNoInput is returned when neither --input nor piped stdin provides data.
var ErrNoInput = errors.New("no input: provide --input FILE or pipe JSON on stdin")

// readInput reads the JSON input document from the --input path, or from
// stdin when the path is empty and stdin is not a terminal.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // Path is a user-supplied CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		if len(data) > maxInputBytes {
			return nil, fmt.Errorf("input file too large: %d bytes (max %d)", len(data), maxInputBytes)
		}
		return data, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return nil, ErrNoInput
	}

	data, err := io.ReadAll(io.LimitReader(in, maxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) > maxInputBytes {
		return nil, fmt.Errorf("stdin input too large (max %d bytes)", maxInputBytes)
	}
	return data, nil
}

// unmarshalInput decodes data into v with a uniform error message.
func unmarshalInput(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing input JSON: %w", err)
	}
	return nil
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderNDJSONLine writes v as a single compact JSON line.
func renderNDJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
