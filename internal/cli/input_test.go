package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	t.Run("reads from file when --input is set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"category":"diesel"}]`), 0600))

		cmd := &cobra.Command{}
		data, err := readInput(cmd, path)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"category":"diesel"}]`, string(data))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		cmd := &cobra.Command{}
		_, err := readInput(cmd, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("reads from non-terminal stdin", func(t *testing.T) {
		cmd := &cobra.Command{}
		cmd.SetIn(bytes.NewBufferString(`[]`))

		data, err := readInput(cmd, "")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})
}

func TestUnmarshalInput(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		var v []map[string]string
		require.NoError(t, unmarshalInput([]byte(`[{"a":"b"}]`), &v))
		assert.Len(t, v, 1)
	})

	t.Run("invalid JSON wraps the parse error", func(t *testing.T) {
		var v []map[string]string
		err := unmarshalInput([]byte(`{not json`), &v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing input JSON")
	})
}
