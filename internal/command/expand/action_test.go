package expand

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestCommand_ExpandFile(t *testing.T) {
	dir := t.TempDir()
	repsDir := filepath.Join(dir, "reps")
	require.NoError(t, os.Mkdir(repsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repsDir, "region.txt"), []byte("eu\nus\n"), 0o600))

	input := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(input, []byte("name: rules\nhosts|expand: \"api-%region%\"\n"), 0o600))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("expand:\n  format: json\n"), 0o600))
	output := filepath.Join(dir, "out.json")

	var stdout bytes.Buffer
	root := &cli.Command{
		Name:     "yexp",
		Writer:   &stdout,
		Commands: []*cli.Command{Command},
	}

	err := root.Run(context.Background(), []string{
		"yexp", "expand",
		"--config", cfgPath,
		"--log-level", "error",
		"-d", repsDir,
		"-o", output,
		input,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "rules", "hosts": ["api-eu", "api-us"]}`, string(data))
	assert.Empty(t, stdout.String())
}

func TestReadInput_Stdin(t *testing.T) {
	data, err := readInput(stdio, strings.NewReader("a: b\n"))
	require.NoError(t, err)
	assert.Equal(t, "a: b\n", string(data))
}

func TestReadInput_Missing(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(stdio, []byte("x: 1\n"), &buf))
	assert.Equal(t, "x: 1\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, writeOutput(path, []byte("y: 2\n"), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y: 2\n", string(data))
}
