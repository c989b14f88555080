package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/teenjuna/cand/internal/testing/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "none"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestLinesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.Nil(t, os.WriteFile(path, []byte("alpha\nbeta\ngamma"), 0o600))

	out, err := execute(t, "lines", path)
	require.Nil(t, err)
	require.Equal(t, out, "alpha\nbeta\ngamma\n")
}

func TestLinesCommandMissingFile(t *testing.T) {
	_, err := execute(t, "lines", filepath.Join(t.TempDir(), "missing"))
	require.NotNil(t, err)
}

func TestRangeCommand(t *testing.T) {
	out, err := execute(t, "range", "8", "11")
	require.Nil(t, err)
	require.Equal(t, out, "08\n09\n10\n")

	out, err = execute(t, "range", "--padding", "4", "8", "11")
	require.Nil(t, err)
	require.Equal(t, out, "0008\n0009\n0010\n")

	out, err = execute(t, "range", "5", "5")
	require.Nil(t, err)
	require.Equal(t, out, "")
}

func TestRangeCommandWorkers(t *testing.T) {
	single, err := execute(t, "range", "0", "1000")
	require.Nil(t, err)

	parallel, err := execute(t, "range", "--workers", "7", "0", "1000")
	require.Nil(t, err)
	require.Equal(t, parallel, single)
}

func TestRangeCommandEnv(t *testing.T) {
	t.Setenv("CAND_PADDING", "5")

	out, err := execute(t, "range", "1", "3")
	require.Nil(t, err)
	require.Equal(t, out, "00001\n00002\n")
}

func TestRangeCommandInvalid(t *testing.T) {
	_, err := execute(t, "range", "9", "3")
	require.NotNil(t, err)

	_, err = execute(t, "range", "x", "3")
	require.NotNil(t, err)

	_, err = execute(t, "range", "--workers", "0", "1", "3")
	require.NotNil(t, err)
}

func TestLoggerFlags(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "range", "1", "3")
	require.NotNil(t, err)

	_, err = execute(t, "--log-level", "error", "--log-format", "xml", "range", "1", "3")
	require.NotNil(t, err)
}
