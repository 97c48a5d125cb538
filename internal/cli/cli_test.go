package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitify"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	out, err := run(t, "eval", "2", "g", "+", "3", "g", "*", "4", "g")
	require.NoError(t, err)
	assert.Equal(t, "14 g\n", out)

	out, err = run(t, "eval", "72 km/hr + 5 m/s")
	require.NoError(t, err)
	assert.Equal(t, "25 m / s\n", out)

	out, err = run(t, "--format", "csv", "eval", "0.5 kg + 200 g")
	require.NoError(t, err)
	assert.Equal(t, "Magnitude,Unit\n700,g\n", out)
}

func TestEvalErrors(t *testing.T) {
	_, err := run(t, "eval", "1 g + 1 m")
	assert.ErrorIs(t, err, unitify.ErrDimensionMismatch)

	_, err = run(t, "--format", "xml", "eval", "1 g")
	assert.Error(t, err)

	_, err = run(t, "eval")
	assert.Error(t, err)
}

func TestFormatFromEnv(t *testing.T) {
	t.Setenv("UNITIFY_FORMAT", "csv")

	out, err := run(t, "eval", "1 kg")
	require.NoError(t, err)
	assert.Equal(t, "Magnitude,Unit\n1,kg\n", out)

	out, err = run(t, "--format", "text", "eval", "1 kg")
	require.NoError(t, err)
	assert.Equal(t, "1 kg\n", out)
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("700 g\n1 g + 1 m\n2 g + 3 g\n5 g\n"), 0o644))
	dbPath := filepath.Join(dir, "results.db")

	out, err := run(t, "report", "--sorted", "--stats", "--db", dbPath, path)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Results for " + path + " in original order:",
		"700 g",
		"5 g",
		"5 g",
		"",
		"Results for " + path + " in ascending order:",
		"5 g",
		"5 g",
		"700 g",
		"",
		"Statistics for " + path + ":",
		"Mean: 236.66666666666666",
		"Mode: 5",
		"Median: 5",
		"",
	}, "\n")
	assert.Equal(t, want, out)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestReportNoResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 g + 1 m\n"), 0o644))

	out, err := run(t, "report", "--stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no results")
}

func TestReportMissingFile(t *testing.T) {
	_, err := run(t, "report", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestUnits(t *testing.T) {
	out, err := run(t, "units")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "NAME"))
	assert.Contains(t, out, "kilograms")
	assert.Contains(t, out, "Mass")
}
