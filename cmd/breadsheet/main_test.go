package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// These tests touch process-wide state (env, log output), so they run
// serially.

func writeCSV(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BREADSHEET_CONFIG", filepath.Join(dir, "absent.toml"))
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,city\n Ana ,Lisbon\nBob,Banana Town\n"), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchPrintsMatchesInRowMajorOrder(t *testing.T) {
	path := writeCSV(t)

	out, _, err := execute(t, "search", path, "AN")
	require.NoError(t, err)
	require.Equal(t, "A2\t Ana \nB3\tBanana Town\n", out)
}

func TestSearchNoMatchesExitsWithSentinel(t *testing.T) {
	path := writeCSV(t)

	out, errOut, err := execute(t, "search", path, "lisbn")
	require.ErrorIs(t, err, errNoMatches)
	require.Empty(t, out)
	require.Contains(t, errOut, `closest: "Lisbon"`)
}

func TestSearchEmptyQuery(t *testing.T) {
	path := writeCSV(t)

	_, _, err := execute(t, "search", path, "   ")
	require.EqualError(t, err, "empty query")
}

func TestSearchUnsupportedFile(t *testing.T) {
	writeCSV(t)
	bad := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))

	_, _, err := execute(t, "search", bad, "x")
	require.EqualError(t, err, "Unsupported file type. Please upload an Excel or CSV file.")
}

func TestExportWritesHighlightedHTML(t *testing.T) {
	path := writeCSV(t)
	outPath := filepath.Join(t.TempDir(), "out.html")

	_, _, err := execute(t, "export", path, "-o", outPath, "--query", "lisbon")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(data)
	require.Contains(t, html, `id="first-match"`)
	require.Contains(t, html, "Lisbon")
	require.Contains(t, html, "<title>people.csv</title>")
}

func TestExportToStdout(t *testing.T) {
	path := writeCSV(t)

	out, _, err := execute(t, "export", path)
	require.NoError(t, err)
	require.Contains(t, out, "Banana Town")
	require.NotContains(t, out, "first-match")
}

func TestConfigInitAndShow(t *testing.T) {
	writeCSV(t)
	cfgPath := filepath.Join(t.TempDir(), "breadsheet", "config.toml")

	out, _, err := execute(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	require.Equal(t, "wrote "+cfgPath+"\n", out)

	_, _, err = execute(t, "--config", cfgPath, "config", "init")
	require.Error(t, err)

	_, _, err = execute(t, "--config", cfgPath, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "debounce")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	path := writeCSV(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "search", path, "ana")
	require.Error(t, err)
}
