package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const scenario = `
ops:
  - insert: 10
  - insert: 20
  - insert: 30
  - insert: 40
queries:
  - {op: contains, item: 25, at: 3}
  - {op: predecessor, item: 25, at: 3}
  - {op: successor, item: 25, at: 3}
`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "workload.yaml")
	require.NoError(t, os.WriteFile(file, []byte(scenario), 0o644))
	for i, a := range args {
		if a == "FILE" {
			args[i] = file
		}
	}
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pavl", "--no-color"}, args...))
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := runApp(t, "run", "--backend", "boundedcopy", "FILE")
	require.NoError(t, err)
	require.Contains(t, out, "insert 40")
	require.Contains(t, out, "predecessor(25) @3")
	require.Contains(t, out, "20")
	require.Contains(t, out, "30")
}

func TestCompareCommand(t *testing.T) {
	out, err := runApp(t, "compare", "FILE")
	require.NoError(t, err)
	require.Contains(t, out, "all backends agree")
	for _, b := range []string{"fatnode", "pathcopy", "boundedcopy"} {
		require.Contains(t, out, b)
	}
}

func TestDotCommand(t *testing.T) {
	out, err := runApp(t, "dot", "--at", "2", "FILE")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "strict digraph {"))
	require.Contains(t, out, "@2")
}

func TestStatsCommand(t *testing.T) {
	out, err := runApp(t, "stats", "FILE")
	require.NoError(t, err)
	require.Contains(t, out, "versions")
	require.Contains(t, out, "log_entries")
}

func TestGenCommand(t *testing.T) {
	out, err := runApp(t, "gen", "--ops", "5", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "ops:")
	require.Equal(t, 5, strings.Count(out, "insert:")+strings.Count(out, "delete:"))
}

func TestMissingFile(t *testing.T) {
	_, err := runApp(t, "run")
	require.Error(t, err)
}
