//go:build !windows

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unixVerbs = `verbs:
  - invocation: "touch {name}"
    execution: "touch {directory}/{name}"
    leave: false
  - invocation: fail
    execution: "sh -c 'exit 4'"
`

func TestRun_ConfiguredVerb(t *testing.T) {
	writeConfig(t, isolate(t), unixVerbs)
	dir := t.TempDir()

	_, _, err := runCLI(t, "run", "touch", "new file.txt", "--dir", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "new file.txt"))
	assert.NoError(t, err)

	out, _, err := runCLI(t, "history", "--verb", "touch")
	require.NoError(t, err)
	assert.Contains(t, out, "touch")
	assert.Contains(t, out, "Showing 1 execution(s)")
}

func TestRun_ExitCode(t *testing.T) {
	writeConfig(t, isolate(t), unixVerbs)

	_, _, err := runCLI(t, "run", "fail", "--dir", t.TempDir())
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 4, exitErr.Code)

	out, _, err := runCLI(t, "history", "--failed")
	require.NoError(t, err)
	assert.Contains(t, out, "fail")
	assert.Contains(t, out, "4")
}

func TestRun_HistoryDisabled(t *testing.T) {
	writeConfig(t, isolate(t), unixVerbs+"history:\n  enabled: false\n")

	_, _, err := runCLI(t, "run", "touch", "x", "--dir", t.TempDir())
	require.NoError(t, err)

	out, _, err := runCLI(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No execution history available.")
}

func TestRun_HistoryRedactsSecrets(t *testing.T) {
	writeConfig(t, isolate(t), `verbs:
  - invocation: "login {pw}"
    execution: "true password={pw}"
    leave: false
`)

	_, _, err := runCLI(t, "run", "login", "hunter2", "--dir", t.TempDir())
	require.NoError(t, err)

	out, _, err := runCLI(t, "history", "--verb", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "password=[REDACTED]")
	assert.NotContains(t, out, "hunter2")
}

func TestHistory_Unique(t *testing.T) {
	writeConfig(t, isolate(t), unixVerbs)

	for _, name := range []string{"a", "b"} {
		_, _, err := runCLI(t, "run", "touch", name, "--dir", t.TempDir())
		require.NoError(t, err)
	}
	_, _, err := runCLI(t, "run", "fail", "--dir", t.TempDir())
	require.Error(t, err)

	out, _, err := runCLI(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 3 execution(s)")

	out, _, err = runCLI(t, "history", "--unique")
	require.NoError(t, err)
	assert.Contains(t, out, "runs")
	assert.Contains(t, out, "Showing 2 execution(s)")
}
