package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points every vexec directory to a fresh temporary tree and
// returns the config directory.
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("NO_COLOR", "1")
	t.Setenv("VEXEC_LOG_LEVEL", "")
	t.Setenv("VEXEC_DEBUG", "")
	t.Setenv("VEXEC_SHELL", "")
	t.Setenv("COLUMNS", "200")
	dir := filepath.Join(base, "config", "vexec")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// writeConfig writes config.yaml in the isolated config directory.
func writeConfig(t *testing.T, configDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

// runCLI runs vexec with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(""))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// touchFile creates an empty file under dir.
func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}
