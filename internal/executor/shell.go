// Package executor runs expanded verb launches as child processes.
package executor

import (
	"errors"
	"os/exec"

	"github.com/runger/vexec/internal/verb"
)

// ErrEmptyLaunch is returned for a launch with neither argv nor shell line.
var ErrEmptyLaunch = errors.New("launch has no command")

// ShellAdapter builds the exec.Cmd of a launch.
type ShellAdapter interface {
	// BuildCommand creates an exec.Cmd for launch, run in workDir (the
	// current directory when empty). Argv launches run without shell,
	// shell-line launches are handed to the configured shell.
	BuildCommand(launch verb.Launch, workDir string) (*exec.Cmd, error)
}

// NewShellAdapter creates a platform-appropriate ShellAdapter. shell is the
// interpreter of shell lines; empty means the platform default.
func NewShellAdapter(shell string) ShellAdapter {
	return newPlatformShellAdapter(shell)
}
