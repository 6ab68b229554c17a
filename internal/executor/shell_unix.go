//go:build !windows

package executor

import (
	"os/exec"

	"github.com/runger/vexec/internal/verb"
)

const defaultShell = "/bin/sh"

type unixShellAdapter struct {
	shell string
}

func newPlatformShellAdapter(shell string) ShellAdapter {
	if shell == "" {
		shell = defaultShell
	}
	return &unixShellAdapter{shell: shell}
}

func (a *unixShellAdapter) BuildCommand(launch verb.Launch, workDir string) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch {
	case launch.Mode == verb.ModeFromParentShell:
		if launch.ShellLine == "" {
			return nil, ErrEmptyLaunch
		}
		cmd = exec.Command(a.shell, "-c", launch.ShellLine)
	case len(launch.Argv) > 0 && launch.Argv[0] != "":
		// Argv mode: no shell involved, every element is one argument.
		cmd = exec.Command(launch.Argv[0], launch.Argv[1:]...)
	default:
		return nil, ErrEmptyLaunch
	}
	cmd.Dir = workDir
	return cmd, nil
}
