//go:build windows

package executor

import (
	"os/exec"

	"github.com/runger/vexec/internal/verb"
)

type windowsShellAdapter struct {
	shell string
}

func newPlatformShellAdapter(shell string) ShellAdapter {
	return &windowsShellAdapter{shell: shell}
}

func (a *windowsShellAdapter) BuildCommand(launch verb.Launch, workDir string) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch {
	case launch.Mode == verb.ModeFromParentShell:
		if launch.ShellLine == "" {
			return nil, ErrEmptyLaunch
		}
		switch a.shell {
		case "", "cmd", "cmd.exe":
			cmd = exec.Command("cmd.exe", "/C", launch.ShellLine)
		default:
			// Explicit shell (e.g. "pwsh", "bash")
			cmd = exec.Command(a.shell, "-c", launch.ShellLine)
		}
	case len(launch.Argv) > 0 && launch.Argv[0] != "":
		cmd = exec.Command(launch.Argv[0], launch.Argv[1:]...)
	default:
		return nil, ErrEmptyLaunch
	}
	cmd.Dir = workDir
	return cmd, nil
}
