//go:build !windows

package executor

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

type unixProcessController struct{}

func newPlatformProcessController() ProcessController {
	return &unixProcessController{}
}

// Start starts cmd. Background commands get a new process group so that
// signals reach their children too.
func (u *unixProcessController) Start(cmd *exec.Cmd, foreground bool) error {
	if !foreground {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Setpgid: true,
		}
		setPdeathsig(cmd.SysProcAttr)
	}
	return cmd.Start()
}

func ownGroup(cmd *exec.Cmd) bool {
	return cmd.SysProcAttr != nil && cmd.SysProcAttr.Setpgid
}

// Interrupt sends SIGINT to the process group, or to the process alone when
// it shares ours.
func (u *unixProcessController) Interrupt(cmd *exec.Cmd) error {
	return u.signal(cmd, syscall.SIGINT)
}

// Kill sends SIGKILL the same way.
func (u *unixProcessController) Kill(cmd *exec.Cmd) error {
	return u.signal(cmd, syscall.SIGKILL)
}

func (u *unixProcessController) signal(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd.Process == nil {
		return errors.New(errProcessNotStarted)
	}
	if ownGroup(cmd) {
		// negative PID targets the group
		return syscall.Kill(-cmd.Process.Pid, sig)
	}
	return cmd.Process.Signal(sig)
}

func (u *unixProcessController) Wait(ctx context.Context, cmd *exec.Cmd, gracePeriod time.Duration) error {
	if cmd.Process == nil {
		return errors.New(errProcessNotStarted)
	}
	return waitWithGrace(ctx, u, cmd, gracePeriod)
}
