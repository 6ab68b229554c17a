package executor

import (
	"context"
	"os/exec"
	"time"
)

// DefaultGracePeriod is the time to wait between interrupt and kill signals.
const DefaultGracePeriod = 5 * time.Second

const errProcessNotStarted = "process not started"

// ProcessController manages subprocess lifecycle with platform-appropriate signals.
type ProcessController interface {
	// Start starts the command. A background command gets its own process
	// group, a foreground one stays in ours so it can use the terminal.
	Start(cmd *exec.Cmd, foreground bool) error

	// Interrupt sends a graceful interrupt signal to the process (group).
	Interrupt(cmd *exec.Cmd) error

	// Kill forcefully terminates the process (group).
	Kill(cmd *exec.Cmd) error

	// Wait waits for the process to complete with cancellation support.
	// If ctx is cancelled, sends Interrupt, waits gracePeriod, then Kill.
	Wait(ctx context.Context, cmd *exec.Cmd, gracePeriod time.Duration) error
}

// NewProcessController creates a platform-appropriate ProcessController.
func NewProcessController() ProcessController {
	return newPlatformProcessController()
}

// waitWithGrace is the cancellation dance shared by the platforms.
func waitWithGrace(ctx context.Context, pc ProcessController, cmd *exec.Cmd, gracePeriod time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = pc.Interrupt(cmd)

		select {
		case err := <-done:
			return err
		case <-time.After(gracePeriod):
			// Grace period expired, force kill.
			_ = pc.Kill(cmd)
			return <-done
		}
	}
}
