package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/runger/vexec/internal/verb"
)

// RunOptions are the per-run settings of a launch.
type RunOptions struct {
	// Dir is the working directory, the current one when empty.
	Dir string

	// Stdin, Stdout and Stderr default to the process' own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Foreground keeps the child in our process group so interactive
	// programs (editors, pagers) can read the terminal.
	Foreground bool
}

// Executor runs launches.
type Executor struct {
	adapter     ShellAdapter
	proc        ProcessController
	gracePeriod time.Duration
	logger      *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithGracePeriod sets the delay between interrupt and kill on cancellation.
func WithGracePeriod(d time.Duration) Option {
	return func(e *Executor) {
		e.gracePeriod = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithShellAdapter replaces the platform shell adapter.
func WithShellAdapter(a ShellAdapter) Option {
	return func(e *Executor) {
		e.adapter = a
	}
}

// New returns an executor handing shell lines to shell (empty for the
// platform default).
func New(shell string, opts ...Option) *Executor {
	e := &Executor{
		adapter:     NewShellAdapter(shell),
		proc:        NewProcessController(),
		gracePeriod: DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Run runs launch to completion and returns the child's exit code. A
// non-zero exit is not an error; err is set only when the child couldn't
// be started or waited for. Cancelling ctx interrupts the child.
func (e *Executor) Run(ctx context.Context, launch verb.Launch, opts RunOptions) (int, error) {
	cmd, err := e.adapter.BuildCommand(launch, opts.Dir)
	if err != nil {
		return -1, err
	}
	cmd.Stdin = orReader(opts.Stdin, os.Stdin)
	cmd.Stdout = orWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orWriter(opts.Stderr, os.Stderr)

	e.logger.Debug("starting command", "mode", launch.Mode.String(), "args", cmd.Args, "dir", cmd.Dir)

	if err := e.proc.Start(cmd, opts.Foreground); err != nil {
		return -1, fmt.Errorf("starting %s: %w", cmd.Args[0], err)
	}

	err = e.proc.Wait(ctx, cmd, e.gracePeriod)
	code, err := ExitCode(err)
	e.logger.Debug("command finished", "exit_code", code, "error", err)
	return code, err
}

// ExitCode extracts the exit code carried by a Wait error. An exit error
// yields its code and no error; any other error is returned as is.
func ExitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 128 + signalNumber(exitErr)
		}
		return code, nil
	}
	return -1, err
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
