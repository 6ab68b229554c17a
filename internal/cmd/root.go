// Package cmd implements the vexec command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/config"
)

const (
	groupCore  = "core"
	groupSetup = "setup"
)

// ExitError carries the exit code of a child process out of Execute.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// app is the state shared by the subcommands of one run.
type app struct {
	configPath string
	logLevel   string

	paths  *config.Paths
	cfg    *config.Config
	logger *slog.Logger
	fs     afero.Fs
}

// NewRootCmd builds the vexec command tree.
func NewRootCmd() *cobra.Command {
	a := &app{fs: afero.NewOsFs()}

	root := &cobra.Command{
		Use:   "vexec",
		Short: "Expand and run verbs on files",
		Long: `vexec - verb templating and invocation

Verbs are named commands with an execution pattern such as
"mv {file} {newpath:path-from-parent}". vexec parses what you type
("mv ../b.txt"), binds it to the verb's invocation pattern and expands
the execution pattern against a selected file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file (default: XDG config dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Verbs:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	root.AddCommand(
		newExpandCmd(a),
		newParseCmd(a),
		newRunCmd(a),
		newVerbsCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(stderr io.Writer) error {
	a.paths = config.DefaultPaths()

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFromFile(a.configPath)
	} else {
		a.cfg, err = config.LoadFromFile(a.paths.ConfigFile())
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(a.logger)
	return nil
}

// configFile is where `config set` writes.
func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return a.paths.ConfigFile()
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "vexec: %v\n", err)
		return 1
	}
	return 0
}
