package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/executor"
	"github.com/runger/vexec/internal/pathutil"
	"github.com/runger/vexec/internal/sanitize"
	"github.com/runger/vexec/internal/selection"
	"github.com/runger/vexec/internal/storage"
	"github.com/runger/vexec/internal/verb"
)

type runOptions struct {
	sel    selectionFlags
	dryRun bool
	outcmd string
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:     "run <invocation>",
		Short:   "Run a verb on a selection",
		GroupID: groupCore,
		Long: `Run a verb, as typed, on the selected file.

Verbs meant to run from the calling shell (like cd) can't change its state
from a child process: with --outcmd their command line is written to a
file for a shell function to source, otherwise it's run in a subshell.

Examples:
  vexec run 'mv ../b.txt' --file a.txt
  vexec run edit --file main.go --line 42
  vexec run cd --file src/main.go --outcmd /tmp/vexec.cmd`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerb(cmd, a, opts, strings.Join(args, " "))
		},
	}
	opts.sel.register(cmd)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the command instead of running it")
	cmd.Flags().StringVar(&opts.outcmd, "outcmd", "", "File receiving the command line of from_shell verbs")
	return cmd
}

func runVerb(cmd *cobra.Command, a *app, opts *runOptions, input string) error {
	inv := verb.ParseInvocation(input)
	if inv.IsEmpty() {
		return errors.New("empty invocation")
	}

	store, _ := verb.NewStoreFromConf(a.cfg.Verbs, a.logger)
	v, err := store.Resolve(inv)
	if err != nil {
		if suggestions := store.Suggest(inv.Name); len(suggestions) > 0 {
			return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
		}
		return err
	}
	if hint, ok := v.CheckArgs(inv); !ok {
		return fmt.Errorf("usage: %s", hint)
	}

	sel, other, err := opts.sel.selection()
	if err != nil {
		return err
	}
	if !v.SelectionCondition.Accepts(sel.Type) {
		return fmt.Errorf("verb %s only applies to a %s", v.Name, v.SelectionCondition)
	}

	out := cmd.OutOrStdout()

	if internal := v.InternalFor(inv); internal != nil {
		return runInternal(cmd, internal, sel)
	}

	launch, err := v.Launch(inv, sel, other, verb.WithFS(a.fs), verb.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug("verb expanded", "verb", v.Name, "mode", launch.Mode.String(), "command", sanitize.Redact(displayLaunch(launch)))

	if ops := sanitize.Destructive(displayLaunch(launch)); len(ops) > 0 {
		st := newStyles(cmd.ErrOrStderr())
		fmt.Fprintln(cmd.ErrOrStderr(), st.warn.Render("warning: destructive command ("+strings.Join(ops, ", ")+")"))
	}

	if opts.dryRun {
		fmt.Fprintln(out, displayLaunch(launch))
		return nil
	}

	if launch.Mode == verb.ModeFromParentShell && opts.outcmd != "" {
		if err := os.WriteFile(opts.outcmd, []byte(launch.ShellLine+"\n"), 0600); err != nil {
			return fmt.Errorf("writing command file: %w", err)
		}
		a.recordExecution(contextOf(cmd), v, inv, launch, sel, false)
		return nil
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()

	rec := a.recordExecution(ctx, v, inv, launch, sel, true)

	ex := executor.New(a.cfg.Shell, executor.WithLogger(a.logger))
	code, err := ex.Run(ctx, launch, executor.RunOptions{
		Dir:        workDir(sel),
		Stdin:      cmd.InOrStdin(),
		Stdout:     out,
		Stderr:     cmd.ErrOrStderr(),
		Foreground: true,
	})
	if err != nil {
		a.abandonExecution(rec)
		return err
	}
	a.finishExecution(rec, code)

	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// runInternal handles the internals that make sense outside of a file
// manager: printing the selection.
func runInternal(cmd *cobra.Command, internal *verb.InternalExecution, sel *selection.Selection) error {
	out := cmd.OutOrStdout()
	switch internal.Internal {
	case verb.InternalPrintPath:
		fmt.Fprintln(out, sel.Path)
		return nil
	case verb.InternalPrintRelativePath:
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(cwd, sel.Path)
		if err != nil {
			rel = sel.Path
		}
		fmt.Fprintln(out, rel)
		return nil
	default:
		return fmt.Errorf("%s needs an interactive session", internal)
	}
}

// displayLaunch renders a launch so that it can be pasted into a shell.
func displayLaunch(l verb.Launch) string {
	if l.Mode == verb.ModeFromParentShell {
		return l.ShellLine
	}
	quoted := make([]string, len(l.Argv))
	for i, arg := range l.Argv {
		quoted[i] = pathutil.EscapeForShell(arg)
	}
	return strings.Join(quoted, " ")
}

func workDir(sel *selection.Selection) string {
	if sel.Type == selection.Directory {
		return sel.Path
	}
	return filepath.Dir(sel.Path)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// pendingExecution is a history row waiting for its exit code.
type pendingExecution struct {
	store *storage.SQLiteStore
	id    string
}

// recordExecution writes the launch to the history. With awaitExit, the
// returned pending row gets its exit code from finishExecution. Failures
// are logged: the history never prevents a verb from running.
func (a *app) recordExecution(ctx context.Context, v *verb.Verb, inv verb.Invocation, launch verb.Launch, sel *selection.Selection, awaitExit bool) *pendingExecution {
	if !a.cfg.History.Enabled {
		return nil
	}
	store, err := storage.NewSQLiteStore(a.cfg.HistoryDBPath(a.paths), a.logger)
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return nil
	}
	e := &storage.Execution{
		CWD:        workDir(sel),
		Verb:       v.Name,
		Invocation: sanitize.Redact(inv.String()),
		Command:    sanitize.Redact(displayLaunch(launch)),
		Mode:       launch.Mode.String(),
	}
	if err := store.RecordExecution(ctx, e); err != nil {
		a.logger.Warn("failed to record execution", "error", err)
		store.Close()
		return nil
	}
	if !awaitExit {
		// handed to the parent shell: the outcome is never known
		store.Close()
		return nil
	}
	return &pendingExecution{store: store, id: e.ExecID}
}

func (a *app) abandonExecution(p *pendingExecution) {
	if p != nil {
		p.store.Close()
	}
}

func (a *app) finishExecution(p *pendingExecution, code int) {
	if p == nil {
		return
	}
	defer p.store.Close()
	if err := p.store.UpdateExitCode(context.Background(), p.id, code, time.Now().UnixMilli()); err != nil {
		a.logger.Warn("failed to record exit code", "error", err)
	}
}
