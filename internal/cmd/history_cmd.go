package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/storage"
)

type historyOptions struct {
	limit  int
	verb   string
	cwd    string
	failed bool
	unique bool
}

func newHistoryCmd(a *app) *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show executed verbs",
		GroupID: groupCore,
		Long: `Show the verbs run with vexec, oldest first.

The history is stored in a local SQLite database, see history.db_path.

Examples:
  vexec history                 # Show the last executions
  vexec history --limit=50      # Show the last 50 executions
  vexec history --verb=move     # Show moves only
  vexec history --failed        # Show executions with a non-zero exit code
  vexec history --unique        # Show each distinct command once, with its run count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, a, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of executions to show (default: history.limit)")
	cmd.Flags().StringVar(&opts.verb, "verb", "", "Filter by verb name")
	cmd.Flags().StringVar(&opts.cwd, "cwd", "", "Filter by working directory")
	cmd.Flags().BoolVar(&opts.failed, "failed", false, "Only show failed executions")
	cmd.Flags().BoolVarP(&opts.unique, "unique", "u", false, "Show the latest run of each command, ignoring the files it ran on")
	return cmd
}

func runHistory(cmd *cobra.Command, a *app, opts *historyOptions) error {
	out := cmd.OutOrStdout()
	dbPath := a.cfg.HistoryDBPath(a.paths)

	store, err := storage.NewSQLiteStore(dbPath, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	limit := opts.limit
	if limit <= 0 {
		limit = a.cfg.History.Limit
	}

	ctx, cancel := context.WithTimeout(contextOf(cmd), 5*time.Second)
	defer cancel()

	execs, err := store.QueryExecutions(ctx, storage.ExecutionQuery{
		Verb:        opts.verb,
		CWD:         opts.cwd,
		FailureOnly: opts.failed,
		Unique:      opts.unique,
		Limit:       limit,
	})
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	if len(execs) == 0 {
		fmt.Fprintln(out, "No execution history available.")
		return nil
	}

	st := newStyles(out)
	headers := []string{"time", "exit", "verb", "command"}
	if opts.unique {
		headers = []string{"time", "exit", "runs", "verb", "command"}
	}
	t := &table{headers: headers}
	// Reverse the order since we want oldest at top
	for i := len(execs) - 1; i >= 0; i-- {
		e := execs[i]
		when := time.UnixMilli(e.TsStartUnixMs).Format("2006-01-02 15:04:05")
		if opts.unique {
			t.add(when, exitText(e.ExitCode), strconv.Itoa(e.Runs), e.Verb, e.Command)
		} else {
			t.add(when, exitText(e.ExitCode), e.Verb, e.Command)
		}
	}

	var sb strings.Builder
	t.render(&sb, terminalWidth(), func(s string) string { return st.header.Render(s) })
	fmt.Fprint(out, sb.String())
	fmt.Fprintf(out, "\n%s\n", st.dim.Render(fmt.Sprintf("Showing %d execution(s)", len(execs))))
	return nil
}

func exitText(code *int) string {
	if code == nil {
		return "-"
	}
	return strconv.Itoa(*code)
}
