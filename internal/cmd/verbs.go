package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/selection"
	"github.com/runger/vexec/internal/verb"
)

func newVerbsCmd(a *app) *cobra.Command {
	var applyTo string
	cmd := &cobra.Command{
		Use:     "verbs [prefix]",
		Short:   "List the available verbs",
		GroupID: groupCore,
		Long: `List the built-in and configured verbs.

With a prefix, only the verbs whose name or shortcut starts with it are
listed, as when completing a typed verb name.

Examples:
  vexec verbs
  vexec verbs toggle
  vexec verbs --apply-to file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			selType, err := selection.ParseType(applyTo)
			if err != nil {
				return err
			}
			return listVerbs(cmd, a, prefix, selType)
		},
	}
	cmd.Flags().StringVar(&applyTo, "apply-to", "", "Only verbs applying to: file, directory")
	return cmd
}

func listVerbs(cmd *cobra.Command, a *app, prefix string, selType selection.Type) error {
	store, _ := verb.NewStoreFromConf(a.cfg.Verbs, a.logger)
	out := cmd.OutOrStdout()
	st := newStyles(out)

	t := &table{headers: []string{"name", "shortcut", "invocation", "execution"}}
	for _, v := range store.Verbs() {
		if !v.SelectionCondition.Accepts(selType) || !matchesPrefix(v, prefix) {
			continue
		}
		t.add(v.Name, v.Shortcut, v.InvocationPattern(), executionText(v))
	}

	if len(t.rows) == 0 {
		if prefix == "" {
			fmt.Fprintln(out, "No verbs.")
			return nil
		}
		fmt.Fprintf(out, "No verb matching %q", prefix)
		if s := store.Suggest(prefix); len(s) > 0 {
			fmt.Fprintf(out, " (did you mean %s?)", strings.Join(s, ", "))
		}
		fmt.Fprintln(out)
		return nil
	}

	var sb strings.Builder
	t.render(&sb, terminalWidth(), func(s string) string { return st.header.Render(s) })
	fmt.Fprint(out, sb.String())

	if prefix != "" {
		res := store.Search(prefix, selType)
		switch res.Kind {
		case verb.Match:
			fmt.Fprintf(out, "\n%s %s\n", st.ok.Render("match:"), res.Verb.Name)
		case verb.TooManyMatches:
			fmt.Fprintf(out, "\n%s\n", st.dim.Render(fmt.Sprintf("%d possible verbs", len(res.Names))))
		}
	}
	return nil
}

func matchesPrefix(v *verb.Verb, prefix string) bool {
	for _, name := range v.Names() {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// executionText is the execution column: the pattern of externals, the
// description of internals.
func executionText(v *verb.Verb) string {
	switch e := v.Execution.(type) {
	case *verb.ExternalExecution:
		if e.Mode == verb.ModeFromParentShell {
			return e.Pattern + " (from shell)"
		}
		return e.Pattern
	default:
		return v.Description
	}
}
