package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/verb"
)

type parseResult struct {
	Name     string `json:"name"`
	Bang     bool   `json:"bang"`
	Args     string `json:"args,omitempty"`
	Internal string `json:"internal,omitempty"`
	DescCode string `json:"desc_code,omitempty"`
	Verb     string `json:"verb,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

func newParseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "parse <invocation>",
		Short:   "Decompose a typed invocation",
		GroupID: groupCore,
		Long: `Decompose a typed invocation into its name, bang and arguments.

When the name is an internal, its descriptor code is shown. When it names
a verb, the arguments are checked against the verb's invocation pattern.

Examples:
  vexec parse 'mv ../b.txt'
  vexec parse ':focus! ~'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, strings.Join(args, " "), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, input string, asJSON bool) error {
	inv := verb.ParseInvocation(input)
	if inv.IsEmpty() {
		return fmt.Errorf("empty invocation")
	}

	res := parseResult{Name: inv.Name, Bang: inv.Bang, Args: inv.Args}

	if internal, err := verb.ParseInternalExecution(input); err == nil {
		res.Internal = internal.Internal.Name()
		if code, ok := internal.AsDescCode(); ok {
			res.DescCode = code
		}
	}

	store, _ := verb.NewStoreFromConf(a.cfg.Verbs, a.logger)
	if v, ok := store.Find(inv.Name); ok {
		res.Verb = v.Name
		if hint, ok := v.CheckArgs(inv); !ok {
			res.Hint = hint
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	st := newStyles(out)
	field := func(k, v string) {
		fmt.Fprintf(out, "%s %s\n", st.key.Render(padRight(k+":", 10)), v)
	}
	field("name", res.Name)
	field("bang", fmt.Sprint(res.Bang))
	if inv.HasArgs() {
		field("args", res.Args)
	}
	if res.Internal != "" {
		field("internal", res.Internal)
	}
	if res.DescCode != "" {
		field("desc code", res.DescCode)
	}
	if res.Verb != "" {
		field("verb", res.Verb)
	}
	if res.Hint != "" {
		field("usage", st.warn.Render(res.Hint))
	}
	return nil
}
