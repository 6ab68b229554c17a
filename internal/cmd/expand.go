package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/verb"
)

type expandOptions struct {
	sel        selectionFlags
	invocation string
	args       string
	argv       bool
	json       bool
	words      bool
}

type expandResult struct {
	Pattern string            `json:"pattern"`
	File    string            `json:"file"`
	Values  map[string]string `json:"values,omitempty"`
	Shell   string            `json:"shell"`
	Argv    []string          `json:"argv"`
}

func newExpandCmd(a *app) *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:     "expand <pattern>",
		Short:   "Expand an execution pattern against a selection",
		GroupID: groupCore,
		Long: `Expand an execution pattern such as "mv {file} {newpath:path-from-parent}".

By default the pattern is expanded as a shell command line, with paths
escaped for a POSIX shell. With --argv, it's expanded as the arguments of a
process launched without shell, one per line.

Custom placeholders get their values from --args, parsed with the
--invocation pattern.

Examples:
  vexec expand 'vi +{line} {file}' --file main.go --line 12
  vexec expand 'mv {file} {newpath:path-from-parent}' --file a.txt \
      --invocation 'mv {newpath}' --args ../b.txt
  vexec expand --argv 'xterm -e "kak {file}"' --file 'my notes.md'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, a, opts, args[0])
		},
	}
	opts.sel.register(cmd)
	cmd.Flags().StringVar(&opts.invocation, "invocation", "", "Invocation pattern binding --args, e.g. 'mv {newpath}'")
	cmd.Flags().StringVar(&opts.args, "args", "", "Typed arguments of the invocation")
	cmd.Flags().BoolVar(&opts.argv, "argv", false, "Expand as argv, one argument per line")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print both expansions as JSON")
	cmd.Flags().BoolVar(&opts.words, "words", false, "Show how a POSIX shell splits the command line")
	cmd.MarkFlagsMutuallyExclusive("argv", "json", "words")
	return cmd
}

func runExpand(cmd *cobra.Command, a *app, opts *expandOptions, pattern string) error {
	sel, other, err := opts.sel.selection()
	if err != nil {
		return err
	}

	var parser *verb.InvocationParser
	if opts.invocation != "" {
		if parser, err = verb.NewInvocationParser(opts.invocation); err != nil {
			return err
		}
		if opts.args != "" {
			if _, ok := parser.Parse(opts.args); !ok {
				a.logger.Warn("arguments don't match the invocation", "invocation", opts.invocation, "args", opts.args)
			}
		}
	} else if opts.args != "" {
		return errors.New("--args needs --invocation")
	}

	b := verb.BuilderFromInvocation(parser, sel, other, opts.args, verb.WithFS(a.fs), verb.WithLogger(a.logger))
	out := cmd.OutOrStdout()

	switch {
	case opts.json:
		res := expandResult{
			Pattern: pattern,
			File:    sel.Path,
			Values:  verb.InvocationValues(parser, opts.args),
			Shell:   b.ShellExecString(pattern),
			Argv:    b.ExecTokens(pattern),
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case opts.argv:
		for _, token := range b.ExecTokens(pattern) {
			fmt.Fprintln(out, token)
		}
	case opts.words:
		words, err := shlex.Split(b.ShellExecString(pattern))
		if err != nil {
			return fmt.Errorf("splitting command line: %w", err)
		}
		for i, w := range words {
			fmt.Fprintf(out, "%d\t%s\n", i, w)
		}
	default:
		fmt.Fprintln(out, b.ShellExecString(pattern))
	}
	return nil
}
