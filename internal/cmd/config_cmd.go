package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Get or set configuration values",
		GroupID: groupSetup,
		Long: `Get or set vexec configuration values.

Without a subcommand, lists all configuration keys.

Configuration is stored in ~/.config/vexec/config.yaml (XDG compliant),
or conf.toml when only that one exists. Verbs are defined in the same
file, under "verbs".

Examples:
  vexec config                       # List all keys
  vexec config get log_level         # Get a value
  vexec config set history.limit 50  # Set a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listConfig(cmd, a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getConfig(cmd, a.cfg, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set and save a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, a, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configFile())
		},
	})
	return cmd
}

func listConfig(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	st := newStyles(out)

	fmt.Fprintln(out, st.bold.Render("Configuration Keys"))
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := a.cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		displayValue := value
		if displayValue == "" {
			displayValue = st.dim.Render("(not set)")
		}
		fmt.Fprintf(out, "  %s = %s\n", st.key.Render(key), displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Fprintf(out, "\n%s Failed to retrieve keys: %s\n", st.warn.Render("Warning:"), strings.Join(failedKeys, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Verbs defined: %d\n", len(a.cfg.Verbs))
	fmt.Fprintf(out, "Config file: %s\n", a.configFile())
	return nil
}

func getConfig(cmd *cobra.Command, cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func setConfig(cmd *cobra.Command, a *app, key, value string) error {
	if err := a.cfg.Set(key, value); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := a.configFile()
	if err := a.cfg.SaveToFile(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	fmt.Fprintf(out, "%s = %s\n", st.key.Render(key), value)
	fmt.Fprintf(out, "Saved to: %s\n", path)
	return nil
}
