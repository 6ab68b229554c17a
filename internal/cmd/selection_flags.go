package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runger/vexec/internal/selection"
)

// selectionFlags describe the selected entry and the other panel.
type selectionFlags struct {
	file  string
	dir   string
	line  int
	other string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Selected file (default: current directory)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Selected directory")
	cmd.Flags().IntVar(&f.line, "line", 0, "Line number in the selected file")
	cmd.Flags().StringVar(&f.other, "other", "", "Selection of the other panel")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
}

// selection resolves the flags to an absolute selection, and the absolute
// other-panel path (empty when unset).
func (f *selectionFlags) selection() (*selection.Selection, string, error) {
	path := f.file
	if path == "" {
		path = f.dir
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		path = cwd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	if f.line < 0 {
		return nil, "", errors.New("--line must be >= 0")
	}

	sel := selection.FromPath(abs, f.line)
	if f.dir != "" {
		sel.Type = selection.Directory
	}

	other := ""
	if f.other != "" {
		if other, err = filepath.Abs(f.other); err != nil {
			return nil, "", err
		}
	}
	return sel, other, nil
}
