package cmd

import (
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are the text styles of one output stream.
type styles struct {
	bold   lipgloss.Style
	dim    lipgloss.Style
	key    lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	failed lipgloss.Style
	header lipgloss.Style
}

// newStyles builds styles rendering for out. The color profile is detected
// from out itself, so a pipe gets plain text.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	if shouldDisableColors() {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.NewOutput(out).ColorProfile())
	}
	return styles{
		bold:   r.NewStyle().Bold(true),
		dim:    r.NewStyle().Faint(true),
		key:    r.NewStyle().Foreground(lipgloss.Color("6")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		failed: r.NewStyle().Foreground(lipgloss.Color("1")),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

func shouldDisableColors() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	// Check TERM=dumb
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	// On Windows, check if ANSI is supported
	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" {
			return false // Windows Terminal supports ANSI
		}
		if os.Getenv("TERM_PROGRAM") != "" {
			return false // Modern terminal emulator
		}
		// Disable by default on older Windows consoles
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}

const defaultTermWidth = 80

// terminalWidth returns the width of the terminal on stdout, then $COLUMNS,
// then 80.
func terminalWidth() int {
	if w := ttyWidth(os.Stdout); w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}
