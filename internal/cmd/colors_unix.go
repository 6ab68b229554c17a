//go:build !windows

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

// ttyWidth returns the column count of the terminal f is attached to, or 0
// when f isn't a terminal.
func ttyWidth(f *os.File) int {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0
	}
	return int(ws.Col)
}
