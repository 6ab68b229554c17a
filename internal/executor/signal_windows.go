//go:build windows

package executor

import "os/exec"

func signalNumber(_ *exec.ExitError) int {
	return 0
}
