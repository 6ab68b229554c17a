//go:build !linux && !windows

package executor

import "syscall"

// setPdeathsig is a no-op: Pdeathsig only exists on Linux.
func setPdeathsig(_ *syscall.SysProcAttr) {}
