//go:build linux

package executor

import "syscall"

// setPdeathsig kills background children if vexec dies.
func setPdeathsig(attr *syscall.SysProcAttr) {
	attr.Pdeathsig = syscall.SIGKILL
}
