package verb

import (
	"errors"
	"strings"
)

// ExternalMode tells how an external execution is launched.
type ExternalMode int

const (
	// ModeStayInApp runs the program and comes back to the application.
	ModeStayInApp ExternalMode = iota
	// ModeLeaveApp runs the program as the last thing the application does.
	ModeLeaveApp
	// ModeFromParentShell hands a command line to the calling shell, which
	// is the only way for commands like cd to have an effect.
	ModeFromParentShell
)

func (m ExternalMode) String() string {
	switch m {
	case ModeLeaveApp:
		return "leave"
	case ModeFromParentShell:
		return "from_shell"
	default:
		return "stay"
	}
}

// ModeFromConf maps the from_shell and leave flags of a verb definition.
// An unset leave flag means leaving.
func ModeFromConf(fromShell, leaveApp *bool) ExternalMode {
	if fromShell != nil && *fromShell {
		return ModeFromParentShell
	}
	if leaveApp == nil || *leaveApp {
		return ModeLeaveApp
	}
	return ModeStayInApp
}

// ErrEmptyCommand is returned when an execution pattern expands to no
// program at all.
var ErrEmptyCommand = errors.New("execution produced an empty command")

// ExternalExecution is a verb execution running an external program.
type ExternalExecution struct {
	// Pattern is the execution pattern, e.g. "vi +{line} {file}".
	Pattern string
	Mode    ExternalMode
}

func (e *ExternalExecution) String() string {
	return e.Pattern
}

// Launch is a fully expanded external execution.
type Launch struct {
	Mode ExternalMode

	// ShellLine is set for ModeFromParentShell.
	ShellLine string

	// Argv is set for the other modes.
	Argv []string
}

// String renders the launch for display.
func (l Launch) String() string {
	if l.Mode == ModeFromParentShell {
		return l.ShellLine
	}
	return strings.Join(l.Argv, " ")
}

// Build expands the execution pattern with b. Commands run from the parent
// shell get a shell line, the others an argv.
func (e *ExternalExecution) Build(b *ExecutionStringBuilder) (Launch, error) {
	l := Launch{Mode: e.Mode}
	if e.Mode == ModeFromParentShell {
		l.ShellLine = b.ShellExecString(e.Pattern)
		if strings.TrimSpace(l.ShellLine) == "" {
			return l, ErrEmptyCommand
		}
		return l, nil
	}
	l.Argv = b.ExecTokens(e.Pattern)
	if len(l.Argv) == 0 || l.Argv[0] == "" {
		return l, ErrEmptyCommand
	}
	return l, nil
}
