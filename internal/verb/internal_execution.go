package verb

import (
	"fmt"
	"strings"
)

// InternalExecution is a verb execution targeting an internal, e.g. the
// ":focus! ~" of a verb definition.
type InternalExecution struct {
	Internal Internal

	// Bang asks to open the resulting state in a new panel instead of the
	// current one.
	Bang bool

	// Arg is the argument ("~" for ":focus ~"), empty when absent. It has
	// no surrounding whitespace, as typed arguments never have: build
	// values with NewInternalExecutionWithArg or ParseInternalExecution.
	Arg string
}

// NewInternalExecution builds an execution without argument.
func NewInternalExecution(internal Internal, bang bool) *InternalExecution {
	return &InternalExecution{Internal: internal, Bang: bang}
}

// NewInternalExecutionWithArg builds an execution with an argument. The
// argument is trimmed, so a blank one means no argument.
func NewInternalExecutionWithArg(internal Internal, bang bool, arg string) *InternalExecution {
	return &InternalExecution{Internal: internal, Bang: bang, Arg: strings.TrimSpace(arg)}
}

// ParseInternalExecution parses invocation text such as ":focus! ~". It
// fails with a *ConfError when the name isn't a known internal.
func ParseInternalExecution(s string) (*InternalExecution, error) {
	inv := ParseInvocation(s)
	internal, err := InternalFromName(inv.Name)
	if err != nil {
		return nil, err
	}
	return NewInternalExecutionWithArg(internal, inv.Bang, inv.Args), nil
}

// AsDescCode renders the execution back to ":name[!] arg". It is only
// defined when there's an argument.
func (e *InternalExecution) AsDescCode() (string, bool) {
	arg := strings.TrimSpace(e.Arg)
	if arg == "" {
		return "", false
	}
	return fmt.Sprintf(":%s%s %s", e.Internal.Name(), e.bangMark(), arg), true
}

func (e *InternalExecution) bangMark() string {
	if e.Bang {
		return "!"
	}
	return ""
}

// String renders the execution for display, with or without argument.
func (e *InternalExecution) String() string {
	if code, ok := e.AsDescCode(); ok {
		return code
	}
	return ":" + e.Internal.Name() + e.bangMark()
}
