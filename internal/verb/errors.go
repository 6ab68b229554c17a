package verb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInternal is returned when a name isn't in the internal catalog.
	ErrUnknownInternal = errors.New("unknown internal")

	// ErrInvalidInvocation is returned when an invocation pattern can't be compiled.
	ErrInvalidInvocation = errors.New("invalid invocation pattern")

	// ErrMissingExecution is returned for a verb definition without execution.
	ErrMissingExecution = errors.New("missing execution")

	// ErrUnknownVerb is returned when no verb matches a typed name.
	ErrUnknownVerb = errors.New("unknown verb")
)

// ConfError reports a verb configuration problem. It aborts the resolution
// of one verb, never the process.
type ConfError struct {
	// Op is what was being done, e.g. "internal" or "invocation".
	Op string
	// Value is the offending configuration text.
	Value string
	Err   error
}

func (e *ConfError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Value, e.Err)
}

func (e *ConfError) Unwrap() error {
	return e.Err
}
