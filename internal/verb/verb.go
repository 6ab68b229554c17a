// Package verb resolves typed verb invocations and expands verb execution
// patterns into shell command lines or argv vectors.
package verb

import (
	"fmt"
	"strings"

	"github.com/runger/vexec/internal/config"
	"github.com/runger/vexec/internal/selection"
)

// Execution is what a verb does: an *InternalExecution or an
// *ExternalExecution.
type Execution interface {
	String() string
}

// Verb is a command a user can invoke by name.
type Verb struct {
	// Name is the invocation name, Shortcut an optional alias.
	Name     string
	Shortcut string

	// Invocation parses the typed arguments. It's nil for verbs reached
	// only through their name.
	Invocation *InvocationParser

	Execution   Execution
	Description string

	// SelectionCondition restricts the kind of entry the verb applies to.
	SelectionCondition selection.Type

	// NeedsSelection is set when the execution refers to the selection.
	NeedsSelection bool

	// NeedsAnotherPanel is set when the execution refers to the other panel.
	NeedsAnotherPanel bool
}

// NewInternalVerb wraps an internal. The verb accepts free arguments which
// are handed over to the internal.
func NewInternalVerb(internal Internal, bang bool) *Verb {
	return &Verb{
		Name:        internal.Name(),
		Execution:   NewInternalExecution(internal, bang),
		Description: internal.Description(),
	}
}

// NewExternalVerb builds a verb running pattern, invoked as invocation
// (e.g. "mv {newpath}").
func NewExternalVerb(invocation, pattern string, mode ExternalMode) (*Verb, error) {
	parser, err := NewInvocationParser(invocation)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, &ConfError{Op: "execution", Value: invocation, Err: ErrMissingExecution}
	}
	v := &Verb{
		Name:       parser.Name(),
		Invocation: parser,
		Execution:  &ExternalExecution{Pattern: pattern, Mode: mode},
	}
	for _, ph := range ParsePlaceholders(pattern) {
		std := ph.Standard()
		v.NeedsSelection = v.NeedsSelection || std.IsSelection()
		v.NeedsAnotherPanel = v.NeedsAnotherPanel || std.IsOtherPanel()
	}
	return v, nil
}

// FromConf builds a verb from its configuration. An execution starting
// with ':' targets an internal, anything else is an external pattern.
func FromConf(c config.VerbConf) (*Verb, error) {
	execution := strings.TrimSpace(c.Execution)
	if execution == "" {
		return nil, &ConfError{Op: "execution", Value: c.Invocation, Err: ErrMissingExecution}
	}
	cond, err := selection.ParseType(c.ApplyTo)
	if err != nil {
		return nil, &ConfError{Op: "apply_to", Value: c.ApplyTo, Err: err}
	}

	var v *Verb
	if strings.HasPrefix(execution, ":") {
		internal, err := ParseInternalExecution(execution)
		if err != nil {
			return nil, err
		}
		v = &Verb{Name: internal.Internal.Name(), Execution: internal}
		if c.Invocation != "" {
			parser, err := NewInvocationParser(c.Invocation)
			if err != nil {
				return nil, err
			}
			v.Name = parser.Name()
			v.Invocation = parser
		}
		v.Description = internal.Internal.Description()
	} else {
		if c.Invocation == "" {
			return nil, &ConfError{Op: "invocation", Value: execution, Err: ErrInvalidInvocation}
		}
		v, err = NewExternalVerb(c.Invocation, execution, ModeFromConf(c.FromShell, c.LeaveApp))
		if err != nil {
			return nil, err
		}
		v.Description = execution
	}

	v.Shortcut = c.Shortcut
	v.SelectionCondition = cond
	if c.Description != "" {
		v.Description = c.Description
	}
	return v, nil
}

// Names returns the name and, when set, the shortcut.
func (v *Verb) Names() []string {
	if v.Shortcut == "" {
		return []string{v.Name}
	}
	return []string{v.Name, v.Shortcut}
}

// HasName reports whether name is the verb's name or shortcut.
func (v *Verb) HasName(name string) bool {
	return name != "" && (name == v.Name || name == v.Shortcut)
}

// InvocationPattern renders how the verb is invoked, for help listings.
func (v *Verb) InvocationPattern() string {
	if v.Invocation != nil {
		return v.Invocation.Pattern.String()
	}
	return v.Name
}

// CheckArgs checks the arguments of inv against the verb. It returns a
// usage hint and false when they don't fit.
func (v *Verb) CheckArgs(inv Invocation) (string, bool) {
	if v.Invocation != nil {
		return v.Invocation.CheckArgs(inv)
	}
	if _, ok := v.Execution.(*InternalExecution); ok {
		return "", true
	}
	if inv.HasArgs() {
		return fmt.Sprintf("%s doesn't take arguments", inv.Name), false
	}
	return "", true
}

// InternalFor binds the bang and argument of inv to the verb's internal.
// It returns nil for external verbs.
func (v *Verb) InternalFor(inv Invocation) *InternalExecution {
	internal, ok := v.Execution.(*InternalExecution)
	if !ok {
		return nil
	}
	bound := *internal
	bound.Bang = bound.Bang || inv.Bang
	if inv.HasArgs() {
		bound.Arg = inv.Args
	}
	return &bound
}

// Builder returns the execution string builder for one invocation of the
// verb.
func (v *Verb) Builder(inv Invocation, sel *selection.Selection, otherFile string, opts ...BuilderOption) *ExecutionStringBuilder {
	return BuilderFromInvocation(v.Invocation, sel, otherFile, inv.Args, opts...)
}

// Launch expands an external verb for one invocation.
func (v *Verb) Launch(inv Invocation, sel *selection.Selection, otherFile string, opts ...BuilderOption) (Launch, error) {
	external, ok := v.Execution.(*ExternalExecution)
	if !ok {
		return Launch{}, fmt.Errorf("verb %s is not external", v.Name)
	}
	if v.NeedsAnotherPanel && otherFile == "" {
		return Launch{}, fmt.Errorf("verb %s needs another panel", v.Name)
	}
	return external.Build(v.Builder(inv, sel, otherFile, opts...))
}
