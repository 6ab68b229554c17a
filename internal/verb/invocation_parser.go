package verb

import (
	"fmt"
	"regexp"
	"strings"
)

// InvocationParser matches the arguments a user types against a verb's
// invocation pattern, e.g. "mv {newpath}", and extracts the named values.
type InvocationParser struct {
	// Pattern is the parsed invocation pattern.
	Pattern Invocation

	// args matches the whole argument text, nil when the verb takes none.
	args *regexp.Regexp

	// names[i] is the placeholder captured by group i+1.
	names []string

	lastArgIsPath bool
}

// NewInvocationParser compiles an invocation pattern.
func NewInvocationParser(pattern string) (*InvocationParser, error) {
	inv := ParseInvocation(pattern)
	if inv.IsEmpty() {
		return nil, &ConfError{Op: "invocation", Value: pattern, Err: ErrInvalidInvocation}
	}
	p := &InvocationParser{Pattern: inv}
	if !inv.HasArgs() {
		return p, nil
	}

	var expr strings.Builder
	expr.WriteString("^")
	last := 0
	matches := groupPattern.FindAllStringSubmatchIndex(inv.Args, -1)
	for _, m := range matches {
		ph := placeholderFromMatch(inv.Args, m)
		expr.WriteString(regexp.QuoteMeta(inv.Args[last:m[0]]))
		expr.WriteString("(.+)")
		p.names = append(p.names, ph.Name)
		last = m[1]
	}
	expr.WriteString(regexp.QuoteMeta(inv.Args[last:]))
	expr.WriteString("$")

	re, err := regexp.Compile("(?s)" + expr.String())
	if err != nil {
		return nil, &ConfError{Op: "invocation", Value: pattern, Err: fmt.Errorf("%w: %v", ErrInvalidInvocation, err)}
	}
	p.args = re

	// A pattern ending with a placeholder takes a path as its last argument.
	if len(matches) > 0 && matches[len(matches)-1][1] == len(inv.Args) {
		p.lastArgIsPath = true
	}
	return p, nil
}

// Name is the verb name declared by the pattern.
func (p *InvocationParser) Name() string {
	return p.Pattern.Name
}

// TakesArgs reports whether the pattern declares arguments.
func (p *InvocationParser) TakesArgs() bool {
	return p.args != nil
}

// Names returns the placeholder names declared by the pattern, in order.
func (p *InvocationParser) Names() []string {
	return append([]string(nil), p.names...)
}

// LastArgIsPath reports whether the pattern ends with a placeholder, which
// is then completed as a path.
func (p *InvocationParser) LastArgIsPath() bool {
	return p.lastArgIsPath
}

// Parse extracts the placeholder values from args. It returns false when
// the pattern takes no arguments or args doesn't match its literal parts.
func (p *InvocationParser) Parse(args string) (map[string]string, bool) {
	if p.args == nil {
		return nil, false
	}
	m := p.args.FindStringSubmatch(args)
	if m == nil {
		return nil, false
	}
	values := make(map[string]string, len(p.names))
	for i, name := range p.names {
		values[name] = m[i+1]
	}
	return values, true
}

// CheckArgs checks the arguments of a typed invocation. It returns a usage
// hint and false when they don't fit the pattern.
func (p *InvocationParser) CheckArgs(inv Invocation) (string, bool) {
	switch {
	case !inv.HasArgs() && p.args == nil:
		return "", true
	case !inv.HasArgs():
		if p.args.MatchString("") {
			return "", true
		}
		return p.Pattern.StringForName(inv.Name), false
	case p.args == nil:
		return fmt.Sprintf("%s doesn't take arguments", inv.Name), false
	case p.args.MatchString(inv.Args):
		return "", true
	default:
		return p.Pattern.StringForName(inv.Name), false
	}
}

// InvocationValues runs parser over args. The mapping is absent (nil) when
// either is absent or when args doesn't match.
func InvocationValues(parser *InvocationParser, args string) map[string]string {
	if parser == nil || args == "" {
		return nil
	}
	values, ok := parser.Parse(args)
	if !ok {
		return nil
	}
	return values
}
