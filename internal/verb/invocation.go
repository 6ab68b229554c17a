package verb

import (
	"strings"
	"unicode"
)

// Invocation is a typed verb call decomposed into its parts, e.g.
// ":focus! ~" is {Name: "focus", Bang: true, Args: "~"}.
type Invocation struct {
	Name string

	// Bang is set when a "!" is glued to the name, asking for the alternate
	// execution mode (typically: open in a new panel).
	Bang bool

	// Args is the raw argument text, empty when absent.
	Args string
}

// ParseInvocation decomposes s. It never fails: an empty name means there
// is no command.
//
// Surrounding whitespace and one leading ':' are dropped. The bang may come
// before the name ("!focus") or right after it ("focus!"). The name runs up
// to the first '!' or whitespace and the arguments are the trimmed rest.
func ParseInvocation(s string) Invocation {
	var inv Invocation
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")

	if strings.HasPrefix(s, "!") {
		inv.Bang = true
		s = s[1:]
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return r == '!' || unicode.IsSpace(r)
	})
	if end < 0 {
		inv.Name = s
		return inv
	}
	inv.Name = s[:end]
	rest := s[end:]
	if strings.HasPrefix(rest, "!") {
		inv.Bang = true
		rest = rest[1:]
	}
	inv.Args = strings.TrimSpace(rest)
	return inv
}

// HasArgs reports whether argument text is present.
func (inv Invocation) HasArgs() bool {
	return inv.Args != ""
}

// IsEmpty is true when there's no command name.
func (inv Invocation) IsEmpty() bool {
	return inv.Name == ""
}

// String renders the invocation as "name[!][ args]".
func (inv Invocation) String() string {
	return inv.StringForName(inv.Name)
}

// StringForName renders the invocation with another name, which is how
// usage hints are shown for shortcuts.
func (inv Invocation) StringForName(name string) string {
	var b strings.Builder
	b.WriteString(name)
	if inv.Bang {
		b.WriteByte('!')
	}
	if inv.HasArgs() {
		b.WriteByte(' ')
		b.WriteString(inv.Args)
	}
	return b.String()
}
