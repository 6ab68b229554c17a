package verb

import (
	"regexp"
)

// groupPattern matches the {name} and {name:format} tokens found in
// invocation and execution patterns. Group 1 is the name, group 2 the
// optional format.
var groupPattern = regexp.MustCompile(`\{([^{}:]+)(?::([^{}:]+))?\}`)

// Placeholder formats.
const (
	FormatPathFromDirectory = "path-from-directory"
	FormatPathFromParent    = "path-from-parent"
)

// StandardPlaceholder identifies the placeholder names resolved from the
// selection context rather than from the invocation arguments.
type StandardPlaceholder int

const (
	// PlaceholderCustom is any name that isn't standard; it's looked up in the
	// invocation values.
	PlaceholderCustom StandardPlaceholder = iota
	PlaceholderLine
	PlaceholderFile
	PlaceholderDirectory
	PlaceholderParent
	PlaceholderOtherPanelFile
	PlaceholderOtherPanelDirectory
	PlaceholderOtherPanelParent
)

var standardPlaceholders = map[string]StandardPlaceholder{
	"line":                  PlaceholderLine,
	"file":                  PlaceholderFile,
	"directory":             PlaceholderDirectory,
	"parent":                PlaceholderParent,
	"other-panel-file":      PlaceholderOtherPanelFile,
	"other-panel-directory": PlaceholderOtherPanelDirectory,
	"other-panel-parent":    PlaceholderOtherPanelParent,
}

// LookupStandard returns the standard placeholder for name, or PlaceholderCustom.
func LookupStandard(name string) StandardPlaceholder {
	return standardPlaceholders[name]
}

// IsOtherPanel reports whether p refers to the other panel's selection.
func (p StandardPlaceholder) IsOtherPanel() bool {
	return p == PlaceholderOtherPanelFile || p == PlaceholderOtherPanelDirectory || p == PlaceholderOtherPanelParent
}

// IsSelection reports whether p refers to the current selection.
func (p StandardPlaceholder) IsSelection() bool {
	return p == PlaceholderLine || p == PlaceholderFile || p == PlaceholderDirectory || p == PlaceholderParent
}

// Placeholder is one {name} or {name:format} token.
type Placeholder struct {
	// Token is the full matched text, braces included.
	Token string
	Name  string
	// Format is empty when the token has no format specifier.
	Format string
	// Offset is the byte offset of the token in the expanded string.
	Offset int
}

// Standard returns the standard placeholder named by p, or PlaceholderCustom.
func (p Placeholder) Standard() StandardPlaceholder {
	return LookupStandard(p.Name)
}

func placeholderFromMatch(s string, m []int) Placeholder {
	p := Placeholder{
		Token:  s[m[0]:m[1]],
		Name:   s[m[2]:m[3]],
		Offset: m[0],
	}
	if m[4] >= 0 {
		p.Format = s[m[4]:m[5]]
	}
	return p
}

// ParsePlaceholders returns the well-formed placeholders of pattern in
// order of appearance.
func ParsePlaceholders(pattern string) []Placeholder {
	matches := groupPattern.FindAllStringSubmatchIndex(pattern, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, placeholderFromMatch(pattern, m))
	}
	return out
}

// replacePlaceholders calls fn for every well-formed placeholder of s and
// substitutes its result.
func replacePlaceholders(s string, fn func(Placeholder) string) string {
	matches := groupPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b []byte
	last := 0
	for _, m := range matches {
		b = append(b, s[last:m[0]]...)
		b = append(b, fn(placeholderFromMatch(s, m))...)
		last = m[1]
	}
	b = append(b, s[last:]...)
	return string(b)
}
