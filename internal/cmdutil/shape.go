// Package cmdutil splits command lines and reduces them to comparable
// shapes.
package cmdutil

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Markers replacing the variable words of a command shape.
const (
	PathMarker = "<path>"
	URLMarker  = "<url>"
	NumMarker  = "<num>"
)

// CommandShape reduces the expanded command of a verb to what stays the
// same when the verb is run on other files: the verb name, the program and
// its flags. Paths, URLs and numbers become markers. Case is kept.
//
// command is a shell line or an argv joined with escaped spaces; it's read
// with shell quoting so that a quoted path is one word.
func CommandShape(verbName, command string) string {
	words := SplitUnquoted(command, SplitOptions{UnwrapDouble: true, UnwrapSingle: true, Backslash: true})
	if len(words) == 0 {
		return verbName
	}

	shape := make([]string, 0, len(words)+1)
	shape = append(shape, verbName+":", words[0])
	for _, w := range words[1:] {
		shape = append(shape, wordShape(w))
	}
	return strings.Join(shape, " ")
}

func wordShape(w string) string {
	switch {
	case strings.Contains(w, "://"):
		return URLMarker
	case isPath(w):
		return PathMarker
	case isNumeric(w):
		return NumMarker
	case strings.HasPrefix(w, "+") && isNumeric(w[1:]):
		// line argument of editors: vi +12
		return "+" + NumMarker
	case strings.HasPrefix(w, "-"):
		if flag, value, ok := strings.Cut(w, "="); ok && isPath(value) {
			return flag + "=" + PathMarker
		}
		return w
	default:
		return w
	}
}

func isPath(w string) bool {
	switch {
	case strings.HasPrefix(w, "/"), strings.HasPrefix(w, "~"),
		strings.HasPrefix(w, "./"), strings.HasPrefix(w, "../"):
		return true
	case len(w) >= 3 && w[1] == ':' && (w[2] == '\\' || w[2] == '/'):
		// drive letter
		return true
	default:
		return filepath.IsAbs(w)
	}
}

// HashCommand returns the hex SHA256 of a command shape.
func HashCommand(shape string) string {
	hash := sha256.Sum256([]byte(shape))
	return hex.EncodeToString(hash[:])
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
