// Package selection describes the filesystem entry a verb is applied to.
package selection

import (
	"fmt"
	"os"
	"strings"
)

// Type classifies the selected entry.
type Type int

const (
	// Any matches every kind of entry.
	Any Type = iota
	// File is a regular file (or anything that isn't a directory).
	File
	// Directory is a directory.
	Directory
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "any"
	}
}

// ParseType parses "file", "directory" or "any". The empty string is Any.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return Any, nil
	case "file":
		return File, nil
	case "directory", "dir":
		return Directory, nil
	default:
		return Any, fmt.Errorf("unknown selection type: %q", s)
	}
}

// Accepts reports whether an entry of type other satisfies t.
func (t Type) Accepts(other Type) bool {
	return t == Any || other == Any || t == other
}

// Selection is the entry a verb is applied to. It is read-only for the
// duration of an expansion.
type Selection struct {
	// Path is the absolute path of the entry.
	Path string

	// Line is the line number in the file, 0 when not applicable.
	Line int

	// Type classifies the entry.
	Type Type

	// IsExe is true when the entry has an executable bit set.
	IsExe bool
}

// FromPath builds a selection by stating path. A missing path yields a
// selection of type Any.
func FromPath(path string, line int) *Selection {
	sel := &Selection{Path: path, Line: line, Type: Any}
	info, err := os.Stat(path)
	if err != nil {
		return sel
	}
	if info.IsDir() {
		sel.Type = Directory
	} else {
		sel.Type = File
		sel.IsExe = info.Mode().Perm()&0o111 != 0
	}
	return sel
}
