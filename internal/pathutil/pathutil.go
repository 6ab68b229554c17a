// Package pathutil holds the path helpers used when expanding verb
// execution patterns.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"
)

// ClosestDir returns path when it is a directory, otherwise the nearest
// ancestor that exists as a directory. When no ancestor qualifies the
// topmost path component is returned.
func ClosestDir(fs afero.Fs, path string) string {
	for {
		if ok, err := afero.IsDir(fs, path); err == nil && ok {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// Parent returns the direct parent of path, or path itself when it has none
// (the filesystem root).
func Parent(path string) string {
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return parent
}

// EscapeForShell renders path so that a POSIX shell reads it back as exactly
// one word. Paths without special characters are returned unchanged.
//
// The output only ever uses single quotes and backslashes: double quotes in a
// rendered command line belong to the verb author.
func EscapeForShell(path string) string {
	quoted, err := syntax.Quote(path, syntax.LangPOSIX)
	if err != nil || strings.HasPrefix(quoted, `"`) {
		return singleQuote(path)
	}
	return quoted
}

func singleQuote(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `'\''`) + `'`
}

// PathStrFrom resolves input against baseDir: "~" and "~/..." are expanded
// to the home directory, absolute inputs are kept, anything else is joined
// to baseDir. The result is cleaned.
func PathStrFrom(baseDir, input string) string {
	if input == "~" || strings.HasPrefix(input, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(input, "~"))
		}
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Join(baseDir, input)
}
