package verb

import (
	"github.com/runger/vexec/internal/selection"
)

var internalShortcuts = map[Internal]string{
	InternalHelp:              "?",
	InternalOpenLeave:         "ol",
	InternalOpenStay:          "os",
	InternalPrintPath:         "pp",
	InternalPrintRelativePath: "prp",
	InternalPrintTree:         "pt",
	InternalQuit:              "q",
	InternalToggleDates:       "dates",
	InternalToggleFiles:       "files",
	InternalToggleGitIgnore:   "gi",
	InternalToggleHidden:      "h",
	InternalTogglePerm:        "perm",
	InternalToggleSizes:       "sizes",
	InternalToggleTrimRoot:    "t",
}

type builtinExternal struct {
	invocation  string
	shortcut    string
	pattern     string
	mode        ExternalMode
	applyTo     selection.Type
	description string
}

var builtinExternals = []builtinExternal{
	{"cd", "", "cd {directory}", ModeFromParentShell, selection.Any, "change directory and quit"},
	{"copy {newpath}", "cp", "cp -r {file} {newpath:path-from-parent}", ModeStayInApp, selection.Any, "copy the file or directory"},
	{"copy_to_panel", "cpp", "cp -r {file} {other-panel-directory}", ModeStayInApp, selection.Any, "copy to the other panel's directory"},
	{"edit", "e", "$EDITOR +{line} {file}", ModeFromParentShell, selection.File, "open the file in $EDITOR"},
	{"mkdir {subpath}", "md", "mkdir -p {subpath:path-from-directory}", ModeStayInApp, selection.Any, "create a directory"},
	{"move {newpath}", "mv", "mv {file} {newpath:path-from-parent}", ModeStayInApp, selection.Any, "move the file or directory"},
	{"move_to_panel", "mvp", "mv {file} {other-panel-directory}", ModeStayInApp, selection.Any, "move to the other panel's directory"},
	{"rm", "", "rm -rf {file}", ModeStayInApp, selection.Any, "remove the selected file or directory"},
}

// builtinVerbs returns the verbs every store starts with: one per internal
// plus the classic file operations.
func builtinVerbs() []*Verb {
	verbs := make([]*Verb, 0, len(internals)+len(builtinExternals))
	for _, internal := range AllInternals() {
		v := NewInternalVerb(internal, false)
		v.Shortcut = internalShortcuts[internal]
		verbs = append(verbs, v)
	}
	for _, b := range builtinExternals {
		v, err := NewExternalVerb(b.invocation, b.pattern, b.mode)
		if err != nil {
			// the table above is static
			panic(err)
		}
		v.Shortcut = b.shortcut
		v.SelectionCondition = b.applyTo
		v.Description = b.description
		verbs = append(verbs, v)
	}
	return verbs
}
