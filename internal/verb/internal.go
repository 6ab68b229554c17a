package verb

// Internal identifies a built-in command handled by the application itself
// rather than by an external program.
type Internal int

const (
	InternalBack Internal = iota
	InternalClosePanelOk
	InternalClosePanelCancel
	InternalFocus
	InternalHelp
	InternalLineDown
	InternalLineUp
	InternalOpenLeave
	InternalOpenStay
	InternalPanelLeft
	InternalPanelRight
	InternalParent
	InternalPrintPath
	InternalPrintRelativePath
	InternalPrintTree
	InternalQuit
	InternalRefresh
	InternalSelectFirst
	InternalSelectLast
	InternalStartEndPanel
	InternalToggleDates
	InternalToggleFiles
	InternalToggleGitIgnore
	InternalToggleHidden
	InternalTogglePerm
	InternalToggleSizes
	InternalToggleTrimRoot
	InternalTotalSearch
	InternalUpTree
)

type internalInfo struct {
	name        string
	description string
}

var internals = [...]internalInfo{
	InternalBack:              {"back", "revert to the previous state (mapped to *esc*)"},
	InternalClosePanelOk:      {"close_panel_ok", "close the panel, validating the selected path"},
	InternalClosePanelCancel:  {"close_panel_cancel", "close the panel, not using the selected path"},
	InternalFocus:             {"focus", "display the directory (mapped to *enter*)"},
	InternalHelp:              {"help", "display the help"},
	InternalLineDown:          {"line_down", "move one line down"},
	InternalLineUp:            {"line_up", "move one line up"},
	InternalOpenLeave:         {"open_leave", "open file or directory according to OS settings (quit)"},
	InternalOpenStay:          {"open_stay", "open file or directory according to OS settings (stay)"},
	InternalPanelLeft:         {"panel_left", "focus panel on left"},
	InternalPanelRight:        {"panel_right", "focus panel on right"},
	InternalParent:            {"parent", "move to the parent directory"},
	InternalPrintPath:         {"print_path", "print path and leaves"},
	InternalPrintRelativePath: {"print_relative_path", "print relative path and leaves"},
	InternalPrintTree:         {"print_tree", "print tree and leaves"},
	InternalQuit:              {"quit", "quit"},
	InternalRefresh:           {"refresh", "refresh tree and clear size cache"},
	InternalSelectFirst:       {"select_first", "select the first item"},
	InternalSelectLast:        {"select_last", "select the last item"},
	InternalStartEndPanel:     {"start_end_panel", "either open or close an additional panel"},
	InternalToggleDates:       {"toggle_dates", "toggle showing last modified dates"},
	InternalToggleFiles:       {"toggle_files", "toggle showing files (or just folders)"},
	InternalToggleGitIgnore:   {"toggle_git_ignore", "toggle use of .gitignore"},
	InternalToggleHidden:      {"toggle_hidden", "toggle showing hidden files"},
	InternalTogglePerm:        {"toggle_perm", "toggle showing file permissions"},
	InternalToggleSizes:       {"toggle_sizes", "toggle showing sizes"},
	InternalToggleTrimRoot:    {"toggle_trim_root", "toggle removing nodes at first level too"},
	InternalTotalSearch:       {"total_search", "search again but on all children"},
	InternalUpTree:            {"up_tree", "focus the parent of the current root"},
}

var internalsByName = func() map[string]Internal {
	m := make(map[string]Internal, len(internals))
	for i, info := range internals {
		m[info.name] = Internal(i)
	}
	return m
}()

// InternalFromName resolves a name against the catalog.
func InternalFromName(name string) (Internal, error) {
	if i, ok := internalsByName[name]; ok {
		return i, nil
	}
	return 0, &ConfError{Op: "internal", Value: name, Err: ErrUnknownInternal}
}

// AllInternals lists the catalog in declaration order.
func AllInternals() []Internal {
	out := make([]Internal, len(internals))
	for i := range internals {
		out[i] = Internal(i)
	}
	return out
}

// Name is the name under which the internal is invoked.
func (i Internal) Name() string {
	if i < 0 || int(i) >= len(internals) {
		return ""
	}
	return internals[i].name
}

// Description is a one line help text.
func (i Internal) Description() string {
	if i < 0 || int(i) >= len(internals) {
		return ""
	}
	return internals[i].description
}

func (i Internal) String() string {
	return i.Name()
}
