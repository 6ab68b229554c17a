package verb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/vexec/internal/selection"
)

func TestExternalMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stay", ModeStayInApp.String())
	assert.Equal(t, "leave", ModeLeaveApp.String())
	assert.Equal(t, "from_shell", ModeFromParentShell.String())
}

func TestExternalExecution_Build(t *testing.T) {
	t.Parallel()
	fs := newTestFS(t)

	tests := []struct {
		name      string
		exec      ExternalExecution
		path      string
		wantArgv  []string
		wantShell string
	}{
		{
			name:     "argv",
			exec:     ExternalExecution{Pattern: "vi +{line} {file}", Mode: ModeLeaveApp},
			path:     "/my dir/x.txt",
			wantArgv: []string{"vi", "+0", "/my dir/x.txt"},
		},
		{
			name:      "shell line escapes",
			exec:      ExternalExecution{Pattern: "cd {directory}", Mode: ModeFromParentShell},
			path:      "/my dir",
			wantShell: "cd '/my dir'",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := fileSel(tt.path)
			if tt.exec.Mode == ModeFromParentShell {
				sel.Type = selection.Directory
			}
			b := NewExecutionStringBuilder(sel, WithFS(fs))
			launch, err := tt.exec.Build(b)
			require.NoError(t, err)
			assert.Equal(t, tt.exec.Mode, launch.Mode)
			assert.Equal(t, tt.wantArgv, launch.Argv)
			assert.Equal(t, tt.wantShell, launch.ShellLine)
		})
	}
}

func TestExternalExecution_BuildEmpty(t *testing.T) {
	t.Parallel()
	b := NewExecutionStringBuilder(fileSel("/a"), WithFS(newTestFS(t)))

	for _, mode := range []ExternalMode{ModeStayInApp, ModeLeaveApp, ModeFromParentShell} {
		e := &ExternalExecution{Pattern: "   ", Mode: mode}
		_, err := e.Build(b)
		assert.ErrorIs(t, err, ErrEmptyCommand, mode.String())
	}
}

func TestLaunch_String(t *testing.T) {
	t.Parallel()

	l := Launch{Mode: ModeStayInApp, Argv: []string{"ls", "-la"}}
	assert.Equal(t, "ls -la", l.String())

	l = Launch{Mode: ModeFromParentShell, ShellLine: "cd /tmp"}
	assert.Equal(t, "cd /tmp", l.String())
}
