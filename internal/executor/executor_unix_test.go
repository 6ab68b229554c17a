//go:build !windows

package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/vexec/internal/verb"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()
	e := New("")

	tests := []struct {
		name   string
		launch verb.Launch
		want   int
	}{
		{"success", verb.Launch{Mode: verb.ModeStayInApp, Argv: []string{"true"}}, 0},
		{"failure", verb.Launch{Mode: verb.ModeStayInApp, Argv: []string{"false"}}, 1},
		{"shell exit", verb.Launch{Mode: verb.ModeFromParentShell, ShellLine: "exit 3"}, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := e.Run(context.Background(), tt.launch, RunOptions{
				Stdin:  strings.NewReader(""),
				Stdout: &bytes.Buffer{},
				Stderr: &bytes.Buffer{},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_Output(t *testing.T) {
	t.Parallel()
	e := New("")
	dir := t.TempDir()

	var out bytes.Buffer
	code, err := e.Run(context.Background(),
		verb.Launch{Mode: verb.ModeStayInApp, Argv: []string{"sh", "-c", `printf '%s|' "$1" "$(pwd)"`, "sh", "a b"}},
		RunOptions{Dir: dir, Stdin: strings.NewReader(""), Stdout: &out, Stderr: &bytes.Buffer{}},
	)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out.String(), "a b|"), out.String())
	assert.Contains(t, out.String(), dir)
}

func TestRun_MissingProgram(t *testing.T) {
	t.Parallel()
	e := New("")

	code, err := e.Run(context.Background(),
		verb.Launch{Mode: verb.ModeStayInApp, Argv: []string{"/definitely/not/a/program"}},
		RunOptions{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}},
	)
	require.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestRun_Cancel(t *testing.T) {
	t.Parallel()
	e := New("", WithGracePeriod(500*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, err := e.Run(ctx,
		verb.Launch{Mode: verb.ModeStayInApp, Argv: []string{"sleep", "60"}},
		RunOptions{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}},
	)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 130, code) // 128 + SIGINT
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	code, err := ExitCode(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	other := assert.AnError
	code, err = ExitCode(other)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, -1, code)
}
