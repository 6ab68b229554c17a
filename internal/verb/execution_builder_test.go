package verb

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/shlex"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/vexec/internal/selection"
)

func newTestFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/dys/dev", 0o755))
	require.NoError(t, fs.MkdirAll("/other/dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/home/dys/dev/main.go", []byte("package main"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/other/dir/f.txt", []byte("x"), 0o644))
	return fs
}

func fileSel(path string) *selection.Selection {
	return &selection.Selection{Path: path, Type: selection.File}
}

func TestExecTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		values  map[string]string
		want    []string
	}{
		{
			name:    "file",
			pattern: "vi {file}",
			path:    "/home/dys/dev",
			want:    []string{"vi", "/home/dys/dev"},
		},
		{
			name:    "unicode path and multi word arg",
			pattern: "/bin/e.exe -a {arg} -e {file}",
			path:    "expérimental & 试验性",
			values:  map[string]string{"arg": "deux mots"},
			want:    []string{"/bin/e.exe", "-a", "deux mots", "-e", "expérimental & 试验性"},
		},
		{
			name:    "quoted group",
			pattern: `xterm -e "kak {file}"`,
			path:    "/path/to/file",
			want:    []string{"xterm", "-e", "kak /path/to/file"},
		},
		{
			name:    "single quoted group",
			pattern: `sh -c 'less {file}'`,
			path:    "/my dir/notes.md",
			want:    []string{"sh", "-c", "less /my dir/notes.md"},
		},
		{
			name:    "no placeholder",
			pattern: "ls   -la /tmp",
			path:    "/home/dys/dev",
			want:    []string{"ls", "-la", "/tmp"},
		},
		{
			name:    "spaces stay in one argument",
			pattern: "cp {file} {other}",
			path:    "/my dir/a b.txt",
			values:  map[string]string{"other": "x y"},
			want:    []string{"cp", "/my dir/a b.txt", "x y"},
		},
		{
			name:    "unknown placeholder is kept",
			pattern: "echo {nope} {file}",
			path:    "/a",
			want:    []string{"echo", "{nope}", "/a"},
		},
		{
			name:    "missing key is kept",
			pattern: "echo {arg} {other}",
			path:    "/a",
			values:  map[string]string{"arg": "1"},
			want:    []string{"echo", "1", "{other}"},
		},
		{
			name:    "malformed tokens are literal",
			pattern: "echo {a{b {} {x:y:z} }",
			path:    "/a",
			want:    []string{"echo", "{a{b", "{}", "{x:y:z}", "}"},
		},
		{
			name:    "placeholder glued to text",
			pattern: "--file={file}:{line}",
			path:    "/a b",
			want:    []string{"--file=/a b:0"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := NewExecutionStringBuilder(fileSel(tc.path),
				WithFS(newTestFS(t)),
				WithInvocationValues(tc.values),
			)
			assert.Equal(t, tc.want, b.ExecTokens(tc.pattern))
		})
	}
}

func TestShellExecString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		values  map[string]string
		want    string
	}{
		{
			name:    "file",
			pattern: "vi {file}",
			path:    "/home/dys/dev",
			want:    "vi /home/dys/dev",
		},
		{
			name:    "quoted group is unwrapped",
			pattern: `xterm -e "kak {file}"`,
			path:    "/path/to/file",
			want:    "xterm -e kak /path/to/file",
		},
		{
			name:    "escaped path",
			pattern: "vi {file}",
			path:    "/my dir/it's.txt",
			want:    `vi '/my dir/it'\''s.txt'`,
		},
		{
			name:    "unicode path",
			pattern: "/bin/e.exe -a {arg} -e {file}",
			path:    "expérimental & 试验性",
			values:  map[string]string{"arg": "deux mots"},
			want:    "/bin/e.exe -a deux mots -e 'expérimental & 试验性'",
		},
		{
			name:    "no placeholder",
			pattern: "ls   -la /tmp",
			path:    "/home/dys/dev",
			want:    "ls -la /tmp",
		},
		{
			name:    "existing path is cleaned",
			pattern: "cat /home/dys/dev/./main.go /nowhere/./x",
			path:    "/a",
			want:    "cat /home/dys/dev/main.go /nowhere/./x",
		},
		{
			name:    "unknown placeholder is kept",
			pattern: "echo {nope}",
			path:    "/a",
			want:    "echo {nope}",
		},
		{
			name:    "line",
			pattern: "vim +{line} {file}",
			path:    "/a",
			want:    "vim +0 /a",
		},
		{
			name:    "invalid utf8 path",
			pattern: "cat {file}",
			path:    "/tmp/a\xffb",
			want:    "cat '/tmp/a\xffb'",
		},
		{
			name:    "spaces inside quoted group",
			pattern: `xterm -e "kak {file}"`,
			path:    "/tmp/my notes.md",
			want:    `xterm -e kak '/tmp/my notes.md'`,
		},
		{
			name:    "double quote inside quoted group",
			pattern: `xterm -e "kak {file}"`,
			path:    `/tmp/a"b c`,
			want:    `xterm -e kak '/tmp/a"b c'`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := NewExecutionStringBuilder(fileSel(tc.path),
				WithFS(newTestFS(t)),
				WithInvocationValues(tc.values),
			)
			assert.Equal(t, tc.want, b.ShellExecString(tc.pattern))
		})
	}
}

func TestExecutionStringBuilder_Line(t *testing.T) {
	t.Parallel()

	for _, line := range []int{0, 1, 42, 100000} {
		sel := &selection.Selection{Path: "/a", Line: line, Type: selection.File}
		b := NewExecutionStringBuilder(sel, WithFS(afero.NewMemMapFs()))
		tokens := b.ExecTokens("ed +{line}")
		require.Len(t, tokens, 2)
		assert.Equal(t, "+"+strconv.Itoa(line), tokens[1])
	}
}

func TestExecutionStringBuilder_DirectoryAndParent(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)

	file := NewExecutionStringBuilder(fileSel("/home/dys/dev/main.go"), WithFS(fs))
	assert.Equal(t, []string{"/home/dys/dev", "/home/dys/dev"}, file.ExecTokens("{directory} {parent}"))

	dir := NewExecutionStringBuilder(&selection.Selection{Path: "/home/dys/dev", Type: selection.Directory}, WithFS(fs))
	assert.Equal(t, []string{"/home/dys/dev", "/home/dys"}, dir.ExecTokens("{directory} {parent}"))

	root := NewExecutionStringBuilder(&selection.Selection{Path: "/", Type: selection.Directory}, WithFS(fs))
	assert.Equal(t, []string{"/"}, root.ExecTokens("{parent}"))
}

func TestExecutionStringBuilder_OtherPanel(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	pattern := "cp {file} {other-panel-file} {other-panel-directory} {other-panel-parent}"

	single := NewExecutionStringBuilder(fileSel("/home/dys/dev/main.go"), WithFS(fs))
	assert.Equal(t,
		[]string{"cp", "/home/dys/dev/main.go", "{other-panel-file}", "{other-panel-directory}", "{other-panel-parent}"},
		single.ExecTokens(pattern))

	dual := NewExecutionStringBuilder(fileSel("/home/dys/dev/main.go"), WithFS(fs), WithOtherFile("/other/dir/f.txt"))
	assert.Equal(t,
		[]string{"cp", "/home/dys/dev/main.go", "/other/dir/f.txt", "/other/dir", "/other/dir"},
		dual.ExecTokens(pattern))

	dirOther := NewExecutionStringBuilder(fileSel("/home/dys/dev/main.go"), WithFS(fs), WithOtherFile("/other/dir"))
	assert.Equal(t, "cp /home/dys/dev/main.go /other/dir", dirOther.ShellExecString("cp {file} {other-panel-directory}"))
}

func TestExecutionStringBuilder_PathFormats(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t)
	values := map[string]string{"newpath": "sub/x.go", "abs": "/etc/hosts", "up": "../y"}

	file := NewExecutionStringBuilder(fileSel("/home/dys/dev/main.go"), WithFS(fs), WithInvocationValues(values))
	assert.Equal(t,
		[]string{"/home/dys/dev/sub/x.go", "/home/dys/dev/sub/x.go", "/etc/hosts", "/home/dys/y"},
		file.ExecTokens("{newpath:path-from-directory} {newpath:path-from-parent} {abs:path-from-parent} {up:path-from-directory}"))

	dir := NewExecutionStringBuilder(&selection.Selection{Path: "/home/dys/dev", Type: selection.Directory},
		WithFS(fs), WithInvocationValues(values))
	assert.Equal(t,
		[]string{"/home/dys/dev/sub/x.go", "/home/dys/sub/x.go"},
		dir.ExecTokens("{newpath:path-from-directory} {newpath:path-from-parent}"))
}

func TestExecutionStringBuilder_PathFormatEscapedInShellMode(t *testing.T) {
	t.Parallel()

	b := NewExecutionStringBuilder(
		&selection.Selection{Path: "/home/dys/dev", Type: selection.Directory},
		WithFS(newTestFS(t)),
		WithInvocationValues(map[string]string{"name": "new dir"}),
	)
	assert.Equal(t, "mkdir -p '/home/dys/dev/new dir'", b.ShellExecString("mkdir -p {name:path-from-directory}"))
}

func TestExecutionStringBuilder_InvalidFormat(t *testing.T) {
	t.Parallel()

	b := NewExecutionStringBuilder(fileSel("/a"),
		WithFS(afero.NewMemMapFs()),
		WithInvocationValues(map[string]string{"arg": "/some/path"}),
	)

	tokens := b.ExecTokens("echo {arg:lowercase}")
	require.Len(t, tokens, 2)
	assert.Equal(t, `invalid format: "lowercase"`, tokens[1])
	assert.NotContains(t, tokens[1], "/some/path")

	line := b.ShellExecString("echo {arg:lowercase}")
	assert.Contains(t, line, "lowercase")
	assert.NotContains(t, line, "/some/path")
}

func TestExecutionStringBuilder_StandardNamesIgnoreValues(t *testing.T) {
	t.Parallel()

	b := NewExecutionStringBuilder(fileSel("/real"),
		WithFS(afero.NewMemMapFs()),
		WithInvocationValues(map[string]string{"file": "/fake"}),
	)
	assert.Equal(t, []string{"/real"}, b.ExecTokens("{file}"))
}

func TestBuilderFromInvocation(t *testing.T) {
	t.Parallel()

	parser, err := NewInvocationParser("mv {newpath}")
	require.NoError(t, err)

	fs := newTestFS(t)
	sel := fileSel("/home/dys/dev/main.go")
	pattern := "mv {file} {newpath:path-from-parent}"

	b := BuilderFromInvocation(parser, sel, "", "app.go", WithFS(fs))
	assert.Equal(t, []string{"mv", "/home/dys/dev/main.go", "/home/dys/dev/app.go"}, b.ExecTokens(pattern))

	// without arguments the custom placeholder stays as typed
	b = BuilderFromInvocation(parser, sel, "", "", WithFS(fs))
	assert.Equal(t, []string{"mv", "/home/dys/dev/main.go", "{newpath:path-from-parent}"}, b.ExecTokens(pattern))

	b = BuilderFromInvocation(nil, sel, "", "app.go", WithFS(fs))
	assert.Equal(t, []string{"mv", "/home/dys/dev/main.go", "{newpath:path-from-parent}"}, b.ExecTokens(pattern))
}

func TestModesAgreeWithoutPlaceholders(t *testing.T) {
	t.Parallel()

	b := NewExecutionStringBuilder(fileSel("/a"), WithFS(afero.NewMemMapFs()))
	patterns := []string{
		"ls",
		"git status --short",
		"  make   build  ",
		"echo {}",
	}
	for _, p := range patterns {
		tokens := b.ExecTokens(p)
		assert.Equal(t, strings.Join(tokens, " "), b.ShellExecString(p), p)
	}
}

func TestShellExecString_ShellReadsPathBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    []string
	}{
		{"plain", "vi {file}", "/tmp/it's a file", []string{"vi", "/tmp/it's a file"}},
		{"double quoted group", `xterm -e "kak {file}"`, `/tmp/a"b c`, []string{"xterm", "-e", "kak", `/tmp/a"b c`}},
		{"double quoted group with single quote", `xterm -e "kak {file}"`, `/tmp/it's "here"`, []string{"xterm", "-e", "kak", `/tmp/it's "here"`}},
		{"single quoted group", `echo 'at {file}'`, "/tmp/my notes", []string{"echo", "at /tmp/my notes"}},
		{"dollar and backquote", `sh -c "ls {file}"`, "/tmp/$HOME `id`", []string{"sh", "-c", "ls", "/tmp/$HOME `id`"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := NewExecutionStringBuilder(fileSel(tc.path), WithFS(afero.NewMemMapFs()))
			line := b.ShellExecString(tc.pattern)
			words, err := shlex.Split(line)
			require.NoError(t, err, line)
			assert.Equal(t, tc.want, words, line)
		})
	}
}

func TestExecTokens_BackslashIsLiteral(t *testing.T) {
	t.Parallel()

	b := NewExecutionStringBuilder(fileSel(`C:\work\a.txt`), WithFS(afero.NewMemMapFs()))
	assert.Equal(t, []string{"prog", `C:\dir\`, `C:\work\a.txt`}, b.ExecTokens(`prog "C:\dir\" {file}`))
	assert.Equal(t, []string{"echo", `a\`, "b"}, b.ExecTokens(`echo a\ b`))
}
