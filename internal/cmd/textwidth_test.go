package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestMiddleTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "abcdef", 6, "abcdef"},
		{"truncated", "abcdefghij", 7, "abc…hij"},
		{"tiny", "abcdef", 2, "ab"},
		{"zero", "abc", 0, ""},
		{"wide runes", "试验性试验性", 7, "试…性"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := middleTruncate(tt.in, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.maxWidth)
		})
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "试验 ", padRight("试验", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tb := &table{headers: []string{"name", "cmd"}}
	tb.add("a", "short")
	tb.add("longer", strings.Repeat("x", 50))

	var sb strings.Builder
	tb.render(&sb, 20, func(s string) string { return s })
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")

	assert.Equal(t, []string{
		"name    cmd",
		"a       short",
		"longer  xxxxxx…xxxxx",
	}, lines)
}

func TestTerminalWidth_Columns(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	w := terminalWidth()
	// a real terminal on stdout takes precedence
	assert.Greater(t, w, 0)
	if ttyWidth(os.Stdout) == 0 {
		assert.Equal(t, 123, w)
	}
}
