package cmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// middleTruncate truncates s in the middle with an ellipsis when its
// display width exceeds maxWidth. Wide runes (CJK, emoji) count for two
// columns.
func middleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"

	// Not enough room for head + ellipsis + tail: just hard-truncate.
	if maxWidth < 3 {
		return truncateLeft(s, maxWidth)
	}

	remaining := maxWidth - 1
	head := truncateLeft(s, (remaining+1)/2)
	tail := truncateRight(s, remaining/2)
	return head + ellipsis + tail
}

// truncateLeft returns the longest prefix of s fitting in maxWidth columns.
func truncateLeft(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// truncateRight returns the longest suffix of s fitting in maxWidth columns.
func truncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}

// padRight pads s with spaces up to width columns.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// table lays out rows in aligned columns. The last column is truncated so
// that lines fit in maxWidth.
type table struct {
	headers []string
	rows    [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// render writes the table through style functions for the header and the
// cells, which only add escape sequences around the padded text.
func (t *table) render(sb *strings.Builder, maxWidth int, header func(string) string) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	const gap = 2
	last := len(widths) - 1
	used := 0
	for i := 0; i < last; i++ {
		used += widths[i] + gap
	}
	if room := maxWidth - used; room > 0 && widths[last] > room {
		widths[last] = room
	}

	line := func(cells []string, style func(string) string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == last {
				sb.WriteString(style(middleTruncate(cell, widths[i])))
				break
			}
			sb.WriteString(style(padRight(cell, widths[i])))
			sb.WriteString(strings.Repeat(" ", gap))
		}
		sb.WriteByte('\n')
	}

	line(t.headers, header)
	for _, row := range t.rows {
		line(row, func(s string) string { return s })
	}
}
