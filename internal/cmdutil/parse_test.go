package cmdutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitUnquoted(t *testing.T) {
	t.Parallel()

	unwrapAll := SplitOptions{UnwrapDouble: true, UnwrapSingle: true, Backslash: true}
	unwrapDouble := SplitOptions{UnwrapDouble: true, Backslash: true}
	literal := SplitOptions{UnwrapDouble: true, UnwrapSingle: true}

	tests := []struct {
		name string
		in   string
		opts SplitOptions
		want []string
	}{
		{"empty", "", unwrapAll, nil},
		{"blank", "   \t ", unwrapAll, nil},
		{"plain", "vi {file}", unwrapAll, []string{"vi", "{file}"}},
		{"collapses runs", "  a   b\tc  ", unwrapAll, []string{"a", "b", "c"}},
		{"double quoted group", `xterm -e "kak {file}"`, unwrapAll, []string{"xterm", "-e", "kak {file}"}},
		{"keep double quotes", `xterm -e "kak {file}"`, SplitOptions{Backslash: true}, []string{"xterm", "-e", `"kak {file}"`}},
		{"single quoted group", `grep 'a b' f`, unwrapAll, []string{"grep", "a b", "f"}},
		{"single kept when only double unwrapped", `vi '/my dir/f'`, unwrapDouble, []string{"vi", "'/my dir/f'"}},
		{"glued quotes", `--name="a b"c`, unwrapAll, []string{"--name=a bc"}},
		{"empty quoted", `a "" b`, unwrapAll, []string{"a", "", "b"}},
		{"unterminated", `a "b c`, unwrapAll, []string{"a", "b c"}},
		{"backslash space", `a\ b c`, unwrapAll, []string{`a\ b`, "c"}},
		{"backslash quote", `say \"hi there`, unwrapAll, []string{"say", `\"hi`, "there"}},
		{"shell escaped single quote", `cat 'it'\''s here'`, unwrapDouble, []string{"cat", `'it'\''s here'`}},
		{"double inside single", `echo 'a "b" c'`, unwrapDouble, []string{"echo", `'a "b" c'`}},
		{"escaped quote inside double", `"a \" b"`, unwrapAll, []string{`a \" b`}},
		{"unicode", "é 试验性", unwrapAll, []string{"é", "试验性"}},
		{"invalid utf8 kept", "cat '/tmp/a\xffb' \xfe", unwrapDouble, []string{"cat", "'/tmp/a\xffb'", "\xfe"}},
		{"literal backslash space", `echo a\ b`, literal, []string{"echo", `a\`, "b"}},
		{"literal windows dir", `prog "C:\dir\" {file}`, literal, []string{"prog", `C:\dir\`, "{file}"}},
		{"literal backslash quote", `say \"hi there"`, literal, []string{"say", `\hi there`}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitUnquoted(tc.in, tc.opts))
		})
	}
}

func TestQuoteAt(t *testing.T) {
	t.Parallel()

	shell := SplitOptions{UnwrapDouble: true, Backslash: true}
	pattern := `xterm -e "kak {file}" 'a {b}' \"{c}`

	tests := []struct {
		name   string
		marker string
		want   rune
	}{
		{"inside double", "{file}", '"'},
		{"inside single", "{b}", '\''},
		{"after escaped quote", "{c}", 0},
		{"before quotes", "-e", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			offset := strings.Index(pattern, tc.marker)
			assert.Equal(t, tc.want, QuoteAt(pattern, offset, shell))
		})
	}

	windows := `"C:\dir\" {file}`
	offset := strings.Index(windows, "{")
	assert.Equal(t, rune('"'), QuoteAt(windows, offset, shell))
	assert.Equal(t, rune(0), QuoteAt(windows, offset, SplitOptions{UnwrapDouble: true}))
}
