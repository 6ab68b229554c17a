package cmdutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitOptions selects which quote characters are stripped from tokens and
// whether backslashes escape. Quote characters that are not stripped are
// kept verbatim in the token.
type SplitOptions struct {
	UnwrapDouble bool
	UnwrapSingle bool

	// Backslash makes a backslash outside single quotes protect the next
	// character from being read as a quote or separator. The backslash is
	// kept in the token. Without it a backslash is an ordinary character,
	// as in Windows paths.
	Backslash bool
}

func (o SplitOptions) unwraps(q rune) bool {
	if q == '"' {
		return o.UnwrapDouble
	}
	return o.UnwrapSingle
}

// scanner walks s rune by rune and tracks the quoting state. Bytes that
// aren't valid UTF-8 are reported one at a time with their original text,
// so they survive a split unchanged.
type scanner struct {
	s    string
	opts SplitOptions

	pos     int
	quote   rune
	escaped bool
}

// next returns the next rune, its original text, and the quote state
// before it. ok is false at the end of s.
func (sc *scanner) next() (r rune, text string, quote rune, escaped, ok bool) {
	if sc.pos >= len(sc.s) {
		return 0, "", 0, false, false
	}
	r, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
	text = sc.s[sc.pos : sc.pos+size]
	sc.pos += size
	quote, escaped = sc.quote, sc.escaped

	switch {
	case escaped:
		sc.escaped = false
	case sc.opts.Backslash && r == '\\' && quote != '\'':
		sc.escaped = true
	case quote == 0 && (r == '"' || r == '\''):
		sc.quote = r
	case quote != 0 && r == quote:
		sc.quote = 0
	}
	return r, text, quote, escaped, true
}

// SplitUnquoted splits s on whitespace that is outside quotes.
//
// Both single and double quotes group text into one token. Nothing else is
// interpreted: quotes are only removed when opts asks for it and
// backslashes are always kept, even when opts.Backslash makes them escape
// the next character. An unterminated quote runs to the end of the
// input. A quoted empty string yields an empty token.
func SplitUnquoted(s string, opts SplitOptions) []string {
	var tokens []string
	var current strings.Builder
	started := false

	sc := &scanner{s: s, opts: opts}
	for {
		r, text, quote, escaped, ok := sc.next()
		if !ok {
			break
		}
		switch {
		case escaped:
			current.WriteString(text)
			started = true

		case quote == 0 && unicode.IsSpace(r):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}

		case (quote == 0 && (r == '"' || r == '\'')) || (quote != 0 && r == quote):
			started = true
			if !opts.unwraps(r) {
				current.WriteString(text)
			}

		default:
			current.WriteString(text)
			started = true
		}
	}

	if started {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// QuoteAt returns the quote character enclosing the byte at offset in s,
// or 0 when it is outside quotes. The quoting rules are those of
// SplitUnquoted with opts, applied to the text before offset.
func QuoteAt(s string, offset int, opts SplitOptions) rune {
	sc := &scanner{s: s, opts: opts}
	for sc.pos < len(s) && sc.pos < offset {
		sc.next()
	}
	return sc.quote
}
