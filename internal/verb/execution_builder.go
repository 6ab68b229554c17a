package verb

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/runger/vexec/internal/cmdutil"
	"github.com/runger/vexec/internal/pathutil"
	"github.com/runger/vexec/internal/selection"
)

// ExecutionStringBuilder gathers a selection and the invocation values of
// one verb execution attempt and expands execution patterns with them.
//
// Expansion never fails: an unresolved placeholder is kept as typed and an
// invalid format is replaced with a visible diagnostic, so a bad verb
// definition shows up in the produced command instead of aborting it.
type ExecutionStringBuilder struct {
	sel *selection.Selection

	// otherFile is the selection of the other panel, empty when there's
	// only one panel.
	otherFile string

	// values are the arguments parsed with the verb's invocation pattern,
	// nil when there's no invocation parser or no argument.
	values map[string]string

	fs     afero.Fs
	logger *slog.Logger
}

// BuilderOption configures an ExecutionStringBuilder.
type BuilderOption func(*ExecutionStringBuilder)

// WithFS sets the filesystem used to find directories and to check which
// shell tokens name existing paths. Defaults to the OS filesystem.
func WithFS(fs afero.Fs) BuilderOption {
	return func(b *ExecutionStringBuilder) {
		b.fs = fs
	}
}

// WithLogger sets the logger receiving expansion diagnostics.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *ExecutionStringBuilder) {
		b.logger = logger
	}
}

// WithOtherFile sets the other panel's selection.
func WithOtherFile(path string) BuilderOption {
	return func(b *ExecutionStringBuilder) {
		b.otherFile = path
	}
}

// WithInvocationValues sets the values bound to custom placeholders.
func WithInvocationValues(values map[string]string) BuilderOption {
	return func(b *ExecutionStringBuilder) {
		b.values = values
	}
}

// NewExecutionStringBuilder returns a builder for sel only: custom
// placeholders stay unresolved unless WithInvocationValues is given.
func NewExecutionStringBuilder(sel *selection.Selection, opts ...BuilderOption) *ExecutionStringBuilder {
	b := &ExecutionStringBuilder{sel: sel}
	for _, opt := range opts {
		opt(b)
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// BuilderFromInvocation returns a builder whose custom values are parsed
// from args with parser. otherFile may be empty.
func BuilderFromInvocation(parser *InvocationParser, sel *selection.Selection, otherFile, args string, opts ...BuilderOption) *ExecutionStringBuilder {
	opts = append([]BuilderOption{
		WithOtherFile(otherFile),
		WithInvocationValues(InvocationValues(parser, args)),
	}, opts...)
	return NewExecutionStringBuilder(sel, opts...)
}

func (b *ExecutionStringBuilder) directory() string {
	if b.sel.Type == selection.Directory {
		return b.sel.Path
	}
	return pathutil.ClosestDir(b.fs, b.sel.Path)
}

func (b *ExecutionStringBuilder) parent() string {
	return pathutil.Parent(b.sel.Path)
}

// escaping says how paths are rendered in a replacement.
type escaping struct {
	shell bool
	// quote is the pattern's quote character around the placeholder, 0
	// outside quotes.
	quote rune
}

var noEscaping = escaping{}

// shellSplit are the splitting rules of shell-string mode.
var shellSplit = cmdutil.SplitOptions{UnwrapDouble: true, Backslash: true}

func pathString(path string, esc escaping) string {
	if !esc.shell {
		return path
	}
	escaped := pathutil.EscapeForShell(path)
	if esc.quote == 0 || escaped == path {
		return escaped
	}
	// Inside the pattern's quotes, close them around the escaped path.
	q := string(esc.quote)
	return q + escaped + q
}

// rawReplacement resolves one placeholder, returning false when it can't.
func (b *ExecutionStringBuilder) rawReplacement(ph Placeholder, esc escaping) (string, bool) {
	switch ph.Standard() {
	case PlaceholderLine:
		return strconv.Itoa(b.sel.Line), true
	case PlaceholderFile:
		return pathString(b.sel.Path, esc), true
	case PlaceholderDirectory:
		return pathString(b.directory(), esc), true
	case PlaceholderParent:
		return pathString(b.parent(), esc), true
	case PlaceholderOtherPanelFile:
		if b.otherFile == "" {
			return "", false
		}
		return pathString(b.otherFile, esc), true
	case PlaceholderOtherPanelDirectory:
		if b.otherFile == "" {
			return "", false
		}
		return pathString(pathutil.ClosestDir(b.fs, b.otherFile), esc), true
	case PlaceholderOtherPanelParent:
		if b.otherFile == "" {
			return "", false
		}
		return pathString(pathutil.Parent(b.otherFile), esc), true
	}

	value, ok := b.values[ph.Name]
	if !ok {
		return "", false
	}
	switch ph.Format {
	case "":
		return value, true
	case FormatPathFromDirectory:
		return pathString(pathutil.PathStrFrom(b.directory(), value), esc), true
	case FormatPathFromParent:
		return pathString(pathutil.PathStrFrom(b.parent(), value), esc), true
	default:
		b.logger.Debug("invalid placeholder format", "token", ph.Token, "format", ph.Format)
		return fmt.Sprintf("invalid format: %q", ph.Format), true
	}
}

func (b *ExecutionStringBuilder) replacement(ph Placeholder, esc escaping) string {
	if s, ok := b.rawReplacement(ph, esc); ok {
		return s
	}
	b.logger.Debug("placeholder left unresolved", "token", ph.Token)
	return ph.Token
}

// ShellExecString builds a command line for a shell. Placeholders are
// replaced with shell escaping, then the line is split again on unquoted
// whitespace: double quotes written in the pattern are removed, tokens
// naming an existing path are cleaned, and tokens are joined with single
// spaces. A path placed inside the pattern's quotes is escaped outside of
// them, so its own quotes can't end the pattern's.
func (b *ExecutionStringBuilder) ShellExecString(pattern string) string {
	replaced := replacePlaceholders(pattern, func(ph Placeholder) string {
		return b.replacement(ph, escaping{
			shell: true,
			quote: cmdutil.QuoteAt(pattern, ph.Offset, shellSplit),
		})
	})
	tokens := cmdutil.SplitUnquoted(replaced, shellSplit)
	for i, token := range tokens {
		if token == "" {
			continue
		}
		// Best effort: a failed stat only means the token is used as is.
		if _, err := b.fs.Stat(token); err == nil {
			tokens[i] = filepath.Clean(token)
		}
	}
	return strings.Join(tokens, " ")
}

// ExecTokens builds the argv of a process launched without shell. The
// pattern is split first, following only the quoting written by the verb
// author, then placeholders are replaced inside each token without
// escaping: a substituted value containing spaces stays one argument.
func (b *ExecutionStringBuilder) ExecTokens(pattern string) []string {
	tokens := cmdutil.SplitUnquoted(pattern, cmdutil.SplitOptions{UnwrapDouble: true, UnwrapSingle: true})
	for i, token := range tokens {
		tokens[i] = replacePlaceholders(token, func(ph Placeholder) string {
			return b.replacement(ph, noEscaping)
		})
	}
	return tokens
}
