// Package sanitize cleans expanded verb commands before they are stored
// or shown, and flags the ones that can destroy data.
package sanitize

import "regexp"

// Rule replaces one kind of secret found in a command line.
type Rule struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// defaultRules covers the credentials most often typed into a verb's
// arguments or baked into an execution pattern.
var defaultRules = []Rule{
	{"aws access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "[AWS_KEY]"},
	{"aws secret", regexp.MustCompile(`(?i)(aws_secret_access_key|secret_access_key)\s*[=:]\s*\S+`), "$1=[REDACTED]"},
	{"github token", regexp.MustCompile(`gh[po]_[A-Za-z0-9]{36}`), "[GITHUB_TOKEN]"},
	{"slack token", regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z-]+`), "[SLACK_TOKEN]"},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "[JWT]"},
	{"bearer", regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`), "Bearer [REDACTED]"},
	{"basic auth", regexp.MustCompile(`(?i)basic\s+[A-Za-z0-9+/=]{20,}`), "Basic [REDACTED]"},
	{"url credentials", regexp.MustCompile(`(://[^/\s:@]+):[^/\s@]+@`), "$1:[REDACTED]@"},
	{"assignment", regexp.MustCompile(`(?i)(password|passwd|token|secret|api_key|private_key)\s*[=:]\s*\S+`), "$1=[REDACTED]"},
}

// Redactor applies rules in order.
type Redactor struct {
	rules []Rule
}

// NewRedactor returns a Redactor using rules, or the default rules when
// none are given.
func NewRedactor(rules ...Rule) *Redactor {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Redactor{rules: rules}
}

// Redact returns command with every secret replaced.
func (r *Redactor) Redact(command string) string {
	for _, rule := range r.rules {
		if rule.Regex.MatchString(command) {
			command = rule.Regex.ReplaceAllString(command, rule.Replacement)
		}
	}
	return command
}

var defaultRedactor = NewRedactor()

// Redact uses the default rules.
func Redact(command string) string {
	return defaultRedactor.Redact(command)
}
