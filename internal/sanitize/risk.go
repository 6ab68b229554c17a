package sanitize

import (
	"regexp"
	"strings"
)

type riskRule struct {
	name string
	re   *regexp.Regexp
}

var destructiveRules = []riskRule{
	{"rm -r", regexp.MustCompile(`\brm\s+(-[a-zA-Z]*[rR][a-zA-Z]*|--recursive)\b`)},
	{"rm -f", regexp.MustCompile(`\brm\s+-[a-zA-Z]*f\b`)},
	{"rmdir", regexp.MustCompile(`\brmdir\b`)},
	{"shred", regexp.MustCompile(`\bshred\b`)},
	{"truncate", regexp.MustCompile(`\btruncate\s+-s\s*0\b`)},
	{"git reset --hard", regexp.MustCompile(`\bgit\s+reset\s+--hard\b`)},
	{"git clean", regexp.MustCompile(`\bgit\s+clean\s+-[a-zA-Z]*[fd]`)},
	{"git checkout .", regexp.MustCompile(`\bgit\s+checkout\s+(--\s+)?\.(\s|$)`)},
	{"git push --force", regexp.MustCompile(`\bgit\s+push\b.*\s(-f|--force)\b`)},
	{"chmod -R", regexp.MustCompile(`\bchmod\s+-[a-zA-Z]*R\b`)},
	{"chown -R", regexp.MustCompile(`\bchown\s+-[a-zA-Z]*R\b`)},
	{"dd", regexp.MustCompile(`\bdd\s+.*\bof=/dev/`)},
	{"mkfs", regexp.MustCompile(`\bmkfs(\.\w+)?\b`)},
	{"sql drop", regexp.MustCompile(`(?i)\bdrop\s+(table|database)\b`)},
	{"docker prune", regexp.MustCompile(`\bdocker\s+(system|volume|image)\s+prune\b`)},
	{"kubectl delete", regexp.MustCompile(`\bkubectl\s+delete\b`)},
}

// Destructive returns the names of the destructive operations found in
// command, or nil when there are none.
func Destructive(command string) []string {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	var found []string
	for _, r := range destructiveRules {
		if r.re.MatchString(command) {
			found = append(found, r.name)
		}
	}
	return found
}

// IsDestructive reports whether command may destroy data.
func IsDestructive(command string) bool {
	return len(Destructive(command)) > 0
}
