package verb

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/runger/vexec/internal/config"
	"github.com/runger/vexec/internal/selection"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" names.
const maxSuggestionDistance = 2

// Store holds the verbs available to invocations.
type Store struct {
	verbs  []*Verb
	logger *slog.Logger
}

// NewStore returns a store holding the built-in verbs.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{verbs: builtinVerbs(), logger: logger}
}

// NewStoreFromConf returns a store holding the built-in verbs and the
// configured ones. A verb whose definition is broken is skipped; all such
// problems are returned joined, next to a usable store.
func NewStoreFromConf(confs []config.VerbConf, logger *slog.Logger) (*Store, error) {
	s := NewStore(logger)
	var errs []error
	for _, c := range confs {
		v, err := FromConf(c)
		if err != nil {
			s.logger.Warn("skipping verb", "invocation", c.Invocation, "error", err)
			errs = append(errs, err)
			continue
		}
		s.Add(v)
	}
	return s, errors.Join(errs...)
}

// Add registers v. A verb already registered under the same name is
// replaced, so configuration overrides built-ins.
func (s *Store) Add(v *Verb) {
	for i, existing := range s.verbs {
		if existing.Name == v.Name {
			s.logger.Debug("verb overridden", "name", v.Name)
			s.verbs[i] = v
			return
		}
	}
	s.verbs = append(s.verbs, v)
}

// Verbs returns the registered verbs in registration order.
func (s *Store) Verbs() []*Verb {
	return append([]*Verb(nil), s.verbs...)
}

// Find returns the verb named or shortcut-named name. When several verbs
// claim it, names win over shortcuts and later registrations win.
func (s *Store) Find(name string) (*Verb, bool) {
	var byShortcut *Verb
	for i := len(s.verbs) - 1; i >= 0; i-- {
		v := s.verbs[i]
		if v.Name == name {
			return v, true
		}
		if byShortcut == nil && v.Shortcut != "" && v.Shortcut == name {
			byShortcut = v
		}
	}
	return byShortcut, byShortcut != nil
}

// SearchKind tells what a prefix search found.
type SearchKind int

const (
	NoMatch SearchKind = iota
	Match
	TooManyMatches
)

// SearchResult is the outcome of a prefix search.
type SearchResult struct {
	Kind SearchKind
	// Verb is set for Match.
	Verb *Verb
	// Names holds the candidate names for TooManyMatches.
	Names []string
}

// Search looks for the verbs a partially typed name may refer to, among
// those applicable to an entry of type selType. An exact name or shortcut
// is a match even when it's also the prefix of other names.
func (s *Store) Search(prefix string, selType selection.Type) SearchResult {
	var found *Verb
	var names []string
	for _, v := range s.verbs {
		if !v.SelectionCondition.Accepts(selType) {
			continue
		}
		for _, name := range v.Names() {
			if name == prefix {
				return SearchResult{Kind: Match, Verb: v}
			}
			if strings.HasPrefix(name, prefix) {
				if found != v {
					names = append(names, name)
				}
				found = v
			}
		}
	}
	switch len(names) {
	case 0:
		return SearchResult{Kind: NoMatch}
	case 1:
		return SearchResult{Kind: Match, Verb: found}
	default:
		sort.Strings(names)
		return SearchResult{Kind: TooManyMatches, Names: names}
	}
}

// Suggest returns the names closest to name, nearest first, for "did you
// mean" hints.
func (s *Store) Suggest(name string) []string {
	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	for _, v := range s.verbs {
		for _, n := range v.Names() {
			if d := levenshtein.ComputeDistance(name, n); d <= maxSuggestionDistance {
				candidates = append(candidates, candidate{n, d})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.name)
	}
	return out
}

// Resolve finds the verb of a typed invocation. It fails with a *ConfError
// wrapping ErrUnknownVerb when nothing matches.
func (s *Store) Resolve(inv Invocation) (*Verb, error) {
	if v, ok := s.Find(inv.Name); ok {
		return v, nil
	}
	return nil, &ConfError{Op: "verb", Value: inv.Name, Err: ErrUnknownVerb}
}
