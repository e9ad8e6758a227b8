package rules

import (
	"cmp"
	"regexp/syntax"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	maxSuggestions        = 5
	maxSuggestionDistance = 2

	// customWordFrequency ranks allow-listed words above dictionary words
	// at the same distance.
	customWordFrequency = 1_000_000_000

	maxExpansions = 64
)

type suggestionCandidate struct {
	word string
	freq int
}

// suggestionMatcher finds close spellings among the dictionary and the
// literal words of the allow list.
type suggestionMatcher struct {
	dict   *dictionary
	custom []suggestionCandidate
}

func newSuggestionMatcher(dict *dictionary, allowList []string) *suggestionMatcher {
	m := &suggestionMatcher{dict: dict}

	seen := make(map[string]bool)
	for _, pattern := range allowList {
		for _, word := range expandRegex(pattern) {
			if word == "" || seen[word] {
				continue
			}
			seen[word] = true
			m.custom = append(m.custom, suggestionCandidate{word: word, freq: customWordFrequency})
		}
	}

	return m
}

// suggest returns up to maxSuggestions words within maxSuggestionDistance
// edits of word, closest first, then most frequent.
func (m *suggestionMatcher) suggest(word string) []string {
	lower := strings.ToLower(word)

	type scored struct {
		suggestionCandidate
		dist int
	}
	var found []scored

	consider := func(c suggestionCandidate) {
		if abs(len(c.word)-len(lower)) > maxSuggestionDistance {
			return
		}
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(c.word))
		if dist == 0 || dist > maxSuggestionDistance {
			return
		}
		found = append(found, scored{suggestionCandidate: c, dist: dist})
	}

	for _, w := range m.dict.words {
		consider(suggestionCandidate{word: w, freq: m.dict.freq[w]})
	}
	for _, c := range m.custom {
		consider(c)
	}

	slices.SortFunc(found, func(a, b scored) int {
		return cmp.Or(
			cmp.Compare(a.dist, b.dist),
			cmp.Compare(b.freq, a.freq),
			cmp.Compare(a.word, b.word),
		)
	})

	out := make([]string, 0, min(len(found), maxSuggestions))
	for _, s := range found[:min(len(found), maxSuggestions)] {
		out = append(out, s.word)
	}
	return out
}

// expandRegex lists the strings matched by a pattern built only from
// literals, alternations, small character classes, optional parts and
// groups, such as `Supabase|PostgREST` or `pg_?graphql`. Patterns that
// match unbounded or large sets yield nil.
func expandRegex(pattern string) []string {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	out, ok := expand(re.Simplify())
	if !ok {
		return nil
	}
	return out
}

func expand(re *syntax.Regexp) ([]string, bool) {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText, syntax.OpWordBoundary:
		return []string{""}, true

	case syntax.OpLiteral:
		s := string(re.Rune)
		if re.Flags&syntax.FoldCase != 0 {
			return []string{s, strings.ToLower(s)}, true
		}
		return []string{s}, true

	case syntax.OpCharClass:
		var out []string
		for i := 0; i+1 < len(re.Rune); i += 2 {
			for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
				out = append(out, string(r))
				if len(out) > maxExpansions {
					return nil, false
				}
			}
		}
		return out, true

	case syntax.OpCapture:
		return expand(re.Sub[0])

	case syntax.OpQuest:
		sub, ok := expand(re.Sub[0])
		if !ok {
			return nil, false
		}
		return append([]string{""}, sub...), true

	case syntax.OpAlternate:
		var out []string
		for _, sub := range re.Sub {
			s, ok := expand(sub)
			if !ok {
				return nil, false
			}
			out = append(out, s...)
			if len(out) > maxExpansions {
				return nil, false
			}
		}
		return out, true

	case syntax.OpConcat:
		out := []string{""}
		for _, sub := range re.Sub {
			s, ok := expand(sub)
			if !ok {
				return nil, false
			}
			next := make([]string, 0, len(out)*len(s))
			for _, prefix := range out {
				for _, suffix := range s {
					next = append(next, prefix+suffix)
				}
			}
			if len(next) > maxExpansions {
				return nil, false
			}
			out = next
		}
		return out, true

	default:
		return nil, false
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
