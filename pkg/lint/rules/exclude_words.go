package rules

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/words"
)

// replacementPlaceholder stands in for %r when a phrase has no replacement.
const replacementPlaceholder = "<REPLACEMENT_WORD>"

// ExcludeWordsRule flags configured words and phrases, optionally
// suggesting a replacement.
//
// Configuration:
//
//	[Rule004ExcludeWords.rules.postgres]
//	description = "Use %r instead of %s"
//	level = "warning"
//	case_sensitive = true
//	words = [["PostgreSQL", "Postgres"], "postgre"]
//
// A words entry is either a phrase or a [phrase, replacement] pair; an
// empty replacement means the phrase should be deleted. In description,
// %s expands to the matched text and %r to the replacement.
type ExcludeWordsRule struct {
	lint.BaseRule

	index map[exclusionKey][]*exclusion
}

// exclusionConfig is one named group of phrases.
type exclusionConfig struct {
	Description   string `toml:"description"`
	Level         string `toml:"level"`
	CaseSensitive bool   `toml:"case_sensitive"`
	Words         []any  `toml:"words"`
}

// exclusionGroup is the decoded form of exclusionConfig shared by all its
// phrases.
type exclusionGroup struct {
	name        string
	description string
	level       lint.LintLevel
}

// exclusionKey indexes phrases by their first word. Case-insensitive
// phrases are keyed by the lowercased word.
type exclusionKey struct {
	word      string
	sensitive bool
}

type exclusion struct {
	rest        []string
	sensitive   bool
	group       *exclusionGroup
	replacement *string
}

// NewExcludeWordsRule creates a new exclude words rule.
func NewExcludeWordsRule() *ExcludeWordsRule {
	return &ExcludeWordsRule{
		BaseRule: lint.NewBaseRule(
			"Rule004ExcludeWords",
			"Configured words and phrases should not be used",
			lint.LevelError,
		),
		index: map[exclusionKey][]*exclusion{},
	}
}

// Setup builds the phrase index from the rules table.
func (r *ExcludeWordsRule) Setup(settings *lint.RuleSettings) error {
	r.index = map[exclusionKey][]*exclusion{}

	groups, ok, err := lint.DecodeSetting[map[string]exclusionConfig](settings, "rules")
	if err != nil {
		return fmt.Errorf("%s: %w", r.Name(), err)
	}
	if !ok {
		return nil
	}

	for name, cfg := range groups {
		level := lint.LevelError
		if cfg.Level != "" {
			level, err = lint.ParseLevel(cfg.Level)
			if err != nil {
				return fmt.Errorf("%s: rule %s: %w", r.Name(), name, err)
			}
		}
		group := &exclusionGroup{name: name, description: cfg.Description, level: level}

		for _, entry := range cfg.Words {
			phrase, replacement, err := parseExclusionEntry(entry)
			if err != nil {
				return fmt.Errorf("%s: rule %s: %w", r.Name(), name, err)
			}
			r.insert(phrase, replacement, cfg.CaseSensitive, group)
		}
	}

	return nil
}

func parseExclusionEntry(entry any) (string, *string, error) {
	switch v := entry.(type) {
	case string:
		return v, nil, nil
	case []any:
		if len(v) == 2 {
			phrase, ok1 := v[0].(string)
			replacement, ok2 := v[1].(string)
			if ok1 && ok2 {
				return phrase, &replacement, nil
			}
		}
	}
	return "", nil, fmt.Errorf("invalid words entry %v: want a string or a [word, replacement] pair", entry)
}

func (r *ExcludeWordsRule) insert(phrase string, replacement *string, sensitive bool, group *exclusionGroup) {
	tokens := words.NewStringIterator(phrase, 0, words.Options{}).All()
	if len(tokens) == 0 {
		return
	}

	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
		if !sensitive {
			parts[i] = foldCase(t.Text)
		}
	}

	key := exclusionKey{word: parts[0], sensitive: sensitive}
	rest := parts[1:]

	for _, existing := range r.index[key] {
		if slices.Equal(existing.rest, rest) {
			if group.level > existing.group.level {
				existing.group = group
				existing.replacement = replacement
			}
			return
		}
	}

	r.index[key] = append(r.index[key], &exclusion{
		rest:        rest,
		sensitive:   sensitive,
		group:       group,
		replacement: replacement,
	})
}

func (r *ExcludeWordsRule) lookup(word string) []*exclusion {
	sensitive := r.index[exclusionKey{word: word, sensitive: true}]
	insensitive := r.index[exclusionKey{word: foldCase(word), sensitive: false}]
	if len(sensitive) == 0 {
		return insensitive
	}
	if len(insensitive) == 0 {
		return sensitive
	}
	return append(append([]*exclusion(nil), sensitive...), insensitive...)
}

// Check reports excluded phrases in a text node.
func (r *ExcludeWordsRule) Check(node *mdast.Node, ctx *lint.Context, _ lint.LintLevel) []lint.LintError {
	if node.Kind != mdast.KindText || len(r.index) == 0 {
		return nil
	}

	rng, ok := ctx.NodeRange(node)
	if !ok {
		return nil
	}
	text := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())

	var errs []lint.LintError
	it := words.NewStringIterator(text, rng.Start.Int(), words.Options{})
	for {
		w, ok := it.Next()
		if !ok {
			break
		}

		m := r.match(w, it)
		if m == nil {
			continue
		}

		splice := geometry.NewRange(geometry.AdjustedOffset(w.Offset), geometry.AdjustedOffset(m.last.End()))
		errs = append(errs, r.newError(ctx, node, rng, splice, m.exclusion))
	}

	return errs
}

type exclusionMatch struct {
	exclusion *exclusion
	last      words.Word
	length    int
}

// match finds the longest phrase starting at first. Words read past the
// end of the match are pushed back onto it.
func (r *ExcludeWordsRule) match(first words.Word, it *words.Iterator) *exclusionMatch {
	type candidate struct {
		exclusion *exclusion
		pos       int
	}

	var active []candidate
	for _, e := range r.lookup(first.Text) {
		active = append(active, candidate{exclusion: e})
	}
	if len(active) == 0 {
		return nil
	}

	var best *exclusionMatch
	var consumed []words.Word
	last := first

	for {
		var pending []candidate
		for _, c := range active {
			if c.pos < len(c.exclusion.rest) {
				pending = append(pending, c)
				continue
			}
			if best == nil || len(consumed) > best.length ||
				(len(consumed) == best.length && c.exclusion.group.level > best.exclusion.group.level) {
				best = &exclusionMatch{exclusion: c.exclusion, last: last, length: len(consumed)}
			}
		}
		if len(pending) == 0 {
			break
		}

		w, ok := it.Next()
		if !ok {
			break
		}
		consumed = append(consumed, w)
		last = w

		active = active[:0]
		for _, c := range pending {
			if wordsEqual(c.exclusion.rest[c.pos], w.Text, c.exclusion.sensitive) {
				active = append(active, candidate{exclusion: c.exclusion, pos: c.pos + 1})
			}
		}
		if len(active) == 0 {
			break
		}
	}

	used := 0
	if best != nil {
		used = best.length
	}
	if used < len(consumed) {
		it.Prepend(consumed[used:]...)
	}

	return best
}

func (r *ExcludeWordsRule) newError(
	ctx *lint.Context,
	node *mdast.Node,
	outer, splice geometry.AdjustedRange,
	e *exclusion,
) lint.LintError {
	matched := ctx.Rope().ByteSlice(splice.Start.Int(), splice.End.Int())
	message := formatExclusionMessage(e.group.description, matched, e.replacement)

	replacement := e.replacement
	if replacement != nil && *replacement == "" {
		replacement = nil
	}
	suggestion := lint.WordSpliceCorrection(ctx, outer, splice, node.Prev == nil, replacement)

	return lint.NewError(r.Name(), e.group.level, message, ctx.Location(splice)).
		WithSuggestions(suggestion).
		Build()
}

// formatExclusionMessage expands %s to the matched text and %r to the
// replacement. A placeholder preceded by another % is left alone.
func formatExclusionMessage(description, matched string, replacement *string) string {
	repl := replacementPlaceholder
	if replacement != nil {
		repl = *replacement
	}

	var b strings.Builder
	for i := 0; i < len(description); i++ {
		c := description[i]
		if c == '%' && i+1 < len(description) && (i == 0 || description[i-1] != '%') {
			switch description[i+1] {
			case 's':
				b.WriteString(matched)
				i++
				continue
			case 'r':
				b.WriteString(repl)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}

func wordsEqual(want, got string, sensitive bool) bool {
	if sensitive {
		return want == got
	}
	return want == foldCase(got)
}
