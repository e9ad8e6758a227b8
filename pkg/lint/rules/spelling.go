package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/directives"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/words"
)

// exportConst matches text that the parser left as prose but is really an
// ESM declaration.
var exportConst = regexp.MustCompile(`^export\s+const\s+\w+\s*=`)

// smartQuotes maps typographic quotes to their ASCII forms.
var smartQuotes = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)

type hyphenPart uint8

const (
	wholeWord hyphenPart = iota
	maybePrefix
	maybeSuffix
)

// SpellingRule checks words against the built-in dictionary.
//
// Configuration:
//
//	[Rule003Spelling]
//	allow_list = ["Supabase", "\\S+\\.toml"]
//	prefixes = ["pre", "post", "non"]
//
// allow_list entries are regular expressions matched at word boundaries.
// prefixes exempt the first part of a hyphenated word such as "pre-fill".
//
// Words can also be allowed for part of a document:
//
//	{/* supa-mdx-lint-configure Rule003Spelling +Supabase */}
type SpellingRule struct {
	lint.BaseRule

	dict        *dictionary
	allowList   []*regexp.Regexp
	prefixes    []string
	suggestions *suggestionMatcher

	vocab *lint.ContextCache[[]vocabWord]
}

// vocabWord is a word allowed by configure directives on some lines.
type vocabWord struct {
	pattern *regexp.Regexp
	lines   []geometry.LineRange
}

// NewSpellingRule creates a new spelling rule.
func NewSpellingRule() *SpellingRule {
	return &SpellingRule{
		BaseRule: lint.NewBaseRule(
			"Rule003Spelling",
			"Words should be spelled correctly",
			lint.LevelError,
		),
		vocab: lint.NewContextCache[[]vocabWord](lint.DefaultCacheCapacity),
	}
}

// Setup loads the dictionary and reads the allow list and prefixes.
func (r *SpellingRule) Setup(settings *lint.RuleSettings) error {
	r.dict = builtinDictionary()
	r.allowList = settings.RegexSlice("allow_list", lint.RegexOptions{
		Beginning: lint.BeginWordBoundary,
		Ending:    lint.EndWordBoundary,
	})
	r.prefixes = settings.StringSlice("prefixes")
	r.suggestions = newSuggestionMatcher(r.dict, settings.Strings("allow_list"))
	return nil
}

func spellingMessage(word string) string {
	return fmt.Sprintf("Word not found in dictionary: %s", word)
}

// Check reports misspelled words in a text node.
func (r *SpellingRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if node.Kind != mdast.KindText {
		return nil
	}

	rng, ok := ctx.NodeRange(node)
	if !ok {
		return nil
	}
	text := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())
	if exportConst.MatchString(text) {
		return nil
	}

	ignored := r.ignoredRanges(ctx, text, rng.Start)

	var errs []lint.LintError
	it := words.NewStringIterator(text, rng.Start.Int(), words.Options{})
	for {
		w, ok := it.Next()
		if !ok {
			break
		}

		wordRange := possessiveTrimmedRange(w)
		if ignored.CompletelyContains(wordRange) {
			continue
		}

		if !strings.Contains(w.Text, "-") || r.isCorrect(w.Text, wholeWord) {
			errs = r.checkWord(errs, ctx, level, w.Text, wholeWord, wordRange)
			continue
		}

		parts := words.NewStringIterator(w.Text, w.Offset, words.Options{
			BreakOnPunctuation: words.BreakHyphen,
		}).All()
		for i, p := range parts {
			part, partRange := wholeWord, wordRangeOf(p)
			switch i {
			case 0:
				part = maybePrefix
			case len(parts) - 1:
				part, partRange = maybeSuffix, possessiveTrimmedRange(p)
			}
			if ignored.CompletelyContains(partRange) {
				continue
			}
			errs = r.checkWord(errs, ctx, level, p.Text, part, partRange)
		}
	}

	return errs
}

func (r *SpellingRule) checkWord(
	errs []lint.LintError,
	ctx *lint.Context,
	level lint.LintLevel,
	word string,
	part hyphenPart,
	rng geometry.AdjustedRange,
) []lint.LintError {
	if r.isCorrect(word, part) {
		return errs
	}

	loc := ctx.Location(rng)
	b := lint.NewError(r.Name(), level, spellingMessage(word), loc)
	if part == wholeWord {
		for _, s := range r.suggestions.suggest(normalizeWord(word)) {
			if upperInitial(word) {
				s = lint.UpperFirst(s)
			}
			b.WithSuggestions(fix.NewReplace(loc, s))
		}
	}
	return append(errs, b.Build())
}

func (r *SpellingRule) isCorrect(word string, part hyphenPart) bool {
	if len(word) < 2 {
		return true
	}

	// Numbers, emoji and non-English letters are not checked.
	for _, c := range word {
		if !isASCIIAlphabetic(c) && !isIncludedPunctuation(c) {
			return true
		}
	}

	normalized := normalizeWord(word)
	if r.dict.contains(normalized) {
		return true
	}

	return part == maybePrefix && slices.Contains(r.prefixes, normalized)
}

// ignoredRanges collects the spans of text covered by the allow list or by
// words allowed through configure directives.
func (r *SpellingRule) ignoredRanges(ctx *lint.Context, text string, offset geometry.AdjustedOffset) *geometry.RangeSet {
	var ignored geometry.RangeSet

	for _, re := range r.allowList {
		for _, m := range re.FindAllStringIndex(text, -1) {
			ignored.Push(geometry.NewRange(offset.Add(m[0]), offset.Add(m[1])))
		}
	}

	vocab := r.vocab.GetOrCompute(ctx.ID, func() []vocabWord {
		return parseVocab(ctx.Configs.Get(r.Name()))
	})
	for _, v := range vocab {
		for _, m := range v.pattern.FindAllStringIndex(text, -1) {
			rng := geometry.NewRange(offset.Add(m[0]), offset.Add(m[1]))
			for _, lines := range v.lines {
				if lines.OverlapsLines(rng, ctx.Rope()) {
					ignored.Push(rng)
					break
				}
			}
		}
	}

	return &ignored
}

// parseVocab reads `+Word` attributes of configure directives.
func parseVocab(entries []directives.ConfigEntry) []vocabWord {
	var out []vocabWord
	index := make(map[string]int)

	for _, entry := range entries {
		for _, field := range strings.Fields(entry.Attributes) {
			word, ok := strings.CutPrefix(field, "+")
			if !ok || word == "" {
				continue
			}
			if i, seen := index[word]; seen {
				out[i].lines = append(out[i].lines, entry.Lines)
				continue
			}
			index[word] = len(out)
			out = append(out, vocabWord{
				pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`),
				lines:   []geometry.LineRange{entry.Lines},
			})
		}
	}

	return out
}

// normalizeWord folds case and typographic quotes and drops a possessive
// suffix.
func normalizeWord(word string) string {
	word = cases.Lower(language.Und).String(smartQuotes.Replace(word))
	return strings.TrimSuffix(word, "'s")
}

func wordRangeOf(w words.Word) geometry.AdjustedRange {
	start := geometry.AdjustedOffset(w.Offset)
	return geometry.NewRange(start, start.Add(len(w.Text)))
}

// possessiveTrimmedRange excludes a trailing 's from the span of w.
func possessiveTrimmedRange(w words.Word) geometry.AdjustedRange {
	rng := wordRangeOf(w)
	for _, suffix := range []string{"'s", "‘s", "’s"} {
		if len(w.Text) > len(suffix) && strings.HasSuffix(w.Text, suffix) {
			rng.End -= geometry.AdjustedOffset(len(suffix))
			break
		}
	}
	return rng
}

func upperInitial(word string) bool {
	return word != "" && 'A' <= word[0] && word[0] <= 'Z'
}

func isASCIIAlphabetic(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIncludedPunctuation(c rune) bool {
	switch c {
	case '-', '–', '—', '―', '\'', '‘', '’', '“', '”', '"', '.':
		return true
	default:
		return false
	}
}
