package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/words"
)

// HeadingCaseRule checks that headings are in sentence case: only the first
// word, and words following sentence-ending punctuation or a colon, start
// with a capital.
//
// Configuration:
//
//	[Rule001HeadingCase]
//	may_uppercase = ["API", "Edge Functions", "[A-Z]{2,}"]
//	may_lowercase = ["iOS"]
//
// Patterns are anchored to the start of the word and must end at a word
// boundary. A match exempts every word it spans.
type HeadingCaseRule struct {
	lint.BaseRule

	mayUppercase []*regexp.Regexp
	mayLowercase []*regexp.Regexp
}

// NewHeadingCaseRule creates a new heading case rule.
func NewHeadingCaseRule() *HeadingCaseRule {
	return &HeadingCaseRule{
		BaseRule: lint.NewBaseRule(
			"Rule001HeadingCase",
			"Headings should be in sentence case",
			lint.LevelError,
		),
	}
}

// Setup reads the exception patterns.
func (r *HeadingCaseRule) Setup(settings *lint.RuleSettings) error {
	opts := lint.RegexOptions{Beginning: lint.BeginVeryBeginning, Ending: lint.EndWordBoundary}
	r.mayUppercase = settings.RegexSlice("may_uppercase", opts)
	r.mayLowercase = settings.RegexSlice("may_lowercase", opts)
	return nil
}

// Check reports a heading with every miscased word fixed in one error.
func (r *HeadingCaseRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if node.Kind != mdast.KindHeading {
		return nil
	}

	state := headingCaseState{expectCapital: true, first: true}
	r.checkChildren(node, ctx, &state)
	if len(state.fixes) == 0 {
		return nil
	}

	b := lint.NewErrorForNode(ctx, r.Name(), level, "Heading should be sentence case", node)
	if b == nil {
		return nil
	}
	return []lint.LintError{b.WithFix(state.fixes...).Build()}
}

// headingCaseState is carried across the phrasing nodes of one heading.
type headingCaseState struct {
	expectCapital bool
	first         bool
	fixes         []fix.Correction
}

func (r *HeadingCaseRule) checkChildren(node *mdast.Node, ctx *lint.Context, state *headingCaseState) {
	for child := node.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case mdast.KindText:
			r.checkText(child, ctx, state)
		case mdast.KindEmphasis, mdast.KindStrong, mdast.KindLink, mdast.KindLinkReference:
			r.checkChildren(child, ctx, state)
		case mdast.KindInlineCode:
			// Code can be any case; the word after it continues the sentence.
			state.expectCapital = false
			state.first = false
		default:
		}
	}
}

func (r *HeadingCaseRule) checkText(node *mdast.Node, ctx *lint.Context, state *headingCaseState) {
	rng, ok := ctx.NodeRange(node)
	if !ok {
		return
	}
	text := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())
	base := rng.Start.Int()

	it := words.NewStringIterator(text, base, words.Options{
		InitialCapitalize:            state.expectCapital,
		CapitalizeTriggerPunctuation: words.TriggerPlusColon,
	})

	skipUntil := base
	lastEnd := base
	emitted := false

	for {
		w, ok := it.Next()
		if !ok {
			break
		}
		emitted = true
		lastEnd = w.End()
		if w.Offset < skipUntil {
			continue
		}

		first := state.first
		state.first = false

		firstRune, _ := utf8.DecodeRuneInString(w.Text)
		remainder := text[w.Offset-base:]

		switch {
		case w.Capitalize && unicode.IsLower(firstRune):
			patterns := r.mayLowercase
			if !first {
				patterns = append(patterns[:len(patterns):len(patterns)], r.mayUppercase...)
			}
			if end, ok := matchException(patterns, remainder); ok {
				skipUntil = w.Offset + end
				continue
			}
			state.fixes = append(state.fixes, replaceWord(ctx, w, lint.UpperFirst(w.Text)))

		case w.Capitalize:
			if end, ok := matchException(r.mayUppercase, remainder); ok {
				skipUntil = w.Offset + end
			}

		case unicode.IsUpper(firstRune):
			if end, ok := matchException(r.mayUppercase, remainder); ok {
				skipUntil = w.Offset + end
				continue
			}
			state.fixes = append(state.fixes, replaceWord(ctx, w, cases.Lower(language.Und).String(w.Text)))
		}
	}

	trailing := text[lastEnd-base:]
	switch {
	case strings.ContainsAny(trailing, ".!?:"):
		state.expectCapital = true
	case emitted:
		state.expectCapital = false
	}
}

// matchException returns the end of the first pattern matching at the start
// of text.
func matchException(patterns []*regexp.Regexp, text string) (int, bool) {
	for _, re := range patterns {
		if loc := re.FindStringIndex(text); loc != nil {
			return loc[1], true
		}
	}
	return 0, false
}

func replaceWord(ctx *lint.Context, w words.Word, text string) fix.Correction {
	start := geometry.AdjustedOffset(w.Offset)
	return fix.NewReplace(ctx.Location(geometry.NewRange(start, start.Add(len(w.Text)))), text)
}
