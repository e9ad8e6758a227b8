package rules

import (
	"regexp"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

var (
	// spacedAdmonition matches an element whose content is separated from
	// both tags by a blank line.
	spacedAdmonition = regexp.MustCompile(`(?s)^<Admonition[^>]*>\s*\n\s*\n.*?\n\s*\n\s*</Admonition>$`)

	// admonitionParts splits an element into opening tag, content and
	// closing tag.
	admonitionParts = regexp.MustCompile(`(?s)^(<Admonition[^>]*>)(.*?)([ \t]*</Admonition>)$`)
)

// AdmonitionNewlinesRule checks that admonition content is separated from
// the opening and closing tags by an empty line. Without the blank lines,
// MDX treats the content as inline text rather than Markdown.
//
// Valid:
//
//	<Admonition type="caution">
//
//	This is the content.
//
//	</Admonition>
type AdmonitionNewlinesRule struct {
	lint.BaseRule
}

// NewAdmonitionNewlinesRule creates a new admonition newlines rule.
func NewAdmonitionNewlinesRule() *AdmonitionNewlinesRule {
	return &AdmonitionNewlinesRule{
		BaseRule: lint.NewBaseRule(
			"Rule005AdmonitionNewlines",
			"Admonitions must have empty lines between tags and content",
			lint.LevelError,
		),
	}
}

// Check reports an admonition without blank lines around its content and
// fixes it by rewriting the element.
func (r *AdmonitionNewlinesRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if !lint.IsAdmonition(node) {
		return nil
	}

	rng, ok := ctx.NodeRange(node)
	if !ok {
		return nil
	}
	source := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())
	if spacedAdmonition.MatchString(source) {
		return nil
	}

	loc := ctx.Location(rng)
	b := lint.NewError(r.Name(), level, "Admonition must have empty lines between tags and content", loc)
	if fixed, ok := spaceAdmonition(source); ok {
		b.WithFix(fix.NewReplace(loc, fixed))
	}
	return []lint.LintError{b.Build()}
}

// spaceAdmonition rewrites an element so its content sits between blank
// lines. Empty elements have no sensible rewrite.
func spaceAdmonition(source string) (string, bool) {
	m := admonitionParts.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	opening, content, closing := m[1], trimBlankLines(m[2]), m[3]
	if content == "" {
		return "", false
	}
	return opening + "\n\n" + content + "\n\n" + closing, true
}

// trimBlankLines drops leading and trailing whitespace-only lines, keeping
// the indentation of the first content line.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}
