package rules

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// NoAbsoluteURLsRule checks that links and images pointing at the site
// itself use relative URLs.
//
// Configuration:
//
//	[Rule006NoAbsoluteUrls]
//	base_url = "https://supabase.com"
//
// The rule does nothing until base_url is set.
type NoAbsoluteURLsRule struct {
	lint.BaseRule

	baseURL string
}

// NewNoAbsoluteURLsRule creates a new absolute URL rule.
func NewNoAbsoluteURLsRule() *NoAbsoluteURLsRule {
	return &NoAbsoluteURLsRule{
		BaseRule: lint.NewBaseRule(
			"Rule006NoAbsoluteUrls",
			"Links to the documentation site should be relative",
			lint.LevelError,
		),
	}
}

// Setup reads the site's base URL.
func (r *NoAbsoluteURLsRule) Setup(settings *lint.RuleSettings) error {
	if base, ok := settings.String("base_url"); ok {
		r.baseURL = strings.TrimRight(base, "/")
	}
	return nil
}

// Check reports a link or image whose destination starts with the base URL.
func (r *NoAbsoluteURLsRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if r.baseURL == "" || !lint.IsLinkLike(node) {
		return nil
	}

	relative, ok := strings.CutPrefix(node.URL, r.baseURL)
	if !ok || !strings.HasPrefix(relative, "/") {
		return nil
	}

	urlRange, ok := r.destinationRange(node, ctx)
	if !ok {
		return nil
	}

	message := fmt.Sprintf("Use relative URL '%s' instead of absolute URL '%s'", relative, node.URL)
	b := lint.NewErrorForNode(ctx, r.Name(), level, message, node)
	if b == nil {
		return nil
	}
	return []lint.LintError{b.WithFix(fix.NewReplace(ctx.Location(urlRange), relative)).Build()}
}

// destinationRange locates the URL inside the parenthesized destination of
// node, ignoring any copy of it in the link text.
func (r *NoAbsoluteURLsRule) destinationRange(node *mdast.Node, ctx *lint.Context) (geometry.AdjustedRange, bool) {
	rng, ok := ctx.NodeRange(node)
	if !ok {
		return geometry.AdjustedRange{}, false
	}
	source := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())

	paren := strings.LastIndexByte(source, '(')
	if paren < 0 {
		return geometry.AdjustedRange{}, false
	}
	after := source[paren+1:]
	idx := strings.Index(after, node.URL)
	if idx < 0 || strings.TrimSpace(after[:idx]) != "" {
		return geometry.AdjustedRange{}, false
	}

	start := rng.Start.Add(paren + 1 + idx)
	return geometry.NewRange(start, start.Add(len(node.URL))), true
}
