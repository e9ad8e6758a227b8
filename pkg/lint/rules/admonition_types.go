package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// typeKeyword finds the type attribute in an element's source.
var typeKeyword = regexp.MustCompile(`\b(type)\s*=\s*["']`)

// AdmonitionTypesRule checks that every <Admonition> has a literal type
// attribute taken from a configured list.
//
// The list starts empty, so until admonition_types is configured every
// admonition with a type is reported, with an empty allowed list in the
// message.
//
// Configuration:
//
//	[Rule002AdmonitionTypes]
//	admonition_types = ["note", "tip", "caution", "deprecation", "danger"]
type AdmonitionTypesRule struct {
	lint.BaseRule

	types []string
}

// NewAdmonitionTypesRule creates a new admonition types rule.
func NewAdmonitionTypesRule() *AdmonitionTypesRule {
	return &AdmonitionTypesRule{
		BaseRule: lint.NewBaseRule(
			"Rule002AdmonitionTypes",
			"Admonitions must have a valid type",
			lint.LevelError,
		),
	}
}

// Setup reads the allowed types.
func (r *AdmonitionTypesRule) Setup(settings *lint.RuleSettings) error {
	r.types = settings.Strings("admonition_types")
	return nil
}

// Check reports a missing or disallowed admonition type.
func (r *AdmonitionTypesRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if !lint.IsAdmonition(node) {
		return nil
	}

	got, ok := lint.LiteralAttribute(node, "type")
	if !ok {
		b := lint.NewErrorForNode(ctx, r.Name(), level, "Missing admonition type.", node)
		if b == nil {
			return nil
		}
		return []lint.LintError{b.Build()}
	}

	if slices.Contains(r.types, got) {
		return nil
	}

	rng, ok := ctx.NodeRange(node)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("Allowed admonition types are: %s. Got: %q.", strings.Join(r.types, ", "), got)

	loc := ctx.Location(rng)
	source := ctx.Rope().ByteSlice(rng.Start.Int(), rng.End.Int())
	if m := typeKeyword.FindStringSubmatchIndex(source); m != nil {
		loc = ctx.Location(geometry.NewRange(rng.Start.Add(m[2]), rng.Start.Add(m[3])))
	}

	return []lint.LintError{lint.NewError(r.Name(), level, message, loc).Build()}
}
