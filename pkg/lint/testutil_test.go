package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
)

// newContext parses src and wraps it in a lint context.
func newContext(t *testing.T, src string, checkOnly ...string) *lint.Context {
	t.Helper()

	parsed, err := parser.Parse(src)
	require.NoError(t, err)
	return lint.NewContext(context.Background(), parsed, checkOnly)
}

// headingRule flags every heading.
type headingRule struct {
	lint.BaseRule
	settings *lint.RuleSettings
}

func newHeadingRule(name string, level lint.LintLevel) *headingRule {
	return &headingRule{BaseRule: lint.NewBaseRule(name, "flags headings", level)}
}

func (r *headingRule) Setup(settings *lint.RuleSettings) error {
	r.settings = settings
	return nil
}

func (r *headingRule) Check(node *mdast.Node, ctx *lint.Context, level lint.LintLevel) []lint.LintError {
	if node.Kind != mdast.KindHeading {
		return nil
	}
	b := lint.NewErrorForNode(ctx, r.Name(), level, "heading", node)
	if b == nil {
		return nil
	}
	return []lint.LintError{b.Build()}
}
