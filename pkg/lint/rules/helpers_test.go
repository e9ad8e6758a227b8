package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
)

// runRule sets up rule with settings and lints src with it alone.
func runRule(t *testing.T, rule lint.Rule, settings map[string]any, src string) []lint.LintError {
	t.Helper()

	require.NoError(t, rule.Setup(lint.NewRuleSettings(settings)))
	return checkSource(t, rule, src)
}

// checkSource lints src with an already set-up rule.
func checkSource(t *testing.T, rule lint.Rule, src string) []lint.LintError {
	t.Helper()

	parsed, err := parser.Parse(src)
	require.NoError(t, err)
	ctx := lint.NewContext(context.Background(), parsed, nil)
	return lint.NewRuleSet(rule).Check(ctx)
}

// applyFixes applies every automatic fix in errs to src.
func applyFixes(t *testing.T, src string, errs []lint.LintError) string {
	t.Helper()

	var corrections []fix.Correction
	for _, e := range errs {
		corrections = append(corrections, e.Fix...)
	}
	out, _, err := fix.ApplyString(src, corrections)
	require.NoError(t, err)
	return out
}

// span returns the byte range of loc as a pair for easy comparison.
func span(loc geometry.DenormalizedLocation) [2]int {
	return [2]int{loc.OffsetRange.Start.Int(), loc.OffsetRange.End.Int()}
}
