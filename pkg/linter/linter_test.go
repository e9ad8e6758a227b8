package linter_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/runner"
)

func newLinter(t *testing.T, table map[string]any, checkOnly ...string) *linter.Linter {
	t.Helper()

	cfg := config.NewConfig()
	if table != nil {
		var err error
		cfg, _, err = config.FromTable(table, t.TempDir())
		require.NoError(t, err)
	}

	l, err := linter.NewBuilder().Config(cfg).CheckOnlyRules(checkOnly...).Build(context.Background())
	require.NoError(t, err)
	return l
}

func ruleNames(errs []lint.LintError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Rule
	}
	return names
}

func TestBuilder_UnknownCheckOnlyRule(t *testing.T) {
	t.Parallel()

	_, err := linter.NewBuilder().CheckOnlyRules("Rule999Nope").Build(context.Background())
	require.ErrorIs(t, err, linter.ErrUnknownRule)
}

func TestBuilder_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := linter.NewBuilder().OutputFormat("xml").Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestBuilder_DisabledRule(t *testing.T) {
	t.Parallel()

	l := newLinter(t, map[string]any{"Rule003Spelling": false})
	assert.NotContains(t, l.Rules().Names(), "Rule003Spelling")
	assert.Contains(t, l.Rules().Names(), "Rule001HeadingCase")
}

func TestLintString(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	out, err := l.LintString(context.Background(), "# this is a heading\n\nSome text.\n")
	require.NoError(t, err)

	assert.Empty(t, out.FilePath)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Rule001HeadingCase", out.Errors[0].Rule)
	assert.True(t, out.HasErrors())
	assert.Len(t, out.Fixable(), 1)
}

func TestLintString_Clean(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	out, err := l.LintString(context.Background(), "# A heading\n\nSome text.\n")
	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.False(t, out.HasErrors())
}

func TestLintString_InvalidMDX(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	out, err := l.LintString(context.Background(), "# this heading\n\n<Admonition>\n\nNever closed.\n")
	require.NoError(t, err)

	require.Len(t, out.Errors, 1)
	assert.Equal(t, lint.DirectiveRule, out.Errors[0].Rule)
	assert.Equal(t, lint.LevelError, out.Errors[0].Level)
	assert.Contains(t, out.Errors[0].Message, "invalid MDX")
	assert.Equal(t, 0, out.Errors[0].Location.Start.Row)
}

func TestLintString_CheckOnly(t *testing.T) {
	t.Parallel()

	src := "# this is a heading\n\nheloo world\n"

	all := newLinter(t, nil)
	out, err := all.LintString(context.Background(), src)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Rule001HeadingCase", "Rule003Spelling"}, ruleNames(out.Errors))

	only := newLinter(t, nil, "Rule003Spelling")
	out, err = only.LintString(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rule003Spelling"}, ruleNames(out.Errors))
}

func TestLintString_ConfiguredLevel(t *testing.T) {
	t.Parallel()

	l := newLinter(t, map[string]any{
		"Rule001HeadingCase": map[string]any{"level": "warning"},
	})
	out, err := l.LintString(context.Background(), "# this is a heading\n")
	require.NoError(t, err)

	require.Len(t, out.Errors, 1)
	assert.Equal(t, lint.LevelWarning, out.Errors[0].Level)
	assert.False(t, out.HasErrors())

	errs, warnings := linter.Counts([]*linter.LintOutput{out})
	assert.Equal(t, 0, errs)
	assert.Equal(t, 1, warnings)
}

func TestLint_StringTarget(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	outs, err := l.Lint(context.Background(), linter.StringTarget("# A heading\n"))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Empty(t, outs[0].Errors)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLintPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := writeFile(t, dir, "b.mdx", "# this is b\n")
	a := writeFile(t, dir, "a.mdx", "# A is fine\n")
	writeFile(t, dir, "notes.txt", "# this is not mdx\n")
	c := writeFile(t, dir, "sub/c.mdx", "# this is c\n")

	l := newLinter(t, nil)
	outs, err := l.LintPaths(context.Background(), runner.Options{Targets: []string{dir}, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, outs, 3)
	assert.Equal(t, a, outs[0].FilePath)
	assert.Equal(t, b, outs[1].FilePath)
	assert.Equal(t, c, outs[2].FilePath)

	assert.Empty(t, outs[0].Errors)
	assert.Len(t, outs[1].Errors, 1)
	assert.Equal(t, "# this is b\n", string(outs[1].Content))
}

func TestLintPaths_IgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "keep.mdx", "# this is kept\n")
	writeFile(t, dir, "generated/skip.mdx", "# this is skipped\n")

	cfg, _, err := config.FromTable(map[string]any{"ignore_patterns": []any{"generated/**"}}, dir)
	require.NoError(t, err)

	l, err := linter.NewBuilder().Config(cfg).Build(context.Background())
	require.NoError(t, err)

	outs, err := l.Lint(context.Background(), linter.PathTarget(dir))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "keep.mdx", filepath.Base(outs[0].FilePath))
}

func TestLintPaths_MissingTarget(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	_, err := l.Lint(context.Background(), linter.PathTarget(filepath.Join(t.TempDir(), "missing.mdx")))
	require.ErrorIs(t, err, runner.ErrTargetNotFound)
}

func TestFix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.mdx", "# this Should Fail\n\nSome text.\n")
	clean := writeFile(t, dir, "clean.mdx", "# All good\n")

	ctx := context.Background()
	l := newLinter(t, nil)

	outs, err := l.Lint(ctx, linter.PathTarget(dir))
	require.NoError(t, err)

	res, err := l.Fix(ctx, outs)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesFixed)
	assert.Equal(t, 3, res.ErrorsFixed)

	fixed, err := os.ReadFile(broken)
	require.NoError(t, err)
	assert.Equal(t, "# This should fail\n\nSome text.\n", string(fixed))

	untouched, err := os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, "# All good\n", string(untouched))

	// Fixing converges: a second pass finds nothing to do.
	outs, err = l.Lint(ctx, linter.PathTarget(dir))
	require.NoError(t, err)
	for _, o := range outs {
		assert.Empty(t, o.Errors)
	}
	res, err = l.Fix(ctx, outs)
	require.NoError(t, err)
	assert.Zero(t, res.FilesFixed)
}

func TestFix_SkipsStrings(t *testing.T) {
	t.Parallel()

	l := newLinter(t, nil)
	out, err := l.LintString(context.Background(), "# this is a heading\n")
	require.NoError(t, err)

	res, err := l.Fix(context.Background(), []*linter.LintOutput{out})
	require.NoError(t, err)
	assert.Zero(t, res.FilesFixed)
}

func TestFix_ConcurrentModification(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := writeFile(t, dir, "doc.mdx", "# this is a heading\n")

	ctx := context.Background()
	l := newLinter(t, nil)
	out, err := l.LintFile(ctx, p)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(p, []byte("# this was edited meanwhile\n"), 0o644))

	res, err := l.Fix(ctx, []*linter.LintOutput{out})
	require.Error(t, err)
	assert.Zero(t, res.FilesFixed)

	content, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# this was edited"))
}
