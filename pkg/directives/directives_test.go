package directives_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/directives"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
)

func process(t *testing.T, input string) (directives.Configs, directives.Disables, error) {
	t.Helper()

	result, err := parser.Parse(input)
	require.NoError(t, err)
	return directives.Process(result)
}

func TestParseComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		ok    bool
		want  directives.Comment
	}{
		{"enable all", "/* supa-mdx-lint-enable */", true, directives.Comment{Kind: directives.EnableAll}},
		{"enable rule", "/* supa-mdx-lint-enable specific-rule */", true,
			directives.Comment{Kind: directives.EnableRule, Rule: "specific-rule"}},
		{"disable all", "/* supa-mdx-lint-disable */", true, directives.Comment{Kind: directives.DisableAll}},
		{"disable rule", "/* supa-mdx-lint-disable specific-rule */", true,
			directives.Comment{Kind: directives.DisableRule, Rule: "specific-rule"}},
		{"disable next line", "/* supa-mdx-lint-disable-next-line */", true,
			directives.Comment{Kind: directives.DisableAll, NextLineOnly: true}},
		{"disable rule next line", "/* supa-mdx-lint-disable-next-line specific-rule */", true,
			directives.Comment{Kind: directives.DisableRule, Rule: "specific-rule", NextLineOnly: true}},
		{"configure", "/* supa-mdx-lint-configure Rule003Spelling +Supabase +pgjwt */", true,
			directives.Comment{Kind: directives.Configure, Rule: "Rule003Spelling", Attributes: "+Supabase +pgjwt"}},
		{"configure next line", "/* supa-mdx-lint-configure-next-line Rule003Spelling +Supabase */", true,
			directives.Comment{Kind: directives.Configure, Rule: "Rule003Spelling", Attributes: "+Supabase", NextLineOnly: true}},
		{"extra whitespace", "     /*     supa-mdx-lint-enable  rule-name  */", true,
			directives.Comment{Kind: directives.EnableRule, Rule: "rule-name"}},
		{"not a comment", "supa-mdx-lint-enable", false, directives.Comment{}},
		{"unknown action", "/* supa-mdx-lint-invalid */", false, directives.Comment{}},
		{"ordinary comment", "/* just a note */", false, directives.Comment{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := directives.ParseComment(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseComment_ConfigureWithoutRule(t *testing.T) {
	t.Parallel()

	_, ok, err := directives.ParseComment("/* supa-mdx-lint-configure */")
	assert.False(t, ok)
	require.ErrorIs(t, err, directives.ErrMissingRule)
	assert.Contains(t, err.Error(), `found only "supa-mdx-lint-configure"`)
}

func TestCollectPairs(t *testing.T) {
	t.Parallel()

	input := "{/* Comment 1 */}\n{/* Comment 2 */}\nParagraph 1\n\nA list:\n- Item 1\n  {/* Comment 3 */}\n- Item 2\n"
	result, err := parser.Parse(input)
	require.NoError(t, err)

	pairs := directives.CollectPairs(result.AST)
	require.Len(t, pairs, 3)

	assert.Equal(t, "/* Comment 1 */", pairs[0].Comment.Value)
	require.NotNil(t, pairs[0].Next)
	assert.Equal(t, mdast.KindParagraph, pairs[0].Next.Kind)
	assert.Equal(t, "Paragraph 1", mdast.TextContent(pairs[0].Next))

	assert.Equal(t, "/* Comment 2 */", pairs[1].Comment.Value)
	assert.Same(t, pairs[0].Next, pairs[1].Next)

	assert.Equal(t, "/* Comment 3 */", pairs[2].Comment.Value)
	require.NotNil(t, pairs[2].Next)
	assert.Equal(t, mdast.KindListItem, pairs[2].Next.Kind)
	assert.Equal(t, "Item 2", mdast.TextContent(pairs[2].Next))
}

func TestCollectPairs_TrailingComment(t *testing.T) {
	t.Parallel()

	result, err := parser.Parse("Text\n\n{/* supa-mdx-lint-disable */}\n")
	require.NoError(t, err)

	pairs := directives.CollectPairs(result.AST)
	require.Len(t, pairs, 1)
	assert.Nil(t, pairs[0].Next)
}

func TestProcess_Disables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  directives.Disables
	}{
		{
			name:  "basic pair",
			input: "{/* supa-mdx-lint-disable foo */}\nSome content\n{/* supa-mdx-lint-enable foo */}",
			want:  directives.Disables{"foo": {geometry.BoundedLineRange(0, 2)}},
		},
		{
			name: "multiple rules",
			input: "{/* supa-mdx-lint-disable foo */}\nContent\n{/* supa-mdx-lint-disable bar */}\nMore content\n" +
				"{/* supa-mdx-lint-enable foo */}\n{/* supa-mdx-lint-enable bar */}",
			want: directives.Disables{
				"foo": {geometry.BoundedLineRange(0, 4)},
				"bar": {geometry.BoundedLineRange(2, 5)},
			},
		},
		{
			name:  "next line",
			input: "{/* supa-mdx-lint-disable-next-line foo */}\nThis line is ignored\n\nThis line is not ignored",
			want:  directives.Disables{"foo": {geometry.BoundedLineRange(0, 2)}},
		},
		{
			name:  "next line skips blank lines",
			input: "{/* supa-mdx-lint-disable-next-line foo */}\n\nThis line is ignored\n\nThis line is not ignored",
			want:  directives.Disables{"foo": {geometry.BoundedLineRange(0, 3)}},
		},
		{
			name: "next line skips intervening comments",
			input: "{/* supa-mdx-lint-disable-next-line foo */}\n\n{/* some other comment */}\n" +
				"{/* supa-mdx-lint-disable-next-line bar */}\n\nThis line is ignored by both foo and bar\n\n" +
				"This line is not ignored\n",
			want: directives.Disables{
				"foo": {geometry.BoundedLineRange(0, 6)},
				"bar": {geometry.BoundedLineRange(3, 6)},
			},
		},
		{
			name:  "next line on last line stays open",
			input: "{/* supa-mdx-lint-disable-next-line foo */}\nLast line",
			want:  directives.Disables{"foo": {geometry.OpenLineRange(0)}},
		},
		{
			name:  "disable all",
			input: "{/* supa-mdx-lint-disable */}\nEverything here is ignored\nStill ignored\n{/* supa-mdx-lint-enable */}",
			want:  directives.Disables{directives.All: {geometry.BoundedLineRange(0, 3)}},
		},
		{
			name:  "never re-enabled",
			input: "{/* supa-mdx-lint-disable foo */}\nNever reenabled",
			want:  directives.Disables{"foo": {geometry.OpenLineRange(0)}},
		},
		{
			name: "with frontmatter",
			input: "---\ntitle: Some frontmatter\ndescription: Testing with frontmatter\n---\n\n" +
				"{/* supa-mdx-lint-disable-next-line foo */}\nThis line should be ignored by foo\n\nRegular content\n\n" +
				"{/* supa-mdx-lint-disable bar */}\nThese lines should be ignored by bar\nMore content\n" +
				"{/* supa-mdx-lint-enable bar */}\n\nThis line should not be ignored\n",
			want: directives.Disables{
				"foo": {geometry.BoundedLineRange(5, 7)},
				"bar": {geometry.BoundedLineRange(10, 13)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, disables, err := process(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, disables)
		})
	}
}

func TestProcess_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "enable without disable",
			input:   "{/* supa-mdx-lint-enable foo */}\nThis should error because there was no disable",
			message: "Unmatched configuration pair - foo enabled without a corresponding disable statement. This is a no-op: [Row 1]",
		},
		{
			name:    "enable after closed range",
			input:   "{/* supa-mdx-lint-disable foo */}\nA\n{/* supa-mdx-lint-enable foo */}\nB\n{/* supa-mdx-lint-enable foo */}\n",
			message: "foo enabled without a matching disable comment: [Row 5]",
		},
		{
			name:    "overlapping disables",
			input:   "{/* supa-mdx-lint-disable */}\nA\n{/* supa-mdx-lint-disable */}\nB\n",
			message: "All rules disabled twice in succession for overlapping ranges",
		},
		{
			name:    "configure without rule",
			input:   "{/* supa-mdx-lint-configure */}\nText\n",
			message: "Lint time configuration comments must have a rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := process(t, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestErrors_Located(t *testing.T) {
	t.Parallel()

	input := "{/* supa-mdx-lint-disable foo */}\nA\n{/* supa-mdx-lint-enable foo */}\nB\n{/* supa-mdx-lint-enable foo */}\n\n{/* supa-mdx-lint-configure */}\n"
	_, _, err := process(t, input)
	require.Error(t, err)

	located := directives.Errors(err)
	require.Len(t, located, 2)

	rows := []int{located[0].Row, located[1].Row}
	assert.ElementsMatch(t, []int{4, 6}, rows)
	for _, e := range located {
		assert.NotEmpty(t, e.Error())
	}
	assert.Nil(t, directives.Errors(nil))
}

func TestProcess_OverlappingDisablesStillMerge(t *testing.T) {
	t.Parallel()

	_, disables, err := process(t, "{/* supa-mdx-lint-disable foo */}\nA\n{/* supa-mdx-lint-disable foo */}\nB\n")
	require.ErrorIs(t, err, directives.ErrUnmatchedPair)
	assert.Equal(t, directives.Disables{"foo": {geometry.OpenLineRange(0)}}, disables)
}

func TestProcess_Configs(t *testing.T) {
	t.Parallel()

	input := "{/* supa-mdx-lint-configure Rule003Spelling +Supabase */}\n\nSupabase text\n\n" +
		"{/* supa-mdx-lint-configure-next-line Rule003Spelling +pgjwt */}\npgjwt here\n\nLast\n"

	configs, _, err := process(t, input)
	require.NoError(t, err)

	entries := configs.Get("Rule003Spelling")
	require.Len(t, entries, 2)
	assert.Equal(t, "+Supabase", entries[0].Attributes)
	assert.Equal(t, geometry.OpenLineRange(0), entries[0].Lines)
	assert.Equal(t, "+pgjwt", entries[1].Attributes)
	assert.Equal(t, geometry.BoundedLineRange(4, 6), entries[1].Lines)

	assert.Empty(t, configs.Get("Rule001HeadingCase"))
}

func TestDisables_DisabledFor(t *testing.T) {
	t.Parallel()

	input := "Line zero\n\n{/* supa-mdx-lint-disable-next-line foo */}\nLine three\n\n" +
		"{/* supa-mdx-lint-disable-next-line */}\nLine six\n\nLine eight\n"
	result, err := parser.Parse(input)
	require.NoError(t, err)

	_, disables, err := directives.Process(result)
	require.NoError(t, err)

	lineRange := func(row int) geometry.AdjustedRange {
		start := result.Rope.ByteOfLine(row)
		return geometry.NewRange(geometry.AdjustedOffset(start), geometry.AdjustedOffset(start+4))
	}

	assert.False(t, disables.DisabledFor("foo", lineRange(0), result.Rope))
	assert.True(t, disables.DisabledFor("foo", lineRange(3), result.Rope))
	assert.False(t, disables.DisabledFor("bar", lineRange(3), result.Rope))
	assert.True(t, disables.DisabledFor("foo", lineRange(6), result.Rope))
	assert.True(t, disables.DisabledFor("bar", lineRange(6), result.Rope))
	assert.False(t, disables.DisabledFor("foo", lineRange(8), result.Rope))
}
