package pretty_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/ui/pretty"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

func location(row, col, length int) geometry.DenormalizedLocation {
	return geometry.DenormalizedLocation{
		Start: geometry.AdjustedPoint{Row: row, Column: col},
		End:   geometry.AdjustedPoint{Row: row, Column: col + length},
	}
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"), "No-color Bold should not add formatting")
	assert.Equal(t, "test", styles.Error.Render("test"), "No-color Error should not add formatting")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a terminal")
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}

func TestFormatDiagnostic(t *testing.T) {
	styles := pretty.NewStyles(false)
	e := &lint.LintError{
		Rule:     "Rule001HeadingCase",
		Level:    lint.LevelError,
		Message:  "Heading should be sentence case",
		Location: location(0, 7, 6),
		Fix:      []fix.Correction{{Kind: fix.Replace, Location: location(0, 7, 6), Text: "should"}},
	}
	excerpt := &pretty.Excerpt{Line: "# This Should fail", Row: 0, Column: 7, Length: 6}

	got := styles.FormatDiagnostic("docs/a.mdx", e, excerpt, 0)

	want := "error[Rule001HeadingCase]: Heading should be sentence case\n" +
		" --> docs/a.mdx:1:8\n" +
		"  | \n" +
		"1 | # This Should fail\n" +
		"  |        ^^^^^^ here\n" +
		"  = replace with \"should\"\n"
	assert.Equal(t, want, got)
}

func TestFormatDiagnostic_Warning(t *testing.T) {
	styles := pretty.NewStyles(false)
	e := &lint.LintError{Rule: "Rule003Spelling", Level: lint.LevelWarning, Message: "Word not found in dictionary: wrld", Location: location(9, 0, 4)}

	got := styles.FormatDiagnostic("a.mdx", e, &pretty.Excerpt{Line: "wrld", Row: 9, Length: 4}, 0)
	assert.True(t, strings.HasPrefix(got, "warning[Rule003Spelling]"))
	assert.Contains(t, got, "10 | wrld")
	assert.Contains(t, got, "   | ^^^^ here")
}

func TestFormatDiagnostic_WideCharacters(t *testing.T) {
	styles := pretty.NewStyles(false)
	e := &lint.LintError{Rule: "Rule003Spelling", Level: lint.LevelError, Message: "m", Location: location(0, 7, 4)}

	// "日本 " is 7 bytes but 5 display columns.
	got := styles.FormatDiagnostic("a.mdx", e, &pretty.Excerpt{Line: "日本 wrld", Column: 7, Length: 4}, 0)
	assert.Contains(t, got, "  |      ^^^^ here")
}

func TestFormatDiagnostic_Truncates(t *testing.T) {
	styles := pretty.NewStyles(false)
	e := &lint.LintError{Rule: "R", Level: lint.LevelError, Message: "m", Location: location(0, 0, 3)}
	line := strings.Repeat("abc ", 20)

	got := styles.FormatDiagnostic("a.mdx", e, &pretty.Excerpt{Line: line, Length: 3}, 20)
	assert.Contains(t, got, "1 | abc abc abc abc…\n")
}

func TestFormatDiagnostic_NoExcerpt(t *testing.T) {
	styles := pretty.NewStyles(false)
	e := &lint.LintError{Rule: "R", Level: lint.LevelError, Message: "m", Location: location(2, 4, 0)}

	got := styles.FormatDiagnostic("a.mdx", e, nil, 0)
	assert.Equal(t, "error[R]: m\n --> a.mdx:3:5\n", got)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary pretty.Summary
		sources string
		status  string
	}{
		{"clean", pretty.Summary{Sources: 1}, "🔍 1 source linted", "🟢 No errors or warnings found"},
		{"warnings", pretty.Summary{Sources: 2, Warnings: 1}, "🔍 2 sources linted", "🟡 Found 1 warning"},
		{"errors", pretty.Summary{Sources: 1, Errors: 3}, "🔍 1 source linted", "🔴 Found 3 errors"},
		{"both", pretty.Summary{Sources: 3, Errors: 1, Warnings: 2}, "🔍 3 sources linted", "🔴 Found 1 error and 2 warnings"},
		{"nothing", pretty.Summary{}, "🔍 0 sources linted", "🟢 No errors or warnings found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sources, tt.summary.SourcesLine())
			assert.Equal(t, tt.status, tt.summary.StatusLine())
			assert.Equal(t, tt.sources+"\n"+tt.status+"\n", pretty.NewStyles(false).FormatSummary(tt.summary))
		})
	}
}
