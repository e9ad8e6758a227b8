package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
)

func TestNoAbsoluteURLsRule(t *testing.T) {
	settings := map[string]any{"base_url": "https://supabase.com"}

	tests := []struct {
		name     string
		input    string
		settings map[string]any
		wantMsg  string
		wantFix  string
		wantSpan [2]int
	}{
		{
			name:     "link text repeats the base url",
			input:    "[https://supabase.com](https://supabase.com/docs/auth)",
			settings: settings,
			wantMsg:  "Use relative URL '/docs/auth' instead of absolute URL 'https://supabase.com/docs/auth'",
			wantFix:  "/docs/auth",
			wantSpan: [2]int{23, 53},
		},
		{
			name:     "image",
			input:    "![https://supabase.com](https://supabase.com/logo.png)",
			settings: settings,
			wantMsg:  "Use relative URL '/logo.png' instead of absolute URL 'https://supabase.com/logo.png'",
			wantFix:  "/logo.png",
			wantSpan: [2]int{24, 53},
		},
		{
			name:     "root path",
			input:    "[Home](https://supabase.com/)",
			settings: settings,
			wantMsg:  "Use relative URL '/' instead of absolute URL 'https://supabase.com/'",
			wantFix:  "/",
			wantSpan: [2]int{7, 28},
		},
		{
			name:     "trailing slash on base url",
			input:    "[Docs](https://supabase.com/docs)",
			settings: map[string]any{"base_url": "https://supabase.com/"},
			wantMsg:  "Use relative URL '/docs' instead of absolute URL 'https://supabase.com/docs'",
			wantFix:  "/docs",
			wantSpan: [2]int{7, 32},
		},
		{
			name:     "other host",
			input:    "[https://supabase.com](https://example.com/docs)",
			settings: settings,
		},
		{
			name:     "base url is only a prefix of the host",
			input:    "[Evil](https://supabase.community/docs)",
			settings: settings,
		},
		{
			name:     "already relative",
			input:    "[Local](/local/path)",
			settings: settings,
		},
		{
			name:  "no base url configured",
			input: "[Docs](https://supabase.com/docs)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := runRule(t, NewNoAbsoluteURLsRule(), tt.settings, tt.input)
			if tt.wantMsg == "" {
				assert.Empty(t, errs)
				return
			}

			require.Len(t, errs, 1)
			assert.Equal(t, "Rule006NoAbsoluteUrls", errs[0].Rule)
			assert.Equal(t, tt.wantMsg, errs[0].Message)
			require.Len(t, errs[0].Fix, 1)
			assert.Equal(t, fix.Replace, errs[0].Fix[0].Kind)
			assert.Equal(t, tt.wantFix, errs[0].Fix[0].Text)
			assert.Equal(t, tt.wantSpan, span(errs[0].Fix[0].Location))
		})
	}
}

func TestNoAbsoluteURLsRule_FixDocument(t *testing.T) {
	src := `# Test URLs

- [Documentation](https://supabase.com/docs/auth)
- ![Logo](https://supabase.com/images/logo.png)
- [Google](https://google.com/search)
`
	want := `# Test URLs

- [Documentation](/docs/auth)
- ![Logo](/images/logo.png)
- [Google](https://google.com/search)
`

	errs := runRule(t, NewNoAbsoluteURLsRule(), map[string]any{"base_url": "https://supabase.com"}, src)
	require.Len(t, errs, 2)
	assert.Equal(t, want, applyFixes(t, src, errs))
}
