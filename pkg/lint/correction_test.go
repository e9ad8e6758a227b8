package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

func ptr(s string) *string { return &s }

func TestSpliceCorrection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		text           string
		splice         [2]int
		countBeginning bool
		replacement    *string
		wantKind       fix.Kind
		wantRange      [2]int
		wantText       string
	}{
		{
			name:      "delete mid-sentence word and following space",
			text:      "Here is a simple sentence.",
			splice:    [2]int{10, 16},
			wantKind:  fix.Delete,
			wantRange: [2]int{10, 17},
		},
		{
			name:        "replace mid-sentence word",
			text:        "Here is a simple sentence.",
			splice:      [2]int{10, 16},
			replacement: ptr("lovely"),
			wantKind:    fix.Replace,
			wantRange:   [2]int{10, 16},
			wantText:    "lovely",
		},
		{
			name:      "delete sentence-initial word capitalizes next",
			text:      "What a lovely day. Please take a biscuit.",
			splice:    [2]int{19, 25},
			wantKind:  fix.Replace,
			wantRange: [2]int{19, 27},
			wantText:  "T",
		},
		{
			name:        "replacement capitalized at sentence start",
			text:        "What a lovely day. Please take a biscuit.",
			splice:      [2]int{19, 25},
			replacement: ptr("kindly"),
			wantKind:    fix.Replace,
			wantRange:   [2]int{19, 25},
			wantText:    "Kindly",
		},
		{
			name:           "beginning counts as sentence start",
			text:           "Please take a biscuit.",
			splice:         [2]int{0, 6},
			countBeginning: true,
			wantKind:       fix.Replace,
			wantRange:      [2]int{0, 8},
			wantText:       "T",
		},
		{
			name:      "beginning not counted",
			text:      "please take a biscuit.",
			splice:    [2]int{0, 6},
			wantKind:  fix.Delete,
			wantRange: [2]int{0, 7},
		},
		{
			name:      "last word deleted alone",
			text:      "Take the biscuit",
			splice:    [2]int{9, 16},
			wantKind:  fix.Delete,
			wantRange: [2]int{9, 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := rope.FromString(tt.text)
			outer := geometry.NewRange(0, geometry.AdjustedOffset(r.Len()))
			splice := geometry.NewRange(geometry.AdjustedOffset(tt.splice[0]), geometry.AdjustedOffset(tt.splice[1]))

			got := lint.SpliceCorrection(r, outer, splice, tt.countBeginning, tt.replacement)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, geometry.AdjustedOffset(tt.wantRange[0]), got.Range().Start)
			assert.Equal(t, geometry.AdjustedOffset(tt.wantRange[1]), got.Range().End)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestUpperFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", lint.UpperFirst("hello"))
	assert.Equal(t, "Élan", lint.UpperFirst("élan"))
	assert.Empty(t, lint.UpperFirst(""))
}
