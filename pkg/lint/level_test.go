package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    lint.LintLevel
		wantErr bool
	}{
		{"error", lint.LevelError, false},
		{"ERROR", lint.LevelError, false},
		{"warning", lint.LevelWarning, false},
		{" Warn ", lint.LevelWarning, false},
		{"info", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := lint.ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, lint.ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLintLevel_Ordering(t *testing.T) {
	t.Parallel()

	assert.Greater(t, lint.LevelError, lint.LevelWarning)
}

func TestLintLevel_Text(t *testing.T) {
	t.Parallel()

	text, err := lint.LevelWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))

	var level lint.LintLevel
	require.NoError(t, level.UnmarshalText([]byte("error")))
	assert.Equal(t, lint.LevelError, level)

	assert.Error(t, level.UnmarshalText([]byte("loud")))
	assert.Equal(t, "LintLevel(9)", lint.LintLevel(9).String())
}
