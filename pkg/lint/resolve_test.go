package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

const (
	testRule1 = "Rule901Headings"
	testRule2 = "Rule902Headings"
)

func testRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	reg.Register(func() lint.Rule { return newHeadingRule(testRule1, lint.LevelError) })
	reg.Register(func() lint.Rule { return newHeadingRule(testRule2, lint.LevelWarning) })
	return reg
}

func configFrom(t *testing.T, table map[string]any) *config.Config {
	t.Helper()

	cfg, _, err := config.FromTable(table, "")
	require.NoError(t, err)
	return cfg
}

func TestResolveRules_Defaults(t *testing.T) {
	t.Parallel()

	set, err := lint.ResolveRules(t.Context(), testRegistry(), config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{testRule1, testRule2}, set.Names())

	level, ok := set.Level(testRule2)
	assert.True(t, ok)
	assert.Equal(t, lint.LevelWarning, level)
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	set, err := lint.ResolveRules(t.Context(), testRegistry(), nil)
	require.NoError(t, err)
	assert.Len(t, set.Rules(), 2)
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		table      map[string]any
		wantNames  []string
		wantLevels map[string]lint.LintLevel
	}{
		{
			name:      "false deactivates rule",
			table:     map[string]any{testRule1: false},
			wantNames: []string{testRule2},
		},
		{
			name:      "true is ignored",
			table:     map[string]any{testRule1: true},
			wantNames: []string{testRule1, testRule2},
		},
		{
			name:       "level overrides default",
			table:      map[string]any{testRule1: map[string]any{"level": "warning"}},
			wantNames:  []string{testRule1, testRule2},
			wantLevels: map[string]lint.LintLevel{testRule1: lint.LevelWarning},
		},
		{
			name:       "invalid level keeps default",
			table:      map[string]any{testRule2: map[string]any{"level": "fatal"}},
			wantNames:  []string{testRule1, testRule2},
			wantLevels: map[string]lint.LintLevel{testRule2: lint.LevelWarning},
		},
		{
			name:      "unknown keys are ignored",
			table:     map[string]any{"NotARule": false, "other": map[string]any{"x": int64(1)}},
			wantNames: []string{testRule1, testRule2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := lint.ResolveRules(t.Context(), testRegistry(), configFrom(t, tt.table))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, set.Names())

			for name, want := range tt.wantLevels {
				got, ok := set.Level(name)
				assert.True(t, ok, name)
				assert.Equal(t, want, got, name)
			}
		})
	}
}

func TestResolveRules_PassesSettings(t *testing.T) {
	t.Parallel()

	var built *headingRule
	reg := lint.NewRegistry()
	reg.Register(func() lint.Rule {
		built = newHeadingRule(testRule1, lint.LevelError)
		return built
	})

	cfg := configFrom(t, map[string]any{
		testRule1: map[string]any{"words": []any{"Supabase", "Postgres"}},
	})
	_, err := lint.ResolveRules(t.Context(), reg, cfg)
	require.NoError(t, err)

	require.NotNil(t, built.settings)
	assert.Equal(t, []string{"supabase", "postgres"}, built.settings.StringSlice("words"))
}

func TestRuleSet_Level_Inactive(t *testing.T) {
	t.Parallel()

	set := lint.NewRuleSet(newHeadingRule(testRule1, lint.LevelError))
	_, ok := set.Level(testRule2)
	assert.False(t, ok)
}
