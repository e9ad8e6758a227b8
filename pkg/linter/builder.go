package linter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	// Built-in rules register with lint.DefaultRegistry.
	_ "github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint/rules"
)

// ErrUnknownRule is returned when CheckOnlyRules names a rule that is not
// registered.
var ErrUnknownRule = errors.New("unknown rule")

// Builder configures a Linter.
type Builder struct {
	config    *config.Config
	registry  *lint.Registry
	checkOnly []string
	format    config.OutputFormat
	jobs      int
}

// NewBuilder returns a builder using an empty config, the default rule
// registry and the simple output format.
func NewBuilder() *Builder {
	return &Builder{
		registry: lint.DefaultRegistry,
		format:   config.FormatSimple,
	}
}

// Config sets the configuration.
func (b *Builder) Config(cfg *config.Config) *Builder {
	b.config = cfg
	return b
}

// Registry replaces the rule registry.
func (b *Builder) Registry(registry *lint.Registry) *Builder {
	b.registry = registry
	return b
}

// CheckOnlyRules restricts linting to the named rules.
func (b *Builder) CheckOnlyRules(names ...string) *Builder {
	b.checkOnly = append(b.checkOnly, names...)
	return b
}

// OutputFormat selects how results are reported.
func (b *Builder) OutputFormat(format config.OutputFormat) *Builder {
	b.format = format
	return b
}

// Jobs sets the number of files linted concurrently. Zero or less means one
// per CPU.
func (b *Builder) Jobs(n int) *Builder {
	b.jobs = n
	return b
}

// Build resolves and sets up the configured rules.
func (b *Builder) Build(ctx context.Context) (*Linter, error) {
	if !b.format.IsValid() {
		return nil, fmt.Errorf("invalid output format %q: want one of %s", b.format, formatList())
	}

	for _, name := range b.checkOnly {
		if !b.registry.IsValidRule(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
	}

	cfg := b.config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	rules, err := lint.ResolveRules(ctx, b.registry, cfg)
	if err != nil {
		return nil, err
	}

	return &Linter{
		config:    cfg,
		rules:     rules,
		checkOnly: b.checkOnly,
		format:    b.format,
		jobs:      b.jobs,
	}, nil
}

func formatList() string {
	formats := config.OutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
