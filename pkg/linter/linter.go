// Package linter ties parsing, directives and rule dispatch together to
// lint MDX strings, files and directories, and applies automatic fixes.
package linter

import (
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fsutil"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/runner"
)

// Linter lints MDX documents with a fixed set of configured rules. It is
// safe for concurrent use.
type Linter struct {
	config    *config.Config
	rules     *lint.RuleSet
	checkOnly []string
	format    config.OutputFormat
	jobs      int
}

// Config returns the configuration the linter was built with.
func (l *Linter) Config() *config.Config {
	return l.config
}

// Rules returns the active rules.
func (l *Linter) Rules() *lint.RuleSet {
	return l.rules
}

// OutputFormat returns the selected output format.
func (l *Linter) OutputFormat() config.OutputFormat {
	return l.format
}

// Target is something to lint: a path (file, directory or glob) or an
// in-memory document.
type Target struct {
	path   string
	source string
	inline bool
}

// PathTarget lints the file, directory or glob at p.
func PathTarget(p string) Target {
	return Target{path: p}
}

// StringTarget lints source as an in-memory document.
func StringTarget(source string) Target {
	return Target{source: source, inline: true}
}

// Lint lints a target. Paths are resolved against the working directory.
func (l *Linter) Lint(ctx context.Context, target Target) ([]*LintOutput, error) {
	if target.inline {
		out, err := l.LintString(ctx, target.source)
		if err != nil {
			return nil, err
		}
		return []*LintOutput{out}, nil
	}
	return l.LintPaths(ctx, runner.Options{Targets: []string{target.path}})
}

// LintString lints an in-memory document.
func (l *Linter) LintString(ctx context.Context, source string) (*LintOutput, error) {
	return l.lintSource(ctx, "", source), nil
}

// LintFile lints a single file.
func (l *Linter) LintFile(ctx context.Context, path string) (*LintOutput, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}

	return l.lintSource(ctx, path, string(content)), nil
}

// LintPaths discovers the MDX files named by opts and lints them
// concurrently. Outputs are returned in path order. A file that cannot be
// read is left out of the outputs and its error is joined into the
// returned error; the other files are still linted.
func (l *Linter) LintPaths(ctx context.Context, opts runner.Options) ([]*LintOutput, error) {
	if opts.Config == nil {
		opts.Config = l.config
	}
	if opts.Jobs == 0 {
		opts.Jobs = l.jobs
	}

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("discovered files", logging.FieldCount, len(files))

	result, err := runner.Run(ctx, files, opts.Jobs, l.LintFile)
	if err != nil {
		return nil, err
	}

	outputs := make([]*LintOutput, 0, len(result.Files))
	for _, f := range result.Files {
		if f.Error == nil {
			outputs = append(outputs, f.Value)
		}
	}

	return outputs, errors.Join(result.Errors()...)
}

// lintSource parses source and runs the rules over it. A document that is
// not valid MDX yields a single error-level diagnostic and no rule runs.
func (l *Linter) lintSource(ctx context.Context, path, source string) *LintOutput {
	logger := logging.FromContext(ctx)
	out := &LintOutput{FilePath: path, Content: []byte(source)}

	parsed, err := parser.Parse(source)
	if err != nil {
		logger.Debug("parse failed", logging.FieldPath, path, logging.FieldError, err)
		out.Errors = []lint.LintError{parseError(source, err)}
		return out
	}

	lctx := lint.NewContext(ctx, parsed, l.checkOnly)
	out.Errors = l.rules.Check(lctx)
	return out
}

// parseError reports a parse failure at the start of the document.
func parseError(source string, err error) lint.LintError {
	loc := geometry.LocationFromRange(geometry.NewRange(0, 0), rope.FromString(source))
	return lint.NewError(lint.DirectiveRule, lint.LevelError, err.Error(), loc).Build()
}
