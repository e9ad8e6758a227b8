package linter

import (
	"github.com/samber/lo"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

// LintOutput holds the diagnostics for one linted document.
type LintOutput struct {
	// FilePath is the linted file, or empty for an in-memory string.
	FilePath string

	// Errors lists the diagnostics in document order.
	Errors []lint.LintError

	// Content is the exact bytes that were linted. Fixing refuses to write
	// a file whose content has changed since, and reporters quote from it.
	Content []byte
}

// HasErrors reports whether any diagnostic is error level.
func (o *LintOutput) HasErrors() bool {
	return lo.SomeBy(o.Errors, func(e lint.LintError) bool { return e.Level == lint.LevelError })
}

// Fixable returns the diagnostics that carry automatic fixes.
func (o *LintOutput) Fixable() []lint.LintError {
	return lo.Filter(o.Errors, func(e lint.LintError, _ int) bool { return e.HasFix() })
}

// Counts tallies diagnostics by level across outputs.
func Counts(outputs []*LintOutput) (errs, warnings int) {
	for _, o := range outputs {
		for _, e := range o.Errors {
			switch e.Level {
			case lint.LevelError:
				errs++
			case lint.LevelWarning:
				warnings++
			}
		}
	}
	return errs, warnings
}
