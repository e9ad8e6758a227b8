package lint

import (
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// DirectiveRule is the rule name reported for problems with lint
// directives themselves.
const DirectiveRule = "supa-mdx-lint"

// LintError is a single diagnostic. It holds no references into the
// document so it outlives the Context that produced it.
//
//nolint:revive // LintError is the name used throughout the output formats.
type LintError struct {
	// Rule is the name of the rule that produced the diagnostic.
	Rule string

	Level   LintLevel
	Message string

	// Location is where the problem is.
	Location geometry.DenormalizedLocation

	// Fix holds corrections applied automatically by --fix.
	Fix []fix.Correction

	// Suggestions holds corrections offered to the user but never applied
	// automatically.
	Suggestions []fix.Correction
}

// HasFix reports whether the diagnostic can be fixed automatically.
func (e *LintError) HasFix() bool {
	return len(e.Fix) > 0
}

// CombinedSuggestions returns the fixes followed by the suggestions.
func (e *LintError) CombinedSuggestions() []fix.Correction {
	if len(e.Fix) == 0 && len(e.Suggestions) == 0 {
		return nil
	}
	out := make([]fix.Correction, 0, len(e.Fix)+len(e.Suggestions))
	out = append(out, e.Fix...)
	return append(out, e.Suggestions...)
}

// ErrorBuilder helps construct LintError values.
type ErrorBuilder struct {
	err LintError
}

// NewError starts building a diagnostic for rule at loc.
func NewError(rule string, level LintLevel, message string, loc geometry.DenormalizedLocation) *ErrorBuilder {
	return &ErrorBuilder{err: LintError{
		Rule:     rule,
		Level:    level,
		Message:  message,
		Location: loc,
	}}
}

// NewErrorForNode starts building a diagnostic located at node. It returns
// nil when the node has no position.
func NewErrorForNode(ctx *Context, rule string, level LintLevel, message string, node *mdast.Node) *ErrorBuilder {
	loc, ok := ctx.LocationForNode(node)
	if !ok {
		return nil
	}
	return NewError(rule, level, message, loc)
}

// WithFix appends automatic corrections.
func (b *ErrorBuilder) WithFix(corrections ...fix.Correction) *ErrorBuilder {
	b.err.Fix = append(b.err.Fix, corrections...)
	return b
}

// WithSuggestions appends suggested corrections.
func (b *ErrorBuilder) WithSuggestions(corrections ...fix.Correction) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, corrections...)
	return b
}

// Build returns the constructed LintError.
func (b *ErrorBuilder) Build() LintError {
	return b.err
}
