package rules

import "github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"

//nolint:gochecknoinits // Built-in rules register with the default registry on import.
func init() {
	RegisterAll(lint.DefaultRegistry)
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, factory := range Factories() {
		registry.Register(factory)
	}
}

// Factories returns the constructors of all built-in rules, in rule order.
func Factories() []lint.Factory {
	return []lint.Factory{
		func() lint.Rule { return NewHeadingCaseRule() },        // Rule001
		func() lint.Rule { return NewAdmonitionTypesRule() },    // Rule002
		func() lint.Rule { return NewSpellingRule() },           // Rule003
		func() lint.Rule { return NewExcludeWordsRule() },       // Rule004
		func() lint.Rule { return NewAdmonitionNewlinesRule() }, // Rule005
		func() lint.Rule { return NewNoAbsoluteURLsRule() },     // Rule006
	}
}
