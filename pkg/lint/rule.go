// Package lint provides the rule engine for supa-mdx-lint: the Rule
// interface, rule settings, the registry of built-in rules, per-document
// contexts and dispatch over the AST.
package lint

import (
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// Rule defines the interface that all lint rules implement.
//
// A rule is set up once per run with its configured settings and is then
// read-only, so one instance can check many documents concurrently. Any
// per-document state lives in local variables of Check or in caches keyed
// by Context.ID.
type Rule interface {
	// Name returns the stable identifier of the rule (e.g. "Rule001HeadingCase").
	Name() string

	// Description returns a short description of what the rule checks.
	Description() string

	// DefaultLevel returns the level used when none is configured.
	DefaultLevel() LintLevel

	// Setup configures the rule. settings is never nil; rules without
	// configuration see empty settings.
	Setup(settings *RuleSettings) error

	// Check is called for every node of the document, depth first, and
	// returns the diagnostics for that node.
	Check(node *mdast.Node, ctx *Context, level LintLevel) []LintError
}

// Factory creates a fresh, unconfigured rule.
type Factory func() Rule
