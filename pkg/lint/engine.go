package lint

import (
	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// Check runs every active rule over the document in lctx and returns the
// diagnostics that survive the document's disable directives, preceded by
// diagnostics for invalid directives.
//
// Nodes are visited depth first; at each node the rules run in set order.
// Checking stops early if lctx.Ctx is cancelled.
func (s *RuleSet) Check(lctx *Context) []LintError {
	errs := DirectiveDiagnostics(lctx)

	active := make([]ResolvedRule, 0, len(s.rules))
	for _, r := range s.rules {
		if lctx.IsChecked(r.Rule.Name()) {
			active = append(active, r)
		}
	}
	if len(active) == 0 || lctx.AST() == nil {
		return errs
	}

	logger := lctx.Logger()

	//nolint:errcheck // The visitor only fails on cancellation, which is checked below.
	mdast.Walk(lctx.AST(), func(node *mdast.Node) error {
		if lctx.Cancelled() {
			return lctx.Ctx.Err()
		}

		for _, r := range active {
			name := r.Rule.Name()
			for _, e := range r.Rule.Check(node, lctx, r.Level) {
				if lctx.IsDisabled(name, e.Location) {
					logger.Debug("diagnostic disabled by directive", logging.FieldName, name)
					continue
				}
				errs = append(errs, e)
			}
		}
		return nil
	})

	return errs
}

// DirectiveDiagnostics converts the directive problems recorded on lctx
// into error-level diagnostics spanning the offending comment's line.
func DirectiveDiagnostics(lctx *Context) []LintError {
	if len(lctx.DirectiveErrors) == 0 {
		return nil
	}

	r := lctx.Rope()
	out := make([]LintError, 0, len(lctx.DirectiveErrors))
	for _, de := range lctx.DirectiveErrors {
		row := min(max(de.Row, 0), r.LineLen()-1)
		start := geometry.AdjustedOffset(r.ByteOfLine(row))
		end := geometry.AdjustedOffset(r.Len())
		if row+1 < r.LineLen() {
			end = geometry.AdjustedOffset(r.ByteOfLine(row + 1))
		}
		out = append(out, NewError(DirectiveRule, LevelError, de.Error(), lctx.Location(geometry.NewRange(start, end))).Build())
	}
	return out
}
