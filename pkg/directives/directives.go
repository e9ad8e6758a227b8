package directives

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// Sentinel errors. The first two read as sentences in diagnostics.
//
//nolint:staticcheck // User-facing messages are capitalized.
var (
	ErrMissingRule     = errors.New("Lint time configuration comments must have a rule")
	ErrUnmatchedPair   = errors.New("Unmatched configuration pair")
	ErrMissingPosition = errors.New("directive node has no position")
)

// RuleKey names the rule a directive targets. All targets every rule.
type RuleKey string

// All is the key of directives without a rule name.
const All RuleKey = ""

func (k RuleKey) String() string {
	if k == All {
		return "All rules"
	}
	return string(k)
}

// Error locates a directive problem at the 0-based row of the comment that
// caused it.
type Error struct {
	Row int
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Errors flattens the error returned by Process into located errors,
// ordered by row. Errors without a location are reported at row 0.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	list := []error{err}
	if errors.As(err, &merr) {
		list = merr.Errors
	}

	out := make([]*Error, 0, len(list))
	for _, e := range list {
		var located *Error
		if errors.As(e, &located) {
			out = append(out, located)
			continue
		}
		out = append(out, &Error{Err: e})
	}
	slices.SortStableFunc(out, func(a, b *Error) int { return a.Row - b.Row })
	return out
}

// Pair is a comment expression and the first non-comment node after it in
// document order. Next is nil for trailing comments.
type Pair struct {
	Comment *mdast.Node
	Next    *mdast.Node
}

// CollectPairs walks the tree depth first and pairs every comment
// expression with the next node that is not itself a comment. Pairs are
// returned in comment order.
func CollectPairs(root *mdast.Node) []Pair {
	var (
		pairs   []Pair
		pending []*mdast.Node
	)

	//nolint:errcheck // The callback never fails.
	mdast.Walk(root, func(n *mdast.Node) error {
		if n.Kind == mdast.KindMdxFlowExpression && IsCommentExpression(n.Value) {
			pending = append(pending, n)
			return nil
		}
		for _, c := range pending {
			pairs = append(pairs, Pair{Comment: c, Next: n})
		}
		pending = pending[:0]
		return nil
	})

	for _, c := range pending {
		pairs = append(pairs, Pair{Comment: c})
	}
	return pairs
}

// ConfigEntry is one lint-time configuration directive.
type ConfigEntry struct {
	Attributes string
	Lines      geometry.LineRange
}

// Configs holds lint-time configuration per rule name, in document order.
type Configs map[string][]ConfigEntry

// Get returns the entries for rule.
func (c Configs) Get(rule string) []ConfigEntry {
	return c[rule]
}

// Disables holds the disabled line ranges per rule key, sorted by start.
type Disables map[RuleKey][]geometry.LineRange

// DisabledFor reports whether rule is disabled at rng, either by a
// directive for all rules or by one naming the rule.
func (d Disables) DisabledFor(rule string, rng geometry.AdjustedRange, r rope.Rope) bool {
	for _, key := range []RuleKey{All, RuleKey(rule)} {
		for _, lines := range d[key] {
			if lines.OverlapsLines(rng, r) {
				return true
			}
		}
	}
	return false
}

type switchState bool

const (
	switchOn  switchState = true
	switchOff switchState = false
)

type toggle struct {
	state switchState
	lines geometry.LineRange
}

// Process reads every directive in the document. Invalid directives are
// skipped and reported in the returned error, which aggregates all problems
// found. The configs and disables built from the valid directives are
// returned either way.
func Process(result *parser.ParseResult) (Configs, Disables, error) {
	configs := Configs{}
	toggles := map[RuleKey][]toggle{}
	var errs *multierror.Error

	for _, pair := range CollectPairs(result.AST) {
		comment, ok, err := ParseComment(pair.Comment.Value)
		if err != nil {
			errs = multierror.Append(errs, &Error{Row: commentRow(result, pair.Comment), Err: err})
			continue
		}
		if !ok {
			continue
		}

		lines, err := coveredLines(result, pair, comment.NextLineOnly)
		if err != nil {
			errs = multierror.Append(errs, &Error{Row: commentRow(result, pair.Comment), Err: err})
			continue
		}

		switch comment.Kind {
		case Configure:
			configs[comment.Rule] = append(configs[comment.Rule], ConfigEntry{
				Attributes: comment.Attributes,
				Lines:      lines,
			})
		case EnableAll, EnableRule:
			toggles[comment.Key()] = append(toggles[comment.Key()], toggle{state: switchOn, lines: lines})
		case DisableAll, DisableRule:
			toggles[comment.Key()] = append(toggles[comment.Key()], toggle{state: switchOff, lines: lines})
		}
	}

	disables := Disables{}
	for key, ts := range toggles {
		ranges, err := foldToggles(key, ts)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		if len(ranges) > 0 {
			disables[key] = ranges
		}
	}

	return configs, disables, errs.ErrorOrNil()
}

func commentRow(result *parser.ParseResult, node *mdast.Node) int {
	rng, ok := result.NodeRange(node)
	if !ok {
		return 0
	}
	return geometry.PointFromOffset(rng.Start, result.Rope).Row
}

// coveredLines computes the lines a directive applies to. It starts at the
// comment's row. Directives limited to the next line end after the last
// row of the paired node.
func coveredLines(result *parser.ParseResult, pair Pair, nextLineOnly bool) (geometry.LineRange, error) {
	start, ok := result.NodeRange(pair.Comment)
	if !ok {
		return geometry.LineRange{}, fmt.Errorf("%w: %s", ErrMissingPosition, pair.Comment.Kind)
	}
	startRow := geometry.PointFromOffset(start.Start, result.Rope).Row

	if !nextLineOnly || pair.Next == nil {
		return geometry.OpenLineRange(startRow), nil
	}

	next, ok := result.NodeRange(pair.Next)
	if !ok {
		return geometry.LineRange{}, fmt.Errorf("%w: %s", ErrMissingPosition, pair.Next.Kind)
	}
	end := geometry.PointFromOffset(next.End, result.Rope)

	switch {
	case end.Column == 0:
		return geometry.BoundedLineRange(startRow, end.Row), nil
	case end.Row == result.Rope.LineLen()-1:
		return geometry.OpenLineRange(startRow), nil
	default:
		return geometry.BoundedLineRange(startRow, end.Row+1), nil
	}
}

// foldToggles pairs disables with the enables that close them.
func foldToggles(key RuleKey, ts []toggle) ([]geometry.LineRange, error) {
	slices.SortStableFunc(ts, func(a, b toggle) int {
		switch {
		case a.lines.Less(b.lines):
			return -1
		case b.lines.Less(a.lines):
			return 1
		default:
			return 0
		}
	})

	var (
		disabled []geometry.LineRange
		errs     *multierror.Error
	)

	for _, t := range ts {
		if len(disabled) == 0 {
			if t.state == switchOff {
				disabled = append(disabled, t.lines)
				continue
			}
			errs = multierror.Append(errs, unmatched(t.lines.Start,
				"%s enabled without a corresponding disable statement. This is a no-op", key))
			continue
		}

		last := &disabled[len(disabled)-1]
		if t.state == switchOn {
			if last.IsOpenEnded() {
				*last = geometry.BoundedLineRange(last.Start, t.lines.Start)
				continue
			}
			errs = multierror.Append(errs, unmatched(t.lines.Start,
				"%s enabled without a matching disable comment", key))
			continue
		}

		if last.OverlapsStrict(t.lines) {
			*last = last.ExtendTo(t.lines)
			errs = multierror.Append(errs, unmatched(t.lines.Start,
				"%s disabled twice in succession for overlapping ranges. This is probably not what you want "+
					"and can cause the effective range to be different from expected.", key))
			continue
		}
		disabled = append(disabled, t.lines)
	}

	return disabled, errs.ErrorOrNil()
}

func unmatched(row int, format string, args ...any) error {
	return &Error{
		Row: row,
		Err: fmt.Errorf("%w - %s: [Row %d]", ErrUnmatchedPair, fmt.Sprintf(format, args...), row+1),
	}
}
