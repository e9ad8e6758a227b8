package lint

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/directives"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// Context is everything a rule may consult about the document being
// linted. It is created once per document and shared by every rule.
//
// Context stores a context.Context as a field rather than taking one per
// method: it is a short-lived parameter object scoped to one document.
type Context struct {
	// Ctx carries cancellation and the logger.
	Ctx context.Context

	// ID identifies this document for rule caches. It is regenerated for
	// every Context, so cached values never leak across documents.
	ID uuid.UUID

	// Parse is the parsed document.
	Parse *parser.ParseResult

	// Disables records the lines on which rules are turned off.
	Disables directives.Disables

	// Configs holds configure directives, keyed by rule name.
	Configs directives.Configs

	// CheckOnly restricts dispatch to the named rules when non-empty.
	CheckOnly []string

	// DirectiveErrors lists problems found while reading directives.
	DirectiveErrors []*directives.Error
}

// NewContext builds a Context for a parsed document, reading its lint
// directives. Invalid directives are recorded in DirectiveErrors; the
// valid ones still apply.
func NewContext(ctx context.Context, parse *parser.ParseResult, checkOnly []string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}

	configs, disables, err := directives.Process(parse)
	if err != nil {
		logging.FromContext(ctx).Debug("invalid lint directives", logging.FieldError, err)
	}

	return &Context{
		Ctx:             ctx,
		ID:              uuid.New(),
		Parse:           parse,
		Disables:        disables,
		Configs:         configs,
		CheckOnly:       checkOnly,
		DirectiveErrors: directives.Errors(err),
	}
}

// Logger returns the logger carried by Ctx.
func (c *Context) Logger() *log.Logger {
	return logging.FromContext(c.Ctx)
}

// Cancelled returns true if the context has been cancelled.
func (c *Context) Cancelled() bool {
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}

// Rope returns the full document.
func (c *Context) Rope() rope.Rope {
	return c.Parse.Rope
}

// AST returns the root of the document tree.
func (c *Context) AST() *mdast.Node {
	return c.Parse.AST
}

// ContentStartOffset returns the offset of the first byte after the
// frontmatter.
func (c *Context) ContentStartOffset() geometry.AdjustedOffset {
	return c.Parse.ContentStartOffset
}

// IsChecked reports whether rule runs under the CheckOnly filter.
func (c *Context) IsChecked(rule string) bool {
	return len(c.CheckOnly) == 0 || slices.Contains(c.CheckOnly, rule)
}

// NodeRange returns the absolute byte range of node.
func (c *Context) NodeRange(node *mdast.Node) (geometry.AdjustedRange, bool) {
	return c.Parse.NodeRange(node)
}

// Location resolves rng against the document.
func (c *Context) Location(rng geometry.AdjustedRange) geometry.DenormalizedLocation {
	return geometry.LocationFromRange(rng, c.Parse.Rope)
}

// LocationForNode returns the denormalized location of node.
func (c *Context) LocationForNode(node *mdast.Node) (geometry.DenormalizedLocation, bool) {
	rng, ok := c.NodeRange(node)
	if !ok {
		return geometry.DenormalizedLocation{}, false
	}
	return c.Location(rng), true
}

// SliceForNode returns the source text of node as a rope slice.
func (c *Context) SliceForNode(node *mdast.Node) (rope.Slice, bool) {
	rng, ok := c.NodeRange(node)
	if !ok {
		return rope.Slice{}, false
	}
	return c.Parse.Rope.Slice(rng.Start.Int(), rng.End.Int()), true
}

// SourceForNode returns the source text of node.
func (c *Context) SourceForNode(node *mdast.Node) (string, bool) {
	rng, ok := c.NodeRange(node)
	if !ok {
		return "", false
	}
	return c.Parse.Rope.ByteSlice(rng.Start.Int(), rng.End.Int()), true
}

// IsDisabled reports whether rule is disabled anywhere on the lines of loc.
func (c *Context) IsDisabled(rule string, loc geometry.DenormalizedLocation) bool {
	return c.Disables.DisabledFor(rule, loc.OffsetRange, c.Parse.Rope)
}
