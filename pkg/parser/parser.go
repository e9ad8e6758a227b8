// Package parser turns an MDX document into a ParseResult: the document
// rope, any frontmatter, and the mdast tree of the content that follows it.
package parser

import (
	"errors"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/parser/mdx"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// ErrInvalidMDX is returned when the document content is not valid MDX.
var ErrInvalidMDX = errors.New("invalid MDX")

// ParseResult holds everything the rules need from a parsed document.
type ParseResult struct {
	// AST is the tree of the content after the frontmatter. Node positions
	// are relative to ContentStartOffset.
	AST *mdast.Node

	// Rope holds the full document, frontmatter included.
	Rope rope.Rope

	// ContentStartOffset is where the content parsed into AST begins.
	ContentStartOffset geometry.AdjustedOffset

	// Frontmatter is nil when the document has none.
	Frontmatter *Frontmatter
}

//nolint:gochecknoglobals // The goldmark instance is immutable and shared.
var defaultParser = mdx.New()

// Parse parses an MDX document.
func Parse(input string) (*ParseResult, error) {
	r := rope.FromString(input)
	frontmatter, contentStart := extractFrontmatter(input)

	ast, err := defaultParser.Parse([]byte(input[contentStart:]))
	if err != nil {
		var syntaxErr *mdx.SyntaxError
		if errors.As(err, &syntaxErr) {
			offset := geometry.FromUnist(syntaxErr.Offset, geometry.AdjustedOffset(contentStart))
			point := geometry.PointFromOffset(offset, r)
			return nil, fmt.Errorf("%w: %s (%d:%d)", ErrInvalidMDX, syntaxErr.Message, point.Row+1, point.Column+1)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidMDX, err)
	}

	return &ParseResult{
		AST:                ast,
		Rope:               r,
		ContentStartOffset: geometry.AdjustedOffset(contentStart),
		Frontmatter:        frontmatter,
	}, nil
}

// Root returns the AST root.
func (p *ParseResult) Root() *mdast.Node {
	return p.AST
}

// NodeRange returns the absolute range of a node, or false if the node has
// no position.
func (p *ParseResult) NodeRange(node *mdast.Node) (geometry.AdjustedRange, bool) {
	if node == nil || node.Position == nil {
		return geometry.AdjustedRange{}, false
	}
	return geometry.NewRange(
		geometry.FromUnist(node.Position.Start, p.ContentStartOffset),
		geometry.FromUnist(node.Position.End, p.ContentStartOffset),
	), true
}
