// Package geometry defines the offset, point and range types shared by the
// parser, the rules and the fix planner.
//
// All offsets are AdjustedOffsets: byte indices into the full original
// document, frontmatter included. AST positions are relative to the content
// after the frontmatter and are converted with FromUnist.
package geometry

import (
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// AdjustedOffset is a byte offset into the full source document.
type AdjustedOffset int

// FromUnist converts an AST offset, relative to the post-frontmatter
// content, into an AdjustedOffset.
func FromUnist(offset int, contentStart AdjustedOffset) AdjustedOffset {
	return AdjustedOffset(offset) + contentStart
}

// Add returns o shifted by n bytes.
func (o AdjustedOffset) Add(n int) AdjustedOffset {
	return o + AdjustedOffset(n)
}

// Inc returns the next offset.
func (o AdjustedOffset) Inc() AdjustedOffset {
	return o + 1
}

// Int returns the offset as a plain int for rope calls.
func (o AdjustedOffset) Int() int {
	return int(o)
}

// AdjustedPoint is a 0-based (row, column) pair. Column counts bytes from the
// start of the row.
type AdjustedPoint struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// PointFromOffset resolves offset against r.
func PointFromOffset(offset AdjustedOffset, r rope.Rope) AdjustedPoint {
	row, col := r.LineColumnOfByte(offset.Int())
	return AdjustedPoint{Row: row, Column: col}
}

// Offset converts the point back to a byte offset.
func (p AdjustedPoint) Offset(r rope.Rope) AdjustedOffset {
	return AdjustedOffset(r.ByteOfLine(p.Row) + p.Column)
}

// Less orders points by row then column.
func (p AdjustedPoint) Less(other AdjustedPoint) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

func (p AdjustedPoint) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}
