// Package fix provides the correction types proposed by rules and the
// planner that turns them into a conflict-free set of edits.
package fix

import (
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// Kind identifies the edit a Correction performs.
type Kind uint8

const (
	// Insert adds Text at the start of the location.
	Insert Kind = iota
	// Delete removes the bytes covered by the location.
	Delete
	// Replace substitutes Text for the bytes covered by the location.
	Replace
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Correction is a single edit proposed by a rule. Locations are
// denormalized so a correction can be reported without the rope.
type Correction struct {
	Kind     Kind
	Location geometry.DenormalizedLocation

	// Text is the inserted or replacement text. Empty for Delete.
	Text string
}

// NewInsert builds a correction inserting text at loc's start.
func NewInsert(loc geometry.DenormalizedLocation, text string) Correction {
	loc.OffsetRange.End = loc.OffsetRange.Start
	loc.End = loc.Start
	return Correction{Kind: Insert, Location: loc, Text: text}
}

// NewDelete builds a correction deleting loc.
func NewDelete(loc geometry.DenormalizedLocation) Correction {
	return Correction{Kind: Delete, Location: loc}
}

// NewReplace builds a correction replacing loc with text.
func NewReplace(loc geometry.DenormalizedLocation, text string) Correction {
	return Correction{Kind: Replace, Location: loc, Text: text}
}

// Range returns the byte range the correction touches. Inserts are empty
// ranges at their insertion point.
func (c Correction) Range() geometry.AdjustedRange {
	return c.Location.OffsetRange
}

func (c Correction) start() geometry.AdjustedOffset {
	return c.Location.OffsetRange.Start
}

func (c Correction) end() geometry.AdjustedOffset {
	return c.Location.OffsetRange.End
}

func (c Correction) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("insert %q at %d", c.Text, c.start())
	case Delete:
		return fmt.Sprintf("delete %s", c.Range())
	default:
		return fmt.Sprintf("replace %s with %q", c.Range(), c.Text)
	}
}

// Builder accumulates corrections against a rope, resolving byte offsets
// into denormalized locations.
type Builder struct {
	rope        rope.Rope
	corrections []Correction
}

// NewBuilder creates a Builder for r.
func NewBuilder(r rope.Rope) *Builder {
	return &Builder{rope: r}
}

// Replace adds a correction replacing [start, end) with text.
func (b *Builder) Replace(start, end geometry.AdjustedOffset, text string) *Builder {
	b.corrections = append(b.corrections,
		NewReplace(geometry.LocationFromOffsets(start, end, b.rope), text))
	return b
}

// Insert adds a correction inserting text at offset.
func (b *Builder) Insert(offset geometry.AdjustedOffset, text string) *Builder {
	b.corrections = append(b.corrections,
		NewInsert(geometry.LocationFromOffsets(offset, offset, b.rope), text))
	return b
}

// Delete adds a correction deleting [start, end).
func (b *Builder) Delete(start, end geometry.AdjustedOffset) *Builder {
	b.corrections = append(b.corrections,
		NewDelete(geometry.LocationFromOffsets(start, end, b.rope)))
	return b
}

// Corrections returns the accumulated corrections.
func (b *Builder) Corrections() []Correction {
	return b.corrections
}

// Len returns the number of accumulated corrections.
func (b *Builder) Len() int {
	return len(b.corrections)
}
