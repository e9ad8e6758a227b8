package geometry

import (
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// LineRange is a half-open range of 0-based lines [Start, End). A range
// without an end runs to the end of the document.
type LineRange struct {
	Start   int  `json:"start"`
	End     int  `json:"end,omitempty"`
	Bounded bool `json:"bounded"`
}

// OpenLineRange returns [start, EOF).
func OpenLineRange(start int) LineRange {
	return LineRange{Start: start}
}

// BoundedLineRange returns [start, end).
func BoundedLineRange(start, end int) LineRange {
	return LineRange{Start: start, End: end, Bounded: true}
}

// IsOpenEnded reports whether the range runs to the end of the document.
func (l LineRange) IsOpenEnded() bool {
	return !l.Bounded
}

// ContainsLine reports whether row falls within the range.
func (l LineRange) ContainsLine(row int) bool {
	return l.Start <= row && (!l.Bounded || row < l.End)
}

// OverlapsLines reports whether the first or last line touched by rng falls
// within l.
func (l LineRange) OverlapsLines(rng AdjustedRange, r rope.Rope) bool {
	return l.ContainsLine(r.LineOfByte(rng.Start.Int())) || l.ContainsLine(r.LineOfByte(rng.End.Int()))
}

// OverlapsStrict reports whether either range starts inside the other.
// Ranges that merely touch do not overlap.
func (l LineRange) OverlapsStrict(other LineRange) bool {
	return (l.Start <= other.Start && (!l.Bounded || l.End > other.Start)) ||
		(other.Start <= l.Start && (!other.Bounded || other.End > l.Start))
}

// ExtendTo widens l so that it ends no earlier than other.
func (l LineRange) ExtendTo(other LineRange) LineRange {
	if !l.Bounded || !other.Bounded {
		return OpenLineRange(l.Start)
	}
	return BoundedLineRange(l.Start, max(l.End, other.End))
}

// Less orders ranges by start line, bounded before open-ended.
func (l LineRange) Less(other LineRange) bool {
	if l.Start != other.Start {
		return l.Start < other.Start
	}
	if l.Bounded && other.Bounded {
		return l.End < other.End
	}
	return l.Bounded && !other.Bounded
}

func (l LineRange) String() string {
	if !l.Bounded {
		return fmt.Sprintf("[%d, EOF)", l.Start)
	}
	return fmt.Sprintf("[%d, %d)", l.Start, l.End)
}
