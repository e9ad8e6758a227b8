package geometry

import (
	"fmt"
	"slices"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// AdjustedRange is a half-open byte range [Start, End).
type AdjustedRange struct {
	Start AdjustedOffset `json:"start"`
	End   AdjustedOffset `json:"end"`
}

// NewRange builds a range, panicking on inverted bounds.
func NewRange(start, end AdjustedOffset) AdjustedRange {
	if end < start {
		panic(fmt.Sprintf("geometry: invalid range [%d, %d)", start, end))
	}
	return AdjustedRange{Start: start, End: end}
}

// SpanBetween returns the smallest range covering both a and b.
func SpanBetween(a, b AdjustedRange) AdjustedRange {
	return AdjustedRange{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}

// Len returns the number of bytes covered.
func (r AdjustedRange) Len() int {
	return int(r.End - r.Start)
}

// IsEmpty reports whether the range covers no bytes.
func (r AdjustedRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies in [Start, End).
func (r AdjustedRange) Contains(offset AdjustedOffset) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsRange reports whether other lies entirely within r.
func (r AdjustedRange) ContainsRange(other AdjustedRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// StrictlyContains reports whether r extends past other on both sides.
func (r AdjustedRange) StrictlyContains(other AdjustedRange) bool {
	return r.Start < other.Start && other.End < r.End
}

// Overlaps reports whether the ranges share at least one byte.
func (r AdjustedRange) Overlaps(other AdjustedRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// OverlapsOrAbuts reports whether the ranges overlap or touch.
func (r AdjustedRange) OverlapsOrAbuts(other AdjustedRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

func (r AdjustedRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// DenormalizedLocation carries a range together with its resolved points so
// consumers do not need the rope.
type DenormalizedLocation struct {
	OffsetRange AdjustedRange `json:"offset_range"`
	Start       AdjustedPoint `json:"start"`
	End         AdjustedPoint `json:"end"`
}

// LocationFromRange resolves rng against r.
func LocationFromRange(rng AdjustedRange, r rope.Rope) DenormalizedLocation {
	return DenormalizedLocation{
		OffsetRange: rng,
		Start:       PointFromOffset(rng.Start, r),
		End:         PointFromOffset(rng.End, r),
	}
}

// LocationFromOffsets is shorthand for LocationFromRange(NewRange(start, end), r).
func LocationFromOffsets(start, end AdjustedOffset, r rope.Rope) DenormalizedLocation {
	return LocationFromRange(NewRange(start, end), r)
}

// RangeSet is a sorted set of non-overlapping ranges. Ranges that overlap or
// touch are merged on insertion.
type RangeSet struct {
	ranges []AdjustedRange
}

// Push adds rng to the set.
func (s *RangeSet) Push(rng AdjustedRange) {
	idx, _ := slices.BinarySearchFunc(s.ranges, rng, func(a, b AdjustedRange) int {
		return int(a.Start - b.Start)
	})

	lo := idx
	for lo > 0 && s.ranges[lo-1].OverlapsOrAbuts(rng) {
		lo--
	}
	hi := idx
	for hi < len(s.ranges) && s.ranges[hi].OverlapsOrAbuts(rng) {
		hi++
	}

	merged := rng
	for _, existing := range s.ranges[lo:hi] {
		merged = SpanBetween(merged, existing)
	}
	s.ranges = slices.Replace(s.ranges, lo, hi, merged)
}

// Ranges returns the merged ranges in order.
func (s *RangeSet) Ranges() []AdjustedRange {
	return slices.Clone(s.ranges)
}

// Len returns the number of disjoint ranges.
func (s *RangeSet) Len() int {
	return len(s.ranges)
}

// Overlaps reports whether any member shares a byte with rng.
func (s *RangeSet) Overlaps(rng AdjustedRange) bool {
	for _, r := range s.ranges {
		if r.Overlaps(rng) {
			return true
		}
		if r.Start >= rng.End {
			break
		}
	}
	return false
}

// CompletelyContains reports whether a single member covers all of rng.
func (s *RangeSet) CompletelyContains(rng AdjustedRange) bool {
	for _, r := range s.ranges {
		if r.ContainsRange(rng) {
			return true
		}
		if r.Start > rng.Start {
			break
		}
	}
	return false
}
