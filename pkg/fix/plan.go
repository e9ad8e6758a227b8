package fix

import (
	"cmp"
	"slices"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
)

// Compare orders corrections by position. It returns 0 when two
// corrections conflict, which the planner treats as a collision to
// resolve rather than a tie.
//
// An insert conflicts with a delete or replace whose range contains the
// insertion point. Two range edits conflict when they overlap.
func Compare(a, b Correction) int {
	switch {
	case a.Kind == Insert && b.Kind == Insert:
		return cmp.Compare(a.start(), b.start())
	case a.Kind == Insert:
		return compareInsert(a, b)
	case b.Kind == Insert:
		return -compareInsert(b, a)
	}

	if a.start() > b.start() {
		return -Compare(b, a)
	}
	if a.start() == b.start() || a.end() > b.start() {
		return 0
	}
	return -1
}

func compareInsert(ins, rng Correction) int {
	if rng.start() <= ins.start() && ins.start() < rng.end() {
		return 0
	}
	return cmp.Compare(ins.start(), rng.start())
}

// ChooseOrMerge resolves two conflicting corrections. It returns false when
// neither can be kept.
//
//	Insert / Insert    reject both
//	Insert / Delete    keep the delete
//	Insert / Replace   keep the replace
//	Delete / Delete    merge into the span covering both
//	Delete / Replace   keep the one strictly containing the other
//	Replace / Replace  keep the one strictly containing the other
func ChooseOrMerge(a, b Correction) (Correction, bool) {
	switch {
	case a.Kind == Insert && b.Kind == Insert:
		return Correction{}, false
	case a.Kind == Insert:
		return b, true
	case b.Kind == Insert:
		return a, true
	case a.Kind == Delete && b.Kind == Delete:
		return mergeDeletes(a, b), true
	}

	switch {
	case b.Range().StrictlyContains(a.Range()):
		return b, true
	case a.Range().StrictlyContains(b.Range()):
		return a, true
	default:
		return Correction{}, false
	}
}

func mergeDeletes(a, b Correction) Correction {
	loc := geometry.DenormalizedLocation{
		OffsetRange: geometry.SpanBetween(a.Range(), b.Range()),
		Start:       a.Location.Start,
		End:         a.Location.End,
	}
	if b.start() < a.start() {
		loc.Start = b.Location.Start
	}
	if b.end() > a.end() {
		loc.End = b.Location.End
	}
	return NewDelete(loc)
}

// byPosition is a strict refinement of Compare used for sorting: conflicting
// corrections are ordered by start, then end, then kind.
func byPosition(a, b Correction) int {
	return cmp.Or(
		cmp.Compare(a.start(), b.start()),
		cmp.Compare(a.end(), b.end()),
		cmp.Compare(a.Kind, b.Kind),
	)
}

// Plan sorts corrections and resolves conflicts. The result is ordered by
// descending position and contains no two overlapping corrections, so it
// can be applied front to back without invalidating later offsets.
func Plan(corrections []Correction) []Correction {
	if len(corrections) == 0 {
		return nil
	}

	sorted := slices.Clone(corrections)
	slices.SortStableFunc(sorted, byPosition)

	planned := make([]Correction, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		candidate := sorted[i]
		keep := true

		for len(planned) > 0 {
			last := planned[len(planned)-1]
			if Compare(last, candidate) != 0 {
				break
			}
			planned = planned[:len(planned)-1]

			resolved, ok := ChooseOrMerge(last, candidate)
			if !ok {
				keep = false
				break
			}
			candidate = resolved
		}

		if keep {
			planned = append(planned, candidate)
		}
	}

	return planned
}
