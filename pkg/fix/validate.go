package fix

import (
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// ValidationError describes a correction that cannot be applied to a
// document.
type ValidationError struct {
	Correction Correction
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid correction %s: %s", e.Correction, e.Message)
}

// ConflictError describes two planned corrections that still overlap.
type ConflictError struct {
	First  Correction
	Second Correction
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping corrections: %s and %s", e.First, e.Second)
}

// Validate checks that every correction lies within r and on character
// boundaries. Returns the first problem found.
func Validate(corrections []Correction, r rope.Rope) error {
	for _, c := range corrections {
		start, end := c.start().Int(), c.end().Int()
		switch {
		case start < 0:
			return &ValidationError{Correction: c, Message: "start offset is negative"}
		case end < start:
			return &ValidationError{Correction: c, Message: "end offset is before start offset"}
		case end > r.Len():
			return &ValidationError{
				Correction: c,
				Message:    fmt.Sprintf("end offset %d exceeds content length %d", end, r.Len()),
			}
		case !r.IsCharBoundary(start) || !r.IsCharBoundary(end):
			return &ValidationError{Correction: c, Message: "offset splits a character"}
		}
	}
	return nil
}

// DetectConflicts checks a planned slice, ordered by descending position,
// for overlapping corrections. Inserts count as zero-width points.
func DetectConflicts(planned []Correction) error {
	for i := 1; i < len(planned); i++ {
		later, earlier := planned[i-1], planned[i]
		if earlier.end() > later.start() || Compare(earlier, later) == 0 {
			return &ConflictError{First: earlier, Second: later}
		}
	}
	return nil
}
