package fix

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fsutil"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// ErrConcurrentModification is returned when a file changed on disk
// between linting and fixing.
var ErrConcurrentModification = errors.New("file modified since it was linted")

// Apply applies a plan produced by Plan to r and returns the edited rope
// with the number of corrections applied. The plan must be ordered by
// descending position.
func Apply(r rope.Rope, plan []Correction) (rope.Rope, int, error) {
	if len(plan) == 0 {
		return r, 0, nil
	}

	if err := Validate(plan, r); err != nil {
		return r, 0, err
	}
	if err := DetectConflicts(plan); err != nil {
		return r, 0, err
	}

	for _, c := range plan {
		switch c.Kind {
		case Insert:
			r = r.Insert(c.start().Int(), c.Text)
		case Delete:
			r = r.Replace(c.start().Int(), c.end().Int(), "")
		case Replace:
			r = r.Replace(c.start().Int(), c.end().Int(), c.Text)
		}
	}

	return r, len(plan), nil
}

// ApplyString plans and applies corrections to content.
func ApplyString(content string, corrections []Correction) (string, int, error) {
	r, n, err := Apply(rope.FromString(content), Plan(corrections))
	if err != nil {
		return content, 0, err
	}
	return r.String(), n, nil
}

// FixFile plans and applies corrections to the file at path and writes the
// result atomically. When linted is non-nil the file must still hold
// exactly those bytes, otherwise ErrConcurrentModification is returned and
// nothing is written. Returns the number of corrections applied.
func FixFile(ctx context.Context, path string, linted []byte, corrections []Correction) (int, error) {
	if len(corrections) == 0 {
		return 0, nil
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("read %s for fixing: %w", path, err)
	}
	if linted != nil && !bytes.Equal(content, linted) {
		return 0, fmt.Errorf("%w: %s", ErrConcurrentModification, path)
	}

	fixed, n, err := Apply(rope.FromString(string(content)), Plan(corrections))
	if err != nil {
		return 0, fmt.Errorf("apply corrections to %s: %w", path, err)
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return 0, fmt.Errorf("check %s before writing: %w", path, err)
	}
	if modified {
		return 0, fmt.Errorf("%w: %s", ErrConcurrentModification, path)
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(fixed.String()), info.Mode.Perm()); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	return n, nil
}
