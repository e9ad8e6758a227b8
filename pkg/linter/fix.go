package linter

import (
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
)

// FixResult summarises a Fix run.
type FixResult struct {
	// FilesFixed counts files that were rewritten.
	FilesFixed int

	// ErrorsFixed counts the corrections applied across all files.
	ErrorsFixed int
}

// Fix applies the automatic fixes in outputs to their files. Outputs for
// in-memory documents are skipped. A file that fails to fix does not stop
// the others; the failures are joined into the returned error.
func (l *Linter) Fix(ctx context.Context, outputs []*LintOutput) (FixResult, error) {
	logger := logging.FromContext(ctx)

	var result FixResult
	var errs []error

	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("fix cancelled: %w", err))
			break
		}

		fixable := out.Fixable()
		if len(fixable) == 0 || out.FilePath == "" {
			continue
		}

		var corrections []fix.Correction
		for _, e := range fixable {
			corrections = append(corrections, e.Fix...)
		}

		n, err := fix.FixFile(ctx, out.FilePath, out.Content, corrections)
		if err != nil {
			logger.Error("failed to fix file", logging.FieldPath, out.FilePath, logging.FieldError, err)
			errs = append(errs, err)
			continue
		}
		if n == 0 {
			continue
		}

		logger.Debug("fixed file", logging.FieldPath, out.FilePath, logging.FieldCount, n)
		result.FilesFixed++
		result.ErrorsFixed += n
	}

	return result, errors.Join(errs...)
}
