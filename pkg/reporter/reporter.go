// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/ui/pretty"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given outputs.
	Report(ctx context.Context, outputs []*linter.LintOutput) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatSimple
	}

	switch format {
	case config.FormatSimple:
		return &SimpleReporter{opts: opts}, nil
	case config.FormatRDF:
		return &RDFReporter{opts: opts}, nil
	case config.FormatMarkdown:
		return &MarkdownReporter{opts: opts}, nil
	case config.FormatPretty:
		return NewPrettyReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// summarize counts distinct sources and diagnostics by level.
func summarize(outputs []*linter.LintOutput) pretty.Summary {
	errs, warnings := linter.Counts(outputs)
	sources := lo.UniqBy(outputs, func(o *linter.LintOutput) string { return o.FilePath })
	return pretty.Summary{Sources: len(sources), Errors: errs, Warnings: warnings}
}

// flush flushes bw into err unless err is already set.
func flush(bw *bufio.Writer, err *error) {
	if flushErr := bw.Flush(); *err == nil && flushErr != nil {
		*err = fmt.Errorf("write report: %w", flushErr)
	}
}
