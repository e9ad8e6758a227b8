package reporter

import (
	"bufio"
	"context"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/ui/pretty"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// PrettyReporter writes styled diagnostics with source excerpts for
// terminals.
type PrettyReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
}

// NewPrettyReporter creates a pretty reporter. Color follows opts.Color,
// NO_COLOR and whether the writer is a terminal.
func NewPrettyReporter(opts Options) *PrettyReporter {
	return &PrettyReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		width:  pretty.TerminalWidth(opts.Writer),
	}
}

// Report implements Reporter.
func (r *PrettyReporter) Report(_ context.Context, outputs []*linter.LintOutput) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	written := false
	for _, out := range outputs {
		if len(out.Errors) == 0 {
			continue
		}

		path := r.opts.displayPath(out.FilePath)
		content := rope.FromString(string(out.Content))
		for i := range out.Errors {
			if written {
				bw.WriteString("\n")
			}
			written = true

			e := &out.Errors[i]
			bw.WriteString(r.styles.FormatDiagnostic(path, e, excerpt(content, e), r.width))
		}
	}

	if written {
		bw.WriteString("\n")
	}
	bw.WriteString(r.styles.FormatSummary(summarize(outputs)))

	return nil
}

// excerpt extracts the line a diagnostic starts on.
func excerpt(content rope.Rope, e *lint.LintError) *pretty.Excerpt {
	row := e.Location.Start.Row
	if row < 0 || row >= content.LineLen() {
		return nil
	}

	line := strings.TrimRight(content.Line(row).String(), "\r\n")
	length := len(line) - e.Location.Start.Column
	if e.Location.End.Row == row {
		length = e.Location.End.Column - e.Location.Start.Column
	}

	return &pretty.Excerpt{
		Line:   line,
		Row:    row,
		Column: e.Location.Start.Column,
		Length: length,
	}
}
