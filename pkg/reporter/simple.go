package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
)

// SimpleReporter writes one line per diagnostic followed by a summary:
//
//	<path>:<line>:<column>: [ERROR] <message>
type SimpleReporter struct {
	opts Options
}

// Report implements Reporter.
func (r *SimpleReporter) Report(_ context.Context, outputs []*linter.LintOutput) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	written := false
	for _, out := range outputs {
		path := r.opts.displayPath(out.FilePath)
		for _, e := range out.Errors {
			written = true
			fmt.Fprintf(bw, "%s:%d:%d: [%s] %s\n",
				path,
				e.Location.Start.Row+1,
				e.Location.Start.Column+1,
				simpleSeverity(e.Level),
				e.Message,
			)
		}
	}

	if written {
		fmt.Fprintln(bw)
	}

	summary := summarize(outputs)
	fmt.Fprintln(bw, summary.SourcesLine())
	fmt.Fprintln(bw, summary.StatusLine())

	return nil
}

func simpleSeverity(level lint.LintLevel) string {
	if level == lint.LevelWarning {
		return "WARN"
	}
	return "ERROR"
}
