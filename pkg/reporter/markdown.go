package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// MarkdownReporter writes a Markdown document with a section per file,
// suited to pull request comments.
type MarkdownReporter struct {
	opts Options
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(_ context.Context, outputs []*linter.LintOutput) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	bw.WriteString("# supa-mdx-lint results\n\n")

	for _, out := range outputs {
		if len(out.Errors) == 0 {
			continue
		}
		fmt.Fprintf(bw, "## %s\n\n", r.opts.displayPath(out.FilePath))

		content := rope.FromString(string(out.Content))
		for i := range out.Errors {
			writeMarkdownError(bw, content, &out.Errors[i])
		}
	}

	summary := summarize(outputs)
	bw.WriteString("## Summary\n\n")
	fmt.Fprintf(bw, "- 🤖 %d file%s linted\n", summary.Sources, plural(summary.Sources))
	fmt.Fprintf(bw, "- 🚨 %d error%s\n", summary.Errors, plural(summary.Errors))
	fmt.Fprintf(bw, "- 🔔 %d warning%s\n", summary.Warnings, plural(summary.Warnings))

	return nil
}

func writeMarkdownError(bw *bufio.Writer, content rope.Rope, e *lint.LintError) {
	heading := "Error"
	if e.Level == lint.LevelWarning {
		heading = "Warning"
	}
	fmt.Fprintf(bw, "### %s\n\n", heading)

	bw.WriteString("```\n")
	bw.WriteString(snippet(content, e.Location.Start.Row, e.Location.End.Row))
	bw.WriteString("```\n")
	fmt.Fprintf(bw, "%s\n\n", e.Message)

	if recs := e.CombinedSuggestions(); len(recs) > 0 {
		bw.WriteString("### Recommendations\n\n")
		width := len(strconv.Itoa(len(recs)))
		for i, c := range recs {
			fmt.Fprintf(bw, "%*d. %s\n", width, i+1, recommendation(c))
		}
	}
	bw.WriteString("\n")
}

// snippet renders the rows from start through one past end, numbered.
func snippet(content rope.Rope, start, end int) string {
	last := min(end+1, content.LineLen()-1)
	start = min(start, last)
	width := len(strconv.Itoa(last + 1))

	var b strings.Builder
	for row := start; row <= last; row++ {
		line := strings.TrimRight(content.Line(row).String(), "\r\n")
		fmt.Fprintf(&b, "%*d | %s\n", width, row+1, line)
	}
	return b.String()
}

func recommendation(c fix.Correction) string {
	start, end := c.Location.Start, c.Location.End
	switch c.Kind {
	case fix.Insert:
		return fmt.Sprintf("Insert the following text at row %d, column %d: `%s`",
			start.Row+1, start.Column+1, escapeBackticks(c.Text))
	case fix.Delete:
		return fmt.Sprintf("Delete the text from row %d, column %d to row %d, column %d",
			start.Row+1, start.Column+1, end.Row+1, end.Column+1)
	default:
		return fmt.Sprintf("Replace the text from row %d, column %d to row %d, column %d with `%s`",
			start.Row+1, start.Column+1, end.Row+1, end.Column+1, escapeBackticks(c.Text))
	}
}

func escapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
