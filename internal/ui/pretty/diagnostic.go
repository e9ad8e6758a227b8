package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

const (
	tabWidth = 4
	ellipsis = "…"
)

// Excerpt is the source line a diagnostic starts on.
type Excerpt struct {
	// Line is the text of the line without its line break.
	Line string

	// Row is the 0-based line number.
	Row int

	// Column is the 0-based byte column where the diagnostic starts.
	Column int

	// Length is the number of bytes the diagnostic covers on this line.
	Length int
}

// FormatDiagnostic renders a diagnostic with a source excerpt whose
// underline is aligned by display width. The excerpt is clipped to width
// columns; zero means no limit.
func (s *Styles) FormatDiagnostic(path string, e *lint.LintError, excerpt *Excerpt, width int) string {
	var b strings.Builder

	b.WriteString(s.FormatSeverity(e.Level))
	b.WriteString(s.RuleID.Render("[" + e.Rule + "]"))
	b.WriteString(": ")
	b.WriteString(s.Message.Render(e.Message))
	b.WriteString("\n")

	row, col := e.Location.Start.Row+1, e.Location.Start.Column+1
	gutterWidth := 1
	if excerpt != nil {
		gutterWidth = len(strconv.Itoa(excerpt.Row + 1))
	}
	pad := strings.Repeat(" ", gutterWidth)

	b.WriteString(pad + s.Gutter.Render("--> "))
	b.WriteString(s.Location.Render(fmt.Sprintf("%s:%d:%d", path, row, col)))
	b.WriteString("\n")

	if excerpt != nil {
		b.WriteString(s.formatExcerpt(excerpt, gutterWidth, width))
	}

	for _, c := range e.CombinedSuggestions() {
		b.WriteString(pad + s.Gutter.Render(" = ") + s.Suggestion.Render(describeCorrection(c)) + "\n")
	}

	return b.String()
}

// FormatSeverity returns a styled severity label.
func (s *Styles) FormatSeverity(level lint.LintLevel) string {
	switch level {
	case lint.LevelError:
		return s.Error.Render("error")
	case lint.LevelWarning:
		return s.Warning.Render("warning")
	default:
		return level.String()
	}
}

func (s *Styles) formatExcerpt(x *Excerpt, gutterWidth, width int) string {
	var b strings.Builder

	bar := s.Gutter.Render(" | ")
	blank := strings.Repeat(" ", gutterWidth)
	number := fmt.Sprintf("%*d", gutterWidth, x.Row+1)

	col := clamp(x.Column, 0, len(x.Line))
	end := clamp(col+x.Length, col, len(x.Line))

	prefix := expandTabs(x.Line[:col])
	covered := expandTabs(x.Line[col:end])
	line := expandTabs(x.Line)

	offset := uniseg.StringWidth(prefix)
	span := max(1, uniseg.StringWidth(covered))

	if width > 0 {
		avail := width - gutterWidth - len(" | ")
		line = truncate(line, avail)
		if offset >= avail {
			offset = max(0, avail-1)
		}
		span = clamp(span, 1, max(1, avail-offset))
	}

	b.WriteString(blank + bar + "\n")
	b.WriteString(s.Gutter.Render(number) + bar + s.SourceLine.Render(line) + "\n")
	b.WriteString(blank + bar + strings.Repeat(" ", offset) + s.Underline.Render(strings.Repeat("^", span)+" here") + "\n")

	return b.String()
}

// describeCorrection phrases a correction as advice.
func describeCorrection(c fix.Correction) string {
	switch c.Kind {
	case fix.Insert:
		return fmt.Sprintf("insert %q", c.Text)
	case fix.Delete:
		return "delete this text"
	default:
		return fmt.Sprintf("replace with %q", c.Text)
	}
}

// truncate shortens s to at most w display columns, marking the cut with
// an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 || uniseg.StringWidth(s) <= w {
		return s
	}

	var b strings.Builder
	used := 0
	limit := w - uniseg.StringWidth(ellipsis)
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+cw > limit {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	b.WriteString(ellipsis)
	return b.String()
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
