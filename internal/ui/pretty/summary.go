package pretty

import "fmt"

// Summary counts what a run linted and found.
type Summary struct {
	Sources  int
	Errors   int
	Warnings int
}

// SourcesLine reports how many sources were linted.
func (s Summary) SourcesLine() string {
	return fmt.Sprintf("🔍 %d source%s linted", s.Sources, plural(s.Sources))
}

// StatusLine reports the diagnostic counts.
func (s Summary) StatusLine() string {
	switch {
	case s.Errors == 0 && s.Warnings == 0:
		return "🟢 No errors or warnings found"
	case s.Errors == 0:
		return fmt.Sprintf("🟡 Found %d warning%s", s.Warnings, plural(s.Warnings))
	case s.Warnings == 0:
		return fmt.Sprintf("🔴 Found %d error%s", s.Errors, plural(s.Errors))
	default:
		return fmt.Sprintf("🔴 Found %d error%s and %d warning%s",
			s.Errors, plural(s.Errors), s.Warnings, plural(s.Warnings))
	}
}

// FormatSummary renders both summary lines.
func (st *Styles) FormatSummary(s Summary) string {
	status := st.Success
	switch {
	case s.Errors > 0:
		status = st.Failure
	case s.Warnings > 0:
		status = st.Warning
	}
	return st.Dim.Render(s.SourcesLine()) + "\n" + status.Render(s.StatusLine()) + "\n"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
