package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
)

// RDFReporter writes Reviewdog Diagnostic Format lines (rdjsonl), one JSON
// object per diagnostic.
type RDFReporter struct {
	opts Options
}

type rdfDiagnostic struct {
	Message     string          `json:"message"`
	Location    rdfLocation     `json:"location"`
	Severity    string          `json:"severity"`
	Suggestions []rdfSuggestion `json:"suggestions,omitempty"`
}

type rdfLocation struct {
	Path  string   `json:"path"`
	Range rdfRange `json:"range"`
}

type rdfRange struct {
	Start rdfPosition `json:"start"`
	End   rdfPosition `json:"end"`
}

type rdfPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type rdfSuggestion struct {
	Range rdfRange `json:"range"`
	Text  string   `json:"text"`
}

// Report implements Reporter.
func (r *RDFReporter) Report(_ context.Context, outputs []*linter.LintOutput) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer flush(bw, &err)

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for _, out := range outputs {
		path := r.opts.displayPath(out.FilePath)
		for i := range out.Errors {
			if err := enc.Encode(r.diagnostic(path, &out.Errors[i])); err != nil {
				return fmt.Errorf("encode diagnostic: %w", err)
			}
		}
	}

	return nil
}

func (r *RDFReporter) diagnostic(path string, e *lint.LintError) rdfDiagnostic {
	message := fmt.Sprintf("[%s] %s", e.Rule, e.Message)
	if source, ok := r.opts.Config.RuleSource(e.Rule); ok {
		message += fmt.Sprintf(" (configure rule at %s)", source)
	}

	return rdfDiagnostic{
		Message:  message,
		Location: rdfLocation{Path: path, Range: toRDFRange(e.Location)},
		Severity: rdfSeverity(e.Level),
		Suggestions: lo.Map(e.CombinedSuggestions(), func(c fix.Correction, _ int) rdfSuggestion {
			text := c.Text
			if c.Kind == fix.Delete {
				text = ""
			}
			return rdfSuggestion{Range: toRDFRange(c.Location), Text: text}
		}),
	}
}

func toRDFRange(loc geometry.DenormalizedLocation) rdfRange {
	return rdfRange{
		Start: rdfPosition{Line: loc.Start.Row + 1, Column: loc.Start.Column + 1},
		End:   rdfPosition{Line: loc.End.Row + 1, Column: loc.End.Column + 1},
	}
}

func rdfSeverity(level lint.LintLevel) string {
	if level == lint.LevelWarning {
		return "WARNING"
	}
	return "ERROR"
}
