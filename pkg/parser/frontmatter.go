package parser

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
)

const frontmatterFence = "---"

// FrontmatterFormat identifies how frontmatter was decoded.
type FrontmatterFormat string

// Frontmatter formats.
const (
	FormatTOML    FrontmatterFormat = "toml"
	FormatYAML    FrontmatterFormat = "yaml"
	FormatUnknown FrontmatterFormat = ""
)

// Frontmatter is the metadata block at the top of a document.
type Frontmatter struct {
	// Range covers the text between the fences.
	Range geometry.AdjustedRange

	// Raw is the text between the fences.
	Raw string

	// Format is FormatUnknown when the text decodes as neither TOML nor YAML.
	Format FrontmatterFormat

	// Data is the decoded value, nil when Format is FormatUnknown.
	Data map[string]any
}

// extractFrontmatter finds a frontmatter block and returns it together with
// the offset at which the document content starts. The content starts after
// the closing fence and any whitespace that follows it.
func extractFrontmatter(input string) (*Frontmatter, int) {
	if !strings.HasPrefix(strings.TrimLeft(input, " \t\r\n"), frontmatterFence) {
		return nil, 0
	}

	open := strings.Index(input, frontmatterFence)
	bodyStart := open + len(frontmatterFence)
	closing := strings.Index(input[bodyStart:], frontmatterFence)
	if closing < 0 {
		return nil, 0
	}
	bodyEnd := bodyStart + closing

	raw := input[bodyStart:bodyEnd]
	fm := &Frontmatter{
		Range: geometry.NewRange(geometry.AdjustedOffset(bodyStart), geometry.AdjustedOffset(bodyEnd)),
		Raw:   raw,
	}
	fm.Format, fm.Data = decodeFrontmatter(raw)

	contentStart := bodyEnd + len(frontmatterFence)
	for contentStart < len(input) && isWhitespace(input[contentStart]) {
		contentStart++
	}

	return fm, contentStart
}

// decodeFrontmatter tries TOML first, then YAML.
func decodeFrontmatter(raw string) (FrontmatterFormat, map[string]any) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(raw), &data); err == nil {
		return FormatTOML, data
	}

	data = nil
	if err := yaml.Unmarshal([]byte(raw), &data); err == nil && data != nil {
		return FormatYAML, data
	}

	return FormatUnknown, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
