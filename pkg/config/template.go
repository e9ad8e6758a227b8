package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// DefaultFileName is the configuration file looked up in the working
// directory when no --config flag is given.
const DefaultFileName = "supa-mdx-lint.config.toml"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation and example settings.
	// If false, generates a minimal template.
	Full bool

	// Rules describes the available rules.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Name        string
	Description string
	Level       string

	// Example holds `key = value` lines documenting the rule's settings.
	Example []string
}

// GenerateTemplate creates a TOML configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Files to skip, relative to this file.
# ignore_patterns = ["node_modules/**", "drafts/**/*.mdx"]

# Turn a rule off:
# RuleName = false

# Keep a rule's settings in a separate file:
# RuleName = "include('rules/rule-name.toml')"
`)

	if !opts.Full {
		return buf.Bytes()
	}

	rules := append([]RuleInfo(nil), opts.Rules...)
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})

	for _, rule := range rules {
		buf.WriteString("\n")
		if rule.Description != "" {
			fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		fmt.Fprintf(&buf, "[%s]\n", rule.Name)
		fmt.Fprintf(&buf, "# level = %q\n", rule.Level)
		for _, line := range rule.Example {
			fmt.Fprintf(&buf, "# %s\n", line)
		}
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# supa-mdx-lint configuration
# See: https://github.com/supabase-community/supa-mdx-lint`
}
