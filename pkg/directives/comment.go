// Package directives reads the lint directives embedded in a document as
// MDX comments, such as
//
//	{/* supa-mdx-lint-disable Rule001HeadingCase */}
//
// and turns them into per-rule disabled line ranges and lint-time rule
// configuration.
package directives

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a directive.
type Kind uint8

// Directive kinds.
const (
	EnableAll Kind = iota
	EnableRule
	DisableAll
	DisableRule
	Configure
)

func (k Kind) String() string {
	switch k {
	case EnableAll:
		return "EnableAll"
	case EnableRule:
		return "EnableRule"
	case DisableAll:
		return "DisableAll"
	case DisableRule:
		return "DisableRule"
	case Configure:
		return "Configure"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Comment is a parsed directive.
type Comment struct {
	Kind Kind

	// Rule is empty for EnableAll and DisableAll.
	Rule string

	// Attributes is the free text after the rule name of a configure
	// directive.
	Attributes string

	// NextLineOnly limits the directive to the node that follows it.
	NextLineOnly bool
}

// IsToggle reports whether the comment enables or disables rules.
func (c Comment) IsToggle() bool {
	return c.Kind != Configure
}

// Key returns the RuleKey the comment applies to.
func (c Comment) Key() RuleKey {
	if c.Rule == "" {
		return All
	}
	return RuleKey(c.Rule)
}

//nolint:gochecknoglobals // Compiled once.
var directivePattern = regexp.MustCompile(
	`^supa-mdx-lint-(enable|disable|disable-next-line|configure|configure-next-line)(?:\s+(\S+)(?:\s+(.+))?)?$`,
)

// IsCommentExpression reports whether an expression value is a `/* ... */`
// comment.
func IsCommentExpression(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) >= len("/**/") &&
		strings.HasPrefix(trimmed, "/*") &&
		strings.HasSuffix(trimmed, "*/")
}

// ParseComment parses the value of a comment expression. It returns false
// when the comment is not a directive, and ErrMissingRule when a configure
// directive names no rule.
func ParseComment(value string) (Comment, bool, error) {
	if !IsCommentExpression(value) {
		return Comment{}, false, nil
	}

	trimmed := strings.TrimSpace(value)
	body := strings.TrimSpace(trimmed[2 : len(trimmed)-2])

	m := directivePattern.FindStringSubmatch(body)
	if m == nil {
		return Comment{}, false, nil
	}
	action, rule, attrs := m[1], m[2], strings.TrimSpace(m[3])

	switch action {
	case "enable":
		if rule == "" {
			return Comment{Kind: EnableAll}, true, nil
		}
		return Comment{Kind: EnableRule, Rule: rule}, true, nil

	case "disable", "disable-next-line":
		nextLine := action == "disable-next-line"
		if rule == "" {
			return Comment{Kind: DisableAll, NextLineOnly: nextLine}, true, nil
		}
		return Comment{Kind: DisableRule, Rule: rule, NextLineOnly: nextLine}, true, nil

	default: // configure, configure-next-line
		if rule == "" {
			return Comment{}, false, fmt.Errorf("%w: found only %q", ErrMissingRule, body)
		}
		return Comment{
			Kind:         Configure,
			Rule:         rule,
			Attributes:   attrs,
			NextLineOnly: action == "configure-next-line",
		}, true, nil
	}
}
