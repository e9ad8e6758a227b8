package lint

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
)

// RegexBeginning controls how a configured pattern is anchored at its start.
type RegexBeginning uint8

const (
	// BeginAnywhere leaves the pattern as written.
	BeginAnywhere RegexBeginning = iota
	// BeginVeryBeginning anchors the pattern to the start of the input.
	BeginVeryBeginning
	// BeginWordBoundary requires the match to start at a word boundary.
	BeginWordBoundary
)

// RegexEnding controls how a configured pattern is anchored at its end.
type RegexEnding uint8

const (
	// EndAnywhere leaves the pattern as written.
	EndAnywhere RegexEnding = iota
	// EndWordBoundary requires the match to run to the end of a word.
	EndWordBoundary
)

// RegexOptions describes the anchoring applied to configured patterns.
type RegexOptions struct {
	Beginning RegexBeginning
	Ending    RegexEnding
}

const (
	wordBoundaryPrefix = `(?:^|\s|\b)`
	wordBoundarySuffix = `(?:\s|\b|$|[.,!?'"-])`
)

// Anchor applies opts to pattern. Patterns that already carry an anchor
// are left alone. An alternation is grouped before anchors are added, so
// every branch is anchored.
func (opts RegexOptions) Anchor(pattern string) string {
	var prefix, suffix string
	switch opts.Beginning {
	case BeginVeryBeginning:
		if !strings.HasPrefix(pattern, "^") {
			prefix = "^"
		}
	case BeginWordBoundary:
		if !strings.HasPrefix(pattern, `\b`) && !strings.HasPrefix(pattern, `\s`) && !strings.HasPrefix(pattern, "^") {
			prefix = wordBoundaryPrefix
		}
	case BeginAnywhere:
	}

	if opts.Ending == EndWordBoundary &&
		!strings.HasSuffix(pattern, `\b`) && !strings.HasSuffix(pattern, `\s`) && !strings.HasSuffix(pattern, "$") {
		suffix = wordBoundarySuffix
	}

	if prefix == "" && suffix == "" {
		return pattern
	}
	if strings.Contains(pattern, "|") {
		pattern = "(?:" + pattern + ")"
	}
	return prefix + pattern + suffix
}

// RuleSettings is the configuration table of a single rule, as decoded from
// TOML. Accessors are lenient: values of the wrong type read as missing.
type RuleSettings struct {
	values map[string]any
	logger *log.Logger
}

// NewRuleSettings wraps a decoded table. A nil table yields empty settings.
func NewRuleSettings(values map[string]any) *RuleSettings {
	if values == nil {
		values = map[string]any{}
	}
	return &RuleSettings{values: values, logger: logging.Default()}
}

// WithLogger sets the logger used to report unusable settings.
func (s *RuleSettings) WithLogger(logger *log.Logger) *RuleSettings {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Has reports whether key is set.
func (s *RuleSettings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Value returns the raw value of key.
func (s *RuleSettings) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// String returns a string setting.
func (s *RuleSettings) String(key string) (string, bool) {
	v, ok := s.values[key].(string)
	return v, ok
}

// Bool returns a boolean setting.
func (s *RuleSettings) Bool(key string) (bool, bool) {
	v, ok := s.values[key].(bool)
	return v, ok
}

// Table returns a nested table setting.
func (s *RuleSettings) Table(key string) (map[string]any, bool) {
	v, ok := s.values[key].(map[string]any)
	return v, ok
}

// Strings returns the strings of an array setting as written.
func (s *RuleSettings) Strings(key string) []string {
	return s.rawStrings(key)
}

// StringSlice returns the strings of an array setting, lowercased.
// Non-string elements are skipped. Returns nil when nothing usable is set.
func (s *RuleSettings) StringSlice(key string) []string {
	raw := s.rawStrings(key)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = strings.ToLower(v)
	}
	return out
}

// RegexSlice compiles the strings of an array setting after anchoring them
// with opts. Invalid patterns are logged and skipped. The result is sorted
// by pattern length, longest first, so longer exceptions are tried before
// their prefixes.
func (s *RuleSettings) RegexSlice(key string, opts RegexOptions) []*regexp.Regexp {
	raw := s.rawStrings(key)
	if len(raw) == 0 {
		return nil
	}

	out := make([]*regexp.Regexp, 0, len(raw))
	for _, pattern := range raw {
		anchored := opts.Anchor(pattern)
		re, err := regexp.Compile(anchored)
		if err != nil {
			s.logger.Warn("Encountered invalid regex pattern in rule settings",
				"pattern", anchored, logging.FieldError, err)
			continue
		}
		out = append(out, re)
	}
	if len(out) == 0 {
		return nil
	}

	slices.SortStableFunc(out, func(a, b *regexp.Regexp) int {
		return cmp.Compare(len(b.String()), len(a.String()))
	})
	return out
}

func (s *RuleSettings) rawStrings(key string) []string {
	switch v := s.values[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// DecodeSetting decodes the value of key into a T by round-tripping it
// through TOML, so T can use `toml` struct tags. Returns false when key is
// not set.
func DecodeSetting[T any](s *RuleSettings, key string) (T, bool, error) {
	var wrapper struct {
		Value T `toml:"value"`
	}

	v, ok := s.values[key]
	if !ok {
		return wrapper.Value, false, nil
	}

	data, err := toml.Marshal(map[string]any{"value": v})
	if err != nil {
		return wrapper.Value, true, fmt.Errorf("encode setting %s: %w", key, err)
	}
	if err := toml.Unmarshal(data, &wrapper); err != nil {
		return wrapper.Value, true, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return wrapper.Value, true, nil
}
