// Package config defines the configuration model for supa-mdx-lint.
// These types are pure data structures; reading config files from disk is
// handled by internal/configloader.
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidConfig is returned for configuration that is not a table of
// rule settings.
var ErrInvalidConfig = errors.New("Invalid configuration. Must be serializable to an object.") //nolint:staticcheck // User-facing message.

// Reserved keys.
const (
	// IgnorePatternsKey holds globs of files to skip.
	IgnorePatternsKey = "ignore_patterns"

	// LevelKey inside a rule table overrides the rule's severity.
	LevelKey = "level"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatSimple   OutputFormat = "simple"
	FormatMarkdown OutputFormat = "markdown"
	FormatRDF      OutputFormat = "rdf"
	FormatPretty   OutputFormat = "pretty"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatSimple, FormatMarkdown, FormatRDF, FormatPretty:
		return true
	default:
		return false
	}
}

// OutputFormats lists the accepted output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatSimple, FormatMarkdown, FormatRDF, FormatPretty}
}

// RuleConfig holds the configuration for a single rule.
type RuleConfig struct {
	// Disabled is set when the rule key is `false`.
	Disabled bool

	// Level is the raw `level` setting, empty when unset.
	Level string

	// Settings is the rule table, including Level.
	Settings map[string]any
}

// Config is the resolved configuration for a lint run.
type Config struct {
	// Rules holds configuration keyed by rule name. Keys that do not name a
	// known rule are kept here and ignored by the registry.
	Rules map[string]RuleConfig

	// IgnorePatterns are the raw `ignore_patterns` globs.
	IgnorePatterns []string

	// Dir is the directory ignore patterns are relative to. Empty means the
	// working directory.
	Dir string

	// RuleSources maps a rule key to the config file that defined it.
	RuleSources map[string]string

	ignoreGlobs []glob.Glob
}

// NewConfig returns an empty configuration: every rule enabled with default
// settings.
func NewConfig() *Config {
	return &Config{
		Rules:       make(map[string]RuleConfig),
		RuleSources: make(map[string]string),
	}
}

// FromTable builds a Config from a decoded TOML document. dir anchors the
// ignore patterns. Values that are neither `false` nor a table are ignored,
// as are invalid ignore patterns, which are returned as warnings.
func FromTable(table map[string]any, dir string) (*Config, []string, error) {
	if table == nil {
		return nil, nil, ErrInvalidConfig
	}

	cfg := NewConfig()
	cfg.Dir = dir

	var warnings []string
	for key, value := range table {
		switch v := value.(type) {
		case []any:
			if key != IgnorePatternsKey {
				continue
			}
			for _, item := range v {
				pattern, ok := item.(string)
				if !ok {
					continue
				}
				if err := cfg.AddIgnorePattern(pattern); err != nil {
					warnings = append(warnings, err.Error())
				}
			}

		case bool:
			if !v {
				cfg.Rules[key] = RuleConfig{Disabled: true}
			}

		case map[string]any:
			rc := RuleConfig{Settings: v}
			if level, ok := v[LevelKey].(string); ok {
				rc.Level = level
			}
			cfg.Rules[key] = rc
		}
	}

	return cfg, warnings, nil
}

// Rule returns the configuration for name.
func (c *Config) Rule(name string) (RuleConfig, bool) {
	if c == nil {
		return RuleConfig{}, false
	}
	rc, ok := c.Rules[name]
	return rc, ok
}

// RuleSource returns the file a rule was configured in.
func (c *Config) RuleSource(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	src, ok := c.RuleSources[name]
	return src, ok
}

// AddIgnorePattern compiles a glob relative to the config directory.
func (c *Config) AddIgnorePattern(pattern string) error {
	anchored := pattern
	if !filepath.IsAbs(pattern) {
		anchored = filepath.Join(c.baseDir(), pattern)
	}
	anchored = path.Clean(filepath.ToSlash(anchored))

	g, err := glob.Compile(anchored, '/')
	if err != nil {
		return fmt.Errorf("failed to parse ignore pattern %s: %w", anchored, err)
	}

	c.IgnorePatterns = append(c.IgnorePatterns, pattern)
	c.ignoreGlobs = append(c.ignoreGlobs, g)
	return nil
}

// IsIgnored reports whether p matches an ignore pattern. Relative paths are
// resolved against the working directory.
func (c *Config) IsIgnored(p string) bool {
	if c == nil || len(c.ignoreGlobs) == 0 {
		return false
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	normalized := path.Clean(filepath.ToSlash(abs))

	for _, g := range c.ignoreGlobs {
		if g.Match(normalized) {
			return true
		}
	}
	return false
}

func (c *Config) baseDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	if wd, err := filepath.Abs("."); err == nil {
		return wd
	}
	return "."
}

// IsLintable reports whether a target can be linted: directories are
// walked, and files must have the .mdx extension.
func IsLintable(p string, isDir bool) bool {
	return isDir || strings.EqualFold(filepath.Ext(p), ".mdx")
}
