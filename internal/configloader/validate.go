package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "Rule001HeadingCase.level").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues; the affected setting falls back to its
	// default.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// knownLevels lists valid level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLevels = map[string]bool{
	"error":   true,
	"warning": true,
}

// Validate checks the settings of known rules. Keys that do not name a known
// rule are ignored. With no known rules every rule key is checked.
func Validate(cfg *config.Config, knownRules []string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for name, rc := range cfg.Rules {
		if len(knownRules) > 0 && !slices.Contains(knownRules, name) {
			continue
		}
		if rc.Disabled {
			continue
		}

		raw, ok := rc.Settings[config.LevelKey]
		if !ok {
			continue
		}
		level, isString := raw.(string)
		if !isString {
			result.Errors = append(result.Errors, ValidationError{
				Field:   name + "." + config.LevelKey,
				Value:   raw,
				Message: fmt.Sprintf("level must be a string, got %T", raw),
			})
			continue
		}
		if !IsValidLevel(level) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   name + "." + config.LevelKey,
				Value:   level,
				Message: fmt.Sprintf("invalid level %q; must be one of: error, warning", level),
			})
		}
	}

	slices.SortFunc(result.Warnings, func(a, b ValidationError) int {
		return strings.Compare(a.Field, b.Field)
	})

	return result
}

// IsValidLevel returns true if the level string is valid.
func IsValidLevel(s string) bool {
	return knownLevels[s]
}
