package lint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel is returned when a level string is not recognized.
var ErrInvalidLevel = errors.New("invalid lint level")

// LintLevel is the severity of a diagnostic. Higher values are more severe.
//
//nolint:revive // LintLevel reads better than Level at call sites outside the package.
type LintLevel uint8

const (
	// LevelWarning diagnostics do not fail a run.
	LevelWarning LintLevel = iota + 1
	// LevelError diagnostics fail a run.
	LevelError
)

// ParseLevel parses "error" or "warning", case-insensitively.
func ParseLevel(s string) (LintLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func (l LintLevel) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return fmt.Sprintf("LintLevel(%d)", uint8(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l LintLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LintLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
