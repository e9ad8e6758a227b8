package cli

import (
	"errors"
	"fmt"
)

// Exit codes for supa-mdx-lint, following sysexits.h.
const (
	// ExitSuccess indicates no error-level diagnostics were found.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage (EX_USAGE).
	ExitInvalidUsage = 64

	// ExitLintErrors indicates error-level diagnostics remain (EX_DATAERR).
	ExitLintErrors = 65

	// ExitInternalError indicates a configuration or internal error
	// (EX_SOFTWARE).
	ExitInternalError = 70
)

// ErrLintIssuesFound is returned when error-level diagnostics remain.
var ErrLintIssuesFound = errors.New("linting errors found")

// ExitError pairs an error with the process exit code it maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf(format, args...)}
}

func internalError(err error) error {
	return &ExitError{Code: ExitInternalError, Err: err}
}

// ExitCode maps an error returned by the root command to an exit code.
// Errors that carry no code are internal errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrLintIssuesFound) {
		return ExitLintErrors
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}
