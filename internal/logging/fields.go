// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCount      = "count"

	// Configuration fields.
	FieldConfig = "config"
	FieldFormat = "format"
	FieldFix    = "fix"
	FieldJobs   = "jobs"

	// Statistics fields.
	FieldFilesLinted = "files_linted"
	FieldFilesFixed  = "files_fixed"
	FieldErrorsFixed = "errors_fixed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldName        = "name"
	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
