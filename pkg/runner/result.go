package runner

// FileOutcome is the result of processing one file.
type FileOutcome[T any] struct {
	// Path is the file path that was processed.
	Path string

	// Value is what the task returned. It is the zero value when Error is
	// set.
	Value T

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files handed to the runner.
	FilesDiscovered int

	// FilesProcessed is the number of files processed without error.
	FilesProcessed int

	// FilesErrored is the number of files whose task failed.
	FilesErrored int
}

// Result is the overall runner result.
type Result[T any] struct {
	// Files contains the outcome for each processed file, in the order the
	// files were given.
	Files []FileOutcome[T]

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Errors returns the per-file errors in file order.
func (r *Result[T]) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

// accumulate updates the result with a file outcome.
func (r *Result[T]) accumulate(outcome FileOutcome[T]) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++
}
