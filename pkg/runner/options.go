// Package runner discovers MDX files and processes them concurrently with
// a bounded worker pool.
package runner

import "github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"

// Options controls file discovery and concurrency.
type Options struct {
	// Targets are the user-specified files, directories or glob patterns.
	// If empty, defaults to the working directory.
	Targets []string

	// WorkingDir is the base directory used to resolve relative Targets.
	// If empty, the current process working directory is used.
	WorkingDir string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config supplies the ignore patterns. May be nil.
	Config *config.Config
}

// effectiveTargets returns the targets to process, defaulting to "." if empty.
func (o Options) effectiveTargets() []string {
	if len(o.Targets) == 0 {
		return []string{"."}
	}
	return o.Targets
}
