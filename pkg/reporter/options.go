package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// stringSource is the path shown for documents linted from memory.
const stringSource = "<string>"

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output in the pretty format.
	// Values: "auto" (default), "always", "never"
	Color string

	// Config supplies the file each rule was configured in, for the
	// "configure rule at" hint.
	Config *config.Config

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: config.FormatSimple,
		Color:  "auto",
	}
}

// displayPath returns p relative to the working directory when it lies
// below it.
func (o Options) displayPath(p string) string {
	if p == "" {
		return stringSource
	}
	if o.WorkingDir == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(o.WorkingDir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
