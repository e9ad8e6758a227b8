package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	includePrefix = "include('"
	includeSuffix = "')"
)

// includeTarget returns the path inside an `include('path')` value.
func includeTarget(value string) (string, bool) {
	if len(value) < len(includePrefix)+len(includeSuffix) ||
		!strings.HasPrefix(value, includePrefix) ||
		!strings.HasSuffix(value, includeSuffix) {
		return "", false
	}
	return value[len(includePrefix) : len(value)-len(includeSuffix)], true
}

// fileLocations records the file each key was first defined in.
type fileLocations map[string]string

func (l fileLocations) record(key, path string) {
	if _, ok := l[key]; ok {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	l[key] = path
}

// includeResolver expands include() values. Include paths are resolved
// against the directory of the top-level config file, at every depth.
type includeResolver struct {
	baseDir   string
	locations fileLocations
	active    map[string]bool
}

// resolve returns a copy of table with every include() string replaced by
// the decoded table of the referenced file.
func (r *includeResolver) resolve(table map[string]any, currentFile string, topLevel bool) (map[string]any, error) {
	processed := make(map[string]any, len(table))

	for key, value := range table {
		switch v := value.(type) {
		case string:
			target, ok := includeTarget(v)
			if !ok {
				if topLevel {
					r.locations.record(key, currentFile)
				}
				processed[key] = v
				continue
			}

			included, err := r.load(key, filepath.Join(r.baseDir, target))
			if err != nil {
				return nil, err
			}
			processed[key] = included

		case map[string]any:
			if topLevel {
				r.locations.record(key, currentFile)
			}
			nested, err := r.resolve(v, currentFile, false)
			if err != nil {
				return nil, err
			}
			processed[key] = nested

		default:
			if topLevel {
				r.locations.record(key, currentFile)
			}
			processed[key] = value
		}
	}

	return processed, nil
}

func (r *includeResolver) load(key, path string) (map[string]any, error) {
	if r.active[path] {
		return nil, fmt.Errorf("include cycle through %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read include file at path %q: %w", path, err)
	}

	r.locations.record(key, path)

	var table map[string]any
	if err := toml.Unmarshal(content, &table); err != nil {
		return nil, fmt.Errorf("failed to parse include file from path %q: %w", path, err)
	}

	r.active[path] = true
	defer delete(r.active, path)

	resolved, err := r.resolve(table, path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse include file from path %q: %w", path, err)
	}
	return resolved, nil
}
