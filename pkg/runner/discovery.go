package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// ErrTargetNotFound is returned when a target names neither an existing
// path nor a glob matching any file.
var ErrTargetNotFound = errors.New("target not found")

// Discover resolves opts.Targets to the MDX files to lint. Directories are
// walked recursively, glob patterns are expanded, and files matching the
// config's ignore patterns are dropped. It returns a deterministically
// sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	logger := logging.FromContext(ctx)

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, target := range opts.effectiveTargets() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := target
		if !filepath.IsAbs(target) {
			absPath = filepath.Join(workDir, target)
		}
		absPath = filepath.Clean(absPath)

		info, statErr := os.Stat(absPath)
		switch {
		case statErr == nil && info.IsDir():
			discovered, err := walkDirectory(ctx, absPath, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				add(f)
			}

		case statErr == nil:
			if !config.IsLintable(absPath, false) {
				logger.Debug("skipping file that is not MDX", logging.FieldPath, target)
				continue
			}
			if opts.Config.IsIgnored(absPath) {
				logger.Debug("skipping ignored file", logging.FieldPath, target)
				continue
			}
			add(absPath)

		case errors.Is(statErr, fs.ErrNotExist) && isGlob(target):
			matched, err := expandGlob(ctx, absPath, opts)
			if err != nil {
				return nil, err
			}
			if len(matched) == 0 {
				logger.Debug("glob matched no files", logging.FieldPath, target)
			}
			for _, f := range matched {
				add(f)
			}

		case errors.Is(statErr, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)

		default:
			return nil, fmt.Errorf("stat %s: %w", target, statErr)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns the MDX files in
// it. Hidden and vendored directories are skipped.
func walkDirectory(ctx context.Context, root string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p == root {
				return nil
			}
			if skipDirectory(root, p, entry.Name()) || opts.Config.IsIgnored(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(p)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target rather than the link; WalkDir does not
				// follow links at its root.
				subFiles, err := walkDirectory(ctx, realPath, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if config.IsLintable(p, false) && !opts.Config.IsIgnored(p) {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// skipDirectory reports whether a directory below root is hidden or holds
// vendored dependencies such as node_modules.
func skipDirectory(root, p, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return enry.IsVendor(filepath.ToSlash(rel) + "/")
}

// isGlob reports whether a target contains glob metacharacters.
func isGlob(target string) bool {
	return strings.ContainsAny(target, "*?[{")
}

// expandGlob walks the static prefix of pattern and returns the MDX files
// matching it. `*` stays within a path segment; `**` crosses segments.
func expandGlob(ctx context.Context, pattern string, opts Options) ([]string, error) {
	slashed := filepath.ToSlash(pattern)

	g, err := glob.Compile(slashed, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob %s: %w", pattern, err)
	}

	root := filepath.FromSlash(staticPrefix(slashed))
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil //nolint:nilerr // A glob rooted in a missing directory matches nothing.
	}

	candidates, err := walkDirectory(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, c := range candidates {
		if g.Match(filepath.ToSlash(c)) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// staticPrefix returns the directory part of a slash-separated pattern that
// precedes the first segment containing a metacharacter.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if isGlob(seg) {
			prefix := strings.Join(segments[:i], "/")
			if prefix == "" {
				return "/"
			}
			return prefix
		}
	}
	return path.Dir(pattern)
}
