package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// Project is the default config file in the working directory
	// (./supa-mdx-lint.config.toml), empty if it does not exist.
	Project string

	// Explicit is a config path provided via --config flag or environment.
	Explicit string
}

// Selected returns the config file that will be loaded, if any. An explicit
// path always wins over the project default.
func (p *ConfigPaths) Selected() string {
	if p.Explicit != "" {
		return p.Explicit
	}
	return p.Project
}

// DiscoverPaths looks for the default config file in workDir.
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	paths := &ConfigPaths{}
	if candidate := filepath.Join(absDir, config.DefaultFileName); fileExists(candidate) {
		paths.Project = candidate
	}

	return paths, nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsTOMLConfig returns true if the path has a TOML extension.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}
