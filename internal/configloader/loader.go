// Package configloader provides configuration loading and resolution.
// It finds the TOML config file, expands include() values, validates rule
// settings and builds a config.Config.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// ErrConfigNotFound is returned when an explicitly requested config file
// does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search for the default config file and
	// the base for relative rule source paths.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, the default config file is not consulted.
	ExplicitPath string

	// IgnoreEnv skips reading SUPA_MDX_LINT_CONFIG.
	IgnoreEnv bool

	// KnownRules lists valid rule names, used to validate rule settings.
	KnownRules []string
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom is the config file that was read, empty when running with
	// defaults.
	LoadedFrom string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the configuration. Precedence (highest to lowest):
//  1. Explicit config file (opts.ExplicitPath)
//  2. SUPA_MDX_LINT_CONFIG
//  3. ./supa-mdx-lint.config.toml in the working directory
//  4. Defaults
//
// A missing explicit file is an error; a missing default file is not.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	if paths.Explicit == "" && !opts.IgnoreEnv {
		paths.Explicit = ConfigPathFromEnv()
	}

	result := &LoadResult{Paths: paths}

	selected := paths.Selected()
	if selected == "" {
		logger.Debug("no config file found, using defaults", logging.FieldWorkingDir, workDir)
		result.Config = config.NewConfig()
		result.Config.Dir = workDir
		return result, nil
	}

	if paths.Explicit != "" && !filepath.IsAbs(selected) {
		selected = filepath.Join(workDir, selected)
	}
	if !fileExists(selected) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, selected)
	}
	if !IsTOMLConfig(selected) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("config file %s does not have a .toml extension; reading it as TOML", selected))
	}

	logger.Debug("loading config", logging.FieldPath, selected)

	cfg, warnings, err := LoadFile(selected, workDir)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, warnings...)

	validation := Validate(cfg, opts.KnownRules)
	if !validation.Valid() {
		first := validation.Errors[0]
		first.FilePath = selected
		return nil, &first
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	result.LoadedFrom = selected
	return result, nil
}

// LoadFile reads a TOML config file, expands its includes and builds a
// Config anchored at the file's directory. Rule sources are recorded
// relative to workDir when possible.
func LoadFile(path, workDir string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	var table map[string]any
	if err := toml.Unmarshal(content, &table); err != nil {
		return nil, nil, fmt.Errorf("parse TOML %s: %w", path, err)
	}
	if table == nil {
		table = map[string]any{}
	}

	configDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config directory: %w", err)
	}

	resolver := &includeResolver{
		baseDir:   configDir,
		locations: fileLocations{},
		active:    map[string]bool{filepath.Join(configDir, filepath.Base(path)): true},
	}
	expanded, err := resolver.resolve(table, path, true)
	if err != nil {
		return nil, nil, err
	}

	cfg, warnings, err := config.FromTable(expanded, configDir)
	if err != nil {
		return nil, nil, err
	}

	for key, location := range resolver.locations {
		cfg.RuleSources[key] = relativeTo(location, workDir)
	}

	return cfg, warnings, nil
}

func relativeTo(path, base string) string {
	if base == "" {
		return path
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(absBase); err == nil {
		absBase = resolved
	}
	rel, err := filepath.Rel(absBase, path)
	if err != nil {
		return path
	}
	return rel
}
