package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/configloader"
	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/linter"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/reporter"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/runner"
)

type lintFlags struct {
	fix            bool
	format         string
	jobs           int
	followSymlinks bool
}

func newLintCommand(global *globalFlags) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [targets...]",
		Short: "Lint MDX files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, global, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint MDX files for house style.

Targets are files, directories or glob patterns. Directories are searched
recursively for .mdx files; hidden and vendored directories are skipped.
With no targets the current directory is linted.

Examples:
  supa-mdx-lint lint docs/                 # Lint a directory
  supa-mdx-lint lint 'docs/**/*.mdx'       # Lint a glob
  supa-mdx-lint lint --fix docs/           # Lint and auto-fix
  supa-mdx-lint lint --format rdf docs/    # Reviewdog output for CI`

func runLint(cmd *cobra.Command, args []string, global *globalFlags, flags *lintFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return usageErrorf("invalid --format %q: want simple, markdown, rdf or pretty", flags.format)
	}
	if flags.jobs < 0 {
		return usageErrorf("invalid --jobs %d: must not be negative", flags.jobs)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return internalError(fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		KnownRules:   lint.DefaultRegistry.Names(),
	})
	if err != nil {
		return internalError(fmt.Errorf("failed to load configuration: %w", err))
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	lnt, err := linter.NewBuilder().
		Config(loadResult.Config).
		OutputFormat(format).
		Jobs(flags.jobs).
		Build(ctx)
	if err != nil {
		return internalError(fmt.Errorf("build linter: %w", err))
	}

	runOpts := runner.Options{
		Targets:        args,
		WorkingDir:     workDir,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
	}

	logger.Debug("starting lint run",
		logging.FieldInput, runOpts.Targets,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, flags.jobs,
		logging.FieldFix, flags.fix,
	)

	outputs, lintErr := lnt.LintPaths(ctx, runOpts)
	if lintErr != nil && outputs == nil {
		return internalError(fmt.Errorf("lint run failed: %w", lintErr))
	}

	var fixResult linter.FixResult
	if flags.fix {
		var fixErr error
		fixResult, fixErr = lnt.Fix(ctx, outputs)
		logger.Debug("applied fixes",
			logging.FieldFilesFixed, fixResult.FilesFixed,
			logging.FieldErrorsFixed, fixResult.ErrorsFixed,
		)

		if fixResult.FilesFixed > 0 {
			outputs, lintErr = lnt.LintPaths(ctx, runOpts)
			if lintErr != nil && outputs == nil {
				return internalError(fmt.Errorf("lint run after fixing failed: %w", lintErr))
			}
		}
		lintErr = errors.Join(lintErr, fixErr)
	}

	if !global.silent {
		if err := report(ctx, cmd.OutOrStdout(), outputs, loadResult.Config, format, global.color, workDir); err != nil {
			return internalError(err)
		}
		if flags.fix {
			fmt.Fprintf(cmd.OutOrStdout(), "Fixed %d error%s in %d file%s\n",
				fixResult.ErrorsFixed, plural(fixResult.ErrorsFixed),
				fixResult.FilesFixed, plural(fixResult.FilesFixed))
		}
	}

	if lintErr != nil {
		logger.Error("some files could not be processed", logging.FieldError, lintErr)
		return internalError(lintErr)
	}

	if errs, _ := linter.Counts(outputs); errs > 0 {
		return ErrLintIssuesFound
	}

	return nil
}

func report(
	ctx context.Context,
	w io.Writer,
	outputs []*linter.LintOutput,
	cfg *config.Config,
	format config.OutputFormat,
	color, workDir string,
) error {
	rep, err := reporter.New(reporter.Options{
		Writer:     w,
		Format:     format,
		Color:      color,
		Config:     cfg,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, outputs); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix problems where possible")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatSimple),
		"output format: simple, markdown, rdf, pretty")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files linted in parallel (0 = one per CPU)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
