// Package cli provides the Cobra command structure for supa-mdx-lint.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug      bool
	silent     bool
	configPath string
	color      string
}

// NewRootCommand creates the root supa-mdx-lint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "supa-mdx-lint",
		Short: "Lint MDX documentation for house style",
		Long: `supa-mdx-lint checks MDX documents against configurable prose rules:
sentence-case headings, admonition types, spelling, excluded words and
relative links. Many problems can be fixed automatically with --fix.

Rules are configured in supa-mdx-lint.config.toml in the working directory,
or in the file named by --config or SUPA_MDX_LINT_CONFIG.`,
		Version: info.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.debug && flags.silent {
				return usageErrorf("--debug and --silent cannot be used together")
			}
			switch flags.color {
			case "auto", "always", "never":
			default:
				return usageErrorf("invalid --color %q: want auto, always or never", flags.color)
			}

			level := "info"
			switch {
			case flags.debug:
				level = "debug"
			case flags.silent:
				level = "silent"
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			ctx = logging.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			cmd.Root().SetContext(ctx)
			logger.Debug("log level set", "level", level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.silent, "silent", "s", false, "do not write anything to the output")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize pretty output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
