// Package main is the entry point for the supa-mdx-lint CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/cli"
	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.FromContext(rootCmd.Context()).Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
