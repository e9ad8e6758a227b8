package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fsutil"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

// ruleExamples documents each built-in rule's settings in generated
// templates.
//
//nolint:gochecknoglobals // Read-only template data.
var ruleExamples = map[string][]string{
	"Rule001HeadingCase": {
		`may_uppercase = ["API", "Edge Functions"]`,
		`may_lowercase = ["iOS"]`,
	},
	"Rule002AdmonitionTypes": {
		`admonition_types = ["note", "tip", "caution", "deprecation", "danger"]`,
	},
	"Rule003Spelling": {
		`allow_list = ["Supabase", "\\S+\\.toml"]`,
		`prefixes = ["pre", "post", "non"]`,
	},
	"Rule004ExcludeWords": {
		`rules.postgres = { description = "Use %r instead of %s", words = [["postgre", "Postgres"]] }`,
	},
	"Rule006NoAbsoluteUrls": {
		`base_url = "https://supabase.com"`,
	},
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a supa-mdx-lint configuration file",
		Long: `Create a supa-mdx-lint.config.toml configuration file in the current
directory. The file can be customized to turn rules off, change their
levels and configure their settings.

Examples:
  supa-mdx-lint init                       Create a minimal config
  supa-mdx-lint init --full                Document every rule
  supa-mdx-lint init --output custom.toml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule and its settings")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultFileName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return internalError(fmt.Errorf("resolve path: %w", err))
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageErrorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return internalError(fmt.Errorf("stat %s: %w", flags.output, err))
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:  flags.full,
		Rules: templateRules(),
	})

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return internalError(fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'supa-mdx-lint rules' to see all available rules")

	return nil
}

func templateRules() []config.RuleInfo {
	rules := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Level:       rule.DefaultLevel().String(),
			Example:     ruleExamples[rule.Name()],
		})
	}
	return infos
}
