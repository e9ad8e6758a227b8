package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/lint"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long:  `List the built-in lint rules with their descriptions and default levels.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			case "text":
			default:
				return usageErrorf("invalid --format %q: want text or json", flags.format)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())
			for _, rule := range rules {
				logger.Info(rule.Name(),
					logging.FieldSeverity, rule.DefaultLevel(),
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Level:       rule.DefaultLevel().String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
