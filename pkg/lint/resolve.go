package lint

import (
	"context"
	"fmt"

	"github.com/supabase-community/supa-mdx-lint-sub000/internal/logging"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/config"
)

// ResolvedRule pairs a configured rule with the level it reports at.
type ResolvedRule struct {
	// Rule is the set-up rule instance.
	Rule Rule

	// Level is the configured level, or the rule's default.
	Level LintLevel
}

// RuleSet is the set of active, configured rules for a run. It is
// read-only once built and safe for concurrent use across documents.
type RuleSet struct {
	rules []ResolvedRule
}

// ResolveRules builds a RuleSet from the registry and a configuration.
//
// A rule configured as `false` is left out. A rule table becomes the rule's
// settings, and its `level` key overrides the default level; an invalid
// level is logged and ignored. Config keys that name no rule are ignored.
func ResolveRules(ctx context.Context, registry *Registry, cfg *config.Config) (*RuleSet, error) {
	logger := logging.FromContext(ctx)
	set := &RuleSet{}

	for _, name := range registry.Names() {
		factory, _ := registry.Get(name)
		rule := factory()

		var rc config.RuleConfig
		if cfg != nil {
			rc, _ = cfg.Rule(name)
		}
		if rc.Disabled {
			logger.Debug("rule deactivated by configuration", logging.FieldName, name)
			continue
		}

		level := rule.DefaultLevel()
		if rc.Level != "" {
			parsed, err := ParseLevel(rc.Level)
			if err != nil {
				logger.Warn("ignoring invalid rule level", logging.FieldName, name, logging.FieldError, err)
			} else {
				level = parsed
			}
		}

		settings := NewRuleSettings(rc.Settings).WithLogger(logger)
		if err := rule.Setup(settings); err != nil {
			return nil, fmt.Errorf("set up rule %s: %w", name, err)
		}

		set.rules = append(set.rules, ResolvedRule{Rule: rule, Level: level})
	}

	return set, nil
}

// NewRuleSet builds a RuleSet from already set-up rules at their default
// levels.
func NewRuleSet(rules ...Rule) *RuleSet {
	set := &RuleSet{rules: make([]ResolvedRule, 0, len(rules))}
	for _, r := range rules {
		set.rules = append(set.rules, ResolvedRule{Rule: r, Level: r.DefaultLevel()})
	}
	return set
}

// Rules returns the active rules in dispatch order.
func (s *RuleSet) Rules() []ResolvedRule {
	return s.rules
}

// Names returns the names of the active rules.
func (s *RuleSet) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Rule.Name()
	}
	return names
}

// Level returns the level a rule reports at, or false if it is inactive.
func (s *RuleSet) Level(name string) (LintLevel, bool) {
	for _, r := range s.rules {
		if r.Rule.Name() == name {
			return r.Level, true
		}
	}
	return 0, false
}
