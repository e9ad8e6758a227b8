package lint

// BaseRule provides the descriptive half of the Rule interface.
// Embed it in rule implementations and implement Check (and Setup when the
// rule takes settings).
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	name  string
	desc  string
	level LintLevel
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(name, desc string, level LintLevel) BaseRule {
	return BaseRule{name: name, desc: desc, level: level}
}

// Name returns the rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultLevel returns the level used when none is configured.
func (r *BaseRule) DefaultLevel() LintLevel {
	return r.level
}

// Setup accepts any settings. Override it in rules that are configurable.
func (r *BaseRule) Setup(_ *RuleSettings) error {
	return nil
}
