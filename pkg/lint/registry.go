package lint

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Registry holds the constructors of every known rule.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a rule constructor, keyed by the name of the rule it
// builds. A constructor registered under an existing name replaces it.
func (r *Registry) Register(factory Factory) {
	name := factory().Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns the constructor for a rule name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// IsValidRule reports whether name is a registered rule.
func (r *Registry) IsValidRule(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.factories)
	slices.Sort(names)
	return names
}

// Rules returns a fresh, unconfigured instance of every rule, sorted by
// name. Useful for listing rules and their defaults.
func (r *Registry) Rules() []Rule {
	return lo.FilterMap(r.Names(), func(name string, _ int) (Rule, bool) {
		f, ok := r.Get(name)
		if !ok {
			return nil, false
		}
		return f(), true
	})
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
