package registry

import (
	"regexp"
	"sort"
	"sync"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

// componentName matches names that can appear as a document "type" and
// be told apart from element tags: they start with an upper-case letter.
var componentName = regexp.MustCompile(`^[A-Z][A-Za-z0-9_.]*$`)

// Registry holds named components. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components map[string]vdom.Component
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{components: make(map[string]vdom.Component)}
}

// Register adds a component under name.
func (r *Registry) Register(name string, c vdom.Component) error {
	if !componentName.MatchString(name) {
		return errors.New("E042").
			WithDetailf("%q is not a valid component name", name).
			WithSuggestion("Component names start with an upper-case letter, like Greeting")
	}
	if c == nil {
		return errors.New("E042").WithDetailf("component %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; exists {
		return errors.New("E042").WithDetailf("component %q is already registered", name)
	}
	r.components[name] = c
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level setup.
func (r *Registry) MustRegister(name string, c vdom.Component) {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (vdom.Component, bool) {
	r.mu.RLock()
	c, ok := r.components[name]
	r.mu.RUnlock()
	return c, ok
}

// Get is like Lookup but returns an E041 error for unknown names.
func (r *Registry) Get(name string) (vdom.Component, error) {
	c, ok := r.Lookup(name)
	if !ok {
		err := errors.New("E041").WithDetailf("component %q is not registered", name)
		if names := r.Names(); len(names) > 0 {
			err = err.WithSuggestion("Registered components: " + joinNames(names))
		}
		return nil, err
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

func joinNames(names []string) string {
	const max = 10
	out := ""
	for i, n := range names {
		if i == max {
			return out + ", ..."
		}
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
