// Package filters provides the named value filters a table directive can
// chain per column, and the registry the assembler dispatches through.
package filters

import (
	"errors"
	"fmt"
	"sort"

	"github.com/edouard-claude/tably/internal/record"
)

// ErrUnknownFilter is returned when a chain names an unregistered filter.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter renders one value. params come from the directive's filter
// expression; row is the full record so a filter may reference sibling
// fields (e.g. [id] placeholder interpolation).
type Filter interface {
	Apply(params map[string]string, value any, row record.Row) (string, error)
}

// Func adapts a plain function to the Filter interface.
type Func func(params map[string]string, value any, row record.Row) (string, error)

// Apply implements Filter.
func (f Func) Apply(params map[string]string, value any, row record.Row) (string, error) {
	return f(params, value, row)
}

// Registry is a read-only lookup table from filter name to
// implementation. It is an explicit dependency of the table assembler,
// never ambient state; populate it before first use and do not mutate it
// while renders are running.
type Registry struct {
	filters map[string]Filter
}

// NewRegistry returns a registry pre-loaded with the built-in filters.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)
	return r
}

// NewEmptyRegistry returns a registry with no filters, mainly for tests.
func NewEmptyRegistry() *Registry {
	return &Registry{filters: make(map[string]Filter)}
}

// Register adds or replaces a filter under name.
func (r *Registry) Register(name string, f Filter) {
	r.filters[name] = f
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.filters[name]
	return ok
}

// Names returns all registered filter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches one filter application by name.
func (r *Registry) Invoke(name string, params map[string]string, value any, row record.Row) (string, error) {
	f, ok := r.filters[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	out, err := f.Apply(params, value, row)
	if err != nil {
		return "", fmt.Errorf("filter %q: %w", name, err)
	}
	return out, nil
}
