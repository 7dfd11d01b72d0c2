package directive

import (
	"fmt"
	"strings"

	"github.com/edouard-claude/tably/internal/utils"
)

// ParameterSet maps parameter names to raw string values, preserving
// insertion order. Unrecognized names are kept so downstream consumers
// can ignore them without losing information.
type ParameterSet struct {
	keys []string
	vals map[string]string
}

// NewParameterSet returns an empty ParameterSet.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{vals: make(map[string]string)}
}

// Set stores a parameter. A repeated name overwrites the value but keeps
// the original position.
func (p *ParameterSet) Set(name, value string) {
	if _, ok := p.vals[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.vals[name] = value
}

// Get returns the value for name and whether it was present.
func (p *ParameterSet) Get(name string) (string, bool) {
	v, ok := p.vals[name]
	return v, ok
}

// GetDefault returns the value for name, or def if absent.
func (p *ParameterSet) GetDefault(name, def string) string {
	if v, ok := p.vals[name]; ok {
		return v
	}
	return def
}

// Keys returns the parameter names in insertion order.
func (p *ParameterSet) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters.
func (p *ParameterSet) Len() int {
	return len(p.keys)
}

// Map returns the parameters as a plain map, for handing to filter
// implementations.
func (p *ParameterSet) Map() map[string]string {
	out := make(map[string]string, len(p.vals))
	for k, v := range p.vals {
		out[k] = v
	}
	return out
}

// ParseParams tokenizes a raw "key=value,key=value" argument string into
// a ParameterSet. Splitting happens only at commas outside quoted spans.
// Every term must carry an '='; balanced surrounding quotes are stripped
// from values, whitespace around '=' is insignificant.
func ParseParams(raw string) (*ParameterSet, error) {
	return parseParams(raw, false)
}

// ParseFilterParams tokenizes the argument string of a filter expression.
// Same grammar as ParseParams, except bare terms are legal and become
// positional options named o0, o1, ... in term order.
func ParseFilterParams(raw string) (*ParameterSet, error) {
	return parseParams(raw, true)
}

func parseParams(raw string, positional bool) (*ParameterSet, error) {
	params := NewParameterSet()
	if strings.TrimSpace(raw) == "" {
		return params, nil
	}

	for i, term := range splitOutsideQuotes(raw, ',') {
		eq := indexOutsideQuotes(term, '=')
		if eq < 0 {
			if !positional {
				return nil, fmt.Errorf("%w: term %q has no '='", ErrMalformedParameter, term)
			}
			params.Set(fmt.Sprintf("o%d", i), utils.StripQuotes(term))
			continue
		}

		name := strings.TrimSpace(term[:eq])
		if name == "" {
			return nil, fmt.Errorf("%w: term %q has no name", ErrMalformedParameter, term)
		}
		params.Set(name, utils.StripQuotes(term[eq+1:]))
	}

	return params, nil
}
