package directive

import (
	"fmt"
	"strings"
)

// FilterInvocation is one named filter step with its parameters, as
// parsed from a single expr array element.
type FilterInvocation struct {
	Name   string
	Params *ParameterSet
}

// ParseFilterExpr parses one array element denoting a filter expression:
// either a bare filter name, or name:k=v,k=v,... The argument part uses
// the same tokenizer as directive parameters, with positional options
// allowed. Placeholder tokens inside values (__field__, [id]) pass
// through uninterpreted; substitution belongs to the filter
// implementation.
func ParseFilterExpr(elem string) (*FilterInvocation, error) {
	elem = strings.TrimSpace(elem)
	if elem == "" {
		return nil, ErrEmptyFilterExpr
	}

	colon := indexOutsideQuotes(elem, ':')
	if colon < 0 {
		return &FilterInvocation{Name: elem, Params: NewParameterSet()}, nil
	}

	name := strings.TrimSpace(elem[:colon])
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyFilterExpr, elem)
	}

	params, err := ParseFilterParams(elem[colon+1:])
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	return &FilterInvocation{Name: name, Params: params}, nil
}

// ParseChain parses one expr array element into an ordered filter chain.
// An element may pipe several filter expressions together,
// e.g. "upper|linkify:url=mailto:[email]"; the chain applies left to
// right, each filter's output feeding the next. An empty element yields
// an empty chain (the column renders unfiltered).
func ParseChain(elem string) ([]*FilterInvocation, error) {
	if strings.TrimSpace(elem) == "" {
		return nil, nil
	}

	var chain []*FilterInvocation
	for _, part := range splitOutsideQuotes(elem, '|') {
		inv, err := ParseFilterExpr(part)
		if err != nil {
			return nil, err
		}
		chain = append(chain, inv)
	}
	if len(chain) == 0 {
		return nil, ErrEmptyFilterExpr
	}
	return chain, nil
}

// ParseChains parses every element of an expr array, keeping positional
// alignment with cols.
func ParseChains(elems []string) ([][]*FilterInvocation, error) {
	chains := make([][]*FilterInvocation, 0, len(elems))
	for i, elem := range elems {
		chain, err := ParseChain(elem)
		if err != nil {
			return nil, fmt.Errorf("expr[%d]: %w", i, err)
		}
		chains = append(chains, chain)
	}
	return chains, nil
}
