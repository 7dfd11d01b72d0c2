// Package directive implements the table directive mini-language: the
// quote-aware parameter tokenizer, the array literal parser and the
// filter expression parser.
//
// A directive looks like:
//
//	people|table:cols="[name,role]",headers="[Name,Role]",tstyle=striped
//
// Array-typed parameter values are wrapped in one quote style with
// elements optionally in the opposite quote style:
//
//	expr="['capitalize','badge:field=person,color=byval']"
package directive

import (
	"errors"
	"fmt"
	"strings"
)

// Grammar errors. Callers match with errors.Is.
var (
	ErrInvalidDirective    = errors.New("invalid directive")
	ErrMalformedParameter  = errors.New("malformed parameter")
	ErrInvalidArrayLiteral = errors.New("invalid array literal")
	ErrEmptyFilterExpr     = errors.New("empty filter expression")
)

// Directive is one raw filter invocation attached to a data source.
type Directive struct {
	Source  string
	Name    string
	RawArgs string
}

// Parse splits a full directive string into source, filter name and raw
// arguments. The source is the text before the first unquoted pipe, the
// name the text before the first unquoted colon after it.
func Parse(text string) (*Directive, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty directive", ErrInvalidDirective)
	}

	pipe := indexOutsideQuotes(text, '|')
	if pipe < 0 {
		return nil, fmt.Errorf("%w: missing '|' before filter name in %q", ErrInvalidDirective, text)
	}

	source := strings.TrimSpace(text[:pipe])
	if source == "" {
		return nil, fmt.Errorf("%w: missing source before '|' in %q", ErrInvalidDirective, text)
	}
	rest := strings.TrimSpace(text[pipe+1:])
	if rest == "" {
		return nil, fmt.Errorf("%w: missing filter name in %q", ErrInvalidDirective, text)
	}

	d := &Directive{Source: source}
	if colon := indexOutsideQuotes(rest, ':'); colon >= 0 {
		d.Name = strings.TrimSpace(rest[:colon])
		d.RawArgs = rest[colon+1:]
	} else {
		d.Name = rest
	}

	if d.Name == "" {
		return nil, fmt.Errorf("%w: missing filter name in %q", ErrInvalidDirective, text)
	}
	return d, nil
}
