package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edouard-claude/tably/internal/directive"
)

// styleClasses maps a style token to its fixed CSS class list.
var styleClasses = map[string][]string{
	"plain":         {"table"},
	"small":         {"table", "table-sm"},
	"sm":            {"table", "table-sm"},
	"striped":       {"table", "table-striped"},
	"small-striped": {"table", "table-sm", "table-striped"},
	"sm-striped":    {"table", "table-sm", "table-striped"},
	"bordered":      {"table", "table-bordered"},
	"hover":         {"table", "table-hover"},
}

// StyleTokens returns all known style tokens, one entry per class list
// alias, for listing in the CLI.
func StyleTokens() []string {
	return []string{"plain", "small", "sm", "striped", "small-striped", "sm-striped", "bordered", "hover"}
}

// StyleFor resolves a style token to its CSS classes.
func StyleFor(token string) ([]string, error) {
	classes, ok := styleClasses[token]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, token)
	}
	out := make([]string, len(classes))
	copy(out, classes)
	return out, nil
}

// Defaults holds the fallback values a Config starts from. They usually
// come from the application config file.
type Defaults struct {
	Style         string
	JoinSeparator string
	EmptyMessage  string
	EmptyCellText string
}

// DefaultDefaults returns the stock defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Style:         "plain",
		JoinSeparator: ", ",
		EmptyMessage:  "No entries to display.",
		EmptyCellText: "",
	}
}

// Config holds the resolved scalar rendering parameters of one table
// directive. Absence of a parameter never errors; every field has a
// default.
type Config struct {
	Style         string
	StyleClasses  []string
	TableClass    string
	RowClass      string
	Limit         *int
	EmptyMessage  string
	EmptyCellText string
	JoinSeparator string
	Responsive    bool
}

// ParseConfig builds a Config from directive parameters, merged over the
// given defaults. An unknown tstyle token or a malformed limit or
// responsive value is a hard error.
func ParseConfig(params *directive.ParameterSet, defaults Defaults) (*Config, error) {
	cfg := &Config{
		Style:         defaults.Style,
		EmptyMessage:  defaults.EmptyMessage,
		EmptyCellText: defaults.EmptyCellText,
		JoinSeparator: defaults.JoinSeparator,
		Responsive:    true,
	}

	if v, ok := params.Get("tstyle"); ok {
		cfg.Style = v
	}
	classes, err := StyleFor(cfg.Style)
	if err != nil {
		return nil, err
	}
	cfg.StyleClasses = classes

	cfg.TableClass = params.GetDefault("tclass", "")
	cfg.RowClass = params.GetDefault("rowclass", "")

	if v, ok := params.Get("empty"); ok {
		cfg.EmptyMessage = v
	}
	if v, ok := params.Get("empty_cell"); ok {
		cfg.EmptyCellText = v
	}
	if v, ok := params.Get("join"); ok {
		cfg.JoinSeparator = v
	}

	if v, ok := params.Get("limit"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: limit must be a non-negative integer, got %q", directive.ErrMalformedParameter, v)
		}
		cfg.Limit = &n
	}

	if v, ok := params.Get("responsive"); ok {
		b, err := parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: responsive must be a boolean, got %q", directive.ErrMalformedParameter, v)
		}
		cfg.Responsive = b
	}

	return cfg, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
