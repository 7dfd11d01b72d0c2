// Package table assembles rows and a parsed directive into an abstract
// table structure ready for serialization.
package table

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/edouard-claude/tably/internal/directive"
	"github.com/edouard-claude/tably/internal/filters"
	"github.com/edouard-claude/tably/internal/record"
	"github.com/edouard-claude/tably/internal/utils"
)

// ColumnSpec is one resolved column: where its values come from, what
// the header says, and which filter chain shapes each cell.
type ColumnSpec struct {
	Path   string
	Header string
	Chain  []*directive.FilterInvocation
}

// Table is the assembled output: header labels, rendered cell strings
// and the resolved style settings. When the input sequence was empty,
// EmptyMessage is set and Headers/Rows stay nil.
type Table struct {
	Headers      []string
	Rows         [][]string
	StyleClasses []string
	TableClass   string
	RowClass     string
	Responsive   bool
	EmptyMessage string

	// CellErrors collects per-cell filter failures. A failing cell
	// degrades to its raw value; the table itself still renders.
	CellErrors []error
}

// Assembler turns directive parameters plus an input sequence into a
// Table. The filter registry is an injected, read-only dependency.
type Assembler struct {
	Registry *filters.Registry
	Defaults Defaults
}

// NewAssembler returns an Assembler with stock defaults.
func NewAssembler(registry *filters.Registry) *Assembler {
	return &Assembler{Registry: registry, Defaults: DefaultDefaults()}
}

// Render tokenizes rawArgs and assembles the table in one call.
func (a *Assembler) Render(rawArgs string, input any) (*Table, error) {
	params, err := directive.ParseParams(rawArgs)
	if err != nil {
		return nil, err
	}
	return a.Assemble(params, input)
}

// Assemble validates the configuration, resolves the column specs and
// renders every row. Configuration mistakes (unknown style, count
// mismatches, non-list input) are hard errors; a filter failure inside
// one cell only degrades that cell.
func (a *Assembler) Assemble(params *directive.ParameterSet, input any) (*Table, error) {
	cfg, err := ParseConfig(params, a.Defaults)
	if err != nil {
		return nil, err
	}

	rows, err := toRows(input)
	if err != nil {
		return nil, err
	}

	t := &Table{
		StyleClasses: cfg.StyleClasses,
		TableClass:   cfg.TableClass,
		RowClass:     cfg.RowClass,
		Responsive:   cfg.Responsive,
	}

	// An empty sequence short-circuits before any column work: the
	// message is the sole content, no headers are built.
	if len(rows) == 0 {
		t.EmptyMessage = cfg.EmptyMessage
		return t, nil
	}

	cols, err := a.resolveColumns(params, rows[0])
	if err != nil {
		return nil, err
	}

	if cfg.Limit != nil && len(rows) > *cfg.Limit {
		rows = rows[:*cfg.Limit]
	}

	t.Headers = make([]string, len(cols))
	for i, col := range cols {
		t.Headers[i] = col.Header
	}

	t.Rows = make([][]string, 0, len(rows))
	for ri, row := range rows {
		cells := make([]string, len(cols))
		for ci, col := range cols {
			text, cellErr := a.renderCell(row, col, cfg)
			if cellErr != nil {
				t.CellErrors = append(t.CellErrors, fmt.Errorf("row %d, column %q: %w", ri, col.Path, cellErr))
			}
			cells[ci] = text
		}
		t.Rows = append(t.Rows, cells)
	}

	return t, nil
}

// toRows checks the sequence shape. The input must be a list of
// mapping-like records; anything else names the offending type.
func toRows(input any) ([]record.Row, error) {
	switch v := input.(type) {
	case []record.Row:
		return v, nil
	case []any:
		rows := make([]record.Row, 0, len(v))
		for i, item := range v {
			row, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T, not a record", ErrExpectedList, i, item)
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrExpectedList, input)
	}
}

// resolveColumns builds the column specs from cols/headers/expr, or
// auto-detects paths from the first row when cols is absent or empty.
func (a *Assembler) resolveColumns(params *directive.ParameterSet, first record.Row) ([]ColumnSpec, error) {
	var paths []string
	if raw, ok := params.Get("cols"); ok {
		elems, err := directive.ParseArray(raw)
		if err != nil {
			return nil, fmt.Errorf("cols: %w", err)
		}
		paths = elems
	}
	if len(paths) == 0 {
		// Map iteration order is random; sorted keys keep auto-detected
		// tables stable across renders.
		for key := range first {
			paths = append(paths, key)
		}
		sort.Strings(paths)
	}

	headers := make([]string, len(paths))
	for i, path := range paths {
		headers[i] = utils.Humanize(path)
	}
	if raw, ok := params.Get("headers"); ok {
		elems, err := directive.ParseArray(raw)
		if err != nil {
			return nil, fmt.Errorf("headers: %w", err)
		}
		if len(elems) != 0 {
			if len(elems) != len(paths) {
				return nil, fmt.Errorf("%w: headers count (%d) must match columns count (%d)",
					ErrHeaderCountMismatch, len(elems), len(paths))
			}
			headers = elems
		}
	}

	chains := make([][]*directive.FilterInvocation, len(paths))
	if raw, ok := params.Get("expr"); ok {
		elems, err := directive.ParseArray(raw)
		if err != nil {
			return nil, fmt.Errorf("expr: %w", err)
		}
		if len(elems) != 0 {
			if len(elems) != len(paths) {
				return nil, fmt.Errorf("%w: expressions count (%d) must match columns count (%d)",
					ErrExpressionCountMismatch, len(elems), len(paths))
			}
			chains, err = directive.ParseChains(elems)
			if err != nil {
				return nil, err
			}
		}
	}

	cols := make([]ColumnSpec, len(paths))
	for i := range paths {
		cols[i] = ColumnSpec{Path: paths[i], Header: headers[i], Chain: chains[i]}
	}

	// Unknown filter names are authoring mistakes and fail the whole
	// render up front, unlike runtime filter failures which only degrade
	// their cell.
	for _, col := range cols {
		for _, inv := range col.Chain {
			if !a.Registry.Has(inv.Name) {
				return nil, fmt.Errorf("%w: %q in column %q", filters.ErrUnknownFilter, inv.Name, col.Path)
			}
		}
	}
	return cols, nil
}

// renderCell resolves one (row, column) pair and runs the filter chain.
// The returned error is diagnostic only; the cell text is always usable.
func (a *Assembler) renderCell(row record.Row, col ColumnSpec, cfg *Config) (string, error) {
	value, ok := record.Resolve(row, col.Path)
	if !ok {
		return html.EscapeString(cfg.EmptyCellText), nil
	}

	// Lists filter per element, then join. The chain never sees the
	// joined string.
	if list, isList := value.([]any); isList {
		parts := make([]string, 0, len(list))
		var firstErr error
		for _, item := range list {
			text, err := a.applyChain(col.Chain, item, row)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, cfg.JoinSeparator), firstErr
	}

	return a.applyChain(col.Chain, value, row)
}

// applyChain pipes value through the chain left to right. On failure the
// cell falls back to the escaped raw value.
func (a *Assembler) applyChain(chain []*directive.FilterInvocation, value any, row record.Row) (string, error) {
	if len(chain) == 0 {
		return html.EscapeString(record.String(value)), nil
	}

	current := value
	for _, inv := range chain {
		out, err := a.Registry.Invoke(inv.Name, inv.Params.Map(), current, row)
		if err != nil {
			return html.EscapeString(record.String(value)), err
		}
		current = out
	}
	return record.String(current), nil
}
