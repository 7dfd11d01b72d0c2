// Package render serializes assembled tables to HTML markup.
package render

import (
	"strings"

	"github.com/edouard-claude/tably/internal/markup"
	"github.com/edouard-claude/tably/internal/table"
)

// HTML serializes a table. Cell strings are written verbatim: filters
// emit markup, plain values were escaped during assembly. An empty table
// renders its message inside a single-cell body.
func HTML(t *table.Table) string {
	tbl := markup.NewElement("table")
	for _, class := range t.StyleClasses {
		tbl.AddAttribute("class", class)
	}
	if t.TableClass != "" {
		tbl.AddAttribute("class", t.TableClass)
	}

	if t.EmptyMessage != "" {
		cell := markup.NewElement("td").AddAttribute("class", "text-muted").AddText(t.EmptyMessage)
		row := markup.NewElement("tr").AddRaw(cell.String())
		tbl.AddRaw(markup.NewElement("tbody").AddRaw(row.String()).String())
		return wrap(t, tbl.String())
	}

	if len(t.Headers) > 0 {
		var hr strings.Builder
		for _, h := range t.Headers {
			hr.WriteString(markup.NewElement("th").AddAttribute("scope", "col").AddText(h).String())
		}
		head := markup.NewElement("thead").AddRaw(markup.NewElement("tr").AddRaw(hr.String()).String())
		tbl.AddRaw(head.String())
	}

	body := markup.NewElement("tbody")
	for _, cells := range t.Rows {
		tr := markup.NewElement("tr")
		if t.RowClass != "" {
			tr.AddAttribute("class", t.RowClass)
		}
		for _, cell := range cells {
			tr.AddRaw(markup.NewElement("td").AddRaw(cell).String())
		}
		body.AddRaw(tr.String())
	}
	tbl.AddRaw(body.String())

	return wrap(t, tbl.String())
}

// wrap adds the responsive container when enabled.
func wrap(t *table.Table, inner string) string {
	if !t.Responsive {
		return inner
	}
	return markup.NewElement("div").AddAttribute("class", "table-responsive").AddRaw(inner).String()
}
