package filters

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/edouard-claude/tably/internal/markup"
	"github.com/edouard-claude/tably/internal/record"
	"github.com/edouard-claude/tably/internal/utils"
)

func registerBuiltins(r *Registry) {
	for _, name := range []string{"upper", "lower", "title", "capitalize"} {
		r.Register(name, stringFilter(name))
	}
	r.Register("bool", Func(boolFilter))
	r.Register("badge", badgeFilter{pill: false})
	r.Register("pill", badgeFilter{pill: true})
	r.Register("linkify", Func(linkifyFilter))
	r.Register("img", Func(imgFilter))
	r.Register("date", Func(dateFilter))
	r.Register("format", Func(formatFilter))
	r.Register("iframe", Func(iframeFilter))
	r.Register("tmpl", Func(tmplFilter))
}

func getStr(params map[string]string, key string) string {
	return params[key]
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// stringFilter covers the plain case transformations.
func stringFilter(name string) Func {
	return func(params map[string]string, value any, row record.Row) (string, error) {
		s := record.String(value)
		switch name {
		case "upper":
			return strings.ToUpper(s), nil
		case "lower":
			return strings.ToLower(s), nil
		case "title":
			return utils.TitleCase(s), nil
		case "capitalize":
			return utils.Capitalize(s), nil
		}
		return s, nil
	}
}

// boolFilter maps a boolean-ish value to the o0 (true) / o1 (false)
// labels. The sentinel label __none__ renders as an empty cell.
func boolFilter(params map[string]string, value any, row record.Row) (string, error) {
	trueLabel := "True"
	if v := getStr(params, "o0"); v != "" {
		trueLabel = v
	}
	falseLabel := "False"
	if v := getStr(params, "o1"); v != "" {
		falseLabel = v
	}

	truth := false
	switch v := value.(type) {
	case bool:
		truth = v
	case string:
		truth = strings.EqualFold(v, "true")
	default:
		return record.String(value), nil
	}

	label := falseLabel
	if truth {
		label = trueLabel
	}
	if label == "__none__" {
		return "", nil
	}
	return label, nil
}

var badgePalette = []string{"primary", "secondary", "success", "danger", "warning", "info"}

type badgeFilter struct {
	pill bool
}

// Apply renders the value as a bootstrap badge span. color/bg accept a
// class suffix or "byval", which picks a palette entry deterministically
// from the value. The tt param attaches a tooltip.
func (b badgeFilter) Apply(params map[string]string, value any, row record.Row) (string, error) {
	el := markup.NewElement("span")
	el.AddAttribute("class", "badge")
	if b.pill {
		el.AddAttribute("class", "rounded-pill")
	}
	el.AddAttribute("class", "text-dark")
	el.AddAttribute("class", "font-weight-normal")

	text := record.String(value)
	if tt := getStr(params, "tt"); tt != "" {
		el.AddAttribute("data-toggle", "tooltip")
		el.AddAttribute("data-placement", "top")
		if tt == "__field__" {
			tt = getStr(params, "field")
		}
		el.AddAttribute("title", record.Interpolate(tt, row))
	}
	el.AddText(text)

	if color := getStr(params, "color"); color != "" {
		el.AddAttribute("class", "text-"+pickColor(color, text))
	}
	if bg := getStr(params, "bg"); bg != "" {
		el.AddAttribute("class", "bg-"+pickColor(bg, text))
	}

	return el.String(), nil
}

// pickColor resolves "byval" to a stable palette entry for the value so
// equal values always share a color.
func pickColor(token, value string) string {
	if token != "byval" {
		return token
	}
	h := fnv.New32a()
	h.Write([]byte(value))
	return badgePalette[h.Sum32()%uint32(len(badgePalette))]
}

// linkifyFilter wraps the value in an <a> tag. The url param is
// required; [path] placeholders inside it resolve against the row.
func linkifyFilter(params map[string]string, value any, row record.Row) (string, error) {
	url := getStr(params, "url")
	if url == "" {
		return record.String(value), nil
	}
	url = record.Interpolate(url, row)

	el := markup.NewElement("a")
	el.AddAttribute("href", url)

	target := getStr(params, "target")
	if target == "blank" {
		target = "_blank"
	}
	if target != "" {
		el.AddAttribute("target", target)
	}
	if class := getStr(params, "class"); class != "" {
		el.AddAttribute("class", class)
	}
	if title := getStr(params, "title"); title != "" {
		el.AddAttribute("title", title)
	}
	if rel := getStr(params, "rel"); rel != "" {
		el.AddAttribute("rel", rel)
	} else if target == "_blank" {
		el.AddAttribute("rel", "noopener noreferrer")
	}

	// Content may be the output of earlier chain steps.
	el.AddRaw(record.String(value))
	return el.String(), nil
}

// imgFilter renders the value (or the url param) as an <img> tag.
func imgFilter(params map[string]string, value any, row record.Row) (string, error) {
	url := getStr(params, "url")
	if url != "" {
		url = record.Interpolate(url, row)
	} else {
		url = record.String(value)
	}

	// IIIF image URLs can be resized in place via a pct region.
	if resize := getStr(params, "iiif_resize"); resize != "" && url != "" {
		url = strings.Replace(url, "/full/0/default.", "/pct:"+resize+"/0/default.", 1)
	}

	el := markup.NewElement("img")
	el.AddAttribute("src", url)
	el.AddAttribute("class", "img-fluid")
	alt := getStr(params, "alt")
	if alt == "" {
		alt = "Image"
	}
	el.AddAttribute("alt", alt)

	for _, key := range []string{"width", "height", "style", "title"} {
		if v := getStr(params, key); v != "" {
			el.AddAttribute(key, v)
		}
	}
	if class := getStr(params, "class"); class != "" {
		el.AddAttribute("class", class)
	}
	return el.String(), nil
}

// dateFilter reparses the value with the input layout (format param,
// default 2006-01-02) and renders it with the o0 output layout. A value
// that does not parse passes through unchanged.
func dateFilter(params map[string]string, value any, row record.Row) (string, error) {
	out := getStr(params, "o0")
	if out == "" {
		return "", fmt.Errorf("date: missing output layout (o0)")
	}
	in := getStr(params, "format")
	if in == "" {
		in = "2006-01-02"
	}

	s := record.String(value)
	t, err := time.Parse(in, s)
	if err != nil {
		return s, nil
	}
	return t.Format(out), nil
}

// formatFilter applies the o0 fmt verb to a numeric value.
func formatFilter(params map[string]string, value any, row record.Row) (string, error) {
	verb := getStr(params, "o0")
	if verb == "" {
		return "", fmt.Errorf("format: missing verb (o0)")
	}

	s := record.String(value)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, nil
	}
	if strings.ContainsAny(verb, "dboxX") {
		return fmt.Sprintf(verb, int64(f)), nil
	}
	return fmt.Sprintf(verb, f), nil
}

// iframeFilter embeds the value (or the src param) in an <iframe>.
func iframeFilter(params map[string]string, value any, row record.Row) (string, error) {
	src := getStr(params, "src")
	if src == "" {
		src = record.String(value)
	}
	src = record.Interpolate(src, row)

	el := markup.NewElement("iframe")
	el.AddAttribute("src", src)
	el.AddAttribute("frameborder", "0")
	el.AddAttribute("loading", "lazy")

	width := getStr(params, "width")
	if width == "" {
		width = "100%"
	}
	height := getStr(params, "height")
	if height == "" {
		height = "400"
	}
	el.AddAttribute("width", width)
	el.AddAttribute("height", height)

	title := getStr(params, "title")
	if title == "" {
		title = "Embedded content"
	}
	el.AddAttribute("title", title)

	for _, key := range []string{"sandbox", "referrerpolicy", "class", "style"} {
		if v := getStr(params, key); v != "" {
			el.AddAttribute(key, v)
		}
	}
	if v := getStr(params, "loading"); v != "" {
		el.AddAttribute("loading", v)
	}
	if v := getStr(params, "frameborder"); v != "" {
		el.AddAttribute("frameborder", v)
	}
	if isTruthy(getStr(params, "allowfullscreen")) {
		el.AddAttribute("allowfullscreen", "")
	}
	return el.String(), nil
}

// tmplFilter executes a text/template from the format param with the
// current value and the full row in scope.
func tmplFilter(params map[string]string, value any, row record.Row) (string, error) {
	text := getStr(params, "format")
	if text == "" {
		return "", fmt.Errorf("tmpl: missing 'format' param")
	}

	tmpl, err := template.New("cell").Parse(text)
	if err != nil {
		return "", fmt.Errorf("tmpl: %w", err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, map[string]any{
		"Value": record.String(value),
		"Row":   row,
	})
	if err != nil {
		return "", fmt.Errorf("tmpl execute: %w", err)
	}
	return buf.String(), nil
}
