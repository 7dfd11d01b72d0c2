package filters

import (
	"strings"
	"testing"

	"github.com/edouard-claude/tably/internal/record"
)

func apply(t *testing.T, name string, params map[string]string, value any, row record.Row) string {
	t.Helper()
	out, err := NewRegistry().Invoke(name, params, value, row)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return out
}

func TestStringFilters(t *testing.T) {
	tests := []struct {
		filter string
		in     string
		want   string
	}{
		{"upper", "hello world", "HELLO WORLD"},
		{"lower", "Hello World", "hello world"},
		{"title", "hello world", "Hello World"},
		{"capitalize", "hello world", "Hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			if got := apply(t, tt.filter, nil, tt.in, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoolFilter(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		value  any
		want   string
	}{
		{"default labels true", nil, true, "True"},
		{"default labels false", nil, false, "False"},
		{"custom labels", map[string]string{"o0": "Yes", "o1": "No"}, true, "Yes"},
		{"custom false label", map[string]string{"o0": "Yes", "o1": "No"}, false, "No"},
		{"string true", map[string]string{"o0": "Yes", "o1": "No"}, "true", "Yes"},
		{"none sentinel", map[string]string{"o0": "Active", "o1": "__none__"}, false, ""},
		{"non-bool passes through", nil, "maybe", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, "bool", tt.params, tt.value, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBadgeFilter(t *testing.T) {
	got := apply(t, "badge", map[string]string{"bg": "info"}, "open", nil)
	want := `<span class="badge text-dark font-weight-normal bg-info">open</span>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPillFilter(t *testing.T) {
	got := apply(t, "pill", nil, "open", nil)
	if !strings.Contains(got, "rounded-pill") {
		t.Errorf("pill missing rounded-pill class: %q", got)
	}
}

func TestBadgeByval(t *testing.T) {
	// Equal values share a color; the token must resolve to a real
	// palette entry, never the literal "byval".
	a := apply(t, "badge", map[string]string{"bg": "byval"}, "open", nil)
	b := apply(t, "badge", map[string]string{"bg": "byval"}, "open", nil)
	if a != b {
		t.Errorf("byval not stable: %q vs %q", a, b)
	}
	if strings.Contains(a, "bg-byval") {
		t.Errorf("byval leaked into class: %q", a)
	}
}

func TestBadgeTooltip(t *testing.T) {
	row := record.Row{"detail": "more info"}
	got := apply(t, "badge", map[string]string{"tt": "[detail]"}, "open", row)
	if !strings.Contains(got, `data-toggle="tooltip"`) || !strings.Contains(got, `title="more info"`) {
		t.Errorf("tooltip missing: %q", got)
	}
}

func TestBadgeEscapesValue(t *testing.T) {
	got := apply(t, "badge", nil, "<x>", nil)
	if !strings.Contains(got, "&lt;x&gt;") {
		t.Errorf("value not escaped: %q", got)
	}
}

func TestLinkifyFilter(t *testing.T) {
	row := record.Row{"id": "42"}
	tests := []struct {
		name   string
		params map[string]string
		value  any
		want   string
	}{
		{
			"basic",
			map[string]string{"url": "/records/[id]"},
			"see record",
			`<a href="/records/42">see record</a>`,
		},
		{
			"blank target adds rel",
			map[string]string{"url": "/x", "target": "blank"},
			"x",
			`<a href="/x" target="_blank" rel="noopener noreferrer">x</a>`,
		},
		{
			"explicit rel wins",
			map[string]string{"url": "/x", "target": "blank", "rel": "nofollow"},
			"x",
			`<a href="/x" target="_blank" rel="nofollow">x</a>`,
		},
		{
			"missing url passes through",
			nil,
			"plain",
			"plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, "linkify", tt.params, tt.value, row); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImgFilter(t *testing.T) {
	got := apply(t, "img", map[string]string{"alt": "portrait"}, "/p.png", nil)
	want := `<img src="/p.png" class="img-fluid" alt="portrait">`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestImgIIIFResize(t *testing.T) {
	url := "https://iiif.example.org/img/full/full/0/default.jpg"
	got := apply(t, "img", map[string]string{"iiif_resize": "25"}, url, nil)
	if !strings.Contains(got, "/pct:25/0/default.jpg") {
		t.Errorf("resize not applied: %q", got)
	}
}

func TestDateFilter(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		value  any
		want   string
	}{
		{"default input layout", map[string]string{"o0": "02 Jan 2006"}, "2024-03-15", "15 Mar 2024"},
		{"custom input layout", map[string]string{"o0": "2006", "format": "02/01/2006"}, "15/03/2024", "2024"},
		{"unparseable passes through", map[string]string{"o0": "2006"}, "not a date", "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, "date", tt.params, tt.value, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateFilterMissingLayout(t *testing.T) {
	_, err := NewRegistry().Invoke("date", nil, "2024-03-15", nil)
	if err == nil {
		t.Fatal("expected error for missing output layout")
	}
}

func TestFormatFilter(t *testing.T) {
	tests := []struct {
		name   string
		verb   string
		value  any
		want   string
	}{
		{"float", "%.2f", 3.14159, "3.14"},
		{"int verb truncates", "%d", 42.0, "42"},
		{"non-numeric passes through", "%.2f", "n/a", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, "format", map[string]string{"o0": tt.verb}, tt.value, nil)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIframeFilter(t *testing.T) {
	got := apply(t, "iframe", nil, "https://example.org/embed", nil)
	for _, frag := range []string{
		`src="https://example.org/embed"`,
		`frameborder="0"`,
		`loading="lazy"`,
		`width="100%"`,
		`height="400"`,
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("missing %q in %q", frag, got)
		}
	}
	if strings.Contains(got, "allowfullscreen") {
		t.Errorf("allowfullscreen must be opt-in: %q", got)
	}

	got = apply(t, "iframe", map[string]string{"allowfullscreen": "true"}, "/v", nil)
	if !strings.Contains(got, " allowfullscreen>") {
		t.Errorf("allowfullscreen missing: %q", got)
	}
}

func TestTmplFilter(t *testing.T) {
	row := record.Row{"unit": "kg"}
	got := apply(t, "tmpl", map[string]string{"format": "{{.Value}} {{.Row.unit}}"}, "12", row)
	if got != "12 kg" {
		t.Errorf("got %q", got)
	}
}

func TestTmplFilterBadTemplate(t *testing.T) {
	_, err := NewRegistry().Invoke("tmpl", map[string]string{"format": "{{.Value"}, "x", nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
}
