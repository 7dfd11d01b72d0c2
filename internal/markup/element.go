// Package markup holds a minimal HTML element builder shared by the
// serializer and the markup-producing filters.
package markup

import (
	"html"
	"strings"
)

// voidTags have no closing tag.
var voidTags = map[string]bool{
	"img": true,
	"br":  true,
	"hr":  true,
}

// Element is a minimal HTML element builder used by the serializer and
// by markup-producing filters. Attributes keep insertion order; the
// class attribute accumulates values instead of overwriting.
type Element struct {
	tag      string
	attrKeys []string
	attrs    map[string]string
	content  strings.Builder
}

// NewElement creates an element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{tag: tag, attrs: make(map[string]string)}
}

// AddAttribute sets an attribute. Repeated "class" values append with a
// space; any other repeated attribute overwrites.
func (e *Element) AddAttribute(key, value string) *Element {
	if existing, ok := e.attrs[key]; ok {
		if key == "class" {
			e.attrs[key] = existing + " " + value
		} else {
			e.attrs[key] = value
		}
		return e
	}
	e.attrKeys = append(e.attrKeys, key)
	e.attrs[key] = value
	return e
}

// AddText appends escaped text content.
func (e *Element) AddText(text string) *Element {
	e.content.WriteString(html.EscapeString(text))
	return e
}

// AddRaw appends already-rendered markup verbatim.
func (e *Element) AddRaw(markup string) *Element {
	e.content.WriteString(markup)
	return e
}

// String renders the element.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, k := range e.attrKeys {
		b.WriteByte(' ')
		b.WriteString(k)
		// Empty value renders as a boolean attribute (allowfullscreen).
		if v := e.attrs[k]; v != "" {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(v))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	if voidTags[e.tag] {
		return b.String()
	}
	b.WriteString(e.content.String())
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
	return b.String()
}
