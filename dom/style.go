package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Style is an inline style attribute in source order.
type Style []*css.Declaration

// ParseStyle parses a style attribute into declarations. Property names are
// lowercased; malformed declarations are dropped.
func ParseStyle(s string) Style {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		// Retry declaration by declaration so one bad part does not cost the rest.
		decls = decls[:0]
		for _, part := range strings.Split(s, ";") {
			d, err := parser.ParseDeclarations(part + ";")
			if err != nil {
				continue
			}
			decls = append(decls, d...)
		}
	}

	var out Style
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if prop == "" {
			continue
		}
		out = out.set(prop, strings.TrimSpace(d.Value), d.Important)
	}
	return out
}

func (s Style) Get(prop string) string {
	for _, d := range s {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

func (s Style) Set(prop, val string) Style { return s.set(prop, val, false) }

func (s Style) set(prop, val string, important bool) Style {
	for _, d := range s {
		if d.Property == prop {
			d.Value, d.Important = val, important
			return s
		}
	}
	return append(s, &css.Declaration{Property: prop, Value: val, Important: important})
}

func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}

// StyleOf parses the style attribute of n.
func StyleOf(n *html.Node) Style {
	return ParseStyle(AttrValue(n, "style"))
}

// SetStyleProperty updates one property of n's inline style.
func SetStyleProperty(n *html.Node, prop, val string) {
	SetAttr(n, "style", StyleOf(n).Set(prop, val).String())
}
