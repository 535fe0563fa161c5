package editor

import (
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

type linkInput struct {
	URL    string `validate:"required"`
	Target string `validate:"required"`
}

// linkAtSelection finds the anchor enclosing the selection start.
func (e *Editor) linkAtSelection() *xhtml.Node {
	r, ok := e.surface.Range()
	if !ok {
		return nil
	}
	return dom.ClosestTag(r.Start.Node, e.area, "a")
}

func linkForm(target *xhtml.Node) *xhtml.Node {
	url, tgt, label := "", "_blank", "Insert"
	if target != nil {
		url = dom.AttrValue(target, "href")
		if t := dom.AttrValue(target, "target"); t != "" {
			tgt = t
		}
		label = "Update"
	}
	return formNode(popupLink, label,
		inputField("URL", "text", "url", url, "https://"),
		inputField("Target", "text", "target", tgt, "_blank"),
	)
}

// OpenLink opens the link popup in update mode for anchor a.
func (e *Editor) OpenLink(a *xhtml.Node) {
	p := e.popups[popupLink]
	if p == nil || !e.surface.Contains(a) {
		return
	}
	e.closePopup(p)
	e.openPopup(p, a)
}

func (e *Editor) submitLink(p *popup) error {
	in := linkInput{
		URL:    strings.TrimSpace(p.value("url")),
		Target: strings.TrimSpace(p.value("target")),
	}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("link: %w: %s", ErrMissingField, err)
	}

	if a := p.target; a != nil {
		e.closePopup(p)
		if !e.surface.Contains(a) {
			return fmt.Errorf("link: %w", ErrStaleSelection)
		}
		e.surface.Edit(func() bool {
			dom.SetAttr(a, "href", in.URL)
			dom.SetAttr(a, "target", in.Target)
			return true
		})
		e.contentChanged()
		return nil
	}

	p.snap.Restore(e.surface)
	e.closePopup(p)
	text := ""
	if e.surface.HasSelection() {
		text = e.surface.Selection().String()
	}
	if text == "" {
		text = in.URL
	}
	markup := fmt.Sprintf(`<a href="%s" target="%s">%s</a>`,
		html.EscapeString(in.URL), html.EscapeString(in.Target), html.EscapeString(text))
	if err := e.surface.InsertHTML(markup); err != nil {
		return fmt.Errorf("link: %w", err)
	}
	e.contentChanged()
	return nil
}

// Unlink replaces anchor a with a text node holding its text.
func (e *Editor) Unlink(a *xhtml.Node) bool {
	if !dom.IsElement(a, "a") || !e.surface.Contains(a) {
		return false
	}
	e.closePopover()
	e.surface.Edit(func() bool {
		t := dom.Text(dom.TextContent(a))
		dom.ReplaceWith(a, t)
		e.surface.Select(dom.Caret(t, dom.Length(t)))
		return true
	})
	e.contentChanged()
	return true
}
