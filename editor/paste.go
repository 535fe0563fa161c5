package editor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

var (
	pasteStrippedAttrs = []string{"style", "class", "id", "width", "height", "border"}
	pasteEmptyTags     = []string{"p", "div", "span"}
)

// SanitizePaste cleans a clipboard payload: the markup, or the plain text
// when no markup is offered. Script and style elements are dropped,
// presentational attributes stripped, and empty p, div and span elements
// removed. Without any element left, the result is a single text node.
//
// It returns detached nodes ready for insertion and their serialization.
func SanitizePaste(markup, text string) ([]*html.Node, string, error) {
	payload := markup
	if payload == "" {
		payload = text
	}
	if payload == "" {
		return nil, "", nil
	}
	nodes, err := dom.ParseFragment(payload)
	if err != nil {
		return nil, "", fmt.Errorf("paste: %w", err)
	}

	holder := dom.Element("div")
	dom.Append(holder, nodes...)
	for _, n := range dom.Find(holder, "script, style") {
		dom.Remove(n)
	}
	dom.Walk(holder, func(n *html.Node) bool {
		if n != holder && n.Type == html.ElementNode {
			for _, k := range pasteStrippedAttrs {
				dom.RemoveAttr(n, k)
			}
		}
		return true
	})
	for c := holder.FirstChild; c != nil; {
		next := c.NextSibling
		removeEmpty(c)
		c = next
	}
	hasElement := false
	dom.Walk(holder, func(n *html.Node) bool {
		if n != holder && n.Type == html.ElementNode {
			hasElement = true
		}
		return !hasElement
	})

	if !hasElement {
		t := dom.TextContent(holder)
		if t == "" {
			return nil, "", nil
		}
		return []*html.Node{dom.Text(t)}, t, nil
	}
	cleaned := dom.InnerHTML(holder)
	out := dom.Children(holder)
	dom.RemoveChildren(holder)
	return out, cleaned, nil
}

// removeEmpty removes, children first, every p, div or span holding nothing
// but whitespace.
func removeEmpty(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		removeEmpty(c)
		c = next
	}
	if !dom.IsElement(n, pasteEmptyTags...) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return
		}
	}
	dom.Remove(n)
}

// Paste inserts a cleaned clipboard payload at the selection, replacing it,
// and leaves the caret after the inserted content. It emits paste, then
// input. In code view the payload is inserted as source text.
func (e *Editor) Paste(markup, text string) error {
	original := markup
	if original == "" {
		original = text
	}
	if !e.surface.HasSelection() {
		e.surface.CaretToEnd()
	}

	if e.codeView {
		if original == "" {
			return nil
		}
		if err := e.surface.InsertText(original); err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		e.emit(Event{Name: EventPaste, Original: original, Cleaned: original})
		e.contentChanged()
		return nil
	}

	nodes, cleaned, err := SanitizePaste(markup, text)
	if err != nil {
		return err
	}
	inserted := false
	if len(nodes) > 0 {
		inserted = e.surface.Edit(func() bool {
			r, ok := e.surface.Range()
			if !ok {
				return false
			}
			end := dom.InsertNodes(r.DeleteContents(), nodes...)
			e.surface.Select(dom.Caret(end.Node, end.Offset))
			return true
		})
	}
	e.emit(Event{Name: EventPaste, Original: original, Cleaned: cleaned})
	if inserted {
		e.contentChanged()
	}
	return nil
}
