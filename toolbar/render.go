package toolbar

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// Render builds the toolbar for the enabled tool ids. Every enabled
// top-level tool yields exactly one control; a composite lists, in enabled
// order, the children that are both its own and enabled. Unknown ids are
// skipped.
func Render(reg *Registry, enabled []string) (*html.Node, error) {
	on := map[string]bool{}
	var order []string
	for _, id := range enabled {
		id = Canonical(id)
		if !on[id] {
			on[id] = true
			order = append(order, id)
		}
	}

	bar := dom.Element("div", "class", "wyg__toolbar")
	for _, id := range order {
		t, ok := reg.Top(id)
		if !ok {
			continue
		}
		tool := dom.Element("div", "class", "wyg__tool wyg__tool--"+id)

		switch t := t.(type) {
		case Composite:
			head := dom.Element("div", "class", "wyg__tool-has-child")
			if err := appendMarkup(head, t); err != nil {
				return nil, err
			}
			dom.Append(head, dom.Element("span", "class", "more-tools-trigger"))
			menu := dom.Element("div", "class", "wyg__tool-child")
			for _, cid := range order {
				c, ok := t.Child(cid)
				if !ok {
					continue
				}
				if err := appendMarkup(menu, c); err != nil {
					return nil, err
				}
			}
			dom.Append(tool, head, menu)
		default:
			if err := appendMarkup(tool, t); err != nil {
				return nil, err
			}
		}
		dom.Append(bar, tool)
	}
	return bar, nil
}

func appendMarkup(parent *html.Node, t Tool) error {
	nodes, err := dom.ParseFragment(t.Trigger())
	if err != nil {
		return fmt.Errorf("toolbar: tool %q: %w", t.ToolID(), err)
	}
	dom.Append(parent, nodes...)
	return nil
}
