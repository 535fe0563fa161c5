package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

const maxLabelWidth = 10

// barCell is one clickable segment of a toolbar row, in terminal cells.
type barCell struct {
	node   *html.Node
	x0, x1 int
}

type barRow struct {
	line  string
	cells []barCell
}

func (r *barRow) add(node *html.Node, s lipgloss.Style, label string) {
	out := s.Render(label)
	x := lipgloss.Width(r.line)
	r.line += out
	r.cells = append(r.cells, barCell{node: node, x0: x, x1: x + lipgloss.Width(out)})
}

func controlLabel(n *html.Node) string {
	label := strings.TrimSpace(dom.TextContent(n))
	if label == "" {
		label = dom.AttrValue(n, "title")
	}
	return runewidth.Truncate(label, maxLabelWidth, "…")
}

// layoutToolbar lays out the top-level controls, then the open child menu,
// then the open popup form.
func (e *Editor) layoutToolbar() []barRow {
	st := e.cfg.Style
	var top barRow
	var menu *html.Node
	for _, tool := range dom.Find(e.bar, ".wyg__tool") {
		btn := dom.FindOne(tool, "[data-action]")
		if btn == nil {
			continue
		}
		label := controlLabel(btn)
		s := st.Tool
		if dom.HasClass(btn, "active") {
			s = st.ToolActive
		}
		if head := dom.FindOne(tool, ".wyg__tool-has-child"); head != nil {
			top.add(btn, s, label)
			ms := st.Tool
			if dom.HasClass(tool, "active") {
				ms = st.ToolOpen
				menu = dom.FindOne(tool, ".wyg__tool-child")
			}
			top.add(dom.FindOne(head, ".more-tools-trigger"), ms, "▾")
			continue
		}
		top.add(btn, s, label)
	}
	rows := []barRow{top}

	if menu != nil {
		var r barRow
		for _, btn := range dom.Find(menu, "[data-action]") {
			s := st.Menu
			if dom.HasClass(btn, "active") {
				s = st.ToolActive
			}
			r.add(btn, s, controlLabel(btn))
		}
		rows = append(rows, r)
	}

	if p := e.activePopup(); p != nil {
		var r barRow
		for _, f := range dom.Find(p.panel, "label") {
			in := dom.FindOne(f, "input")
			if in == nil {
				continue
			}
			name := strings.TrimSpace(dom.TextContent(f))
			if dom.AttrValue(in, "type") == "checkbox" {
				mark := "[ ]"
				if dom.HasAttr(in, "checked") {
					mark = "[x]"
				}
				r.add(in, st.Field, mark+" "+name)
				continue
			}
			v := dom.AttrValue(in, "value")
			if v == "" {
				v = dom.AttrValue(in, "placeholder")
			}
			r.add(in, st.Field, name+": "+runewidth.Truncate(v, 24, "…"))
		}
		if b := dom.FindOne(p.panel, "[data-submit]"); b != nil {
			r.add(b, st.Submit, "["+dom.TextContent(b)+"]")
		}
		rows = append(rows, r)
	}
	return rows
}

// ToolbarHit maps a cell of the toolbar area to the control drawn there, or
// nil. Row 0 holds the top-level tools; an open child menu and an open popup
// form follow on the next rows.
func (e *Editor) ToolbarHit(x, y int) *html.Node {
	rows := e.layoutToolbar()
	if y < 0 || y >= len(rows) {
		return nil
	}
	for _, c := range rows[y].cells {
		if x >= c.x0 && x < c.x1 {
			return c.node
		}
	}
	return nil
}

// ToolbarHeight is the number of rows the toolbar currently occupies.
func (e *Editor) ToolbarHeight() int { return len(e.layoutToolbar()) }
