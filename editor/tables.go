package editor

import (
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

const (
	tableWrapperClass = "wyg-table-wrapper"
	tableActionsClass = "wyg-table-actions"
	tableActionAttr   = "data-tbl-action"
)

// Table hover actions.
const (
	TableAddRow       = "addrow"
	TableDeleteRow    = "deleterow"
	TableAddColumn    = "addcol"
	TableDeleteColumn = "deletecol"
)

var tableActionLabels = []struct{ action, label string }{
	{TableAddRow, "+ Row"},
	{TableDeleteRow, "- Row"},
	{TableAddColumn, "+ Col"},
	{TableDeleteColumn, "- Col"},
}

// tableOf accepts a table or its wrapper.
func tableOf(n *html.Node) *html.Node {
	if dom.IsElement(n, "table") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "table") {
			return c
		}
	}
	return nil
}

func section(tbl *html.Node, tag string) *html.Node {
	for c := tbl.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, tag) {
			return c
		}
	}
	return nil
}

func rowsOf(sec *html.Node) []*html.Node {
	var out []*html.Node
	for c := sec.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "tr") {
			out = append(out, c)
		}
	}
	return out
}

func cellsOf(tr *html.Node) []*html.Node {
	var out []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, "td", "th") {
			out = append(out, c)
		}
	}
	return out
}

func newCell(tag string) *html.Node {
	c := dom.Element(tag)
	dom.Append(c, dom.Element("br"))
	return c
}

// AddRow appends a body row with as many cells as the first body row (one if
// the body is empty). A missing body is created.
func AddRow(n *html.Node) bool {
	tbl := tableOf(n)
	if tbl == nil {
		return false
	}
	body := section(tbl, "tbody")
	if body == nil {
		body = dom.Element("tbody")
		if foot := section(tbl, "tfoot"); foot != nil {
			dom.InsertBefore(foot, body)
		} else {
			dom.Append(tbl, body)
		}
	}
	cols := 1
	if rows := rowsOf(body); len(rows) > 0 {
		cols = max(len(cellsOf(rows[0])), 1)
	}
	tr := dom.Element("tr")
	for range cols {
		dom.Append(tr, newCell("td"))
	}
	dom.Append(body, tr)
	return true
}

// DeleteRow removes the last body row unless it is the only one.
func DeleteRow(n *html.Node) bool {
	tbl := tableOf(n)
	if tbl == nil {
		return false
	}
	body := section(tbl, "tbody")
	if body == nil {
		return false
	}
	rows := rowsOf(body)
	if len(rows) <= 1 {
		return false
	}
	dom.Remove(rows[len(rows)-1])
	return true
}

// AddColumn adds one cell to every row of each present section, at the index
// equal to the first row's cell count. Head rows get th cells.
func AddColumn(n *html.Node) bool {
	tbl := tableOf(n)
	if tbl == nil {
		return false
	}
	changed := false
	for _, tag := range []string{"thead", "tbody", "tfoot"} {
		sec := section(tbl, tag)
		if sec == nil {
			continue
		}
		rows := rowsOf(sec)
		if len(rows) == 0 {
			continue
		}
		pos := len(cellsOf(rows[0]))
		cell := "td"
		if tag == "thead" {
			cell = "th"
		}
		for _, tr := range rows {
			cells := cellsOf(tr)
			if pos < len(cells) {
				dom.InsertBefore(cells[pos], newCell(cell))
			} else {
				dom.Append(tr, newCell(cell))
			}
			changed = true
		}
	}
	return changed
}

// DeleteColumn removes the last cell of every row that has more than one.
func DeleteColumn(n *html.Node) bool {
	tbl := tableOf(n)
	if tbl == nil {
		return false
	}
	changed := false
	for _, tag := range []string{"thead", "tbody", "tfoot"} {
		sec := section(tbl, tag)
		if sec == nil {
			continue
		}
		for _, tr := range rowsOf(sec) {
			cells := cellsOf(tr)
			if len(cells) <= 1 {
				continue
			}
			dom.Remove(cells[len(cells)-1])
			changed = true
		}
	}
	return changed
}

var tableOps = map[string]func(*html.Node) bool{
	TableAddRow:       AddRow,
	TableDeleteRow:    DeleteRow,
	TableAddColumn:    AddColumn,
	TableDeleteColumn: DeleteColumn,
}

// TableAction runs a hover action on the wrapper or table w.
func (e *Editor) TableAction(w *html.Node, action string) bool {
	op, ok := tableOps[action]
	if !ok || !e.surface.Contains(w) {
		return false
	}
	if !e.surface.Edit(func() bool { return op(w) }) {
		return false
	}
	e.contentChanged()
	return true
}

// hoverAt shows the hover actions on the marked wrapper under target and
// hides them elsewhere.
func (e *Editor) hoverAt(target *html.Node) {
	var w *html.Node
	if target != nil && e.surface.Contains(target) {
		w = dom.ClosestAttr(target, e.area, tableMarker)
	}
	if w == e.hoverTable {
		return
	}
	e.hideTableActions()
	if w == nil {
		return
	}
	actions := dom.Element("div", "class", tableActionsClass, "contenteditable", "false")
	for _, a := range tableActionLabels {
		b := dom.Element("button", "type", "button", tableActionAttr, a.action)
		dom.Append(b, dom.Text(a.label))
		dom.Append(actions, b)
	}
	dom.Append(w, actions)
	e.hoverTable = w
	e.tableActions = actions
}

func (e *Editor) hideTableActions() {
	dom.Remove(e.tableActions)
	e.tableActions = nil
	e.hoverTable = nil
}

// TableActions returns the visible hover actions, or nil.
func (e *Editor) TableActions() *html.Node { return e.tableActions }
