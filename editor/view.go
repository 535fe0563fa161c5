package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
	"github.com/iw2rmb/wysiwyg/internal/grapheme"
)

// SetSize sets the terminal area available to the editor, toolbar included.
func (e *Editor) SetSize(width, height int) {
	e.width, e.height = max(width, 0), max(height, 0)
	e.viewport.Width = e.width
}

// View renders the toolbar rows above the editing surface. Without a size
// the whole surface is rendered.
func (e *Editor) View() string {
	rows := e.layoutToolbar()
	parts := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		parts = append(parts, r.line)
	}

	v := e.renderSurface()
	e.drawn = drawnSurface{top: len(rows), cells: v.cells}
	if e.height <= 0 {
		parts = append(parts, strings.Join(v.lines, "\n"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	e.viewport.Height = max(e.height-len(rows), 1)
	e.viewport.SetContent(strings.Join(v.lines, "\n"))
	if c := v.caretLine; c >= 0 {
		switch {
		case c < e.viewport.YOffset:
			e.viewport.SetYOffset(c)
		case c >= e.viewport.YOffset+e.viewport.Height:
			e.viewport.SetYOffset(c - e.viewport.Height + 1)
		}
	}
	e.drawn.yOffset = e.viewport.YOffset
	parts = append(parts, e.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// surfaceCell maps a drawn segment back to the boundary it stands for.
type surfaceCell struct {
	node   *html.Node
	offset int
	x0, x1 int
}

// drawnSurface is the layout of the last View, used for hit testing.
type drawnSurface struct {
	top     int
	yOffset int
	cells   [][]surfaceCell
}

// SurfaceHit maps a cell of the last rendered view to a surface boundary:
// the node under (x, y) and the caret offset in it. Points right of a line's
// end map to the end of its last segment. Rows above the surface or past its
// content return nil.
func (e *Editor) SurfaceHit(x, y int) (*html.Node, int) {
	row := y - e.drawn.top + e.drawn.yOffset
	if y < e.drawn.top || row < 0 || row >= len(e.drawn.cells) {
		return nil, 0
	}
	cells := e.drawn.cells[row]
	if len(cells) == 0 {
		return nil, 0
	}
	for _, c := range cells {
		if x >= c.x0 && x < c.x1 {
			return c.node, c.offset
		}
	}
	last := cells[len(cells)-1]
	if x < last.x0 {
		return cells[0].node, cells[0].offset
	}
	if dom.IsText(last.node) {
		return last.node, min(last.offset+1, dom.Length(last.node))
	}
	return last.node, last.offset
}

// surfaceView accumulates terminal lines while walking the surface.
type surfaceView struct {
	st    Style
	caret dom.Point
	show  bool
	spans map[*html.Node][2]int
	kinds []sourceKind

	lines     []string
	cells     [][]surfaceCell
	caretLine int

	cur strings.Builder
	row []surfaceCell
	x   int
}

// renderSurface draws the surface content and records the line holding the
// caret, or -1.
func (e *Editor) renderSurface() *surfaceView {
	v := &surfaceView{st: e.cfg.Style, caretLine: -1}
	if r, ok := e.surface.Range(); ok {
		v.spans = map[*html.Node][2]int{}
		r.EachText(func(n *html.Node, from, to int) {
			v.spans[n] = [2]int{from, to}
		})
		v.caret = e.surface.Selection().Focus()
		v.show = e.focused
	}

	if e.codeView {
		if c := e.area.FirstChild; dom.IsText(c) && c.NextSibling == nil {
			v.kinds = classifySource(c.Data)
		}
		v.children(e.area, e.cfg.Style.Source)
	} else {
		v.children(e.area, e.cfg.Style.Text)
	}
	if v.cur.Len() > 0 || len(v.lines) == 0 {
		v.flush()
	}
	return v
}

func (v *surfaceView) put(n *html.Node, offset int, out string) {
	w := lipgloss.Width(out)
	v.row = append(v.row, surfaceCell{node: n, offset: offset, x0: v.x, x1: v.x + w})
	v.cur.WriteString(out)
	v.x += w
}

func (v *surfaceView) flush() {
	v.lines = append(v.lines, v.cur.String())
	v.cells = append(v.cells, v.row)
	v.cur.Reset()
	v.row = nil
	v.x = 0
}

func (v *surfaceView) breakLine() {
	if v.cur.Len() > 0 {
		v.flush()
	}
}

func (v *surfaceView) drawCaret(n *html.Node, offset int, under string) {
	if under == "" {
		under = " "
	}
	v.put(n, offset, v.st.Caret.Render(under))
	v.caretLine = len(v.lines)
}

func (v *surfaceView) atCaret(n *html.Node, offset int) bool {
	return v.show && v.caret.Node == n && v.caret.Offset == offset
}

func (v *surfaceView) children(n *html.Node, s lipgloss.Style) {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v.atCaret(n, i) {
			v.drawCaret(n, i, "")
		}
		v.node(c, s)
		i++
	}
	if v.atCaret(n, i) {
		v.drawCaret(n, i, "")
	}
}

func (v *surfaceView) node(n *html.Node, s lipgloss.Style) {
	switch n.Type {
	case html.TextNode:
		v.text(n, s)
		return
	case html.ElementNode:
	default:
		return
	}

	if dom.AttrValue(n, "contenteditable") == "false" {
		v.chrome(n)
		return
	}

	switch n.Data {
	case "br":
		v.flush()
	case "img":
		v.put(n, 0, v.st.Chrome.Render("[image: "+dom.AttrValue(n, "alt")+"]"))
	case "video", "iframe":
		v.put(n, 0, v.st.Chrome.Render("[video: "+dom.AttrValue(n, "src")+"]"))
	case "td", "th":
		v.children(n, s)
		v.put(n, dom.ChildCount(n), v.st.Chrome.Render(" | "))
	case "li":
		v.breakLine()
		v.put(n, 0, "• ")
		v.children(n, s)
		v.breakLine()
	default:
		if dom.IsBlock(n) {
			v.breakLine()
			v.children(n, s)
			v.breakLine()
			return
		}
		v.children(n, inlineStyle(n, s, v.st))
	}
}

func (v *surfaceView) text(n *html.Node, s lipgloss.Style) {
	span, selected := v.spans[n]
	sel := v.st.Selection.Inherit(s)
	off := 0
	for _, g := range grapheme.Split(n.Data) {
		at := off
		off += utf8.RuneCountInString(g)
		if g == "\n" {
			if v.atCaret(n, at) {
				v.drawCaret(n, at, "")
			}
			v.flush()
			continue
		}
		cs := s
		if at < len(v.kinds) {
			cs = v.st.source(v.kinds[at], s)
		}
		switch {
		case v.atCaret(n, at):
			v.drawCaret(n, at, g)
		case selected && at >= span[0] && at < span[1]:
			v.put(n, at, sel.Render(g))
		default:
			v.put(n, at, cs.Render(g))
		}
	}
	if v.atCaret(n, off) {
		v.drawCaret(n, off, "")
	}
}

// chrome draws an overlay as its control labels, each one clickable.
func (v *surfaceView) chrome(n *html.Node) {
	controls := dom.Find(n, "a, button, select")
	if len(controls) == 0 {
		return
	}
	v.put(n, 0, v.st.Chrome.Render("⟨"))
	for i, c := range controls {
		if i > 0 {
			v.put(n, 0, v.st.Chrome.Render(" | "))
		}
		label := strings.TrimSpace(dom.TextContent(c))
		if dom.IsElement(c, "select") {
			label = ""
			if o := dom.FindOne(c, "option[selected]"); o != nil {
				label = dom.TextContent(o)
			}
		}
		v.put(c, 0, v.st.Chrome.Render(label))
	}
	v.put(n, 0, v.st.Chrome.Render("⟩"))
}

func inlineStyle(n *html.Node, s lipgloss.Style, st Style) lipgloss.Style {
	switch n.Data {
	case "b", "strong":
		return s.Bold(true)
	case "i", "em":
		return s.Italic(true)
	case "u":
		return s.Underline(true)
	case "s", "strike", "del":
		return s.Strikethrough(true)
	case "a":
		return st.Link.Inherit(s)
	case "code":
		return st.Source.Inherit(s)
	}
	return s
}
