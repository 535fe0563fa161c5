package editor

import (
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// PostProcess normalizes tables under root: each table gets a wrapper unless
// it already sits somewhere inside one, and inline styles are stripped from
// tables and their row groups, rows and cells. It is safe to run repeatedly
// and reports whether it changed anything.
func PostProcess(root *html.Node) bool {
	changed := false
	for _, tbl := range dom.Find(root, "table") {
		if dom.ClosestClass(tbl.Parent, root, tableWrapperClass) == nil {
			dom.Wrap(tbl, dom.Element("div", "class", tableWrapperClass))
			changed = true
		}
		parts := append([]*html.Node{tbl}, dom.Find(tbl, "thead, tbody, tfoot, tr, th, td")...)
		for _, n := range parts {
			if dom.HasAttr(n, "style") {
				dom.RemoveAttr(n, "style")
				changed = true
			}
		}
	}
	return changed
}

func (e *Editor) postProcess() {
	if e.codeView {
		return
	}
	if PostProcess(e.area) {
		e.surface.Touch()
	}
	e.scan()
}

// scan marks links, table wrappers and media so they react to clicks and
// hover. Marked elements are skipped on later scans.
func (e *Editor) scan() {
	mark := func(selector, marker string) {
		for _, n := range dom.Find(e.area, selector) {
			if e.inChrome(n) || dom.HasAttr(n, marker) {
				continue
			}
			dom.SetAttr(n, marker, "true")
		}
	}
	mark("a", linkMarker)
	mark("."+tableWrapperClass, tableMarker)
	mark("img", mediaMarker)
	mark("."+mediaWrapperClass, mediaMarker)
}

// inChrome reports whether n belongs to editor overlays inside the surface.
func (e *Editor) inChrome(n *html.Node) bool {
	return dom.Closest(n, e.area, func(c *html.Node) bool {
		return dom.AttrValue(c, "contenteditable") == "false"
	}) != nil
}
