package editor

import (
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

const (
	popoverClass      = "wyg-popover"
	editLinkClass     = "wyg-editlink"
	unlinkClass       = "wyg-unlink"
	mediaActionsClass = "wyg-media-actions"
	mediaActionAttr   = "data-media-action"
	mediaWrapperClass = "media-wrapper"
)

// Media popover actions.
const (
	MediaAlignLeft   = "align-left"
	MediaAlignCenter = "align-center"
	MediaAlignRight  = "align-right"
	MediaInline      = "inline"
	MediaWidth       = "width"
	MediaDelete      = "delete"
)

var (
	mediaAligns = []string{MediaAlignLeft, MediaAlignCenter, MediaAlignRight}

	// auto, then w-5 .. w-100 in 5% steps.
	mediaWidths = func() []string {
		out := []string{"auto"}
		for w := 5; w <= 100; w += 5 {
			out = append(out, "w-"+strconv.Itoa(w))
		}
		return out
	}()
)

type popoverKind int

const (
	popoverLink popoverKind = iota
	popoverMedia
)

// popover is the open overlay and the element it belongs to.
type popover struct {
	kind  popoverKind
	node  *html.Node
	owner *html.Node
}

// Popover returns the open popover element, or nil.
func (e *Editor) Popover() *html.Node {
	if e.popover == nil {
		return nil
	}
	return e.popover.node
}

func (e *Editor) closePopover() {
	if e.popover == nil {
		return
	}
	dom.Remove(e.popover.node)
	e.popover = nil
}

// closeTransient removes every non-editable overlay from the surface.
func (e *Editor) closeTransient() {
	e.popover = nil
	e.tableActions = nil
	e.hoverTable = nil
	for _, n := range dom.Find(e.area, "[contenteditable=false]") {
		dom.Remove(n)
	}
}

// OpenLinkPopover shows the popover of anchor a near (x, y). Inside a table
// wrapper the wrapper's offset is subtracted.
func (e *Editor) OpenLinkPopover(a *html.Node, x, y int) {
	if !dom.IsElement(a, "a") || !e.surface.Contains(a) {
		return
	}
	e.closePopover()
	if w := dom.ClosestClass(a, e.area, tableWrapperClass); w != nil {
		ox, oy := e.cfg.offset(w)
		x, y = x-ox, y-oy
	}

	href := dom.AttrValue(a, "href")
	pop := dom.Element("span",
		"class", popoverClass,
		"contenteditable", "false",
	)
	dom.SetStyleProperty(pop, "top", fmt.Sprintf("%dpx", y))
	dom.SetStyleProperty(pop, "left", fmt.Sprintf("%dpx", x))
	link := dom.Element("a", "href", href, "role", "popover", "target", "_blank")
	dom.Append(link, dom.Text(href))
	edit := dom.Element("button", "type", "button", "class", editLinkClass)
	dom.Append(edit, dom.Text("Edit"))
	unlink := dom.Element("button", "type", "button", "class", unlinkClass)
	dom.Append(unlink, dom.Text("Unlink"))
	dom.Append(pop, link, edit, unlink)

	dom.InsertAfter(a, pop)
	e.popover = &popover{kind: popoverLink, node: pop, owner: a}
}

// OpenMediaPopover shows alignment, width and delete controls for an image
// or media wrapper.
func (e *Editor) OpenMediaPopover(m *html.Node) {
	if !e.surface.Contains(m) {
		return
	}
	e.closePopover()

	pop := dom.Element("div", "class", mediaActionsClass, "contenteditable", "false")
	for _, a := range []struct{ action, label string }{
		{MediaAlignLeft, "Left"},
		{MediaAlignCenter, "Center"},
		{MediaAlignRight, "Right"},
		{MediaInline, "Inline"},
	} {
		b := dom.Element("button", "type", "button", mediaActionAttr, a.action)
		dom.Append(b, dom.Text(a.label))
		dom.Append(pop, b)
	}

	current := "auto"
	for _, c := range dom.Classes(m) {
		if slices.Contains(mediaWidths, c) {
			current = c
		}
	}
	sel := dom.Element("select", "name", "width", mediaActionAttr, MediaWidth, "value", current)
	for _, w := range mediaWidths {
		label := w
		if w != "auto" {
			label = w[2:] + "%"
		}
		opt := dom.Element("option", "value", w)
		if w == current {
			dom.SetAttr(opt, "selected", "")
		}
		dom.Append(opt, dom.Text(label))
		dom.Append(sel, opt)
	}
	del := dom.Element("button", "type", "button", mediaActionAttr, MediaDelete)
	dom.Append(del, dom.Text("Delete"))
	dom.Append(pop, sel, del)

	dom.InsertAfter(m, pop)
	e.popover = &popover{kind: popoverMedia, node: pop, owner: m}
}

// MediaAction applies a media popover action to m. value is the width class
// for MediaWidth.
func (e *Editor) MediaAction(m *html.Node, action, value string) bool {
	if !e.surface.Contains(m) {
		return false
	}
	if action == MediaDelete {
		e.closePopover()
	}
	changed := e.surface.Edit(func() bool {
		switch action {
		case MediaAlignLeft, MediaAlignCenter, MediaAlignRight:
			for _, c := range mediaAligns {
				dom.RemoveClass(m, c)
			}
			dom.AddClass(m, action)
		case MediaInline:
			dom.ToggleClass(m, "inline")
		case MediaWidth:
			if !slices.Contains(mediaWidths, value) {
				return false
			}
			for _, c := range mediaWidths {
				dom.RemoveClass(m, c)
			}
			if value != "auto" {
				dom.AddClass(m, value)
			}
		case MediaDelete:
			dom.Remove(m)
		default:
			return false
		}
		return true
	})
	if changed {
		e.contentChanged()
	}
	return changed
}

// dismissOutside closes popups, popovers and child menus that target is
// outside of.
func (e *Editor) dismissOutside(target *html.Node) {
	for _, p := range e.popups {
		if p.active && !dom.Contains(p.trigger, target) {
			e.closePopup(p)
		}
	}
	if pop := e.popover; pop != nil && !dom.Contains(pop.node, target) && !dom.Contains(pop.owner, target) {
		e.closePopover()
	}
	for _, tool := range dom.Find(e.bar, ".wyg__tool.active") {
		if !dom.Contains(tool, target) {
			dom.RemoveClass(tool, "active")
		}
	}
}
