package editor

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

func (e *Editor) handleClick(msg ClickMsg) tea.Cmd {
	t := msg.Target
	switch {
	case dom.Contains(e.bar, t):
		return e.clickToolbar(t)

	case e.popover != nil && dom.Contains(e.popover.node, t):
		e.clickPopover(t)

	case dom.ClosestAttr(t, e.area, tableActionAttr) != nil:
		btn := dom.ClosestAttr(t, e.area, tableActionAttr)
		if w := dom.ClosestAttr(btn, e.area, tableMarker); w != nil {
			e.TableAction(w, dom.AttrValue(btn, tableActionAttr))
		}

	case e.codeView:
		e.placeCaret(t, msg.Offset)

	default:
		e.placeCaret(t, msg.Offset)
		if a := dom.ClosestAttr(t, e.area, linkMarker); dom.IsElement(a, "a") {
			e.OpenLinkPopover(a, msg.X, msg.Y)
		} else if m := dom.ClosestAttr(t, e.area, mediaMarker); m != nil {
			e.OpenMediaPopover(m)
		}
	}
	return e.recheck.Trigger(e.id)
}

func (e *Editor) clickToolbar(t *html.Node) tea.Cmd {
	if b := dom.ClosestAttr(t, e.bar, "data-submit"); b != nil {
		p := e.popupOf(b)
		if p == nil {
			return nil
		}
		cmd, err := e.submitPopup(p)
		if err != nil {
			e.log.Debug("submit", zap.Stringer("popup", p.kind), zap.Error(err))
		}
		return tea.Batch(cmd, e.recheck.Trigger(e.id))
	}
	if e.popupOf(t) != nil {
		return nil
	}

	if trig := dom.ClosestClass(t, e.bar, "more-tools-trigger"); trig != nil {
		if tool := dom.ClosestClass(trig, e.bar, "wyg__tool"); tool != nil {
			dom.ToggleClass(tool, "active")
		}
		return nil
	}

	btn := dom.ClosestAttr(t, e.bar, "data-action")
	if btn == nil {
		return nil
	}
	cmd, _ := e.FireAction(dom.AttrValue(btn, "data-action"), dom.AttrValue(btn, "data-value"))
	// Picking a child tool closes its menu.
	if dom.ClosestClass(btn, e.bar, "wyg__tool-child") != nil {
		if tool := dom.ClosestClass(btn, e.bar, "wyg__tool"); tool != nil {
			dom.RemoveClass(tool, "active")
		}
	}
	return cmd
}

func (e *Editor) clickPopover(t *html.Node) {
	pop := e.popover
	switch pop.kind {
	case popoverLink:
		switch {
		case dom.ClosestClass(t, pop.node, editLinkClass) != nil:
			a := pop.owner
			e.closePopover()
			e.OpenLink(a)
		case dom.ClosestClass(t, pop.node, unlinkClass) != nil:
			e.Unlink(pop.owner)
		}
	case popoverMedia:
		if b := dom.ClosestAttr(t, pop.node, mediaActionAttr); b != nil && dom.IsElement(b, "button") {
			e.MediaAction(pop.owner, dom.AttrValue(b, mediaActionAttr), "")
		}
	}
}

func (e *Editor) placeCaret(t *html.Node, offset int) {
	if !e.surface.Contains(t) || e.inChrome(t) {
		return
	}
	offset = min(max(offset, 0), dom.Length(t))
	e.surface.Select(dom.Caret(t, offset))
}

func (e *Editor) updateField(msg FieldMsg) tea.Cmd {
	t := msg.Target
	if pop := e.popover; pop != nil && pop.kind == popoverMedia && dom.Contains(pop.node, t) {
		if dom.AttrValue(t, mediaActionAttr) != MediaWidth {
			return nil
		}
		if err := setField(t, msg.Value); err != nil {
			e.log.Debug("field", zap.Error(err))
			return nil
		}
		e.MediaAction(pop.owner, MediaWidth, msg.Value)
		return e.recheck.Trigger(e.id)
	}
	if e.popupOf(t) == nil {
		return nil
	}
	if err := setField(t, msg.Value); err != nil {
		e.log.Debug("field", zap.Error(err))
	}
	return nil
}

func (e *Editor) updateFile(msg FileMsg) {
	p := e.popupOf(msg.Target)
	if p == nil || p.kind != popupMedia {
		return
	}
	p.file = msg.Path
	dom.SetAttr(msg.Target, "value", filepath.Base(msg.Path))
}
