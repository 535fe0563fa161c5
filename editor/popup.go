package editor

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
	"github.com/iw2rmb/wysiwyg/toolbar"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type popupKind int

const (
	popupLink popupKind = iota
	popupTable
	popupMedia
)

func (k popupKind) String() string {
	switch k {
	case popupLink:
		return "link"
	case popupTable:
		return "table"
	case popupMedia:
		return "media"
	}
	return "popup(" + strconv.Itoa(int(k)) + ")"
}

var popupClasses = map[popupKind]struct{ trigger, panel string }{
	popupLink:  {toolbar.LinkTriggerClass, toolbar.LinkSettingClass},
	popupTable: {toolbar.TableTriggerClass, toolbar.TableSettingClass},
	popupMedia: {toolbar.MediaTriggerClass, toolbar.MediaSettingClass},
}

// popup is the state of one settings panel. The snapshot lives only while the
// panel is open.
type popup struct {
	kind    popupKind
	active  bool
	trigger *html.Node
	panel   *html.Node
	snap    Snapshot

	// Link being edited in update mode.
	target *html.Node
	// Local file picked for a media insert.
	file string
}

func (e *Editor) bindPopups() {
	e.popups = map[popupKind]*popup{}
	for kind, cls := range popupClasses {
		trigger := dom.FindOne(e.bar, "."+cls.trigger)
		if trigger == nil {
			continue
		}
		panel := dom.FindOne(trigger, "."+cls.panel)
		if panel == nil {
			continue
		}
		e.popups[kind] = &popup{kind: kind, trigger: trigger, panel: panel}
	}
}

// PopupOpen reports whether the link, table or media panel is open.
func (e *Editor) PopupOpen(name string) bool {
	for kind, p := range e.popups {
		if kind.String() == name {
			return p.active
		}
	}
	return false
}

// PopupPanel returns the settings panel of the named popup, or nil.
func (e *Editor) PopupPanel(name string) *html.Node {
	for kind, p := range e.popups {
		if kind.String() == name {
			return p.panel
		}
	}
	return nil
}

func (e *Editor) activePopup() *popup {
	for _, kind := range []popupKind{popupLink, popupTable, popupMedia} {
		if p := e.popups[kind]; p != nil && p.active {
			return p
		}
	}
	return nil
}

func (e *Editor) togglePopup(kind popupKind) {
	p := e.popups[kind]
	if p == nil {
		e.log.Debug("popup not rendered", zap.Stringer("popup", kind))
		return
	}
	if p.active {
		e.closePopup(p)
		return
	}
	var target *html.Node
	if kind == popupLink {
		target = e.linkAtSelection()
	}
	e.openPopup(p, target)
}

func (e *Editor) openPopup(p *popup, target *html.Node) {
	p.snap = e.TakeSnapshot()
	p.target = target
	p.file = ""

	var form *html.Node
	switch p.kind {
	case popupLink:
		form = linkForm(target)
	case popupTable:
		form = tableForm()
	case popupMedia:
		form = mediaForm()
	}
	dom.RemoveChildren(p.panel)
	dom.Append(p.panel, form)
	p.active = true
	dom.AddClass(p.trigger, "active")
}

func (e *Editor) closePopup(p *popup) {
	if !p.active {
		return
	}
	p.active = false
	p.snap = Snapshot{}
	p.target = nil
	p.file = ""
	dom.RemoveChildren(p.panel)
	dom.RemoveClass(p.trigger, "active")
}

func (e *Editor) submitPopup(p *popup) (tea.Cmd, error) {
	if !p.active {
		return nil, nil
	}
	switch p.kind {
	case popupLink:
		return nil, e.submitLink(p)
	case popupTable:
		return nil, e.submitTable(p)
	case popupMedia:
		return e.submitMedia(p)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAction, p.kind)
}

func (e *Editor) popupOf(n *html.Node) *popup {
	for _, p := range e.popups {
		if dom.Contains(p.panel, n) {
			return p
		}
	}
	return nil
}

func (p *popup) field(name string) *html.Node {
	return dom.FindOne(p.panel, fmt.Sprintf("[name=%s]", name))
}

func (p *popup) value(name string) string {
	return dom.AttrValue(p.field(name), "value")
}

func (p *popup) checked(name string) bool {
	return dom.HasAttr(p.field(name), "checked")
}

func formNode(kind popupKind, submitLabel string, fields ...*html.Node) *html.Node {
	form := dom.Element("div", "class", "wyg-popup-form", "data-form", kind.String())
	dom.Append(form, fields...)
	submit := dom.Element("button", "type", "button", "class", "wyg-submit", "data-submit", kind.String())
	dom.Append(submit, dom.Text(submitLabel))
	dom.Append(form, submit)
	return form
}

func inputField(label, typ, name, value, placeholder string) *html.Node {
	in := dom.Element("input", "type", typ, "name", name)
	if value != "" {
		dom.SetAttr(in, "value", value)
	}
	if placeholder != "" {
		dom.SetAttr(in, "placeholder", placeholder)
	}
	wrap := dom.Element("label", "class", "wyg-field")
	dom.Append(wrap, dom.Text(label), in)
	return wrap
}

func checkboxField(label, name string) *html.Node {
	wrap := dom.Element("label", "class", "wyg-field wyg-field--check")
	dom.Append(wrap, dom.Element("input", "type", "checkbox", "name", name), dom.Text(label))
	return wrap
}

// setField applies a FieldMsg value to a form control.
func setField(n *html.Node, value string) error {
	switch {
	case dom.IsElement(n, "input") && dom.AttrValue(n, "type") == "checkbox":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("checkbox %q: %w", dom.AttrValue(n, "name"), err)
		}
		if on {
			dom.SetAttr(n, "checked", "")
		} else {
			dom.RemoveAttr(n, "checked")
		}
	case dom.IsElement(n, "select"):
		for _, opt := range dom.Find(n, "option") {
			if dom.AttrValue(opt, "value") == value {
				dom.SetAttr(opt, "selected", "")
			} else {
				dom.RemoveAttr(opt, "selected")
			}
		}
		dom.SetAttr(n, "value", value)
	default:
		dom.SetAttr(n, "value", value)
	}
	return nil
}
