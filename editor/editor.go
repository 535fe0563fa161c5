package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
	"github.com/iw2rmb/wysiwyg/toolbar"
)

// Class names and attributes the editor writes into the document.
const (
	HostClass    = "wyg"
	FocusedClass = "wyg--focused"
	AreaClass    = "wyg__editor-area"
	AreaAttr     = "data-editor-area"
	EditorAttr   = "data-editor"

	linkMarker  = "data-link-handled"
	tableMarker = "data-table-handled"
	mediaMarker = "data-media-handled"
)

var markerAttrs = []string{linkMarker, tableMarker, mediaMarker}

// Editor is one editor instance: a host element owning a toolbar and a
// content-editable surface.
type Editor struct {
	id  string
	mgr *Manager
	cfg Config
	log *zap.Logger

	host    *html.Node
	bar     *html.Node
	area    *html.Node
	surface *dom.Surface

	bus     bus
	recheck Debouncer
	states  map[string]bool

	focused  bool
	codeView bool

	popups       map[popupKind]*popup
	popover      *popover
	tableActions *html.Node
	hoverTable   *html.Node

	viewport viewport.Model
	width    int
	height   int
	drawn    drawnSurface
}

func newID() string {
	return "i-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func newEditor(m *Manager, host *html.Node) (*Editor, error) {
	cfg := m.cfg
	bar, err := toolbar.Render(cfg.Registry, cfg.Tools)
	if err != nil {
		return nil, err
	}

	id := newID()
	area := dom.Element("div",
		"class", AreaClass,
		AreaAttr, "",
		"contenteditable", "true",
	)
	// The host's previous content seeds the surface.
	seed := dom.Children(host)
	dom.RemoveChildren(host)
	dom.Append(area, seed...)

	dom.AddClass(host, HostClass)
	dom.SetAttr(host, EditorAttr, id)
	dom.Append(host, bar, area)

	e := &Editor{
		id:       id,
		mgr:      m,
		cfg:      cfg,
		log:      cfg.Logger.Named("editor").With(zap.String("editor", id)),
		host:     host,
		bar:      bar,
		area:     area,
		recheck:  Debouncer{Delay: cfg.RecheckDelay},
		states:   map[string]bool{},
		viewport: viewport.New(0, 0),
	}
	e.surface = dom.NewSurface(area, m.sel, dom.Options{
		HistoryLimit: cfg.HistoryLimit,
		Logger:       e.log,
	})
	e.bindPopups()
	e.postProcess()
	return e, nil
}

func (e *Editor) ID() string { return e.id }

func (e *Editor) Host() *html.Node { return e.host }

func (e *Editor) Toolbar() *html.Node { return e.bar }

// Area is the content-editable element.
func (e *Editor) Area() *html.Node { return e.area }

func (e *Editor) Surface() *dom.Surface { return e.surface }

func (e *Editor) Manager() *Manager { return e.mgr }

func (e *Editor) Focused() bool { return e.focused }

func (e *Editor) CodeView() bool { return e.codeView }

// Value serializes the surface content. Popovers, hover actions and scan
// markers are left out. In code view it returns the source text.
func (e *Editor) Value() string {
	if e.codeView {
		return dom.TextContent(e.area)
	}
	c := dom.Clone(e.area)
	for _, n := range dom.Find(c, "[contenteditable=false]") {
		dom.Remove(n)
	}
	dom.Walk(c, func(n *html.Node) bool {
		for _, k := range markerAttrs {
			dom.RemoveAttr(n, k)
		}
		return true
	})
	return dom.InnerHTML(c)
}

// SetValue replaces the content without emitting input. The replacement is
// recorded in history.
func (e *Editor) SetValue(markup string) error {
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return fmt.Errorf("editor: set value: %w", err)
	}
	if e.codeView {
		e.leaveCodeView()
	}
	e.closeTransient()
	e.surface.Edit(func() bool {
		dom.RemoveChildren(e.area)
		dom.Append(e.area, nodes...)
		return true
	})
	e.postProcess()
	return nil
}

func (e *Editor) focus() {
	if e.focused {
		return
	}
	e.focused = true
	dom.AddClass(e.host, FocusedClass)
	e.emit(Event{Name: EventFocus})
}

func (e *Editor) blur() {
	if !e.focused {
		return
	}
	e.focused = false
	dom.RemoveClass(e.host, FocusedClass)
	e.emitContent(EventChange)
	e.emit(Event{Name: EventBlur})
}

// contentChanged runs after every content mutation.
func (e *Editor) contentChanged() {
	e.postProcess()
	e.emitContent(EventInput)
}
