package editor

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// Manager owns the editors of one document. Construct it once and pass it to
// anything that needs lookup; there is no package-level registry.
//
// Lookups are safe from any goroutine. Update and every editing operation
// must run on the UI goroutine.
type Manager struct {
	cfg Config
	log *zap.Logger
	doc *html.Node
	sel *dom.Selection

	mu      sync.RWMutex
	editors []*Editor
	byID    map[string]*Editor
	byHost  map[*html.Node]*Editor
	focused *Editor
}

// NewManager builds one editor per element of doc matching cfg.Selector.
// No match leaves the manager inert; an invalid selector is an error.
func NewManager(doc *html.Node, cfg Config) (*Manager, error) {
	cfg = cfg.withDefaults()
	hosts, err := dom.QueryAll(doc, cfg.Selector)
	if err != nil {
		return nil, fmt.Errorf("editor: selector %q: %w", cfg.Selector, err)
	}

	m := &Manager{
		cfg:    cfg,
		log:    cfg.Logger.Named("editor"),
		doc:    doc,
		sel:    dom.NewSelection(),
		byID:   map[string]*Editor{},
		byHost: map[*html.Node]*Editor{},
	}
	for _, host := range hosts {
		// A host nested in an earlier host now lives inside its surface.
		if m.InstanceOf(host) != nil {
			continue
		}
		e, err := newEditor(m, host)
		if err != nil {
			return nil, fmt.Errorf("editor: build %s: %w", dom.AttrValue(host, "id"), err)
		}
		m.mu.Lock()
		m.editors = append(m.editors, e)
		m.byID[e.id] = e
		m.byHost[host] = e
		m.mu.Unlock()
	}
	m.log.Debug("manager ready", zap.String("selector", cfg.Selector), zap.Int("editors", len(m.editors)))
	return m, nil
}

func (m *Manager) Document() *html.Node { return m.doc }

// Selection is the document selection shared by every editor.
func (m *Manager) Selection() *dom.Selection { return m.sel }

func (m *Manager) Config() Config { return m.cfg }

// Get returns the editor with the given ID, or nil.
func (m *Manager) Get(id string) *Editor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byID[id]
}

// All returns the editors in document order.
func (m *Manager) All() []*Editor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Editor(nil), m.editors...)
}

// InstanceOf returns the editor owning n: its host, its surface, or any node
// inside them.
func (m *Manager) InstanceOf(n *html.Node) *Editor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for ; n != nil; n = n.Parent {
		if e, ok := m.byHost[n]; ok {
			return e
		}
	}
	return nil
}

// Instance returns the editor owning the first node matching selector.
func (m *Manager) Instance(selector string) *Editor {
	nodes, err := dom.QueryAll(m.doc, selector)
	if err != nil {
		m.log.Debug("instance lookup", zap.String("selector", selector), zap.Error(err))
		return nil
	}
	for _, n := range nodes {
		if e := m.InstanceOf(n); e != nil {
			return e
		}
	}
	return nil
}

// Value returns the content of the editor with the given ID. An empty id
// means the first editor. Unknown ids yield "".
func (m *Manager) Value(id string) string {
	var e *Editor
	if id == "" {
		if all := m.All(); len(all) > 0 {
			e = all[0]
		}
	} else {
		e = m.Get(id)
	}
	if e == nil {
		return ""
	}
	return e.Value()
}

func (m *Manager) ValueOf(selector string) string {
	if e := m.Instance(selector); e != nil {
		return e.Value()
	}
	return ""
}

// On subscribes fn to events named name on the host of editor id.
func (m *Manager) On(id string, name EventName, fn Listener) (Subscription, error) {
	e := m.Get(id)
	if e == nil {
		return Subscription{}, fmt.Errorf("%w: %q", ErrUnknownEditor, id)
	}
	return Subscription{EditorID: e.id, id: e.bus.add(false, name, fn)}, nil
}

// OnElement subscribes fn on the editor owning n. Nodes inside the surface
// bind to the surface; anything else binds to the host.
func (m *Manager) OnElement(n *html.Node, name EventName, fn Listener) (Subscription, error) {
	e := m.InstanceOf(n)
	if e == nil {
		return Subscription{}, fmt.Errorf("%w: no editor owns the element", ErrUnknownEditor)
	}
	onSurface := dom.Contains(e.area, n)
	return Subscription{EditorID: e.id, id: e.bus.add(onSurface, name, fn)}, nil
}

func (m *Manager) OnSelector(selector string, name EventName, fn Listener) (Subscription, error) {
	nodes, err := dom.QueryAll(m.doc, selector)
	if err != nil {
		return Subscription{}, fmt.Errorf("editor: selector %q: %w", selector, err)
	}
	for _, n := range nodes {
		if m.InstanceOf(n) != nil {
			return m.OnElement(n, name, fn)
		}
	}
	return Subscription{}, fmt.Errorf("%w: selector %q", ErrUnknownEditor, selector)
}

// Off removes a listener. It reports whether the listener was registered.
func (m *Manager) Off(sub Subscription) bool {
	e := m.Get(sub.EditorID)
	if e == nil {
		return false
	}
	return e.bus.remove(sub.id)
}

// Focused returns the editor holding focus, or nil.
func (m *Manager) Focused() *Editor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused
}

// Focus moves focus to the editor with the given ID.
func (m *Manager) Focus(id string) error {
	e := m.Get(id)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrUnknownEditor, id)
	}
	m.setFocus(e)
	if !e.surface.HasSelection() {
		e.surface.CaretToEnd()
	}
	return nil
}

// Blur removes focus from every editor.
func (m *Manager) Blur() { m.setFocus(nil) }

func (m *Manager) setFocus(e *Editor) {
	m.mu.Lock()
	prev := m.focused
	m.focused = e
	m.mu.Unlock()
	if prev == e {
		return
	}
	if prev != nil {
		prev.blur()
	}
	if e != nil {
		e.focus()
	}
}
