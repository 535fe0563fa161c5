package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/iw2rmb/wysiwyg/dom"
)

func TestNewManager_BuildsEditorPerHost(t *testing.T) {
	doc := parseDoc(t, `<div id="a" class="rich"><p>one</p></div><div id="b" class="rich"><p>two</p></div><div id="c"></div>`)
	m, err := NewManager(doc, Config{Selector: ".rich"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	all := m.All()
	if len(all) != 2 {
		t.Fatalf("editors: got %d, want 2", len(all))
	}

	a, b := all[0], all[1]
	if a.ID() == b.ID() {
		t.Fatalf("editor ids must differ: %q", a.ID())
	}
	if !strings.HasPrefix(a.ID(), "i-") || len(a.ID()) != len("i-")+6 {
		t.Fatalf("id shape: got %q", a.ID())
	}
	if got := dom.AttrValue(a.Host(), EditorAttr); got != a.ID() {
		t.Fatalf("host %s attr: got %q, want %q", EditorAttr, got, a.ID())
	}
	if !dom.HasClass(a.Host(), HostClass) {
		t.Fatalf("host should carry class %q", HostClass)
	}
	if a.Toolbar().Parent != a.Host() || a.Area().Parent != a.Host() {
		t.Fatalf("toolbar and area must be children of the host")
	}
	if got := dom.AttrValue(a.Area(), "contenteditable"); got != "true" {
		t.Fatalf("area contenteditable: got %q", got)
	}

	if got := m.Value(a.ID()); got != "<p>one</p>" {
		t.Fatalf("Value(a): got %q, want %q", got, "<p>one</p>")
	}
	if got := m.Value(""); got != "<p>one</p>" {
		t.Fatalf("Value(\"\") should read the first editor: got %q", got)
	}
	if got := m.ValueOf("#b"); got != "<p>two</p>" {
		t.Fatalf("ValueOf(#b): got %q, want %q", got, "<p>two</p>")
	}
	if got := m.Value("missing"); got != "" {
		t.Fatalf("Value(missing): got %q, want empty", got)
	}
}

func TestNewManager_NoMatchIsInert(t *testing.T) {
	m, err := NewManager(parseDoc(t, `<p>plain</p>`), Config{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if len(m.All()) != 0 {
		t.Fatalf("expected no editors")
	}
	if cmd := m.Update(ClickMsg{}); cmd != nil {
		t.Fatalf("inert manager should not schedule work")
	}
	if m.Value("") != "" {
		t.Fatalf("inert manager value should be empty")
	}
}

func TestNewManager_InvalidSelector(t *testing.T) {
	if _, err := NewManager(parseDoc(t, `<div></div>`), Config{Selector: "div[["}); err == nil {
		t.Fatalf("expected an error for an invalid selector")
	}
}

func TestNewManager_SkipsNestedHosts(t *testing.T) {
	doc := parseDoc(t, `<div data-wyg><div data-wyg><p>inner</p></div></div>`)
	m, err := NewManager(doc, Config{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if got := len(m.All()); got != 1 {
		t.Fatalf("editors: got %d, want 1", got)
	}
}

func TestManager_InstanceLookups(t *testing.T) {
	m, e := newTestEditor(t, `<p>Hello <b>world</b></p>`)

	n, _ := textNode(t, e, "world")
	if got := m.InstanceOf(n); got != e {
		t.Fatalf("InstanceOf(text in surface): got %v, want the editor", got)
	}
	if got := m.InstanceOf(e.Toolbar()); got != e {
		t.Fatalf("InstanceOf(toolbar): got %v, want the editor", got)
	}
	if got := m.InstanceOf(m.Document()); got != nil {
		t.Fatalf("InstanceOf(document): got %v, want nil", got)
	}
	if got := m.Instance("#ed b"); got != e {
		t.Fatalf("Instance(#ed b): got %v, want the editor", got)
	}
	if got := m.Get(e.ID()); got != e {
		t.Fatalf("Get: got %v, want the editor", got)
	}
	if got := m.Instance("div[["); got != nil {
		t.Fatalf("Instance with bad selector: got %v, want nil", got)
	}
}

func TestManager_FocusAndBlur(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus("nope"); !errors.Is(err, ErrUnknownEditor) {
		t.Fatalf("Focus(nope): got %v, want ErrUnknownEditor", err)
	}
	if err := m.Focus(e.ID()); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if !e.Focused() || m.Focused() != e || !dom.HasClass(e.Host(), FocusedClass) {
		t.Fatalf("editor should be focused")
	}
	if !e.Surface().HasSelection() {
		t.Fatalf("Focus should place a caret in the surface")
	}

	m.Blur()
	if e.Focused() || m.Focused() != nil || dom.HasClass(e.Host(), FocusedClass) {
		t.Fatalf("editor should be blurred")
	}
}

func TestEditor_SetValue(t *testing.T) {
	_, e := newTestEditor(t, `<p>old</p>`)
	if err := e.SetValue(`<p>new</p><table><tr><td style="color:red">x</td></tr></table>`); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	assertValue(t, e, `<p>new</p><div class="wyg-table-wrapper"><table><tbody><tr><td>x</td></tr></tbody></table></div>`)
	if !e.Surface().CanUndo() {
		t.Fatalf("SetValue should be undoable")
	}
}
