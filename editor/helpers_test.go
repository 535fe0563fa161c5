package editor

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

func parseDoc(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// newTestEditor builds a manager over a single host holding content.
func newTestEditor(t *testing.T, content string) (*Manager, *Editor) {
	t.Helper()
	return newTestEditorConfig(t, content, Config{})
}

func newTestEditorConfig(t *testing.T, content string, cfg Config) (*Manager, *Editor) {
	t.Helper()
	doc := parseDoc(t, `<html><body><div id="ed" data-wyg>`+content+`</div></body></html>`)
	m, err := NewManager(doc, cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	all := m.All()
	if len(all) != 1 {
		t.Fatalf("editors: got %d, want 1", len(all))
	}
	return m, all[0]
}

func textNode(t *testing.T, e *Editor, sub string) (*html.Node, int) {
	t.Helper()
	for _, n := range dom.TextNodes(e.Area()) {
		if i := strings.Index(n.Data, sub); i >= 0 {
			return n, utf8.RuneCountInString(n.Data[:i])
		}
	}
	t.Fatalf("text %q not found in %q", sub, e.Value())
	return nil, 0
}

// selectText selects the first occurrence of sub inside a single text node.
func selectText(t *testing.T, e *Editor, sub string) {
	t.Helper()
	n, start := textNode(t, e, sub)
	e.Surface().Select(dom.Range{
		Start: dom.Point{Node: n, Offset: start},
		End:   dom.Point{Node: n, Offset: start + utf8.RuneCountInString(sub)},
	})
}

// caretAfter collapses the selection right after sub.
func caretAfter(t *testing.T, e *Editor, sub string) {
	t.Helper()
	n, start := textNode(t, e, sub)
	e.Surface().Select(dom.Caret(n, start+utf8.RuneCountInString(sub)))
}

func assertValue(t *testing.T, e *Editor, want string) {
	t.Helper()
	if got := e.Value(); got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
}

// control returns the toolbar button for action (and value, when not empty).
func control(t *testing.T, e *Editor, action, value string) *html.Node {
	t.Helper()
	for _, b := range dom.Find(e.Toolbar(), "[data-action]") {
		if dom.AttrValue(b, "data-action") == action && (value == "" || dom.AttrValue(b, "data-value") == value) {
			return b
		}
	}
	t.Fatalf("no toolbar control %s %s", action, value)
	return nil
}

func click(m *Manager, n *html.Node) tea.Cmd {
	return m.Update(ClickMsg{Target: n})
}

// setField sends a FieldMsg for the named control of an open popup.
func setPopupField(t *testing.T, m *Manager, e *Editor, popupName, field, value string) {
	t.Helper()
	panel := e.PopupPanel(popupName)
	n := dom.FindOne(panel, "[name="+field+"]")
	if n == nil {
		t.Fatalf("%s popup has no field %q", popupName, field)
	}
	m.Update(FieldMsg{Target: n, Value: value})
}

func submitPopup(t *testing.T, m *Manager, e *Editor, popupName string) tea.Cmd {
	t.Helper()
	b := dom.FindOne(e.PopupPanel(popupName), "[data-submit]")
	if b == nil {
		t.Fatalf("%s popup has no submit button", popupName)
	}
	return click(m, b)
}

// runCmd executes cmd and feeds every non-tick message back into m.
func runCmd(m *Manager, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(m, c)
		}
	case nil:
	default:
		if next := m.Update(msg); next != nil {
			if _, ok := msg.(RecheckMsg); !ok {
				runCmd(m, next)
			}
		}
	}
}

type memClipboard struct {
	html string
	text string
}

func (c *memClipboard) ReadText() (string, error) { return c.text, nil }
func (c *memClipboard) WriteText(s string) error  { c.text = s; return nil }
func (c *memClipboard) ReadHTML() (string, error) { return c.html, nil }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
