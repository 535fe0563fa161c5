package main

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
	"github.com/iw2rmb/wysiwyg/editor"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// model shows one editor of the page at a time. Popup text fields take the
// keyboard after a click until enter or esc.
type model struct {
	mgr    *editor.Manager
	shown  int
	field  *html.Node
	width  int
	height int
}

func newModel(mgr *editor.Manager) model {
	m := model{mgr: mgr}
	_ = mgr.Focus(m.current().ID())
	return m
}

func (m model) current() *editor.Editor { return m.mgr.All()[m.shown] }

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, e := range m.mgr.All() {
			e.SetSize(msg.Width, max(msg.Height-1, 0))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+n":
			m.field = nil
			m.shown = (m.shown + 1) % len(m.mgr.All())
			_ = m.mgr.Focus(m.current().ID())
			return m, nil
		}
		if m.field != nil {
			return m.updateField(msg)
		}

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m, m.mgr.Update(msg)
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	target, offset := m.hit(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion:
		return m, m.mgr.Update(editor.HoverMsg{Target: target})
	case msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft:
		return m, nil
	}

	if target == nil {
		m.field = nil
		return m, m.mgr.Update(editor.ClickMsg{Target: m.mgr.Document(), X: msg.X, Y: msg.Y})
	}
	switch {
	case dom.IsElement(target, "select"):
		return m, m.mgr.Update(editor.FieldMsg{Target: target, Value: nextOption(target)})
	case dom.IsElement(target, "input") && dom.AttrValue(target, "type") == "checkbox":
		on := !dom.HasAttr(target, "checked")
		return m, m.mgr.Update(editor.FieldMsg{Target: target, Value: strconv.FormatBool(on)})
	case dom.IsElement(target, "input"):
		m.field = target
	default:
		m.field = nil
	}
	return m, m.mgr.Update(editor.ClickMsg{Target: target, X: msg.X, Y: msg.Y, Offset: offset})
}

// hit maps a screen cell to the node drawn there. Empty surface rows map to
// the end of the editing area; the status row is outside the editor.
func (m model) hit(x, y int) (*html.Node, int) {
	e := m.current()
	if y < e.ToolbarHeight() {
		if n := e.ToolbarHit(x, y); n != nil {
			return n, 0
		}
		return e.Toolbar(), 0
	}
	if n, off := e.SurfaceHit(x, y); n != nil {
		return n, off
	}
	if m.height == 0 || y < m.height-1 {
		return e.Area(), dom.ChildCount(e.Area())
	}
	return nil, 0
}

func (m model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.field
	value := dom.AttrValue(f, "value")
	switch msg.Type {
	case tea.KeyEsc:
		m.field = nil
		return m, nil
	case tea.KeyEnter:
		m.field = nil
		if dom.AttrValue(f, "type") == "file" {
			return m, m.mgr.Update(editor.FileMsg{Target: f, Path: value})
		}
		if b := submitButton(f); b != nil {
			return m, m.mgr.Update(editor.ClickMsg{Target: b})
		}
		return m, nil
	case tea.KeyBackspace:
		if value == "" {
			return m, nil
		}
		_, size := utf8.DecodeLastRuneInString(value)
		value = value[:len(value)-size]
	case tea.KeySpace:
		value += " "
	case tea.KeyRunes:
		value += string(msg.Runes)
	default:
		return m, nil
	}
	return m, m.mgr.Update(editor.FieldMsg{Target: f, Value: value})
}

func (m model) View() string {
	e := m.current()
	status := fmt.Sprintf("editor %d/%d  %s", m.shown+1, len(m.mgr.All()), e.ID())
	if e.CodeView() {
		status += "  [source]"
	}
	if m.field != nil {
		status += "  editing " + dom.AttrValue(m.field, "name") + " (enter submits, esc leaves)"
	}
	return lipgloss.JoinVertical(lipgloss.Left, e.View(), statusStyle.Render(status))
}

func submitButton(field *html.Node) *html.Node {
	for p := field.Parent; p != nil; p = p.Parent {
		if b := dom.FindOne(p, "[data-submit]"); b != nil {
			return b
		}
	}
	return nil
}

// nextOption cycles a select to the option after the selected one.
func nextOption(sel *html.Node) string {
	opts := dom.Find(sel, "option")
	if len(opts) == 0 {
		return ""
	}
	for i, o := range opts {
		if dom.HasAttr(o, "selected") {
			return dom.AttrValue(opts[(i+1)%len(opts)], "value")
		}
	}
	return dom.AttrValue(opts[0], "value")
}
