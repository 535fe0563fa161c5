package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/wysiwyg/dom"
)

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m, e := newTestEditor(t, `<p>ab</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	n, _ := textNode(t, e, "ab")
	e.Surface().Select(dom.Caret(n, 0))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(keyRunes("X"))
	assertValue(t, e, `<p>aXb</p>`)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assertValue(t, e, `<p>aX b</p>`)

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assertValue(t, e, `<p>ab</p>`)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assertValue(t, e, `<p>a<br/>b</p>`)
}

func TestUpdate_KeysIgnoredWithoutFocus(t *testing.T) {
	m, e := newTestEditor(t, `<p>ab</p>`)
	caretAfter(t, e, "a")
	if cmd := m.Update(keyRunes("X")); cmd != nil {
		t.Fatalf("unfocused keys should not schedule work")
	}
	assertValue(t, e, `<p>ab</p>`)
}

func TestUpdate_UndoRedo(t *testing.T) {
	m, e := newTestEditor(t, `<p>a</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "a")
	m.Update(keyRunes("b"))
	assertValue(t, e, `<p>ab</p>`)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assertValue(t, e, `<p>a</p>`)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assertValue(t, e, `<p>ab</p>`)
}

func TestUpdate_FormattingShortcuts(t *testing.T) {
	m, e := newTestEditor(t, `<p>click here</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	selectText(t, e, "here")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assertValue(t, e, `<p>click <b>here</b></p>`)
	if !dom.HasClass(control(t, e, "bold", ""), "active") {
		t.Fatalf("shortcuts refresh the toolbar at once")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i"), Alt: true})
	assertValue(t, e, `<p>click <b><i>here</i></b></p>`)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if !e.PopupOpen("link") {
		t.Fatalf("ctrl+k should open the link popup")
	}
}

func TestUpdate_CustomKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	km.Bold.SetKeys("ctrl+g")
	m, e := newTestEditorConfig(t, `<p>x</p>`, Config{KeyMap: km})
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	selectText(t, e, "x")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assertValue(t, e, `<p>x</p>`)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assertValue(t, e, `<p><b>x</b></p>`)
}

func TestFireAction_Dispatch(t *testing.T) {
	m, e := newTestEditor(t, `<p>Title</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "Ti")

	if _, err := e.FireAction("formatBlock", "h1"); err != nil {
		t.Fatal(err)
	}
	assertValue(t, e, `<h1>Title</h1>`)

	if _, err := e.FireAction("explode", ""); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unknown action: got %v, want ErrUnknownAction", err)
	}
	if cmd, err := e.FireAction("justifyCenter", ""); err != nil || cmd == nil {
		t.Fatalf("justifyCenter: cmd=%v err=%v", cmd, err)
	}
}

func TestFireAction_BoldOffPartOfBoldRun(t *testing.T) {
	m, e := newTestEditor(t, `<p><b>hello world</b></p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	selectText(t, e, "world")
	if _, err := e.FireAction("bold", ""); err != nil {
		t.Fatal(err)
	}
	assertValue(t, e, `<p><b>hello </b>world</p>`)
	if b := dom.FindOne(e.Area(), "b"); dom.TextContent(b) != "hello " {
		t.Fatalf("bold run: got %q, want %q", dom.TextContent(b), "hello ")
	}
}

func TestFireAction_QuoteAndCode(t *testing.T) {
	m, e := newTestEditor(t, `<p>say hi</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	selectText(t, e, "hi")
	if _, err := e.FireAction("code", ""); err != nil {
		t.Fatal(err)
	}
	assertValue(t, e, `<p>say <code>hi</code></p>`)

	e.Surface().CaretToEnd()
	if _, err := e.FireAction("quote", ""); err != nil {
		t.Fatal(err)
	}
	want := `<p>say <code>hi</code></p><blockquote><p><br/></p>` + quoteFooter + `</blockquote><br/>`
	assertValue(t, e, want)
}

func TestToolbar_ChildMenuToggle(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	trigger := dom.FindOne(e.Toolbar(), ".wyg__tool--headings .more-tools-trigger")
	tool := dom.FindOne(e.Toolbar(), ".wyg__tool--headings")

	click(m, trigger)
	if !dom.HasClass(tool, "active") {
		t.Fatalf("trigger should open the child menu")
	}

	caretAfter(t, e, "x")
	click(m, control(t, e, "formatBlock", "h3"))
	if dom.HasClass(tool, "active") {
		t.Fatalf("picking a child tool should close the menu")
	}
	assertValue(t, e, `<h3>x</h3>`)

	click(m, trigger)
	click(m, m.Document())
	if dom.HasClass(tool, "active") {
		t.Fatalf("an outside click should close the menu")
	}
}
