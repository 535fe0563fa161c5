package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEvents_HostListenersRunBeforeSurfaceListeners(t *testing.T) {
	m, e := newTestEditor(t, `<p>ab</p>`)

	var order []string
	if _, err := m.OnElement(e.Area(), EventInput, func(ev Event) {
		if ev.Target != e.Area() {
			t.Fatalf("surface listener target: got %v, want the area", ev.Target)
		}
		order = append(order, "surface")
	}); err != nil {
		t.Fatalf("OnElement: %v", err)
	}
	if _, err := m.On(e.ID(), EventInput, func(ev Event) {
		if ev.Target != e.Host() {
			t.Fatalf("host listener target: got %v, want the host", ev.Target)
		}
		if ev.EditorID != e.ID() || ev.Surface != e.Area() {
			t.Fatalf("event identity: got %+v", ev)
		}
		if ev.Content != "<p>aXb</p>" {
			t.Fatalf("input content: got %q, want %q", ev.Content, "<p>aXb</p>")
		}
		order = append(order, "host")
	}); err != nil {
		t.Fatalf("On: %v", err)
	}

	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "a")
	m.Update(keyRunes("X"))

	if len(order) != 2 || order[0] != "host" || order[1] != "surface" {
		t.Fatalf("delivery order: got %v, want [host surface]", order)
	}
}

func TestEvents_OffRemovesListener(t *testing.T) {
	m, e := newTestEditor(t, `<p>ab</p>`)
	calls := 0
	sub, err := m.On(e.ID(), EventInput, func(Event) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}

	m.Update(keyRunes("x"))
	if !m.Off(sub) {
		t.Fatalf("Off should report the listener as removed")
	}
	if m.Off(sub) {
		t.Fatalf("second Off should report false")
	}
	m.Update(keyRunes("y"))
	if calls != 1 {
		t.Fatalf("input calls: got %d, want 1", calls)
	}
}

func TestEvents_UnknownEditor(t *testing.T) {
	m, _ := newTestEditor(t, ``)
	if _, err := m.On("missing", EventInput, func(Event) {}); !errors.Is(err, ErrUnknownEditor) {
		t.Fatalf("On(missing): got %v, want ErrUnknownEditor", err)
	}
	if _, err := m.OnElement(m.Document(), EventInput, func(Event) {}); !errors.Is(err, ErrUnknownEditor) {
		t.Fatalf("OnElement(document): got %v, want ErrUnknownEditor", err)
	}
	if _, err := m.OnSelector("#ed", EventInput, func(Event) {}); err != nil {
		t.Fatalf("OnSelector(#ed): %v", err)
	}
}

func TestEvents_FocusChangeBlur(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	var got []EventName
	for _, name := range []EventName{EventFocus, EventChange, EventBlur} {
		if _, err := m.On(e.ID(), name, func(ev Event) { got = append(got, ev.Name) }); err != nil {
			t.Fatal(err)
		}
	}

	n, _ := textNode(t, e, "x")
	m.Update(ClickMsg{Target: n, Offset: 1})
	m.Update(ClickMsg{Target: m.Document()})

	want := []EventName{EventFocus, EventChange, EventBlur}
	if len(got) != len(want) {
		t.Fatalf("events: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: got %v, want %v", got, want)
		}
	}
}

func TestEvents_KeydownCarriesModifiers(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	var ev Event
	if _, err := m.On(e.ID(), EventKeydown, func(got Event) { ev = got }); err != nil {
		t.Fatal(err)
	}
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if ev.Key != "ctrl+b" || !ev.Ctrl || ev.Alt || ev.Shift {
		t.Fatalf("keydown: got %+v", ev)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true})
	if ev.Key != "alt+b" || !ev.Alt || ev.Ctrl {
		t.Fatalf("keydown alt: got %+v", ev)
	}
}
