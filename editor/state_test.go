package editor

import (
	"testing"
	"time"

	"github.com/iw2rmb/wysiwyg/dom"
)

func TestStates_ReflectSelection(t *testing.T) {
	_, e := newTestEditor(t, `<p><b>bold</b> plain</p><h2>head</h2><ul><li>item</li></ul>`)

	if got := e.States(); len(got) != 0 {
		t.Fatalf("states without selection: got %v, want empty", got)
	}

	caretAfter(t, e, "bo")
	st := e.States()
	if !st["bold"] || st["italic"] || !st[blockKey("p")] || st[blockKey("h2")] {
		t.Fatalf("states in bold paragraph: got %v", st)
	}
	if !st["justifyLeft"] {
		t.Fatalf("left alignment should be the default: %v", st)
	}

	caretAfter(t, e, "he")
	e.RefreshToolbar()
	if !dom.HasClass(control(t, e, "formatBlock", "h2"), "active") {
		t.Fatalf("h2 control should be active")
	}
	if dom.HasClass(control(t, e, "bold", ""), "active") {
		t.Fatalf("bold control should be inactive in the heading")
	}
	if !e.Active(blockKey("h2")) {
		t.Fatalf("Active(h2) should follow the last refresh")
	}

	caretAfter(t, e, "it")
	e.RefreshToolbar()
	if !dom.HasClass(control(t, e, "insertUnorderedList", ""), "active") {
		t.Fatalf("ul control should be active inside a list")
	}
	e.RefreshToolbar()
	if !dom.HasClass(control(t, e, "insertUnorderedList", ""), "active") {
		t.Fatalf("refresh must be idempotent")
	}
}

func TestStates_SelectionReadsCommonAncestor(t *testing.T) {
	_, e := newTestEditor(t, `<h2>head</h2><p>body</p>`)
	head, _ := textNode(t, e, "head")
	body, _ := textNode(t, e, "body")
	e.Surface().Select(dom.Range{Start: dom.Point{Node: head, Offset: 1}, End: dom.Point{Node: body, Offset: 2}})

	st := e.States()
	if st[blockKey("h2")] {
		t.Fatalf("a selection leaving the heading should not report h2: %v", st)
	}
	if !st[blockKey("p")] {
		t.Fatalf("mixed blocks should fall back to paragraph: %v", st)
	}

	e.Surface().Select(dom.Range{Start: dom.Point{Node: head, Offset: 0}, End: dom.Point{Node: head, Offset: 4}})
	if st := e.States(); !st[blockKey("h2")] {
		t.Fatalf("a selection inside the heading should report h2: %v", st)
	}
}

func TestStates_EmptyInCodeView(t *testing.T) {
	_, e := newTestEditor(t, `<p><b>x</b></p>`)
	caretAfter(t, e, "x")
	e.RefreshToolbar()
	e.ToggleCodeView()
	if len(e.States()) != 0 {
		t.Fatalf("code view should report no states")
	}
	if dom.HasClass(control(t, e, "bold", ""), "active") {
		t.Fatalf("entering code view should clear active controls")
	}
}

func TestRecheck_StaleMessagesAreIgnored(t *testing.T) {
	m, e := newTestEditor(t, `<p><b>x</b></p>`)
	n, _ := textNode(t, e, "x")

	m.Update(SelectMsg{Start: dom.Point{Node: n, Offset: 0}, End: dom.Point{Node: n, Offset: 1}})
	stale := RecheckMsg{ID: e.ID(), Seq: e.recheck.Pending() - 1}
	m.Update(stale)
	if dom.HasClass(control(t, e, "bold", ""), "active") {
		t.Fatalf("a stale recheck must not refresh the toolbar")
	}

	m.Update(RecheckMsg{ID: e.ID(), Seq: e.recheck.Pending()})
	if !dom.HasClass(control(t, e, "bold", ""), "active") {
		t.Fatalf("the latest recheck should refresh the toolbar")
	}
}

func TestDebouncer_DelayFloor(t *testing.T) {
	d := Debouncer{Delay: time.Nanosecond}
	start := time.Now()
	msg := d.Trigger("i-abc")()
	if elapsed := time.Since(start); elapsed < MinRecheckDelay {
		t.Fatalf("tick fired after %v, want at least %v", elapsed, MinRecheckDelay)
	}
	rm, ok := msg.(RecheckMsg)
	if !ok || rm.ID != "i-abc" || !d.Current(rm) {
		t.Fatalf("recheck message: got %#v", msg)
	}
	d.Trigger("i-abc")
	if d.Current(rm) {
		t.Fatalf("a newer trigger should supersede the first")
	}
}
