package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

func TestLink_InsertFromSelection(t *testing.T) {
	m, e := newTestEditor(t, `<p>click here</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	selectText(t, e, "click here")

	click(m, control(t, e, "link", ""))
	if !e.PopupOpen("link") {
		t.Fatalf("link popup should be open")
	}
	setPopupField(t, m, e, "link", "url", "https://example.com")
	setPopupField(t, m, e, "link", "target", "_blank")
	submitPopup(t, m, e, "link")

	if e.PopupOpen("link") {
		t.Fatalf("link popup should close after submit")
	}
	assertValue(t, e, `<p><a href="https://example.com" target="_blank">click here</a></p>`)
}

func TestLink_CollapsedSelectionUsesURLAsText(t *testing.T) {
	m, e := newTestEditor(t, `<p>see </p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "see ")

	if _, err := e.FireAction("link", ""); err != nil {
		t.Fatal(err)
	}
	setPopupField(t, m, e, "link", "url", "https://go.dev")
	submitPopup(t, m, e, "link")
	assertValue(t, e, `<p>see <a href="https://go.dev" target="_blank">https://go.dev</a></p>`)
}

func TestLink_MissingURLKeepsPopupOpen(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.FireAction("link", ""); err != nil {
		t.Fatal(err)
	}

	p := e.popups[popupLink]
	if _, err := e.submitPopup(p); !errors.Is(err, ErrMissingField) {
		t.Fatalf("submit without url: got %v, want ErrMissingField", err)
	}
	if !e.PopupOpen("link") {
		t.Fatalf("popup should stay open on a validation error")
	}
	assertValue(t, e, `<p>x</p>`)
}

func TestLink_PopoverEditAndUnlink(t *testing.T) {
	m, e := newTestEditor(t, `<p><a href="https://old.example">site</a> tail</p>`)
	a := dom.FindOne(e.Area(), "a")
	if !dom.HasAttr(a, linkMarker) {
		t.Fatalf("links should be marked on construction")
	}

	n, _ := textNode(t, e, "site")
	m.Update(ClickMsg{Target: n, X: 4, Y: 2, Offset: 1})
	pop := e.Popover()
	if pop == nil {
		t.Fatalf("clicking a link should open its popover")
	}
	if got := dom.AttrValue(pop, "style"); got != "top: 2px; left: 4px;" {
		t.Fatalf("popover position: got %q", got)
	}
	if strings.Contains(e.Value(), popoverClass) {
		t.Fatalf("value must not include the popover: %q", e.Value())
	}

	click(m, dom.FindOne(pop, "."+editLinkClass))
	if !e.PopupOpen("link") {
		t.Fatalf("edit should open the link popup")
	}
	if got := dom.AttrValue(dom.FindOne(e.PopupPanel("link"), "[name=url]"), "value"); got != "https://old.example" {
		t.Fatalf("update form url: got %q", got)
	}
	setPopupField(t, m, e, "link", "url", "https://new.example")
	submitPopup(t, m, e, "link")
	assertValue(t, e, `<p><a href="https://new.example" target="_blank">site</a> tail</p>`)

	n, _ = textNode(t, e, "site")
	m.Update(ClickMsg{Target: n, Offset: 1})
	click(m, dom.FindOne(e.Popover(), "."+unlinkClass))
	assertValue(t, e, `<p>site tail</p>`)
	if e.Popover() != nil {
		t.Fatalf("unlink should close the popover")
	}
}

func TestLink_PopoverOffsetInsideTable(t *testing.T) {
	_, e := newTestEditorConfig(t,
		`<div class="wyg-table-wrapper"><table><tbody><tr><td><a href="u">l</a></td></tr></tbody></table></div>`,
		Config{Offset: func(*html.Node) (int, int) { return 10, 20 }},
	)
	e.OpenLinkPopover(dom.FindOne(e.Area(), "a"), 15, 30)
	if got := dom.AttrValue(e.Popover(), "style"); got != "top: 10px; left: 5px;" {
		t.Fatalf("popover position in table: got %q", got)
	}
}

func TestPopup_OutsideClickCloses(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.FireAction("table", ""); err != nil {
		t.Fatal(err)
	}
	click(m, dom.FindOne(e.PopupPanel("table"), "[name=rows]"))
	if !e.PopupOpen("table") {
		t.Fatalf("clicks inside the panel keep it open")
	}
	n, _ := textNode(t, e, "x")
	click(m, n)
	if e.PopupOpen("table") {
		t.Fatalf("a click outside should close the popup")
	}
}

func TestTable_InsertFromPopup(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "x")

	if _, err := e.FireAction("table", ""); err != nil {
		t.Fatal(err)
	}
	setPopupField(t, m, e, "table", "rows", "1")
	setPopupField(t, m, e, "table", "cols", "2")
	setPopupField(t, m, e, "table", "noFooter", "true")
	submitPopup(t, m, e, "table")

	want := `<p>x</p><br/><div class="wyg-table-wrapper"><table>` +
		`<thead><tr><th><br/></th><th><br/></th></tr></thead>` +
		`<tbody><tr><td><br/></td><td><br/></td></tr></tbody>` +
		`</table></div><br/>`
	assertValue(t, e, want)
	if e.PopupOpen("table") {
		t.Fatalf("table popup should close after insert")
	}
	if !dom.HasAttr(dom.FindOne(e.Area(), ".wyg-table-wrapper"), tableMarker) {
		t.Fatalf("inserted wrapper should be marked")
	}
}

func TestTable_InsertInsideParagraphSurvivesCodeView(t *testing.T) {
	m, e := newTestEditor(t, `<p>ab</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "a")
	if _, err := e.FireAction("table", ""); err != nil {
		t.Fatal(err)
	}
	setPopupField(t, m, e, "table", "rows", "1")
	setPopupField(t, m, e, "table", "cols", "1")
	setPopupField(t, m, e, "table", "noHeader", "true")
	setPopupField(t, m, e, "table", "noFooter", "true")
	submitPopup(t, m, e, "table")

	want := `<p>a</p><br/><div class="wyg-table-wrapper"><table><tbody><tr><td><br/></td></tr></tbody></table></div><br/><p>b</p>`
	assertValue(t, e, want)

	e.ToggleCodeView()
	e.ToggleCodeView()
	assertValue(t, e, want)
}

func TestMedia_InsertFromURL(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	caretAfter(t, e, "x")

	if _, err := e.FireAction("media", ""); err != nil {
		t.Fatal(err)
	}
	setPopupField(t, m, e, "media", "url", "https://cdn.example/cat.png?v=2")
	submitPopup(t, m, e, "media")

	img := dom.FindOne(e.Area(), "img")
	if img == nil {
		t.Fatalf("expected an image, got %q", e.Value())
	}
	if got := dom.AttrValue(img, "alt"); got != "cat.png" {
		t.Fatalf("alt: got %q, want %q", got, "cat.png")
	}
	if !dom.HasAttr(img, mediaMarker) {
		t.Fatalf("inserted image should be marked")
	}
}

func TestMedia_UnsupportedURL(t *testing.T) {
	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.FireAction("media", ""); err != nil {
		t.Fatal(err)
	}
	setPopupField(t, m, e, "media", "url", "https://example.com/page")
	if _, err := e.submitPopup(e.popups[popupMedia]); !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("submit: got %v, want ErrUnsupportedMedia", err)
	}

	setPopupField(t, m, e, "media", "url", "")
	if _, err := e.submitPopup(e.popups[popupMedia]); !errors.Is(err, ErrMissingField) {
		t.Fatalf("submit empty: got %v, want ErrMissingField", err)
	}
}

func TestMedia_InsertFromFile(t *testing.T) {
	// Smallest valid GIF.
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	name := filepath.Join(t.TempDir(), "dot.gif")
	if err := os.WriteFile(name, gif, 0o600); err != nil {
		t.Fatal(err)
	}

	m, e := newTestEditor(t, `<p>x</p>`)
	if err := m.Focus(e.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.FireAction("media", ""); err != nil {
		t.Fatal(err)
	}
	m.Update(FileMsg{Target: dom.FindOne(e.PopupPanel("media"), "[name=file]"), Path: name})
	runCmd(m, submitPopup(t, m, e, "media"))

	img := dom.FindOne(e.Area(), "img")
	if img == nil {
		t.Fatalf("expected an image, got %q", e.Value())
	}
	if src := dom.AttrValue(img, "src"); !strings.HasPrefix(src, "data:image/gif;base64,") {
		t.Fatalf("src: got %q", src)
	}
	if got := dom.AttrValue(img, "alt"); got != "dot.gif" {
		t.Fatalf("alt: got %q, want %q", got, "dot.gif")
	}
	if e.PopupOpen("media") {
		t.Fatalf("media popup should close after the file loads")
	}
}

func TestMedia_FileOverLimitIsRefused(t *testing.T) {
	name := filepath.Join(t.TempDir(), "big.png")
	if err := os.WriteFile(name, make([]byte, 2048), 0o600); err != nil {
		t.Fatal(err)
	}

	msg := readMediaFile("i-abc", name, "", 1024, Snapshot{})()
	lm, ok := msg.(mediaLoadedMsg)
	if !ok || !errors.Is(lm.err, ErrMediaTooLarge) {
		t.Fatalf("over-limit file: got %#v", msg)
	}
	if !strings.Contains(lm.err.Error(), "2.0 kB") {
		t.Fatalf("error should carry the readable size: %v", lm.err)
	}
}

func TestMedia_PopoverActions(t *testing.T) {
	m, e := newTestEditor(t, `<p><img src="a.png" alt="a"></p>`)
	img := dom.FindOne(e.Area(), "img")
	m.Update(ClickMsg{Target: img})
	pop := e.Popover()
	if pop == nil {
		t.Fatalf("clicking media should open its popover")
	}

	click(m, dom.FindOne(pop, "[data-media-action=align-right]"))
	if !dom.HasClass(img, MediaAlignRight) {
		t.Fatalf("align-right class missing: %q", e.Value())
	}
	m.Update(FieldMsg{Target: dom.FindOne(pop, "select"), Value: "w-50"})
	if !dom.HasClass(img, "w-50") {
		t.Fatalf("width class missing: %q", e.Value())
	}
	click(m, dom.FindOne(pop, "[data-media-action=delete]"))
	assertValue(t, e, `<p></p>`)
}

func TestClassifyMediaURL(t *testing.T) {
	cases := []struct {
		url  string
		kind MediaKind
		src  string
	}{
		{"https://x.test/a.JPG", MediaImage, "https://x.test/a.JPG"},
		{"https://x.test/clip.mp4#t=3", MediaVideo, "https://x.test/clip.mp4#t=3"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", MediaYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", MediaYouTube, "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://vimeo.com/76979871", MediaVimeo, "https://player.vimeo.com/video/76979871"},
		{"https://example.com/page", MediaNone, ""},
	}
	for _, tc := range cases {
		kind, src := ClassifyMediaURL(tc.url)
		if kind != tc.kind || src != tc.src {
			t.Fatalf("ClassifyMediaURL(%q): got (%v, %q), want (%v, %q)", tc.url, kind, src, tc.kind, tc.src)
		}
	}
}
