package dom

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func newSurface(t *testing.T, markup string) *Surface {
	t.Helper()
	root := Element("div", "contenteditable", "true")
	if err := SetInnerHTML(root, markup); err != nil {
		t.Fatalf("parse %q: %v", markup, err)
	}
	return NewSurface(root, NewSelection(), Options{})
}

// selectText selects the first occurrence of sub inside a single text node.
func selectText(t *testing.T, s *Surface, sub string) {
	t.Helper()
	for _, n := range TextNodes(s.Root()) {
		if i := strings.Index(n.Data, sub); i >= 0 {
			start := utf8.RuneCountInString(n.Data[:i])
			s.Select(Range{
				Start: Point{Node: n, Offset: start},
				End:   Point{Node: n, Offset: start + utf8.RuneCountInString(sub)},
			})
			return
		}
	}
	t.Fatalf("text %q not found in %q", sub, s.Value())
}

// caretIn collapses the selection inside the first text node containing sub,
// at the given rune offset.
func caretIn(t *testing.T, s *Surface, sub string, offset int) {
	t.Helper()
	for _, n := range TextNodes(s.Root()) {
		if strings.Contains(n.Data, sub) {
			s.Select(Caret(n, offset))
			return
		}
	}
	t.Fatalf("text %q not found in %q", sub, s.Value())
}

func assertValue(t *testing.T, s *Surface, want string) {
	t.Helper()
	if got := s.Value(); got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
}
