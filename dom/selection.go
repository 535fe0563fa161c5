package dom

import "golang.org/x/net/html"

// Selection is the single selection shared by every surface of a document.
// It remembers the anchor (where selecting started) and the focus (the moving
// end); Range reports them in document order.
type Selection struct {
	anchor Point
	focus  Point
	ok     bool
}

func NewSelection() *Selection { return &Selection{} }

// Range returns the normalized selection range.
func (s *Selection) Range() (Range, bool) {
	if s == nil || !s.ok {
		return Range{}, false
	}
	return Range{Start: s.anchor, End: s.focus}.Normalized(), true
}

// Set replaces the selection. The anchor becomes r.Start.
func (s *Selection) Set(r Range) {
	if r.IsZero() {
		s.Clear()
		return
	}
	s.anchor, s.focus, s.ok = r.Start, r.End, true
}

// Extend moves the focus and keeps the anchor.
func (s *Selection) Extend(p Point) {
	if !s.ok {
		s.Collapse(p)
		return
	}
	s.focus = p
}

func (s *Selection) Collapse(p Point) {
	s.anchor, s.focus, s.ok = p, p, true
}

func (s *Selection) SelectNodeContents(n *html.Node) {
	s.Set(NodeContents(n))
}

func (s *Selection) Clear() {
	*s = Selection{}
}

func (s *Selection) Anchor() Point { return s.anchor }

func (s *Selection) Focus() Point { return s.focus }

// String returns the selected text.
func (s *Selection) String() string {
	r, ok := s.Range()
	if !ok {
		return ""
	}
	return r.Text()
}
