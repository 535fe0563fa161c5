package dom

import (
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/internal/grapheme"
)

type Dir int

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// Move describes a caret movement. Extend keeps the selection anchor.
type Move struct {
	Dir    Dir
	Extend bool
}

// Move moves the selection focus over editable text. Left and right step by
// grapheme cluster; up and down jump to the neighbouring block; home and end
// stay in the current block. It reports whether the selection changed.
func (s *Surface) Move(m Move) bool {
	r, ok := s.Range()
	if !ok {
		return false
	}
	if !m.Extend && !r.Collapsed() && (m.Dir == DirLeft || m.Dir == DirRight) {
		p := r.Start
		if m.Dir == DirRight {
			p = r.End
		}
		s.sel.Collapse(p)
		return true
	}

	from := s.sel.Focus()
	to, ok := s.step(from, m.Dir)
	if !ok || to == from {
		return false
	}
	if m.Extend {
		s.sel.Extend(to)
	} else {
		s.sel.Collapse(to)
	}
	return true
}

func (s *Surface) step(p Point, dir Dir) (Point, bool) {
	texts := s.editableTexts()
	if len(texts) == 0 {
		return p, false
	}
	backward := dir == DirLeft || dir == DirUp || dir == DirHome
	i, off := locateText(p, texts, backward)
	t := texts[i]

	switch dir {
	case DirLeft:
		if off > 0 {
			return Point{t, grapheme.PrevBoundary(t.Data, off)}, true
		}
		if i > 0 {
			prev := texts[i-1]
			return Point{prev, Length(prev)}, true
		}
	case DirRight:
		if off < Length(t) {
			return Point{t, grapheme.NextBoundary(t.Data, off)}, true
		}
		if i+1 < len(texts) {
			return Point{texts[i+1], 0}, true
		}
	case DirHome, DirEnd:
		line := s.lineOf(t)
		var first, last *html.Node
		for _, c := range texts {
			if s.lineOf(c) == line {
				if first == nil {
					first = c
				}
				last = c
			}
		}
		if dir == DirHome {
			return Point{first, 0}, true
		}
		return Point{last, Length(last)}, true
	case DirUp:
		line := s.lineOf(t)
		for j := i - 1; j >= 0; j-- {
			if l := s.lineOf(texts[j]); l != line {
				k := j
				for k > 0 && s.lineOf(texts[k-1]) == l {
					k--
				}
				return Point{texts[k], 0}, true
			}
		}
	case DirDown:
		line := s.lineOf(t)
		for j := i + 1; j < len(texts); j++ {
			if s.lineOf(texts[j]) != line {
				return Point{texts[j], 0}, true
			}
		}
	}
	return Point{t, off}, true
}

// locateText maps p onto a text node and rune offset.
func locateText(p Point, texts []*html.Node, backward bool) (int, int) {
	for i, t := range texts {
		if t == p.Node {
			return i, clamp(p.Offset, 0, Length(t))
		}
	}
	before, after := -1, -1
	for i, t := range texts {
		if ComparePoints(Point{t, 0}, p) < 0 {
			before = i
		} else if after < 0 {
			after = i
		}
	}
	switch {
	case backward && before >= 0:
		return before, Length(texts[before])
	case after >= 0:
		return after, 0
	default:
		return before, Length(texts[before])
	}
}

func (s *Surface) lineOf(n *html.Node) *html.Node {
	if b := s.existingBlock(n); b != nil {
		return b
	}
	return s.root
}

// editableTexts lists text nodes outside non-editable islands.
func (s *Surface) editableTexts() []*html.Node {
	var out []*html.Node
	Walk(s.root, func(n *html.Node) bool {
		if n != s.root && AttrValue(n, "contenteditable") == "false" {
			return false
		}
		if IsText(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
