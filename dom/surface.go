package dom

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	ErrNoSelection  = errors.New("dom: no selection inside surface")
	ErrUnsupported  = errors.New("dom: unsupported command")
	ErrInvalidValue = errors.New("dom: invalid command value")
)

type Options struct {
	HistoryLimit int // default: 1000
	Logger       *zap.Logger
}

// Surface is a content-editable region: the root element, the shared
// selection, and the editing history of that root.
type Surface struct {
	root    *html.Node
	sel     *Selection
	version uint64

	opt  Options
	log  *zap.Logger
	hist historyState
}

func NewSurface(root *html.Node, sel *Selection, opt Options) *Surface {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if sel == nil {
		sel = NewSelection()
	}
	return &Surface{root: root, sel: sel, opt: opt, log: log.Named("dom")}
}

func (s *Surface) Root() *html.Node { return s.root }

func (s *Surface) Selection() *Selection { return s.sel }

// Version increments on every content mutation made through the surface.
func (s *Surface) Version() uint64 { return s.version }

// Value serializes the children of the root.
func (s *Surface) Value() string { return InnerHTML(s.root) }

// SetValue replaces the content. It is not recorded in history.
func (s *Surface) SetValue(markup string) error {
	if err := SetInnerHTML(s.root, markup); err != nil {
		return err
	}
	s.version++
	s.dropDetachedSelection()
	return nil
}

// Touch marks an external mutation of the tree.
func (s *Surface) Touch() {
	s.version++
	s.dropDetachedSelection()
}

// Edit runs fn as one undoable step. fn reports whether it changed anything.
func (s *Surface) Edit(fn func() bool) bool {
	prev := s.snapshot()
	if !fn() {
		return false
	}
	s.recordUndo(prev)
	s.version++
	s.dropDetachedSelection()
	return true
}

// Contains reports whether n belongs to the surface.
func (s *Surface) Contains(n *html.Node) bool { return Contains(s.root, n) }

// Range returns the selection when both boundaries lie in the surface.
func (s *Surface) Range() (Range, bool) {
	r, ok := s.sel.Range()
	if !ok || !r.Attached(s.root) {
		return Range{}, false
	}
	return r, true
}

func (s *Surface) HasSelection() bool {
	_, ok := s.Range()
	return ok
}

func (s *Surface) Select(r Range) { s.sel.Set(r) }

// End returns the boundary after the last child of the root.
func (s *Surface) End() Point {
	return Point{Node: s.root, Offset: ChildCount(s.root)}
}

// CaretToEnd collapses the selection at the end of the surface.
func (s *Surface) CaretToEnd() { s.sel.Collapse(s.End()) }

// dropDetachedSelection moves the caret to the end when a mutation detached
// one of the selection boundaries.
func (s *Surface) dropDetachedSelection() {
	r, ok := s.sel.Range()
	if !ok {
		return
	}
	top := Top(s.root)
	for _, p := range []Point{r.Start, r.End} {
		if Top(p.Node) != top || p.Offset < 0 || p.Offset > Length(p.Node) {
			s.CaretToEnd()
			return
		}
	}
}

// InsertText replaces the selection with text.
func (s *Surface) InsertText(text string) error { return s.Exec("insertText", text) }

func (s *Surface) InsertHTML(markup string) error { return s.Exec("insertHTML", markup) }

func (s *Surface) InsertLineBreak() error { return s.Exec("insertLineBreak", "") }

// DeleteBackward removes the selection, or the grapheme before the caret.
func (s *Surface) DeleteBackward() error { return s.Exec("delete", "") }
