package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Point is a boundary point. Offset counts runes inside text nodes and
// children inside elements.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range spans two boundary points. Start is not after End once normalized.
type Range struct {
	Start Point
	End   Point
}

// Caret returns a collapsed range at (n, offset).
func Caret(n *html.Node, offset int) Range {
	p := Point{Node: n, Offset: offset}
	return Range{Start: p, End: p}
}

// NodeContents returns a range covering the children of n.
func NodeContents(n *html.Node) Range {
	return Range{Start: Point{Node: n}, End: Point{Node: n, Offset: Length(n)}}
}

func (r Range) IsZero() bool { return r.Start.Node == nil || r.End.Node == nil }

func (r Range) Collapsed() bool { return r.Start == r.End }

// Attached reports whether both boundaries still live under root with
// in-range offsets.
func (r Range) Attached(root *html.Node) bool {
	return r.Start.attached(root) && r.End.attached(root)
}

func (p Point) attached(root *html.Node) bool {
	if p.Node == nil || !Contains(root, p.Node) {
		return false
	}
	return p.Offset >= 0 && p.Offset <= Length(p.Node)
}

// Clamp pulls the offset into [0, Length(node)].
func (p Point) Clamp() Point {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if l := Length(p.Node); p.Offset > l {
		p.Offset = l
	}
	return p
}

// ComparePoints orders two points of the same tree in document order.
func ComparePoints(a, b Point) int {
	ka, kb := pointKey(a), pointKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return 0
}

func pointKey(p Point) []int {
	path, _ := PathOf(nil, p.Node)
	return append(path, p.Offset)
}

// Normalized returns r with Start before End.
func (r Range) Normalized() Range {
	if ComparePoints(r.Start, r.End) > 0 {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// CommonAncestor returns the deepest node containing both boundaries.
func (r Range) CommonAncestor() *html.Node {
	seen := map[*html.Node]bool{}
	for n := r.Start.Node; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := r.End.Node; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// Anchor returns the node the start boundary sits in or next to, suitable for
// ancestor walks.
func (r Range) Anchor() *html.Node {
	return anchorNode(r.Start)
}

func anchorNode(p Point) *html.Node {
	if p.Node == nil || p.Node.Type == html.TextNode {
		return p.Node
	}
	if c := ChildAt(p.Node, p.Offset); c != nil {
		return c
	}
	if c := ChildAt(p.Node, p.Offset-1); c != nil {
		return c
	}
	return p.Node
}

// Text returns the selected text without mutating the tree.
func (r Range) Text() string {
	if r.IsZero() {
		return ""
	}
	r = r.Normalized()
	if r.Start.Node == r.End.Node && IsText(r.Start.Node) {
		rs := []rune(r.Start.Node.Data)
		s, e := clamp(r.Start.Offset, 0, len(rs)), clamp(r.End.Offset, 0, len(rs))
		return string(rs[s:e])
	}

	var b strings.Builder
	r.EachText(func(n *html.Node, from, to int) {
		rs := []rune(n.Data)
		b.WriteString(string(rs[from:to]))
	})
	return b.String()
}

// EachText visits text nodes intersecting r with the selected rune span.
func (r Range) EachText(fn func(n *html.Node, from, to int)) {
	if r.Start.Node == r.End.Node && IsText(r.Start.Node) {
		l := Length(r.Start.Node)
		s, e := clamp(r.Start.Offset, 0, l), clamp(r.End.Offset, 0, l)
		if s < e {
			fn(r.Start.Node, s, e)
		}
		return
	}

	var n *html.Node
	if IsText(r.Start.Node) {
		l := Length(r.Start.Node)
		if s := clamp(r.Start.Offset, 0, l); s < l {
			fn(r.Start.Node, s, l)
		}
		n = nextAfter(r.Start.Node)
	} else {
		n = boundaryNode(r.Start)
	}

	var stop *html.Node
	if IsText(r.End.Node) {
		stop = r.End.Node
	} else {
		stop = boundaryNode(r.End)
	}

	for ; n != nil && n != stop; n = nextPreorder(n) {
		if IsText(n) && n.Data != "" {
			fn(n, 0, Length(n))
		}
	}

	if IsText(r.End.Node) {
		if e := clamp(r.End.Offset, 0, Length(r.End.Node)); e > 0 {
			fn(r.End.Node, 0, e)
		}
	}
}

// boundaryNode is the first node at or after an element boundary.
func boundaryNode(p Point) *html.Node {
	if c := ChildAt(p.Node, p.Offset); c != nil {
		return c
	}
	return nextAfter(p.Node)
}

// splitAt converts p into an element boundary, splitting a text node when p
// falls strictly inside it.
func splitAt(p Point) (*html.Node, int) {
	n := p.Node
	if n.Type != html.TextNode {
		return n, clamp(p.Offset, 0, ChildCount(n))
	}
	rs := []rune(n.Data)
	off := clamp(p.Offset, 0, len(rs))
	switch {
	case off == 0:
		return n.Parent, Index(n)
	case off == len(rs):
		return n.Parent, Index(n) + 1
	}
	n.Data = string(rs[:off])
	tail := Text(string(rs[off:]))
	InsertAfter(n, tail)
	return n.Parent, Index(tail)
}

// isolate splits the text nodes at both boundaries so that the range covers
// whole nodes. It returns the element-level range and the half-open preorder
// interval [first, stop) of nodes inside it.
func (r Range) isolate() (Range, *html.Node, *html.Node) {
	r = r.Normalized()
	ep, ei := splitAt(r.End)
	endRef := ChildAt(ep, ei)
	sp, si := splitAt(r.Start)
	if endRef != nil {
		ep, ei = endRef.Parent, Index(endRef)
	} else {
		ei = ChildCount(ep)
	}
	out := Range{Start: Point{sp, si}, End: Point{ep, ei}}
	return out, boundaryNode(out.Start), boundaryNode(out.End)
}

// SplitText isolates the range and returns the text nodes fully inside it.
func (r Range) SplitText() []*html.Node {
	if r.IsZero() || r.Collapsed() {
		return nil
	}
	_, first, stop := r.isolate()
	var out []*html.Node
	for n := first; n != nil && n != stop; n = nextPreorder(n) {
		if IsText(n) && n.Data != "" {
			out = append(out, n)
		}
	}
	return out
}

// DeleteContents removes everything between the boundaries and returns the
// collapse point.
func (r Range) DeleteContents() Point {
	r = r.Normalized()
	if r.Collapsed() {
		return r.Start
	}
	if r.Start.Node == r.End.Node && IsText(r.Start.Node) {
		rs := []rune(r.Start.Node.Data)
		s, e := clamp(r.Start.Offset, 0, len(rs)), clamp(r.End.Offset, 0, len(rs))
		r.Start.Node.Data = string(rs[:s]) + string(rs[e:])
		return Point{r.Start.Node, s}
	}

	startText := r.Start
	iso, _, _ := r.isolate()
	sp, si := iso.Start.Node, iso.Start.Offset
	ep, ei := iso.End.Node, iso.End.Offset

	if sp == ep {
		removeChildRange(sp, si, ei)
	} else {
		common := iso.CommonAncestor()
		var startTop, endTop *html.Node
		if sp != common {
			removeChildRange(sp, si, ChildCount(sp))
			n := sp
			for n.Parent != common {
				for n.NextSibling != nil {
					Remove(n.NextSibling)
				}
				n = n.Parent
			}
			startTop = n
		}
		if ep != common {
			removeChildRange(ep, 0, ei)
			n := ep
			for n.Parent != common {
				for n.PrevSibling != nil {
					Remove(n.PrevSibling)
				}
				n = n.Parent
			}
			endTop = n
		}
		from, to := si, ei
		if startTop != nil {
			from = Index(startTop) + 1
		}
		if endTop != nil {
			to = Index(endTop)
		}
		removeChildRange(common, from, to)
	}

	if IsText(startText.Node) && startText.Node.Parent != nil && startText.Offset > 0 {
		return Point{startText.Node, Length(startText.Node)}
	}
	return Point{sp, clamp(si, 0, ChildCount(sp))}
}

// InsertNodes inserts nodes at p and returns the point after the last one.
// Block nodes never land inside a paragraph, heading or pre: the enclosing
// one is split at p and the blocks go between the halves. Halves left
// without content are dropped.
func InsertNodes(p Point, nodes ...*html.Node) Point {
	parent, idx := splitAt(p)
	if slices.ContainsFunc(nodes, IsBlock) {
		if top := splittableBlock(parent); top != nil {
			tail := splitAncestors(top, parent, idx)
			parent, idx = top.Parent, Index(tail)
			if !hasContent(tail) {
				Remove(tail)
			}
			if !hasContent(top) {
				Remove(top)
				idx--
			}
		}
	}
	ref := ChildAt(parent, idx)
	for _, n := range nodes {
		Remove(n)
		parent.InsertBefore(n, ref)
	}
	if len(nodes) == 0 {
		return Point{parent, idx}
	}
	last := nodes[len(nodes)-1]
	return Point{last.Parent, Index(last) + 1}
}

// splittableBlock returns the paragraph, heading or pre holding n through
// inline ancestors only, or nil.
func splittableBlock(n *html.Node) *html.Node {
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		switch {
		case IsElement(n, "p", "h1", "h2", "h3", "h4", "h5", "h6", "pre"):
			return n
		case IsBlock(n):
			return nil
		}
	}
	return nil
}

// splitAncestors splits every element from parent up to top at child index
// idx of parent. The right halves are shallow copies; the right half of top
// is returned.
func splitAncestors(top, parent *html.Node, idx int) *html.Node {
	n, i := parent, idx
	for {
		tail := &html.Node{
			Type:      n.Type,
			DataAtom:  n.DataAtom,
			Data:      n.Data,
			Namespace: n.Namespace,
			Attr:      append([]html.Attribute(nil), n.Attr...),
		}
		for c := ChildAt(n, i); c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			tail.AppendChild(c)
			c = next
		}
		InsertAfter(n, tail)
		if n == top {
			return tail
		}
		i = Index(tail)
		n = n.Parent
	}
}

var contentTags = []string{"br", "img", "video", "iframe", "hr", "input", "table"}

// hasContent reports whether n holds text or an element that renders on its
// own.
func hasContent(n *html.Node) bool {
	found := false
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode && c.Data != "" || c != n && IsElement(c, contentTags...) {
			found = true
		}
		return !found
	})
	return found
}

func removeChildRange(n *html.Node, from, to int) {
	c := ChildAt(n, from)
	for i := from; i < to && c != nil; i++ {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
