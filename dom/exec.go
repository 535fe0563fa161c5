package dom

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/internal/grapheme"
)

type inlineFormat struct {
	tag   string
	match []string
}

var inlineFormats = map[string]inlineFormat{
	"bold":          {tag: "b", match: []string{"b", "strong"}},
	"italic":        {tag: "i", match: []string{"i", "em"}},
	"underline":     {tag: "u", match: []string{"u"}},
	"strikethrough": {tag: "strike", match: []string{"s", "strike", "del"}},
	"subscript":     {tag: "sub", match: []string{"sub"}},
	"superscript":   {tag: "sup", match: []string{"sup"}},
}

var justifyValues = map[string]string{
	"justifyLeft":   "left",
	"justifyRight":  "right",
	"justifyCenter": "center",
	"justifyFull":   "justify",
}

const indentStyle = "margin: 0 0 0 40px; border: none; padding: 0px;"

type editFunc func(r Range) (next Range, changed bool, err error)

// Exec runs an editing command on the selection, in the manner of a
// browser's execCommand. Commands that leave the content untouched return nil
// without recording history.
func (s *Surface) Exec(cmd, value string) error {
	r, ok := s.Range()
	if !ok {
		return fmt.Errorf("%s: %w", cmd, ErrNoSelection)
	}

	var fn editFunc
	if f, ok := inlineFormats[cmd]; ok {
		fn = func(r Range) (Range, bool, error) { return s.toggleInline(r, f) }
	} else if align, ok := justifyValues[cmd]; ok {
		fn = func(r Range) (Range, bool, error) { return s.justify(r, align) }
	} else {
		switch cmd {
		case "formatBlock":
			fn = func(r Range) (Range, bool, error) { return s.formatBlock(r, value) }
		case "insertOrderedList":
			fn = func(r Range) (Range, bool, error) { return s.toggleList(r, "ol") }
		case "insertUnorderedList":
			fn = func(r Range) (Range, bool, error) { return s.toggleList(r, "ul") }
		case "indent":
			fn = s.indent
		case "outdent":
			fn = s.outdent
		case "insertHTML":
			fn = func(r Range) (Range, bool, error) { return s.insertHTML(r, value) }
		case "insertText":
			fn = func(r Range) (Range, bool, error) { return s.insertText(r, value) }
		case "insertLineBreak":
			fn = s.insertLineBreak
		case "delete":
			fn = s.deleteBackward
		default:
			return fmt.Errorf("%w: %s", ErrUnsupported, cmd)
		}
	}

	prev := s.snapshot()
	next, changed, err := fn(r)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	if !next.IsZero() && next.Attached(s.root) {
		s.sel.Set(next)
	} else {
		s.dropDetachedSelection()
	}
	if !changed {
		return nil
	}
	s.recordUndo(prev)
	s.version++
	s.log.Debug("exec", zap.String("command", cmd), zap.Uint64("version", s.version))
	return nil
}

func (s *Surface) toggleInline(r Range, f inlineFormat) (Range, bool, error) {
	if r.Collapsed() {
		return r, false, nil
	}

	active := s.inlineActive(r, f)
	texts := r.SplitText()
	if len(texts) == 0 {
		return Range{}, false, nil
	}
	changed := false
	for _, t := range texts {
		if active {
			for w := ClosestTag(t, s.root, f.match...); w != nil; w = ClosestTag(t, s.root, f.match...) {
				unwrapAround(w, t)
				changed = true
			}
			continue
		}
		if ClosestTag(t, s.root, f.match...) != nil {
			continue
		}
		Wrap(t, Element(f.tag))
		changed = true
	}
	last := texts[len(texts)-1]
	return Range{Start: Point{texts[0], 0}, End: Point{last, Length(last)}}, changed, nil
}

// unwrapAround splits w around text t and unwraps only the piece holding t.
// The text before and after t keeps its formatting.
func unwrapAround(w, t *html.Node) {
	mid := splitAncestors(w, t.Parent, Index(t))
	if !hasContent(w) {
		Remove(w)
	}
	if tail := splitAncestors(mid, t.Parent, Index(t)+1); !hasContent(tail) {
		Remove(tail)
	}
	Unwrap(mid)
}

func (s *Surface) formatBlock(r Range, value string) (Range, bool, error) {
	tag := strings.ToLower(strings.Trim(strings.TrimSpace(value), "<>"))
	if !isTextBlock(Element(tag)) {
		return r, false, fmt.Errorf("%w: formatBlock %q", ErrInvalidValue, value)
	}
	changed := false
	for _, b := range s.blocksIn(r, &changed) {
		if b.Data != tag {
			Rename(b, tag)
			changed = true
		}
	}
	return r, changed, nil
}

func (s *Surface) toggleList(r Range, tag string) (Range, bool, error) {
	if li := ClosestTag(anchorNode(r.Start), s.root, "li"); li != nil && IsElement(li.Parent, "ol", "ul") {
		list := li.Parent
		if list.Data != tag {
			Rename(list, tag)
			return r, true, nil
		}
		for _, item := range Children(list) {
			if IsElement(item, "li") {
				Rename(item, "p")
			}
		}
		Unwrap(list)
		return r, true, nil
	}

	changed := false
	blocks := s.blocksIn(r, &changed)
	if len(blocks) == 0 {
		return r, changed, nil
	}
	list := Element(tag)
	InsertBefore(blocks[0], list)
	for _, b := range blocks {
		li := Element("li")
		if IsElement(b, "p", "div") {
			Append(li, Children(b)...)
			Remove(b)
		} else {
			Append(li, b)
		}
		Append(list, li)
	}
	return r, true, nil
}

func (s *Surface) justify(r Range, align string) (Range, bool, error) {
	changed := false
	for _, b := range s.blocksIn(r, &changed) {
		if StyleOf(b).Get("text-align") != align {
			SetStyleProperty(b, "text-align", align)
			changed = true
		}
	}
	return r, changed, nil
}

func (s *Surface) indent(r Range) (Range, bool, error) {
	changed := false
	for _, b := range s.blocksIn(r, &changed) {
		Wrap(b, Element("blockquote", "style", indentStyle))
		changed = true
	}
	return r, changed, nil
}

func (s *Surface) outdent(r Range) (Range, bool, error) {
	changed := false
	for _, b := range s.blocksIn(r, &changed) {
		q := ClosestTag(b, s.root, "blockquote")
		if q == nil || q.Parent == nil {
			continue
		}
		Unwrap(q)
		changed = true
	}
	return r, changed, nil
}

func (s *Surface) insertHTML(r Range, markup string) (Range, bool, error) {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return r, false, err
	}
	if len(nodes) == 0 && r.Collapsed() {
		return r, false, nil
	}
	p := r.DeleteContents()
	return Caret(InsertNodes(p, nodes...).unpack()), true, nil
}

func (s *Surface) insertText(r Range, text string) (Range, bool, error) {
	p := r.DeleteContents()
	if text == "" {
		return Caret(p.unpack()), !r.Collapsed(), nil
	}
	n := utf8.RuneCountInString(text)
	if IsText(p.Node) {
		rs := []rune(p.Node.Data)
		o := clamp(p.Offset, 0, len(rs))
		p.Node.Data = string(rs[:o]) + text + string(rs[o:])
		return Caret(p.Node, o+n), true, nil
	}
	if prev := ChildAt(p.Node, p.Offset-1); IsText(prev) {
		prev.Data += text
		return Caret(prev, Length(prev)), true, nil
	}
	if next := ChildAt(p.Node, p.Offset); IsText(next) {
		next.Data = text + next.Data
		return Caret(next, n), true, nil
	}
	t := Text(text)
	InsertNodes(p, t)
	return Caret(t, n), true, nil
}

func (s *Surface) insertLineBreak(r Range) (Range, bool, error) {
	p := r.DeleteContents()
	return Caret(InsertNodes(p, Element("br")).unpack()), true, nil
}

func (s *Surface) deleteBackward(r Range) (Range, bool, error) {
	if !r.Collapsed() {
		return Caret(r.DeleteContents().unpack()), true, nil
	}

	p := r.Start
	if IsText(p.Node) && p.Offset > 0 {
		from := grapheme.PrevBoundary(p.Node.Data, p.Offset)
		rs := []rune(p.Node.Data)
		p.Node.Data = string(rs[:from]) + string(rs[clamp(p.Offset, 0, len(rs)):])
		return Caret(p.Node, from), true, nil
	}

	var before *html.Node
	if !IsText(p.Node) && p.Offset > 0 {
		before = ChildAt(p.Node, p.Offset-1)
		for before != nil && before.LastChild != nil {
			before = before.LastChild
		}
	} else {
		before = prevLeaf(p.Node)
	}
	if before == nil || before == s.root || !Contains(s.root, before) {
		return r, false, nil
	}

	cur := s.existingBlock(anchorNode(p))
	if cur != nil && !Contains(cur, before) {
		prev := s.existingBlock(before)
		if prev != nil && !Contains(prev, cur) {
			at := Point{prev, ChildCount(prev)}
			Append(prev, Children(cur)...)
			Remove(cur)
			return Caret(at.unpack()), true, nil
		}
		at := Point{cur.Parent, Index(cur)}
		Unwrap(cur)
		return Caret(at.unpack()), true, nil
	}

	if IsText(before) {
		from := grapheme.PrevBoundary(before.Data, Length(before))
		before.Data = string([]rune(before.Data)[:from])
		return Caret(before, from), true, nil
	}
	if p.Node == before.Parent && Index(before) < p.Offset {
		p.Offset--
	}
	Remove(before)
	return Caret(p.unpack()), true, nil
}

func (p Point) unpack() (*html.Node, int) { return p.Node, p.Offset }

// existingBlock returns the nearest block container of n inside the surface.
func (s *Surface) existingBlock(n *html.Node) *html.Node {
	return Closest(n, s.root, func(c *html.Node) bool {
		return isTextBlock(c) || IsElement(c, "li", "td", "th")
	})
}

// blocksIn returns the text blocks touched by r in document order, wrapping
// loose inline runs in a new div where needed. created is set when a wrapper
// was added.
func (s *Surface) blocksIn(r Range, created *bool) []*html.Node {
	var anchors []*html.Node
	if !r.Collapsed() {
		r.EachText(func(n *html.Node, _, _ int) { anchors = append(anchors, n) })
	}
	if len(anchors) == 0 {
		anchors = append(anchors, anchorNode(r.Start))
	}

	var out []*html.Node
	seen := map[*html.Node]bool{}
	for _, a := range anchors {
		b := s.blockFor(a, created)
		if b != nil && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

func (s *Surface) blockFor(n *html.Node, created *bool) *html.Node {
	container := s.root
	for c := n; c != nil && c != s.root; c = c.Parent {
		if isTextBlock(c) {
			return c
		}
		if IsElement(c, "li", "td", "th") {
			container = c
			break
		}
	}

	if n == container {
		if n.FirstChild != nil {
			return nil
		}
		b := Element("div")
		n.AppendChild(b)
		*created = true
		return b
	}

	child := n
	for child.Parent != container {
		child = child.Parent
	}
	if IsBlock(child) {
		return nil
	}

	first, last := child, child
	for first.PrevSibling != nil && !IsBlock(first.PrevSibling) && !IsElement(first.PrevSibling, "br") {
		first = first.PrevSibling
	}
	for last.NextSibling != nil && !IsBlock(last.NextSibling) && !IsElement(last.NextSibling, "br") {
		last = last.NextSibling
	}

	b := Element("div")
	InsertBefore(first, b)
	for c := first; ; {
		next := c.NextSibling
		Append(b, c)
		if c == last {
			break
		}
		c = next
	}
	*created = true
	return b
}
