package dom

import (
	"strings"
	"unicode/utf8"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates a detached element. attrs are key/value pairs.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// IsElement reports whether n is an element, optionally restricted to tags.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

func IsText(n *html.Node) bool { return n != nil && n.Type == html.TextNode }

// Rename changes the tag of an element in place.
func Rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func AttrValue(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	return htmlquery.SelectAttr(n, key)
}

func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

func Classes(n *html.Node) []string {
	return strings.Fields(AttrValue(n, "class"))
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(AttrValue(n, "class")+" "+class))
}

func RemoveClass(n *html.Node, class string) {
	if !HasAttr(n, "class") {
		return
	}
	var keep []string
	for _, c := range Classes(n) {
		if c != class {
			keep = append(keep, c)
		}
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// SetClass adds or removes class depending on on.
func SetClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
		return
	}
	RemoveClass(n, class)
}

// ToggleClass flips class and reports whether it is now present.
func ToggleClass(n *html.Node, class string) bool {
	on := !HasClass(n, class)
	SetClass(n, class, on)
	return on
}

func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func ChildCount(n *html.Node) int {
	k := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		k++
	}
	return k
}

// ChildAt returns the i-th child of n or nil when out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// Index returns the position of n among its siblings.
func Index(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Length is the DOM node length: runes for text, children for elements.
func Length(n *html.Node) int {
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	return ChildCount(n)
}

// Contains reports whether n is anc or one of its descendants.
func Contains(anc, n *html.Node) bool {
	if anc == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n == anc {
			return true
		}
	}
	return false
}

// Closest walks from n (inclusive) towards the root and returns the first node
// matching pred. The walk stops before reaching stop.
func Closest(n, stop *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil && n != stop; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

func ClosestTag(n, stop *html.Node, tags ...string) *html.Node {
	return Closest(n, stop, func(c *html.Node) bool { return IsElement(c, tags...) })
}

func ClosestClass(n, stop *html.Node, class string) *html.Node {
	return Closest(n, stop, func(c *html.Node) bool { return c.Type == html.ElementNode && HasClass(c, class) })
}

func ClosestAttr(n, stop *html.Node, key string) *html.Node {
	return Closest(n, stop, func(c *html.Node) bool { return c.Type == html.ElementNode && HasAttr(c, key) })
}

// Top returns the outermost ancestor of n.
func Top(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func InsertBefore(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref)
}

func InsertAfter(ref, n *html.Node) {
	Remove(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func Append(parent *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		Remove(n)
		parent.AppendChild(n)
	}
}

// ReplaceWith puts nodes where old was and detaches old.
func ReplaceWith(old *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		InsertBefore(old, n)
	}
	Remove(old)
}

// Unwrap moves the children of n in front of it and removes n.
func Unwrap(n *html.Node) {
	ReplaceWith(n, Children(n)...)
}

// Wrap puts wrapper where n is and moves n inside it.
func Wrap(n, wrapper *html.Node) {
	InsertBefore(n, wrapper)
	Append(wrapper, n)
}

func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.InnerText(n)
}

func SetTextContent(n *html.Node, s string) {
	RemoveChildren(n)
	if s != "" {
		n.AppendChild(Text(s))
	}
}

func InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// ParseFragment parses markup as the children of a div.
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}

func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	Append(n, nodes...)
	return nil
}

// Clone deep-copies n. The copy is detached.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// TextNodes returns every text node under n in document order.
func TextNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			out = append(out, c)
		}
		return true
	})
	return out
}

// nextPreorder returns the node after n in document order, descending into
// children first.
func nextPreorder(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return nextAfter(n)
}

// nextAfter returns the node after n's subtree in document order.
func nextAfter(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// prevLeaf returns the deepest last node before n in document order.
func prevLeaf(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if p := n.PrevSibling; p != nil {
			for p.LastChild != nil {
				p = p.LastChild
			}
			return p
		}
	}
	return nil
}

// NodePath addresses a node by child indices from a root.
type NodePath []int

// PathOf returns the path from root to n.
func PathOf(root, n *html.Node) (NodePath, bool) {
	var rev []int
	for c := n; c != root; c = c.Parent {
		if c == nil {
			return nil, false
		}
		rev = append(rev, Index(c))
	}
	p := make(NodePath, len(rev))
	for i := range rev {
		p[i] = rev[len(rev)-1-i]
	}
	return p, true
}

// Resolve walks p from root. It returns nil when the path no longer exists.
func (p NodePath) Resolve(root *html.Node) *html.Node {
	n := root
	for _, i := range p {
		n = ChildAt(n, i)
		if n == nil {
			return nil
		}
	}
	return n
}

var textBlockTags = []string{"p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "address"}

var blockTags = append([]string{
	"li", "ul", "ol", "table", "thead", "tbody", "tfoot", "tr", "td", "th", "hr", "figure", "footer",
}, textBlockTags...)

func IsBlock(n *html.Node) bool { return IsElement(n, blockTags...) }

func isTextBlock(n *html.Node) bool { return IsElement(n, textBlockTags...) }
