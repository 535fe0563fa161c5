package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// QueryState reports whether cmd applies to the selection, in the manner of
// queryCommandState. Commands without a state yield ErrUnsupported.
func (s *Surface) QueryState(cmd string) (bool, error) {
	r, ok := s.Range()
	if !ok {
		return false, fmt.Errorf("%s: %w", cmd, ErrNoSelection)
	}
	if f, ok := inlineFormats[cmd]; ok {
		return s.inlineActive(r, f), nil
	}
	if align, ok := justifyValues[cmd]; ok {
		got := s.alignmentAt(anchorNode(r.Start))
		if got == "" || got == "start" {
			got = "left"
		}
		return got == align, nil
	}
	switch cmd {
	case "insertOrderedList", "insertUnorderedList":
		list := ClosestTag(anchorNode(r.Start), s.root, "ol", "ul")
		want := "ul"
		if cmd == "insertOrderedList" {
			want = "ol"
		}
		return list != nil && list.Data == want, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnsupported, cmd)
}

// inlineActive is true when every selected text node with visible content
// sits under one of the format's tags. A collapsed selection checks its
// container.
func (s *Surface) inlineActive(r Range, f inlineFormat) bool {
	visible, all := false, true
	if !r.Collapsed() {
		r.EachText(func(n *html.Node, from, to int) {
			if strings.TrimSpace(string([]rune(n.Data)[from:to])) == "" {
				return
			}
			visible = true
			if ClosestTag(n, s.root, f.match...) == nil {
				all = false
			}
		})
	}
	if visible {
		return all
	}
	return ClosestTag(r.Start.Node, s.root, f.match...) != nil
}

func (s *Surface) alignmentAt(n *html.Node) string {
	for c := n; c != nil && c != s.root; c = c.Parent {
		if c.Type != html.ElementNode {
			continue
		}
		if v := StyleOf(c).Get("text-align"); v != "" {
			return strings.ToLower(v)
		}
		if v := AttrValue(c, "align"); v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}
