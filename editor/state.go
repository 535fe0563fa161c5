package editor

import (
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// Commands whose state is shown on the toolbar.
var stateCommands = []string{
	"bold", "italic", "underline", "strikethrough", "subscript", "superscript",
	"insertOrderedList", "insertUnorderedList",
	"justifyLeft", "justifyRight", "justifyCenter", "justifyFull",
}

// Ancestor tags that mark a command active when the surface cannot answer.
// Alignment has no fallback and reads as inactive.
var fallbackTags = map[string][]string{
	"bold":                {"strong", "b"},
	"italic":              {"em", "i"},
	"underline":           {"u"},
	"strikethrough":       {"s", "strike", "del"},
	"subscript":           {"sub"},
	"superscript":         {"sup"},
	"insertOrderedList":   {"ol"},
	"insertUnorderedList": {"ul"},
}

var blockStateTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "blockquote", "pre", "code", "div"}

func blockKey(tag string) string { return "formatBlock:" + tag }

// States reports which commands apply to the selection. Block formats are
// keyed "formatBlock:<tag>". Without a selection in the surface, or in code
// view, the map is empty.
func (e *Editor) States() map[string]bool {
	states := map[string]bool{}
	r, ok := e.surface.Range()
	if !ok || e.codeView {
		return states
	}
	// A selection reads its formats from the node holding both ends.
	anchor := r.Anchor()
	if !r.Collapsed() {
		anchor = r.CommonAncestor()
	}
	for _, cmd := range stateCommands {
		on, err := e.surface.QueryState(cmd)
		if err != nil {
			tags, ok := fallbackTags[cmd]
			on = ok && dom.ClosestTag(anchor, e.area, tags...) != nil
		}
		states[cmd] = on
	}

	tag := ""
	if block := dom.ClosestTag(anchor, e.area, blockStateTags...); block != nil {
		tag = block.Data
	}
	for _, t := range blockStateTags {
		states[blockKey(t)] = t == tag
	}
	states[blockKey("p")] = tag == "p" || tag == "div" || tag == ""
	return states
}

// RefreshToolbar toggles the active class of every toolbar control to match
// States. It is idempotent.
func (e *Editor) RefreshToolbar() {
	states := e.States()
	for _, btn := range dom.Find(e.bar, "[data-action]") {
		dom.SetClass(btn, "active", states[controlKey(btn)])
	}
	e.states = states
}

func controlKey(btn *html.Node) string {
	switch action := dom.AttrValue(btn, "data-action"); action {
	case "formatBlock":
		return blockKey(dom.AttrValue(btn, "data-value"))
	case "quote":
		return blockKey("blockquote")
	case "code":
		return blockKey("code")
	default:
		return action
	}
}

// Active reports the toolbar state of a command as of the last refresh.
func (e *Editor) Active(key string) bool { return e.states[key] }
