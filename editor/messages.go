package editor

import (
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/dom"
)

// ClickMsg reports a primary click on a document node. X and Y are the
// pointer coordinates; Offset places the caret when Target lies in a surface
// (runes for text nodes, children for elements).
type ClickMsg struct {
	Target *html.Node
	X, Y   int
	Offset int
}

// HoverMsg reports the node under the pointer. A nil Target means the pointer
// left the document.
type HoverMsg struct {
	Target *html.Node
}

// FieldMsg sets the value of a form control in a popup or popover. Checkboxes
// take a boolean string.
type FieldMsg struct {
	Target *html.Node
	Value  string
}

// FileMsg picks a local file for a file input.
type FileMsg struct {
	Target *html.Node
	Path   string
}

// PasteMsg carries clipboard payloads. An empty EditorID targets the focused
// editor.
type PasteMsg struct {
	EditorID string
	HTML     string
	Text     string
}

// SelectMsg replaces the document selection.
type SelectMsg struct {
	Start, End dom.Point
}
