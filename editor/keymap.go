package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals: ctrl+i arrives as tab in most of
// them, so formatting shortcuts carry alt fallbacks.
type KeyMap struct {
	Bold, Italic, Underline key.Binding
	Link                    key.Binding

	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	Home, End                                 key.Binding
	ShiftHome, ShiftEnd                       key.Binding

	Backspace key.Binding
	Enter     key.Binding

	Undo, Redo  key.Binding
	Copy, Paste key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Bold:      key.NewBinding(key.WithKeys("ctrl+b", "alt+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("ctrl+i", "alt+i"), key.WithHelp("ctrl+i", "italic")),
		Underline: key.NewBinding(key.WithKeys("ctrl+u", "alt+u"), key.WithHelp("ctrl+u", "underline")),
		Link:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "link")),

		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		ShiftHome: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to line start")),
		ShiftEnd:  key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to line end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "line break")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}
