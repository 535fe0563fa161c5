package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are logged and ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// HTMLClipboard is implemented by clipboards that also carry markup. Paste
// prefers the markup when it is non-empty.
type HTMLClipboard interface {
	Clipboard
	ReadHTML() (string, error)
}
