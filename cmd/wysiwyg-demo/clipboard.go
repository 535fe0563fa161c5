package main

import "github.com/atotto/clipboard"

// systemClipboard carries plain text only; pasted text is still sanitized as
// markup by the editor.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }
