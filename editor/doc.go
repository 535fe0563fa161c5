// Package editor provides the rich-text editor component: a toolbar bound to
// a content-editable surface of a dom document.
//
// A Manager finds host elements by selector and builds one Editor per host.
// Editors dispatch toolbar actions to the surface's editing commands or to
// popup flows (link, table, media), keep inserted links, tables and media
// interactive through popovers, clean pasted markup, toggle an HTML source
// view, reflect command state on the toolbar, and notify listeners of input,
// change, focus, blur, paste and keydown.
//
// The component is driven by Bubble Tea messages. Deferred work (toolbar
// rechecks, media file reads) is returned as tea.Cmd values; all state changes
// happen on the goroutine that calls Update.
package editor
