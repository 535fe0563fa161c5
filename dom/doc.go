// Package dom is the host environment the editor component runs against.
//
// It wraps golang.org/x/net/html trees with the pieces a content-editable
// region needs: node helpers, selector queries, boundary-point ranges, a
// shared selection, and Surface, which executes editing commands, answers
// command-state queries and keeps undo history.
//
// Boundary points follow DOM conventions: inside an element the offset counts
// children, inside a text node it counts runes.
package dom
