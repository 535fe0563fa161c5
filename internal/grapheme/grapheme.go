package grapheme

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, utf8.RuneCountInString(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// PrevBoundary returns the rune offset of the cluster boundary before off.
// Offsets are in runes, matching text-node offsets.
func PrevBoundary(text string, off int) int {
	if off <= 0 {
		return 0
	}
	pos, prev := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if pos >= off {
			break
		}
		prev = pos
		pos += len(g.Runes())
	}
	return prev
}

// NextBoundary returns the rune offset of the cluster boundary after off.
func NextBoundary(text string, off int) int {
	pos := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		pos += len(g.Runes())
		if pos > off {
			return pos
		}
	}
	return pos
}
