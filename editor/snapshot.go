package editor

import "github.com/iw2rmb/wysiwyg/dom"

// Snapshot is a saved selection range, taken before a popup moves focus away
// from the surface.
type Snapshot struct {
	r  dom.Range
	ok bool
}

// TakeSnapshot saves the selection when it lies in the surface.
func (e *Editor) TakeSnapshot() Snapshot {
	r, ok := e.surface.Range()
	return Snapshot{r: r, ok: ok}
}

func (s Snapshot) Range() (dom.Range, bool) { return s.r, s.ok }

// Restore re-applies the saved range if both boundaries are still attached
// under the surface with offsets in range. Otherwise the caret collapses at
// the end of the surface and Restore reports false.
func (s Snapshot) Restore(surface *dom.Surface) bool {
	if !s.ok || !s.r.Attached(surface.Root()) {
		surface.CaretToEnd()
		return false
	}
	surface.Select(s.r)
	return true
}
