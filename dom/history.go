package dom

import "golang.org/x/net/html"

type pathPoint struct {
	path   NodePath
	offset int
}

type surfaceSnapshot struct {
	nodes  []*html.Node
	selOK  bool
	anchor pathPoint
	focus  pathPoint
}

type historyState struct {
	undo []surfaceSnapshot
	redo []surfaceSnapshot
}

func (s *Surface) snapshot() surfaceSnapshot {
	snap := surfaceSnapshot{}
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		snap.nodes = append(snap.nodes, Clone(c))
	}
	if _, ok := s.Range(); ok {
		a, aok := s.pathPoint(s.sel.Anchor())
		f, fok := s.pathPoint(s.sel.Focus())
		snap.selOK = aok && fok
		snap.anchor, snap.focus = a, f
	}
	return snap
}

func (s *Surface) pathPoint(p Point) (pathPoint, bool) {
	path, ok := PathOf(s.root, p.Node)
	return pathPoint{path: path, offset: p.Offset}, ok
}

// restore swaps the content for a copy of snap. The snapshot stays reusable.
func (s *Surface) restore(snap surfaceSnapshot) {
	RemoveChildren(s.root)
	for _, n := range snap.nodes {
		s.root.AppendChild(Clone(n))
	}

	if !snap.selOK {
		s.dropDetachedSelection()
		return
	}
	a := snap.anchor.path.Resolve(s.root)
	f := snap.focus.path.Resolve(s.root)
	if a == nil || f == nil {
		s.CaretToEnd()
		return
	}
	s.sel.Set(Range{
		Start: Point{Node: a, Offset: snap.anchor.offset}.Clamp(),
		End:   Point{Node: f, Offset: snap.focus.offset}.Clamp(),
	})
}

func (s *Surface) recordUndo(prev surfaceSnapshot) {
	limit := s.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	s.hist.undo = append(s.hist.undo, prev)
	if len(s.hist.undo) > limit {
		s.hist.undo = s.hist.undo[len(s.hist.undo)-limit:]
	}
	s.hist.redo = nil
}

func (s *Surface) CanUndo() bool { return len(s.hist.undo) > 0 }

func (s *Surface) CanRedo() bool { return len(s.hist.redo) > 0 }

// ResetHistory forgets every undo and redo step.
func (s *Surface) ResetHistory() { s.hist = historyState{} }

func (s *Surface) Undo() bool {
	if len(s.hist.undo) == 0 {
		return false
	}
	cur := s.snapshot()
	i := len(s.hist.undo) - 1
	prev := s.hist.undo[i]
	s.hist.undo = s.hist.undo[:i]
	s.hist.redo = append(s.hist.redo, cur)

	s.restore(prev)
	s.version++
	return true
}

func (s *Surface) Redo() bool {
	if len(s.hist.redo) == 0 {
		return false
	}
	cur := s.snapshot()
	i := len(s.hist.redo) - 1
	next := s.hist.redo[i]
	s.hist.redo = s.hist.redo[:i]
	s.hist.undo = append(s.hist.undo, cur)

	s.restore(next)
	s.version++
	return true
}
