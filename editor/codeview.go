package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/wysiwyg/dom"
)

const codeViewClass = "wyg-html-view"

// ToggleCodeView switches between rich editing and the HTML source of the
// surface. Entering and leaving without edits round-trips the content.
func (e *Editor) ToggleCodeView() {
	if e.codeView {
		e.leaveCodeView()
		return
	}
	e.enterCodeView()
}

func (e *Editor) enterCodeView() {
	e.closeTransient()
	markup := e.Value()

	dom.RemoveChildren(e.area)
	dom.Append(e.area, dom.Text(markup))
	dom.AddClass(e.area, codeViewClass)
	e.codeView = true

	e.surface.ResetHistory()
	e.surface.Touch()
	e.RefreshToolbar()
}

func (e *Editor) leaveCodeView() {
	nodes, err := dom.ParseFragment(dom.TextContent(e.area))
	if err != nil {
		e.log.Debug("leave code view", zap.Error(err))
		return
	}
	dom.RemoveChildren(e.area)
	dom.Append(e.area, nodes...)
	dom.RemoveClass(e.area, codeViewClass)
	e.codeView = false

	e.surface.ResetHistory()
	e.surface.Touch()
	e.postProcess()
}
