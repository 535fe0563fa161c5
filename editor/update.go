package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/wysiwyg/dom"
)

// Update routes a message to the editor it concerns. Clicks also run
// outside-click dismissal on every editor and move focus.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ClickMsg:
		return m.click(msg)

	case HoverMsg:
		for _, e := range m.All() {
			e.hoverAt(msg.Target)
		}

	case FieldMsg:
		if e := m.InstanceOf(msg.Target); e != nil {
			return e.updateField(msg)
		}

	case FileMsg:
		if e := m.InstanceOf(msg.Target); e != nil {
			e.updateFile(msg)
		}

	case PasteMsg:
		e := m.Focused()
		if msg.EditorID != "" {
			e = m.Get(msg.EditorID)
		}
		if e == nil {
			return nil
		}
		if err := e.Paste(msg.HTML, msg.Text); err != nil {
			e.log.Debug("paste", zap.Error(err))
		}
		return e.recheck.Trigger(e.id)

	case SelectMsg:
		m.sel.Set(dom.Range{Start: msg.Start, End: msg.End})
		var cmds []tea.Cmd
		for _, e := range m.All() {
			cmds = append(cmds, e.recheck.Trigger(e.id))
		}
		return tea.Batch(cmds...)

	case RecheckMsg:
		if e := m.Get(msg.ID); e != nil && e.recheck.Current(msg) {
			e.RefreshToolbar()
		}

	case mediaLoadedMsg:
		if e := m.Get(msg.id); e != nil {
			return e.mediaLoaded(msg)
		}

	case tea.KeyMsg:
		if e := m.Focused(); e != nil {
			return e.updateKey(msg)
		}

	case tea.WindowSizeMsg:
		for _, e := range m.All() {
			e.SetSize(msg.Width, msg.Height)
		}
	}
	return nil
}

func (m *Manager) click(msg ClickMsg) tea.Cmd {
	for _, e := range m.All() {
		e.dismissOutside(msg.Target)
	}
	e := m.InstanceOf(msg.Target)
	m.setFocus(e)
	if e == nil {
		return nil
	}
	return e.handleClick(msg)
}

func (e *Editor) updateKey(msg tea.KeyMsg) tea.Cmd {
	e.emit(keyEvent(msg))

	// Bracketed paste inserts literal text and never triggers shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if err := e.Paste("", normalizeNewlines(string(msg.Runes))); err != nil {
			e.log.Debug("paste", zap.Error(err))
		}
		return e.recheck.Trigger(e.id)
	}

	km := e.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Bold):
		return e.shortcut("bold")
	case key.Matches(msg, km.Italic):
		return e.shortcut("italic")
	case key.Matches(msg, km.Underline):
		return e.shortcut("underline")
	case key.Matches(msg, km.Link):
		cmd, _ := e.FireAction("link", "")
		return cmd

	case key.Matches(msg, km.Undo):
		if e.surface.Undo() {
			e.closeTransient()
			e.contentChanged()
		}
		return e.recheck.Trigger(e.id)
	case key.Matches(msg, km.Redo):
		if e.surface.Redo() {
			e.closeTransient()
			e.contentChanged()
		}
		return e.recheck.Trigger(e.id)

	case key.Matches(msg, km.Copy):
		e.copySelection()
		return nil
	case key.Matches(msg, km.Paste):
		e.pasteClipboard()
		return e.recheck.Trigger(e.id)
	}

	before := e.surface.Version()
	var err error
	switch {
	case key.Matches(msg, km.Left):
		e.surface.Move(dom.Move{Dir: dom.DirLeft})
	case key.Matches(msg, km.Right):
		e.surface.Move(dom.Move{Dir: dom.DirRight})
	case key.Matches(msg, km.Up):
		e.surface.Move(dom.Move{Dir: dom.DirUp})
	case key.Matches(msg, km.Down):
		e.surface.Move(dom.Move{Dir: dom.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		e.surface.Move(dom.Move{Dir: dom.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		e.surface.Move(dom.Move{Dir: dom.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		e.surface.Move(dom.Move{Dir: dom.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		e.surface.Move(dom.Move{Dir: dom.DirDown, Extend: true})

	case key.Matches(msg, km.Home):
		e.surface.Move(dom.Move{Dir: dom.DirHome})
	case key.Matches(msg, km.End):
		e.surface.Move(dom.Move{Dir: dom.DirEnd})
	case key.Matches(msg, km.ShiftHome):
		e.surface.Move(dom.Move{Dir: dom.DirHome, Extend: true})
	case key.Matches(msg, km.ShiftEnd):
		e.surface.Move(dom.Move{Dir: dom.DirEnd, Extend: true})

	case key.Matches(msg, km.Backspace):
		err = e.surface.DeleteBackward()
	case key.Matches(msg, km.Enter):
		if e.codeView {
			err = e.surface.InsertText("\n")
		} else {
			err = e.surface.InsertLineBreak()
		}

	default:
		switch {
		case msg.Type == tea.KeySpace:
			err = e.surface.InsertText(" ")
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			err = e.surface.InsertText(string(msg.Runes))
		}
	}
	if err != nil {
		e.log.Debug("key", zap.String("key", msg.String()), zap.Error(err))
	}
	if e.surface.Version() != before {
		e.contentChanged()
	}
	return e.recheck.Trigger(e.id)
}

// shortcut runs a formatting action and refreshes the toolbar at once.
func (e *Editor) shortcut(action string) tea.Cmd {
	cmd, err := e.FireAction(action, "")
	if err == nil {
		e.RefreshToolbar()
	}
	return cmd
}

func (e *Editor) copySelection() {
	if e.cfg.Clipboard == nil || !e.surface.HasSelection() {
		return
	}
	s := e.surface.Selection().String()
	if s == "" {
		return
	}
	if err := e.cfg.Clipboard.WriteText(s); err != nil {
		e.log.Debug("clipboard write", zap.Error(err))
	}
}

func (e *Editor) pasteClipboard() {
	cb := e.cfg.Clipboard
	if cb == nil {
		return
	}
	var markup string
	if hc, ok := cb.(HTMLClipboard); ok {
		h, err := hc.ReadHTML()
		if err != nil {
			e.log.Debug("clipboard read html", zap.Error(err))
		}
		markup = h
	}
	text, err := cb.ReadText()
	if err != nil {
		e.log.Debug("clipboard read", zap.Error(err))
	}
	if markup == "" && text == "" {
		return
	}
	if err := e.Paste(markup, normalizeNewlines(text)); err != nil {
		e.log.Debug("paste", zap.Error(err))
	}
}

// normalizeNewlines converts external line endings to \n.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
