package editor

import (
	"fmt"
	"html"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Actions executed by the surface's built-in commands.
var nativeActions = map[string]bool{
	"bold":                true,
	"italic":              true,
	"underline":           true,
	"strikethrough":       true,
	"subscript":           true,
	"superscript":         true,
	"insertOrderedList":   true,
	"insertUnorderedList": true,
	"justifyLeft":         true,
	"justifyRight":        true,
	"justifyCenter":       true,
	"justifyFull":         true,
	"indent":              true,
	"outdent":             true,
	"formatBlock":         true,
}

const quoteFooter = `<footer class="blockquote-footer">--Footer, <cite>cite</cite></footer>`

// FireAction runs a toolbar action. value is only used by formatBlock.
//
// Native actions go to the surface; link, table and media open their popups;
// quote and code insert markup at the selection; codeView toggles the source
// view. The returned command schedules a toolbar recheck.
func (e *Editor) FireAction(action, value string) (tea.Cmd, error) {
	if e.codeView && action != "codeView" {
		return nil, fmt.Errorf("%s: %w", action, ErrCodeView)
	}

	before := e.surface.Version()
	var err error
	switch {
	case nativeActions[action]:
		err = e.surface.Exec(action, value)
	case action == "link":
		e.togglePopup(popupLink)
	case action == "table":
		e.togglePopup(popupTable)
	case action == "media":
		e.togglePopup(popupMedia)
	case action == "quote":
		err = e.insertQuote()
	case action == "code":
		err = e.wrapCode()
	case action == "codeView":
		e.ToggleCodeView()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if e.surface.Version() != before && !e.codeView {
		e.contentChanged()
	}
	if err != nil {
		e.log.Debug("action", zap.String("action", action), zap.String("value", value), zap.Error(err))
	}
	return e.recheck.Trigger(e.id), err
}

func (e *Editor) insertQuote() error {
	body := "<br>"
	if text := e.surface.Selection().String(); text != "" && e.surface.HasSelection() {
		body = html.EscapeString(text)
	}
	return e.surface.InsertHTML("<blockquote><p>" + body + "</p>" + quoteFooter + "</blockquote><br>")
}

func (e *Editor) wrapCode() error {
	text := ""
	if e.surface.HasSelection() {
		text = e.surface.Selection().String()
	}
	return e.surface.InsertHTML("<code>" + html.EscapeString(text) + "</code>")
}
