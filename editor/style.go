package editor

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

// Style controls the terminal rendering of an editor.
type Style struct {
	Tool       lipgloss.Style
	ToolActive lipgloss.Style
	ToolOpen   lipgloss.Style
	Menu       lipgloss.Style

	Field  lipgloss.Style
	Submit lipgloss.Style

	Text      lipgloss.Style
	Caret     lipgloss.Style
	Selection lipgloss.Style
	Link      lipgloss.Style
	Chrome    lipgloss.Style

	// Code view. Source is the base; the rest layer over it by token kind.
	Source        lipgloss.Style
	SourceTag     lipgloss.Style
	SourceAttr    lipgloss.Style
	SourceString  lipgloss.Style
	SourceComment lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Tool:       lipgloss.NewStyle().Padding(0, 1),
		ToolActive: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		ToolOpen:   lipgloss.NewStyle().Padding(0, 1).Underline(true),
		Menu:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250")),

		Field:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")),
		Submit: lipgloss.NewStyle().Padding(0, 1).Bold(true),

		Text:      lipgloss.NewStyle(),
		Caret:     lipgloss.NewStyle().Reverse(true),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		Chrome:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),

		SourceTag:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		SourceAttr:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		SourceString:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		SourceComment: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	}
}

func normalizeStyle(s Style) Style {
	if reflect.DeepEqual(s, Style{}) {
		return DefaultStyle()
	}
	return s
}
