package toolbar

import (
	"fmt"
	"html"
)

// Popup trigger containers. The editor looks these up to open settings panels.
const (
	LinkTriggerClass  = "wyg__tool-link-trigger"
	LinkSettingClass  = "wyg__tool-link-setting"
	TableTriggerClass = "wyg__tool-table-trigger"
	TableSettingClass = "wyg__tool-table-setting"
	MediaTriggerClass = "wyg__tool-media-trigger"
	MediaSettingClass = "wyg__tool-media-setting"
)

// DefaultSelector matches host elements when no selector is configured.
const DefaultSelector = "[data-wyg]"

func button(action, value, title, label string) string {
	v := ""
	if value != "" {
		v = fmt.Sprintf(` data-value="%s"`, html.EscapeString(value))
	}
	return fmt.Sprintf(`<button type="button" class="wyg__btn" data-action="%s"%s title="%s">%s</button>`,
		html.EscapeString(action), v, html.EscapeString(title), html.EscapeString(label))
}

func popupTrigger(action, title, label, triggerClass, settingClass string) string {
	return fmt.Sprintf(`<div class="%s">%s<div class="%s"></div></div>`,
		triggerClass, button(action, "", title, label), settingClass)
}

func leaf(id, name, action, value, label string) Leaf {
	return Leaf{ID: id, Name: name, Markup: button(action, value, name, label)}
}

// Default returns the built-in tool tree.
func Default() *Registry {
	var headings []Tool
	for i := 1; i <= 6; i++ {
		tag := fmt.Sprintf("h%d", i)
		headings = append(headings, leaf(tag, fmt.Sprintf("Heading %d", i), "formatBlock", tag, fmt.Sprintf("H%d", i)))
	}
	headings = append(headings,
		leaf("paragraph", "Normal Text", "formatBlock", "p", "P"),
		leaf("quote", "Quote", "quote", "", "❝"),
		leaf("code", "Code", "code", "", "</>"),
	)

	return NewRegistry(
		Composite{Leaf: leaf("headings", "Headings", "formatBlock", "p", "Normal"), Children: headings},
		leaf("bold", "Bold", "bold", "", "B"),
		leaf("italic", "Italic", "italic", "", "I"),
		Composite{Leaf: leaf("underline", "Underline", "underline", "", "U"), Children: []Tool{
			leaf("strikethrough", "Strikethrough", "strikethrough", "", "S"),
			leaf("subscript", "Subscript", "subscript", "", "x₂"),
			leaf("superscript", "Superscript", "superscript", "", "x²"),
		}},
		Leaf{ID: "link", Name: "Link", Markup: popupTrigger("link", "Link", "Link", LinkTriggerClass, LinkSettingClass)},
		Leaf{ID: "table", Name: "Table", Markup: popupTrigger("table", "Table", "Table", TableTriggerClass, TableSettingClass)},
		leaf("ol", "Ordered List", "insertOrderedList", "", "1."),
		leaf("ul", "Unordered List", "insertUnorderedList", "", "•"),
		Composite{Leaf: leaf("alignLeft", "Align Left", "justifyLeft", "", "⇤"), Children: []Tool{
			leaf("alignRight", "Align Right", "justifyRight", "", "⇥"),
			leaf("alignCenter", "Align Center", "justifyCenter", "", "↔"),
			leaf("justify", "Justify", "justifyFull", "", "≡"),
			leaf("indentIncrease", "Indent", "indent", "", "→|"),
			leaf("indentDecrease", "Outdent", "outdent", "", "|←"),
		}},
		Leaf{ID: "media", Name: "Media", Markup: popupTrigger("media", "Media", "Media", MediaTriggerClass, MediaSettingClass)},
		leaf("codeView", "Code View", "codeView", "", "<>"),
	)
}

// DefaultTools is the enabled list used when none is configured.
func DefaultTools() []string {
	return []string{
		"headings", "paragraph", "code", "quote", "h1", "h2", "h3", "h4", "h5", "h6",
		"bold", "italic", "underline", "strikethrough", "subscript", "superscript",
		"alignLeft", "alignRight", "alignCenter", "justify", "indentIncrease", "indentDecrease",
		"ol", "ul", "link", "table", "media", "codeView",
	}
}
