package editor

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	defaultTableDim = 2
	maxTableDim     = 100
)

func tableForm() *html.Node {
	def := strconv.Itoa(defaultTableDim)
	return formNode(popupTable, "Insert",
		inputField("Rows", "number", "rows", def, ""),
		inputField("Columns", "number", "cols", def, ""),
		checkboxField("No Header", "noHeader"),
		checkboxField("No Footer", "noFooter"),
	)
}

// tableDim clamps a rows/columns field to [1,100]. Unparsable input yields 1.
func tableDim(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return min(max(n, 1), maxTableDim)
}

// TableMarkup builds a table with an optional header row and footer row.
// Every cell holds a line break so the caret can enter it.
func TableMarkup(rows, cols int, header, footer bool) string {
	rows = min(max(rows, 1), maxTableDim)
	cols = min(max(cols, 1), maxTableDim)
	row := func(cell string) string {
		return "<tr>" + strings.Repeat("<"+cell+"><br></"+cell+">", cols) + "</tr>"
	}

	var b strings.Builder
	b.WriteString("<table>")
	if header {
		b.WriteString("<thead>" + row("th") + "</thead>")
	}
	b.WriteString("<tbody>" + strings.Repeat(row("td"), rows) + "</tbody>")
	if footer {
		b.WriteString("<tfoot>" + row("td") + "</tfoot>")
	}
	b.WriteString("</table>")
	return b.String()
}

func (e *Editor) submitTable(p *popup) error {
	rows, cols := tableDim(p.value("rows")), tableDim(p.value("cols"))
	header, footer := !p.checked("noHeader"), !p.checked("noFooter")

	p.snap.Restore(e.surface)
	e.closePopup(p)
	markup := "<br>" + `<div class="` + tableWrapperClass + `">` + TableMarkup(rows, cols, header, footer) + "</div><br>"
	if err := e.surface.InsertHTML(markup); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	e.contentChanged()
	return nil
}
