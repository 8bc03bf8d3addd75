package report

import "strings"

// markdownTable renders headers and rows as a GitHub-style pipe table with
// columns padded to the widest cell.
func markdownTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString("| ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}

	writeRow(headers)
	for _, w := range widths {
		b.WriteString("|")
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("|\n")
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
