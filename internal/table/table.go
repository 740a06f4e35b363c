// Package table renders rows as an aligned markdown table for terminal output.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minWidth keeps the separator row a valid markdown separator ("---").
const minWidth = 3

// Render formats header and rows as a markdown table whose columns are padded
// to the widest cell by display width, so wide runes (e.g. CJK, emoji) line up.
// Rows shorter than the header are padded with empty cells; extra cells are
// dropped. Pipes inside cells are escaped and line breaks become spaces.
func Render(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}
	cols := len(header)

	table := make([][]string, 0, len(rows)+1)
	table = append(table, cleanRow(header, cols))
	for _, r := range rows {
		table = append(table, cleanRow(r, cols))
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minWidth
	}
	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow(&sb, table[0], widths)
	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(&sb, sep, widths)
	for _, row := range table[1:] {
		writeRow(&sb, row, widths)
	}
	return sb.String()
}

func cleanRow(r []string, cols int) []string {
	out := make([]string, cols)
	for i := 0; i < cols && i < len(r); i++ {
		out[i] = cleanCell(r[i])
	}
	return out
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func cleanCell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")
	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, widths[i]))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}
