package markdown

import (
	"errors"
	"strings"

	"github.com/gaurav-prasanna/pagemark/core/tree"
)

var (
	errNoRows     = errors.New("table has no row")
	errNoCells    = errors.New("row has no cell")
	errAbsentText = errors.New("cell has no text")
)

// renderTable renders the grid form of a table, or the table's flattened
// text when the grid is malformed.
func renderTable(n *tree.Node) string {
	grid, err := tableGrid(n)
	if err != nil {
		return "\n" + strings.TrimSpace(flatText(n)) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n\n")
	writeRow(&b, grid[0])
	b.WriteString(strings.Repeat("| --- ", len(grid[0])) + "|\n")
	for _, row := range grid[1:] {
		writeRow(&b, row)
	}
	b.WriteString("\n\n")
	return b.String()
}

// tableGrid collects the trimmed cell texts of every row. The first row is
// the header.
func tableGrid(n *tree.Node) ([][]string, error) {
	rows := n.FindAll(tree.TagRow)
	if len(rows) == 0 {
		return nil, errNoRows
	}
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := row.FindAll(tree.TagCell)
		if len(cells) == 0 {
			return nil, errNoCells
		}
		texts := make([]string, 0, len(cells))
		for _, cell := range cells {
			if !cell.HasText {
				return nil, errAbsentText
			}
			texts = append(texts, strings.TrimSpace(cell.Text))
		}
		grid = append(grid, texts)
	}
	return grid, nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}
