package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	textPalette = []lipgloss.Color{"36", "35", "220", "75", "170", "208"}
	textHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	textEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textCell    = lipgloss.NewStyle().Padding(0, 1)
)

// emptyMark fills free cells in the text preview.
const emptyMark = "·"

// RenderText draws the grid as a terminal table: one column per grid
// column, one row per grid row, every covered cell showing its item's id
// in that item's color. Grids past [MaxCells] are rejected.
func RenderText(g Grid) (string, error) {
	if err := g.CheckExtent(); err != nil {
		return "", err
	}
	occ, _ := g.occupancy()

	headers := make([]string, g.Columns+1)
	for c := 1; c <= g.Columns; c++ {
		headers[c] = strconv.Itoa(c)
	}

	rows := make([][]string, g.Rows)
	for r := range rows {
		rows[r] = make([]string, g.Columns+1)
		rows[r][0] = strconv.Itoa(r + 1)
		for c := 0; c < g.Columns; c++ {
			if i := occ[r][c]; i >= 0 {
				rows[r][c+1] = g.Cells[i].ID
			} else {
				rows[r][c+1] = emptyMark
			}
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return textHeader.Padding(0, 1)
			}
			i := occ[row][col-1]
			if i < 0 {
				return textEmpty.Padding(0, 1)
			}
			return textCell.Foreground(textPalette[i%len(textPalette)])
		})

	return t.Render(), nil
}
