package render

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

// MaxCells bounds Rows×Columns for the table-based sinks, which draw every
// slot of the grid.
const MaxCells = 1 << 16

// Options configures cell metrics. Zero values take the grid defaults.
type Options struct {
	CellWidth  float64
	CellHeight float64
	Gap        float64
}

func (o *Options) setDefaults() {
	if o.CellWidth <= 0 {
		o.CellWidth = grid.DefaultCellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = grid.DefaultCellHeight
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
}

// Cell is one placed item.
type Cell struct {
	ID        string         `json:"id"`
	Placement grid.Placement `json:"placement"`
	Size      grid.Size      `json:"size"`
	// X and Y are the pixel offset of the top-left corner, gaps included.
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content any     `json:"content,omitempty"`
}

// Label is the text drawn for the cell: its content when it is a string,
// otherwise its id.
func (c Cell) Label() string {
	switch v := c.Content.(type) {
	case nil:
		return c.ID
	case string:
		if v == "" {
			return c.ID
		}
		return v
	case fmt.Stringer:
		return v.String()
	}
	return c.ID
}

// Grid is a laid-out set of cells.
type Grid struct {
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
	Gap        float64 `json:"gap"`
	Cells      []Cell  `json:"cells"`
}

// Width is the pixel width of the whole grid.
func (g Grid) Width() float64 { return span(g.Columns, g.CellWidth, g.Gap) }

// Height is the pixel height of the whole grid.
func (g Grid) Height() float64 { return span(g.Rows, g.CellHeight, g.Gap) }

func span(n int, size, gap float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*size + float64(n-1)*gap
}

// Build places items on a grid of the given column count. Item order is
// preserved. Rows grow to fit the lowest item.
func Build(items []grid.Item, columns int, opts Options) Grid {
	opts.setDefaults()
	if columns < 1 {
		columns = 1
	}
	g := Grid{
		Columns:    columns,
		CellWidth:  opts.CellWidth,
		CellHeight: opts.CellHeight,
		Gap:        opts.Gap,
		Cells:      make([]Cell, 0, len(items)),
	}
	for _, it := range items {
		p := it.Placement()
		if rows := p.RowEnd - 1; rows > g.Rows {
			g.Rows = rows
		}
		g.Cells = append(g.Cells, Cell{
			ID:        it.ID,
			Placement: p,
			Size:      grid.PixelSize(it.ColSpan, it.RowSpan, opts.CellWidth, opts.CellHeight),
			X:         float64(p.ColStart-1) * (opts.CellWidth + opts.Gap),
			Y:         float64(p.RowStart-1) * (opts.CellHeight + opts.Gap),
			Content:   it.Content,
		})
	}
	return g
}

// CheckExtent returns an INVALID_INPUT error when the grid has more slots
// than [MaxCells]. A valid layout can still be too tall to draw: rows are
// unbounded.
func (g Grid) CheckExtent() error {
	if g.Columns > MaxCells || (g.Columns > 0 && g.Rows > MaxCells/g.Columns) {
		return errors.New(errors.ErrCodeInvalidInput,
			"grid of %d rows by %d columns is too large to draw (limit %d cells)", g.Rows, g.Columns, MaxCells)
	}
	return nil
}

// occupancy maps each (row, col) to the index of the cell covering it, or
// -1. Cells that leave the grid or hit an occupied slot are left out and
// reported in skipped.
func (g Grid) occupancy() (occ [][]int, skipped []int) {
	occ = make([][]int, g.Rows)
	for r := range occ {
		occ[r] = make([]int, g.Columns)
		for c := range occ[r] {
			occ[r][c] = -1
		}
	}

	for i, cell := range g.Cells {
		p := cell.Placement
		if p.ColStart < 1 || p.RowStart < 1 || p.Columns() < 1 || p.Rows() < 1 || p.ColEnd-1 > g.Columns {
			skipped = append(skipped, i)
			continue
		}
		free := true
		for r := p.RowStart; r < p.RowEnd && free; r++ {
			for c := p.ColStart; c < p.ColEnd; c++ {
				if occ[r-1][c-1] != -1 {
					free = false
					break
				}
			}
		}
		if !free {
			skipped = append(skipped, i)
			continue
		}
		for r := p.RowStart; r < p.RowEnd; r++ {
			for c := p.ColStart; c < p.ColEnd; c++ {
				occ[r-1][c-1] = i
			}
		}
	}
	return occ, skipped
}
