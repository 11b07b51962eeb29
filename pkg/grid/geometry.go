package grid

// Size is a pixel extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement holds CSS-grid line numbers for an item. The end lines are
// exclusive: one past the last occupied cell.
type Placement struct {
	ColStart int `json:"col_start"`
	ColEnd   int `json:"col_end"`
	RowStart int `json:"row_start"`
	RowEnd   int `json:"row_end"`
}

// Columns returns the number of columns the placement covers.
func (p Placement) Columns() int { return p.ColEnd - p.ColStart }

// Rows returns the number of rows the placement covers.
func (p Placement) Rows() int { return p.RowEnd - p.RowStart }

// PixelSize returns the pixel size of a colSpan × rowSpan item. Inter-item
// gaps are not included.
func PixelSize(colSpan, rowSpan int, cellWidth, cellHeight float64) Size {
	return Size{
		Width:  float64(colSpan) * cellWidth,
		Height: float64(rowSpan) * cellHeight,
	}
}

// DefaultPixelSize is PixelSize with the default 150×150 cell.
func DefaultPixelSize(colSpan, rowSpan int) Size {
	return PixelSize(colSpan, rowSpan, DefaultCellWidth, DefaultCellHeight)
}

// Position converts an origin and spans into grid lines. End lines that
// do not fit in an int saturate at math.MaxInt or math.MinInt.
func Position(col, row, colSpan, rowSpan int) Placement {
	return Placement{
		ColStart: col,
		ColEnd:   lineAt(col).plus(colSpan).clamp(),
		RowStart: row,
		RowEnd:   lineAt(row).plus(rowSpan).clamp(),
	}
}
