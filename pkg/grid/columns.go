package grid

import "math"

// Default cell geometry, in pixels.
const (
	DefaultCellWidth  = 150.0
	DefaultCellHeight = 150.0
	DefaultGap        = 10.0
)

// ColumnCount returns how many cells of cellWidth fit across screenWidth,
// never less than one.
//
// gap is accepted so callers can pass their full grid configuration, but it is
// not part of the computation: cells are counted as if packed edge to edge,
// even though they render with gaps between them.
//
// A width smaller than one cell, zero, or negative yields 1. So does a
// cellWidth that is not a positive finite number.
func ColumnCount(screenWidth, cellWidth, gap float64) int {
	if !(cellWidth > 0) || math.IsInf(cellWidth, 0) || math.IsNaN(screenWidth) {
		return 1
	}
	n := math.Floor(screenWidth / cellWidth)
	if n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Columns is ColumnCount with the default cell width and gap.
func Columns(screenWidth float64) int {
	return ColumnCount(screenWidth, DefaultCellWidth, DefaultGap)
}
