// Package grid validates rectangular items placed on a fixed-cell grid and
// computes their rendering coordinates.
//
// # Overview
//
// A layout is a set of [Item] values, each anchored at a 1-based (col, row)
// origin and covering ColSpan × RowSpan cells. Coordinates are always supplied
// by the caller; this package never places items, it only checks them.
//
// The typical flow is:
//
//	cols := grid.ColumnCount(screenWidth, grid.DefaultCellWidth, grid.DefaultGap)
//	res := grid.Validate(items, cols)
//	if !res.Valid {
//	    // decide how to surface res.Errors
//	}
//	for _, it := range items {
//	    p := it.Placement()
//	    size := grid.DefaultPixelSize(it.ColSpan, it.RowSpan)
//	    // emit p.ColStart, p.ColEnd, ...
//	}
//
// # Coordinates
//
// End coordinates are exclusive: an item at col 3 spanning 2 columns has
// ColStart 3 and ColEnd 5, the same convention as CSS grid lines. The overflow
// check and the overlap test are both expressed in this convention, which is
// why an item that exactly fills the last column satisfies
// col+colSpan == columnCount+1.
//
// # Validation
//
// [Validate] runs three stages over the whole set and never stops early:
//
//  1. [ValidatePosition] on every item (non-positive origin or span)
//  2. [ValidateOverflow] on every item against one column count
//  3. [ValidateOverlaps] over every unordered pair
//
// Errors are concatenated in stage order, then item or pair order, so a
// caller can fix a layout in a single pass. Failure is reported only through
// the returned [Result]; nothing in this package panics or returns an error
// for a bad layout.
//
// # Concurrency
//
// Every function is pure and may be called from any number of goroutines.
package grid
