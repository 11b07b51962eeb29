package grid

import "fmt"

// ValidatePosition checks that an item's origin and spans are positive.
// It returns nil when the item passes. When both the origin and the spans are
// bad, only the origin error is returned; use [ValidatePositionAll] to get
// both.
func ValidatePosition(it Item) *ValidationError {
	if errs := ValidatePositionAll(it); len(errs) > 0 {
		return &errs[0]
	}
	return nil
}

// ValidatePositionAll runs the origin and span checks independently and
// returns every failure, origin first.
func ValidatePositionAll(it Item) []ValidationError {
	var errs []ValidationError
	if it.Col <= 0 || it.Row <= 0 {
		errs = append(errs, ValidationError{
			Kind:    KindInvalidPosition,
			Reason:  ReasonOrigin,
			Message: fmt.Sprintf("Invalid position: col and row must be positive (got col=%d, row=%d)", it.Col, it.Row),
			ItemID:  it.ID,
		})
	}
	if it.ColSpan <= 0 || it.RowSpan <= 0 {
		errs = append(errs, ValidationError{
			Kind:    KindInvalidPosition,
			Reason:  ReasonSpan,
			Message: fmt.Sprintf("Invalid span: colSpan and rowSpan must be positive (got colSpan=%d, rowSpan=%d)", it.ColSpan, it.RowSpan),
			ItemID:  it.ID,
		})
	}
	return errs
}

// ValidateOverflow reports an item whose horizontal extent passes the last
// column. With exclusive end lines, an item that exactly fills the last
// column has col+colSpan == columnCount+1, which is allowed. The sum is
// computed without wrapping, so huge origins or spans still overflow.
func ValidateOverflow(it Item, columnCount int) *ValidationError {
	if lineAt(columnCount).plus(1).less(lineAt(it.Col).plus(it.ColSpan)) {
		return &ValidationError{
			Kind:    KindOverflow,
			Message: fmt.Sprintf("Item %s overflows grid: col %d + colSpan %d > %d", it.ID, it.Col, it.ColSpan, columnCount+1),
			ItemID:  it.ID,
		}
	}
	return nil
}

// Overlaps reports whether two items' half-open cell rectangles intersect on
// both axes. It is symmetric, and identical rectangles always overlap.
func Overlaps(a, b Item) bool {
	return intersects(a.Col, a.ColSpan, b.Col, b.ColSpan) &&
		intersects(a.Row, a.RowSpan, b.Row, b.RowSpan)
}

// ValidateOverlaps checks every unordered pair once, in input order. Each
// overlapping pair yields one error attributed to the earlier item.
//
// The scan is O(n²). Layouts hold a handful to a few dozen items; a sweep
// line would be the next step for much larger sets.
func ValidateOverlaps(items []Item) Result {
	return newResult(overlapErrors(items))
}

func overlapErrors(items []Item) []ValidationError {
	var errs []ValidationError
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if Overlaps(items[i], items[j]) {
				errs = append(errs, ValidationError{
					Kind:    KindOverlap,
					Message: fmt.Sprintf("Items %s and %s overlap", items[i].ID, items[j].ID),
					ItemID:  items[i].ID,
				})
			}
		}
	}
	return errs
}

// Validate runs the position, overflow and overlap stages over items and
// returns every error found, in stage order. All stages always run.
func Validate(items []Item, columnCount int) Result {
	var errs []ValidationError

	for _, it := range items {
		errs = append(errs, ValidatePositionAll(it)...)
	}
	for _, it := range items {
		if err := ValidateOverflow(it, columnCount); err != nil {
			errs = append(errs, *err)
		}
	}
	errs = append(errs, overlapErrors(items)...)

	return newResult(errs)
}
