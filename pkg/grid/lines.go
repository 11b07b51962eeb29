package grid

import (
	"math"
	"math/bits"
)

// line is a grid line number with room for origin+span on any int values,
// so end lines never wrap around.
type line struct {
	hi int64
	lo uint64
}

func lineAt(v int) line {
	return line{hi: int64(v) >> 63, lo: uint64(int64(v))}
}

func (l line) plus(v int) line {
	w := lineAt(v)
	lo, carry := bits.Add64(l.lo, w.lo, 0)
	return line{hi: l.hi + w.hi + int64(carry), lo: lo}
}

func (l line) less(o line) bool {
	if l.hi != o.hi {
		return l.hi < o.hi
	}
	return l.lo < o.lo
}

// clamp returns l as an int, saturating at the int range.
func (l line) clamp() int {
	switch {
	case l.less(lineAt(math.MinInt)):
		return math.MinInt
	case lineAt(math.MaxInt).less(l):
		return math.MaxInt
	}
	return int(int64(l.lo))
}

// intersects reports whether the half-open intervals [a, a+aSpan) and
// [b, b+bSpan) share a line.
func intersects(a, aSpan, b, bSpan int) bool {
	return lineAt(a).less(lineAt(b).plus(bSpan)) && lineAt(b).less(lineAt(a).plus(aSpan))
}
