package errors

import (
	"math"
	"unicode"

	"github.com/matzehuels/tilegrid/pkg/grid"
)

// maxItemIDLength bounds item ids so error messages stay readable.
const maxItemIDLength = 128

// ValidateItemID validates an item id for use in error attribution and
// rendered markup.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 128 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}

	if len(id) > maxItemIDLength {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", maxItemIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateItems checks every id with [ValidateItemID] and rejects duplicates.
// Geometry is not checked here; that is grid.Validate's job.
func ValidateItems(items []grid.Item) error {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if err := ValidateItemID(it.ID); err != nil {
			return Wrap(ErrCodeInvalidItem, err, "item %d", i+1)
		}
		if prev, ok := seen[it.ID]; ok {
			return New(ErrCodeInvalidItem, "duplicate item id %q (items %d and %d)", it.ID, prev+1, i+1)
		}
		seen[it.ID] = i
	}
	return nil
}

// ValidateScreenWidth rejects widths that are negative or not finite. Zero is
// allowed and yields a single column.
func ValidateScreenWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidInput, "screen width must be a finite number")
	}
	if w < 0 {
		return New(ErrCodeInvalidInput, "screen width cannot be negative (got %v)", w)
	}
	return nil
}

// ValidateCellSize requires a positive, finite cell size.
func ValidateCellSize(width, height float64) error {
	for _, v := range []float64{width, height} {
		if !(v > 0) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "cell size must be positive (got %vx%v)", width, height)
		}
	}
	return nil
}

// ValidateFormat reports whether format is one of valid.
func ValidateFormat(format string, valid map[string]bool) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !valid[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ValidatePath validates a layout file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
