package grid

import (
	"errors"
	"strings"
)

// Item is a rectangle placed on the grid.
type Item struct {
	// ID identifies the item in validation errors. It is never used for ordering.
	ID string `json:"id" toml:"id"`

	// Col and Row are the 1-based origin cell.
	Col int `json:"col" toml:"col"`
	Row int `json:"row" toml:"row"`

	// ColSpan and RowSpan are the number of cells covered along each axis.
	ColSpan int `json:"col_span" toml:"col_span"`
	RowSpan int `json:"row_span" toml:"row_span"`

	// Content is whatever the caller draws in the cell. It is carried through
	// untouched.
	Content any `json:"content,omitempty" toml:"content,omitempty"`
}

// Placement returns the item's grid lines. See [Position].
func (it Item) Placement() Placement {
	return Position(it.Col, it.Row, it.ColSpan, it.RowSpan)
}

// Kind classifies a validation failure.
type Kind string

const (
	KindInvalidPosition Kind = "invalid_position"
	KindOverflow        Kind = "overflow"
	KindOverlap         Kind = "overlap"
)

// Reason distinguishes the two position checks, which share
// [KindInvalidPosition].
type Reason string

const (
	ReasonOrigin Reason = "origin"
	ReasonSpan   Reason = "span"
)

// ValidationError describes one problem with a layout.
type ValidationError struct {
	Kind    Kind   `json:"type"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`

	// ItemID is the item the error is attributed to; empty when none.
	ItemID string `json:"item_id,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Message }

// Result is the verdict of a validation call.
type Result struct {
	Valid  bool              `json:"is_valid"`
	Errors []ValidationError `json:"errors"`
}

// newResult builds a result whose validity follows from its errors.
func newResult(errs []ValidationError) Result {
	if errs == nil {
		errs = []ValidationError{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Messages returns the error messages in order.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

// ByKind returns the errors of the given kind, preserving order.
func (r Result) ByKind(k Kind) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Err joins the result's errors into a single error, or returns nil when the
// result is valid. The individual *ValidationError values remain reachable
// through errors.As.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// String summarises the result on one line.
func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return "invalid: " + strings.Join(r.Messages(), "; ")
}
