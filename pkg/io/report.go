package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tilegrid/pkg/grid"
)

// Report is a validation verdict together with the grid it was computed
// against.
type Report struct {
	ID      string `json:"id,omitempty"`
	Columns int    `json:"columns"`
	grid.Result
}

// NewReport builds a report.
func NewReport(id string, columns int, res grid.Result) Report {
	if res.Errors == nil {
		res.Errors = []grid.ValidationError{}
	}
	return Report{ID: id, Columns: columns, Result: res}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteReport writes r as indented JSON.
func WriteReport(w io.Writer, r Report) error {
	return WriteJSON(w, r)
}

// ExportReport writes r to a file at path.
func ExportReport(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
