package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
)

const jsonLayout = `{
  "screen_width": 1280,
  "items": [
    {"id": "hero", "col": 1, "row": 1, "col_span": 4, "row_span": 2},
    {"id": "news", "col": 5, "row": 1, "col_span": 2, "row_span": 1}
  ]
}`

const tomlLayout = `
screen_width = 1280

[[items]]
id = "hero"
col = 1
row = 1
col_span = 4
row_span = 2

[[items]]
id = "news"
col = 5
row = 1
col_span = 2
row_span = 1
`

var wantItems = []grid.Item{
	{ID: "hero", Col: 1, Row: 1, ColSpan: 4, RowSpan: 2},
	{ID: "news", Col: 5, Row: 1, ColSpan: 2, RowSpan: 1},
}

func TestReadLayout(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"json object", FormatJSON, jsonLayout},
		{"toml", FormatTOML, tomlLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ReadLayout(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadLayout: %v", err)
			}
			if l.ScreenWidth != 1280 {
				t.Errorf("ScreenWidth = %v, want 1280", l.ScreenWidth)
			}
			if diff := cmp.Diff(wantItems, l.Items); diff != "" {
				t.Errorf("Items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadLayoutBareArray(t *testing.T) {
	in := `
  [{"id": "a", "col": 1, "row": 1, "col_span": 1, "row_span": 1}]`
	l, err := ReadLayout(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if len(l.Items) != 1 || l.Items[0].ID != "a" {
		t.Errorf("Items = %+v, want one item a", l.Items)
	}
	if l.Columns != 0 || l.ScreenWidth != 0 {
		t.Errorf("grid settings = (%d, %v), want unset", l.Columns, l.ScreenWidth)
	}
}

func TestReadLayoutKeepsInvalidGeometry(t *testing.T) {
	in := `{"columns": 3, "items": [{"id": "bad", "col": 0, "row": -1, "col_span": 0, "row_span": 1}]}`
	l, err := ReadLayout(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if l.Columns != 3 {
		t.Errorf("Columns = %d, want 3", l.Columns)
	}
	if res := grid.Validate(l.Items, l.Columns); res.Valid {
		t.Error("Validate(loaded) = valid, want invalid")
	}
}

func TestReadLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"items": [`, errors.ErrCodeInvalidInput},
		{"malformed toml", FormatTOML, `[[items]`, errors.ErrCodeInvalidInput},
		{"unknown format", "yaml", `items: []`, errors.ErrCodeInvalidFormat},
		{"duplicate id", FormatJSON, `[{"id": "a"}, {"id": "a"}]`, errors.ErrCodeInvalidItem},
		{"empty id", FormatJSON, `[{"id": ""}]`, errors.ErrCodeInvalidItem},
		{"negative columns", FormatJSON, `{"columns": -2, "items": []}`, errors.ErrCodeInvalidInput},
		{"negative width", FormatJSON, `{"screen_width": -2, "items": []}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLayout(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("ReadLayout = nil error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"home.json", FormatJSON, false},
		{"HOME.JSON", FormatJSON, false},
		{"dir/home.toml", FormatTOML, false},
		{"home.yaml", "", true},
		{"home", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestImportLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	if err := os.WriteFile(path, []byte(tomlLayout), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := ImportLayout(path)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if diff := cmp.Diff(wantItems, l.Items); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}

	_, err = ImportLayout(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportLayout(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestWriteReport(t *testing.T) {
	res := grid.Validate([]grid.Item{
		{ID: "a", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
		{ID: "b", Col: 2, Row: 1, ColSpan: 1, RowSpan: 1},
	}, 4)

	var buf bytes.Buffer
	if err := WriteReport(&buf, NewReport("r1", 4, res)); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`"id": "r1"`,
		`"columns": 4`,
		`"is_valid": false`,
		`"type": "overlap"`,
		`"message": "Items a and b overlap"`,
		`"item_id": "a"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %s:\n%s", want, out)
		}
	}
}

func TestWriteReportValidHasEmptyErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, NewReport("", 3, grid.Result{Valid: true})); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(buf.String(), `"errors": []`) {
		t.Errorf("valid report should carry an empty error list:\n%s", buf.String())
	}
}

func TestExampleLayouts(t *testing.T) {
	tests := []struct {
		file      string
		wantValid bool
	}{
		{"dashboard.json", true},
		{"overlap.toml", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			l, err := ImportLayout(filepath.Join("..", "..", "examples", "layouts", tt.file))
			if err != nil {
				t.Fatalf("ImportLayout() error: %v", err)
			}
			cols := l.Columns
			if cols == 0 {
				cols = grid.Columns(l.ScreenWidth)
			}
			if res := grid.Validate(l.Items, cols); res.Valid != tt.wantValid {
				t.Errorf("Validate().Valid = %v, want %v (%v)", res.Valid, tt.wantValid, res.Messages())
			}
		})
	}
}
