package render

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tilegrid/pkg/grid"
)

func sampleItems() []grid.Item {
	return []grid.Item{
		{ID: "hero", Col: 1, Row: 1, ColSpan: 2, RowSpan: 2, Content: "Welcome"},
		{ID: "news", Col: 3, Row: 1, ColSpan: 1, RowSpan: 1},
		{ID: "ad", Col: 3, Row: 2, ColSpan: 1, RowSpan: 1},
	}
}

func TestBuild(t *testing.T) {
	g := Build(sampleItems(), 3, Options{Gap: 10})

	if g.Columns != 3 || g.Rows != 2 {
		t.Errorf("Build() grid = %dx%d, want 3x2", g.Columns, g.Rows)
	}
	if g.CellWidth != grid.DefaultCellWidth || g.CellHeight != grid.DefaultCellHeight {
		t.Errorf("cell = %vx%v, want defaults", g.CellWidth, g.CellHeight)
	}

	want := Cell{
		ID:        "ad",
		Placement: grid.Placement{ColStart: 3, ColEnd: 4, RowStart: 2, RowEnd: 3},
		Size:      grid.Size{Width: 150, Height: 150},
		X:         320,
		Y:         160,
	}
	if diff := cmp.Diff(want, g.Cells[2]); diff != "" {
		t.Errorf("Cells[2] mismatch (-want +got):\n%s", diff)
	}

	if got := g.Cells[0].Size; got != (grid.Size{Width: 300, Height: 300}) {
		t.Errorf("hero size = %+v, want 300x300", got)
	}
	if got, want := g.Width(), 470.0; got != want {
		t.Errorf("Width() = %v, want %v", got, want)
	}
	if got, want := g.Height(), 310.0; got != want {
		t.Errorf("Height() = %v, want %v", got, want)
	}
}

func TestBuildClampsColumns(t *testing.T) {
	if g := Build(nil, 0, Options{}); g.Columns != 1 || g.Rows != 0 {
		t.Errorf("Build(nil, 0) = %dx%d, want 1x0", g.Columns, g.Rows)
	}
}

func TestCellLabel(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Cell{ID: "a"}, "a"},
		{Cell{ID: "a", Content: ""}, "a"},
		{Cell{ID: "a", Content: "Hello"}, "Hello"},
		{Cell{ID: "a", Content: 42}, "a"},
	}
	for _, tt := range tests {
		if got := tt.cell.Label(); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestOccupancySkipsCollisions(t *testing.T) {
	g := Build([]grid.Item{
		{ID: "a", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
		{ID: "b", Col: 2, Row: 1, ColSpan: 1, RowSpan: 1},
		{ID: "c", Col: 3, Row: 1, ColSpan: 2, RowSpan: 1},
	}, 3, Options{})

	occ, skipped := g.occupancy()
	if diff := cmp.Diff([]int{1, 2}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0, 0, -1}}, occ); diff != "" {
		t.Errorf("occupancy mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(Build(sampleItems(), 3, Options{}))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Columns int `json:"columns"`
		Items   []struct {
			ID       string  `json:"id"`
			ColStart int     `json:"col_start"`
			ColEnd   int     `json:"col_end"`
			RowEnd   int     `json:"row_end"`
			Width    float64 `json:"width"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Columns != 3 || len(out.Items) != 3 {
		t.Fatalf("got columns=%d items=%d, want 3 and 3", out.Columns, len(out.Items))
	}
	hero := out.Items[0]
	if hero.ID != "hero" || hero.ColStart != 1 || hero.ColEnd != 3 || hero.RowEnd != 3 || hero.Width != 300 {
		t.Errorf("hero = %+v", hero)
	}
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML(Build(sampleItems(), 3, Options{Gap: 10})))

	for _, want := range []string{
		`data-column-count="3"`,
		`display: grid`,
		`grid-template-columns: repeat(3, 150px)`,
		`gap: 10px`,
		`data-item-id="hero" style="grid-column-start: 1; grid-column-end: 3; grid-row-start: 1; grid-row-end: 3;">Welcome</div>`,
		`data-item-id="ad"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	g := Build([]grid.Item{{ID: `<x>`, Col: 1, Row: 1, ColSpan: 1, RowSpan: 1, Content: `a & b`}}, 1, Options{})
	out := string(RenderHTML(g))
	if strings.Contains(out, "<x>") {
		t.Error("item id was not escaped")
	}
	if !strings.Contains(out, "a &amp; b") {
		t.Error("content was not escaped")
	}
}

func TestToDOT(t *testing.T) {
	dot, err := ToDOT(Build(sampleItems(), 3, Options{}))
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT should start with digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `COLSPAN="2" ROWSPAN="2" WIDTH="300" HEIGHT="300"`) {
		t.Errorf("DOT missing spanned hero cell:\n%s", dot)
	}
	if got := strings.Count(dot, "<TR>"); got != 3 {
		t.Errorf("DOT rows = %d, want 3 (ruler + 2)", got)
	}
	if got := strings.Count(dot, "FIXEDSIZE"); got != 3 {
		t.Errorf("DOT item cells = %d, want 3", got)
	}
}

func TestToDOTEmptyCells(t *testing.T) {
	g := Build([]grid.Item{{ID: "a", Col: 2, Row: 1, ColSpan: 1, RowSpan: 1}}, 3, Options{})
	dot, err := ToDOT(g)
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	if got := strings.Count(dot, `COLOR="#dddddd"`); got != 2 {
		t.Errorf("empty cells = %d, want 2", got)
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(Build(sampleItems(), 3, Options{}))
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "viewBox=") {
		t.Errorf("RenderSVG output is not an svg document:\n%.200s", s)
	}
	if !strings.Contains(s, "Welcome") {
		t.Error("RenderSVG output missing item label")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG(invalid) = nil error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	if got := string(normalizeViewBox([]byte("<svg/>"))); got != "<svg/>" {
		t.Errorf("normalizeViewBox(no viewBox) = %q", got)
	}
}

func TestRenderText(t *testing.T) {
	out, err := RenderText(Build(sampleItems(), 3, Options{}))
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	if got := strings.Count(out, "hero"); got != 4 {
		t.Errorf("hero appears %d times, want 4 (2x2 span)", got)
	}
	if !strings.Contains(out, "news") || !strings.Contains(out, "ad") {
		t.Errorf("text preview missing items:\n%s", out)
	}
}

func TestRenderTextEmptyCells(t *testing.T) {
	out, err := RenderText(Build([]grid.Item{{ID: "a", Col: 1, Row: 1, ColSpan: 1, RowSpan: 1}}, 3, Options{}))
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if got := strings.Count(out, emptyMark); got != 2 {
		t.Errorf("empty marks = %d, want 2:\n%s", got, out)
	}
}
