package render

import "encoding/json"

type jsonOutput struct {
	Columns    int        `json:"columns"`
	Rows       int        `json:"rows"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	CellWidth  float64    `json:"cell_width"`
	CellHeight float64    `json:"cell_height"`
	Gap        float64    `json:"gap"`
	Items      []jsonItem `json:"items"`
}

type jsonItem struct {
	ID       string  `json:"id"`
	ColStart int     `json:"col_start"`
	ColEnd   int     `json:"col_end"`
	RowStart int     `json:"row_start"`
	RowEnd   int     `json:"row_end"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Content  any     `json:"content,omitempty"`
}

// RenderJSON encodes the grid's placements as indented JSON.
func RenderJSON(g Grid) ([]byte, error) {
	out := jsonOutput{
		Columns:    g.Columns,
		Rows:       g.Rows,
		Width:      g.Width(),
		Height:     g.Height(),
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		Gap:        g.Gap,
		Items:      make([]jsonItem, len(g.Cells)),
	}
	for i, c := range g.Cells {
		out.Items[i] = jsonItem{
			ID:       c.ID,
			ColStart: c.Placement.ColStart,
			ColEnd:   c.Placement.ColEnd,
			RowStart: c.Placement.RowStart,
			RowEnd:   c.Placement.RowEnd,
			X:        c.X,
			Y:        c.Y,
			Width:    c.Size.Width,
			Height:   c.Size.Height,
			Content:  c.Content,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
