package render

import (
	"bytes"
	"fmt"
	"html"
)

// RenderHTML writes a standalone CSS grid container. The container carries
// the column count in data-column-count; each item element carries its id
// in data-item-id and its grid lines in inline style.
func RenderHTML(g Grid) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	buf.WriteString("  .grid-item { box-sizing: border-box; border: 1px solid #888; border-radius: 4px; padding: 8px; overflow: hidden; font-family: sans-serif; }\n")
	buf.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&buf, `<div class="grid-container" data-column-count="%d" style="display: grid; grid-template-columns: repeat(%d, %gpx); grid-auto-rows: %gpx; gap: %gpx;">`+"\n",
		g.Columns, g.Columns, g.CellWidth, g.CellHeight, g.Gap)

	for _, c := range g.Cells {
		p := c.Placement
		fmt.Fprintf(&buf, `  <div class="grid-item" data-item-id="%s" style="grid-column-start: %d; grid-column-end: %d; grid-row-start: %d; grid-row-end: %d;">%s</div>`+"\n",
			html.EscapeString(c.ID), p.ColStart, p.ColEnd, p.RowStart, p.RowEnd, html.EscapeString(c.Label()))
	}

	buf.WriteString("</div>\n</body>\n</html>\n")
	return buf.Bytes()
}
