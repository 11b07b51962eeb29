package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// gutter is the point width of the row/column ruler cells.
const gutter = 24

var fills = []string{"#cde7f0", "#d9ead3", "#fff2cc", "#f4cccc", "#d9d2e9", "#fce5cd"}

// ToDOT draws the grid as a single Graphviz node whose label is an HTML
// table: a ruler row and column, then one TD per item spanning its cells
// and one empty TD per free cell. Cell sizes are in points. Grids past
// [MaxCells] are rejected.
func ToDOT(g Grid) (string, error) {
	if err := g.CheckExtent(); err != nil {
		return "", err
	}
	occ, _ := g.occupancy()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  grid [label=<\n")
	fmt.Fprintf(&buf, "    <TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"%d\" CELLPADDING=\"0\">\n", int(g.Gap))

	buf.WriteString("      <TR>")
	fmt.Fprintf(&buf, `<TD BORDER="0" WIDTH="%d" HEIGHT="%d"></TD>`, gutter, gutter)
	for c := 1; c <= g.Columns; c++ {
		fmt.Fprintf(&buf, `<TD BORDER="0" WIDTH="%d" HEIGHT="%d"><FONT COLOR="#888888">%d</FONT></TD>`, int(g.CellWidth), gutter, c)
	}
	buf.WriteString("</TR>\n")

	for r := 1; r <= g.Rows; r++ {
		buf.WriteString("      <TR>")
		fmt.Fprintf(&buf, `<TD BORDER="0" WIDTH="%d" HEIGHT="%d"><FONT COLOR="#888888">%d</FONT></TD>`, gutter, int(g.CellHeight), r)
		for c := 1; c <= g.Columns; c++ {
			i := occ[r-1][c-1]
			if i == -1 {
				fmt.Fprintf(&buf, `<TD COLOR="#dddddd" WIDTH="%d" HEIGHT="%d" FIXEDSIZE="TRUE"> </TD>`, int(g.CellWidth), int(g.CellHeight))
				continue
			}
			cell := g.Cells[i]
			p := cell.Placement
			if p.RowStart != r || p.ColStart != c {
				continue
			}
			w := int(span(p.Columns(), g.CellWidth, g.Gap))
			h := int(span(p.Rows(), g.CellHeight, g.Gap))
			fmt.Fprintf(&buf, `<TD COLSPAN="%d" ROWSPAN="%d" WIDTH="%d" HEIGHT="%d" FIXEDSIZE="TRUE" BGCOLOR="%s">%s</TD>`,
				p.Columns(), p.Rows(), w, h, fills[i%len(fills)], html.EscapeString(cell.Label()))
		}
		buf.WriteString("</TR>\n")
	}

	buf.WriteString("    </TABLE>\n  >];\n}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// viewBox so the drawing scales with its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	head := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(head))
}
