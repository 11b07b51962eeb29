// Package render turns a validated set of grid items into output artifacts.
//
// # Overview
//
// [Build] places items on a [Grid]: every item gets its grid lines, its
// pixel size and its pixel offset. The sinks then draw that grid:
//
//   - [RenderJSON]: placements and grid metrics for programmatic use
//   - [RenderHTML]: a CSS grid container, one element per item
//   - [ToDOT] / [RenderSVG]: a Graphviz HTML-table drawing of the grid
//   - [RenderText]: a terminal preview drawn with lipgloss
//
// Sinks assume a valid layout. Items that overflow the column count or
// collide with an earlier item are still listed by [RenderJSON] and
// [RenderHTML], but the table-based sinks skip them since a table cell
// cannot be shared. They also draw every slot, so they refuse grids larger
// than [MaxCells] with an INVALID_INPUT error.
//
//	g := render.Build(items, cols, render.Options{})
//	html := render.RenderHTML(g)
//	dot, err := render.ToDOT(g)
//	svg, err := render.RenderSVG(ctx, dot)
package render
