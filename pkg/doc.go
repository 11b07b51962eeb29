// Package pkg provides the libraries behind tilegrid.
//
// # Overview
//
// Tilegrid places items on a responsive grid of fixed-size cells. Items are
// addressed by 1-based column and row with a span in each direction; the
// number of columns follows from the screen width. The pkg directory is
// organized into four areas:
//
//  1. Core - [grid] (column counting, geometry, validation) and [throttle]
//     (leading/trailing rate limiting)
//  2. Orchestration - [pipeline] (validate → place → render, with caching)
//     and [resize] (throttled reaction to width changes)
//  3. Output - [render] (JSON, HTML, Graphviz, terminal) and [io] (layout
//     files and reports)
//  4. Infrastructure - [cache], [errors], [observability], [server],
//     [buildinfo]
//
// # Architecture
//
//	Layout file / HTTP request
//	         ↓
//	    [io] package (decode items)
//	         ↓
//	    [grid] package (columns + validation)
//	         ↓
//	    [render] package (placements + artifacts)
//	         ↓
//	    JSON/HTML/SVG/DOT/text output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tilegrid/pkg/grid"
//	    "github.com/matzehuels/tilegrid/pkg/render"
//	)
//
//	items := []grid.Item{
//	    {ID: "clock", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
//	    {ID: "news", Col: 3, Row: 1, ColSpan: 2, RowSpan: 2},
//	}
//	cols := grid.Columns(1280)
//	if res := grid.Validate(items, cols); !res.Valid {
//	    fmt.Println(res.Messages())
//	}
//	html := render.RenderHTML(render.Build(items, cols, render.Options{}))
//
// Use [pipeline.Runner] to get the same flow with caching, report ids and
// observability hooks.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/grid
// [throttle]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/throttle
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/pipeline#Runner
// [resize]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/resize
// [render]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/server
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/buildinfo
package pkg
