// Package io reads layout files and writes validation reports.
//
// # Layout Files
//
// A layout is a list of items plus optional grid settings. JSON layouts are
// either an object:
//
//	{
//	  "screen_width": 1280,
//	  "items": [
//	    {"id": "hero", "col": 1, "row": 1, "col_span": 4, "row_span": 2},
//	    {"id": "news", "col": 5, "row": 1, "col_span": 2, "row_span": 1}
//	  ]
//	}
//
// or a bare array of items. TOML layouts use an array of tables:
//
//	screen_width = 1280
//
//	[[items]]
//	id = "hero"
//	col = 1
//	row = 1
//	col_span = 4
//	row_span = 2
//
// "columns" pins the column count and takes precedence over "screen_width".
// Both are optional; callers fall back to their own defaults.
//
// Loading checks item ids (non-empty, no control characters, unique) but
// not geometry. Geometry is grid.Validate's job, and a layout that fails it
// still loads so the failure can be reported.
//
// # Reports
//
// [WriteReport] writes a validation verdict as indented JSON, the format
// shared by the CLI and the HTTP service.
package io
