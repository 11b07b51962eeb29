package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g render.Grid, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var dot string
	for _, format := range formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatJSON:
			data, err = render.RenderJSON(g)
		case FormatHTML:
			data = render.RenderHTML(g)
		case FormatDOT, FormatSVG:
			if dot == "" {
				if dot, err = render.ToDOT(g); err != nil {
					return nil, err
				}
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = render.RenderSVG(ctx, dot)
			}
		case FormatText:
			var text string
			if text, err = render.RenderText(g); err != nil {
				return nil, err
			}
			data = []byte(text + "\n")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
