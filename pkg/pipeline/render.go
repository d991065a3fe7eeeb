package pipeline

import (
	"fmt"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/render/treemapsvg"
)

// RenderFromView renders all requested formats from a computed view.
// Returns artifacts keyed by format.
func RenderFromView(view View, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(view, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(view View, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return MarshalView(view)
	}

	tiles := svgTiles(view)
	svgOpts := []treemapsvg.SVGOption{treemapsvg.WithColorBy(treemapsvg.ColorBy(opts.ColorBy))}
	if opts.ShowLabels {
		svgOpts = append(svgOpts, treemapsvg.WithLabels())
	}

	switch format {
	case FormatSVG:
		return treemapsvg.RenderSVG(tiles, view.Width, view.Height, svgOpts...), nil
	case FormatPNG:
		return treemapsvg.RenderPNG(tiles, view.Width, view.Height, treemapsvg.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return treemapsvg.RenderPDF(tiles, view.Width, view.Height, treemapsvg.WithPDFSVGOptions(svgOpts...))
	default:
		return nil, ValidateFormat(format)
	}
}

func svgTiles(view View) []treemapsvg.Tile {
	tiles := make([]treemapsvg.Tile, len(view.Tiles))
	for i, t := range view.Tiles {
		label := t.Label
		if label == "" {
			label = t.ID
		}
		tiles[i] = treemapsvg.Tile{
			Rect:  t.Rect,
			ID:    t.ID,
			Label: label,
			Risk:  t.Risk,
			Group: t.Group,
		}
	}
	return tiles
}
