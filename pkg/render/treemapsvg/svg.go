// Package treemapsvg renders squarified treemap layouts as SVG.
package treemapsvg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"hash/fnv"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/treemap"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

const tileInteractionCSS = `
    .tile { transition: stroke-width 0.2s ease; stroke: #ffffff; stroke-width: 1.5; }
    .tile.highlight { stroke-width: 4; }
    .tile-text { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; pointer-events: none; }
    .tile-text.highlight { transform: scale(1.08); font-weight: bold; }`

const tileInteractionJS = `
    function highlight(ids) {
      document.querySelectorAll('.tile').forEach(t => t.classList.toggle('highlight', ids.includes(t.id.replace('tile-', ''))));
      document.querySelectorAll('.tile-text').forEach(t => t.classList.toggle('highlight', ids.includes(t.dataset.tile)));
    }
    function clearHighlight() {
      document.querySelectorAll('.tile, .tile-text').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.tile').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.id.replace('tile-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// Risk tier fills, low to high.
var riskColors = map[wallet.RiskLevel]string{
	wallet.RiskLow:    "#2e9e5b",
	wallet.RiskMedium: "#e0a63b",
	wallet.RiskHigh:   "#d6494f",
}

// Group palette, assigned by hashing the group key so colors are stable
// across renders.
var groupPalette = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759",
	"#76b7b2", "#edc948", "#b07aa1", "#9c755f",
}

// ColorBy selects the tile fill scheme.
type ColorBy string

const (
	ColorByRisk  ColorBy = "risk"
	ColorByGroup ColorBy = "group"
)

// Tile pairs a placed rectangle with the metadata needed to draw it.
type Tile struct {
	Rect  treemap.Rect
	ID    string
	Label string
	Risk  wallet.RiskLevel
	Group string
}

// Smallest tile dimensions that still get a text label.
const (
	minLabelWidth  = 60.0
	minLabelHeight = 24.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	colorBy    ColorBy
	showLabels bool
}

func WithColorBy(c ColorBy) SVGOption { return func(r *svgRenderer) { r.colorBy = c } }
func WithLabels() SVGOption           { return func(r *svgRenderer) { r.showLabels = true } }

// RenderSVG renders tiles into an SVG document of the given size.
// Tile rects are expected in the same coordinate space as width/height,
// as produced by [treemap.Layout].
func RenderSVG(tiles []Tile, width, height float64, opts ...SVGOption) []byte {
	r := svgRenderer{colorBy: ColorByRisk}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for _, t := range tiles {
		renderTile(&buf, &r, t)
	}
	if r.showLabels {
		for _, t := range tiles {
			renderLabel(&buf, t)
		}
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", tileInteractionJS)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTile(buf *bytes.Buffer, r *svgRenderer, t Tile) {
	fill := tileFill(r.colorBy, t)
	fmt.Fprintf(buf, `  <rect class="tile" id="tile-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s">`,
		escape(t.ID), t.Rect.X, t.Rect.Y, t.Rect.Width, t.Rect.Height, fill)
	fmt.Fprintf(buf, `<title>%s</title></rect>`+"\n", escape(t.Label))
}

func renderLabel(buf *bytes.Buffer, t Tile) {
	if t.Rect.Width < minLabelWidth || t.Rect.Height < minLabelHeight {
		return
	}
	cx := t.Rect.X + t.Rect.Width/2
	cy := t.Rect.Y + t.Rect.Height/2
	fmt.Fprintf(buf, `  <text class="tile-text" data-tile="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="12" fill="#ffffff">%s</text>`+"\n",
		escape(t.ID), cx, cy, escape(t.Label))
}

func tileFill(colorBy ColorBy, t Tile) string {
	if colorBy == ColorByGroup {
		return groupColor(t.Group)
	}
	if c, ok := riskColors[t.Risk]; ok {
		return c
	}
	return riskColors[wallet.RiskLow]
}

func groupColor(group string) string {
	h := fnv.New32a()
	h.Write([]byte(group))
	return groupPalette[h.Sum32()%uint32(len(groupPalette))]
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) //nolint:errcheck // bytes.Buffer cannot fail
	return buf.String()
}
