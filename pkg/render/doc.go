// Package render provides visualization rendering for wallet snapshots.
//
// # Overview
//
// This package contains the rendering pipeline that transforms wallet
// snapshots into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Treemap visualization (in [treemapsvg] subpackage)
//   - Address-linkage diagrams (in [linkage] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// treemap and linkage renderers.
//
//	svg := treemapsvg.RenderSVG(tiles, 1200, 800)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Treemap Visualization
//
// The [treemapsvg] subpackage renders UTXO sets as squarified treemaps
// where each tile's area is proportional to its amount, colored by risk
// tier or tag group.
//
// # Address-Linkage Diagrams
//
// The [linkage] subpackage renders directed graph diagrams of UTXOs and
// the addresses connecting them using Graphviz. Shared addresses, which
// defeat coin isolation, show up as fan-out nodes.
//
//	dot := linkage.ToDOT(w, linkage.Options{})
//	svg, err := linkage.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [treemapsvg]: github.com/MorningRevolution/utxo-intelligence-sub000/pkg/render/treemapsvg
// [linkage]: github.com/MorningRevolution/utxo-intelligence-sub000/pkg/render/linkage
package render
