// Package linkage renders address-linkage diagrams for wallet snapshots.
//
// Each UTXO becomes a node and each address holding more than one UTXO
// becomes a hub node connecting them. Address reuse, the primary way coin
// histories become linkable, is immediately visible as fan-out.
package linkage

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/render"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// Options configures linkage diagram rendering.
type Options struct {
	// Detailed includes amounts and tags in node labels.
	// When false, only the shortened outpoint is shown.
	Detailed bool
}

var riskFills = map[wallet.RiskLevel]string{
	wallet.RiskLow:    "#d8f0e0",
	wallet.RiskMedium: "#f7e6c4",
	wallet.RiskHigh:   "#f5d2d4",
}

// ToDOT converts a wallet snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Addresses used by a single UTXO are omitted; only reused addresses
// appear as hub nodes (ellipses with dashed outlines).
func ToDOT(w *wallet.Wallet, opts Options) string {
	byAddress := make(map[string][]string)
	for i := range w.UTXOs {
		u := &w.UTXOs[i]
		byAddress[u.Address] = append(byAddress[u.Address], u.OutPoint())
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range w.UTXOs {
		u := &w.UTXOs[i]
		label := fmtLabel(u, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", u.OutPoint(), label, riskFills[u.Risk])
	}

	buf.WriteString("\n")
	for _, addr := range slices.Sorted(maps.Keys(byAddress)) {
		outpoints := byAddress[addr]
		if len(outpoints) < 2 {
			continue
		}
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=\"filled,dashed\", fillcolor=lightgrey, fontcolor=black, label=%q];\n",
			"addr:"+addr, shorten(addr))
		for _, op := range outpoints {
			fmt.Fprintf(&buf, "  %q -> %q;\n", "addr:"+addr, op)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(u *wallet.UTXO, detailed bool) string {
	if !detailed {
		return shorten(u.OutPoint())
	}

	parts := []string{fmt.Sprintf("%.8f BTC", u.BTC())}
	if len(u.Tags) > 0 {
		parts = append(parts, strings.Join(u.Tags, ", "))
	}
	parts = append(parts, "risk: "+u.Risk.String())

	return shorten(u.OutPoint()) + "\n" + strings.Join(parts, "\n")
}

func shorten(s string) string {
	if len(s) <= 16 {
		return s
	}
	return s[:8] + "…" + s[len(s)-6:]
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
