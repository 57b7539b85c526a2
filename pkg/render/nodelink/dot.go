package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds generation, health and traits to node labels.
	// When false, only the agent name is shown.
	Detailed bool
}

// ToDOT converts the visible part of a layout to Graphviz DOT source.
// Edges follow the layout's connectors, so a node whose declared parent is
// not visible gets no incoming edge.
func ToDOT(tree *genealogy.Node, l layout.Layout, opts Options) string {
	idx := genealogy.Index(tree)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, p := range l.Placements {
		n := idx[p.ID]
		attrs := fmtAttrs(p, n, l, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(p.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range layout.Connectors(l) {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(c.ParentID), nodeID(c.ChildID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(p layout.Placement, n *genealogy.Node, detailed bool) string {
	if !detailed || n == nil {
		return p.Name
	}

	parts := []string{
		fmt.Sprintf("gen: %d", n.Generation),
		fmt.Sprintf("health: %d", n.HealthPoints),
	}
	if len(n.Traits) > 0 {
		parts = append(parts, "traits: "+genealogy.TraitList(n.Traits))
	}
	return p.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(p layout.Placement, n *genealogy.Node, l layout.Layout, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(p, n, detailed))}
	if n != nil && n.HasChildren() && !l.Contains(n.Children[0].ID) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
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

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one anchored at the origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
