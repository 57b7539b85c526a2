// Package nodelink renders the visible genealogy as a node-link diagram.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// agents appear as boxes connected by arrows from parent to child. It is a
// quick alternative to the card view when only the shape of the tree
// matters: Graphviz places the nodes itself, so the diagram ignores the
// pixel positions of the layout and only follows which nodes are visible.
//
// # Usage
//
//	l := layout.Compute(tree, expanded, 1200)
//	dot := nodelink.ToDOT(tree, l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// Collapsed agents that still have children are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
