// Package render turns evolution tree layouts into images.
//
// # Overview
//
// Two renderers share the format conversion helpers in this package:
//
//   - Card view (in [cards] subpackage): one themed card per visible agent,
//     joined by the Bézier connectors computed by the layout engine.
//   - Node-link diagrams (in [nodelink] subpackage): a Graphviz rendering of
//     the visible genealogy, for quick inspection.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := cards.RenderSVG(tree, l, cards.WithTheme(theme.Default()))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [cards]: github.com/matzehuels/evotree/pkg/render/cards
// [nodelink]: github.com/matzehuels/evotree/pkg/render/nodelink
package render
