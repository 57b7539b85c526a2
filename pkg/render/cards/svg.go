package cards

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/theme"
)

const fontFamily = `Inter, Helvetica, Arial, sans-serif`

const cardInteractionCSS = `
    .card { transition: stroke-width 0.2s ease; cursor: pointer; }
    .card:hover { stroke-width: 3; }
    .connector { transition: stroke-width 0.2s ease; }
    .connector.highlight { stroke-width: 4; }`

const cardInteractionJS = `
    document.querySelectorAll('.card').forEach(el => {
      const id = el.id.replace('card-', '');
      const lines = document.querySelectorAll('[data-parent="' + id + '"], [data-child="' + id + '"]');
      el.addEventListener('mouseenter', () => lines.forEach(l => l.classList.add('highlight')));
      el.addEventListener('mouseleave', () => lines.forEach(l => l.classList.remove('highlight')));
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme       theme.Theme
	connectors  bool
	details     bool
	interactive bool
}

// WithTheme sets the palette. The default is [theme.Default].
func WithTheme(t theme.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithConnectors toggles the parent-child curves. On by default.
func WithConnectors(on bool) SVGOption { return func(r *svgRenderer) { r.connectors = on } }

// WithDetails toggles traits, health and financials. Without details a card
// only shows its avatar, generation and name.
func WithDetails(on bool) SVGOption { return func(r *svgRenderer) { r.details = on } }

// WithInteraction embeds hover CSS and a script that highlights a card's
// connectors. Browsers honour it; rsvg-convert ignores it.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG draws the placed nodes of l. tree supplies card contents; nodes
// missing from tree are drawn with their name only.
func RenderSVG(tree *genealogy.Node, l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	idx := genealogy.Index(tree)
	vb := viewBox(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(vb.MinX), num(vb.MinY), num(vb.Width()), num(vb.Height()), vb.Width(), vb.Height())
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardInteractionCSS)
	}
	fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(vb.MinX), num(vb.MinY), num(vb.Width()), num(vb.Height()), theme.Opaque(r.theme.Background))

	if r.connectors {
		renderConnectors(&buf, &r, layout.Connectors(l))
	}
	for _, p := range l.Placements {
		renderCard(&buf, &r, newCard(p, l.Config, idx[p.ID]))
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", cardInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: theme.Default(), connectors: true, details: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// viewBox spans the container width and the cards' height, widened to any
// card that overflows horizontally.
func viewBox(l layout.Layout) layout.Rect {
	b := l.Bounds()
	return layout.Rect{
		MinX: math.Min(0, b.MinX),
		MinY: 0,
		MaxX: math.Max(l.Width, b.MaxX),
		MaxY: b.MaxY + l.Config.TopMargin,
	}
}

func renderConnectors(buf *bytes.Buffer, r *svgRenderer, cs []layout.Connector) {
	stroke := theme.Opaque(r.theme.Primary)
	for _, c := range cs {
		fmt.Fprintf(buf, `  <path class="connector" data-parent="%d" data-child="%d" d="%s" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
			c.ParentID, c.ChildID, c.Path(), stroke)
	}
}
