// Package cards renders an evolution tree layout as an SVG card view.
//
// Each visible agent becomes a rounded card at its layout position showing
// the avatar initial, the generation badge, the name, the trait tags, a
// health bar, market cap and balance, and the number of sub-agents.
// Parents and children are joined by the cubic Bézier connectors from
// [layout.Connectors].
//
// The canvas spans the container width the layout was computed for and is
// as tall as the lowest card bottom plus the top margin. Cards pushed past
// the container edges by a wide fan-out widen the view box instead of being
// clipped.
//
//	l := layout.Compute(tree, layout.ExpandAll(tree), 1200)
//	svg := cards.RenderSVG(tree, l, cards.WithTheme(theme.Default()))
//
// [layout.Connectors]: github.com/matzehuels/evotree/pkg/layout#Connectors
package cards
