// Package layout computes card positions for a genealogy tree.
//
// # Algorithm
//
// [Engine.Compute] walks the tree depth-first in pre-order and returns a
// fresh [Layout] on every call; there is no incremental update. The root sits
// on level 0, horizontally centred in the container:
//
//	x = containerWidth/2 - CardWidth/2
//	y = TopMargin
//
// A node's children are visible only if its id is in the [ExpandedSet].
// Visible children go on the next level and are spread around the parent's
// x with HorizontalSpacing between siblings:
//
//	x = parentX + (i - (n-1)/2) * HorizontalSpacing
//	y = level * VerticalSpacing + TopMargin
//
// Collapsed nodes contribute no descendants at all: the subtree is absent
// from the layout, not hidden. Large fan-out can make neighbouring subtrees
// overlap; the engine does not try to prevent that.
//
// # Connectors
//
// [Connectors] derives one curve per visible non-root node, from the bottom
// centre of its parent's card to the top centre of its own card. The parent
// is looked up by the node's declared parent name; when no placed node has
// that name the connector is omitted.
//
// # Example
//
//	engine, _ := layout.NewEngine(layout.DefaultConfig())
//	l := engine.Compute(genealogy.Sample(), layout.NewExpandedSet(1), 1200)
//	for _, p := range l.Placements {
//	    fmt.Println(p.Name, p.X, p.Y)
//	}
package layout
