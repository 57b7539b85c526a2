package layout

import (
	"strconv"
	"strings"
)

// Point is a 2-D coordinate in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Connector is the curve between a parent card and a child card.
//
// The curve is a cubic Bézier from the parent's bottom centre to the child's
// top centre with both control points on the vertical midpoint, which draws
// an S-shape between columns and a straight line within one.
type Connector struct {
	ParentID int
	ChildID  int

	From, To           Point
	Control1, Control2 Point
}

// Path returns the connector as SVG path data.
func (c Connector) Path() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, c.From)
	b.WriteString(" C ")
	writePoint(&b, c.Control1)
	b.WriteString(", ")
	writePoint(&b, c.Control2)
	b.WriteString(", ")
	writePoint(&b, c.To)
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Connectors returns one connector per visible non-root node, in layout
// order.
//
// The parent is resolved by the node's declared parent name. If no placed
// node carries that name the connector is skipped. If several do, the
// structural parent is preferred, falling back to the first match in
// pre-order.
func Connectors(l Layout) []Connector {
	byName := make(map[string][]Placement)
	for _, p := range l.Placements {
		byName[p.Name] = append(byName[p.Name], p)
	}

	var out []Connector
	for _, child := range l.Placements {
		if !child.HasParent {
			continue
		}
		parent, ok := resolveParent(byName[child.Parent], child)
		if !ok {
			continue
		}
		out = append(out, newConnector(l.Config, parent, child))
	}
	return out
}

func resolveParent(candidates []Placement, child Placement) (Placement, bool) {
	if len(candidates) == 0 {
		return Placement{}, false
	}
	for _, c := range candidates {
		if c.ID == child.ParentID {
			return c, true
		}
	}
	return candidates[0], true
}

func newConnector(cfg Config, parent, child Placement) Connector {
	from := Point{X: parent.X + cfg.HalfCardWidth(), Y: parent.Y + cfg.CardHeight}
	to := Point{X: child.X + cfg.HalfCardWidth(), Y: child.Y}
	midY := (from.Y + to.Y) / 2
	return Connector{
		ParentID: parent.ID,
		ChildID:  child.ID,
		From:     from,
		To:       to,
		Control1: Point{X: from.X, Y: midY},
		Control2: Point{X: to.X, Y: midY},
	}
}
