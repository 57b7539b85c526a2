package layout

import (
	"math"

	"github.com/matzehuels/evotree/pkg/genealogy"
)

// Position is the top-left corner of a card, in pixels.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Placement is a positioned node.
type Placement struct {
	Position

	ID    int
	Name  string
	Level int

	// Parent is the node's declared parent name, used to resolve connectors.
	Parent string
	// ParentID is the structural parent's id; HasParent is false for the root.
	ParentID  int
	HasParent bool

	// SiblingIndex and SiblingCount locate the node among its parent's
	// visible children. Both are zero for the root.
	SiblingIndex int
	SiblingCount int
}

// Layout is the result of one layout pass. It is never modified after
// Compute returns.
type Layout struct {
	// Width is the container width the layout was computed for.
	Width float64
	// Config is the geometry the layout was computed with.
	Config Config
	// Placements holds every visible node in pre-order; the root comes first.
	Placements []Placement

	index map[int]int
}

// Len returns the number of placed nodes.
func (l Layout) Len() int { return len(l.Placements) }

// Contains reports whether the node with id was placed.
func (l Layout) Contains(id int) bool {
	_, ok := l.index[id]
	return ok
}

// Position returns the position of the node with id.
func (l Layout) Position(id int) (Position, bool) {
	p, ok := l.Placement(id)
	return p.Position, ok
}

// Placement returns the full placement of the node with id.
func (l Layout) Placement(id int) (Placement, bool) {
	i, ok := l.index[id]
	if !ok {
		return Placement{}, false
	}
	return l.Placements[i], true
}

// Positions returns the id -> position mapping as a new map.
func (l Layout) Positions() map[int]Position {
	out := make(map[int]Position, len(l.Placements))
	for _, p := range l.Placements {
		out[p.ID] = p.Position
	}
	return out
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the box enclosing every card. An empty layout has a zero
// Rect.
func (l Layout) Bounds() Rect {
	if len(l.Placements) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range l.Placements {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X+l.Config.CardWidth)
		r.MaxY = math.Max(r.MaxY, p.Y+l.Config.CardHeight)
	}
	return r
}

// Engine computes layouts with a fixed geometry.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine for cfg, or an INVALID_CONFIG error.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's geometry.
func (e *Engine) Config() Config { return e.cfg }

// Compute lays out the visible part of the tree rooted at root.
//
// The result depends only on the arguments: calling Compute twice with the
// same tree, expanded set and width yields identical layouts. A nil root
// yields an empty layout.
func (e *Engine) Compute(root *genealogy.Node, expanded ExpandedSet, containerWidth float64) Layout {
	l := Layout{
		Width:  containerWidth,
		Config: e.cfg,
		index:  make(map[int]int),
	}
	if root == nil {
		return l
	}

	x := containerWidth/2 - e.cfg.HalfCardWidth()
	l.add(Placement{
		Position: Position{X: x, Y: e.cfg.TopMargin},
		ID:       root.ID,
		Name:     root.Name,
		Parent:   root.Parent,
	})
	e.placeChildren(&l, root, x, 0, expanded)
	return l
}

// placeChildren positions the visible children of n, whose card sits at
// parentX on level.
//
// A leaf is placed by its sibling offset from the parent. A node with
// visible children keeps the x it was given and anchors its own children
// around it. Since the x handed to a child already is its sibling offset,
// both cases place the child at the same column.
func (e *Engine) placeChildren(l *Layout, n *genealogy.Node, parentX float64, level int, expanded ExpandedSet) {
	if !expanded.Has(n.ID) {
		return
	}
	count := len(n.Children)
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		x := parentX + e.siblingOffset(i, count)
		l.add(Placement{
			Position:     Position{X: x, Y: float64(level+1)*e.cfg.VerticalSpacing + e.cfg.TopMargin},
			ID:           c.ID,
			Name:         c.Name,
			Level:        level + 1,
			Parent:       c.Parent,
			ParentID:     n.ID,
			HasParent:    true,
			SiblingIndex: i,
			SiblingCount: count,
		})
		e.placeChildren(l, c, x, level+1, expanded)
	}
}

func (e *Engine) siblingOffset(index, count int) float64 {
	return (float64(index) - float64(count-1)/2) * e.cfg.HorizontalSpacing
}

func (l *Layout) add(p Placement) {
	l.index[p.ID] = len(l.Placements)
	l.Placements = append(l.Placements, p)
}

var defaultEngine = &Engine{cfg: DefaultConfig()}

// Compute lays out the tree with [DefaultConfig].
func Compute(root *genealogy.Node, expanded ExpandedSet, containerWidth float64) Layout {
	return defaultEngine.Compute(root, expanded, containerWidth)
}
