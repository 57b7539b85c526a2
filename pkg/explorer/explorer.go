// Package explorer owns the interactive state of the evolution tree view:
// the expanded set, the container width and the last computed layout.
//
// Every change (a node toggle, a resize or a reloaded tree) triggers a full recomputation
// with [layout.Engine.Compute]. The new layout replaces the previous one in
// a single assignment and is then handed to each subscriber, so a consumer
// never observes a partially updated layout.
//
// An Explorer is meant to be driven from one event loop (the TUI's update
// function, for instance) and is not safe for concurrent use.
package explorer

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/observability"
)

// Recompute triggers reported to observability hooks.
const (
	TriggerInit   = "init"
	TriggerToggle = "toggle"
	TriggerResize = "resize"
	TriggerSet    = "set"
	TriggerReload = "reload"
)

// Explorer holds the tree view state.
type Explorer struct {
	tree   *genealogy.Node
	index  map[int]*genealogy.Node
	engine *layout.Engine
	logger *log.Logger

	expanded layout.ExpandedSet
	width    float64
	current  layout.Layout

	subscribers []func(layout.Layout)
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithExpanded sets the initial expanded set. The default expands the root.
func WithExpanded(s layout.ExpandedSet) Option {
	return func(e *Explorer) { e.expanded = s }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Explorer) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Explorer for tree and computes the first layout.
func New(tree *genealogy.Node, engine *layout.Engine, width float64, opts ...Option) (*Explorer, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}
	if engine == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout engine is required")
	}
	if err := validateWidth(width); err != nil {
		return nil, err
	}

	e := &Explorer{
		tree:     tree,
		index:    genealogy.Index(tree),
		engine:   engine,
		logger:   log.New(io.Discard),
		expanded: layout.NewExpandedSet(tree.ID),
		width:    width,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recompute(TriggerInit)
	return e, nil
}

// Layout returns the most recent layout.
func (e *Explorer) Layout() layout.Layout { return e.current }

// Connectors derives the connectors of the most recent layout.
func (e *Explorer) Connectors() []layout.Connector { return layout.Connectors(e.current) }

// Expanded returns the current expanded set.
func (e *Explorer) Expanded() layout.ExpandedSet { return e.expanded }

// Width returns the current container width.
func (e *Explorer) Width() float64 { return e.width }

// Tree returns the root of the tree being explored.
func (e *Explorer) Tree() *genealogy.Node { return e.tree }

// Node looks up a node of the tree by id, visible or not.
func (e *Explorer) Node(id int) (*genealogy.Node, bool) {
	n, ok := e.index[id]
	return n, ok
}

// Subscribe registers fn to receive every new layout. fn is called
// synchronously, after the explorer's state has been updated.
func (e *Explorer) Subscribe(fn func(layout.Layout)) {
	if fn != nil {
		e.subscribers = append(e.subscribers, fn)
	}
}

// Toggle flips the expansion of a visible node and recomputes.
// Only nodes present in the current layout can be toggled.
func (e *Explorer) Toggle(id int) error {
	if !e.current.Contains(id) {
		return errors.New(errors.ErrCodeNodeNotFound, "node %d is not visible", id)
	}
	e.expanded = e.expanded.Toggle(id)
	e.logger.Debug("toggled node", "id", id, "expanded", e.expanded.Has(id))
	e.recompute(TriggerToggle)
	return nil
}

// SetExpanded replaces the expanded set and recomputes.
func (e *Explorer) SetExpanded(s layout.ExpandedSet) {
	e.expanded = s
	e.recompute(TriggerSet)
}

// SetTree swaps in a new tree, for instance after its file changed on disk.
// Expanded ids that no longer exist are dropped; the rest stay expanded.
func (e *Explorer) SetTree(tree *genealogy.Node) error {
	if tree == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}
	index := genealogy.Index(tree)
	var stale []int
	for _, id := range e.expanded.IDs() {
		if _, ok := index[id]; !ok {
			stale = append(stale, id)
		}
	}
	e.tree, e.index = tree, index
	e.expanded = e.expanded.Without(stale...)
	e.logger.Debug("tree replaced", "nodes", len(index), "dropped", stale)
	e.recompute(TriggerReload)
	return nil
}

// Resize sets a new container width and recomputes.
func (e *Explorer) Resize(width float64) error {
	if err := validateWidth(width); err != nil {
		return err
	}
	e.width = width
	e.recompute(TriggerResize)
	return nil
}

func (e *Explorer) recompute(trigger string) {
	start := time.Now()
	next := e.engine.Compute(e.tree, e.expanded, e.width)
	e.current = next

	elapsed := time.Since(start)
	e.logger.Debug("layout computed", "trigger", trigger, "nodes", next.Len(), "width", e.width, "elapsed", elapsed)
	observability.Layout().OnLayoutComplete(context.Background(), trigger, next.Len(), elapsed)

	for _, fn := range e.subscribers {
		fn(next)
	}
}

func validateWidth(width float64) error {
	if width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "container width must be positive, got %g", width)
	}
	return nil
}
