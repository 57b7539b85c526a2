package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

const testWidth = 1200

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	return e
}

func mustPosition(t *testing.T, l Layout, id int) Position {
	t.Helper()
	p, ok := l.Position(id)
	if !ok {
		t.Fatalf("node %d missing from layout", id)
	}
	return p
}

func TestRootPosition(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()

	sets := map[string]ExpandedSet{
		"none":  NewExpandedSet(),
		"root":  NewExpandedSet(1),
		"all":   ExpandAll(root),
		"inner": NewExpandedSet(2, 3),
	}
	for _, width := range []float64{320, 1200, 1921.5} {
		for name, set := range sets {
			l := e.Compute(root, set, width)
			got := mustPosition(t, l, 1)
			want := Position{X: width/2 - DefaultCardWidth/2, Y: DefaultTopMargin}
			if got != want {
				t.Errorf("width=%g expanded=%s: root = %+v, want %+v", width, name, got, want)
			}
			if l.Placements[0].ID != 1 {
				t.Errorf("width=%g expanded=%s: first placement = %d, want root", width, name, l.Placements[0].ID)
			}
		}
	}
}

func TestCollapsedDescendantsAbsent(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()

	tests := []struct {
		name     string
		expanded ExpandedSet
		want     []int
	}{
		{"nothing expanded", NewExpandedSet(), []int{1}},
		{"root only", NewExpandedSet(1), []int{1, 2, 3}},
		{"root and Adam", NewExpandedSet(1, 2), []int{1, 2, 4, 3}},
		{"everything", ExpandAll(root), []int{1, 2, 4, 3, 5}},
		// Children of a collapsed ancestor stay hidden even when expanded.
		{"Adam without root", NewExpandedSet(2), []int{1}},
		{"unknown ids ignored", NewExpandedSet(1, 42), []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := e.Compute(root, tt.expanded, testWidth)
			var got []int
			for _, p := range l.Placements {
				got = append(got, p.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("placed ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTwoChildrenSymmetric(t *testing.T) {
	e := newTestEngine(t)
	root := &genealogy.Node{
		ID: 1, Name: "root",
		Children: []*genealogy.Node{
			{ID: 2, Name: "a", Parent: "root"},
			{ID: 3, Name: "b", Parent: "root"},
		},
	}

	l := e.Compute(root, NewExpandedSet(1, 2, 3), testWidth)
	r := mustPosition(t, l, 1)
	a := mustPosition(t, l, 2)
	b := mustPosition(t, l, 3)

	if a.X+b.X != 2*r.X {
		t.Errorf("children not symmetric: %g + %g != 2 * %g", a.X, b.X, r.X)
	}
	wantY := float64(DefaultVerticalSpacing + DefaultTopMargin)
	if a.Y != wantY || b.Y != wantY {
		t.Errorf("children y = %g, %g, want %g", a.Y, b.Y, wantY)
	}
	if b.X-a.X != DefaultHorizontalSpacing {
		t.Errorf("sibling gap = %g, want %d", b.X-a.X, DefaultHorizontalSpacing)
	}
}

func TestNullChildSkipped(t *testing.T) {
	e := newTestEngine(t)
	root := &genealogy.Node{
		ID: 1, Name: "root",
		Children: []*genealogy.Node{nil, {ID: 3, Name: "b", Parent: "root"}},
	}

	l := e.Compute(root, NewExpandedSet(1), testWidth)
	if len(l.Placements) != 2 {
		t.Fatalf("placements = %d, want 2", len(l.Placements))
	}
	r := mustPosition(t, l, 1)
	if got, want := mustPosition(t, l, 3).X, r.X+DefaultHorizontalSpacing/2; got != want {
		t.Errorf("b.X = %g, want %g (second of two slots)", got, want)
	}
}

func TestSampleCoordinates(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()
	l := e.Compute(root, ExpandAll(root), testWidth)

	want := map[int]Position{
		1: {X: 450, Y: 50},
		2: {X: 250, Y: 300},
		4: {X: 250, Y: 550},
		3: {X: 650, Y: 300},
		5: {X: 650, Y: 550},
	}
	if diff := cmp.Diff(want, l.Positions()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	eve, _ := l.Placement(3)
	if eve.Level != 1 || eve.ParentID != 1 || !eve.HasParent || eve.SiblingIndex != 1 || eve.SiblingCount != 2 {
		t.Errorf("Eve placement = %+v", eve)
	}
	spore, _ := l.Placement(1)
	if spore.HasParent || spore.Level != 0 {
		t.Errorf("root placement = %+v", spore)
	}
}

func TestFanOutOffsets(t *testing.T) {
	e := newTestEngine(t)
	root := &genealogy.Node{ID: 1, Name: "root"}
	for i := 2; i <= 4; i++ {
		root.Children = append(root.Children, &genealogy.Node{ID: i, Name: "c", Parent: "root"})
	}

	l := e.Compute(root, NewExpandedSet(1), testWidth)
	rx := mustPosition(t, l, 1).X
	for i, wantOffset := range []float64{-400, 0, 400} {
		got := mustPosition(t, l, i+2).X - rx
		if got != wantOffset {
			t.Errorf("child %d offset = %g, want %g", i, got, wantOffset)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()
	set := ExpandAll(root)

	first := e.Compute(root, set, 1337.25)
	second := e.Compute(root, set, 1337.25)

	if diff := cmp.Diff(first.Placements, second.Placements); diff != "" {
		t.Errorf("layouts differ (-first +second):\n%s", diff)
	}
}

func TestCollapseRemovesExactlySubtree(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()
	all := ExpandAll(root)

	before := e.Compute(root, all, testWidth).Positions()
	after := e.Compute(root, all.Toggle(2), testWidth).Positions()

	if _, ok := after[4]; ok {
		t.Error("Morpheus should disappear when Adam collapses")
	}
	delete(before, 4)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("remaining positions changed (-before +after):\n%s", diff)
	}
}

func TestResizeShiftsUniformly(t *testing.T) {
	e := newTestEngine(t)
	root := genealogy.Sample()
	set := ExpandAll(root)

	narrow := e.Compute(root, set, 800)
	wide := e.Compute(root, set, 1600)

	shift := (1600.0 - 800.0) / 2
	for _, p := range narrow.Placements {
		q := mustPosition(t, wide, p.ID)
		if q.X-p.X != shift {
			t.Errorf("node %d shifted by %g, want %g", p.ID, q.X-p.X, shift)
		}
		if q.Y != p.Y {
			t.Errorf("node %d y changed: %g -> %g", p.ID, p.Y, q.Y)
		}
	}
}

func TestComputeNilRoot(t *testing.T) {
	l := Compute(nil, NewExpandedSet(1), testWidth)
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if l.Bounds() != (Rect{}) {
		t.Errorf("Bounds() = %+v, want zero", l.Bounds())
	}
}

func TestCustomConfig(t *testing.T) {
	cfg := Config{VerticalSpacing: 100, HorizontalSpacing: 120, CardWidth: 80, CardHeight: 40, TopMargin: 10}
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	l := e.Compute(genealogy.Sample(), NewExpandedSet(1), 400)

	want := map[int]Position{
		1: {X: 160, Y: 10},
		2: {X: 100, Y: 110},
		3: {X: 220, Y: 110},
	}
	if diff := cmp.Diff(want, l.Positions()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if got := l.Bounds(); got != (Rect{MinX: 100, MinY: 10, MaxX: 300, MaxY: 150}) {
		t.Errorf("Bounds() = %+v", got)
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero vertical", func(c *Config) { c.VerticalSpacing = 0 }},
		{"negative horizontal", func(c *Config) { c.HorizontalSpacing = -1 }},
		{"zero card width", func(c *Config) { c.CardWidth = 0 }},
		{"zero card height", func(c *Config) { c.CardHeight = 0 }},
		{"negative margin", func(c *Config) { c.TopMargin = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewEngine(cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("NewEngine() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
