package layout

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

// ExpandedSet is the set of node ids whose children are visible.
//
// It is a value type: Toggle, With and Without return a new set and leave
// the receiver untouched, so a previously computed layout's inputs never
// change under it. The zero value is an empty set.
type ExpandedSet struct {
	ids map[int]struct{}
}

// NewExpandedSet returns a set containing ids.
func NewExpandedSet(ids ...int) ExpandedSet {
	s := ExpandedSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// ExpandAll returns a set containing every node of the tree that has
// children.
func ExpandAll(root *genealogy.Node) ExpandedSet {
	var ids []int
	genealogy.Walk(root, func(n, _ *genealogy.Node, _ int) bool {
		if n.HasChildren() {
			ids = append(ids, n.ID)
		}
		return true
	})
	return NewExpandedSet(ids...)
}

// ParseExpandedSet parses a comma-separated list of ids such as "1,2,5".
// An empty string yields an empty set.
func ParseExpandedSet(s string) (ExpandedSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewExpandedSet(), nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return ExpandedSet{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid node id %q", part)
		}
		ids = append(ids, id)
	}
	return NewExpandedSet(ids...), nil
}

// Has reports whether id is expanded.
func (s ExpandedSet) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of expanded ids.
func (s ExpandedSet) Len() int { return len(s.ids) }

// IDs returns the expanded ids in ascending order.
func (s ExpandedSet) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Toggle returns a copy of s with id's membership flipped.
func (s ExpandedSet) Toggle(id int) ExpandedSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// With returns a copy of s that also contains ids.
func (s ExpandedSet) With(ids ...int) ExpandedSet {
	out := s.clone()
	for _, id := range ids {
		out.ids[id] = struct{}{}
	}
	return out
}

// Without returns a copy of s with ids removed.
func (s ExpandedSet) Without(ids ...int) ExpandedSet {
	out := s.clone()
	for _, id := range ids {
		delete(out.ids, id)
	}
	return out
}

// String formats the set as ParseExpandedSet accepts it.
func (s ExpandedSet) String() string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func (s ExpandedSet) clone() ExpandedSet {
	out := ExpandedSet{ids: make(map[int]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	return out
}
