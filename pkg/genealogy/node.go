package genealogy

// TEEStatus is the state of an agent's trusted execution environment.
type TEEStatus string

const (
	TEERunning   TEEStatus = "running"
	TEECompleted TEEStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TEEStatus) Valid() bool {
	return s == TEERunning || s == TEECompleted
}

// Node is one agent in the genealogy tree.
type Node struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Parent is the declared parent name. Empty for the root.
	Parent   string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	Image         string    `json:"image,omitempty" yaml:"image,omitempty"`
	Generation    int       `json:"generation" yaml:"generation"`
	TokenCA       string    `json:"token_ca,omitempty" yaml:"token_ca,omitempty"`
	TokenValue    float64   `json:"token_value,omitempty" yaml:"token_value,omitempty"`
	WalletAddress string    `json:"wallet_address,omitempty" yaml:"wallet_address,omitempty"`
	Balance       float64   `json:"balance" yaml:"balance"`
	TEEStatus     TEEStatus `json:"tee_status,omitempty" yaml:"tee_status,omitempty"`
	Traits        []string  `json:"traits,omitempty" yaml:"traits,omitempty"`
	HealthPoints  int       `json:"health_points" yaml:"health_points"`
	BreedProgress int       `json:"breed_progress" yaml:"breed_progress"`
	MarketCap     float64   `json:"market_cap" yaml:"market_cap"`
}

// HasChildren reports whether n owns at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Walk visits root and its descendants in pre-order. fn receives the
// structural parent (nil for the root) and the depth (0 for the root).
// Returning false from fn skips the node's subtree.
func Walk(root *Node, fn func(n, parent *Node, level int) bool) {
	if root == nil {
		return
	}
	walk(root, nil, 0, fn)
}

func walk(n, parent *Node, level int, fn func(n, parent *Node, level int) bool) {
	if !fn(n, parent, level) {
		return
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		walk(c, n, level+1, fn)
	}
}

// Index returns an id -> node lookup table. Later duplicates overwrite
// earlier ones; call [Validate] first if ids may collide.
func Index(root *Node) map[int]*Node {
	idx := make(map[int]*Node)
	Walk(root, func(n, _ *Node, _ int) bool {
		idx[n.ID] = n
		return true
	})
	return idx
}

// Find returns the node with the given id.
func Find(root *Node, id int) (*Node, bool) {
	var found *Node
	Walk(root, func(n, _ *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// FindByName returns every node named name, in pre-order.
func FindByName(root *Node, name string) []*Node {
	var out []*Node
	Walk(root, func(n, _ *Node, _ int) bool {
		if n.Name == name {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	count := 0
	Walk(root, func(*Node, *Node, int) bool {
		count++
		return true
	})
	return count
}

// Clone returns a deep copy of the tree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Traits != nil {
		out.Traits = append([]string(nil), n.Traits...)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Clone(c)
		}
	}
	return &out
}
