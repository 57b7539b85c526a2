package genealogy

import (
	"slices"

	"github.com/matzehuels/evotree/pkg/errors"
)

// Validate checks structural and attribute constraints and returns the first
// violation found in pre-order:
//
//   - the tree is non-nil
//   - node ids are unique
//   - no child entry is null
//   - names pass [errors.ValidateName]
//   - health points and breed progress are within 0..100
//   - the TEE status, when set, is known
//
// Parent-name mismatches are deliberately not checked; see the package
// documentation.
func Validate(root *Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}

	seen := make(map[int]string)
	var err error
	Walk(root, func(n, _ *Node, _ int) bool {
		if err != nil {
			return false
		}
		if prev, dup := seen[n.ID]; dup {
			err = errors.New(errors.ErrCodeInvalidTree, "duplicate node id %d (%q and %q)", n.ID, prev, n.Name)
			return false
		}
		seen[n.ID] = n.Name
		if slices.Contains(n.Children, nil) {
			err = errors.New(errors.ErrCodeInvalidTree, "node %q has a null child", n.Name)
			return false
		}
		err = validateNode(n)
		return err == nil
	})
	return err
}

func validateNode(n *Node) error {
	if err := errors.ValidateName(n.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTree, err, "node %d", n.ID)
	}
	if err := errors.ValidatePercent("health_points", n.HealthPoints); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTree, err, "node %q", n.Name)
	}
	if err := errors.ValidatePercent("breed_progress", n.BreedProgress); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTree, err, "node %q", n.Name)
	}
	if n.TEEStatus != "" && !n.TEEStatus.Valid() {
		return errors.New(errors.ErrCodeInvalidTree, "node %q: unknown tee_status %q", n.Name, n.TEEStatus)
	}
	return nil
}
