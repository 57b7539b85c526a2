package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
)

// treeFlags selects the tree and the visible part of it. They are shared by
// every command that lays a tree out.
type treeFlags struct {
	path   string
	expand string
	all    bool
	width  float64
}

func (f *treeFlags) bind(cmd *cobra.Command, withWidth bool) {
	cmd.Flags().StringVar(&f.path, "tree", "", "genealogy file (.json, .yaml); default: built-in sample")
	cmd.Flags().StringVar(&f.expand, "expand", "", "comma-separated ids of expanded agents (default: root)")
	cmd.Flags().BoolVar(&f.all, "all", false, "expand every agent")
	if withWidth {
		cmd.Flags().Float64Var(&f.width, "width", 0, "container width in pixels (default from config)")
	}
	cmd.MarkFlagsMutuallyExclusive("expand", "all")
}

// loadTree reads the tree named by --tree, or the built-in sample.
func (f *treeFlags) loadTree() (*genealogy.Node, error) {
	if f.path == "" {
		return genealogy.Sample(), nil
	}
	return genealogy.ReadFile(f.path)
}

// requirePath fails when flag needs a --tree file and none was given.
func (f *treeFlags) requirePath(flag string) error {
	if f.path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "%s requires --tree", flag)
	}
	return nil
}

// expanded resolves --expand and --all against tree.
func (f *treeFlags) expanded(tree *genealogy.Node) (layout.ExpandedSet, error) {
	switch {
	case f.all:
		return layout.ExpandAll(tree), nil
	case f.expand != "":
		return layout.ParseExpandedSet(f.expand)
	default:
		return layout.NewExpandedSet(tree.ID), nil
	}
}

// resolveWidth picks --width over the configured default.
func (f *treeFlags) resolveWidth(fallback float64) (float64, error) {
	w := fallback
	if f.width != 0 {
		w = f.width
	}
	if w <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %g", w)
	}
	return w, nil
}

// computeLayout loads the tree and lays it out with the CLI's engine.
func (c *CLI) computeLayout(f *treeFlags) (*genealogy.Node, layout.Layout, error) {
	tree, err := f.loadTree()
	if err != nil {
		return nil, layout.Layout{}, err
	}
	expanded, err := f.expanded(tree)
	if err != nil {
		return nil, layout.Layout{}, err
	}
	width, err := f.resolveWidth(c.Config.Render.Width)
	if err != nil {
		return nil, layout.Layout{}, err
	}
	engine, err := c.newEngine()
	if err != nil {
		return nil, layout.Layout{}, err
	}

	prog := newProgress(c.Logger)
	l := engine.Compute(tree, expanded, width)
	c.Logger.Debug("layout computed", "agents", l.Len(), "expanded", expanded.String(), "elapsed", prog.elapsed())
	return tree, l, nil
}

// findAgent resolves an agent by exact name. The first match in pre-order
// wins when names repeat.
func findAgent(tree *genealogy.Node, name string) (*genealogy.Node, error) {
	matches := genealogy.FindByName(tree, name)
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no agent named %q", name)
	}
	return matches[0], nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
