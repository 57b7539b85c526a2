package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/theme"
)

// treeCommand prints the visible genealogy as an indented tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags   treeFlags
		details bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the visible genealogy as a text tree",
		Example: `  evotree tree --all
  evotree tree --tree agents.json --expand 1,3 --details`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := flags.loadTree()
			if err != nil {
				return err
			}
			expanded, err := flags.expanded(root)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, renderTextTree(root, expanded, textTreeOptions{details: details, theme: c.Config.Theme}))
			return nil
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().BoolVarP(&details, "details", "d", false, "show traits, health and market cap")

	return cmd
}

var (
	treeEnumStyle = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
	treeNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

type textTreeOptions struct {
	details bool
	theme   theme.Theme
}

// renderTextTree draws root and its visible descendants. Collapsed agents
// with children are marked and report how many agents they hide.
func renderTextTree(root *genealogy.Node, expanded layout.ExpandedSet, opts textTreeOptions) string {
	t := buildTextTree(root, expanded, opts)
	return t.Enumerator(tree.RoundedEnumerator).EnumeratorStyle(treeEnumStyle).String()
}

func buildTextTree(n *genealogy.Node, expanded layout.ExpandedSet, opts textTreeOptions) *tree.Tree {
	t := tree.Root(agentLabel(n, expanded, opts))
	if !expanded.Has(n.ID) {
		return t
	}
	for _, child := range n.Children {
		if child.HasChildren() && expanded.Has(child.ID) {
			t.Child(buildTextTree(child, expanded, opts))
		} else {
			t.Child(agentLabel(child, expanded, opts))
		}
	}
	return t
}

func agentLabel(n *genealogy.Node, expanded layout.ExpandedSet, opts textTreeOptions) string {
	icon := iconLeaf
	suffix := ""
	switch {
	case n.HasChildren() && expanded.Has(n.ID):
		icon = iconExpanded
	case n.HasChildren():
		icon = iconCollapsed
		suffix = StyleDim.Render(fmt.Sprintf(" (+%d hidden)", genealogy.Count(n)-1))
	}

	label := fmt.Sprintf("%s %s %s%s", icon, treeNameStyle.Render(n.Name), styleGen.Render(fmt.Sprintf("GEN_%d", n.Generation)), suffix)
	if opts.details {
		label += fmt.Sprintf("  %s  %s  %s",
			traitTags(n.Traits),
			healthStyle(opts.theme, n.HealthPoints).Render(fmt.Sprintf("♥ %d", n.HealthPoints)),
			StyleNumber.Render(genealogy.FormatUSD(n.MarketCap)))
	}
	return label
}

// healthStyle colours a health value like the card health bar.
func healthStyle(t theme.Theme, health int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Opaque(t.HealthColor(health))))
}
