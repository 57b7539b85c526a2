package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/wire"
)

// layoutCommand creates the layout command for computing card positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  treeFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute card positions for the visible part of a genealogy",
		Long: `Compute card positions for the visible part of a genealogy.

The root is centred in the container; expanded agents fan their children out
one level below, centred under the parent. Collapsed subtrees are left out.
The result lists every visible agent with its position and every
parent-child connector as SVG path data.`,
		Example: `  evotree layout --all
  evotree layout --tree agents.yaml --expand 1,3 --width 1600 -f yaml -o layout.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(&flags, format, output)
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", wire.FormatJSON, "output format: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runLayout(flags *treeFlags, format, output string) error {
	tree, l, err := c.computeLayout(flags)
	if err != nil {
		return err
	}

	doc := wire.FromLayout(tree, l)
	data, err := wire.Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Layout complete")
		printFile(output)
		printStats(len(doc.Nodes), len(doc.Connectors), doc.Width)
		printNewline()
		printNextStep("Render", "evotree render -o tree.svg")
	}
	return nil
}
