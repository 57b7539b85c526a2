package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

const profileWrap = 80

// agentCommand prints one agent's profile.
func (c *CLI) agentCommand() *cobra.Command {
	var (
		treePath string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "agent <name>",
		Short: "Show an agent's profile",
		Long: `Show an agent's profile: generation, vitals, finances, traits and
direct sub-agents. The profile is markdown, styled for the terminal unless
--raw is given.`,
		Example: `  evotree agent Trinity
  evotree agent Adam --raw > adam.md`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeAgentNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := treeFlags{path: treePath}
			tree, err := flags.loadTree()
			if err != nil {
				return err
			}
			agent, err := findAgent(tree, args[0])
			if err != nil {
				return err
			}

			md := genealogy.Profile(agent)
			if raw {
				_, err := fmt.Fprint(stdout, md)
				return err
			}
			out, err := renderMarkdown(md, profileWrap)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(stdout, out)
			return err
		},
	}

	cmd.Flags().StringVar(&treePath, "tree", "", "genealogy file (.json, .yaml); default: built-in sample")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source")
	return cmd
}

// renderMarkdown styles md for the terminal. Glamour picks a plain style
// when stdout is not a terminal.
func renderMarkdown(md string, wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "markdown renderer")
	}
	out, err := r.Render(md)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
	}
	return out, nil
}
