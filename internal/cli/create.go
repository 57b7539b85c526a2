package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/breed"
	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

// createOpts holds the flags of the create command.
type createOpts struct {
	treePath string
	template int
	name     string
	traits   []string
	health   int
	parent   int
	format   string
	output   string
	list     bool
}

// createCommand validates a breed draft and prints the new agent.
func (c *CLI) createCommand() *cobra.Command {
	opts := createOpts{health: breed.DefaultHealth, format: genealogy.FormatYAML}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Breed a new agent from a template",
		Long: `Breed a new agent from a template.

Pick a template, a name and up to three traits. The new agent is attached
under --parent (default: the root) one generation below it. With -o the
whole updated genealogy is written, ready to be passed back with --tree.`,
		Example: `  evotree create --list
  evotree create --template 2 --name Neo --trait Brave --trait Swift --parent 3
  evotree create --template 1 --name Dolly --trait Lucky -o agents.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				printCatalogue()
				return nil
			}
			return c.runCreate(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.treePath, "tree", "", "genealogy file (.json, .yaml); default: built-in sample")
	cmd.Flags().IntVar(&opts.template, "template", 0, "template id (see --list)")
	cmd.Flags().StringVar(&opts.name, "name", "", "agent name")
	cmd.Flags().StringArrayVar(&opts.traits, "trait", nil, "trait to select (repeatable, at most 3)")
	cmd.Flags().IntVar(&opts.health, "health", opts.health, "initial health points (0-100)")
	cmd.Flags().IntVar(&opts.parent, "parent", 0, "parent agent id (default: root)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: yaml, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the updated genealogy to this file")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list templates and traits")

	return cmd
}

// buildDraft fills a draft from the flags in form order.
func buildDraft(opts *createOpts) (*breed.Draft, error) {
	d := breed.NewDraft()
	if opts.template != 0 {
		if err := d.SelectTemplate(opts.template); err != nil {
			return nil, err
		}
	}
	d.SetName(strings.TrimSpace(opts.name))
	for _, t := range opts.traits {
		if err := d.ToggleTrait(t); err != nil {
			return nil, err
		}
	}
	d.HealthPoints = opts.health
	return d, d.Validate()
}

func (c *CLI) runCreate(opts *createOpts) error {
	d, err := buildDraft(opts)
	if err != nil {
		return err
	}
	if len(opts.traits) > breed.MaxTraits {
		printWarning("only the first %d traits were kept", breed.MaxTraits)
	}

	tree := genealogy.Sample()
	if opts.treePath != "" {
		if tree, err = genealogy.ReadFile(opts.treePath); err != nil {
			return err
		}
	}
	parent := tree
	if opts.parent != 0 {
		p, ok := genealogy.Find(tree, opts.parent)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "no agent with id %d", opts.parent)
		}
		parent = p
	}

	agent, err := d.Agent(breed.NextID(tree), parent)
	if err != nil {
		return err
	}
	parent.Children = append(parent.Children, agent)
	if err := genealogy.Validate(tree); err != nil {
		return err
	}
	c.Logger.Debug("agent created", "id", agent.ID, "parent", parent.Name, "generation", agent.Generation)

	if opts.output == "" {
		return genealogy.Write(stdout, agent, opts.format)
	}

	data, err := genealogy.Marshal(tree, opts.format)
	if err != nil {
		return err
	}
	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	printSuccess("Bred %s (id %d, GEN_%d) under %s", agent.Name, agent.ID, agent.Generation, parent.Name)
	printFile(opts.output)
	printNewline()
	printNextStep("Explore", fmt.Sprintf("evotree explore --tree %s --all", opts.output))
	return nil
}

// printCatalogue lists the templates and the trait catalogue.
func printCatalogue() {
	rows := make([][]string, 0, len(breed.Templates()))
	for _, t := range breed.Templates() {
		rows = append(rows, []string{fmt.Sprint(t.ID), t.Name, t.Type, strings.Join(t.WorkSuitability, ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Template", "Type", "Work suitability").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	fmt.Fprintln(stdout, StyleTitle.Render("Templates"))
	fmt.Fprintln(stdout, t.Render())
	printNewline()
	fmt.Fprintln(stdout, StyleTitle.Render("Traits")+" "+StyleDim.Render(fmt.Sprintf("(pick up to %d)", breed.MaxTraits)))
	fmt.Fprintln(stdout, "  "+traitTags(breed.Traits()))
}
