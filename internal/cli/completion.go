package cli

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/genealogy"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for evotree.

Besides subcommands (layout, render, tree, explore, chat, agent, create,
config) and their flags, the scripts complete agent names for "evotree agent"
and "evotree chat", read from --tree when it is set and from the built-in
sample otherwise.

Bash:
  $ source <(evotree completion bash)
  $ evotree completion bash > /etc/bash_completion.d/evotree

Zsh:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ evotree completion zsh > "${fpath[1]}/_evotree"

Fish:
  $ evotree completion fish > ~/.config/fish/completions/evotree.fish

PowerShell:
  PS> evotree completion powershell | Out-String | Invoke-Expression
`,
		Example: `  evotree chat Mor<TAB>        # completes to Morpheus
  evotree agent --tree lab.yaml <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{annotationSkipConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeAgentNames completes the single agent-name argument of agent and
// chat. Each candidate carries the agent's generation as its description.
func completeAgentNames(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	path, _ := cmd.Flags().GetString("tree")
	flags := treeFlags{path: path}
	tree, err := flags.loadTree()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return agentCompletions(tree, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func agentCompletions(tree *genealogy.Node, prefix string) []cobra.Completion {
	var names []string
	gens := make(map[string]int)
	genealogy.Walk(tree, func(n, _ *genealogy.Node, _ int) bool {
		if _, seen := gens[n.Name]; !seen && strings.HasPrefix(strings.ToLower(n.Name), strings.ToLower(prefix)) {
			names = append(names, n.Name)
			gens[n.Name] = n.Generation
		}
		return true
	})
	slices.Sort(names)

	out := make([]cobra.Completion, 0, len(names))
	for _, name := range names {
		out = append(out, cobra.CompletionWithDesc(name, "GEN_"+strconv.Itoa(gens[name])))
	}
	return out
}
