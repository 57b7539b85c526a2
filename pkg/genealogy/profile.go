package genealogy

import (
	"fmt"
	"strings"
)

// Profile describes n as a markdown document: vitals, finances, traits and
// direct sub-agents. Empty optional fields are left out.
func Profile(n *Node) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", n.Name)
	meta := []string{fmt.Sprintf("**Generation %d**", n.Generation)}
	if n.TEEStatus != "" {
		meta = append(meta, "TEE "+string(n.TEEStatus))
	}
	if n.Parent != "" {
		meta = append(meta, "bred from "+n.Parent)
	}
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n\n")

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Health | %d/100 |\n", n.HealthPoints)
	fmt.Fprintf(&b, "| Breed progress | %d%% |\n", n.BreedProgress)
	fmt.Fprintf(&b, "| Market cap | %s |\n", FormatUSD(n.MarketCap))
	fmt.Fprintf(&b, "| Balance | %s |\n", FormatUSD(n.Balance))
	if n.TokenCA != "" {
		fmt.Fprintf(&b, "| Token | `%s` at %s |\n", n.TokenCA, FormatUSD(n.TokenValue))
	}
	if n.WalletAddress != "" {
		fmt.Fprintf(&b, "| Wallet | `%s` |\n", n.WalletAddress)
	}

	b.WriteString("\n## Traits\n\n")
	if len(n.Traits) == 0 {
		b.WriteString("_none_\n")
	}
	for _, t := range n.Traits {
		fmt.Fprintf(&b, "- %s\n", t)
	}

	fmt.Fprintf(&b, "\n## Sub-agents (%d)\n\n", len(n.Children))
	if len(n.Children) == 0 {
		b.WriteString("_none_\n")
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s (GEN_%d, %d descendants)\n", c.Name, c.Generation, Count(c)-1)
	}
	return b.String()
}
