package genealogy

import (
	"strings"
	"testing"
)

func TestProfile(t *testing.T) {
	root := Sample()
	eve := FindByName(root, "Eve")[0]

	got := Profile(eve)
	for _, want := range []string{
		"# Eve\n",
		"**Generation 2**",
		"bred from Spore",
		"| Health | 93/100 |",
		"- Ethical\n",
		"## Sub-agents (1)",
		"- Trinity (GEN_3, 0 descendants)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Profile() missing %q:\n%s", want, got)
		}
	}
}

func TestProfileMinimal(t *testing.T) {
	got := Profile(&Node{ID: 9, Name: "Blank", Generation: 1})
	if strings.Contains(got, "bred from") || strings.Contains(got, "| Token |") || strings.Contains(got, "| Wallet |") {
		t.Errorf("optional fields rendered:\n%s", got)
	}
	if strings.Count(got, "_none_") != 2 {
		t.Errorf("want two _none_ placeholders:\n%s", got)
	}
	if !strings.Contains(got, "| Market cap | $0 |") {
		t.Errorf("zero market cap not formatted:\n%s", got)
	}
}
