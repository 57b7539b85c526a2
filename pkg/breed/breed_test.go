package breed

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

func TestCatalogues(t *testing.T) {
	if n := len(Templates()); n != 5 {
		t.Errorf("len(Templates()) = %d, want 5", n)
	}
	if n := len(Traits()); n != 10 {
		t.Errorf("len(Traits()) = %d, want 10", n)
	}

	tpl, ok := TemplateByID(3)
	if !ok || tpl.Name != "Pengullet" || tpl.Type != "Ice/Water" {
		t.Errorf("TemplateByID(3) = %+v, %v", tpl, ok)
	}

	// Callers cannot mutate the catalogue.
	tpl.WorkSuitability[0] = "Nothing"
	again, _ := TemplateByID(3)
	if again.WorkSuitability[0] != "Cooling" {
		t.Error("template catalogue was mutated through a returned copy")
	}
}

func TestSelectTemplate(t *testing.T) {
	d := NewDraft()
	if err := d.SelectTemplate(2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Kindling", "Mining"}, d.WorkSuitability); diff != "" {
		t.Errorf("work suitability mismatch (-want +got):\n%s", diff)
	}
	if err := d.SelectTemplate(9); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SelectTemplate(9) = %v, want INVALID_INPUT", err)
	}
	if d.TemplateID != 2 {
		t.Error("failed selection must keep the previous template")
	}
}

func TestToggleTrait(t *testing.T) {
	d := NewDraft()
	steps := []struct {
		trait string
		want  []string
	}{
		{"Brave", []string{"Brave"}},
		{"Lucky", []string{"Brave", "Lucky"}},
		{"Clever", []string{"Brave", "Lucky", "Clever"}},
		{"Swift", []string{"Brave", "Lucky", "Clever"}},
		{"Lucky", []string{"Brave", "Clever"}},
		{"Swift", []string{"Brave", "Clever", "Swift"}},
	}
	for _, s := range steps {
		if err := d.ToggleTrait(s.trait); err != nil {
			t.Fatalf("ToggleTrait(%s) error: %v", s.trait, err)
		}
		if diff := cmp.Diff(s.want, d.Traits); diff != "" {
			t.Errorf("after %s (-want +got):\n%s", s.trait, diff)
		}
	}

	if err := d.ToggleTrait("Sleepy"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToggleTrait(Sleepy) = %v, want INVALID_INPUT", err)
	}
}

func TestValidateOrder(t *testing.T) {
	d := NewDraft()
	wantMsg := func(msg string) {
		t.Helper()
		err := d.Validate()
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Fatalf("Validate() = %v, want INVALID_INPUT", err)
		}
		if got := errors.UserMessage(err); got != msg {
			t.Errorf("Validate() message = %q, want %q", got, msg)
		}
	}

	wantMsg("please select a template")
	_ = d.SelectTemplate(1)
	wantMsg("please enter a name")
	d.SetName("Neo")
	wantMsg("please select at least one trait")
	_ = d.ToggleTrait("Brave")
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	d.SetName("   ")
	if err := d.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank name accepted: %v", err)
	}
}

func TestAgent(t *testing.T) {
	tree := genealogy.Sample()
	eve, _ := genealogy.Find(tree, 3)

	d := NewDraft()
	_ = d.SelectTemplate(5)
	d.SetName("Neo")
	_ = d.ToggleTrait("Clever")
	_ = d.ToggleTrait("Swift")

	id := NextID(tree)
	if id != 6 {
		t.Errorf("NextID() = %d, want 6", id)
	}
	n, err := d.Agent(id, eve)
	if err != nil {
		t.Fatalf("Agent() error: %v", err)
	}
	want := &genealogy.Node{
		ID:           6,
		Name:         "Neo",
		Parent:       "Eve",
		Image:        "https://palworld.wiki.gg/images/thumb/f/f4/Chikipi_menu.png/200px-Chikipi_menu.png",
		Generation:   3,
		TEEStatus:    genealogy.TEERunning,
		Traits:       []string{"Clever", "Swift"},
		HealthPoints: 100,
	}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("Agent() mismatch (-want +got):\n%s", diff)
	}

	root, _ := d.Agent(1, nil)
	if root.Generation != 1 || root.Parent != "" {
		t.Errorf("root agent = %+v", root)
	}

	if _, err := NewDraft().Agent(1, nil); err == nil {
		t.Error("Agent() accepted an invalid draft")
	}
}
