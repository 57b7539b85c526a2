// Package breed validates the form used to create a new agent.
//
// A [Draft] starts empty with full health. The user picks a template, which
// brings its work suitability along, names the agent and picks up to
// [MaxTraits] traits from the catalogue. [Draft.Agent] turns a valid draft
// into a genealogy node ready to be attached under a parent.
package breed

import (
	"slices"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

const (
	// MaxTraits is the number of traits an agent can carry.
	MaxTraits = 3
	// DefaultHealth is the health of a freshly bred agent.
	DefaultHealth = 100
)

// Template is a base creature an agent is bred from.
type Template struct {
	ID              int      `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Image           string   `json:"image" yaml:"image"`
	Type            string   `json:"type" yaml:"type"`
	WorkSuitability []string `json:"work_suitability" yaml:"work_suitability"`
}

var templates = []Template{
	{1, "Lamball", "https://palworld.wiki.gg/images/thumb/a/a3/Lamball_menu.png/200px-Lamball_menu.png", "Normal", []string{"Farming", "Ranch"}},
	{2, "Foxparks", "https://palworld.wiki.gg/images/thumb/8/89/Foxparks_menu.png/200px-Foxparks_menu.png", "Fire", []string{"Kindling", "Mining"}},
	{3, "Pengullet", "https://palworld.wiki.gg/images/thumb/8/8d/Pengullet_menu.png/200px-Pengullet_menu.png", "Ice/Water", []string{"Cooling", "Watering"}},
	{4, "Cattiva", "https://palworld.wiki.gg/images/thumb/8/88/Cattiva_menu.png/200px-Cattiva_menu.png", "Neutral", []string{"Handiwork", "Gathering"}},
	{5, "Chikipi", "https://palworld.wiki.gg/images/thumb/f/f4/Chikipi_menu.png/200px-Chikipi_menu.png", "Normal", []string{"Farming", "Gathering"}},
}

var traits = []string{
	"Diligent", "Brave", "Lucky", "Energetic", "Clever",
	"Friendly", "Cautious", "Strong", "Swift", "Resilient",
}

// Templates returns the template catalogue.
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		t.WorkSuitability = slices.Clone(t.WorkSuitability)
		out[i] = t
	}
	return out
}

// TemplateByID looks a template up.
func TemplateByID(id int) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Traits returns the trait catalogue.
func Traits() []string { return slices.Clone(traits) }

// Draft is the state of the creation form.
type Draft struct {
	TemplateID      int      `json:"template_id" yaml:"template_id"`
	Name            string   `json:"name" yaml:"name"`
	Traits          []string `json:"traits" yaml:"traits"`
	HealthPoints    int      `json:"health_points" yaml:"health_points"`
	WorkSuitability []string `json:"work_suitability" yaml:"work_suitability"`
}

// NewDraft returns an empty form.
func NewDraft() *Draft {
	return &Draft{HealthPoints: DefaultHealth}
}

// SelectTemplate picks the template and copies its work suitability.
func (d *Draft) SelectTemplate(id int) error {
	t, ok := TemplateByID(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown template %d", id)
	}
	d.TemplateID = t.ID
	d.WorkSuitability = t.WorkSuitability
	return nil
}

// SetName sets the agent name.
func (d *Draft) SetName(name string) { d.Name = name }

// ToggleTrait removes trait if selected, otherwise appends it. Selections
// beyond MaxTraits are dropped.
func (d *Draft) ToggleTrait(trait string) error {
	if !slices.Contains(traits, trait) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown trait %q", trait)
	}
	if i := slices.Index(d.Traits, trait); i >= 0 {
		d.Traits = slices.Delete(slices.Clone(d.Traits), i, i+1)
		return nil
	}
	next := append(slices.Clone(d.Traits), trait)
	d.Traits = next[:min(len(next), MaxTraits)]
	return nil
}

// Validate reports the first problem with the draft: a missing template,
// then a missing name, then an empty trait selection.
func (d *Draft) Validate() error {
	if d.TemplateID == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "please select a template")
	}
	if d.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "please enter a name")
	}
	if err := errors.ValidateName(d.Name); err != nil {
		return err
	}
	if len(d.Traits) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "please select at least one trait")
	}
	return errors.ValidatePercent("health_points", d.HealthPoints)
}

// Agent builds the node for a valid draft. parent may be nil for a new
// root; otherwise the agent is one generation below it.
func (d *Draft) Agent(id int, parent *genealogy.Node) (*genealogy.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	t, _ := TemplateByID(d.TemplateID)
	n := &genealogy.Node{
		ID:           id,
		Name:         d.Name,
		Image:        t.Image,
		Generation:   1,
		TEEStatus:    genealogy.TEERunning,
		Traits:       slices.Clone(d.Traits),
		HealthPoints: d.HealthPoints,
	}
	if parent != nil {
		n.Parent = parent.Name
		n.Generation = parent.Generation + 1
	}
	return n, nil
}

// NextID returns an id not used anywhere in the tree rooted at root.
func NextID(root *genealogy.Node) int {
	next := 1
	genealogy.Walk(root, func(n, _ *genealogy.Node, _ int) bool {
		next = max(next, n.ID+1)
		return true
	})
	return next
}
