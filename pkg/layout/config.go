package layout

import "github.com/matzehuels/evotree/pkg/errors"

// Default geometry, in pixels.
const (
	DefaultVerticalSpacing   = 250
	DefaultHorizontalSpacing = 400
	DefaultCardWidth         = 300
	DefaultCardHeight        = 200
	DefaultTopMargin         = 50
)

// Config holds the spacing constants used by the engine.
type Config struct {
	VerticalSpacing   float64 `toml:"vertical_spacing" json:"vertical_spacing" yaml:"vertical_spacing"`
	HorizontalSpacing float64 `toml:"horizontal_spacing" json:"horizontal_spacing" yaml:"horizontal_spacing"`
	CardWidth         float64 `toml:"card_width" json:"card_width" yaml:"card_width"`
	CardHeight        float64 `toml:"card_height" json:"card_height" yaml:"card_height"`
	TopMargin         float64 `toml:"top_margin" json:"top_margin" yaml:"top_margin"`
}

// DefaultConfig returns the geometry of the explore page.
func DefaultConfig() Config {
	return Config{
		VerticalSpacing:   DefaultVerticalSpacing,
		HorizontalSpacing: DefaultHorizontalSpacing,
		CardWidth:         DefaultCardWidth,
		CardHeight:        DefaultCardHeight,
		TopMargin:         DefaultTopMargin,
	}
}

// HalfCardWidth is the offset from a card's left edge to its centre.
func (c Config) HalfCardWidth() float64 { return c.CardWidth / 2 }

// Validate rejects non-positive spacings and card sizes. TopMargin may be
// zero but not negative.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"vertical_spacing", c.VerticalSpacing},
		{"horizontal_spacing", c.HorizontalSpacing},
		{"card_width", c.CardWidth},
		{"card_height", c.CardHeight},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", chk.name, chk.value)
		}
	}
	if c.TopMargin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "top_margin cannot be negative, got %g", c.TopMargin)
	}
	return nil
}
