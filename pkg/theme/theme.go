// Package theme holds the colour palette used by the renderers and the TUI.
//
// The palette is passed explicitly to whoever draws; there is no global
// theme state. [Default] returns the product palette, and pkg/config lets
// users override individual colours.
package theme

import (
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/evotree/pkg/errors"
)

// Theme is a set of CSS hex colours (#RGB, #RRGGBB or #RRGGBBAA).
type Theme struct {
	Primary    string `toml:"primary" json:"primary" yaml:"primary"`
	Secondary  string `toml:"secondary" json:"secondary" yaml:"secondary"`
	Accent     string `toml:"accent" json:"accent" yaml:"accent"`
	Background string `toml:"background" json:"background" yaml:"background"`
	Card       string `toml:"card" json:"card" yaml:"card"`
	Text       string `toml:"text" json:"text" yaml:"text"`
	Success    string `toml:"success" json:"success" yaml:"success"`
	Warning    string `toml:"warning" json:"warning" yaml:"warning"`
	Danger     string `toml:"danger" json:"danger" yaml:"danger"`
	Border     string `toml:"border" json:"border" yaml:"border"`
	Hover      string `toml:"hover" json:"hover" yaml:"hover"`
	ModalBg    string `toml:"modal_bg" json:"modal_bg" yaml:"modal_bg"`
}

// Default returns the bright blue/green/orange palette.
func Default() Theme {
	return Theme{
		Primary:    "#4AABFF",
		Secondary:  "#7CEFA5",
		Accent:     "#FFB156",
		Background: "#1A2B45",
		Card:       "#2A3C5A",
		Text:       "#FFFFFF",
		Success:    "#7CEFA5",
		Warning:    "#FFB156",
		Danger:     "#FF6B6B",
		Border:     "#4AABFF33",
		Hover:      "#4AABFF22",
		ModalBg:    "#1A2B45E6",
	}
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate checks that every colour is a hex colour.
func (t Theme) Validate() error {
	for _, c := range t.colors() {
		if !hexColorRe.MatchString(c.value) {
			return errors.New(errors.ErrCodeInvalidConfig, "theme.%s: invalid colour %q", c.name, c.value)
		}
	}
	return nil
}

type namedColor struct{ name, value string }

func (t Theme) colors() []namedColor {
	return []namedColor{
		{"primary", t.Primary},
		{"secondary", t.Secondary},
		{"accent", t.Accent},
		{"background", t.Background},
		{"card", t.Card},
		{"text", t.Text},
		{"success", t.Success},
		{"warning", t.Warning},
		{"danger", t.Danger},
		{"border", t.Border},
		{"hover", t.Hover},
		{"modal_bg", t.ModalBg},
	}
}

// HealthColor picks the colour for a health bar: success above 70,
// warning above 30, danger otherwise.
func (t Theme) HealthColor(health int) string {
	switch {
	case health > 70:
		return t.Success
	case health > 30:
		return t.Warning
	default:
		return t.Danger
	}
}

// Opaque strips the alpha channel from an #RRGGBBAA colour. Terminals
// cannot blend, so the TUI uses opaque variants.
func Opaque(color string) string {
	if len(color) == 9 {
		return color[:7]
	}
	return color
}

// Flatten composites color over an opaque background and returns the
// resulting opaque #rrggbb colour. rsvg-convert and terminals do not honour
// the alpha byte of #RRGGBBAA, so translucent palette entries are flattened
// before they are drawn.
func Flatten(color, background string) (string, error) {
	alpha := 1.0
	if len(color) == 9 {
		a, err := strconv.ParseUint(color[7:], 16, 8)
		if err != nil {
			return "", errors.New(errors.ErrCodeInvalidInput, "invalid alpha in %q", color)
		}
		alpha = float64(a) / 255
	}
	fg, err := colorful.Hex(Opaque(color))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse colour %q", color)
	}
	bg, err := colorful.Hex(Opaque(background))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse colour %q", background)
	}
	return bg.BlendRgb(fg, alpha).Clamped().Hex(), nil
}

// Solid is Flatten for palettes that already passed Validate. It returns
// color unchanged if either colour cannot be parsed.
func Solid(color, background string) string {
	out, err := Flatten(color, background)
	if err != nil {
		return color
	}
	return out
}
