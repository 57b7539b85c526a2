package cards

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/theme"
)

const (
	cardPadding  = 16.0
	cardRadius   = 12.0
	avatarRadius = 20.0
	badgeHeight  = 22.0
	tagHeight    = 20.0
	tagGap       = 6.0
	tagCharWidth = 6.5
	barHeight    = 8.0
)

// card holds everything needed to draw one agent.
type card struct {
	ID         int
	X, Y, W, H float64
	Name       string

	// Known is false when the placement has no matching tree node.
	Known      bool
	Generation int
	Traits     []string
	Health     int
	MarketCap  float64
	Balance    float64
	SubAgents  int
}

func newCard(p layout.Placement, cfg layout.Config, n *genealogy.Node) card {
	c := card{ID: p.ID, X: p.X, Y: p.Y, W: cfg.CardWidth, H: cfg.CardHeight, Name: p.Name}
	if n == nil {
		return c
	}
	c.Known = true
	c.Generation = n.Generation
	c.Traits = n.Traits
	c.Health = n.HealthPoints
	c.MarketCap = n.MarketCap
	c.Balance = n.Balance
	c.SubAgents = len(n.Children)
	return c
}

func renderCard(buf *bytes.Buffer, r *svgRenderer, c card) {
	t := r.theme
	cardFill := theme.Opaque(t.Card)
	border := theme.Solid(t.Border, cardFill)
	text := theme.Opaque(t.Text)

	fmt.Fprintf(buf, `  <g id="node-%d">`+"\n", c.ID)
	fmt.Fprintf(buf, `    <rect class="card" id="card-%d" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		c.ID, num(c.X), num(c.Y), num(c.W), num(c.H), num(cardRadius), cardFill, border)

	renderHeader(buf, r, c)

	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="20" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(c.X+c.W/2), num(c.Y+78), fontFamily, text, escapeXML(c.Name))

	if r.details && c.Known {
		renderTraits(buf, r, c)
		renderHealth(buf, r, c)
		renderFinancials(buf, r, c)
	}
	buf.WriteString("  </g>\n")
}

func renderHeader(buf *bytes.Buffer, r *svgRenderer, c card) {
	t := r.theme
	cx, cy := c.X+cardPadding+avatarRadius, c.Y+cardPadding+avatarRadius
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		num(cx), num(cy), num(avatarRadius), theme.Opaque(t.Background), theme.Opaque(t.Accent))
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="18" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(cx), num(cy), fontFamily, theme.Opaque(t.Accent), escapeXML(initial(c.Name)))

	if !c.Known {
		return
	}
	badgeY := c.Y + cardPadding + avatarRadius - badgeHeight/2
	gen := fmt.Sprintf("GEN_%d", c.Generation)
	w := badgeWidth(gen)
	renderBadge(buf, c.X+c.W-cardPadding-w, badgeY, w, gen, theme.Opaque(t.Primary), theme.Opaque(t.Text))

	if r.details && c.SubAgents > 0 {
		label := fmt.Sprintf("%d Sub-agents", c.SubAgents)
		w := badgeWidth(label)
		renderBadge(buf, c.X+(c.W-w)/2, badgeY, w, label, theme.Opaque(t.Success), theme.Opaque(t.Background))
	}
}

func renderBadge(buf *bytes.Buffer, x, y, w float64, label, fill, color string) {
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(w), num(badgeHeight), num(badgeHeight/2), fill)
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="12" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(x+w/2), num(y+badgeHeight/2), fontFamily, color, escapeXML(label))
}

// renderTraits lays the trait tags out in one centred row, dropping the
// ones that do not fit the card.
func renderTraits(buf *bytes.Buffer, r *svgRenderer, c card) {
	avail := c.W - 2*cardPadding
	var widths []float64
	total := 0.0
	for _, tr := range c.Traits {
		w := tagWidth(tr)
		next := total + w
		if len(widths) > 0 {
			next += tagGap
		}
		if next > avail {
			break
		}
		widths = append(widths, w)
		total = next
	}

	x := c.X + (c.W-total)/2
	y := c.Y + 90
	for i, w := range widths {
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s"/>`+"\n",
			num(x), num(y), num(w), num(tagHeight), theme.Opaque(r.theme.Accent))
		fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
			num(x+w/2), num(y+tagHeight/2), fontFamily, theme.Opaque(r.theme.Background), escapeXML(c.Traits[i]))
		x += w + tagGap
	}
}

func renderHealth(buf *bytes.Buffer, r *svgRenderer, c card) {
	t := r.theme
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="11" fill="%s">Health Points</text>`+"\n",
		num(c.X+c.W/2), num(c.Y+128), fontFamily, theme.Opaque(t.Text))

	x, y := c.X+cardPadding, c.Y+136
	w := c.W - 2*cardPadding
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(w), num(barHeight), num(barHeight/2), theme.Opaque(t.Background))

	health := min(max(c.Health, 0), 100)
	if health > 0 {
		fmt.Fprintf(buf, `    <rect class="health" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
			num(x), num(y), num(w*float64(health)/100), num(barHeight), num(barHeight/2), theme.Opaque(t.HealthColor(health)))
	}
}

func renderFinancials(buf *bytes.Buffer, r *svgRenderer, c card) {
	t := r.theme
	left, right := c.X+cardPadding, c.X+c.W-cardPadding
	labelY, valueY := c.Y+164, c.Y+182
	text := theme.Opaque(t.Text)

	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="%s" font-size="10" fill="%s">Market Cap</text>`+"\n",
		num(left), num(labelY), fontFamily, text)
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="%s" font-size="13" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(left), num(valueY), fontFamily, theme.Opaque(t.Accent), genealogy.FormatUSD(c.MarketCap))
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="end" font-family="%s" font-size="10" fill="%s">Balance</text>`+"\n",
		num(right), num(labelY), fontFamily, text)
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="end" font-family="%s" font-size="13" font-weight="bold" fill="%s">%s</text>`+"\n",
		num(right), num(valueY), fontFamily, theme.Opaque(t.Secondary), genealogy.FormatUSD(c.Balance))
}

func badgeWidth(label string) float64 {
	return 16 + float64(utf8.RuneCountInString(label))*7.5
}

func tagWidth(label string) float64 {
	return 12 + float64(utf8.RuneCountInString(label))*tagCharWidth
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
