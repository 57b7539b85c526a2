package cli

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/explorer"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/theme"
)

// pixelsPerColumn maps terminal columns to layout pixels. The container
// width handed to the explorer is the terminal width times this factor.
const pixelsPerColumn = 8

// exploreCommand starts the interactive tree explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags treeFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the genealogy interactively",
		Long: `Browse the genealogy interactively.

Agents are drawn at their layout positions, scaled to the terminal. Select an
agent with the arrow keys and press enter to expand or collapse it; resizing
the terminal re-centres the tree. With --watch, edits to the --tree file are
picked up while exploring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				if err := flags.requirePath("--watch"); err != nil {
					return err
				}
			}
			tree, err := flags.loadTree()
			if err != nil {
				return err
			}
			expanded, err := flags.expanded(tree)
			if err != nil {
				return err
			}
			engine, err := c.newEngine()
			if err != nil {
				return err
			}
			ex, err := explorer.New(tree, engine, c.Config.Render.Width,
				explorer.WithExpanded(expanded), explorer.WithLogger(c.Logger))
			if err != nil {
				return err
			}

			p := tea.NewProgram(newExploreModel(ex, c.Config.Theme), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if watch {
				w, err := genealogy.Watch(cmd.Context(), flags.path, func(tree *genealogy.Node, err error) {
					p.Send(treeReloadedMsg{tree: tree, err: err})
				})
				if err != nil {
					return err
				}
				defer w.Close()
				c.Logger.Debug("watching tree file", "path", w.Path())
			}
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return cmd.Context().Err()
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the --tree file when it changes")
	return cmd
}

// =============================================================================
// Key bindings
// =============================================================================

type exploreKeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Toggle   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newExploreKeyMap() exploreKeyMap {
	return exploreKeyMap{
		Prev:     key.NewBinding(key.WithKeys("up", "left", "k", "h"), key.WithHelp("↑/k", "previous")),
		Next:     key.NewBinding(key.WithKeys("down", "right", "j", "l"), key.WithHelp("↓/j", "next")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎/space", "expand/collapse")),
		Expand:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "expand all")),
		Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Help, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Toggle}, {k.Expand, k.Collapse}, {k.Help, k.Quit}}
}

// =============================================================================
// Model
// =============================================================================

// exploreModel draws the explorer's current layout. The explorer pushes
// every new layout through its subscription, so the model never reads a
// stale one.
type exploreModel struct {
	ex    *explorer.Explorer
	theme theme.Theme
	keys  exploreKeyMap
	help  help.Model

	layout   layout.Layout
	selected int // id of the selected agent
	width    int
	height   int
	status   string
}

// treeReloadedMsg carries the result of rereading a watched tree file.
type treeReloadedMsg struct {
	tree *genealogy.Node
	err  error
}

func newExploreModel(ex *explorer.Explorer, t theme.Theme) *exploreModel {
	m := &exploreModel{
		ex:       ex,
		theme:    t,
		keys:     newExploreKeyMap(),
		help:     help.New(),
		layout:   ex.Layout(),
		selected: ex.Tree().ID,
		width:    int(ex.Width()) / pixelsPerColumn,
	}
	ex.Subscribe(m.onLayout)
	return m
}

func (m *exploreModel) onLayout(l layout.Layout) {
	m.layout = l
	if !l.Contains(m.selected) {
		m.selected = m.ex.Tree().ID
	}
}

func (m *exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if err := m.ex.Resize(float64(msg.Width * pixelsPerColumn)); err != nil {
			return m, nil
		}
	case treeReloadedMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.ex.SetTree(msg.tree); err != nil {
			m.status = "reload failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("reloaded %d agents", genealogy.Count(msg.tree))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
		case key.Matches(msg, m.keys.Next):
			m.move(1)
		case key.Matches(msg, m.keys.Toggle):
			if err := m.ex.Toggle(m.selected); err != nil {
				m.status = "toggle failed: " + err.Error()
			} else {
				m.status = ""
			}
		case key.Matches(msg, m.keys.Expand):
			m.ex.SetExpanded(layout.ExpandAll(m.ex.Tree()))
		case key.Matches(msg, m.keys.Collapse):
			m.ex.SetExpanded(layout.NewExpandedSet())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// move shifts the selection through the visible agents in pre-order.
func (m *exploreModel) move(delta int) {
	ps := m.layout.Placements
	if len(ps) == 0 {
		return
	}
	i := slices.IndexFunc(ps, func(p layout.Placement) bool { return p.ID == m.selected })
	i = min(max(i+delta, 0), len(ps)-1)
	m.selected = ps[i].ID
}

// =============================================================================
// View
// =============================================================================

func (m *exploreModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("AI Agent Evolution Tree"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d agents visible · %gpx", m.layout.Len(), m.layout.Width)))
	b.WriteString("\n\n")
	b.WriteString(m.viewCanvas())
	b.WriteString("\n")
	b.WriteString(m.viewDetails())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// canvasLabel is one agent placed on a canvas row.
type canvasLabel struct {
	col   int
	text  string
	style lipgloss.Style
}

// viewCanvas draws one text row per tree level, each label centred on the
// column of its card's centre.
func (m *exploreModel) viewCanvas() string {
	if m.layout.Len() == 0 {
		return ""
	}
	half := m.layout.Config.HalfCardWidth()
	levels := 0
	rows := make(map[int][]canvasLabel)
	for _, p := range m.layout.Placements {
		text := m.labelText(p)
		centre := int(math.Round((p.X + half) / pixelsPerColumn))
		rows[p.Level] = append(rows[p.Level], canvasLabel{
			col:   centre - lipgloss.Width(text)/2,
			text:  text,
			style: m.labelStyle(p),
		})
		levels = max(levels, p.Level)
	}

	lines := make([]string, 0, 2*levels+1)
	for lvl := 0; lvl <= levels; lvl++ {
		if lvl > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, drawRow(rows[lvl], m.width))
	}
	return strings.Join(lines, "\n")
}

// drawRow lays labels out left to right, skipping any that would overlap
// their left neighbour or leave the terminal.
func drawRow(labels []canvasLabel, width int) string {
	slices.SortFunc(labels, func(a, b canvasLabel) int { return a.col - b.col })

	var b strings.Builder
	cursor := 0
	for _, l := range labels {
		w := lipgloss.Width(l.text)
		if l.col < cursor || (width > 0 && l.col+w > width) {
			continue
		}
		b.WriteString(strings.Repeat(" ", l.col-cursor))
		b.WriteString(l.style.Render(l.text))
		cursor = l.col + w
	}
	return b.String()
}

func (m *exploreModel) labelText(p layout.Placement) string {
	n, _ := m.ex.Node(p.ID)
	icon := iconLeaf
	switch {
	case n.HasChildren() && m.ex.Expanded().Has(p.ID):
		icon = iconExpanded
	case n.HasChildren():
		icon = iconCollapsed
	}
	return fmt.Sprintf("%s %s", icon, p.Name)
}

func (m *exploreModel) labelStyle(p layout.Placement) lipgloss.Style {
	if p.ID == m.selected {
		return lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(theme.Opaque(m.theme.Background))).
			Background(lipgloss.Color(theme.Opaque(m.theme.Primary)))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Opaque(m.theme.Text)))
}

func (m *exploreModel) viewDetails() string {
	n, ok := m.ex.Node(m.selected)
	if !ok {
		return ""
	}
	pos, _ := m.layout.Position(n.ID)

	bar := progressbar.New(
		progressbar.WithSolidFill(theme.Opaque(m.theme.HealthColor(n.HealthPoints))),
		progressbar.WithWidth(30),
		progressbar.WithoutPercentage(),
	)

	lines := []string{
		fmt.Sprintf("%s  %s", treeNameStyle.Render(n.Name), styleGen.Render(fmt.Sprintf("GEN_%d", n.Generation))),
		traitTags(n.Traits),
		fmt.Sprintf("Health  %s %d", bar.ViewAs(float64(n.HealthPoints)/100), n.HealthPoints),
		fmt.Sprintf("Market cap %s   Balance %s",
			StyleNumber.Render(genealogy.FormatUSD(n.MarketCap)),
			StyleSuccess.Render(genealogy.FormatUSD(n.Balance))),
		StyleDim.Render(fmt.Sprintf("%d sub-agents · card at (%g, %g)", len(n.Children), pos.X, pos.Y)),
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Opaque(m.theme.Primary))).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
