package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evotree/pkg/chat"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/theme"
)

// chatCommand opens a simulated conversation with one agent.
func (c *CLI) chatCommand() *cobra.Command {
	var (
		flags    treeFlags
		messages []string
	)

	cmd := &cobra.Command{
		Use:   "chat <agent>",
		Short: "Chat with an agent",
		Long: `Chat with an agent.

The agent answers every message once, after a short delay, by introducing
itself. With --message the conversation runs without a terminal UI and is
printed when every reply has arrived.`,
		Example: `  evotree chat Morpheus
  evotree chat Eve -m hello -m "who are you?"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeAgentNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := flags.loadTree()
			if err != nil {
				return err
			}
			agent, err := findAgent(tree, args[0])
			if err != nil {
				return err
			}
			delay := time.Duration(c.Config.Chat.ReplyDelay)
			if len(messages) > 0 {
				return c.runScriptedChat(cmd.Context(), agent, delay, messages)
			}

			p := tea.NewProgram(newChatModel(agent, delay, c.Config.Theme), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().StringVar(&flags.path, "tree", "", "genealogy file (.json, .yaml); default: built-in sample")
	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "send a message without the terminal UI (repeatable)")
	return cmd
}

// runScriptedChat sends every message through a chat session and prints
// the transcript once all replies are in.
func (c *CLI) runScriptedChat(ctx context.Context, agent *genealogy.Node, delay time.Duration, messages []string) error {
	session, err := chat.NewSession(agent,
		chat.WithDelay(delay),
		chat.OnReply(func(m chat.Message) { c.Logger.Debug("reply", "id", m.ID, "from", m.Sender) }),
	)
	if err != nil {
		return err
	}
	for _, text := range messages {
		if _, ok := session.Send(text); !ok {
			c.Logger.Warn("skipping blank message")
		}
	}

	spinner := newSpinner(ctx, fmt.Sprintf("%s is typing...", agent.Name))
	spinner.Start()
	session.Wait()
	spinner.Stop()

	for _, m := range session.Messages() {
		fmt.Fprintln(stdout, formatChatLine(m))
	}
	return nil
}

var (
	styleChatUser  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleChatAgent = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
)

func formatChatLine(m chat.Message) string {
	sender := styleChatAgent.Render(m.Sender)
	if m.Sender == chat.UserSender {
		sender = styleChatUser.Render(m.Sender)
	}
	return fmt.Sprintf("%s %s %s", StyleDim.Render(m.Timestamp.Format("15:04:05")), sender, m.Content)
}

// =============================================================================
// Chat TUI
// =============================================================================

// agentReplyMsg delivers a scheduled agent reply to the update loop.
type agentReplyMsg struct{ msg chat.Message }

type chatModel struct {
	agent    *genealogy.Node
	delay    time.Duration
	theme    theme.Theme
	input    textinput.Model
	viewport viewport.Model
	messages []chat.Message
	pending  int
	ready    bool
}

func newChatModel(agent *genealogy.Node, delay time.Duration, t theme.Theme) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message... (Enter to send, Esc to quit)"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return &chatModel{
		agent:    agent,
		delay:    delay,
		theme:    t,
		input:    ti,
		viewport: viewport.New(80, 20),
	}
}

func (m *chatModel) Init() tea.Cmd { return textinput.Blink }

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		const chrome = 6 // header, separators, input line
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Height-chrome, 3)
		m.input.Width = msg.Width - 4
		m.ready = true
		m.refresh()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if cmd := m.send(m.input.Value()); cmd != nil {
				cmds = append(cmds, cmd)
			}
			m.input.Reset()
			return m, tea.Batch(cmds...)
		}
	case agentReplyMsg:
		m.pending--
		m.messages = append(m.messages, msg.msg)
		m.refresh()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// send appends the user's message and schedules the agent's reply.
func (m *chatModel) send(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.messages = append(m.messages, chat.NewMessage(chat.UserSender, text, time.Now()))
	m.pending++
	m.refresh()

	agent := m.agent
	return tea.Tick(m.delay, func(t time.Time) tea.Msg {
		return agentReplyMsg{msg: chat.NewMessage(agent.Name, chat.Reply(agent), t)}
	})
}

func (m *chatModel) refresh() {
	lines := make([]string, len(m.messages))
	for i, msg := range m.messages {
		lines[i] = formatChatLine(msg)
	}
	if m.pending > 0 {
		lines = append(lines, StyleDim.Render(m.agent.Name+" is typing..."))
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(lines, "\n")))
	m.viewport.GotoBottom()
}

func (m *chatModel) View() string {
	header := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(theme.Opaque(m.theme.Text))).
		Background(lipgloss.Color(theme.Opaque(m.theme.Card))).
		Padding(0, 1).
		Render(fmt.Sprintf("%s · GEN_%d", m.agent.Name, m.agent.Generation))
	sep := StyleDim.Render(strings.Repeat("─", max(m.viewport.Width, 10)))
	return strings.Join([]string{header, sep, m.viewport.View(), sep, m.input.View()}, "\n")
}
