package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/service"
)

// QAPort is the TUI-facing subset of the QA service.
type QAPort interface {
	Ask(ctx context.Context, query string) (service.Answer, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  QAPort
	input    textinput.Model
	viewport viewport.Model
	answer   *service.Answer
	status   string
	cursor   int // -1 shows the answer, 0..n-1 shows a source
	ready    bool
}

// New creates a new chat TUI model.
func New(svc QAPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a legal question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := "Ready."
	if banner != "" {
		status = banner
	}
	return Model{service: svc, input: ti, viewport: vp, status: status, cursor: -1}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderBody())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				ans, err := m.service.Ask(context.Background(), q)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.answer = nil
				} else {
					m.answer = &ans
					m.cursor = -1
					m.status = statusFor(ans, q)
					m.input.SetValue("")
				}
				m.viewport.SetContent(m.renderBody())
				return m, nil
			}
		case "down":
			if m.answer != nil && len(m.answer.Sources) > 0 {
				m.cursor++
				if m.cursor >= len(m.answer.Sources) {
					m.cursor = -1
				}
				m.viewport.SetContent(m.renderBody())
				return m, nil
			}
		case "up":
			if m.answer != nil && len(m.answer.Sources) > 0 {
				m.cursor--
				if m.cursor < -1 {
					m.cursor = len(m.answer.Sources) - 1
				}
				m.viewport.SetContent(m.renderBody())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Legal Chatbot")
	body := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderBody() string {
	if m.answer == nil {
		return "Ask a question to get started.\nUse up/down to flip between the answer and its sources."
	}
	if m.cursor < 0 || m.cursor >= len(m.answer.Sources) {
		return m.answer.Text
	}
	src := m.answer.Sources[m.cursor]
	name := src.Document.Title
	if name == "" {
		name = src.Document.Filename
	}
	title := titleStyle.Render(fmt.Sprintf("Source %d/%d  %s, page %d  (distance %.3f)",
		m.cursor+1, len(m.answer.Sources), name, src.Chunk.Page, src.Distance))
	return title + "\n\n" + src.Chunk.Text
}

func statusFor(ans service.Answer, query string) string {
	switch {
	case ans.NoIndex:
		return "No index available; answered without retrieval."
	case ans.Generated:
		return fmt.Sprintf("Answer for %q (%d sources)", query, len(ans.Sources))
	default:
		return fmt.Sprintf("Extractive answer for %q (%d sources)", query, len(ans.Sources))
	}
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
