package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	weakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	releasedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateInputValue
)

type interactiveModel struct {
	session  *session
	input    textinput.Model
	pendOp   string // "new" or "adopt" while entering a value
	selected int
	state    modelState
	lastErr  error
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "payload value"
	ti.Prompt = "value: "
	ti.Width = 40
	return &interactiveModel{
		session: newSession(),
		input:   ti,
		state:   stateList,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateInputValue {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				m.lastErr = m.session.apply(m.pendOp + "=" + m.input.Value())
				m.input.Blur()
				m.input.SetValue("")
				m.state = stateList
				return m, nil
			case "esc":
				m.input.Blur()
				m.input.SetValue("")
				m.state = stateList
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.session.handles)-1 {
				m.selected++
			}

		case "n":
			m.pendOp = "new"
			m.state = stateInputValue
			m.input.Focus()
			return m, textinput.Blink

		case "a":
			m.pendOp = "adopt"
			m.state = stateInputValue
			m.input.Focus()
			return m, textinput.Blink

		case "c":
			m.lastErr = m.applySelected("clone")

		case "d":
			m.lastErr = m.applySelected("downgrade")

		case "l":
			m.lastErr = m.applySelected("lock")

		case "r":
			m.lastErr = m.applySelected("release")
		}
	}

	return m, nil
}

func (m *interactiveModel) applySelected(op string) error {
	if len(m.session.handles) == 0 {
		return fmt.Errorf("no handles yet, press n to create one")
	}
	return m.session.apply(fmt.Sprintf("%s=%d", op, m.selected+1))
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ptrwatch"))
	b.WriteString(fmt.Sprintf("  live blocks: %d\n\n", m.session.reg.Live()))

	if len(m.session.handles) == 0 {
		b.WriteString(helpStyle.Render("no handles yet"))
		b.WriteString("\n")
	}
	for i, h := range m.session.handles {
		line := h.describe()
		switch {
		case i == m.selected:
			line = selectedStyle.Render("> " + line)
		case h.released:
			line = releasedStyle.Render("  " + line)
		case h.weak:
			line = weakStyle.Render("  " + line)
		default:
			line = handleStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.state == stateInputValue {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s payload\n", m.pendOp))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter confirm • esc cancel"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\nEvents:\n")
	events := m.session.log
	if len(events) > 8 {
		events = events[len(events)-8:]
	}
	for _, e := range events {
		b.WriteString(eventStyle.Render("  " + e))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • n new • a adopt • c clone • d downgrade • l lock • r release • q quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
