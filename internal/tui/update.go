package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	keyNext = key.NewBinding(key.WithKeys("tab", "down", "enter"))
	keyPrev = key.NewBinding(key.WithKeys("shift+tab", "up"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ClaimLoadedMsg:
		m.err = nil
		m.SetClaim(msg.Claim)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleKeyPress processes navigation keys and forwards the rest to the
// focused input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit
	case key.Matches(msg, keyNext):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, keyPrev):
		return m, m.setFocus(m.focus - 1)
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() != before {
		m.recompute()
	}
	return m, cmd
}
