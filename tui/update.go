package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refreshCmd()
		case "j", "down":
			if m.selectedRow < len(m.tasks)-1 {
				m.selectedRow++
			}
			if m.selectedRow >= m.scroll+m.visibleRows() {
				m.scroll = m.selectedRow - m.visibleRows() + 1
			}
		case "k", "up":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			if m.selectedRow < m.scroll {
				m.scroll = m.selectedRow
			}
		case "g":
			m.selectedRow = 0
			m.scroll = 0
		case "G":
			m.selectedRow = len(m.tasks) - 1
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshMsg:
		m.tasks = msg.tasks
		m.status = msg.status
		m.err = msg.err
		m.lastRefresh = time.Now()
		if m.selectedRow >= len(m.tasks) && len(m.tasks) > 0 {
			m.selectedRow = len(m.tasks) - 1
		}
		return m, tickCmd()

	case tickMsg:
		return m, m.refreshCmd()
	}

	return m, nil
}

func (m Model) visibleRows() int {
	// Header, status line and footer take up vertical space
	rows := m.height - 6
	if rows < 1 {
		return 1
	}
	return rows
}
