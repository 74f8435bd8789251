package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	processingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("textproc queue"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("connection error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(statusBarStyle.Render(fmt.Sprintf(
		"%d total | %d pending | %d processing | %d completed | %d failed",
		m.status.Total, m.status.Pending, m.status.Processing, m.status.Completed, m.status.Failed,
	)))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(pendingStyle.Render("no tasks"))
		b.WriteString("\n")
	}

	end := m.scroll + m.visibleRows()
	if end > len(m.tasks) {
		end = len(m.tasks)
	}
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pendingStyle.Render("j/k navigate · r refresh · q quit"))
	return b.String()
}

func (m Model) renderRow(i int) string {
	t := m.tasks[i]

	status := t.Status
	switch t.Status {
	case "processing":
		status = processingStyle.Render(fmt.Sprintf("%s %3d%%", t.Status, t.Progress))
	case "pending":
		status = pendingStyle.Render(t.Status)
	case "completed":
		status = completedStyle.Render(t.Status)
	case "failed":
		status = failedStyle.Render(t.Status)
	}

	line := fmt.Sprintf("#%-4d %-16s %-30s %s", t.ID, t.Kind, truncate(t.Title, 30), status)
	if t.Error != "" {
		line += " " + errStyle.Render(truncate(t.Error, 40))
	}

	if i == m.selectedRow {
		return selectedStyle.Render(line)
	}
	return line
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
