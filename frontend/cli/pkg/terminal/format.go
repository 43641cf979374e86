package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kvisle/taskbridge/backend/task"
)

var (
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)

	todoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	doneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

func Bold(s string) string {
	return boldStyle.Render(s)
}

func Dim(s string) string {
	return dimStyle.Render(s)
}

// ColorStatus renders a lifecycle label in its conventional color: yellow
// for TODO, blue for IN PROGRESS, green for DONE. Unknown labels pass
// through unstyled.
func ColorStatus(status task.Status) string {
	switch status {
	case task.StatusTodo:
		return todoStyle.Render(string(status))
	case task.StatusInProgress:
		return inProgressStyle.Render(string(status))
	case task.StatusDone:
		return doneStyle.Render(string(status))
	}
	return string(status)
}
