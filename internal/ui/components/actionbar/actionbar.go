package actionbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/lanes"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

type Model struct {
	styles   *styles.Styles
	message  string
	selected string
	result   *lanes.Result
	width    int
}

func New(styles *styles.Styles, width int) Model {
	return Model{
		styles: styles,
		width:  width,
	}
}

func (m Model) View() string {
	left := m.styles.Help.Render("[b]ranch  [r]eload  [y]ank  [?]help")
	if m.message != "" {
		left = m.styles.Help.Render(m.message)
	}

	right := m.styles.BranchName.Render(m.status())
	if m.result != nil && m.result.FailedCommits > 0 {
		right = m.styles.Warning.Render(fmt.Sprintf("%d skipped ", m.result.FailedCommits)) + right
	}

	padding := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	spacer := lipgloss.NewStyle().Width(padding).Render(" ")

	return m.styles.StatusBar.Render(left + spacer + right)
}

func (m Model) status() string {
	focus := "no focus"
	if m.selected != "" {
		focus = m.selected
	}
	if m.result == nil {
		return focus
	}
	return fmt.Sprintf("%s · %d commits · %d lanes", focus, len(m.result.Assignments), len(m.result.Lanes))
}

// SetResult shows the outcome of the latest render pass.
func (m *Model) SetResult(selected string, result *lanes.Result) {
	m.selected = selected
	m.result = result
}

func (m *Model) SetMessage(msg string) {
	m.message = msg
}

func (m *Model) ClearMessage() {
	m.message = ""
}

func (m *Model) SetWidth(width int) {
	m.width = width
}
