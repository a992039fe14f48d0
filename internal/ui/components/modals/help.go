package modals

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

type HelpModal struct {
	styles  *styles.Styles
	visible bool
}

func NewHelpModal(styles *styles.Styles) HelpModal {
	return HelpModal{styles: styles}
}

const helpText = `Navigation:
  j/↓       Move down
  k/↑       Move up
  g/Home    Go to top
  G/End     Go to bottom
  Ctrl+D    Page down
  Ctrl+U    Page up

Graph:
  b         Focus a branch
  Esc       Clear focus
  r         Reload history
  y         Copy commit id
  Enter     Show commit summary

General:
  ?         Toggle help
  q/Ctrl+C  Quit`

// Height returns the number of terminal rows this component occupies when visible.
func (m HelpModal) Height() int {
	if !m.visible {
		return 0
	}
	return lipgloss.Height(m.View())
}

func (m HelpModal) View() string {
	if !m.visible {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Keybindings"),
		"",
		m.styles.Help.Render(strings.TrimSpace(helpText)),
	)
	return m.styles.PanelFocused.Render(content)
}

func (m *HelpModal) Toggle() {
	m.visible = !m.visible
}

func (m *HelpModal) IsVisible() bool {
	return m.visible
}
