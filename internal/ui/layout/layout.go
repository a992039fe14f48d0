package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

type Layout struct {
	width  int
	height int
	theme  styles.Theme
}

func New(width, height int, theme styles.Theme) *Layout {
	return &Layout{
		width:  width,
		height: height,
		theme:  theme,
	}
}

// Calculate returns the usable inner dimensions of the history panel when
// extraHeight rows are reserved for inline panels above the status bar.
func (l *Layout) Calculate(extraHeight int) (contentWidth, contentHeight int) {
	// 1 status bar row, 2 border rows.
	contentHeight = max(l.height-1-2-extraHeight, 3)
	contentWidth = max(l.width-2, 10)
	return
}

// Render stacks the titled history panel, an optional inline panel and the
// status bar, filling the whole terminal with the theme background.
func (l *Layout) Render(title, mainPanel, extraPanel, statusBar string) string {
	extraHeight := 0
	if extraPanel != "" {
		extraHeight = lipgloss.Height(extraPanel)
	}
	contentW, contentH := l.Calculate(extraHeight)

	border := lipgloss.RoundedBorder()
	box := lipgloss.NewStyle().
		BorderStyle(border).
		BorderTop(false).
		BorderForeground(l.theme.Border).
		BorderBackground(l.theme.Background).
		Background(l.theme.Background).
		Width(contentW).
		Height(contentH).
		Render(mainPanel)

	parts := []string{l.topBorder(border, title, contentW), box}
	if extraPanel != "" {
		parts = append(parts, extraPanel)
	}
	parts = append(parts, statusBar)

	return lipgloss.Place(
		l.width, l.height,
		lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
		lipgloss.WithWhitespaceBackground(l.theme.Background),
	)
}

// topBorder draws "╭─ title ───╮" spanning the panel width.
func (l *Layout) topBorder(border lipgloss.Border, title string, innerWidth int) string {
	edge := lipgloss.NewStyle().Foreground(l.theme.Border).Background(l.theme.Background)
	label := lipgloss.NewStyle().Foreground(l.theme.Foreground).Background(l.theme.Background).Bold(true).
		Render(" " + title + " ")

	fill := innerWidth - 1 - lipgloss.Width(label)
	if fill < 0 {
		return edge.Render(border.TopLeft + strings.Repeat(border.Top, innerWidth) + border.TopRight)
	}
	return edge.Render(border.TopLeft+border.Top) + label + edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}
