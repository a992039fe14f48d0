package modals

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/ui/styles"
)

const maxVisibleBranches = 10

// BranchModal picks the branch whose lanes win ties in the diagram.
type BranchModal struct {
	styles   *styles.Styles
	visible  bool
	width    int
	branches []*history.Branch
	selected string
	cursor   int
}

func NewBranchModal(s *styles.Styles) BranchModal {
	return BranchModal{
		styles: s,
		width:  80,
	}
}

// Height returns the number of terminal rows this component occupies when visible.
func (m BranchModal) Height() int {
	if !m.visible {
		return 0
	}
	rows := min(len(m.branches), maxVisibleBranches)
	if rows < 1 {
		rows = 1
	}
	return rows + 3 // border(2) + title(1) + branch rows
}

// View renders the inline branch picker panel.
func (m BranchModal) View() string {
	if !m.visible {
		return ""
	}

	theme := m.styles.Theme
	panelBg := theme.BackgroundPanel

	bgStyle := lipgloss.NewStyle().Background(panelBg)
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(panelBg).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(theme.Subtext).
		Background(panelBg).
		Italic(true)

	innerWidth := max(m.width-4, 20)

	titleText := " Focus branch"
	hintText := "Enter to focus | Esc to close"
	titleGap := innerWidth - lipgloss.Width(titleText) - lipgloss.Width(hintText)
	if titleGap < 1 {
		hintText = ""
		titleGap = max(innerWidth-lipgloss.Width(titleText), 0)
	}
	rows := []string{titleStyle.Render(titleText) + bgStyle.Width(titleGap).Render("") + hintStyle.Render(hintText)}

	visible := min(len(m.branches), maxVisibleBranches)
	// Scroll so the cursor stays in view.
	scrollStart := 0
	if m.cursor >= visible {
		scrollStart = m.cursor - visible + 1
	}

	for i := scrollStart; i < scrollStart+visible && i < len(m.branches); i++ {
		b := m.branches[i]

		bg := panelBg
		if i == m.cursor {
			bg = theme.Selection
		}
		rowBg := lipgloss.NewStyle().Background(bg)
		nameStyle := lipgloss.NewStyle().Foreground(theme.BranchFeature).Background(bg)
		if b.Default {
			nameStyle = nameStyle.Foreground(theme.BranchMain).Bold(true)
		}
		markStyle := lipgloss.NewStyle().Foreground(theme.Head).Background(bg)
		hashStyle := lipgloss.NewStyle().Foreground(theme.CommitHash).Background(bg)

		prefix := rowBg.Render("  ")
		if b.Name == m.selected {
			prefix = markStyle.Render("* ")
		}

		// Reserve: prefix(2) + hash(8) + space(1) = 11
		nameAvail := max(innerWidth-11, 6)
		name := b.Name
		if runes := []rune(name); len(runes) > nameAvail {
			name = string(runes[:nameAvail-1]) + "…"
		}

		short := b.HeadID
		if len(short) > history.ShortIDLength {
			short = short[:history.ShortIDLength]
		}
		row := prefix + nameStyle.Render(name) + hashStyle.Render(" "+short)
		rows = append(rows, lipgloss.NewStyle().Background(bg).Width(innerWidth).Render(row))
	}

	if len(m.branches) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.Subtext).Background(panelBg).Italic(true)
		rows = append(rows, emptyStyle.Render("  No branches found"))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BranchMain).
		BorderBackground(theme.Background).
		Background(panelBg).
		Width(m.width - 2).
		Render(strings.Join(rows, "\n"))
}

// Show opens the picker with the cursor on the currently selected branch.
func (m *BranchModal) Show(branches []*history.Branch, selected string) {
	m.visible = true
	m.branches = branches
	m.selected = selected
	m.cursor = 0
	for i, b := range branches {
		if b.Name == selected {
			m.cursor = i
			break
		}
	}
}

func (m *BranchModal) Hide() {
	m.visible = false
	m.branches = nil
	m.cursor = 0
}

func (m *BranchModal) IsVisible() bool {
	return m.visible
}

func (m *BranchModal) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *BranchModal) MoveDown() {
	if m.cursor < len(m.branches)-1 {
		m.cursor++
	}
}

// SelectedBranch returns the highlighted branch, or nil.
func (m *BranchModal) SelectedBranch() *history.Branch {
	if m.cursor >= 0 && m.cursor < len(m.branches) {
		return m.branches[m.cursor]
	}
	return nil
}

func (m *BranchModal) SetWidth(width int) {
	m.width = width
}
