package styles

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Theme        Theme
	PanelFocused lipgloss.Style
	Title        lipgloss.Style
	StatusBar    lipgloss.Style
	BranchName   lipgloss.Style
	Warning      lipgloss.Style
	Help         lipgloss.Style
}

func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,
		PanelFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Head).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Subtext).
			Background(theme.Selection).
			Padding(0, 1),
		BranchName: lipgloss.NewStyle().
			Foreground(theme.BranchFeature).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(theme.BranchHotfix),
		Help: lipgloss.NewStyle().
			Foreground(theme.Subtext),
	}
}
