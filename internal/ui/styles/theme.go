package styles

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	// Tiered background colors (darkest → lightest) for visual depth.
	Background        lipgloss.Color // Root/base, fills the entire terminal
	BackgroundPanel   lipgloss.Color // Panels, expanded metadata areas
	BackgroundElement lipgloss.Color // Interactive elements, hover states

	Foreground    lipgloss.Color
	Subtext       lipgloss.Color
	Border        lipgloss.Color
	Selection     lipgloss.Color
	BranchMain    lipgloss.Color
	BranchFeature lipgloss.Color
	BranchHotfix  lipgloss.Color
	Tag           lipgloss.Color
	Head          lipgloss.Color
	CommitHash    lipgloss.Color
	Graph1        lipgloss.Color
	Graph2        lipgloss.Color
	Graph3        lipgloss.Color
	Graph4        lipgloss.Color
	Graph5        lipgloss.Color
}

func CatppuccinMocha() Theme {
	return Theme{
		Background:        lipgloss.Color("#1e1e2e"), // Catppuccin Base
		BackgroundPanel:   lipgloss.Color("#181825"), // Catppuccin Mantle (panels)
		BackgroundElement: lipgloss.Color("#11111b"), // Catppuccin Crust (deepest)

		Foreground:    lipgloss.Color("#cdd6f4"),
		Subtext:       lipgloss.Color("#a6adc8"),
		Border:        lipgloss.Color("#313244"),
		Selection:     lipgloss.Color("#45475a"),
		BranchMain:    lipgloss.Color("#a6e3a1"),
		BranchFeature: lipgloss.Color("#89b4fa"),
		BranchHotfix:  lipgloss.Color("#f38ba8"),
		Tag:           lipgloss.Color("#f9e2af"),
		Head:          lipgloss.Color("#cba6f7"),
		CommitHash:    lipgloss.Color("#fab387"),
		Graph1:        lipgloss.Color("#89b4fa"),
		Graph2:        lipgloss.Color("#cba6f7"),
		Graph3:        lipgloss.Color("#94e2d5"),
		Graph4:        lipgloss.Color("#f9e2af"),
		Graph5:        lipgloss.Color("#a6e3a1"),
	}
}

func CatppuccinLatte() Theme {
	return Theme{
		Background:        lipgloss.Color("#eff1f5"),
		BackgroundPanel:   lipgloss.Color("#e6e9ef"),
		BackgroundElement: lipgloss.Color("#dce0e8"),

		Foreground:    lipgloss.Color("#4c4f69"),
		Subtext:       lipgloss.Color("#6c6f85"),
		Border:        lipgloss.Color("#ccd0da"),
		Selection:     lipgloss.Color("#bcc0cc"),
		BranchMain:    lipgloss.Color("#40a02b"),
		BranchFeature: lipgloss.Color("#1e66f5"),
		BranchHotfix:  lipgloss.Color("#d20f39"),
		Tag:           lipgloss.Color("#df8e1d"),
		Head:          lipgloss.Color("#8839ef"),
		CommitHash:    lipgloss.Color("#fe640b"),
		Graph1:        lipgloss.Color("#1e66f5"),
		Graph2:        lipgloss.Color("#8839ef"),
		Graph3:        lipgloss.Color("#179299"),
		Graph4:        lipgloss.Color("#df8e1d"),
		Graph5:        lipgloss.Color("#40a02b"),
	}
}

func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-latte":
		return CatppuccinLatte()
	default:
		return CatppuccinMocha()
	}
}

// GraphColors returns the lane colors in rotation order.
func (t Theme) GraphColors() []lipgloss.Color {
	return []lipgloss.Color{t.Graph1, t.Graph2, t.Graph3, t.Graph4, t.Graph5}
}

// LanePalette returns the configured lane colors, or the theme's own when
// none are configured.
func (t Theme) LanePalette(configured []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return t.Palette()
}

// Palette returns the lane colors as plain strings for the lane assigner.
func (t Theme) Palette() []string {
	colors := t.GraphColors()
	palette := make([]string, len(colors))
	for i, c := range colors {
		palette[i] = string(c)
	}
	return palette
}
