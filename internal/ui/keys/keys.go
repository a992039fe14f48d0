package keys

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/gitlanes/internal/config"
)

type KeyMap struct {
	Quit     []string
	Help     []string
	Branch   []string
	Reload   []string
	Copy     []string
	Clear    []string
	Up       []string
	Down     []string
	Top      []string
	Bottom   []string
	PageUp   []string
	PageDown []string
	Enter    []string
}

// FromConfig builds the key map from the configured bindings.
func FromConfig(kb config.KeybindingsConfig) KeyMap {
	return KeyMap{
		Quit:     kb.Quit,
		Help:     kb.Help,
		Branch:   kb.Branch,
		Reload:   kb.Reload,
		Copy:     kb.Copy,
		Clear:    kb.Clear,
		Up:       kb.Up,
		Down:     kb.Down,
		Top:      kb.Top,
		Bottom:   kb.Bottom,
		PageUp:   kb.PageUp,
		PageDown: kb.PageDown,
		Enter:    []string{"enter"},
	}
}

func DefaultKeyMap() KeyMap {
	return FromConfig(config.DefaultConfig().Keybindings)
}

func MatchesKey(msg tea.KeyMsg, keys []string) bool {
	for _, key := range keys {
		if msg.String() == key {
			return true
		}
	}
	return false
}
