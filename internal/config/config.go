package config

type Config struct {
	UI          UIConfig          `yaml:"ui" mapstructure:"ui"`
	Graph       GraphConfig       `yaml:"graph" mapstructure:"graph"`
	Keybindings KeybindingsConfig `yaml:"keybindings" mapstructure:"keybindings"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

type UIConfig struct {
	Theme string `yaml:"theme" mapstructure:"theme"`
	Mouse bool   `yaml:"mouse" mapstructure:"mouse"`
	// DateFormat is "relative" or a Go time layout.
	DateFormat string `yaml:"date_format" mapstructure:"date_format"`
}

type GraphConfig struct {
	// DefaultBranch overrides the branch flagged as default. Empty means the
	// branch HEAD points at.
	DefaultBranch string `yaml:"default_branch" mapstructure:"default_branch"`
	// SelectedBranch is the initial priority hint.
	SelectedBranch string `yaml:"selected_branch" mapstructure:"selected_branch"`
	// ProtectedBranches are labelled as protected.
	ProtectedBranches []string `yaml:"protected_branches" mapstructure:"protected_branches"`
	IncludeRemotes    bool     `yaml:"include_remotes" mapstructure:"include_remotes"`
	MaxCommits        int      `yaml:"max_commits" mapstructure:"max_commits"`
	// Palette overrides the theme's lane colors.
	Palette []string `yaml:"palette" mapstructure:"palette"`
}

type KeybindingsConfig struct {
	Quit     []string `yaml:"quit" mapstructure:"quit"`
	Help     []string `yaml:"help" mapstructure:"help"`
	Branch   []string `yaml:"branch" mapstructure:"branch"`
	Reload   []string `yaml:"reload" mapstructure:"reload"`
	Copy     []string `yaml:"copy" mapstructure:"copy"`
	Clear    []string `yaml:"clear" mapstructure:"clear"`
	Up       []string `yaml:"up" mapstructure:"up"`
	Down     []string `yaml:"down" mapstructure:"down"`
	Top      []string `yaml:"top" mapstructure:"top"`
	Bottom   []string `yaml:"bottom" mapstructure:"bottom"`
	PageUp   []string `yaml:"page_up" mapstructure:"page_up"`
	PageDown []string `yaml:"page_down" mapstructure:"page_down"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}
