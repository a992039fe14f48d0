package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:      "catppuccin-mocha",
			Mouse:      true,
			DateFormat: "relative",
		},
		Graph: GraphConfig{
			ProtectedBranches: []string{"main", "master"},
			IncludeRemotes:    false,
			MaxCommits:        1000,
		},
		Keybindings: KeybindingsConfig{
			Quit:     []string{"q", "ctrl+c"},
			Help:     []string{"?"},
			Branch:   []string{"b"},
			Reload:   []string{"r"},
			Copy:     []string{"y"},
			Clear:    []string{"esc"},
			Up:       []string{"k", "up"},
			Down:     []string{"j", "down"},
			Top:      []string{"g", "home"},
			Bottom:   []string{"G", "end"},
			PageUp:   []string{"ctrl+u"},
			PageDown: []string{"ctrl+d"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads ~/.config/gitlanes/config.yaml over the defaults. A missing file
// is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	v := newViper()
	v.AddConfigPath(filepath.Join(home, ".config", "gitlanes"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GITLANES")
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return config, nil
}
