package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/tabdeck/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion  int             `mapstructure:"config_version" yaml:"config_version"`
	StateDir       string          `mapstructure:"state_dir" yaml:"state_dir"`
	DefaultProfile string          `mapstructure:"default_profile" yaml:"default_profile"`
	Profiles       []ProfileConfig `mapstructure:"profiles" yaml:"profiles"`
	Tabs           TabsConfig      `mapstructure:"tabs" yaml:"tabs"`
	Panes          PanesConfig     `mapstructure:"panes" yaml:"panes"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ProfileConfig describes one content profile.
type ProfileConfig struct {
	Name       string            `mapstructure:"name" yaml:"name"`
	Title      string            `mapstructure:"title" yaml:"title"`
	Command    string            `mapstructure:"command" yaml:"command"`
	Args       []string          `mapstructure:"args" yaml:"args"`
	WorkingDir string            `mapstructure:"working_dir" yaml:"working_dir"`
	Env        map[string]string `mapstructure:"env" yaml:"env"`
}

// TabsConfig controls tab collection behavior.
type TabsConfig struct {
	SwitchMode  string `mapstructure:"switch_mode" yaml:"switch_mode"`
	TitleMax    int    `mapstructure:"title_max" yaml:"title_max"`
	TitleSuffix string `mapstructure:"title_suffix" yaml:"title_suffix"`
}

// PanesConfig controls split tree behavior.
type PanesConfig struct {
	DefaultSplitRatio float64 `mapstructure:"default_split_ratio" yaml:"default_split_ratio"`
	MinSplitRatio     float64 `mapstructure:"min_split_ratio" yaml:"min_split_ratio"`
	ResizeStep        float64 `mapstructure:"resize_step" yaml:"resize_step"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return Config{
		ConfigVersion:  CurrentConfigVersion,
		StateDir:       filepath.Join(home, ".tabdeck", "state"),
		DefaultProfile: "default",
		Profiles: []ProfileConfig{
			{
				Name:    "default",
				Title:   "shell",
				Command: shell,
			},
		},
		Tabs: TabsConfig{
			SwitchMode:  string(schema.SwitchInOrder),
			TitleMax:    40,
			TitleSuffix: "…",
		},
		Panes: PanesConfig{
			DefaultSplitRatio: 0.5,
			MinSplitRatio:     0.1,
			ResizeStep:        0.05,
		},
	}, nil
}

// ServiceConfig maps the file configuration onto the core service settings.
func (c Config) ServiceConfig() schema.ServiceConfig {
	return schema.ServiceConfig{
		StateDir:          c.StateDir,
		DefaultProfile:    schema.ProfileID(c.DefaultProfile),
		SwitchMode:        schema.SwitchMode(c.Tabs.SwitchMode),
		DefaultSplitRatio: c.Panes.DefaultSplitRatio,
		MinSplitRatio:     c.Panes.MinSplitRatio,
		ResizeStep:        c.Panes.ResizeStep,
		TabTitleMax:       c.Tabs.TitleMax,
		TabTitleSuffix:    c.Tabs.TitleSuffix,
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tabdeck", "config.yaml"), nil
}
