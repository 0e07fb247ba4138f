package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pkt.systems/tabdeck/schema"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("default_profile", cfg.DefaultProfile)
	v.SetDefault("tabs.switch_mode", cfg.Tabs.SwitchMode)
	v.SetDefault("tabs.title_max", cfg.Tabs.TitleMax)
	v.SetDefault("tabs.title_suffix", cfg.Tabs.TitleSuffix)
	v.SetDefault("panes.default_split_ratio", cfg.Panes.DefaultSplitRatio)
	v.SetDefault("panes.min_split_ratio", cfg.Panes.MinSplitRatio)
	v.SetDefault("panes.resize_step", cfg.Panes.ResizeStep)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if os.IsNotExist(err) {
				err = nil
			} else {
				return Config{}, err
			}
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
		if v.IsSet("profiles") {
			cfg.Profiles = nil
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch schema.SwitchMode(cfg.Tabs.SwitchMode) {
	case schema.SwitchInOrder, schema.SwitchMostRecentlyUsed, schema.SwitchDisabled:
	default:
		return fmt.Errorf("unsupported tabs.switch_mode %q", cfg.Tabs.SwitchMode)
	}
	if cfg.Panes.DefaultSplitRatio <= 0 || cfg.Panes.DefaultSplitRatio >= 1 {
		return fmt.Errorf("panes.default_split_ratio must be in (0,1)")
	}
	if cfg.Panes.MinSplitRatio <= 0 || cfg.Panes.MinSplitRatio >= 0.5 {
		return fmt.Errorf("panes.min_split_ratio must be in (0,0.5)")
	}
	if cfg.Panes.ResizeStep <= 0 || cfg.Panes.ResizeStep >= 0.5 {
		return fmt.Errorf("panes.resize_step must be in (0,0.5)")
	}
	seen := make(map[string]bool, len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		if profile.Name == "" {
			return fmt.Errorf("profiles entries require a name")
		}
		if seen[profile.Name] {
			return fmt.Errorf("duplicate profile %q", profile.Name)
		}
		seen[profile.Name] = true
	}
	if cfg.DefaultProfile != "" && len(cfg.Profiles) > 0 && !seen[cfg.DefaultProfile] {
		return fmt.Errorf("default_profile %q is not in profiles", cfg.DefaultProfile)
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.StateDir = expandEnv(cfg.StateDir)
	for i := range cfg.Profiles {
		cfg.Profiles[i].Command = expandEnv(cfg.Profiles[i].Command)
		cfg.Profiles[i].WorkingDir = expandEnv(cfg.Profiles[i].WorkingDir)
	}
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
