package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 99
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRejectsUnsupportedSwitchMode(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
tabs:
  switch_mode: sideways
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "switch_mode") {
		t.Fatalf("expected switch_mode error, got %v", err)
	}
}

func TestLoadRejectsUnknownDefaultProfile(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
default_profile: missing
profiles:
  - name: default
    command: /bin/sh
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "default_profile") {
		t.Fatalf("expected default_profile error, got %v", err)
	}
}

func TestLoadRejectsDuplicateProfiles(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
profiles:
  - name: default
    command: /bin/sh
  - name: default
    command: /bin/bash
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "duplicate profile") {
		t.Fatalf("expected duplicate profile error, got %v", err)
	}
}

func TestLoadOverridesPaneTuning(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
tabs:
  switch_mode: mru
panes:
  default_split_ratio: 0.3
  resize_step: 0.02
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tabs.SwitchMode != "mru" {
		t.Fatalf("expected mru switch mode, got %q", cfg.Tabs.SwitchMode)
	}
	if cfg.Panes.DefaultSplitRatio != 0.3 {
		t.Fatalf("expected ratio override, got %v", cfg.Panes.DefaultSplitRatio)
	}
	if cfg.Panes.ResizeStep != 0.02 {
		t.Fatalf("expected resize step override, got %v", cfg.Panes.ResizeStep)
	}
	if cfg.Panes.MinSplitRatio != 0.1 {
		t.Fatalf("expected default min ratio, got %v", cfg.Panes.MinSplitRatio)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected default config version, got %d", cfg.ConfigVersion)
	}
	if len(cfg.Profiles) == 0 {
		t.Fatalf("expected a default profile")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$UID/$GID/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if strings.Contains(value, "$UID") || strings.Contains(value, "$GID") {
		t.Fatalf("expected UID/GID expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
