package config

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv(HomeEnv, filepath.Join(t.TempDir(), DirName))
	c, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestNewCreatesStructureAndDefaults(t *testing.T) {
	c := newTestConfig(t)

	for _, dir := range []string{c.Home, c.LogsDir(), c.ReportsDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
	if _, err := os.Stat(c.SettingsPath()); err != nil {
		t.Fatalf("expected default config.yaml written: %v", err)
	}
	if c.DefaultDuration() != defaultDurationMinutes {
		t.Fatalf("expected default duration %d, got %d", defaultDurationMinutes, c.DefaultDuration())
	}
	if c.Settings.Version != 1 {
		t.Fatalf("expected version 1, got %d", c.Settings.Version)
	}
}

func TestNewParsesSettingsYaml(t *testing.T) {
	home := filepath.Join(t.TempDir(), DirName)
	t.Setenv(HomeEnv, home)
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}
	settingsYAML := "version: 1\ndefault_duration_minutes: 45\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(settingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.DefaultDuration() != 45 {
		t.Fatalf("expected duration 45, got %d", c.DefaultDuration())
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	home := filepath.Join(t.TempDir(), DirName)
	t.Setenv(HomeEnv, home)
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}
	settingsYAML := "version: 1\ndefault_duration_minutes: -5\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(settingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(); err == nil {
		t.Fatal("expected validation error for negative duration")
	}
}

func TestPathsDeriveFromHome(t *testing.T) {
	c := newTestConfig(t)
	if filepath.Dir(c.DatabasePath()) != c.Home {
		t.Fatalf("database path %s not under home", c.DatabasePath())
	}
	if filepath.Dir(c.JournalPath()) != c.Home {
		t.Fatalf("journal path %s not under home", c.JournalPath())
	}
}
