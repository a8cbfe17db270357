// internal/config/config.go
//
// This package handles configuration and the ~/.worklog directory structure.
// Every user running worklog gets a single dot directory holding the state
// file, generated reports, logs, and settings.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the dot directory created in the user's home.
	DirName = ".worklog"

	// HomeEnv overrides the worklog home entirely, mainly for tests and
	// relocated setups.
	HomeEnv = "WORKLOG_HOME"

	defaultDurationMinutes = 60
)

const defaultSettingsYAML = `# worklog settings
version: 1

# Minutes credited per logged entry. One check-in counts as one hour by
# default.
default_duration_minutes: 60
`

// Settings models config.yaml.
type Settings struct {
	Version                int `yaml:"version"`
	DefaultDurationMinutes int `yaml:"default_duration_minutes"`
}

// Config holds the runtime configuration for worklog.
type Config struct {
	// Home is the worklog dot directory, usually ~/.worklog.
	Home string

	Settings Settings
}

// New resolves the worklog home, creates the directory structure, writes a
// default config.yaml when none exists, and loads settings.
//
// Structure created:
//
//	~/.worklog/
//	├── config.yaml
//	├── logs/
//	└── reports/
func New() (*Config, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		home = filepath.Join(userHome, DirName)
	}

	cfg := &Config{
		Home:     home,
		Settings: defaultSettings(),
	}

	for _, dir := range []string{home, cfg.LogsDir(), cfg.ReportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	if err := ensureSettingsFile(cfg.SettingsPath()); err != nil {
		return nil, err
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabasePath returns the canonical state file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Home, "database.json")
}

// ReportsDir returns where generated reports are written.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.Home, "reports")
}

// LogsDir returns the process log directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.Home, "logs")
}

// JournalPath returns the activity journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Home, "journal.log")
}

// SettingsPath returns the on-disk location of config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Home, "config.yaml")
}

// DefaultDuration returns the minutes credited per logged entry.
func (c *Config) DefaultDuration() int {
	return c.Settings.DefaultDurationMinutes
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Settings = parsed
	return nil
}

func defaultSettings() Settings {
	return Settings{
		Version:                1,
		DefaultDurationMinutes: defaultDurationMinutes,
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.DefaultDurationMinutes == 0 {
		s.DefaultDurationMinutes = defaultDurationMinutes
	}
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if s.DefaultDurationMinutes < 1 {
		return fmt.Errorf("default_duration_minutes must be >= 1")
	}
	return nil
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsYAML), 0o644)
}
