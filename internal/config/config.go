// Package config provides configuration types and defaults for clawdash.
package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for clawdash.
type Config struct {
	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	Refresh     RefreshConfig     `yaml:"refresh" mapstructure:"refresh"`
	Files       FilesConfig       `yaml:"files" mapstructure:"files"`
	Display     DisplayConfig     `yaml:"display" mapstructure:"display"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// SourceConfig describes where data.json comes from.
type SourceConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`         // http(s) URL, file:// URL or local path
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per-request timeout (0 = none)
	Watch   bool          `yaml:"watch" mapstructure:"watch"`     // Refresh when a local source file changes
}

// RefreshConfig holds polling settings.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// FilesConfig holds settings for the files list and its tabs.
type FilesConfig struct {
	DefaultCategory string   `yaml:"default_category" mapstructure:"default_category"` // Category shown by a full refresh
	Tabs            []string `yaml:"tabs" mapstructure:"tabs"`                         // Tab order
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	TimeLayout string `yaml:"time_layout" mapstructure:"time_layout"` // Go layout for the last-updated time
	Markdown   bool   `yaml:"markdown" mapstructure:"markdown"`       // Render the briefing as markdown in the TUI
}

// PathsConfig holds file paths.
type PathsConfig struct {
	Log string `yaml:"log" mapstructure:"log"` // Debug log used while the TUI owns the terminal
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// MinRefreshInterval is the shortest accepted polling interval.
const MinRefreshInterval = time.Second

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:   "data.json",
			Watch: true,
		},
		Refresh: RefreshConfig{
			Interval: time.Minute,
		},
		Files: FilesConfig{
			DefaultCategory: "research",
			Tabs:            []string{"research", "tools"},
		},
		Display: DisplayConfig{
			TimeLayout: "1/2/2006, 3:04:05 PM",
			Markdown:   true,
		},
		Paths: PathsConfig{
			Log: ".clawdash/clawdash-debug.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url is required")
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative, got %v", c.Source.Timeout)
	}
	if c.Refresh.Interval < MinRefreshInterval {
		return fmt.Errorf("refresh.interval must be at least %v, got %v", MinRefreshInterval, c.Refresh.Interval)
	}
	if c.Files.DefaultCategory == "" {
		return fmt.Errorf("files.default_category is required")
	}
	return nil
}
