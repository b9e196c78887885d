// Package config handles loading of the walker configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Assets      AssetConfig       `yaml:"assets"`
	Render      RenderConfig      `yaml:"render"`
	Logging     LoggingConfig     `yaml:"logging"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetConfig holds paths of the images to load.
type AssetConfig struct {
	Player string `yaml:"player"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	// consecutive failed frame acquisitions before the loop gives up
	MaxAcquireRetries int `yaml:"max_acquire_retries"`

	// wait after the first failed acquisition, doubled for every
	// further failure in a row
	AcquireBackoff time.Duration `yaml:"acquire_backoff"`

	// number of textures kept in the texture cache
	TextureCacheSize int `yaml:"texture_cache_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`

	// additionally write logs to this file if set
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DiagnosticsConfig holds profiling settings.
type DiagnosticsConfig struct {
	CPUProfile bool `yaml:"cpu_profile"`
	FrameStats bool `yaml:"frame_stats"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Walker",
		},
		Assets: AssetConfig{
			Player: "player.png",
		},
		Render: RenderConfig{
			MaxAcquireRetries: 8,
			AcquireBackoff:    10 * time.Millisecond,
			TextureCacheSize:  16,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Diagnostics: DiagnosticsConfig{
			CPUProfile: false,
			FrameStats: false,
		},
	}
}

// Validate reports all invalid settings.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if c.Assets.Player == "" {
		errs = append(errs, errors.New("player asset path must not be empty"))
	}

	if c.Render.MaxAcquireRetries < 1 {
		errs = append(errs, fmt.Errorf("max_acquire_retries must be at least 1, got %d", c.Render.MaxAcquireRetries))
	}

	if c.Render.AcquireBackoff < 0 {
		errs = append(errs, fmt.Errorf("acquire_backoff must not be negative, got %s", c.Render.AcquireBackoff))
	}

	if c.Render.TextureCacheSize < 1 {
		errs = append(errs, fmt.Errorf("texture_cache_size must be at least 1, got %d", c.Render.TextureCacheSize))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
