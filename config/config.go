// Package config holds player settings layered as flags > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all player options
type Config struct {
	Input     string `yaml:"input"`
	Width     int    `yaml:"width"`      // frame width in pixels (glyphs)
	FPS       int    `yaml:"fps"`        // target frames per second
	FramesDir string `yaml:"frames_dir"` // where extracted frames live

	NoExtract bool   `yaml:"no_extract"` // play frames already in FramesDir
	LogLevel  string `yaml:"log_level"`

	SSH SSHConfig `yaml:"ssh"`
}

// SSHConfig holds settings for serving playback over SSH
type SSHConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Input:     "./test_files/minions.mp4",
		Width:     64,
		FPS:       60,
		FramesDir: "frames",
		LogLevel:  "info",
		SSH: SSHConfig{
			Host:        "localhost",
			Port:        "23234",
			HostKeyPath: ".ssh/id_ed25519",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var problems []string

	if c.Input == "" && !c.NoExtract {
		problems = append(problems, "input video is required")
	}
	if c.Width <= 0 {
		problems = append(problems, fmt.Sprintf("width must be positive, got %d", c.Width))
	}
	if c.FPS <= 0 {
		problems = append(problems, fmt.Sprintf("fps must be positive, got %d", c.FPS))
	}
	if c.FramesDir == "" {
		problems = append(problems, "frames directory is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	if c.SSH.Enabled && c.SSH.Port == "" {
		problems = append(problems, "ssh port is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(problems, "\n  - "))
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// NewLogger returns a logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           c.Level(),
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
