package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("termplay", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./test_files/minions.mp4", cfg.Input)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, "frames", cfg.FramesDir)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width must be positive"},
		{"negative fps", func(c *Config) { c.FPS = -1 }, "fps must be positive"},
		{"no input", func(c *Config) { c.Input = "" }, "input video is required"},
		{"no frames dir", func(c *Config) { c.FramesDir = "" }, "frames directory is required"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"ssh without port", func(c *Config) { c.SSH.Enabled = true; c.SSH.Port = "" }, "ssh port is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.FPS = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "fps")
}

func TestValidate_NoExtractNeedsNoInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input = ""
	cfg.NoExtract = true
	assert.NoError(t, cfg.Validate())
}

func TestApplyFlags_OnlyChanged(t *testing.T) {
	fs := newFlagSet(t, "--fps", "30")

	cfg := DefaultConfig()
	cfg.Width = 100
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 100, cfg.Width, "unset flags must not reset values")
}

func TestApplyFlags_All(t *testing.T) {
	fs := newFlagSet(t,
		"-i", "clip.mp4",
		"-w", "32",
		"-f", "24",
		"--frames-dir", "out",
		"--no-extract",
		"--log-level", "debug",
		"--ssh",
		"--host", "0.0.0.0",
		"--port", "2222",
		"--host-key", "key",
	)

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, "clip.mp4", cfg.Input)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, "out", cfg.FramesDir)
	assert.True(t, cfg.NoExtract)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, SSHConfig{Enabled: true, Host: "0.0.0.0", Port: "2222", HostKeyPath: "key"}, cfg.SSH)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, "input: movie.mkv\nfps: 25\nssh:\n  port: \"2022\"\n")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "movie.mkv", cfg.Input)
	assert.Equal(t, 25, cfg.FPS)
	assert.Equal(t, 64, cfg.Width, "defaults survive partial files")
	assert.Equal(t, "2022", cfg.SSH.Port)
	assert.Equal(t, "localhost", cfg.SSH.Host)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfigFile(writeConfig(t, "fps: [not a number"))
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "input: movie.mkv\nwidth: 80\nfps: 25\n")
	fs := newFlagSet(t, "--config", path, "--width", "40")

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "movie.mkv", cfg.Input)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 25, cfg.FPS)
}

func TestLoad_Invalid(t *testing.T) {
	fs := newFlagSet(t, "--config", writeConfig(t, "fps: 0\n"))

	_, err := Load(fs)
	assert.ErrorIs(t, err, ErrInvalid)
}
