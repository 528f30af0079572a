package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the player flags on fs. Defaults are shown for help
// only; values reach the config through ApplyFlags.
func BindFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.String("config", "", "path to config file (default: search standard locations)")
	fs.StringP("input", "i", def.Input, "video file to play")
	fs.IntP("width", "w", def.Width, "frame width in glyphs")
	fs.IntP("fps", "f", def.FPS, "target frames per second")
	fs.String("frames-dir", def.FramesDir, "directory for extracted frames")
	fs.Bool("no-extract", false, "play frames already in the frames directory")
	fs.String("log-level", def.LogLevel, "log level: debug, info, warn, error")

	fs.Bool("ssh", false, "serve playback over SSH")
	fs.String("host", def.SSH.Host, "ssh listen host")
	fs.String("port", def.SSH.Port, "ssh listen port")
	fs.String("host-key", def.SSH.HostKeyPath, "ssh host key path")
}

// ApplyFlags copies every flag the user set explicitly onto c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set("input", func() (e error) { c.Input, e = fs.GetString("input"); return })
	set("width", func() (e error) { c.Width, e = fs.GetInt("width"); return })
	set("fps", func() (e error) { c.FPS, e = fs.GetInt("fps"); return })
	set("frames-dir", func() (e error) { c.FramesDir, e = fs.GetString("frames-dir"); return })
	set("no-extract", func() (e error) { c.NoExtract, e = fs.GetBool("no-extract"); return })
	set("log-level", func() (e error) { c.LogLevel, e = fs.GetString("log-level"); return })
	set("ssh", func() (e error) { c.SSH.Enabled, e = fs.GetBool("ssh"); return })
	set("host", func() (e error) { c.SSH.Host, e = fs.GetString("host"); return })
	set("port", func() (e error) { c.SSH.Port, e = fs.GetString("port"); return })
	set("host-key", func() (e error) { c.SSH.HostKeyPath, e = fs.GetString("host-key"); return })

	return err
}

// Load builds the configuration: defaults, then the config file named by
// --config or found in a standard location, then explicitly set flags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()

	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyFlags(fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
