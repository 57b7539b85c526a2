// Package config loads evotree's TOML configuration.
//
// The file is optional. Keys that are present override the defaults; keys
// that are absent keep them. Unknown keys are rejected so typos surface
// instead of being silently ignored.
//
//	[layout]
//	vertical_spacing = 250
//	horizontal_spacing = 400
//
//	[theme]
//	primary = "#4AABFF"
//
//	[render]
//	width = 1200
//
//	[chat]
//	reply_delay = "1s"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/theme"
)

const (
	appName  = "evotree"
	fileName = "config.toml"

	// DefaultWidth is the container width used when none is given.
	DefaultWidth = 1200
	// DefaultReplyDelay is how long a simulated agent takes to answer.
	DefaultReplyDelay = time.Second
)

// Config is the full configuration.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Theme  theme.Theme   `toml:"theme"`
	Render RenderConfig  `toml:"render"`
	Chat   ChatConfig    `toml:"chat"`
}

// RenderConfig holds defaults for the layout and render commands.
type RenderConfig struct {
	// Width is the container width in pixels.
	Width float64 `toml:"width"`
}

// ChatConfig configures the simulated chat.
type ChatConfig struct {
	ReplyDelay Duration `toml:"reply_delay"`
}

// Duration is a time.Duration written as a Go duration string ("1s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Theme:  theme.Default(),
		Render: RenderConfig{Width: DefaultWidth},
		Chat:   ChatConfig{ReplyDelay: Duration(DefaultReplyDelay)},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Theme.Validate(); err != nil {
		return err
	}
	if c.Render.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.width must be positive, got %g", c.Render.Width)
	}
	if c.Chat.ReplyDelay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "chat.reply_delay cannot be negative")
	}
	return nil
}

// Path returns the default config file location, following XDG
// (~/.config/evotree/config.toml).
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path on top of the defaults.
//
// If path is empty the default location is used, and a missing file there
// yields the defaults. An explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
