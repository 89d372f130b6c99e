// Package config loads the watch configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Display Display `toml:"display"`
	Clock   Clock   `toml:"clock"`
	Health  Health  `toml:"health"`
}

type Display struct {
	// Driver is "png" or "st7789".
	Driver string `toml:"driver"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Output is the frame directory of the png driver.
	Output string `toml:"output"`
	// SPI is the st7789 port name. Empty means the first port.
	SPI string `toml:"spi"`
}

type Clock struct {
	// Style is "24h" or "12h".
	Style string `toml:"style"`
}

type Health struct {
	// Database is the step history path. Empty keeps history in memory.
	Database string `toml:"database"`
	// Source is "none", "gpio" or "serial".
	Source string `toml:"source"`
	Pin    string `toml:"pin"`
	Device string `toml:"device"`
}

func Default() *Config {
	return &Config{
		Display: Display{
			Driver: "png",
			Width:  180,
			Height: 180,
			Output: "frames",
		},
		Clock: Clock{Style: "24h"},
		Health: Health{
			Source: "none",
			Pin:    "GPIO17",
		},
	}
}

// Load reads the file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("config: %s: unknown key %q: %w", path, undec[0].String(), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Display.Driver {
	case "png", "st7789":
	default:
		return fmt.Errorf("config: display driver %q: %w", c.Display.Driver, ErrInvalid)
	}
	// The layout needs room for the logo row and the steps row.
	if c.Display.Width < 90 || c.Display.Height < 100 {
		return fmt.Errorf("config: display %dx%d too small: %w", c.Display.Width, c.Display.Height, ErrInvalid)
	}
	if c.Display.Driver == "png" && c.Display.Output == "" {
		return fmt.Errorf("config: png driver without output directory: %w", ErrInvalid)
	}
	switch c.Clock.Style {
	case "24h", "12h":
	default:
		return fmt.Errorf("config: clock style %q: %w", c.Clock.Style, ErrInvalid)
	}
	switch c.Health.Source {
	case "none", "serial":
	case "gpio":
		if c.Health.Pin == "" {
			return fmt.Errorf("config: gpio step source without pin: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("config: step source %q: %w", c.Health.Source, ErrInvalid)
	}
	return nil
}

// Is24h reports whether the clock style is 24 hour.
func (c *Config) Is24h() bool {
	return c.Clock.Style != "12h"
}
