package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transport string           `yaml:"transport"` // "periph" | "gobot"
	Bus       int              `yaml:"bus"`
	Address   uint16           `yaml:"address"`
	Frequency float64          `yaml:"frequency"`
	OE        OutputEnable     `yaml:"output_enable"`
	Channels  []ChannelSetting `yaml:"channels"`
	Listen    string           `yaml:"listen"`
}

// OutputEnable is the GPIO line wired to the chip's OE pin. An empty Chip
// means OE is hard-wired low.
type OutputEnable struct {
	Chip string `yaml:"chip"` // e.g. gpiochip0
	Line int    `yaml:"line"`
}

// ChannelSetting is an initial on/off tick pair applied by the run command.
type ChannelSetting struct {
	Channel int    `yaml:"channel"`
	On      uint16 `yaml:"on"`
	Off     uint16 `yaml:"off"`
}

func Default() Config {
	return Config{
		Transport: "periph",
		Bus:       1,
		Address:   0x40,
		Frequency: 60,
		Listen:    "0.0.0.0:8080",
	}
}

// Load reads path and fills unset fields with defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	file.applyDefaults(cfg)
	if err := file.Validate(); err != nil {
		return Config{}, err
	}
	return file, nil
}

func (c *Config) applyDefaults(d Config) {
	if c.Transport == "" {
		c.Transport = d.Transport
	}
	if c.Bus == 0 {
		c.Bus = d.Bus
	}
	if c.Address == 0 {
		c.Address = d.Address
	}
	if c.Frequency == 0 {
		c.Frequency = d.Frequency
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
}

func (c Config) Validate() error {
	switch c.Transport {
	case "periph", "gobot":
	default:
		return fmt.Errorf("transport must be periph or gobot, got %q", c.Transport)
	}
	if c.Bus < 0 {
		return fmt.Errorf("bus must be >= 0")
	}
	if c.Address > 0x7F {
		return fmt.Errorf("address 0x%X is not a 7-bit address", c.Address)
	}
	if c.Frequency < 0 {
		return fmt.Errorf("frequency must be positive")
	}
	for i, ch := range c.Channels {
		if ch.Channel < 0 || ch.Channel > 15 {
			return fmt.Errorf("channels[%d]: channel %d not in [0, 15]", i, ch.Channel)
		}
		if ch.On > 4095 || ch.Off > 4095 {
			return fmt.Errorf("channels[%d]: ticks must be <= 4095", i)
		}
	}
	return nil
}
