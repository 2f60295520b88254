package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RGB is an 8-bit color as it appears in config files.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

type Serial struct {
	Port string `yaml:"port"` // e.g. /dev/ttyUSB0 or COM3
	Baud int    `yaml:"baud"` // e.g. 115200
}

type Effect struct {
	Name  string `yaml:"name"` // "solid" | "gradient" | "rainbow"
	Color RGB    `yaml:"color,omitempty"`
	Start RGB    `yaml:"start,omitempty"`
	End   RGB    `yaml:"end,omitempty"`
}

type Preview struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"` // HTTP listen address, e.g. :8080
}

type Config struct {
	LedCount int     `yaml:"led_count"`
	FPS      int     `yaml:"fps"`
	Serial   Serial  `yaml:"serial"`
	Effect   Effect  `yaml:"effect"`
	Preview  Preview `yaml:"preview,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LedCount: 60,
		FPS:      30,
		Serial:   Serial{Port: "/dev/ttyUSB0", Baud: 115200},
		Effect:   Effect{Name: "rainbow"},
		Preview:  Preview{Addr: ":8080"},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
