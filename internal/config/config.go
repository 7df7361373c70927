// Package config holds recall configuration: struct defaults, optionally
// overridden by a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all recall configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Seed      bool            `yaml:"seed"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`

	// DayIntervalHours advances the study day once per this many real
	// hours while serving. Zero disables the timer.
	DayIntervalHours int `yaml:"day_interval_hours"`
}

type SchedulerConfig struct {
	DecayRate float64 `yaml:"decay_rate"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37791,
		},
		Scheduler: SchedulerConfig{
			DecayRate: 0.15,
		},
		Seed: true,
	}
}

// Load reads a YAML file over the defaults. An empty path or a missing
// file returns the defaults unchanged; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
