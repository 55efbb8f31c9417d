// File: config/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration for uniloop-based servers.

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for a uniloop server process.
type Config struct {
	Listen struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Backlog int    `yaml:"backlog"`
	} `yaml:"listen"`

	Runtime struct {
		// MaxTasks bounds the task arena; zero means unbounded.
		MaxTasks int `yaml:"max_tasks"`
		// ReadBufferKB sizes each connection's read buffer.
		ReadBufferKB int `yaml:"read_buffer_kb"`
	} `yaml:"runtime"`

	Metrics struct {
		Enabled        bool     `yaml:"enabled"`
		Addr           string   `yaml:"addr"`
		SampleInterval Duration `yaml:"sample_interval"`
	} `yaml:"metrics"`
}

// Duration decodes YAML strings like "250ms" or "1s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the baseline configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Listen.Host = "127.0.0.1"
	cfg.Listen.Port = 9000
	cfg.Listen.Backlog = 128
	cfg.Runtime.ReadBufferKB = 16
	cfg.Metrics.Addr = "127.0.0.1:9090"
	cfg.Metrics.SampleInterval = Duration(time.Second)
	return cfg
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unusable settings.
func (c *Config) Validate() error {
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range", c.Listen.Port)
	}
	if c.Runtime.MaxTasks < 0 {
		return fmt.Errorf("runtime.max_tasks must not be negative")
	}
	if c.Runtime.ReadBufferKB <= 0 {
		return fmt.Errorf("runtime.read_buffer_kb must be positive")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr required when metrics are enabled")
	}
	return nil
}
