// Package config provides YAML-based configuration loading for Stride.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Stride configuration, loaded from stride.yaml.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Clock    ClockConfig    `yaml:"clock"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Slack    SlackConfig    `yaml:"slack"`
}

// DatabaseConfig holds connection settings for the MySQL server.
type DatabaseConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ClockConfig fixes the organizational timezone. Cycle dates are calendar
// days in this zone; the default offset of +7 is the shipped business
// policy, surfaced here rather than hard-coded.
type ClockConfig struct {
	UTCOffsetHours int `yaml:"utc_offset_hours"`
}

// SweepConfig controls the cycle lifecycle sweep. Schedule is an optional
// 5-field cron expression; when empty the sweep runs every IntervalHours.
type SweepConfig struct {
	IntervalHours int    `yaml:"interval_hours"`
	Schedule      string `yaml:"schedule"`
}

// SlackConfig holds the optional incoming-webhook URL for transition
// notifications.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location returns the fixed organizational timezone.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.Clock.UTCOffsetHours), c.Clock.UTCOffsetHours*3600)
}

// SweepInterval returns the fixed sweep interval as a duration.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Sweep.IntervalHours) * time.Hour
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "stride"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Clock.UTCOffsetHours == 0 {
		c.Clock.UTCOffsetHours = 7
	}
	if c.Sweep.IntervalHours == 0 {
		c.Sweep.IntervalHours = 24
	}
}

// validate checks that all fields are in range.
func (c *Config) validate() error {
	var errs []string
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d out of range", c.Database.Port))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Clock.UTCOffsetHours < -12 || c.Clock.UTCOffsetHours > 14 {
		errs = append(errs, fmt.Sprintf("clock.utc_offset_hours %d out of range", c.Clock.UTCOffsetHours))
	}
	if c.Sweep.IntervalHours < 1 {
		errs = append(errs, "sweep.interval_hours must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
