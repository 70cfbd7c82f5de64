// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	GovData GovDataConfig `yaml:"govdata"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatasetConfig defines the CSV dataset settings.
type DatasetConfig struct {
	// Path to the primary CSV file. A missing file falls back to
	// SamplePath.
	Path       string `yaml:"path"`
	SamplePath string `yaml:"sample_path"`

	// DisplayDivisor converts source price units into displayed rupees.
	// The government dataset publishes prices scaled by 10.
	DisplayDivisor float64 `yaml:"display_divisor"`

	// RefreshInterval for the background cache warmer. Zero disables it.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// GovDataConfig defines data.gov.in API fallback settings. An empty API
// key disables the fallback entirely.
type GovDataConfig struct {
	APIKey    string          `yaml:"api_key"`
	BaseURL   string          `yaml:"base_url"`
	Limit     int             `yaml:"limit"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines government API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, for running
// without a config file at all.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatasetDefaults(&cfg.Dataset)
	applyGovDataDefaults(&cfg.GovData)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatasetDefaults(d *DatasetConfig) {
	if d.Path == "" {
		d.Path = "data/mandi-data.csv"
	}
	if d.SamplePath == "" {
		d.SamplePath = "data/sample-mandi-data.csv"
	}
	if d.DisplayDivisor == 0 {
		d.DisplayDivisor = 10
	}
}

func applyGovDataDefaults(g *GovDataConfig) {
	if g.BaseURL == "" {
		g.BaseURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"
	}
	if g.Limit == 0 {
		g.Limit = 20
	}
	if g.Timeout == 0 {
		g.Timeout = 10 * time.Second
	}
	applyRateLimitDefaults(&g.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 1000
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}
	if cfg.Dataset.Path == "" {
		errs = append(errs, fmt.Errorf("dataset.path is required"))
	}
	if cfg.Dataset.DisplayDivisor <= 0 {
		errs = append(errs, fmt.Errorf("dataset.display_divisor must be positive (got %v)", cfg.Dataset.DisplayDivisor))
	}
	if cfg.Dataset.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("dataset.refresh_interval must not be negative"))
	}
	if cfg.GovData.Limit < 1 {
		errs = append(errs, fmt.Errorf("govdata.limit must be positive (got %d)", cfg.GovData.Limit))
	}

	return errors.Join(errs...)
}
