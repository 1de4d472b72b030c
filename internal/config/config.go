// Package config loads the bootstrap settings that must be known before the
// database is opened. Gameplay tunables live in the database instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "wakutore"

type Config struct {
	DBPath           string        `yaml:"db_path"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
	Seed             uint64        `yaml:"seed"` // 0 seeds from the clock
	Logging          LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Dir returns ~/.config/wakutore.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Default() *Config {
	cfg := &Config{
		TickInterval:     time.Second,
		AutosaveInterval: 30 * time.Second,
		Logging:          LoggingConfig{Level: "info"},
	}
	if dir, err := Dir(); err == nil {
		cfg.DBPath = filepath.Join(dir, appName+".db")
		cfg.Logging.File = filepath.Join(dir, appName+".log")
	}
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WAKUTORE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WAKUTORE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is empty")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval)
	}
	if c.AutosaveInterval < c.TickInterval {
		return fmt.Errorf("autosave_interval %v is shorter than tick_interval %v", c.AutosaveInterval, c.TickInterval)
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
