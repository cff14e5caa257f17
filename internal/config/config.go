package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.wppsim/config.toml.
type Config struct {
	DefaultSession string     `toml:"default_session"`
	LogLevel       string     `toml:"log_level"`
	Simulation     Simulation `toml:"simulation"`
}

// Simulation holds the delivery engine timings, in milliseconds.
type Simulation struct {
	DeliveredAfterMs int `toml:"delivered_after_ms"`
	ReadAfterMs      int `toml:"read_after_ms"`
	ReplyMinMs       int `toml:"reply_min_ms"`
	ReplyMaxMs       int `toml:"reply_max_ms"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	return (&Config{}).WithDefaults()
}

// WithDefaults fills unset or invalid fields and returns cfg.
func (cfg *Config) WithDefaults() *Config {
	if cfg.DefaultSession == "" {
		cfg.DefaultSession = "main"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	sim := &cfg.Simulation
	if sim.DeliveredAfterMs <= 0 {
		sim.DeliveredAfterMs = 1000
	}
	if sim.ReadAfterMs <= 0 {
		sim.ReadAfterMs = 2000
	}
	if sim.ReplyMinMs <= 0 {
		sim.ReplyMinMs = 4000
	}
	if sim.ReplyMaxMs < sim.ReplyMinMs {
		sim.ReplyMaxMs = max(sim.ReplyMinMs, 8000)
	}
	return cfg
}

// DeliveredAfter returns the delay before a sent message is delivered.
func (s Simulation) DeliveredAfter() time.Duration {
	return time.Duration(s.DeliveredAfterMs) * time.Millisecond
}

// ReadAfter returns the delay before a sent message is read.
func (s Simulation) ReadAfter() time.Duration {
	return time.Duration(s.ReadAfterMs) * time.Millisecond
}

// ReplyWindow returns the bounds of the auto-reply delay.
func (s Simulation) ReplyWindow() (time.Duration, time.Duration) {
	return time.Duration(s.ReplyMinMs) * time.Millisecond, time.Duration(s.ReplyMaxMs) * time.Millisecond
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault reads config from path with defaults applied. A missing file
// yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
