package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/davebream/timeridle/internal/frame"
	"github.com/davebream/timeridle/internal/idle"
)

type Config struct {
	BusyWindow    string `json:"busy_window,omitempty"`
	FrameInterval string `json:"frame_interval,omitempty"`
	WaitTimeout   string `json:"wait_timeout,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
	LogFormat     string `json:"log_format,omitempty"`
}

// Timing holds the parsed durations of a Config.
type Timing struct {
	BusyWindow    time.Duration
	FrameInterval time.Duration
	WaitTimeout   time.Duration // zero waits forever
}

func DefaultConfig() *Config {
	return &Config{
		BusyWindow:    idle.DefaultBusyWindow.String(),
		FrameInterval: frame.DefaultInterval.String(),
		WaitTimeout:   "30s",
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads config.json. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// Anyone able to write the file could widen the busy window under a harness.
	if perm := info.Mode().Perm(); perm&0002 != 0 {
		return nil, fmt.Errorf("config file %s is world-writable (%o). Fix with: chmod 600 %s", path, perm, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.Timing(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	return AtomicWriteFile(path, data, 0600)
}

// Timing parses and validates the duration fields. Empty fields take the
// defaults.
func (c *Config) Timing() (Timing, error) {
	def := DefaultConfig()
	var t Timing
	var err error

	if t.BusyWindow, err = parseDuration("busy_window", c.BusyWindow, def.BusyWindow); err != nil {
		return Timing{}, err
	}
	if t.BusyWindow <= 0 {
		return Timing{}, fmt.Errorf("busy_window must be positive, got %s", t.BusyWindow)
	}
	if t.FrameInterval, err = parseDuration("frame_interval", c.FrameInterval, def.FrameInterval); err != nil {
		return Timing{}, err
	}
	if t.FrameInterval <= 0 {
		return Timing{}, fmt.Errorf("frame_interval must be positive, got %s", t.FrameInterval)
	}
	if t.WaitTimeout, err = parseDuration("wait_timeout", c.WaitTimeout, def.WaitTimeout); err != nil {
		return Timing{}, err
	}
	if t.WaitTimeout < 0 {
		return Timing{}, fmt.Errorf("wait_timeout must not be negative, got %s", t.WaitTimeout)
	}
	return t, nil
}

func parseDuration(field, value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
