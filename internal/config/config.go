// Package config loads scrollwatch settings from TOML files and the
// environment, and watches the file for live reload.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/scrollwatch/internal/logging"
	"github.com/dshills/scrollwatch/internal/scroll"
)

// Environment variables that override file settings.
const (
	EnvThrottleMS = "SCROLLWATCH_THROTTLE_MS"
	EnvLogLevel   = "SCROLLWATCH_LOG_LEVEL"
)

// Config is the complete scrollwatch configuration.
type Config struct {
	Scroll ScrollConfig `toml:"scroll"`
	Log    LogConfig    `toml:"log"`
}

// ScrollConfig holds observer and viewport settings.
type ScrollConfig struct {
	// ThrottleMS is the default coalescing window in milliseconds.
	ThrottleMS int `toml:"throttle_ms"`
	// Host selects how document offsets are read: "standard" or "window".
	Host string `toml:"host"`
	// Lines is how far one wheel notch or arrow key scrolls.
	Lines int `toml:"lines"`
	// ShiftLines is the step when shift is held.
	ShiftLines int `toml:"shift_lines"`
	// Smooth enables animated scrolling.
	Smooth bool `toml:"smooth"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scroll: ScrollConfig{
			ThrottleMS: int(scroll.DefaultThrottle / time.Millisecond),
			Host:       scroll.HostStandard.String(),
			Lines:      3,
			ShiftLines: 10,
			Smooth:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates it.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode("<data>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals strictly so that misspelled keys are reported.
func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decodeErr):
		pe.Line, pe.Column = decodeErr.Position()
	case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
		pe.Line, pe.Column = strictErr.Errors[0].Position()
		pe.Message = "unknown key " + strings.Join(strictErr.Errors[0].Key(), ".")
	}
	return pe
}

// applyEnv overrides settings from the environment.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvThrottleMS); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Key: EnvThrottleMS, Message: "must be an integer", Value: v}
		}
		c.Scroll.ThrottleMS = ms
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Scroll.ThrottleMS <= 0 {
		return &ValidationError{Key: "scroll.throttle_ms", Message: "must be positive", Value: c.Scroll.ThrottleMS}
	}
	if _, ok := scroll.ParseHost(c.Scroll.Host); !ok {
		return &ValidationError{Key: "scroll.host", Message: `must be "standard" or "window"`, Value: c.Scroll.Host}
	}
	if c.Scroll.Lines < 1 {
		return &ValidationError{Key: "scroll.lines", Message: "must be at least 1", Value: c.Scroll.Lines}
	}
	if c.Scroll.ShiftLines < 1 {
		return &ValidationError{Key: "scroll.shift_lines", Message: "must be at least 1", Value: c.Scroll.ShiftLines}
	}
	if !logging.ValidLevel(c.Log.Level) {
		return &ValidationError{Key: "log.level", Message: "must be one of debug, info, warn, error", Value: c.Log.Level}
	}
	return nil
}

// Throttle returns the coalescing window as a duration.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.Scroll.ThrottleMS) * time.Millisecond
}

// Host returns the configured document host. Call Validate first.
func (c *Config) Host() scroll.Host {
	h, _ := scroll.ParseHost(c.Scroll.Host)
	return h
}

// LogLevel returns the configured log level. Call Validate first.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
