package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/view"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ORACLE_*). A missing file is not an
// error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "access config %s", path)
	}

	// ORACLE_FRAME_RATE -> frame_rate, etc.
	if err := k.Load(env.Provider("ORACLE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ORACLE_"))
	}), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env overrides")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal config")
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write config %s", path)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "listen address is required")
	}
	if c.Dataset == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "dataset path is required")
	}
	if _, err := view.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport dimensions must be positive")
	}
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return errors.New(errors.ErrCodeInvalidConfig, "frame_rate %d out of range [1, 240]", c.FrameRate)
	}
	if c.SearchDebounceMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search_debounce_ms must be non-negative")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
