// Package config loads and validates the server configuration from a YAML
// file with ORACLE_* environment overrides layered on top.
package config

// Config holds everything the serve command needs: where to listen, which
// artifacts to load, and the initial view parameters handed to new sessions.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `koanf:"listen" yaml:"listen"`

	// Dataset is the path to the graph dataset JSON produced by the
	// extraction pipeline. Required.
	Dataset string `koanf:"dataset" yaml:"dataset"`

	// Colors is the path to the collection color table JSON. Optional; all
	// collections fall back to the default color without it.
	Colors string `koanf:"colors" yaml:"colors,omitempty"`

	// Tuning is the path to a TOML file overriding force constants.
	// Optional.
	Tuning string `koanf:"tuning" yaml:"tuning,omitempty"`

	// Mode is the initial view mode for new sessions.
	Mode string `koanf:"mode" yaml:"mode"`

	// Width and Height are the default viewport dimensions before a client
	// reports its real size.
	Width  float64 `koanf:"width" yaml:"width"`
	Height float64 `koanf:"height" yaml:"height"`

	// FrameRate is the frame-loop tick rate in frames per second.
	FrameRate int `koanf:"frame_rate" yaml:"frame_rate"`

	// SearchDebounceMS delays search recomputation after a keystroke.
	SearchDebounceMS int `koanf:"search_debounce_ms" yaml:"search_debounce_ms"`

	// AllowedOrigins is the CORS allow-list. Defaults to any origin so the
	// visualization can be embedded in a wiki page on another host.
	AllowedOrigins []string `koanf:"allowed_origins" yaml:"allowed_origins"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:           ":8080",
		Dataset:          "graph.json",
		Mode:             "connection",
		Width:            1280,
		Height:           800,
		FrameRate:        60,
		SearchDebounceMS: 200,
		AllowedOrigins:   []string{"*"},
		LogLevel:         "info",
	}
}
