package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the task API listens when run locally.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

// Config represents the complete taskboard configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls how the task API is reached
type APIConfig struct {
	// BaseURL is the API root, including the /api path prefix
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds each HTTP request. 0 means no timeout, so a hung
	// request leaves the affected view as it was until the user retries.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the per-request timeout as a time.Duration
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TUIConfig controls terminal UI behavior
type TUIConfig struct {
	// Theme selects the color palette (see ValidThemes)
	Theme string `mapstructure:"theme"`
	// TimeFormat is the Go time layout used to render comment timestamps
	// in the local time zone
	TimeFormat string `mapstructure:"time_format"`
	// RenderMarkdown renders task descriptions as markdown in the detail pane
	RenderMarkdown bool `mapstructure:"render_markdown"`
}

// LoggingConfig controls the debug log file
type LoggingConfig struct {
	// Enabled turns file logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level written: debug, info, warn, error
	Level string `mapstructure:"level"`
	// MaxSizeMB is the size at which debug.log is rotated (0 disables rotation)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 0,
		},
		TUI: TUIConfig{
			Theme:          "default",
			TimeFormat:     "Jan 2, 2006 3:04 PM",
			RenderMarkdown: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout_seconds", defaults.API.TimeoutSeconds)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.time_format", defaults.TUI.TimeFormat)
	viper.SetDefault("tui.render_markdown", defaults.TUI.RenderMarkdown)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded values are invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".config", "taskboard")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidThemes returns the names of the built-in color themes
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "light", "monochrome"}
}
