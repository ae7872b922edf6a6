// Package config provides CLI commands for managing taskboard configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	appconfig "github.com/Iron-Ham/taskboard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify taskboard configuration",
	Long: `View or modify taskboard configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  taskboard config set api.base_url http://tasks.local:5000/api
  taskboard config set tui.theme dracula

Valid keys:
  api.base_url          - Task API root, including the /api prefix
  api.timeout_seconds   - Per-request timeout (0 for none)
  tui.theme             - Color theme: default, monokai, dracula, light, monochrome
  tui.time_format       - Go time layout for comment timestamps
  tui.render_markdown   - Render task descriptions as markdown (true/false)
  logging.enabled       - Write the debug log (true/false)
  logging.level         - Minimum level: debug, info, warn, error
  logging.max_size_mb   - Rotate debug.log at this size (0 disables rotation)
  logging.max_backups   - Rotated log files to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/taskboard/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  taskboard config reset            # Reset all to defaults
  taskboard config reset tui.theme  # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind describes how a settable key's value is parsed and checked.
type keyKind int

const (
	kindString keyKind = iota
	kindURL
	kindBool
	kindInt
	kindTheme
	kindLevel
	kindLayout
)

var settableKeys = map[string]keyKind{
	"api.base_url":        kindURL,
	"api.timeout_seconds": kindInt,
	"tui.theme":           kindTheme,
	"tui.time_format":     kindLayout,
	"tui.render_markdown": kindBool,
	"logging.enabled":     kindBool,
	"logging.level":       kindLevel,
	"logging.max_size_mb": kindInt,
	"logging.max_backups": kindInt,
}

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"api.base_url":        d.API.BaseURL,
		"api.timeout_seconds": d.API.TimeoutSeconds,
		"tui.theme":           d.TUI.Theme,
		"tui.time_format":     d.TUI.TimeFormat,
		"tui.render_markdown": d.TUI.RenderMarkdown,
		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,
	}
}

// parseValue converts raw into the type key expects, validating it.
func parseValue(key, raw string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'taskboard config set --help' to see valid keys", key)
	}

	switch kind {
	case kindURL:
		if err := appconfig.ValidateBaseURL(raw); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		return strings.TrimRight(raw, "/"), nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	case kindTheme:
		if !slices.Contains(appconfig.ValidThemes(), raw) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, raw, strings.Join(appconfig.ValidThemes(), ", "))
		}
		return raw, nil
	case kindLevel:
		level := strings.ToLower(raw)
		if !slices.Contains(appconfig.ValidLogLevels(), level) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, raw, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return level, nil
	case kindLayout:
		ref := time.Date(2001, 3, 4, 7, 8, 9, 0, time.UTC)
		if raw == "" || ref.Format(raw) == raw {
			return nil, fmt.Errorf("invalid value for %s: must be a Go time layout such as \"2006-01-02 15:04\"", key)
		}
		return raw, nil
	}
	return raw, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := appconfig.Get()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	return writeYAML(out, cfg)
}

// writeYAML prints cfg using the same key names as the config file.
func writeYAML(w io.Writer, cfg *appconfig.Config) error {
	doc := map[string]any{
		"api": map[string]any{
			"base_url":        cfg.API.BaseURL,
			"timeout_seconds": cfg.API.TimeoutSeconds,
		},
		"tui": map[string]any{
			"theme":           cfg.TUI.Theme,
			"time_format":     cfg.TUI.TimeFormat,
			"render_markdown": cfg.TUI.RenderMarkdown,
		},
		"logging": map[string]any{
			"enabled":     cfg.Logging.Enabled,
			"level":       cfg.Logging.Level,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_backups": cfg.Logging.MaxBackups,
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// writeConfig persists viper's settings to the config file in use, or the
// default location when none was read.
func writeConfig() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = appconfig.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const configTemplate = `# Taskboard Configuration

# Task API
api:
  # API root, including the /api path prefix
  base_url: %s
  # Per-request timeout in seconds (0 = no timeout)
  timeout_seconds: %d

# TUI (terminal user interface) settings
tui:
  # Color theme: default, monokai, dracula, light, monochrome
  theme: %s
  # Go time layout for comment timestamps (shown in local time)
  time_format: %q
  # Render task descriptions as markdown
  render_markdown: %v

# Debug log, written under $XDG_STATE_HOME/taskboard (or ~/.local/state/taskboard)
logging:
  enabled: %v
  # debug, info, warn, error
  level: %s
  # Rotate debug.log at this size in MB (0 disables rotation)
  max_size_mb: %d
  max_backups: %d
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'taskboard config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	d := appconfig.Default()
	content := fmt.Sprintf(configTemplate,
		d.API.BaseURL, d.API.TimeoutSeconds,
		d.TUI.Theme, d.TUI.TimeFormat, d.TUI.RenderMarkdown,
		d.Logging.Enabled, d.Logging.Level, d.Logging.MaxSizeMB, d.Logging.MaxBackups,
	)

	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. $HOME/.config/taskboard/config.yaml")
	fmt.Fprintln(out, "  3. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: TASKBOARD_* (e.g., TASKBOARD_API_BASE_URL)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		keys := make([]string, 0, len(defaults))
		for key := range defaults {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			viper.Set(key, defaults[key])
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'taskboard config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
