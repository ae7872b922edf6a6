package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://127.0.0.1:5000/api" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "http://127.0.0.1:5000/api")
	}
	if cfg.API.TimeoutSeconds != 0 {
		t.Errorf("API.TimeoutSeconds = %d, want 0", cfg.API.TimeoutSeconds)
	}
	if cfg.API.Timeout() != 0 {
		t.Errorf("API.Timeout() = %v, want 0", cfg.API.Timeout())
	}
	if cfg.TUI.Theme != "default" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "default")
	}
	if !cfg.TUI.RenderMarkdown {
		t.Error("TUI.RenderMarkdown should be true by default")
	}
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate, got %v", ValidationErrors(errs))
	}
}

func TestAPIConfig_Timeout(t *testing.T) {
	c := APIConfig{TimeoutSeconds: 15}
	if c.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", c.Timeout())
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.API.BaseURL != DefaultBaseURL {
			t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
		}
		if cfg.TUI.TimeFormat != Default().TUI.TimeFormat {
			t.Errorf("TUI.TimeFormat = %q", cfg.TUI.TimeFormat)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "api:\n  base_url: http://tasks.internal:8080/api\n  timeout_seconds: 10\ntui:\n  theme: dracula\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			t.Fatalf("ReadInConfig() error = %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.API.BaseURL != "http://tasks.internal:8080/api" {
			t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
		}
		if cfg.API.TimeoutSeconds != 10 {
			t.Errorf("API.TimeoutSeconds = %d, want 10", cfg.API.TimeoutSeconds)
		}
		if cfg.TUI.Theme != "dracula" {
			t.Errorf("TUI.Theme = %q, want dracula", cfg.TUI.Theme)
		}
		if !cfg.Logging.Enabled {
			t.Error("Logging.Enabled default should survive a partial file")
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()
		viper.Set("api.base_url", "not a url")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail for an invalid base URL")
		}

		if got := Get(); got.API.BaseURL != DefaultBaseURL {
			t.Errorf("Get() should fall back to defaults, got %q", got.API.BaseURL)
		}
	})
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := ConfigDir(); got != "/custom/config/taskboard" {
			t.Errorf("ConfigDir() = %q, want %q", got, "/custom/config/taskboard")
		}
		if got := ConfigFile(); got != "/custom/config/taskboard/config.yaml" {
			t.Errorf("ConfigFile() = %q", got)
		}
	})

	t.Run("falls back to ~/.config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/someone")
		if got := ConfigDir(); got != "/home/someone/.config/taskboard" {
			t.Errorf("ConfigDir() = %q", got)
		}
	})
}
