package config

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/taskboard/internal/errors"
)

func TestValidationErrors_Is(t *testing.T) {
	cfg := Default()
	cfg.API.TimeoutSeconds = -1

	var err error = ValidationErrors(cfg.Validate())
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Is(ErrInvalidInput) = false, want true")
	}

	var vErr *errors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("As(*ValidationError) = false, want true")
	}
	if vErr.Field != "api.timeout_seconds" || vErr.Value != -1 {
		t.Errorf("ValidationError = %+v, want field api.timeout_seconds value -1", vErr)
	}

	expected := "validation error [field=api.timeout_seconds, value=-1]: must be 0 (no timeout) or positive"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			invalid("a", 1, "bad"),
			invalid("b", 2, "worse"),
		}
		got := errs.Error()
		if !strings.HasPrefix(got, "2 validation errors:\n") {
			t.Errorf("Error() = %q, want count prefix", got)
		}
		if !strings.Contains(got, "  1. validation error [field=a, value=1]: bad") ||
			!strings.Contains(got, "  2. validation error [field=b, value=2]: worse") {
			t.Errorf("Error() = %q, missing numbered entries", got)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url"},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "api.base_url"},
		{"negative timeout", func(c *Config) { c.API.TimeoutSeconds = -5 }, "api.timeout_seconds"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme"},
		{"empty time format", func(c *Config) { c.TUI.TimeFormat = "" }, "tui.time_format"},
		{"literal time format", func(c *Config) { c.TUI.TimeFormat = "today" }, "tui.time_format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"negative max size", func(c *Config) { c.Logging.MaxSizeMB = -1 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), ValidationErrors(errs))
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidate_AcceptsVariants(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://tasks.example.com/api"
	cfg.API.TimeoutSeconds = 30
	cfg.TUI.TimeFormat = "2006-01-02 15:04"
	cfg.Logging.Level = "DEBUG"
	cfg.Logging.MaxSizeMB = 0

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", ValidationErrors(errs))
	}
}

func TestValidThemes(t *testing.T) {
	themes := ValidThemes()
	if len(themes) == 0 || themes[0] != "default" {
		t.Errorf("ValidThemes() = %v, want default first", themes)
	}
}
