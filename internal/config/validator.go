package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/taskboard/internal/errors"
)

// ValidationErrors is a collection of validation errors
type ValidationErrors []*errors.ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}

func invalid(field string, value any, message string) *errors.ValidationError {
	return errors.NewValidationError(message).WithField(field).WithValue(value)
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []*errors.ValidationError {
	var errs []*errors.ValidationError
	errs = append(errs, c.validateAPI()...)
	errs = append(errs, c.validateTUI()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateAPI() []*errors.ValidationError {
	var errs []*errors.ValidationError

	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		errs = append(errs, invalid("api.base_url", c.API.BaseURL, err.Error()))
	}

	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, invalid("api.timeout_seconds", c.API.TimeoutSeconds, "must be 0 (no timeout) or positive"))
	}

	return errs
}

func (c *Config) validateTUI() []*errors.ValidationError {
	var errs []*errors.ValidationError

	if !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errs = append(errs, invalid("tui.theme", c.TUI.Theme, fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", "))))
	}

	// A layout with no reference components formats every time identically.
	if c.TUI.TimeFormat == "" || time.Date(2001, 3, 4, 7, 8, 9, 0, time.UTC).Format(c.TUI.TimeFormat) == c.TUI.TimeFormat {
		errs = append(errs, invalid("tui.time_format", c.TUI.TimeFormat, "must be a Go time layout such as \"2006-01-02 15:04\""))
	}

	return errs
}

func (c *Config) validateLogging() []*errors.ValidationError {
	var errs []*errors.ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, invalid("logging.level", c.Logging.Level, fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", "))))
	}

	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, invalid("logging.max_size_mb", c.Logging.MaxSizeMB, "must be non-negative"))
	}

	if c.Logging.MaxBackups < 0 {
		errs = append(errs, invalid("logging.max_backups", c.Logging.MaxBackups, "must be non-negative"))
	}

	return errs
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}
