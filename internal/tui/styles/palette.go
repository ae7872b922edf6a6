// Package styles holds the color palettes and lipgloss styles of the
// taskboard TUI.
package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault    ThemeName = "default"    // Purple/green dark theme
	ThemeMonokai    ThemeName = "monokai"    // Classic Monokai editor colors
	ThemeDracula    ThemeName = "dracula"    // Dracula theme colors
	ThemeLight      ThemeName = "light"      // Dark text on a light terminal
	ThemeMonochrome ThemeName = "monochrome" // No color, attributes only
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeLight),
		string(ThemeMonochrome),
	}
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (selection, active pane, titles)
	Primary lipgloss.Color
	// Secondary accent color (key hints, comment counts)
	Secondary lipgloss.Color
	// Warning color (unsaved edits)
	Warning lipgloss.Color
	// Error color (error banners)
	Error lipgloss.Color
	// Muted color (timestamps, empty states, help text)
	Muted lipgloss.Color
	// Surface color (banner backgrounds)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (inactive pane borders)
	Border lipgloss.Color

	// GlamourStyle names the glamour standard style used to render task
	// descriptions: "dark", "light" or "notty".
	GlamourStyle string
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary:    lipgloss.Color("#10B981"), // Green
		Warning:      lipgloss.Color("#F59E0B"), // Amber
		Error:        lipgloss.Color("#F87171"), // Red (red-400)
		Muted:        lipgloss.Color("#9CA3AF"), // Gray
		Surface:      lipgloss.Color("#1F2937"), // Dark surface
		Text:         lipgloss.Color("#F9FAFB"), // Light text
		Border:       lipgloss.Color("#6B7280"), // Gray-500
		GlamourStyle: "dark",
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#F92672"), // Pink/magenta
		Secondary:    lipgloss.Color("#A6E22E"), // Green
		Warning:      lipgloss.Color("#E6DB74"), // Yellow
		Error:        lipgloss.Color("#FD971F"), // Orange
		Muted:        lipgloss.Color("#75715E"), // Comment gray
		Surface:      lipgloss.Color("#272822"), // Background
		Text:         lipgloss.Color("#F8F8F2"), // Foreground
		Border:       lipgloss.Color("#49483E"), // Selection
		GlamourStyle: "dark",
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#BD93F9"), // Purple
		Secondary:    lipgloss.Color("#50FA7B"), // Green
		Warning:      lipgloss.Color("#F1FA8C"), // Yellow
		Error:        lipgloss.Color("#FF5555"), // Red
		Muted:        lipgloss.Color("#6272A4"), // Comment
		Surface:      lipgloss.Color("#282A36"), // Background
		Text:         lipgloss.Color("#F8F8F2"), // Foreground
		Border:       lipgloss.Color("#44475A"), // Current line
		GlamourStyle: "dracula",
	}
}

// LightPalette returns a palette for light terminal backgrounds.
func LightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:      lipgloss.Color("#6D28D9"), // Violet-700
		Secondary:    lipgloss.Color("#047857"), // Emerald-700
		Warning:      lipgloss.Color("#B45309"), // Amber-700
		Error:        lipgloss.Color("#B91C1C"), // Red-700
		Muted:        lipgloss.Color("#6B7280"), // Gray-500
		Surface:      lipgloss.Color("#F3F4F6"), // Gray-100
		Text:         lipgloss.Color("#111827"), // Gray-900
		Border:       lipgloss.Color("#D1D5DB"), // Gray-300
		GlamourStyle: "light",
	}
}

// MonochromePalette returns a palette with no colors. Styles still apply
// bold, underline and reverse.
func MonochromePalette() *ColorPalette {
	return &ColorPalette{GlamourStyle: "notty"}
}

// GetPalette returns the palette for name, falling back to the default.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeLight:
		return LightPalette()
	case ThemeMonochrome:
		return MonochromePalette()
	default:
		return DefaultPalette()
	}
}
