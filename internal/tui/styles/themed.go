package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
// Styles are regenerated when the theme changes.
type ThemedStyles struct {
	// Name is the theme the styles were built from.
	Name ThemeName

	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	WarningColor   lipgloss.Color
	ErrorColor     lipgloss.Color
	MutedColor     lipgloss.Color
	SurfaceColor   lipgloss.Color
	TextColor      lipgloss.Color
	BorderColor    lipgloss.Color

	// GlamourStyle is passed to glamour.WithStandardStyle.
	GlamourStyle string

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Panes
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style

	// Task list
	TaskItem         lipgloss.Style
	TaskItemSelected lipgloss.Style
	TaskItemOpen     lipgloss.Style
	CommentCount     lipgloss.Style

	// Comments
	CommentText     lipgloss.Style
	CommentSelected lipgloss.Style
	CommentMeta     lipgloss.Style

	// Forms
	FormLabel       lipgloss.Style
	FormLabelActive lipgloss.Style
	FormBox         lipgloss.Style

	// Empty and loading states
	Placeholder lipgloss.Style

	// Banners
	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Mode badges
	ModeBadgeNormal lipgloss.Style
	ModeBadgeForm   lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from the given color palette.
func NewThemedStyles(name ThemeName, p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{
		Name:           name,
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		WarningColor:   p.Warning,
		ErrorColor:     p.Error,
		MutedColor:     p.Muted,
		SurfaceColor:   p.Surface,
		TextColor:      p.Text,
		BorderColor:    p.Border,
		GlamourStyle:   p.GlamourStyle,
	}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)
	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.PaneFocused = s.Pane.
		BorderForeground(p.Primary)
	s.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	s.TaskItem = lipgloss.NewStyle().
		Foreground(p.Text).
		PaddingLeft(2)
	s.TaskItemSelected = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		PaddingLeft(0)
	s.TaskItemOpen = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Underline(true)
	s.CommentCount = lipgloss.NewStyle().
		Foreground(p.Secondary)

	s.CommentText = lipgloss.NewStyle().
		Foreground(p.Text)
	s.CommentSelected = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	s.CommentMeta = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.FormLabel = lipgloss.NewStyle().
		Foreground(p.Muted)
	s.FormLabelActive = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	s.FormBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Warning).
		Padding(0, 1)

	s.Placeholder = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.ErrorMsg = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	s.SuccessMsg = lipgloss.NewStyle().
		Foreground(p.Secondary)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	s.HelpKey = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.ModeBadgeNormal = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(p.Surface).
		Background(p.Primary)
	s.ModeBadgeForm = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(p.Surface).
		Background(p.Warning)

	if name == ThemeMonochrome {
		s.TaskItemSelected = s.TaskItemSelected.Reverse(true)
		s.CommentSelected = s.CommentSelected.Reverse(true)
		s.ModeBadgeNormal = s.ModeBadgeNormal.Reverse(true)
		s.ModeBadgeForm = s.ModeBadgeForm.Reverse(true)
	}

	return s
}

// activeTheme holds the currently active themed styles.
var activeTheme = NewThemedStyles(ThemeDefault, DefaultPalette())

// SetActiveTheme switches the active styles to the named theme. Unknown names
// select the default theme.
//
// Note: This function is not thread-safe. It is designed to be called only
// from the Bubble Tea event loop, which runs on a single goroutine.
func SetActiveTheme(name ThemeName) {
	if !IsValidTheme(string(name)) {
		name = ThemeDefault
	}
	activeTheme = NewThemedStyles(name, GetPalette(name))
}

// GetActiveTheme returns the currently active themed styles.
func GetActiveTheme() *ThemedStyles {
	return activeTheme
}
