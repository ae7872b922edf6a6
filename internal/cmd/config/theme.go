package config

import (
	"fmt"

	appconfig "github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect color themes",
	Long: `Inspect the built-in color themes of the taskboard TUI.

Use 'theme list' to see all available themes.
Use 'theme info' to view the palette of a specific theme.
Select a theme with 'taskboard config set tui.theme <name>'.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the palette of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	current := appconfig.Get().TUI.Theme

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, name)
	}
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return fmt.Errorf("unknown theme: %s\n\nRun 'taskboard config theme list' to see available themes", themeName)
	}

	out := cmd.OutOrStdout()
	palette := styles.GetPalette(styles.ThemeName(themeName))

	fmt.Fprintf(out, "Theme: %s\n\n", themeName)
	fmt.Fprintln(out, "Colors:")
	for _, c := range []struct {
		label string
		color lipgloss.Color
	}{
		{"Primary", palette.Primary},
		{"Secondary", palette.Secondary},
		{"Warning", palette.Warning},
		{"Error", palette.Error},
		{"Muted", palette.Muted},
		{"Surface", palette.Surface},
		{"Text", palette.Text},
		{"Border", palette.Border},
	} {
		value := string(c.color)
		if value == "" {
			value = "(terminal default)"
		}
		swatch := lipgloss.NewStyle().Foreground(c.color).Render("■")
		fmt.Fprintf(out, "  %-10s %s %s\n", c.label+":", swatch, value)
	}
	fmt.Fprintf(out, "\nMarkdown style: %s\n", palette.GlamourStyle)

	return nil
}
