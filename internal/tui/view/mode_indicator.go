package view

import (
	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
)

// ModeLabel returns the badge text for mode. In normal mode the label names
// the focused pane.
func ModeLabel(mode keymap.Mode, commentsFocused bool) string {
	switch mode {
	case keymap.ModeNewTask:
		return "NEW TASK"
	case keymap.ModeEditTask:
		return "EDIT TASK"
	case keymap.ModeNewComment:
		return "NEW COMMENT"
	case keymap.ModeEditComment:
		return "EDIT COMMENT"
	}
	if commentsFocused {
		return "COMMENTS"
	}
	return "TASKS"
}

// RenderModeIndicator renders the mode badge. Form modes use the warning
// color since keys go to the text input.
func RenderModeIndicator(mode keymap.Mode, commentsFocused bool) string {
	s := styles.GetActiveTheme()
	label := ModeLabel(mode, commentsFocused)
	if mode.IsForm() {
		return s.ModeBadgeForm.Render(label)
	}
	return s.ModeBadgeNormal.Render(label)
}
