package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/taskboard/internal/tui/keymap"
	"github.com/Iron-Ham/taskboard/internal/tui/styles"
	"github.com/Iron-Ham/taskboard/internal/util"
)

// HelpBarState holds what RenderHelpBar needs.
type HelpBarState struct {
	Keymap          *keymap.Keymap
	Mode            keymap.Mode
	TaskOpen        bool
	CommentsFocused bool
	Width           int
}

type hint struct {
	cmd  keymap.Command
	desc string
}

// hints returns the commands worth advertising in the current state.
func hints(state HelpBarState) []hint {
	switch state.Mode {
	case keymap.ModeNewTask, keymap.ModeEditTask:
		return []hint{
			{keymap.CmdNextField, "next field"},
			{keymap.CmdSubmit, "save"},
			{keymap.CmdCancel, "cancel"},
		}
	case keymap.ModeNewComment, keymap.ModeEditComment:
		return []hint{
			{keymap.CmdSubmit, "save"},
			{keymap.CmdInsertLine, "newline"},
			{keymap.CmdCancel, "cancel"},
		}
	}

	list := []hint{{keymap.CmdCursorDown, "down"}, {keymap.CmdCursorUp, "up"}}
	if state.CommentsFocused {
		list = append(list,
			hint{keymap.CmdNewComment, "comment"},
			hint{keymap.CmdEditTask, "edit"},
			hint{keymap.CmdDeleteTask, "delete"},
			hint{keymap.CmdSwitchFocus, "tasks"},
		)
	} else {
		list = append(list,
			hint{keymap.CmdOpenTask, "open"},
			hint{keymap.CmdNewTask, "new"},
			hint{keymap.CmdEditTask, "edit"},
			hint{keymap.CmdDeleteTask, "delete"},
		)
		if state.TaskOpen {
			list = append(list,
				hint{keymap.CmdNewComment, "comment"},
				hint{keymap.CmdSwitchFocus, "comments"},
			)
		}
	}
	if state.TaskOpen {
		list = append(list, hint{keymap.CmdCloseTask, "close"})
	}
	return append(list,
		hint{keymap.CmdCopy, "copy"},
		hint{keymap.CmdReload, "reload"},
		hint{keymap.CmdToggleHelp, "help"},
		hint{keymap.CmdQuit, "quit"},
	)
}

// RenderHelpBar renders one line of key hints for the current mode.
func RenderHelpBar(state HelpBarState) string {
	s := styles.GetActiveTheme()

	var parts []string
	for _, h := range hints(state) {
		bindings := state.Keymap.GetBindingsForCommand(h.cmd, state.Mode)
		if len(bindings) == 0 {
			continue
		}
		parts = append(parts, s.HelpKey.Render("["+bindings[0].String()+"]")+" "+h.desc)
	}

	line := strings.Join(parts, "  ")
	if state.Width > 0 {
		line = util.TruncateANSI(line, state.Width)
	}
	return s.HelpBar.Render(line)
}

// RenderHelp renders the full help overlay for normal mode, one section
// per binding category.
func RenderHelp(km *keymap.Keymap, width int) string {
	s := styles.GetActiveTheme()

	lines := []string{
		s.Title.Render("Taskboard Help"),
		s.Muted.Render("Press ? to close. In the comments pane, e and d act on the comment under the cursor."),
		"",
	}

	byCat := km.GetBindingsByCategory(keymap.ModeNormal)
	for _, cat := range km.GetCategories(keymap.ModeNormal) {
		lines = append(lines, s.Primary.Bold(true).Render("▸ "+cat))

		seen := map[keymap.Command]bool{}
		for _, b := range byCat[cat] {
			if seen[b.Command] {
				continue
			}
			seen[b.Command] = true
			keys := km.KeysFor(b.Command, keymap.ModeNormal)
			lines = append(lines, fmt.Sprintf("    %s  %s",
				s.HelpKey.Render(fmt.Sprintf("%-12s", keys)),
				s.Muted.Render(b.Description)))
		}
		lines = append(lines, "")
	}

	box := s.Pane
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}
