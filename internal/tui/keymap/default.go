package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in taskboard key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default taskboard key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeNormal:      defaultNormalBindings(),
			ModeNewTask:     defaultTaskFormBindings(ModeNewTask),
			ModeEditTask:    defaultTaskFormBindings(ModeEditTask),
			ModeNewComment:  defaultCommentFormBindings(ModeNewComment),
			ModeEditComment: defaultCommentFormBindings(ModeEditComment),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Navigation
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdCursorDown, Description: "Move down", Category: "Navigation"},
			{KeyType: tea.KeyDown, Command: CmdCursorDown, Description: "Move down", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdCursorUp, Description: "Move up", Category: "Navigation"},
			{KeyType: tea.KeyUp, Command: CmdCursorUp, Description: "Move up", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdCursorTop, Description: "Go to top", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdCursorEnd, Description: "Go to bottom", Category: "Navigation"},
			{KeyType: tea.KeyEnter, Command: CmdOpenTask, Description: "Open task", Category: "Navigation"},
			{KeyType: tea.KeySpace, Command: CmdOpenTask, Description: "Open task", Category: "Navigation"},
			{KeyType: tea.KeyEsc, Command: CmdCloseTask, Description: "Close task", Category: "Navigation"},
			{KeyType: tea.KeyTab, Command: CmdSwitchFocus, Description: "Switch pane", Category: "Navigation"},

			// Tasks
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdNewTask, Description: "New task", Category: "Tasks"},
			{KeyType: tea.KeyRunes, Rune: 'e', Command: CmdEditTask, Description: "Edit", Category: "Tasks"},
			{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdDeleteTask, Description: "Delete", Category: "Tasks"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdReload, Description: "Reload", Category: "Tasks"},

			// Comments
			{KeyType: tea.KeyRunes, Rune: 'a', Command: CmdNewComment, Description: "Add comment", Category: "Comments"},

			// Misc
			{KeyType: tea.KeyRunes, Rune: 'y', Command: CmdCopy, Description: "Copy to clipboard", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

func defaultTaskFormBindings(mode Mode) *ModeBindings {
	return &ModeBindings{
		Mode: mode,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "Cancel", Category: "Form"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel, Description: "Cancel", Category: "Form"},
			{KeyType: tea.KeyCtrlS, Command: CmdSubmit, Description: "Save", Category: "Form"},
			{KeyType: tea.KeyTab, Command: CmdNextField, Description: "Next field", Category: "Form"},
			{KeyType: tea.KeyShiftTab, Command: CmdNextField, Description: "Next field", Category: "Form"},
			{KeyType: tea.KeyEnter, Command: CmdInsertLine, Description: "Newline or save", Category: "Form"},
		},
	}
}

func defaultCommentFormBindings(mode Mode) *ModeBindings {
	return &ModeBindings{
		Mode: mode,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "Cancel", Category: "Form"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel, Description: "Cancel", Category: "Form"},
			{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "Save", Category: "Form"},
			{KeyType: tea.KeyCtrlS, Command: CmdSubmit, Description: "Save", Category: "Form"},
			{KeyType: tea.KeyEnter, Modifiers: ModAlt, Command: CmdInsertLine, Description: "Newline", Category: "Form"},
		},
	}
}
