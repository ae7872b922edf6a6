// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so the Update loop only has to ask which
// command a key maps to in the current mode.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal      Mode = "normal"       // Browsing tasks or comments
	ModeNewTask     Mode = "new_task"     // Filling in the new task form
	ModeEditTask    Mode = "edit_task"    // Editing a task's title and description
	ModeNewComment  Mode = "new_comment"  // Typing a new comment
	ModeEditComment Mode = "edit_comment" // Editing an existing comment
)

// IsForm reports whether keys in this mode go to a text input first.
func (m Mode) IsForm() bool {
	return m != ModeNormal
}

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	// Navigation
	CmdCursorDown  Command = "cursor_down"
	CmdCursorUp    Command = "cursor_up"
	CmdCursorTop   Command = "cursor_top"
	CmdCursorEnd   Command = "cursor_end"
	CmdOpenTask    Command = "open_task"
	CmdCloseTask   Command = "close_task"
	CmdSwitchFocus Command = "switch_focus"

	// Tasks. Edit and delete act on the comment under the cursor when the
	// comments pane has focus.
	CmdNewTask    Command = "new_task"
	CmdEditTask   Command = "edit_task"
	CmdDeleteTask Command = "delete_task"
	CmdReload     Command = "reload"

	// Comments
	CmdNewComment Command = "new_comment"

	// Misc
	CmdCopy       Command = "copy"
	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// Form mode commands
const (
	CmdCancel     Command = "cancel"
	CmdSubmit     Command = "submit"
	CmdNextField  Command = "next_field"
	CmdInsertLine Command = "insert_line"
)

// Modifier represents keyboard modifiers.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the primary key. For rune keys use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys.
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType == tea.KeySpace {
		return prefix + "space"
	}
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger cmd in mode.
// The help bar uses it to print "n new" style hints.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns the unique categories of a mode's bindings in
// declaration order.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var categories []string
	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// GetBindingsByCategory returns bindings grouped by category for a mode.
func (km *Keymap) GetBindingsByCategory(mode Mode) map[string][]KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	result := make(map[string][]KeyBinding)
	for _, binding := range mb.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], binding)
	}
	return result
}

// KeysFor returns a display string such as "j/down" for every binding of cmd
// in mode.
func (km *Keymap) KeysFor(cmd Command, mode Mode) string {
	bindings := km.GetBindingsForCommand(cmd, mode)
	s := ""
	for i, b := range bindings {
		if i > 0 {
			s += "/"
		}
		s += b.String()
	}
	return s
}
