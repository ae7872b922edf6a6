// Package view renders the panes of the taskboard TUI.
//
// Every function here is pure: it takes a small state struct filled in by
// the model and returns a string. Colors come from the active theme in the
// styles package, so the functions can be called again after a theme change
// without any other bookkeeping.
//
// # Components
//
//   - [RenderTaskList]: the task list with cursor, open marker and comment counts
//   - [RenderDetail]: the open task with its description and comments
//   - [RenderTaskForm] and [RenderCommentForm]: the input boxes of the form modes
//   - [RenderHelpBar] and [RenderHelp]: key hints and the full help overlay
//   - [RenderModeIndicator]: the badge naming the current mode
package view
